package config

// Config represents dashprep's configuration format.
type Config struct {
	// Python is the interpreter used to invoke pip and playwright.
	Python string `mapstructure:"python"`
	// Manifest is the path to the requirements file to install.
	Manifest string        `mapstructure:"manifest"`
	Browser  browserConfig `mapstructure:"browser"`

	// The following are added at runtime according to CLI flags
	Overrides ConfigOverrides `mapstructure:"overrides"`
	Verbose   bool            `mapstructure:"verbose"`
	Trace     bool            `mapstructure:"trace"`
}

// browserConfig represents the browser engine to install with playwright.
type browserConfig struct {
	Engine string `mapstructure:"engine"`
	// WithDeps requests installation of the operating system packages the engine needs.
	WithDeps bool `mapstructure:"with-deps"`
	// BrowsersPath overrides the directory playwright downloads browsers into.
	BrowsersPath string `mapstructure:"browsers-path"`
}
