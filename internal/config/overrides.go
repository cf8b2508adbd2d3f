package config

// ConfigOverrides holds values set by CLI flags or environment variables, which take
// precedence over the configuration file or preset.
type ConfigOverrides struct {
	Python       string
	Manifest     string
	Browser      string
	BrowsersPath string
	SkipDeps     bool
}
