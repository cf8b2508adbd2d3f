package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigName("dashprep")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("DASHPREP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// NewConfig builds the runtime configuration from a preset or config file, then
// applies any overrides from flags and environment variables.
func NewConfig(cmd *cobra.Command, flags *pflag.FlagSet) (*Config, error) {
	var conf *Config
	var err error

	bindFlags(cmd)

	configFile, _ := flags.GetString("config")
	preset, _ := flags.GetString("preset")
	verbose, _ := flags.GetBool("verbose")
	trace, _ := flags.GetBool("trace")

	if len(preset) > 0 {
		conf, err = Preset(preset)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration preset: %w", err)
		}
		slog.Info("Preset selected", "preset", preset)
	} else {
		conf, err = parseConfig(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to parse configuration: %w", err)
		}
	}

	conf.Overrides = getOverrides(flags)
	conf.Verbose = verbose
	conf.Trace = trace

	return conf, nil
}

// parseConfig locates and parses the dashprep configuration.
func parseConfig(configFile string) (*Config, error) {
	// If the user specified a path to the config file manually, load that file
	if len(configFile) > 0 {
		b, err := os.ReadFile(configFile)
		if err != nil {
			return nil, errors.New("unable to read specified config file")
		}

		err = viper.ReadConfig(bytes.NewBuffer(b))
		if err != nil {
			return nil, errors.New("error parsing dashprep config file")
		}

		slog.Info("Configuration file found", "path", configFile)
	} else {
		err := viper.ReadInConfig()
		if err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				slog.Info("No config file found, falling back to 'cloud' preset")
				return Preset("cloud")
			}

			return nil, errors.New("error parsing dashprep config file")
		}

		slog.Info("Configuration file found", "path", viper.ConfigFileUsed())
	}

	// Start from the cloud preset so that a partial config file is still usable.
	conf, _ := Preset("cloud")
	err := viper.Unmarshal(conf)
	if err != nil {
		return nil, errors.New("error parsing dashprep config file")
	}

	return conf, nil
}

// getOverrides parses the cli flags related to config overrides and returns a constructed
// ConfigOverrides struct.
func getOverrides(flags *pflag.FlagSet) ConfigOverrides {
	return ConfigOverrides{
		Python:       envOrFlagString(flags, "interpreter"),
		Manifest:     envOrFlagString(flags, "requirements"),
		Browser:      envOrFlagString(flags, "engine"),
		BrowsersPath: envOrFlagString(flags, "browsers-path"),
		SkipDeps:     envOrFlagBool(flags, "skip-deps"),
	}
}

// envOrFlagString returns a string config value set from env var or flag, priority on env var.
func envOrFlagString(flags *pflag.FlagSet, key string) string {
	value, _ := flags.GetString(key)
	if v := viper.GetString(key); v != "" {
		value = v
	}
	return value
}

// envOrFlagBool returns a boolean config value set from env var or flag, priority on env var.
func envOrFlagBool(flags *pflag.FlagSet, key string) bool {
	value, _ := flags.GetBool(key)
	if _, ok := os.LookupEnv(flagToEnvVar(key)); ok {
		value = viper.GetBool(key)
	}
	return value
}

// bindFlags ensures that for each flag defined, the equivalent env var is also check for a value.
func bindFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their equivalent keys with underscores
		if strings.Contains(f.Name, "-") {
			viper.BindEnv(f.Name, flagToEnvVar(f.Name))
		}

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && viper.IsSet(f.Name) {
			val := viper.Get(f.Name)
			slog.Debug("Override detected in environment", "override", f.Name, "value", fmt.Sprintf("%v", val), "env_var", flagToEnvVar(f.Name))
			cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val))
		}
	})
}

// flagToEnvVar converts command flag name to equivalent environment variable name
func flagToEnvVar(flag string) string {
	envVarSuffix := strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
	return fmt.Sprintf("%s_%s", viper.GetEnvPrefix(), envVarSuffix)
}
