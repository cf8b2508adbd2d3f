package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func TestFlagToEnvVar(t *testing.T) {
	type test struct {
		flag     string
		expected string
	}

	viper.SetEnvPrefix("DASHPREP")

	tests := []test{
		{flag: "interpreter", expected: "DASHPREP_INTERPRETER"},
		{flag: "requirements", expected: "DASHPREP_REQUIREMENTS"},
		{flag: "engine", expected: "DASHPREP_ENGINE"},
		{flag: "skip-deps", expected: "DASHPREP_SKIP_DEPS"},
		{flag: "browsers-path", expected: "DASHPREP_BROWSERS_PATH"},
	}

	for _, tc := range tests {
		ev := flagToEnvVar(tc.flag)
		if !reflect.DeepEqual(tc.expected, ev) {
			t.Fatalf("expected: %v, got: %v", tc.expected, ev)
		}
	}
}

func TestPreset(t *testing.T) {
	type test struct {
		preset   string
		withDeps bool
	}

	tests := []test{
		{preset: "cloud", withDeps: true},
		{preset: "local", withDeps: false},
	}

	for _, tc := range tests {
		conf, err := Preset(tc.preset)
		if err != nil {
			t.Fatal(err.Error())
		}
		if conf.Browser.WithDeps != tc.withDeps {
			t.Fatalf("expected with-deps %v for preset '%s'", tc.withDeps, tc.preset)
		}
		if conf.Browser.Engine != "chromium" || conf.Python != "python3" || conf.Manifest != "requirements.txt" {
			t.Fatalf("unexpected preset defaults: %+v", conf)
		}
	}

	if _, err := Preset("foobar"); err == nil {
		t.Fatalf("expected an error for an unknown preset")
	}
}

func TestPresetIsCopied(t *testing.T) {
	conf, _ := Preset("cloud")
	conf.Browser.Engine = "firefox"

	fresh, _ := Preset("cloud")
	if fresh.Browser.Engine != "chromium" {
		t.Fatalf("modifying a preset copy must not modify the preset")
	}
}

func testCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	flags := cmd.Flags()
	flags.Bool("verbose", false, "")
	flags.Bool("trace", false, "")
	flags.String("config", "", "")
	flags.String("preset", "", "")
	flags.String("interpreter", "", "")
	flags.String("requirements", "", "")
	flags.String("engine", "", "")
	flags.String("browsers-path", "", "")
	flags.Bool("skip-deps", false, "")
	return cmd
}

func TestNewConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "dashprep.yaml")

	contents := []byte(`python: /usr/bin/python3.11
manifest: deps/requirements.txt
browser:
  engine: firefox
  with-deps: false
`)
	if err := os.WriteFile(configPath, contents, 0644); err != nil {
		t.Fatal(err.Error())
	}

	cmd := testCommand()
	cmd.Flags().Set("config", configPath)
	cmd.Flags().Set("engine", "webkit")

	conf, err := NewConfig(cmd, cmd.Flags())
	if err != nil {
		t.Fatal(err.Error())
	}

	if conf.Python != "/usr/bin/python3.11" || conf.Manifest != "deps/requirements.txt" {
		t.Fatalf("unexpected config values: %+v", conf)
	}
	if conf.Browser.Engine != "firefox" || conf.Browser.WithDeps {
		t.Fatalf("unexpected browser config: %+v", conf.Browser)
	}
	if conf.Overrides.Browser != "webkit" {
		t.Fatalf("expected engine override 'webkit', got: '%s'", conf.Overrides.Browser)
	}
}

func TestNewConfigEnvOverride(t *testing.T) {
	t.Setenv("DASHPREP_SKIP_DEPS", "true")
	t.Setenv("DASHPREP_REQUIREMENTS", "other-requirements.txt")

	cmd := testCommand()
	cmd.Flags().Set("preset", "cloud")

	conf, err := NewConfig(cmd, cmd.Flags())
	if err != nil {
		t.Fatal(err.Error())
	}

	if !conf.Overrides.SkipDeps {
		t.Fatalf("expected skip-deps override from the environment")
	}
	if conf.Overrides.Manifest != "other-requirements.txt" {
		t.Fatalf("expected manifest override from the environment, got: '%s'", conf.Overrides.Manifest)
	}
}
