package cmd

import (
	"log/slog"
	"os"

	"github.com/jnsgruk/dashprep/internal/config"
)

// checkUser warns when operating system dependencies are to be installed without root
// privileges, in which case playwright falls back to invoking sudo itself.
func checkUser(conf *config.Config) {
	withDeps := conf.Browser.WithDeps && !conf.Overrides.SkipDeps
	if withDeps && os.Geteuid() != 0 {
		slog.Warn("Not running as root; installing browser dependencies may prompt for elevated privileges")
	}
}
