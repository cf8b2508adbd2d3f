package packages

import (
	"fmt"
	"log/slog"

	"github.com/jnsgruk/dashprep/internal/system"
)

// NewBrowserHandler constructs a new instance of a BrowserHandler.
func NewBrowserHandler(worker system.Worker, python string, engine string, withDeps bool, browsersPath string) *BrowserHandler {
	return &BrowserHandler{
		Python:       python,
		Engine:       engine,
		WithDeps:     withDeps,
		BrowsersPath: browsersPath,
		system:       worker,
	}
}

// BrowserHandler installs a playwright browser engine, optionally together with the
// operating system packages it depends upon.
type BrowserHandler struct {
	Python   string
	Engine   string
	WithDeps bool
	// BrowsersPath is the configured download location; empty means playwright's default.
	BrowsersPath string

	system system.Worker
}

// Prepare runs `playwright install` for the engine, then reports where the engine's
// executable was installed.
func (h *BrowserHandler) Prepare() error {
	slog.Debug("Installing browser engine", "engine", h.Engine, "with-deps", h.WithDeps)

	args := []string{"-m", "playwright", "install", h.Engine}
	if h.WithDeps {
		args = append(args, "--with-deps")
	}

	cmd := system.NewCommand(h.Python, args).WithEnv("PLAYWRIGHT_BROWSERS_PATH", h.BrowsersPath)

	_, err := h.system.RunExclusive(cmd)
	if err != nil {
		return fmt.Errorf("failed to install browser engine '%s': %w", h.Engine, err)
	}

	executable, err := h.Executable()
	if err != nil {
		slog.Warn("Browser engine executable not found after install", "engine", h.Engine, "error", err.Error())
	} else {
		slog.Info("Installed browser engine", "engine", h.Engine, "path", executable)
	}

	return nil
}

// Executable returns the path to the installed engine's executable.
func (h *BrowserHandler) Executable() (string, error) {
	browsersPath := BrowsersPath(h.BrowsersPath, h.system.User().HomeDir)

	for _, pattern := range enginePaths(h.Engine, browsersPath) {
		found, err := h.system.FindExecutables(pattern)
		if err != nil {
			return "", err
		}
		if len(found) > 0 {
			return latestRevision(found), nil
		}
	}

	return "", fmt.Errorf("no executable for '%s' found in '%s'", h.Engine, browsersPath)
}
