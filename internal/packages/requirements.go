package packages

import (
	"fmt"
	"log/slog"

	"github.com/jnsgruk/dashprep/internal/manifest"
	"github.com/jnsgruk/dashprep/internal/system"
)

// NewRequirementsHandler constructs a new instance of a RequirementsHandler.
func NewRequirementsHandler(worker system.Worker, python string, manifestPath string) *RequirementsHandler {
	return &RequirementsHandler{
		Python:   python,
		Manifest: manifestPath,
		system:   worker,
	}
}

// RequirementsHandler installs every library listed in a requirements manifest.
type RequirementsHandler struct {
	Python   string
	Manifest string
	system   system.Worker
}

// Prepare reads the manifest and installs its contents with pip. A missing manifest
// fails before pip is invoked. Whether the entries themselves are installable is
// decided by pip alone; a manifest that cannot be parsed here is only reported.
func (h *RequirementsHandler) Prepare() error {
	contents, err := h.system.ReadFile(h.Manifest)
	if err != nil {
		return fmt.Errorf("failed to read requirements manifest: %w", err)
	}

	count := -1
	m, err := manifest.Parse(h.Manifest, contents)
	if err != nil {
		slog.Warn("Unable to parse requirements manifest, deferring to pip", "path", h.Manifest, "error", err.Error())
	} else {
		count = len(m.Requirements)
		slog.Debug("Parsed requirements manifest", "path", m.Path, "requirements", m.Names(), "options", len(m.Options))
	}

	cmd := system.NewCommand(h.Python, []string{"-m", "pip", "install", "-r", h.Manifest})

	_, err = h.system.RunExclusive(cmd)
	if err != nil {
		return fmt.Errorf("failed to install requirements from '%s': %w", h.Manifest, err)
	}

	if count < 0 {
		slog.Info("Installed requirements", "manifest", h.Manifest)
	} else {
		slog.Info("Installed requirements", "manifest", h.Manifest, "count", count)
	}
	return nil
}
