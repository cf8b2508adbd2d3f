package packages

import (
	"fmt"
	"log/slog"

	"github.com/jnsgruk/dashprep/internal/system"
)

// NewPipHandler constructs a new instance of a PipHandler.
func NewPipHandler(worker system.Worker, python string) *PipHandler {
	return &PipHandler{
		Python: python,
		system: worker,
	}
}

// PipHandler upgrades the package installer itself.
type PipHandler struct {
	Python string
	system system.Worker
}

// Prepare upgrades pip to the latest version available from the default package index.
func (h *PipHandler) Prepare() error {
	slog.Debug("Upgrading package installer", "python", h.Python)

	cmd := system.NewCommand(h.Python, []string{"-m", "pip", "install", "--upgrade", "pip"})

	_, err := h.system.RunExclusive(cmd)
	if err != nil {
		return fmt.Errorf("failed to upgrade pip: %w", err)
	}

	slog.Info("Upgraded package installer", "installer", "pip")
	return nil
}
