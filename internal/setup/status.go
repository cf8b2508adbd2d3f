package setup

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jnsgruk/dashprep/internal/config"
	"gopkg.in/yaml.v3"
)

// Status reports the outcome of the most recent run of dashprep on the machine.
type Status string

const (
	StatusProvisioning Status = "provisioning"
	StatusSucceeded    Status = "succeeded"
	StatusFailed       Status = "failed"
	StatusUnknown      Status = "unknown"
)

// statusPath is the location of the status record, relative to the real user's home.
const statusPath = ".cache/dashprep/status.yaml"

// statusRecord is persisted at the start and end of each run.
type statusRecord struct {
	Status   Status         `yaml:"status"`
	Started  time.Time      `yaml:"started"`
	Finished *time.Time     `yaml:"finished,omitempty"`
	Error    string         `yaml:"error,omitempty"`
	Config   *config.Config `yaml:"config,omitempty"`
}

// writeStatus records the status of the current run in the user's home directory.
func (m *Manager) writeStatus(record *statusRecord) error {
	contents, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal status record as yaml: %w", err)
	}

	err = m.system.WriteHomeDirFile(statusPath, contents)
	if err != nil {
		return fmt.Errorf("failed to write status record: %w", err)
	}

	return nil
}

// readStatus loads the status record of the last run. A nil record is returned if
// there was no previous run.
func (m *Manager) readStatus() (*statusRecord, error) {
	contents, err := m.system.ReadHomeDirFile(statusPath)
	if err != nil {
		slog.Debug("No status record found", "path", statusPath, "error", err.Error())
		return nil, nil
	}

	record := &statusRecord{}
	err = yaml.Unmarshal(contents, record)
	if err != nil {
		return nil, fmt.Errorf("failed to parse status record: %w", err)
	}

	return record, nil
}
