package setup

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jnsgruk/dashprep/internal/config"
	"github.com/jnsgruk/dashprep/internal/system"
)

// NewManager constructs a new instance of the setup manager.
func NewManager(config *config.Config) (*Manager, error) {
	system, err := system.NewSystem(config.Trace)
	if err != nil {
		return nil, err
	}

	return newManager(config, system, os.Stdout), nil
}

func newManager(config *config.Config, worker system.Worker, out io.Writer) *Manager {
	return &Manager{
		config: config,
		system: worker,
		out:    out,
		now:    time.Now,
	}
}

// Manager is a construct for controlling the main execution of dashprep.
type Manager struct {
	Plan *Plan

	config *config.Config
	system system.Worker
	out    io.Writer
	now    func() time.Time
}

// Prepare runs the steps required for preparing the environment according to
// the config, recording the outcome so that it can be reported by Status.
func (m *Manager) Prepare() error {
	record := &statusRecord{
		Status:  StatusProvisioning,
		Started: m.now(),
		Config:  m.config,
	}

	err := m.writeStatus(record)
	if err != nil {
		return fmt.Errorf("failed to record status: %w", err)
	}

	m.Plan = NewPlan(m.config, m.system, m.out)
	planErr := m.Plan.Execute()

	finished := m.now()
	record.Finished = &finished
	record.Status = StatusSucceeded
	if planErr != nil {
		record.Status = StatusFailed
		record.Error = planErr.Error()
	}

	err = m.writeStatus(record)
	if err != nil {
		if planErr != nil {
			slog.Warn("Failed to record status", "error", err.Error())
			return planErr
		}
		return fmt.Errorf("failed to record status: %w", err)
	}

	return planErr
}

// Status reports the status recorded by the most recent run, or StatusUnknown if
// dashprep has not been run on the machine.
func (m *Manager) Status() (Status, error) {
	record, err := m.readStatus()
	if err != nil {
		return StatusUnknown, err
	}
	if record == nil {
		return StatusUnknown, nil
	}

	return record.Status, nil
}
