package setup

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/jnsgruk/dashprep/internal/config"
	"github.com/jnsgruk/dashprep/internal/packages"
	"github.com/jnsgruk/dashprep/internal/system"
	"golang.org/x/sync/errgroup"
)

const (
	dependenciesMessage = "Installing Python dependencies..."
	browserMessage      = "Installing Playwright browser..."
	completeMessage     = "Setup complete."
)

// Plan represents the ordered set of steps used to prepare the environment.
type Plan struct {
	Python       string
	Manifest     string
	Engine       string
	WithDeps     bool
	BrowsersPath string

	Steps []Step

	system system.Worker
	out    io.Writer
}

// NewPlan constructs a new plan from the configuration, applying any overrides.
func NewPlan(cfg *config.Config, worker system.Worker, out io.Writer) *Plan {
	plan := &Plan{
		Python:       cfg.Python,
		Manifest:     cfg.Manifest,
		Engine:       cfg.Browser.Engine,
		WithDeps:     cfg.Browser.WithDeps,
		BrowsersPath: cfg.Browser.BrowsersPath,
		system:       worker,
		out:          out,
	}

	overrides := cfg.Overrides
	if overrides.Python != "" {
		plan.Python = overrides.Python
	}
	if overrides.Manifest != "" {
		plan.Manifest = overrides.Manifest
	}
	if overrides.Browser != "" {
		plan.Engine = overrides.Browser
	}
	if overrides.BrowsersPath != "" {
		plan.BrowsersPath = overrides.BrowsersPath
	}
	if overrides.SkipDeps {
		plan.WithDeps = false
	}

	plan.Steps = []Step{
		{
			Name:       "upgrade-installer",
			Message:    dependenciesMessage,
			Executable: packages.NewPipHandler(worker, plan.Python),
		},
		{
			Name:       "install-requirements",
			Executable: packages.NewRequirementsHandler(worker, plan.Python, plan.Manifest),
		},
		{
			Name:       "install-browser",
			Message:    browserMessage,
			Executable: packages.NewBrowserHandler(worker, plan.Python, plan.Engine, plan.WithDeps, plan.BrowsersPath),
		},
	}

	return plan
}

// Execute validates the plan, then runs each step in order. The first failing step
// aborts the run, and no later step is attempted.
func (p *Plan) Execute() error {
	err := p.validate()
	if err != nil {
		return fmt.Errorf("failed to validate plan: %w", err)
	}

	for _, step := range p.Steps {
		if step.Message != "" {
			fmt.Fprintln(p.out, step.Message)
		}

		slog.Debug("Running setup step", "step", step.Name)

		err := step.Executable.Prepare()
		if err != nil {
			return fmt.Errorf("setup step '%s' failed: %w", step.Name, err)
		}
	}

	fmt.Fprintln(p.out, completeMessage)
	return nil
}

// validate returns an error if the generated plan contains errors that would prevent a successful
// configuration of the machine.
func (p *Plan) validate() error {
	var eg errgroup.Group

	// Run the validators in parallel in an errgroup
	for _, v := range planValidators {
		eg.Go(func() error { return v(p) })
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	return nil
}
