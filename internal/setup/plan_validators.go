package setup

import (
	"fmt"
	"strings"

	"github.com/jnsgruk/dashprep/internal/packages"
)

// planValidators is a list of planValidators used to verify a plan. Validators only
// inspect the plan itself; the state of the host is left to the steps.
var planValidators = []func(p *Plan) error{
	validatePython,
	validateManifestPath,
	validateBrowserEngine,
}

// validatePython ensures an interpreter has been specified.
func validatePython(plan *Plan) error {
	if strings.TrimSpace(plan.Python) == "" {
		return fmt.Errorf("no python interpreter specified")
	}
	return nil
}

// validateManifestPath ensures a requirements manifest has been specified.
func validateManifestPath(plan *Plan) error {
	if strings.TrimSpace(plan.Manifest) == "" {
		return fmt.Errorf("no requirements manifest specified")
	}
	return nil
}

// validateBrowserEngine ensures the browser engine is one playwright can install.
func validateBrowserEngine(plan *Plan) error {
	if !packages.IsSupportedEngine(plan.Engine) {
		return fmt.Errorf("unsupported browser engine '%s', must be one of %v", plan.Engine, packages.SupportedEngines)
	}
	return nil
}
