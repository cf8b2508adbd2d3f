package setup

// Executable is an interface that represents any struct implementing the Prepare method.
type Executable interface {
	Prepare() error
}

// Step is a single stage of the setup plan. Message, where set, is printed to the
// operator before the step is executed.
type Step struct {
	Name       string
	Message    string
	Executable Executable
}
