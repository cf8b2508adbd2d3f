package packages

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/jnsgruk/dashprep/internal/system"
)

func TestRequirementsHandlerCommands(t *testing.T) {
	system := system.NewMockSystem()
	system.MockFile("requirements.txt", []byte("streamlit\ngspread==6.0.2\nplaywright\n"))

	err := NewRequirementsHandler(system, "python3", "requirements.txt").Prepare()
	if err != nil {
		t.Fatal(err.Error())
	}

	expected := []string{"python3 -m pip install -r requirements.txt"}
	if !reflect.DeepEqual(expected, system.ExecutedCommands) {
		t.Fatalf("expected: %v, got: %v", expected, system.ExecutedCommands)
	}
}

func TestRequirementsHandlerMissingManifest(t *testing.T) {
	system := system.NewMockSystem()

	err := NewRequirementsHandler(system, "python3", "requirements.txt").Prepare()
	if err == nil {
		t.Fatalf("expected an error for a missing manifest")
	}

	if len(system.ExecutedCommands) != 0 {
		t.Fatalf("expected no commands to be run, got: %v", system.ExecutedCommands)
	}
}

func TestRequirementsHandlerUnparsedManifest(t *testing.T) {
	type test struct {
		contents string
	}

	// Each of these is either accepted by pip, or rejected by pip with its own exit
	// code; in both cases pip must be the one to decide.
	tests := []test{
		{contents: "streamlit latest\n"},
		{contents: "\ufeffstreamlit\n"},
		{contents: "numpy --hash=sha256:0123456789abcdef\n"},
		{contents: "${PKG_NAME}==1.0\n"},
	}

	for _, tc := range tests {
		system := system.NewMockSystem()
		system.MockFile("requirements.txt", []byte(tc.contents))

		err := NewRequirementsHandler(system, "python3", "requirements.txt").Prepare()
		if err != nil {
			t.Fatalf("expected pip to decide for %q, got: %v", tc.contents, err)
		}

		expected := []string{"python3 -m pip install -r requirements.txt"}
		if !reflect.DeepEqual(expected, system.ExecutedCommands) {
			t.Fatalf("expected: %v, got: %v", expected, system.ExecutedCommands)
		}
	}
}

func TestRequirementsHandlerPropagatesPipError(t *testing.T) {
	worker := system.NewMockSystem()
	worker.MockFile("requirements.txt", []byte("streamlit latest\n"))

	pipErr := &system.CommandError{Command: "python3 -m pip install -r requirements.txt", ExitCode: 2}
	worker.MockCommandReturn("python3 -m pip install -r requirements.txt", nil, pipErr)

	err := NewRequirementsHandler(worker, "python3", "requirements.txt").Prepare()

	var cmdErr *system.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.ExitCode != 2 {
		t.Fatalf("expected pip's exit code to be preserved, got: %v", err)
	}
}

func TestRequirementsHandlerUnresolvable(t *testing.T) {
	system := system.NewMockSystem()
	system.MockFile("requirements.txt", []byte("does-not-exist==99.0\n"))
	system.MockCommandReturn(
		"python3 -m pip install -r requirements.txt",
		[]byte("ERROR: No matching distribution found for does-not-exist==99.0"),
		fmt.Errorf("exit status 1"),
	)

	err := NewRequirementsHandler(system, "python3", "requirements.txt").Prepare()
	if err == nil {
		t.Fatalf("expected an error for an unresolvable requirement")
	}
}
