package system

import (
	"fmt"
	"os"
	"os/user"
	"path"
	"strings"
)

// NewMockSystem constructs a new mock command
func NewMockSystem() *MockSystem {
	return &MockSystem{
		CreatedFiles: map[string]string{},
		mockReturns:  map[string]MockCommandReturn{},
		mockFiles:    map[string][]byte{},
		mockExecs:    map[string][]string{},
	}
}

// MockCommandReturn contains mocked Output and Error from a given command.
type MockCommandReturn struct {
	Output []byte
	Error  error
}

// MockSystem represents a struct that can emulate running commands.
type MockSystem struct {
	ExecutedCommands []string
	Executed         []*Command
	CreatedFiles     map[string]string

	mockFiles   map[string][]byte
	mockReturns map[string]MockCommandReturn
	mockExecs   map[string][]string
}

// MockCommandReturn sets a static return value representing command combined output,
// and a desired error return for the specified command.
func (r *MockSystem) MockCommandReturn(command string, b []byte, err error) {
	r.mockReturns[command] = MockCommandReturn{Output: b, Error: err}
}

// MockFile sets a faked expected file contents for a given file.
func (r *MockSystem) MockFile(filePath string, contents []byte) {
	r.mockFiles[filePath] = contents
}

// MockExecutables sets the executables returned for a given glob pattern.
func (r *MockSystem) MockExecutables(pattern string, paths []string) {
	r.mockExecs[pattern] = paths
}

// User returns the user the system executes commands on behalf of.
func (r *MockSystem) User() *user.User {
	return &user.User{
		Username: "test-user",
		Uid:      "666",
		Gid:      "666",
		HomeDir:  path.Join(os.TempDir(), "test-user"),
	}
}

// Run executes the command, returning the stdout/stderr where appropriate.
func (r *MockSystem) Run(c *Command) ([]byte, error) {
	// Prevent the path of the test machine interfering with the test results.
	path := os.Getenv("PATH")
	defer os.Setenv("PATH", path)
	os.Setenv("PATH", "")

	cmd := c.CommandString()

	r.ExecutedCommands = append(r.ExecutedCommands, cmd)
	r.Executed = append(r.Executed, c)

	val, ok := r.mockReturns[cmd]
	if ok {
		return val.Output, val.Error
	}
	return []byte{}, nil
}

// RunExclusive is a wrapper around Run that uses a mutex to ensure that only one of that
// particular command can be run at a time.
func (r *MockSystem) RunExclusive(c *Command) ([]byte, error) {
	return r.Run(c)
}

// WriteHomeDirFile takes a path relative to the real user's home dir, and writes the contents
// specified to it.
func (r *MockSystem) WriteHomeDirFile(filepath string, contents []byte) error {
	r.CreatedFiles[filepath] = string(contents)
	return nil
}

// ReadHomeDirFile takes a path relative to the real user's home dir, and reads the content
// from the file. Files written with WriteHomeDirFile can be read back.
func (r *MockSystem) ReadHomeDirFile(filePath string) ([]byte, error) {
	if val, ok := r.CreatedFiles[filePath]; ok {
		return []byte(val), nil
	}
	val, ok := r.mockFiles[filePath]
	if !ok {
		return nil, fmt.Errorf("file not found")
	}
	return val, nil
}

// ReadFile takes a path and reads the content from the specified file.
func (r *MockSystem) ReadFile(filePath string) ([]byte, error) {
	val, ok := r.mockFiles[filePath]
	if !ok {
		return nil, fmt.Errorf("file '%s' does not exist", filePath)
	}
	return val, nil
}

// FindExecutables returns the mocked executables for the pattern.
func (r *MockSystem) FindExecutables(pattern string) ([]string, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("invalid pattern '%s'", pattern)
	}
	return r.mockExecs[pattern], nil
}
