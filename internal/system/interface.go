package system

import "os/user"

// Worker is an interface for a struct that can run commands on the underlying system.
type Worker interface {
	// User returns the 'real user' the system executes commands on behalf of. This may be
	// different from the current user when dashprep is executed with `sudo`.
	User() *user.User
	// Run takes a single command and runs it, returning the combined output and an error value.
	Run(c *Command) ([]byte, error)
	// RunExclusive is a wrapper around Run that uses a mutex to ensure that only one of that
	// particular command can be run at a time.
	RunExclusive(c *Command) ([]byte, error)
	// WriteHomeDirFile takes a path relative to the real user's home dir, and writes the contents
	// specified to it.
	WriteHomeDirFile(filepath string, contents []byte) error
	// ReadHomeDirFile reads a file from the user's home directory.
	ReadHomeDirFile(filepath string) ([]byte, error)
	// ReadFile reads a file with an arbitrary path from the system.
	ReadFile(filePath string) ([]byte, error)
	// FindExecutables returns the executable regular files matching a glob pattern,
	// in lexical order.
	FindExecutables(pattern string) ([]string, error)
}
