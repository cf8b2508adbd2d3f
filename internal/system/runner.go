package system

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"os/user"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// NewSystem constructs a new command system.
func NewSystem(trace bool) (*System, error) {
	realUser, err := realUser()
	if err != nil {
		return nil, fmt.Errorf("failed to lookup effective user details: %w", err)
	}
	return &System{
		trace:      trace,
		user:       realUser,
		stream:     os.Stderr,
		cmdMutexes: map[string]*sync.Mutex{},
	}, nil
}

// System represents a struct that can run commands.
type System struct {
	trace bool
	user  *user.User
	// stream receives command output as it is produced. Defaults to stderr.
	stream io.Writer
	// Map of mutexes to prevent the concurrent execution of certain commands.
	cmdMutexes map[string]*sync.Mutex
	mapMutex   sync.Mutex
}

// User returns a user struct containing details of the "real" user, which
// may differ from the current user when dashprep is executed with `sudo`.
func (s *System) User() *user.User { return s.user }

// Run executes the command, returning the combined stdout/stderr. The output is also
// streamed while the command runs, so long installs show progress.
func (s *System) Run(c *Command) ([]byte, error) {
	shell, err := getShellPath()
	if err != nil {
		return nil, fmt.Errorf("unable to determine shell path to run command")
	}

	commandString := c.CommandString()

	cmd := exec.Command(shell, "-c", commandString)
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	slog.Debug("Running command", "command", commandString)

	if s.trace {
		fmt.Print(generateTraceMessage(commandString))
	}

	stream := s.stream
	if stream == nil {
		stream = os.Stderr
	}

	var buf bytes.Buffer
	w := io.MultiWriter(&buf, stream)
	cmd.Stdout = w
	cmd.Stderr = w

	err = cmd.Run()
	output := buf.Bytes()

	if err != nil {
		exitCode := 1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		return output, &CommandError{Command: commandString, ExitCode: exitCode, Output: output, Err: err}
	}

	return output, nil
}

// RunExclusive is a wrapper around Run that uses a mutex to ensure that only one of that
// particular command can be run at a time.
func (s *System) RunExclusive(c *Command) ([]byte, error) {
	s.mapMutex.Lock()
	mtx, ok := s.cmdMutexes[c.Executable]
	if !ok {
		mtx = &sync.Mutex{}
		s.cmdMutexes[c.Executable] = mtx
	}
	s.mapMutex.Unlock()

	mtx.Lock()
	defer mtx.Unlock()

	output, err := s.Run(c)
	return output, err
}

// WriteHomeDirFile takes a path relative to the real user's home dir, and writes the contents
// specified to it.
func (s *System) WriteHomeDirFile(filePath string, contents []byte) error {
	dir := path.Dir(filePath)

	err := s.mkHomeSubdirectory(dir)
	if err != nil {
		return err
	}

	filePath = path.Join(s.user.HomeDir, filePath)

	if err := os.WriteFile(filePath, contents, 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", filePath, err)
	}

	err = s.chownRecursively(filePath, s.user)
	if err != nil {
		return fmt.Errorf("failed to change ownership of file '%s': %w", filePath, err)
	}

	return nil
}

// mkHomeSubdirectory takes a relative folder path and creates it recursively in the real
// user's home directory.
func (s *System) mkHomeSubdirectory(subdirectory string) error {
	if path.IsAbs(subdirectory) {
		return fmt.Errorf("only relative paths supported")
	}

	dir := path.Join(s.user.HomeDir, subdirectory)

	err := os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	parts := strings.Split(subdirectory, "/")
	if len(parts) > 0 {
		dir = path.Join(s.user.HomeDir, parts[0])
	}

	err = s.chownRecursively(dir, s.user)
	if err != nil {
		return fmt.Errorf("failed to change ownership of directory '%s': %w", dir, err)
	}

	return nil
}

// ReadHomeDirFile takes a path relative to the real user's home dir, and reads the content
// from the file
func (s *System) ReadHomeDirFile(filePath string) ([]byte, error) {
	homePath := path.Join(s.user.HomeDir, filePath)
	return s.ReadFile(homePath)
}

// ReadFile takes a path and reads the content from the specified file.
func (s *System) ReadFile(filePath string) ([]byte, error) {
	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("file '%s' does not exist: %w", filePath, err)
	}
	return os.ReadFile(filePath)
}

// FindExecutables returns the executable regular files matching a glob pattern,
// in lexical order.
func (s *System) FindExecutables(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern '%s': %w", pattern, err)
	}

	sort.Strings(matches)

	executables := []string{}
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if info.Mode().Perm()&0111 != 0 {
			executables = append(executables, m)
		}
	}

	return executables, nil
}

// chownRecursively recursively changes ownership of a given filepath to the uid/gid of
// the specified user.
func (s *System) chownRecursively(path string, user *user.User) error {
	uid, err := strconv.Atoi(user.Uid)
	if err != nil {
		return fmt.Errorf("failed to convert user id string to int: %w", err)
	}
	gid, err := strconv.Atoi(user.Gid)
	if err != nil {
		return fmt.Errorf("failed to convert group id string to int: %w", err)
	}

	// Ownership only needs fixing up when running as root on behalf of another user.
	if os.Geteuid() != 0 {
		return nil
	}

	err = filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		return os.Chown(path, uid, gid)
	})

	slog.Debug("Filesystem ownership changed", "user", user.Username, "group", user.Gid, "path", path)
	return err
}
