// Package manifest parses pip requirements files.
package manifest

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// DefaultPath is the manifest read when none is configured.
const DefaultPath = "requirements.txt"

var (
	nameRegexp   = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)\s*(?:\[([^\]]*)\])?\s*(.*)$`)
	specPrefixes = []string{"<", ">", "=", "!", "~", "@", "("}

	// envRegexp matches the variables pip expands: ${NAME}, upper case only.
	envRegexp = regexp.MustCompile(`\$\{([A-Z0-9_]+)\}`)

	// optionRegexp finds the first per-requirement option, e.g. ` --hash=sha256:...`.
	optionRegexp = regexp.MustCompile(`\s--?[A-Za-z]`)

	utf8BOM = []byte("\xef\xbb\xbf")
)

// Requirement is a single library specifier from a manifest.
type Requirement struct {
	Name      string
	Extras    []string
	Specifier string
	Marker    string
	// Options are per-requirement installer options such as --hash.
	Options []string
	Line    int
}

// String returns the requirement in its canonical form.
func (r Requirement) String() string {
	s := r.Name
	if len(r.Extras) > 0 {
		s += "[" + strings.Join(r.Extras, ",") + "]"
	}
	s += r.Specifier
	if r.Marker != "" {
		s += "; " + r.Marker
	}
	return s
}

// Manifest is the parsed content of a requirements file.
type Manifest struct {
	Path         string
	Requirements []Requirement
	// Options holds installer options and direct references (URLs, local paths),
	// kept verbatim.
	Options []string
}

// Names returns the names of all requirements in the order they were declared.
func (m *Manifest) Names() []string {
	names := []string{}
	for _, r := range m.Requirements {
		names = append(names, r.Name)
	}
	return names
}

// Parse parses the contents of the requirements file at path.
func Parse(path string, contents []byte) (*Manifest, error) {
	m := &Manifest{Path: path}

	scanner := bufio.NewScanner(bytes.NewReader(bytes.TrimPrefix(contents, utf8BOM)))

	lineNo := 0
	startLine := 0
	var pending strings.Builder

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if pending.Len() == 0 {
			startLine = lineNo
		}

		// Join continuation lines before interpreting them.
		if trimmed := strings.TrimRight(line, " \t"); strings.HasSuffix(trimmed, `\`) {
			pending.WriteString(strings.TrimSuffix(trimmed, `\`))
			continue
		}
		pending.WriteString(line)

		logical := pending.String()
		pending.Reset()

		if err := m.addLine(logical, startLine); err != nil {
			return nil, fmt.Errorf("failed to parse '%s': %w", path, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", path, err)
	}

	// A trailing continuation with nothing after it is still a line.
	if pending.Len() > 0 {
		if err := m.addLine(pending.String(), startLine); err != nil {
			return nil, fmt.Errorf("failed to parse '%s': %w", path, err)
		}
	}

	return m, nil
}

// addLine interprets a single logical line of the manifest.
func (m *Manifest) addLine(line string, lineNo int) error {
	line = strings.TrimSpace(expandEnv(stripComment(line)))
	if line == "" {
		return nil
	}

	if isOption(line) {
		m.Options = append(m.Options, line)
		return nil
	}

	var options []string
	if loc := optionRegexp.FindStringIndex(line); loc != nil {
		options = strings.Fields(line[loc[0]:])
		line = strings.TrimSpace(line[:loc[0]])
	}

	req, err := parseRequirement(line)
	if err != nil {
		return fmt.Errorf("line %d: %w", lineNo, err)
	}
	req.Line = lineNo
	req.Options = options

	m.Requirements = append(m.Requirements, req)
	return nil
}

// parseRequirement parses a single requirement specifier such as
// `requests[socks]>=2.31,<3; python_version >= "3.9"`.
func parseRequirement(line string) (Requirement, error) {
	req := Requirement{}

	spec, marker, found := strings.Cut(line, ";")
	if found {
		req.Marker = strings.TrimSpace(marker)
	}

	matches := nameRegexp.FindStringSubmatch(strings.TrimSpace(spec))
	if matches == nil {
		return req, fmt.Errorf("invalid requirement '%s'", line)
	}

	req.Name = matches[1]

	if matches[2] != "" {
		for _, e := range strings.Split(matches[2], ",") {
			if e = strings.TrimSpace(e); e != "" {
				req.Extras = append(req.Extras, e)
			}
		}
	}

	rest := strings.TrimSpace(matches[3])
	if rest != "" && !hasAnyPrefix(rest, specPrefixes) {
		return req, fmt.Errorf("invalid version specifier '%s' for '%s'", rest, req.Name)
	}
	req.Specifier = strings.ReplaceAll(rest, " ", "")
	if strings.HasPrefix(rest, "@") {
		req.Specifier = " " + rest
	}

	return req, nil
}

// stripComment removes a trailing comment. A '#' only starts a comment at the
// beginning of a line or when preceded by whitespace, so URL fragments survive.
func stripComment(line string) string {
	for i, r := range line {
		if r != '#' {
			continue
		}
		if i == 0 || line[i-1] == ' ' || line[i-1] == '\t' {
			return line[:i]
		}
	}
	return line
}

// expandEnv substitutes ${NAME} references with the value from the environment.
// Unset variables are left untouched.
func expandEnv(line string) string {
	return envRegexp.ReplaceAllStringFunc(line, func(ref string) string {
		name := envRegexp.FindStringSubmatch(ref)[1]
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return ref
	})
}

// isOption reports whether the line is an installer option or a direct reference
// rather than a named requirement.
func isOption(line string) bool {
	return strings.HasPrefix(line, "-") ||
		strings.HasPrefix(line, ".") ||
		strings.HasPrefix(line, "/") ||
		strings.Contains(strings.SplitN(line, " ", 2)[0], "://")
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
