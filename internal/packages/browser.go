package packages

import (
	"os"
	"path"
	"regexp"
	"slices"
	"strconv"
)

// SupportedEngines is the list of browser engines that playwright can install.
var SupportedEngines = []string{
	"chromium",
	"chromium-headless-shell",
	"chromium-tip-of-tree",
	"firefox",
	"firefox-beta",
	"webkit",
	"chrome",
	"chrome-beta",
	"msedge",
	"msedge-beta",
	"msedge-dev",
}

// enginePatterns maps an engine to the glob patterns, relative to the playwright
// browsers path, that its executable is found at. Absolute patterns are used for
// branded browsers that are installed system-wide.
var enginePatterns = map[string][]string{
	"chromium": {
		"chromium_headless_shell-*/chrome-linux/headless_shell",
		"chromium-*/chrome-linux/chrome",
	},
	"chromium-headless-shell": {
		"chromium_headless_shell-*/chrome-linux/headless_shell",
	},
	"chromium-tip-of-tree": {
		"chromium_tip_of_tree-*/chrome-linux/chrome",
	},
	"firefox":      {"firefox-*/firefox/firefox"},
	"firefox-beta": {"firefox-beta-*/firefox/firefox"},
	"webkit":       {"webkit-*/pw_run.sh"},
	"chrome":       {"/opt/google/chrome/chrome"},
	"chrome-beta":  {"/opt/google/chrome-beta/chrome"},
	"msedge":       {"/opt/microsoft/msedge/msedge"},
	"msedge-beta":  {"/opt/microsoft/msedge-beta/msedge"},
	"msedge-dev":   {"/opt/microsoft/msedge-dev/msedge"},
}

// defaultBrowsersPath is the playwright browser cache, relative to the user's home.
const defaultBrowsersPath = ".cache/ms-playwright"

// IsSupportedEngine reports whether playwright knows how to install the engine.
func IsSupportedEngine(engine string) bool {
	return slices.Contains(SupportedEngines, engine)
}

// BrowsersPath resolves the directory playwright installs browsers into: the
// configured path, then $PLAYWRIGHT_BROWSERS_PATH, then the cache in home.
func BrowsersPath(configured string, home string) string {
	if configured != "" {
		return configured
	}
	if env := os.Getenv("PLAYWRIGHT_BROWSERS_PATH"); env != "" {
		return env
	}
	return path.Join(home, defaultBrowsersPath)
}

// enginePaths returns the patterns to search for the engine's executable.
func enginePaths(engine string, browsersPath string) []string {
	patterns := []string{}
	for _, p := range enginePatterns[engine] {
		if path.IsAbs(p) {
			patterns = append(patterns, p)
		} else {
			patterns = append(patterns, path.Join(browsersPath, p))
		}
	}
	return patterns
}

// revisionRegexp extracts the revision from a browser directory such as `chromium-1140`.
var revisionRegexp = regexp.MustCompile(`-(\d+)/`)

// latestRevision returns the path with the highest numeric revision. Paths without
// a revision rank lowest; ties keep the earliest path.
func latestRevision(paths []string) string {
	latest := paths[0]
	latestRev := revision(latest)

	for _, p := range paths[1:] {
		if rev := revision(p); rev > latestRev {
			latest, latestRev = p, rev
		}
	}

	return latest
}

func revision(p string) int {
	matches := revisionRegexp.FindAllStringSubmatch(p, -1)
	if len(matches) == 0 {
		return -1
	}
	rev, err := strconv.Atoi(matches[len(matches)-1][1])
	if err != nil {
		return -1
	}
	return rev
}
