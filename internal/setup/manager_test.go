package setup

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jnsgruk/dashprep/internal/system"
	"gopkg.in/yaml.v3"
)

func TestManagerPrepareRecordsStatus(t *testing.T) {
	system := system.NewMockSystem()
	system.MockFile("requirements.txt", []byte("streamlit\n"))

	mgr := newManager(testConfig(t), system, &bytes.Buffer{})
	mgr.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	status, err := mgr.Status()
	if err != nil {
		t.Fatal(err.Error())
	}
	if status != StatusUnknown {
		t.Fatalf("expected status '%s' before first run, got: '%s'", StatusUnknown, status)
	}

	if err := mgr.Prepare(); err != nil {
		t.Fatal(err.Error())
	}

	status, err = mgr.Status()
	if err != nil {
		t.Fatal(err.Error())
	}
	if status != StatusSucceeded {
		t.Fatalf("expected: %s, got: %s", StatusSucceeded, status)
	}

	record := &statusRecord{}
	if err := yaml.Unmarshal([]byte(system.CreatedFiles[statusPath]), record); err != nil {
		t.Fatal(err.Error())
	}
	if record.Finished == nil || !record.Finished.Equal(mgr.now()) {
		t.Fatalf("expected finished time to be recorded, got: %v", record.Finished)
	}
	if record.Config == nil || record.Config.Browser.Engine != "chromium" {
		t.Fatalf("expected configuration to be recorded, got: %+v", record.Config)
	}
}

func TestManagerPrepareRecordsFailure(t *testing.T) {
	system := system.NewMockSystem()
	system.MockCommandReturn(upgradeCommand, nil, fmt.Errorf("exit status 1"))

	mgr := newManager(testConfig(t), system, &bytes.Buffer{})

	if err := mgr.Prepare(); err == nil {
		t.Fatalf("expected prepare to fail")
	}

	status, err := mgr.Status()
	if err != nil {
		t.Fatal(err.Error())
	}
	if status != StatusFailed {
		t.Fatalf("expected: %s, got: %s", StatusFailed, status)
	}

	if !strings.Contains(system.CreatedFiles[statusPath], "upgrade-installer") {
		t.Fatalf("expected the failing step to be recorded, got: %s", system.CreatedFiles[statusPath])
	}
}

func TestManagerStatusInvalidRecord(t *testing.T) {
	system := system.NewMockSystem()
	system.MockFile(statusPath, []byte("status: [not, a, string"))

	mgr := newManager(testConfig(t), system, &bytes.Buffer{})
	if _, err := mgr.Status(); err == nil {
		t.Fatalf("expected an error for a malformed status record")
	}
}
