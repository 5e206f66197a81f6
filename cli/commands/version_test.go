package commands

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/petal-labs/chatstream/cli/config"
)

func TestVersionVariables(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Commit == "" {
		t.Error("Commit should not be empty")
	}
	if BuildDate == "" {
		t.Error("BuildDate should not be empty")
	}
}

func TestVersionText(t *testing.T) {
	ta := newTestApp(t, &config.Config{}, "")
	if code := ta.run("version"); code != ExitSuccess {
		t.Fatalf("exit = %d, want %d", code, ExitSuccess)
	}

	out := ta.stdout.String()
	if !strings.HasPrefix(out, "chatstream "+Version+"\n") {
		t.Errorf("stdout = %q, want chatstream %s header", out, Version)
	}
	if !strings.Contains(out, runtime.GOOS+"/"+runtime.GOARCH) {
		t.Errorf("stdout = %q, want platform", out)
	}
}

func TestVersionJSON(t *testing.T) {
	ta := newTestApp(t, &config.Config{}, "")
	if code := ta.run("--json", "version"); code != ExitSuccess {
		t.Fatalf("exit = %d, want %d", code, ExitSuccess)
	}

	var out map[string]string
	if err := json.Unmarshal(ta.stdout.Bytes(), &out); err != nil {
		t.Fatalf("decode stdout: %v", err)
	}
	if out["version"] != Version {
		t.Errorf("version = %q, want %q", out["version"], Version)
	}
	if out["goVersion"] != runtime.Version() {
		t.Errorf("goVersion = %q, want %q", out["goVersion"], runtime.Version())
	}
}
