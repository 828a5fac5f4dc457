package launchpad

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "launchpad.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Panel.Width != DefaultConfig().Panel.Width {
		t.Error("missing file should yield defaults")
	}

	if _, err := LoadConfig(""); err != nil {
		t.Errorf("LoadConfig(\"\") = %v, want defaults", err)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  title: demo
panel:
  layout: wrap
  cardWidth: 120
automation:
  enabled: true
  startDelay: 500ms
drag:
  rotationLimit: 8
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Window.Title != "demo" || cfg.Window.Width != 800 {
		t.Errorf("window = %+v, want title overridden and width kept", cfg.Window)
	}
	if cfg.Panel.Layout != "wrap" || cfg.Panel.CardWidth != 120 || cfg.Panel.CardHeight != 72 {
		t.Errorf("panel = %+v", cfg.Panel)
	}
	if !cfg.Automation.Enabled || cfg.Automation.StartDelay != 500*time.Millisecond {
		t.Errorf("automation = %+v", cfg.Automation)
	}
	if cfg.Automation.ReplayDelay != DefaultConfig().Automation.ReplayDelay {
		t.Error("unset automation fields should keep their defaults")
	}

	rc := cfg.Drag.ReorderConfig()
	if rc.RotationLimit != 8 || rc.Threshold != defaultDragThreshold {
		t.Errorf("ReorderConfig = %+v", rc)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed", "panel: [", "load config"},
		{"bad layout", "panel: {layout: grid}", "panel.layout"},
		{"card wider than panel", "panel: {width: 100, cardWidth: 120}", "cannot fit one card"},
		{"negative gap", "panel: {gap: -1}", "must not be negative"},
		{"zero window", "window: {width: 0}", "must be positive"},
		{"negative drag", "drag: {threshold: -2}", "drag settings"},
		{"negative delay", "automation: {replayDelay: -1s}", "replayDelay"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}
