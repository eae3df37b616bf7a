package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/radwaste/internal/nuclide"
	"github.com/san-kum/radwaste/internal/render"
	"github.com/san-kum/radwaste/internal/scenario"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DataDir != DefaultDataDir {
		t.Errorf("expected data dir %s, got %s", DefaultDataDir, cfg.DataDir)
	}
	if cfg.ResultPattern != scenario.DefaultPattern {
		t.Errorf("unexpected result pattern %s", cfg.ResultPattern)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radwaste.yaml")
	data := []byte(`
data_dir: /srv/radwaste
preset: late-failure
server:
  addr: ":9000"
  read_timeout: 5s
chart:
  width: 640
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.DataDir != "/srv/radwaste" {
		t.Errorf("expected data dir override, got %s", cfg.DataDir)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("expected addr :9000, got %s", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("expected read timeout 5s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != DefaultWriteTimeout {
		t.Errorf("expected default write timeout, got %v", cfg.Server.WriteTimeout)
	}
	if cfg.Chart.Width != 640 || cfg.Chart.Height != DefaultChartHeight {
		t.Errorf("unexpected chart config %+v", cfg.Chart)
	}
	if cfg.Sources != nuclide.DefaultSources() {
		t.Errorf("expected default sources, got %+v", cfg.Sources)
	}

	sel := cfg.Selections()
	if sel.Onset != scenario.Onset5000 || sel.Completion != scenario.Completion10M {
		t.Errorf("preset not applied: %+v", sel)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("RADWASTE_DATA_DIR", "/tmp/data")
	t.Setenv("RADWASTE_ADDR", "127.0.0.1:8080")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.DataDir != "/tmp/data" {
		t.Errorf("expected env data dir, got %s", cfg.DataDir)
	}
	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("expected env addr, got %s", cfg.Server.Addr)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad pattern", "result_pattern: results.csv\n"},
		{"unknown preset", "preset: nowhere\n"},
		{"bad chart", "chart:\n  width: -1\n"},
		{"not yaml", "data_dir: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	cfg := DefaultConfig()
	cfg.Preset = "inventory"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Preset != "inventory" || loaded.Server != cfg.Server {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestGetPreset(t *testing.T) {
	sel, ok := GetPreset("inventory")
	if !ok {
		t.Fatal("expected preset")
	}
	if sel.Sort != nuclide.ByQuantity || sel.YScale != render.Log {
		t.Errorf("unexpected preset %+v", sel)
	}

	if _, ok := GetPreset("nonexistent"); ok {
		t.Error("expected no preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
	for _, name := range names {
		sel, _ := GetPreset(name)
		if err := sel.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
