package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spritegrid.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if !reflect.DeepEqual(cfg, defaultConfig()) {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil || cfg.Width != 16 || cfg.Height != 16 {
		t.Errorf("got %+v, %v", cfg, err)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := writeConfig(t, `
width = 32
height = 100
light_mode = true
palette = ["#000000", "#ff0000"]
brush_size = 12
snapshot_scale = 4.0
save_directory = "/tmp/sprites"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Width != 32 || cfg.Height != maxSpriteSize {
		t.Errorf("size = %dx%d, want 32x%d", cfg.Width, cfg.Height, maxSpriteSize)
	}
	if !cfg.LightMode {
		t.Error("light_mode not read")
	}
	if !reflect.DeepEqual(cfg.Palette, []string{"#000000", "#ff0000"}) {
		t.Errorf("palette = %v", cfg.Palette)
	}
	if cfg.BrushSize != 8 {
		t.Errorf("brush size = %d, want it clamped to 8", cfg.BrushSize)
	}
	if cfg.SnapshotScale != 4 {
		t.Errorf("snapshot scale = %v", cfg.SnapshotScale)
	}
	if cfg.SaveDirectory != "/tmp/sprites" {
		t.Errorf("save directory = %q", cfg.SaveDirectory)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad toml", "width = = 3"},
		{"bad color", `palette = ["#12"]`},
		{"wrong type", `width = "wide"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if cfg == nil || cfg.Width != 16 {
				t.Error("defaults should come back with the error")
			}
		})
	}
}

func TestGetSavePath(t *testing.T) {
	cfg := defaultConfig()
	if got := cfg.GetSavePath("a.png"); got != "a.png" {
		t.Errorf("got %q", got)
	}

	dir := filepath.Join(t.TempDir(), "out")
	cfg.SaveDirectory = dir
	if got := cfg.GetSavePath("a.png"); got != filepath.Join(dir, "a.png") {
		t.Errorf("got %q", got)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("save directory not created: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/sprites"); got != filepath.Join(home, "sprites") {
		t.Errorf("got %q", got)
	}
	if got := expandHome("/abs"); got != "/abs" {
		t.Errorf("got %q", got)
	}
}
