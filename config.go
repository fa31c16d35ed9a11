package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Width         int      `toml:"width"`
	Height        int      `toml:"height"`
	LightMode     bool     `toml:"light_mode"`
	Palette       []string `toml:"palette"`
	BrushSize     int      `toml:"brush_size"`
	SnapshotScale float64  `toml:"snapshot_scale"`
	SaveDirectory string   `toml:"save_directory"`
	LogFile       string   `toml:"log_file"`
}

func defaultConfig() *Config {
	return &Config{
		Width:         16,
		Height:        16,
		Palette:       append([]string(nil), defaultPaletteHex...),
		BrushSize:     1,
		SnapshotScale: 1,
	}
}

func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".spritegrid.toml")
}

// loadConfig reads path over the defaults. A missing file is not an error;
// on any other error the defaults are returned with it.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()
	if path == "" {
		return config, nil
	}

	var file Config
	if _, err := toml.DecodeFile(path, &file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("load config %s: %w", path, err)
	}

	if file.Width > 0 {
		config.Width = clampInt(file.Width, minSpriteSize, maxSpriteSize)
	}
	if file.Height > 0 {
		config.Height = clampInt(file.Height, minSpriteSize, maxSpriteSize)
	}
	config.LightMode = file.LightMode
	if len(file.Palette) > 0 {
		if _, err := parsePalette(file.Palette); err != nil {
			return config, fmt.Errorf("load config %s: %w", path, err)
		}
		config.Palette = file.Palette
	}
	if file.BrushSize > 0 {
		config.BrushSize = clampInt(file.BrushSize, 1, 8)
	}
	if file.SnapshotScale > 0 {
		config.SnapshotScale = file.SnapshotScale
	}
	config.SaveDirectory = expandHome(file.SaveDirectory)
	config.LogFile = expandHome(file.LogFile)
	return config, nil
}

func expandHome(path string) string {
	if path == "" || !strings.HasPrefix(path, "~") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
