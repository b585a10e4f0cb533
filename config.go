// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultSpeechSoundThreshold is the MONSTER.SOU size from which a
// MONKEY.000/MONKEY.001 install is treated as the speech release.
const DefaultSpeechSoundThreshold = 190000000

// Config holds tunables shared by the locator, the overlay renderer and
// the image import/export helpers.
type Config struct {
	SpeechSoundThreshold int64  `json:"speech_sound_threshold"`
	OverlayFillAlpha     uint8  `json:"overlay_fill_alpha"`
	OverlayLabels        bool   `json:"overlay_labels"`
	SidecarExtension     string `json:"sidecar_extension"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SpeechSoundThreshold: DefaultSpeechSoundThreshold,
		OverlayFillAlpha:     40,
		OverlayLabels:        true,
		SidecarExtension:     DefaultSidecarExtension,
	}
}

// LoadConfig reads a JSON config file. Fields missing from the file keep
// their defaults; a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if cfg.SidecarExtension == "" {
		cfg.SidecarExtension = DefaultConfig().SidecarExtension
	}
	return cfg, nil
}

// Save writes the configuration as indented JSON.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
