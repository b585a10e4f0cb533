// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("got %+v, want defaults", *cfg)
	}
	if cfg.SpeechSoundThreshold != 190000000 {
		t.Errorf("threshold: got %d", cfg.SpeechSoundThreshold)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"speech_sound_threshold": 1000, "overlay_labels": false, "sidecar_extension": ""}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SpeechSoundThreshold != 1000 {
		t.Errorf("threshold: got %d, want 1000", cfg.SpeechSoundThreshold)
	}
	if cfg.OverlayLabels {
		t.Errorf("labels: got true, want false")
	}
	if cfg.OverlayFillAlpha != DefaultConfig().OverlayFillAlpha {
		t.Errorf("fill alpha: got %d, want default", cfg.OverlayFillAlpha)
	}
	if cfg.SidecarExtension != DefaultSidecarExtension {
		t.Errorf("sidecar extension: got %q, want %q", cfg.SidecarExtension, DefaultSidecarExtension)
	}

	if l := NewLocator(cfg); l.SpeechSoundThreshold != 1000 {
		t.Errorf("locator threshold: got %d", l.SpeechSoundThreshold)
	}
}

func TestConfigSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.OverlayFillAlpha = 128
	cfg.SidecarExtension = ".hint"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *back != *cfg {
		t.Errorf("got %+v, want %+v", *back, *cfg)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("expected error")
	}
}
