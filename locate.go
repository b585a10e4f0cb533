// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"os"
	"path/filepath"
	"strings"
)

// Variant identifies a supported game release.
type Variant int

const (
	None Variant = iota
	DayOfTheTentacle
	CurseOfMonkeyIsland
	SamAndMax
	FateOfAtlantis
	MonkeyIsland2
	MonkeyIsland1Floppy
	MonkeyIsland1VGA
	MonkeyIsland1VGASpeech
)

var variantNames = map[Variant]string{
	None:                   "none",
	DayOfTheTentacle:       "Day of the Tentacle",
	CurseOfMonkeyIsland:    "The Curse of Monkey Island",
	SamAndMax:              "Sam & Max Hit the Road",
	FateOfAtlantis:         "Indiana Jones and the Fate of Atlantis",
	MonkeyIsland2:          "Monkey Island 2: LeChuck's Revenge",
	MonkeyIsland1Floppy:    "The Secret of Monkey Island (floppy)",
	MonkeyIsland1VGA:       "The Secret of Monkey Island (VGA)",
	MonkeyIsland1VGASpeech: "The Secret of Monkey Island (VGA, speech)",
}

func (v Variant) String() string {
	if s, ok := variantNames[v]; ok {
		return s
	}
	return "unknown"
}

// GameInfo describes a detected game.
type GameInfo struct {
	Variant   Variant
	IndexFile string
	DataFile  string
	Masked    bool
	MaskKey   byte
	Version   int
}

// Format returns the header format for the game's engine version.
func (g GameInfo) Format() (*HeaderFormat, error) {
	return FormatForVersion(g.Version)
}

// signature is one known index/data file pair.
type signature struct {
	variant Variant
	index   string
	data    string
	key     byte
	version int

	// speechProbe promotes the match to MonkeyIsland1VGASpeech when
	// MONSTER.SOU is large enough.
	speechProbe bool
}

// signatures in priority order; the first pair present wins.
var signatures = []signature{
	{variant: DayOfTheTentacle, index: "TENTACLE.000", data: "TENTACLE.001", key: DefaultMaskKey, version: 6},
	{variant: CurseOfMonkeyIsland, index: "COMI.LA0", data: "COMI.LA1", key: 0, version: 8},
	{variant: SamAndMax, index: "SAMNMAX.000", data: "SAMNMAX.001", key: DefaultMaskKey, version: 6},
	{variant: FateOfAtlantis, index: "ATLANTIS.000", data: "ATLANTIS.001", key: DefaultMaskKey, version: 5},
	{variant: MonkeyIsland2, index: "MONKEY2.000", data: "MONKEY2.001", key: DefaultMaskKey, version: 5},
	{variant: MonkeyIsland1Floppy, index: "000.LFL", data: "DISK01.LEC", key: DefaultMaskKey, version: 4},
	{variant: MonkeyIsland1VGA, index: "MONKEY.000", data: "MONKEY.001", key: DefaultMaskKey, version: 5, speechProbe: true},
}

const speechSoundFile = "MONSTER.SOU"

// Locator detects games from their installation directory.
type Locator struct {
	SpeechSoundThreshold int64
}

// NewLocator creates a locator from a config; nil uses the defaults.
func NewLocator(cfg *Config) *Locator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Locator{SpeechSoundThreshold: cfg.SpeechSoundThreshold}
}

// FindGame detects the game installed next to path with default settings.
func FindGame(path string) GameInfo {
	return NewLocator(nil).Find(path)
}

// Find probes the directory containing path (or path itself if it is a
// directory) for the known file pairs. Only file existence and, for one
// release, file size are checked. It returns a GameInfo with Variant None
// when nothing matches.
func (l *Locator) Find(path string) GameInfo {
	dir := path
	if fi, err := os.Stat(path); err != nil || !fi.IsDir() {
		dir = filepath.Dir(path)
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	files := listFiles(dir)
	for _, sig := range signatures {
		index, ok1 := files[sig.index]
		data, ok2 := files[sig.data]
		if !ok1 || !ok2 {
			continue
		}

		info := GameInfo{
			Variant:   sig.variant,
			IndexFile: filepath.Join(dir, index),
			DataFile:  filepath.Join(dir, data),
			Masked:    sig.key != 0,
			MaskKey:   sig.key,
			Version:   sig.version,
		}
		if sig.speechProbe && l.hasSpeech(dir, files) {
			info.Variant = MonkeyIsland1VGASpeech
		}
		return info
	}
	return GameInfo{Variant: None}
}

func (l *Locator) hasSpeech(dir string, files map[string]string) bool {
	name, ok := files[speechSoundFile]
	if !ok {
		return false
	}
	fi, err := os.Stat(filepath.Join(dir, name))
	if err != nil {
		return false
	}
	return fi.Size() >= l.SpeechSoundThreshold
}

// listFiles maps upper-cased names of the non-directory entries in dir to their
// on-disk names. os.ReadDir sorts by name, so the first spelling wins when
// several only differ in case.
func listFiles(dir string) map[string]string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	files := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		key := strings.ToUpper(e.Name())
		if _, seen := files[key]; !seen {
			files[key] = e.Name()
		}
	}
	return files
}
