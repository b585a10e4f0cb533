// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

// scummtool inspects and rewrites SCUMM game resource files.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/suprsokr/go-scumm"
)

// stdout receives command output.
var stdout io.Writer = os.Stdout

type command struct {
	name  string
	usage string
	run   func(cfg *scumm.Config, args []string) error
}

var commands = []command{
	{"detect", "detect <game dir>", runDetect},
	{"tree", "tree [-index] [-depth n] <game dir>", runTree},
	{"boxes", "boxes -room n <game dir>", runBoxes},
	{"matrix", "matrix -room n <game dir>", runMatrix},
	{"overlay", "overlay -room n [-background img] -o out.png <game dir>", runOverlay},
	{"extract", "extract [-index] -path LECF/LFLF[0]/ROOM/BOXD -o out.bin <game dir>", runExtract},
	{"resave", "resave -o <output dir> <game dir>", runResave},
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("scummtool: ")

	configPath := flag.String("config", "scummtool.json", "Path to the JSON config file")
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "SCUMM resource tool\n\n")
		fmt.Fprintf(out, "Usage:\n")
		fmt.Fprintf(out, "  %s [flags] <command> [command flags] <game dir>\n\n", os.Args[0])
		fmt.Fprintf(out, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(out, "\nCommands:\n")
		for _, c := range commands {
			fmt.Fprintf(out, "  %s\n", c.usage)
		}
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := scumm.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	name := flag.Arg(0)
	for _, c := range commands {
		if c.name != name {
			continue
		}
		if err := c.run(cfg, flag.Args()[1:]); err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		return
	}

	fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", name)
	flag.Usage()
	os.Exit(1)
}

// loadGame detects and loads the game found at path.
func loadGame(cfg *scumm.Config, path string) (*scumm.Game, error) {
	info := scumm.NewLocator(cfg).Find(path)
	if info.Variant == scumm.None {
		return nil, fmt.Errorf("%s: %w", path, scumm.ErrNoGame)
	}
	log.Printf("Loading %s (%s, %s)", info.Variant, info.IndexFile, info.DataFile)
	return scumm.LoadGame(info)
}

// gameDir returns the single positional argument of a command.
func gameDir(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("expected one game directory, got %d arguments", fs.NArg())
	}
	return fs.Arg(0), nil
}
