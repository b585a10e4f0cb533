// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/suprsokr/go-scumm"
)

const (
	defaultRoomWidth  = 320
	defaultRoomHeight = 200
)

func runDetect(cfg *scumm.Config, args []string) error {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)
	fs.Parse(args)
	dir, err := gameDir(fs)
	if err != nil {
		return err
	}

	info := scumm.NewLocator(cfg).Find(dir)
	if info.Variant == scumm.None {
		fmt.Fprintln(stdout, "No supported game found")
		return nil
	}
	fmt.Fprintf(stdout, "Game:    %s\n", info.Variant)
	fmt.Fprintf(stdout, "Index:   %s\n", info.IndexFile)
	fmt.Fprintf(stdout, "Data:    %s\n", info.DataFile)
	fmt.Fprintf(stdout, "Version: %d\n", info.Version)
	if info.Masked {
		fmt.Fprintf(stdout, "Mask:    0x%02X\n", info.MaskKey)
	} else {
		fmt.Fprintf(stdout, "Mask:    none\n")
	}
	return nil
}

func runTree(cfg *scumm.Config, args []string) error {
	fs := flag.NewFlagSet("tree", flag.ExitOnError)
	index := fs.Bool("index", false, "Print the index file instead of the data file")
	depth := fs.Int("depth", -1, "Maximum depth to print, -1 for all")
	fs.Parse(args)
	dir, err := gameDir(fs)
	if err != nil {
		return err
	}

	game, err := loadGame(cfg, dir)
	if err != nil {
		return err
	}
	c := game.Data
	if *index {
		c = game.Index
	}

	names := game.RoomNames()
	return c.Walk(func(b *scumm.Block, d int) error {
		if *depth >= 0 && d > *depth {
			return nil
		}
		line := fmt.Sprintf("%s%s @0x%08X size %d", strings.Repeat("  ", d), b.Tag(), b.Offset(), b.Size())
		switch p := b.Payload().(type) {
		case nil:
		case scumm.Raw:
		default:
			line += fmt.Sprintf(" [%T]", p)
		}
		if b.Tag() == scumm.TagLFLF {
			if n, ok := game.RoomNumber(b); ok {
				line += fmt.Sprintf(" room %d", n)
				if name := names[n]; name != "" {
					line += fmt.Sprintf(" %q", name)
				}
			}
		}
		fmt.Fprintln(stdout, line)
		return nil
	})
}

// roomGeometry loads the game and decodes the geometry of one room.
func roomGeometry(cfg *scumm.Config, fs *flag.FlagSet, room int) (*scumm.Game, *scumm.Block, *scumm.Geometry, error) {
	dir, err := gameDir(fs)
	if err != nil {
		return nil, nil, nil, err
	}
	game, err := loadGame(cfg, dir)
	if err != nil {
		return nil, nil, nil, err
	}
	blk, err := game.Room(room)
	if err != nil {
		return nil, nil, nil, err
	}
	geo, err := scumm.RoomGeometry(blk)
	if err != nil {
		return nil, nil, nil, err
	}
	return game, blk, geo, nil
}

func runBoxes(cfg *scumm.Config, args []string) error {
	fs := flag.NewFlagSet("boxes", flag.ExitOnError)
	room := fs.Int("room", 0, "Room bundle index")
	fs.Parse(args)

	_, _, geo, err := roomGeometry(cfg, fs, *room)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%d boxes (%d declared), %d scale slots\n", len(geo.Boxes), geo.BoxCount, len(geo.Slots))
	for _, s := range geo.Slots {
		fmt.Fprintf(stdout, "  slot %d: y %d..%d scale %d..%d (stride %d)\n", s.Index, s.Y1, s.Y2, s.Scale1, s.Scale2, s.Stride)
	}
	for i := range geo.Boxes {
		b := &geo.Boxes[i]
		line := fmt.Sprintf("  box %-8s flags 0x%04X %v", scumm.BoxLabel(b), b.Flags, b.Points)
		if s, ok := b.ComputedScale(); ok {
			line += fmt.Sprintf(" -> %.1f%%", s)
		} else if b.UsesScaleSlot() {
			line += " -> slot missing"
		}
		fmt.Fprintln(stdout, line)
	}
	return nil
}

func runMatrix(cfg *scumm.Config, args []string) error {
	fs := flag.NewFlagSet("matrix", flag.ExitOnError)
	room := fs.Int("room", 0, "Room bundle index")
	fs.Parse(args)

	_, _, geo, err := roomGeometry(cfg, fs, *room)
	if err != nil {
		return err
	}
	m := geo.Matrix
	if m == nil {
		fmt.Fprintln(stdout, "Room has no BOXM block")
		return nil
	}

	fmt.Fprintf(stdout, "%dx%d %s matrix, header skip %d, values %v\n", m.Side, m.Side, m.Mode, m.Offset, m.Values)
	for _, row := range m.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprintf("%02X", v)
		}
		fmt.Fprintln(stdout, "  " + strings.Join(cells, " "))
	}
	return nil
}

func runOverlay(cfg *scumm.Config, args []string) error {
	fs := flag.NewFlagSet("overlay", flag.ExitOnError)
	room := fs.Int("room", 0, "Room bundle index")
	background := fs.String("background", "", "Background image to draw on")
	output := fs.String("o", "overlay.png", "Output image (.png, .jpg or .bmp)")
	fs.Parse(args)

	_, blk, geo, err := roomGeometry(cfg, fs, *room)
	if err != nil {
		return err
	}

	var canvas draw.Image
	if *background != "" {
		img, err := imgio.Open(*background)
		if err != nil {
			return fmt.Errorf("open background: %w", err)
		}
		rgba := image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
		canvas = rgba
	} else {
		w, h := defaultRoomWidth, defaultRoomHeight
		if rmhd := blk.Child(scumm.TagRMHD); rmhd != nil {
			if hdr, ok := rmhd.Payload().(*scumm.RoomHeader); ok && hdr.Width > 0 && hdr.Height > 0 {
				w, h = int(hdr.Width), int(hdr.Height)
			}
		}
		canvas = image.NewRGBA(image.Rect(0, 0, w, h))
	}

	scumm.DrawWalkBoxes(canvas, geo.Boxes, scumm.OverlayOptionsFromConfig(cfg))

	if err := os.MkdirAll(filepath.Dir(*output), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := scumm.SaveImage(*output, canvas); err != nil {
		return err
	}
	log.Printf("Wrote %s", *output)
	return nil
}

func runExtract(cfg *scumm.Config, args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	index := fs.Bool("index", false, "Look the path up in the index file")
	path := fs.String("path", "", "Block path, e.g. LECF/LFLF[0]/ROOM/BOXD")
	output := fs.String("o", "", "Output file (defaults to the block tag)")
	fs.Parse(args)
	if *path == "" {
		return fmt.Errorf("-path is required")
	}
	dir, err := gameDir(fs)
	if err != nil {
		return err
	}

	game, err := loadGame(cfg, dir)
	if err != nil {
		return err
	}
	c := game.Data
	if *index {
		c = game.Index
	}
	blk, err := c.Lookup(*path)
	if err != nil {
		return err
	}
	data, err := blk.Bytes()
	if err != nil {
		return err
	}

	out := *output
	if out == "" {
		out = blk.Tag() + ".bin"
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	sum, err := scumm.Checksum(blk)
	if err != nil {
		return err
	}
	log.Printf("Wrote %d bytes of %s to %s (crc32 %08X)", len(data), blk.Path(), out, sum)
	return nil
}

func runResave(cfg *scumm.Config, args []string) error {
	fs := flag.NewFlagSet("resave", flag.ExitOnError)
	output := fs.String("o", "", "Output directory")
	fs.Parse(args)
	if *output == "" {
		return fmt.Errorf("-o is required")
	}
	dir, err := gameDir(fs)
	if err != nil {
		return err
	}

	game, err := loadGame(cfg, dir)
	if err != nil {
		return err
	}

	indexPath := filepath.Join(*output, filepath.Base(game.Info.IndexFile))
	dataPath := filepath.Join(*output, filepath.Base(game.Info.DataFile))
	if err := game.Save(indexPath, dataPath); err != nil {
		return err
	}
	log.Printf("Wrote %s and %s", indexPath, dataPath)

	format, err := game.Info.Format()
	if err != nil {
		return err
	}
	saved, err := scumm.OpenContainer(dataPath, game.Info.MaskKey, format)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	changed, err := scumm.Changed(game.Data, saved)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	slices.Sort(changed)
	for _, p := range changed {
		log.Printf("Changed: %s", p)
	}
	log.Printf("%d blocks differ after reload", len(changed))
	return nil
}
