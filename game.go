// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
)

// relocatedDirectories hold offsets relative to the owning room's ROOM
// block and must follow their resources when rooms are resized.
var relocatedDirectories = []string{TagDSCR, TagDSOU, TagDCOS, TagDCHR}

// Game is a loaded index/data file pair.
//
// A Game has no internal locking. Callers must not mutate or save it from
// more than one goroutine at a time.
type Game struct {
	Info  GameInfo
	Index *Container
	Data  *Container
}

// LoadGame parses the index and data files of a detected game. Both files
// are parsed concurrently; if either fails no Game is returned.
func LoadGame(info GameInfo) (*Game, error) {
	if info.Variant == None {
		return nil, ErrNoGame
	}
	format, err := info.Format()
	if err != nil {
		return nil, err
	}

	var index, data *Container
	var g errgroup.Group
	g.Go(func() error {
		c, err := OpenContainer(info.IndexFile, info.MaskKey, format)
		if err != nil {
			return fmt.Errorf("load index: %w", err)
		}
		index = c
		return nil
	})
	g.Go(func() error {
		c, err := OpenContainer(info.DataFile, info.MaskKey, format)
		if err != nil {
			return fmt.Errorf("load data: %w", err)
		}
		data = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Game{Info: info, Index: index, Data: data}, nil
}

func (g *Game) bundleTags() (bundle, room, root string) {
	if g.Data.Format.small {
		return TagLF, TagRO, TagLE
	}
	return TagLFLF, TagROOM, TagLECF
}

// Rooms returns the room bundles (LFLF blocks) in file order.
func (g *Game) Rooms() []*Block {
	bundle, _, root := g.bundleTags()
	var out []*Block
	for _, b := range g.Data.Blocks {
		switch b.tag {
		case root:
			out = append(out, b.ChildrenByTag(bundle)...)
		case bundle:
			out = append(out, b)
		}
	}
	return out
}

// Room returns the ROOM block of the i-th room bundle.
func (g *Game) Room(i int) (*Block, error) {
	rooms := g.Rooms()
	if i < 0 || i >= len(rooms) {
		return nil, fmt.Errorf("room %d of %d: %w", i, len(rooms), ErrNotFound)
	}
	_, tag, _ := g.bundleTags()
	room := rooms[i].Child(tag)
	if room == nil {
		return nil, fmt.Errorf("room %d: %s %w", i, tag, ErrNotFound)
	}
	return room, nil
}

// roomOffsets returns the LOFF table, if the data file has a decoded one.
func (g *Game) roomOffsets() *RoomOffsets {
	for _, b := range g.Data.FindAll(TagLOFF) {
		if loff, ok := b.Payload().(*RoomOffsets); ok {
			return loff
		}
	}
	return nil
}

// RoomNumber returns the game's room number for a ROOM or LFLF block,
// using the LOFF table.
func (g *Game) RoomNumber(room *Block) (int, bool) {
	if room.tag == TagLFLF {
		room = room.Child(TagROOM)
	}
	loff := g.roomOffsets()
	if room == nil || loff == nil {
		return 0, false
	}
	for _, e := range loff.Entries {
		if int64(e.Offset) == room.offset {
			return int(e.Room), true
		}
	}
	return 0, false
}

// RoomNames returns the RNAM names keyed by room number.
func (g *Game) RoomNames() map[int]string {
	names := make(map[int]string)
	for _, b := range g.Index.FindAll(TagRNAM) {
		rnam, ok := b.Payload().(*RoomNames)
		if !ok {
			continue
		}
		for _, e := range rnam.Entries {
			names[int(e.Room)] = e.Name()
		}
	}
	return names
}

// Save lays out both files, rewrites the offset tables that point into the
// data file and writes the pair masked with the game's key. Both files are
// written to temp files first and only then moved into place.
func (g *Game) Save(indexPath, dataPath string) error {
	if err := g.relayout(); err != nil {
		return err
	}

	dataTmp, err := g.Data.writeTemp(dataPath, g.Info.MaskKey)
	if err != nil {
		return err
	}
	indexTmp, err := g.Index.writeTemp(indexPath, g.Info.MaskKey)
	if err != nil {
		os.Remove(dataTmp)
		return err
	}

	if err := commitTemp(dataTmp, dataPath); err != nil {
		os.Remove(indexTmp)
		return err
	}
	return commitTemp(indexTmp, indexPath)
}

// relayout recomputes both trees and fixes LOFF and directory offsets so
// they point at the resources' new positions.
func (g *Game) relayout() error {
	oldOffset := make(map[int64]*Block)
	g.Data.Walk(func(b *Block, _ int) error {
		oldOffset[b.offset] = b
		return nil
	})

	loff := g.roomOffsets()
	oldRoomOffset := make(map[uint8]int64)
	if loff != nil {
		for _, e := range loff.Entries {
			oldRoomOffset[e.Room] = int64(e.Offset)
		}
	}

	if err := Layout(g.Data); err != nil {
		return fmt.Errorf("layout data: %w", err)
	}

	newRoomOffset := make(map[uint8]int64)
	if loff != nil {
		for i, e := range loff.Entries {
			b, ok := oldOffset[int64(e.Offset)]
			if !ok {
				newRoomOffset[e.Room] = int64(e.Offset)
				continue
			}
			loff.Entries[i].Offset = uint32(b.offset)
			newRoomOffset[e.Room] = b.offset
		}
	}

	for _, tag := range relocatedDirectories {
		for _, blk := range g.Index.FindAll(tag) {
			dir, ok := blk.Payload().(*Directory)
			if !ok {
				continue
			}
			relocate(dir, oldOffset, oldRoomOffset, newRoomOffset)
		}
	}

	// LOFF keeps its size, so this pass only re-validates the data layout.
	if err := Layout(g.Data); err != nil {
		return fmt.Errorf("layout data: %w", err)
	}
	if err := Layout(g.Index); err != nil {
		return fmt.Errorf("layout index: %w", err)
	}
	return nil
}

func relocate(dir *Directory, oldOffset map[int64]*Block, oldRoom, newRoom map[uint8]int64) {
	for i, e := range dir.Entries {
		if e.Room == 0 {
			continue
		}
		base, ok := oldRoom[e.Room]
		if !ok {
			continue
		}
		b, ok := oldOffset[base+int64(e.Offset)]
		if !ok {
			continue
		}
		dir.Entries[i].Offset = uint32(b.offset - newRoom[e.Room])
	}
}
