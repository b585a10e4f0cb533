// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"fmt"
	"image/color"
)

const paletteEntries = 256

// Palette is a CLUT or APAL block: 256 RGB triplets.
type Palette struct {
	Colors [paletteEntries]color.RGBA
}

func decodePalette(data []byte) (Payload, error) {
	if len(data) != paletteEntries*3 {
		return nil, fmt.Errorf("palette: got %d bytes, want %d", len(data), paletteEntries*3)
	}
	p := &Palette{}
	for i := range p.Colors {
		p.Colors[i] = color.RGBA{R: data[i*3], G: data[i*3+1], B: data[i*3+2], A: 0xFF}
	}
	return p, nil
}

// MarshalBinary encodes the palette. Alpha is dropped.
func (p *Palette) MarshalBinary() ([]byte, error) {
	data := make([]byte, paletteEntries*3)
	for i, c := range p.Colors {
		data[i*3] = c.R
		data[i*3+1] = c.G
		data[i*3+2] = c.B
	}
	return data, nil
}

// ColorPalette converts to an image/color palette for paletted images.
func (p *Palette) ColorPalette() color.Palette {
	pal := make(color.Palette, paletteEntries)
	for i, c := range p.Colors {
		pal[i] = c
	}
	return pal
}

// RoomPalette returns the default palette of a ROOM block: its CLUT, or the
// first APAL under PALS/WRAP.
func RoomPalette(room *Block) (*Palette, error) {
	if b := room.Child(TagCLUT); b != nil {
		if p, ok := b.Payload().(*Palette); ok {
			return p, nil
		}
	}
	if b, err := room.Lookup("PALS/WRAP/APAL"); err == nil {
		if p, ok := b.Payload().(*Palette); ok {
			return p, nil
		}
	}
	return nil, fmt.Errorf("room palette: %w", ErrNotFound)
}
