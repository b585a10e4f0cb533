// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"encoding/binary"
	"fmt"
)

// Geometry is the navigation data of one room.
type Geometry struct {
	Boxes  []WalkBox
	Slots  []ScaleSlot
	Matrix *BoxMatrix // nil when the room has no BOXM block

	// BoxCount is the record count declared by BOXD, sentinels included.
	BoxCount int
}

// RoomGeometry decodes BOXD, SCAL and BOXM from a ROOM block, or from the
// ROOM inside an LFLF block. A missing BOXD is reported as ErrNotFound;
// SCAL and BOXM are optional.
func RoomGeometry(room *Block) (*Geometry, error) {
	if room.Tag() == TagLFLF {
		if r := room.Child(TagROOM); r != nil {
			room = r
		}
	}

	boxd := room.Child(TagBOXD)
	if boxd == nil {
		return nil, fmt.Errorf("room geometry: BOXD %w", ErrNotFound)
	}
	boxData, err := boxd.Bytes()
	if err != nil {
		return nil, fmt.Errorf("room geometry: %w", err)
	}

	g := &Geometry{}
	if len(boxData) >= 2 {
		g.BoxCount = int(binary.LittleEndian.Uint16(boxData))
	}

	if scal := room.Child(TagSCAL); scal != nil {
		data, err := scal.Bytes()
		if err != nil {
			return nil, fmt.Errorf("room geometry: %w", err)
		}
		g.Slots = DecodeScaleSlots(data)
	}
	g.Boxes = DecodeWalkBoxes(boxData, g.Slots)

	if boxm := room.Child(TagBOXM); boxm != nil {
		data, err := boxm.Bytes()
		if err != nil {
			return nil, fmt.Errorf("room geometry: %w", err)
		}
		g.Matrix = DecodeBoxMatrix(data, g.BoxCount)
	}
	return g, nil
}
