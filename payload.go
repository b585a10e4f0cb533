// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"encoding/binary"
	"fmt"
)

// Payload is the content of a leaf block. It is either Raw bytes or one of
// the structured schemas (RoomHeader, RoomOffsets, Directory, RoomNames,
// Palette). MarshalBinary returns the exact on-disk bytes after the header.
type Payload interface {
	MarshalBinary() ([]byte, error)
}

// Raw is an opaque payload kept byte for byte.
type Raw []byte

// MarshalBinary returns the bytes unchanged.
func (r Raw) MarshalBinary() ([]byte, error) {
	return []byte(r), nil
}

// RoomHeader is the RMHD block of version 5 and 6 rooms.
type RoomHeader struct {
	Width      uint16
	Height     uint16
	NumObjects uint16
}

func decodeRoomHeader(data []byte) (Payload, error) {
	if len(data) != 6 {
		return nil, fmt.Errorf("room header: got %d bytes, want 6", len(data))
	}
	return &RoomHeader{
		Width:      binary.LittleEndian.Uint16(data[0:]),
		Height:     binary.LittleEndian.Uint16(data[2:]),
		NumObjects: binary.LittleEndian.Uint16(data[4:]),
	}, nil
}

// MarshalBinary encodes the header.
func (h *RoomHeader) MarshalBinary() ([]byte, error) {
	data := make([]byte, 6)
	binary.LittleEndian.PutUint16(data[0:], h.Width)
	binary.LittleEndian.PutUint16(data[2:], h.Height)
	binary.LittleEndian.PutUint16(data[4:], h.NumObjects)
	return data, nil
}

// RoomOffset is one LOFF entry: the absolute offset of a room's ROOM block.
type RoomOffset struct {
	Room   uint8
	Offset uint32
}

// RoomOffsets is the LOFF block at the start of the data file.
type RoomOffsets struct {
	Entries []RoomOffset
}

func decodeRoomOffsets(data []byte) (Payload, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("room offsets: empty")
	}
	count := int(data[0])
	if len(data) != 1+count*5 {
		return nil, fmt.Errorf("room offsets: %d entries need %d bytes, got %d", count, 1+count*5, len(data))
	}
	entries := make([]RoomOffset, count)
	for i := range entries {
		p := 1 + i*5
		entries[i] = RoomOffset{
			Room:   data[p],
			Offset: binary.LittleEndian.Uint32(data[p+1:]),
		}
	}
	return &RoomOffsets{Entries: entries}, nil
}

// MarshalBinary encodes the table.
func (o *RoomOffsets) MarshalBinary() ([]byte, error) {
	if len(o.Entries) > 0xFF {
		return nil, fmt.Errorf("room offsets: too many rooms: %d", len(o.Entries))
	}
	data := make([]byte, 1+len(o.Entries)*5)
	data[0] = byte(len(o.Entries))
	for i, e := range o.Entries {
		p := 1 + i*5
		data[p] = e.Room
		binary.LittleEndian.PutUint32(data[p+1:], e.Offset)
	}
	return data, nil
}

// Lookup returns the offset recorded for a room.
func (o *RoomOffsets) Lookup(room uint8) (uint32, bool) {
	for _, e := range o.Entries {
		if e.Room == room {
			return e.Offset, true
		}
	}
	return 0, false
}
