// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

const (
	roomNameSize = 9
	roomNameMask = 0xFF
)

// RoomName is one RNAM entry. The name is stored masked with 0xFF and
// zero padded to nine bytes; the stored bytes are kept so that padding
// survives a round trip.
type RoomName struct {
	Room uint8
	raw  [roomNameSize]byte
}

// Name decodes the room name from code page 437.
func (n RoomName) Name() string {
	var plain [roomNameSize]byte
	Mask(plain[:], n.raw[:], roomNameMask)
	if i := bytes.IndexByte(plain[:], 0); i >= 0 {
		return decodeCP437(plain[:i])
	}
	return decodeCP437(plain[:])
}

// RoomNames is the RNAM block of the index file.
type RoomNames struct {
	Entries []RoomName
}

func decodeRoomNames(data []byte) (Payload, error) {
	names := &RoomNames{}
	p := 0
	for {
		if p >= len(data) {
			return nil, fmt.Errorf("room names: missing terminator")
		}
		if data[p] == 0 {
			p++
			break
		}
		if p+1+roomNameSize > len(data) {
			return nil, fmt.Errorf("room names: entry at %d truncated", p)
		}
		var n RoomName
		n.Room = data[p]
		copy(n.raw[:], data[p+1:p+1+roomNameSize])
		names.Entries = append(names.Entries, n)
		p += 1 + roomNameSize
	}
	if p != len(data) {
		return nil, fmt.Errorf("room names: %d bytes after terminator", len(data)-p)
	}
	return names, nil
}

// MarshalBinary encodes the table with its terminator.
func (r *RoomNames) MarshalBinary() ([]byte, error) {
	data := make([]byte, 0, len(r.Entries)*(1+roomNameSize)+1)
	for _, n := range r.Entries {
		data = append(data, n.Room)
		data = append(data, n.raw[:]...)
	}
	return append(data, 0), nil
}

// Name returns the name of a room.
func (r *RoomNames) Name(room uint8) (string, bool) {
	for _, n := range r.Entries {
		if n.Room == room {
			return n.Name(), true
		}
	}
	return "", false
}

// SetName sets or adds the name of a room. Names longer than nine bytes in
// code page 437 are rejected.
func (r *RoomNames) SetName(room uint8, name string) error {
	if room == 0 {
		return fmt.Errorf("room 0 cannot be named")
	}
	enc, err := charmap.CodePage437.NewEncoder().Bytes([]byte(name))
	if err != nil {
		return fmt.Errorf("encode room name %q: %w", name, err)
	}
	if len(enc) > roomNameSize {
		return fmt.Errorf("room name %q too long: %d bytes, max %d", name, len(enc), roomNameSize)
	}

	var plain [roomNameSize]byte
	copy(plain[:], enc)
	entry := RoomName{Room: room}
	Mask(entry.raw[:], plain[:], roomNameMask)

	for i := range r.Entries {
		if r.Entries[i].Room == room {
			r.Entries[i] = entry
			return nil
		}
	}
	r.Entries = append(r.Entries, entry)
	return nil
}

func decodeCP437(b []byte) string {
	s, err := charmap.CodePage437.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}
