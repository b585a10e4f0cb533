// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"encoding/binary"
	"fmt"
)

// DirectoryEntry locates one resource. Offset is relative to the ROOM block
// of the owning room.
type DirectoryEntry struct {
	Room   uint8
	Offset uint32
}

// Directory is an index-file table (DROO, DSCR, DSOU, DCOS, DCHR). On disk
// it is a uint16 count, then every room number, then every offset.
type Directory struct {
	Entries []DirectoryEntry
}

func decodeDirectorySchema(data []byte) (Payload, error) {
	return decodeDirectory(data)
}

func decodeDirectory(data []byte) (*Directory, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("directory: %d bytes", len(data))
	}
	count := int(binary.LittleEndian.Uint16(data))
	if len(data) != 2+count*5 {
		return nil, fmt.Errorf("directory: %d entries need %d bytes, got %d", count, 2+count*5, len(data))
	}

	d := &Directory{Entries: make([]DirectoryEntry, count)}
	for i := range d.Entries {
		d.Entries[i] = DirectoryEntry{
			Room:   data[2+i],
			Offset: binary.LittleEndian.Uint32(data[2+count+i*4:]),
		}
	}
	return d, nil
}

// MarshalBinary encodes the table.
func (d *Directory) MarshalBinary() ([]byte, error) {
	count := len(d.Entries)
	if count > 0xFFFF {
		return nil, fmt.Errorf("directory: too many entries: %d", count)
	}
	data := make([]byte, 2+count*5)
	binary.LittleEndian.PutUint16(data, uint16(count))
	for i, e := range d.Entries {
		data[2+i] = e.Room
		binary.LittleEndian.PutUint32(data[2+count+i*4:], e.Offset)
	}
	return data, nil
}
