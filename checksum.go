// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"slices"
)

// Checksum returns the CRC-32 (IEEE) of a block's tag and content. For a
// leaf the content is its payload; for a container it is the checksums of
// its children in order. Offsets and sizes are not included, so a block that
// only moved keeps its checksum. A payload that cannot be encoded is an
// error.
func Checksum(b *Block) (uint32, error) {
	h := crc32.NewIEEE()
	h.Write([]byte(b.tag))
	if b.IsContainer() {
		var buf [4]byte
		for _, c := range b.children {
			sum, err := Checksum(c)
			if err != nil {
				return 0, err
			}
			binary.BigEndian.PutUint32(buf[:], sum)
			h.Write(buf[:])
		}
		return h.Sum32(), nil
	}
	data, err := b.payload.MarshalBinary()
	if err != nil {
		return 0, fmt.Errorf("checksum %s: %w", b.Path(), err)
	}
	h.Write(data)
	return h.Sum32(), nil
}

// Changed returns the paths of leaf blocks whose checksum differs between
// two trees. Blocks are paired by path; a path present on one side only is
// reported as changed.
func Changed(before, after *Container) ([]string, error) {
	sums := make(map[string]uint32)
	err := before.Walk(func(b *Block, _ int) error {
		if b.IsContainer() {
			return nil
		}
		sum, err := Checksum(b)
		if err != nil {
			return err
		}
		sums[b.Path()] = sum
		return nil
	})
	if err != nil {
		return nil, err
	}

	var out []string
	err = after.Walk(func(b *Block, _ int) error {
		if b.IsContainer() {
			return nil
		}
		sum, err := Checksum(b)
		if err != nil {
			return err
		}
		p := b.Path()
		if old, ok := sums[p]; !ok || old != sum {
			out = append(out, p)
		}
		delete(sums, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(sums))
	for p := range sums {
		removed = append(removed, p)
	}
	slices.Sort(removed)
	return append(out, removed...), nil
}
