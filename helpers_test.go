// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// bigBlock builds a block with an 8-byte big-endian header.
func bigBlock(tag string, body ...[]byte) []byte {
	var payload []byte
	for _, b := range body {
		payload = append(payload, b...)
	}
	out := make([]byte, 8, 8+len(payload))
	copy(out, tag)
	binary.BigEndian.PutUint32(out[4:], uint32(8+len(payload)))
	return append(out, payload...)
}

// smallBlock builds a block with a 6-byte little-endian header.
func smallBlock(tag string, body ...[]byte) []byte {
	var payload []byte
	for _, b := range body {
		payload = append(payload, b...)
	}
	out := make([]byte, 6, 6+len(payload))
	binary.LittleEndian.PutUint32(out, uint32(6+len(payload)))
	copy(out[4:], tag)
	return append(out, payload...)
}

// le16 encodes values as consecutive little-endian 16-bit words.
func le16(values ...int) []byte {
	out := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(v)))
	}
	return out
}

func le32(v uint32) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, v)
	return out
}

// writeMasked writes data to path masked with key.
func writeMasked(t testing.TB, path string, data []byte, key byte) {
	t.Helper()
	masked := make([]byte, len(data))
	Mask(masked, data, key)
	if err := os.WriteFile(path, masked, 0644); err != nil {
		t.Fatalf("write %s: %v", filepath.Base(path), err)
	}
}

// touch creates an empty file, or one of the given size.
func touch(t testing.TB, dir, name string, size int64) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer f.Close()
	if size > 0 {
		if err := f.Truncate(size); err != nil {
			t.Fatalf("truncate %s: %v", name, err)
		}
	}
}
