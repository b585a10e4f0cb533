// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"image"
	"math"
	"testing"
)

// boxRecord encodes one BOXD record.
func boxRecord(ulx, uly, urx, ury, lrx, lry, llx, lly, flags, scale int) []byte {
	return le16(ulx, uly, urx, ury, lrx, lry, llx, lly, flags, scale)
}

func sentinelRecord() []byte {
	return boxRecord(-32000, -32000, -32000, -32000, -32000, -32000, -32000, -32000, 0, 0)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestDecodeWalkBoxesSentinel(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"truncated record", concat(le16(1), sentinelRecord()[:18])},
		{"full sentinel record", concat(le16(1), sentinelRecord())},
		{"below sentinel", concat(le16(1), boxRecord(-32768, -32001, -32000, -32000, -32000, -32000, -32000, -32000, 0, 0x8001))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if boxes := DecodeWalkBoxes(tt.data, nil); len(boxes) != 0 {
				t.Errorf("got %d boxes, want 0", len(boxes))
			}
		})
	}
}

func TestDecodeWalkBoxesFixedScale(t *testing.T) {
	data := concat(le16(1), boxRecord(0, 0, 10, 0, 10, 10, 0, 10, 0, 0x0064))
	if len(data) != 22 {
		t.Fatalf("fixture: got %d bytes, want 22", len(data))
	}

	boxes := DecodeWalkBoxes(data, nil)
	if len(boxes) != 1 {
		t.Fatalf("got %d boxes, want 1", len(boxes))
	}
	b := boxes[0]
	if b.UsesScaleSlot() {
		t.Errorf("uses slot: got true, want false")
	}
	if got := b.FixedScale(); got != 100 {
		t.Errorf("fixed scale: got %d, want 100", got)
	}
	if got := b.SlotIndex(); got != -1 {
		t.Errorf("slot index: got %d, want -1", got)
	}
	if b.Slot != nil {
		t.Errorf("slot: got %+v, want nil", b.Slot)
	}
	if _, ok := b.ComputedScale(); ok {
		t.Errorf("computed scale: fixed box reports one")
	}
	want := []image.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	for i, p := range b.Points {
		if p != want[i] {
			t.Errorf("point %d: got %v, want %v", i, p, want[i])
		}
	}
	if got := b.Bounds(); got != image.Rect(0, 0, 10, 10) {
		t.Errorf("bounds: got %v", got)
	}
	if x, y := b.Centroid(); x != 5 || y != 5 {
		t.Errorf("centroid: got (%v, %v), want (5, 5)", x, y)
	}
}

func TestDecodeWalkBoxesScaleField(t *testing.T) {
	tests := []struct {
		raw      int
		usesSlot bool
		slot     int
		fixed    int
	}{
		{0x8003, true, 3, -1},
		{0x0032, false, -1, 50},
		{0x8000, true, 0, -1},
		{0x0000, false, -1, 0},
		{0x00FF, false, -1, 255},
	}
	for _, tt := range tests {
		data := concat(le16(1), boxRecord(0, 0, 1, 0, 1, 1, 0, 1, 0, tt.raw))
		boxes := DecodeWalkBoxes(data, nil)
		if len(boxes) != 1 {
			t.Fatalf("0x%04X: got %d boxes, want 1", tt.raw, len(boxes))
		}
		b := boxes[0]
		if b.UsesScaleSlot() != tt.usesSlot {
			t.Errorf("0x%04X: uses slot: got %v, want %v", tt.raw, b.UsesScaleSlot(), tt.usesSlot)
		}
		if b.SlotIndex() != tt.slot {
			t.Errorf("0x%04X: slot: got %d, want %d", tt.raw, b.SlotIndex(), tt.slot)
		}
		if b.FixedScale() != tt.fixed {
			t.Errorf("0x%04X: fixed: got %d, want %d", tt.raw, b.FixedScale(), tt.fixed)
		}
	}
}

func TestDecodeWalkBoxesIndicesAndSlots(t *testing.T) {
	slots := []ScaleSlot{
		{Index: 0, Y1: 0, Y2: 100, Scale1: 50, Scale2: 100},
		{Index: 1, Y1: 40, Y2: 40, Scale1: 10, Scale2: 90},
	}
	data := concat(le16(4),
		boxRecord(0, 0, 10, 0, 10, 10, 0, 10, 0, 0x8000),
		sentinelRecord(),
		boxRecord(0, 0, 10, 0, 10, 100, 0, 100, 0x20, 0x8001),
		boxRecord(0, 0, 10, 0, 10, 10, 0, 10, 0, 0x8007),
	)

	boxes := DecodeWalkBoxes(data, slots)
	if len(boxes) != 3 {
		t.Fatalf("got %d boxes, want 3", len(boxes))
	}

	// Sentinels keep their index slot.
	wantIndex := []int{0, 2, 3}
	for i, b := range boxes {
		if b.Index != wantIndex[i] {
			t.Errorf("box %d: index %d, want %d", i, b.Index, wantIndex[i])
		}
	}

	// Centroid y 5 on slot 0: 50 + 50*0.05.
	if s, ok := boxes[0].ComputedScale(); !ok || math.Abs(s-52.5) > 1e-9 {
		t.Errorf("box 0: got %v %v, want 52.5", s, ok)
	}
	if boxes[1].Flags != 0x20 {
		t.Errorf("box 2 flags: got 0x%X, want 0x20", boxes[1].Flags)
	}
	if s, ok := boxes[1].ComputedScale(); !ok || s != 90 {
		t.Errorf("box 2: got %v %v, want 90", s, ok)
	}
	if boxes[1].Slot != &slots[1] {
		t.Errorf("box 2: slot does not point into the slot table")
	}

	// Out of range slot: kept, no computed scale.
	if _, ok := boxes[2].ComputedScale(); ok {
		t.Errorf("box 3: computed scale for missing slot")
	}
	if boxes[2].SlotIndex() != 7 || boxes[2].Slot != nil {
		t.Errorf("box 3: slot %d %v", boxes[2].SlotIndex(), boxes[2].Slot)
	}
}

func TestDecodeWalkBoxesShortRead(t *testing.T) {
	data := concat(le16(3),
		boxRecord(0, 0, 1, 0, 1, 1, 0, 1, 0, 10),
		boxRecord(0, 0, 2, 0, 2, 2, 0, 2, 0, 20),
	)
	data = append(data, 1, 2, 3)

	boxes := DecodeWalkBoxes(data, nil)
	if len(boxes) != 2 {
		t.Fatalf("got %d boxes, want 2", len(boxes))
	}
	if DecodeWalkBoxes([]byte{1}, nil) != nil {
		t.Errorf("one byte: expected nil")
	}
}

func TestCentroidUsesMean(t *testing.T) {
	b := WalkBox{Points: []image.Point{{0, 0}, {1, 0}, {1, 1}, {0, 2}}}
	if _, y := b.Centroid(); y != 0.75 {
		t.Errorf("got %v, want 0.75", y)
	}
	var empty WalkBox
	if x, y := empty.Centroid(); x != 0 || y != 0 {
		t.Errorf("empty: got (%v, %v)", x, y)
	}
}
