// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"encoding/binary"
	"image"
)

const (
	walkBoxRecordSize = 20     // 4 vertices, flags, scale
	sentinelCoord     = -32000 // coordinates at or below mark an unused box
	scaleSlotFlag     = 0x8000
)

// WalkBox is one walkable polygon of a room. Points are upper-left,
// upper-right, lower-right and lower-left, and may be degenerate.
type WalkBox struct {
	Index    int
	Points   []image.Point
	Flags    uint16
	ScaleRaw uint16

	// Slot is the scale slot the box references, when it resolves.
	Slot *ScaleSlot

	computed float64
	resolved bool
}

// UsesScaleSlot reports whether the scale field references a scale slot
// instead of holding a fixed percentage.
func (b *WalkBox) UsesScaleSlot() bool {
	return b.ScaleRaw&scaleSlotFlag != 0
}

// SlotIndex returns the referenced slot index, or -1 for a fixed scale.
func (b *WalkBox) SlotIndex() int {
	if !b.UsesScaleSlot() {
		return -1
	}
	return int(b.ScaleRaw &^ scaleSlotFlag)
}

// FixedScale returns the fixed percentage, or -1 when a slot is used.
func (b *WalkBox) FixedScale() int {
	if b.UsesScaleSlot() {
		return -1
	}
	return int(b.ScaleRaw)
}

// ComputedScale returns the slot scale evaluated at the box centroid. ok is
// false for fixed-scale boxes and for slot references that do not resolve,
// which callers should treat as an unknown scale.
func (b *WalkBox) ComputedScale() (scale float64, ok bool) {
	return b.computed, b.resolved
}

// Centroid returns the mean of the box vertices.
func (b *WalkBox) Centroid() (x, y float64) {
	if len(b.Points) == 0 {
		return 0, 0
	}
	var sx, sy float64
	for _, p := range b.Points {
		sx += float64(p.X)
		sy += float64(p.Y)
	}
	n := float64(len(b.Points))
	return sx / n, sy / n
}

// Bounds returns the bounding rectangle of the box vertices.
func (b *WalkBox) Bounds() image.Rectangle {
	if len(b.Points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: b.Points[0], Max: b.Points[0]}
	for _, p := range b.Points[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r
}

// DecodeWalkBoxes decodes a BOXD block: a little-endian box count followed
// by 20-byte records. Sentinel records, whose eight coordinates are all at
// or below -32000, are skipped but still count for box indices. Decoding
// stops at the first truncated record. slots may be nil.
func DecodeWalkBoxes(data []byte, slots []ScaleSlot) []WalkBox {
	if len(data) < 2 {
		return nil
	}
	count := int(binary.LittleEndian.Uint16(data))

	var boxes []WalkBox
	for i, off := 0, 2; i < count; i, off = i+1, off+walkBoxRecordSize {
		if off+walkBoxRecordSize > len(data) {
			break
		}
		rec := data[off : off+walkBoxRecordSize]

		var coords [8]int16
		sentinel := true
		for j := range coords {
			coords[j] = int16(binary.LittleEndian.Uint16(rec[j*2:]))
			if coords[j] > sentinelCoord {
				sentinel = false
			}
		}
		if sentinel {
			continue
		}

		box := WalkBox{
			Index:    i,
			Points:   make([]image.Point, 4),
			Flags:    binary.LittleEndian.Uint16(rec[16:]),
			ScaleRaw: binary.LittleEndian.Uint16(rec[18:]),
		}
		for j := range box.Points {
			box.Points[j] = image.Point{X: int(coords[j*2]), Y: int(coords[j*2+1])}
		}
		box.resolve(slots)
		boxes = append(boxes, box)
	}
	return boxes
}

func (b *WalkBox) resolve(slots []ScaleSlot) {
	idx := b.SlotIndex()
	if idx < 0 || idx >= len(slots) {
		return
	}
	b.Slot = &slots[idx]
	_, cy := b.Centroid()
	b.computed = b.Slot.Evaluate(cy)
	b.resolved = true
}
