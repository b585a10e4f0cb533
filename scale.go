// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import "encoding/binary"

const (
	scaleSlotFull  = 6 // Y1, scale1, scale2, Y2
	scaleSlotPoint = 4 // Y1, scale1, scale2
)

// ScaleSlot maps a vertical screen position to an actor scale percentage
// by interpolating between two boundaries. Slots are read-only once decoded.
type ScaleSlot struct {
	Index  int
	Y1     int16
	Y2     int16
	Scale1 uint8
	Scale2 uint8

	// Stride is the number of bytes the slot occupied in the SCAL block.
	Stride int
}

// Evaluate returns the scale percentage at y. Values of y outside
// [Y1, Y2] clamp to the nearest boundary. When Y1 == Y2 the result is
// always Scale2.
func (s *ScaleSlot) Evaluate(y float64) float64 {
	if s.Y1 == s.Y2 {
		return float64(s.Scale2)
	}
	t := clamp((y-float64(s.Y1))/(float64(s.Y2)-float64(s.Y1)), 0, 1)
	return lerp(s.Scale1, s.Scale2, t)
}

// DecodeScaleSlots decodes a SCAL block: a little-endian slot count
// followed by equally sized records. Records of six bytes or more hold two
// endpoints, records of four or five bytes hold a single point. Decoding
// stops at the first record that does not fit and returns what it has.
func DecodeScaleSlots(data []byte) []ScaleSlot {
	if len(data) < 2 {
		return nil
	}
	count := int(binary.LittleEndian.Uint16(data))
	if count == 0 {
		return nil
	}

	stride := (len(data) - 2) / count
	if stride < scaleSlotPoint {
		return nil
	}

	slots := make([]ScaleSlot, 0, count)
	for i, off := 0, 2; i < count; i, off = i+1, off+stride {
		if off+stride > len(data) {
			break
		}
		rec := data[off : off+stride]
		slot := ScaleSlot{
			Index:  i,
			Y1:     int16(binary.LittleEndian.Uint16(rec[0:])),
			Scale1: rec[2],
			Scale2: rec[3],
			Stride: stride,
		}
		if stride >= scaleSlotFull {
			slot.Y2 = int16(binary.LittleEndian.Uint16(rec[4:]))
		} else {
			slot.Y2 = slot.Y1
		}
		slots = append(slots, slot)
	}
	return slots
}
