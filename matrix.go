// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"encoding/binary"
	"math"
	"slices"
)

// MatrixMode is the guessed meaning of a box matrix.
type MatrixMode int

const (
	// MatrixAdjacency holds only 0 and 1 values.
	MatrixAdjacency MatrixMode = iota

	// MatrixNextHop holds box indices, with 0xFF likely meaning unreachable.
	MatrixNextHop
)

func (m MatrixMode) String() string {
	if m == MatrixAdjacency {
		return "adjacency"
	}
	return "next-hop"
}

const matrixFill = 0xFF

// BoxMatrix is a structural decode of a BOXM block. The semantics of its
// cells are not established; use it for display only.
type BoxMatrix struct {
	Side   int
	Offset int // bytes skipped before the first cell
	Rows   [][]byte
	Values []byte // distinct cell values, ascending
	Mode   MatrixMode
}

// DecodeBoxMatrix lays out a BOXM block as a square matrix. expectedSide
// is the number of boxes in the room, or 0 when unknown. Cells past the
// end of the data read 0xFF.
func DecodeBoxMatrix(data []byte, expectedSide int) *BoxMatrix {
	offset := 0
	side := expectedSide

	if expectedSide > 0 {
		expected := expectedSide * expectedSide
		switch {
		case len(data) == expected+2 && int(binary.LittleEndian.Uint16(data)) == expectedSide:
			offset = 2
		case len(data) < expected:
			side = isqrt(len(data))
		case len(data) > expected:
			offset = len(data) - expected
		}
	} else {
		side = isqrt(len(data))
		if side*side != len(data) && len(data) > 2 {
			if withHeader := isqrt(len(data) - 2); withHeader*withHeader == len(data)-2 {
				offset = 2
				side = withHeader
			}
		}
		if side <= 0 {
			side = 1
		}
	}

	total := clamp(len(data)-offset, 0, side*side)
	m := &BoxMatrix{Side: side, Offset: offset, Rows: make([][]byte, side)}
	seen := make(map[byte]bool)
	for r := 0; r < side; r++ {
		row := make([]byte, side)
		for c := range row {
			i := r*side + c
			if i < total {
				row[c] = data[offset+i]
			} else {
				row[c] = matrixFill
			}
			seen[row[c]] = true
		}
		m.Rows[r] = row
	}

	m.Mode = MatrixAdjacency
	for v := range seen {
		m.Values = append(m.Values, v)
		if v > 1 {
			m.Mode = MatrixNextHop
		}
	}
	slices.Sort(m.Values)
	return m
}

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Sqrt(float64(n)))
}
