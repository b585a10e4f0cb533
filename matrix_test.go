// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"bytes"
	"slices"
	"testing"
)

func TestDecodeBoxMatrix(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected int
		side     int
		offset   int
		mode     MatrixMode
		rows     [][]byte
	}{
		{
			name:     "exact square",
			data:     []byte{0, 1, 1, 0},
			expected: 2,
			side:     2,
			mode:     MatrixAdjacency,
			rows:     [][]byte{{0, 1}, {1, 0}},
		},
		{
			name:     "count header",
			data:     concat(le16(2), []byte{0, 1, 1, 0}),
			expected: 2,
			side:     2,
			offset:   2,
			mode:     MatrixAdjacency,
			rows:     [][]byte{{0, 1}, {1, 0}},
		},
		{
			name:     "shorter than expected",
			data:     []byte{0, 1, 2, 3, 4},
			expected: 3,
			side:     2,
			mode:     MatrixNextHop,
			rows:     [][]byte{{0, 1}, {2, 3}},
		},
		{
			name:     "longer than expected",
			data:     []byte{9, 9, 9, 0, 1, 1, 0},
			expected: 2,
			side:     2,
			offset:   3,
			mode:     MatrixAdjacency,
			rows:     [][]byte{{0, 1}, {1, 0}},
		},
		{
			name: "unknown side",
			data: []byte{0, 1, 2, 1, 0, 2, 2, 2, 0xFF},
			side: 3,
			mode: MatrixNextHop,
			rows: [][]byte{{0, 1, 2}, {1, 0, 2}, {2, 2, 0xFF}},
		},
		{
			name:   "unknown side with header",
			data:   concat(le16(2), []byte{0, 1, 1, 0}),
			side:   2,
			offset: 2,
			mode:   MatrixAdjacency,
			rows:   [][]byte{{0, 1}, {1, 0}},
		},
		{
			name:   "unknown side, not square",
			data:   []byte{0, 1, 1},
			side:   1,
			offset: 2,
			mode:   MatrixAdjacency,
			rows:   [][]byte{{1}},
		},
		{
			name: "empty",
			side: 1,
			mode: MatrixNextHop,
			rows: [][]byte{{0xFF}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DecodeBoxMatrix(tt.data, tt.expected)
			if m.Side != tt.side {
				t.Fatalf("side: got %d, want %d", m.Side, tt.side)
			}
			if m.Offset != tt.offset {
				t.Errorf("offset: got %d, want %d", m.Offset, tt.offset)
			}
			if m.Mode != tt.mode {
				t.Errorf("mode: got %v, want %v", m.Mode, tt.mode)
			}
			for i, row := range tt.rows {
				if !bytes.Equal(m.Rows[i], row) {
					t.Errorf("row %d: got % X, want % X", i, m.Rows[i], row)
				}
			}
			if !slices.IsSorted(m.Values) {
				t.Errorf("values not sorted: %v", m.Values)
			}
		})
	}
}

func TestDecodeBoxMatrixHeaderMismatch(t *testing.T) {
	// A leading word that does not match the box count is matrix data.
	m := DecodeBoxMatrix(concat(le16(3), []byte{0, 1}), 2)
	if m.Side != 2 || m.Offset != 0 {
		t.Fatalf("got side %d offset %d, want 2 0", m.Side, m.Offset)
	}
	want := [][]byte{{3, 0}, {0, 1}}
	for i, row := range want {
		if !bytes.Equal(m.Rows[i], row) {
			t.Errorf("row %d: got % X, want % X", i, m.Rows[i], row)
		}
	}
	if !slices.Equal(m.Values, []byte{0, 1, 3}) {
		t.Errorf("values: got %v, want [0 1 3]", m.Values)
	}
	if m.Mode != MatrixNextHop {
		t.Errorf("mode: got %v, want %v", m.Mode, MatrixNextHop)
	}
}
