// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// sampleRoom returns a v6 style data file with one room bundle.
func sampleRoom() []byte {
	room := bigBlock(TagROOM,
		bigBlock(TagRMHD, le16(320, 144, 2)),
		bigBlock(TagRMIM,
			bigBlock(TagRMIH, le16(0)),
			bigBlock("IM00", bigBlock(TagSMAP, []byte{1, 2, 3, 4}), bigBlock("ZP01", []byte{5, 6})),
		),
		bigBlock(TagBOXD, le16(1, 0, 0, 10, 0, 10, 10, 0, 10, 0, 100)),
		bigBlock(TagOBIM, bigBlock("IMHD", []byte{0, 0}), bigBlock("IM01", bigBlock(TagSMAP, []byte{7}))),
	)
	lflf := bigBlock(TagLFLF, room, bigBlock(TagSCRP, []byte("script")))
	loff := bigBlock(TagLOFF, []byte{1, 1}, le32(0))
	return bigBlock(TagLECF, loff, lflf)
}

func TestParseTree(t *testing.T) {
	data := sampleRoom()
	c, err := Parse(data, FormatV6)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(c.Blocks) != 1 || c.Blocks[0].Tag() != TagLECF {
		t.Fatalf("top level: got %d blocks, want one LECF", len(c.Blocks))
	}
	if c.Size() != int64(len(data)) {
		t.Errorf("size: got %d, want %d", c.Size(), len(data))
	}

	smap, err := c.Lookup("LECF/LFLF/ROOM/RMIM/IM00/SMAP")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got, _ := smap.Bytes(); !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("SMAP: got % X, want 01 02 03 04", got)
	}
	if room := smap.FindAncestor(TagROOM); room == nil || room.Tag() != TagROOM {
		t.Errorf("FindAncestor(ROOM): got %v", room)
	}
	if smap.FindAncestor("NONE") != nil {
		t.Errorf("FindAncestor(NONE): expected nil")
	}
	if got := smap.Path(); got != "LECF/LFLF/ROOM/RMIM/IM00/SMAP" {
		t.Errorf("path: got %q", got)
	}

	hdr, ok := c.Blocks[0].Children()[1].Children()[0].Child(TagRMHD).Payload().(*RoomHeader)
	if !ok {
		t.Fatalf("RMHD: got %T, want *RoomHeader", c.Blocks[0].Children()[1].Children()[0].Child(TagRMHD).Payload())
	}
	if hdr.Width != 320 || hdr.Height != 144 || hdr.NumObjects != 2 {
		t.Errorf("RMHD: got %+v", *hdr)
	}

	// Offsets follow the byte layout.
	lflf := c.Blocks[0].Children()[1]
	if lflf.Offset() != 8+int64(len(bigBlock(TagLOFF, []byte{1, 1}, le32(0)))) {
		t.Errorf("LFLF offset: got %d", lflf.Offset())
	}
	if room := lflf.Child(TagROOM); room.Offset() != lflf.Offset()+8 {
		t.Errorf("ROOM offset: got %d, want %d", room.Offset(), lflf.Offset()+8)
	}

	// Every block is a container or a leaf, never both.
	c.Walk(func(b *Block, _ int) error {
		if b.IsContainer() && b.Payload() != nil {
			t.Errorf("%s: container with payload", b.Path())
		}
		if !b.IsContainer() && len(b.Children()) > 0 {
			t.Errorf("%s: leaf with children", b.Path())
		}
		return nil
	})
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		format *HeaderFormat
		data   []byte
	}{
		{"v6 room", FormatV6, sampleRoom()},
		{"v5 room", FormatV5, sampleRoom()},
		{"v8 room", FormatV8, sampleRoom()},
		{"v4 small headers", FormatV4, smallBlock(TagLE,
			smallBlock(TagFO, []byte{1, 2, 3}),
			smallBlock(TagLF, smallBlock(TagRO, smallBlock("HD", le16(320, 200, 0)), smallBlock("BX", le16(0))))),
		},
		{"several top level blocks", FormatV6, append(bigBlock(TagRNAM, []byte{0}), bigBlock(TagMAXS, []byte{1, 2})...)},
		{"empty", FormatV6, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.data, tt.format)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			got, err := Serialize(c)
			if err != nil {
				t.Fatalf("serialize: %v", err)
			}
			if !bytes.Equal(got, tt.data) {
				t.Errorf("round trip differs:\ngot  % X\nwant % X", got, tt.data)
			}
		})
	}
}

func TestParseSmallHeaderTree(t *testing.T) {
	data := smallBlock(TagLE, smallBlock(TagLF, smallBlock(TagRO, smallBlock("BX", le16(0)))))
	c, err := Parse(data, FormatV4)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	bx, err := c.Lookup("LE/LF/RO/BX")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if bx.Offset() != 18 {
		t.Errorf("BX offset: got %d, want 18", bx.Offset())
	}
}

func TestParseMalformed(t *testing.T) {
	valid := sampleRoom()

	truncated := valid[:len(valid)-1]

	childTooBig := bigBlock(TagLECF, bigBlock(TagRNAM, []byte{0}))
	binary.BigEndian.PutUint32(childTooBig[12:], 100)
	childTooBig = append(childTooBig, make([]byte, 100)...)

	tooSmall := []byte{'R', 'N', 'A', 'M', 0, 0, 0, 4}

	badTag := bigBlock("RNAM", []byte{0})
	badTag[1] = 0x01

	trailing := bigBlock(TagLECF, bigBlock(TagRNAM, []byte{0}), []byte{1, 2, 3})

	tests := []struct {
		name   string
		data   []byte
		offset int64
		tag    string
	}{
		{"declared size past end", truncated, 0, TagLECF},
		{"child past parent", childTooBig, 8, TagRNAM},
		{"size smaller than header", tooSmall, 0, TagRNAM},
		{"unreadable tag", badTag, 0, ""},
		{"trailing bytes", trailing, 8 + 9, ""},
		{"trailing top level", append(bigBlock(TagRNAM, []byte{0}), 0xFF), 9, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.data, FormatV6)
			if err == nil {
				t.Fatalf("expected error")
			}
			if c != nil {
				t.Errorf("partial tree returned")
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("got %T, want *FormatError", err)
			}
			if fe.Offset != tt.offset {
				t.Errorf("offset: got %d, want %d", fe.Offset, tt.offset)
			}
			if fe.Tag != tt.tag {
				t.Errorf("tag: got %q, want %q", fe.Tag, tt.tag)
			}
		})
	}
}

func TestParseBlockAtOffset(t *testing.T) {
	data := sampleRoom()
	c, err := Parse(data, FormatV6)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	room, err := c.Lookup("LECF/LFLF/ROOM")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	b, err := ParseBlock(data, room.Offset(), FormatV6)
	if err != nil {
		t.Fatalf("parse block: %v", err)
	}
	if b.Tag() != TagROOM || b.Size() != room.Size() || len(b.Children()) != len(room.Children()) {
		t.Errorf("got %s size %d with %d children", b.Tag(), b.Size(), len(b.Children()))
	}
	if b.Parent() != nil {
		t.Errorf("detached block has a parent")
	}

	if _, err := ParseBlock(data, int64(len(data))+1, FormatV6); err == nil {
		t.Errorf("offset past end: expected error")
	}
}

func TestSchemaFallback(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		body []byte
	}{
		{"short room header", TagRMHD, []byte{1, 2, 3, 4, 5}},
		{"room offsets count mismatch", TagLOFF, []byte{2, 1, 0, 0, 0, 0}},
		{"short palette", TagCLUT, make([]byte, 10)},
		{"directory length mismatch", TagDSCR, []byte{3, 0, 1}},
		{"room names without terminator", TagRNAM, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{"unknown tag", "ZZZZ", []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(bigBlock(tt.tag, tt.body), FormatV6)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			raw, ok := c.Blocks[0].Payload().(Raw)
			if !ok {
				t.Fatalf("got %T, want Raw", c.Blocks[0].Payload())
			}
			if !bytes.Equal(raw, tt.body) {
				t.Errorf("got % X, want % X", []byte(raw), tt.body)
			}
		})
	}
}
