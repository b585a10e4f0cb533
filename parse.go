// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"fmt"
)

// Parse parses a whole file into its top-level blocks. On error no tree is
// returned.
func Parse(data []byte, format *HeaderFormat) (*Container, error) {
	if format == nil {
		return nil, fmt.Errorf("parse: nil header format")
	}

	c := &Container{Format: format}
	end := int64(len(data))
	for off := int64(0); off < end; {
		b, err := parseBlock(data, off, end, format, nil)
		if err != nil {
			return nil, err
		}
		c.Blocks = append(c.Blocks, b)
		off += b.size
	}
	return c, nil
}

// ParseBlock parses the single block starting at off, including all of its
// descendants.
func ParseBlock(data []byte, off int64, format *HeaderFormat) (*Block, error) {
	if off < 0 || off > int64(len(data)) {
		return nil, &FormatError{Offset: off, Reason: "offset outside data"}
	}
	return parseBlock(data, off, int64(len(data)), format, nil)
}

// parseBlock reads the block at off. limit is the end of the enclosing range.
func parseBlock(data []byte, off, limit int64, f *HeaderFormat, parent *Block) (*Block, error) {
	if limit-off < int64(f.HeaderSize()) {
		return nil, &FormatError{Offset: off, Reason: fmt.Sprintf("%d trailing bytes cannot hold a block header", limit-off)}
	}
	tag, size, err := f.readHeader(data, off)
	if err != nil {
		return nil, err
	}
	if off+size > int64(len(data)) {
		return nil, &FormatError{Offset: off, Tag: tag, Reason: fmt.Sprintf("declared size %d runs past end of data (%d bytes)", size, len(data))}
	}
	if off+size > limit {
		return nil, &FormatError{Offset: off, Tag: tag, Reason: fmt.Sprintf("declared size %d runs past end of parent at 0x%X", size, limit)}
	}

	b := &Block{
		ID:     newBlockID(),
		tag:    tag,
		offset: off,
		size:   size,
		parent: parent,
	}

	body := off + int64(f.HeaderSize())
	end := off + size
	if !f.IsContainer(tag) {
		b.payload = f.decodePayload(tag, data[body:end])
		return b, nil
	}

	for pos := body; pos < end; {
		child, err := parseBlock(data, pos, end, f, b)
		if err != nil {
			return nil, err
		}
		b.children = append(b.children, child)
		pos += child.size
	}
	return b, nil
}
