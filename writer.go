// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// Layout recomputes every block size bottom-up and every offset top-down.
// After Layout each declared size equals the number of bytes WriteTo emits
// for that block.
func Layout(c *Container) error {
	var off int64
	for _, b := range c.Blocks {
		if err := layoutBlock(b, off, c.Format); err != nil {
			return err
		}
		off += b.size
	}
	return nil
}

func layoutBlock(b *Block, off int64, f *HeaderFormat) error {
	if err := checkShape(b, f); err != nil {
		return err
	}

	b.offset = off
	hs := int64(f.HeaderSize())
	if b.payload != nil {
		data, err := b.payload.MarshalBinary()
		if err != nil {
			return fmt.Errorf("encode %s at 0x%X: %w", b.tag, off, err)
		}
		b.size = hs + int64(len(data))
	} else {
		pos := off + hs
		for _, c := range b.children {
			if err := layoutBlock(c, pos, f); err != nil {
				return err
			}
			pos += c.size
		}
		b.size = pos - off
	}

	if b.size > maxBlockSize {
		return fmt.Errorf("block %s at 0x%X too large: %d bytes", b.tag, off, b.size)
	}
	return nil
}

// checkShape rejects blocks that would parse back differently.
func checkShape(b *Block, f *HeaderFormat) error {
	if len(b.tag) != f.TagSize() {
		return fmt.Errorf("block tag %q does not fit %s headers", b.tag, f.Name)
	}
	if b.payload != nil && f.IsContainer(b.tag) {
		return fmt.Errorf("leaf block uses container tag %s", b.tag)
	}
	if b.payload == nil && !f.IsContainer(b.tag) {
		return fmt.Errorf("container block uses leaf tag %s", b.tag)
	}
	return nil
}

// WriteTo writes the laid out container to w. It fails if a block's
// declared size does not match what is written; call Layout first.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	cw := &countingWriter{w: bw}
	for _, b := range c.Blocks {
		if err := writeBlock(cw, b, c.Format); err != nil {
			return cw.n, err
		}
	}
	if err := bw.Flush(); err != nil {
		return cw.n, fmt.Errorf("flush: %w", err)
	}
	return cw.n, nil
}

func writeBlock(cw *countingWriter, b *Block, f *HeaderFormat) error {
	start := cw.n
	if start != b.offset {
		return fmt.Errorf("block %s: written at 0x%X, laid out at 0x%X", b.tag, start, b.offset)
	}

	header := make([]byte, f.HeaderSize())
	if err := f.putHeader(header, b.tag, b.size); err != nil {
		return err
	}
	if _, err := cw.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", b.tag, err)
	}

	if b.payload != nil {
		data, err := b.payload.MarshalBinary()
		if err != nil {
			return fmt.Errorf("encode %s at 0x%X: %w", b.tag, b.offset, err)
		}
		if _, err := cw.Write(data); err != nil {
			return fmt.Errorf("write %s payload: %w", b.tag, err)
		}
	} else {
		for _, c := range b.children {
			if err := writeBlock(cw, c, f); err != nil {
				return err
			}
		}
	}

	if written := cw.n - start; written != b.size {
		return fmt.Errorf("block %s at 0x%X: declared %d bytes, wrote %d", b.tag, b.offset, b.size, written)
	}
	return nil
}

// Serialize lays out the container and returns its bytes, unmasked.
func Serialize(c *Container) ([]byte, error) {
	if err := Layout(c); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
