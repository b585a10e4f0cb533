// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Container is one parsed index or data file.
type Container struct {
	Format *HeaderFormat
	Blocks []*Block
}

// OpenContainer reads a whole file through a masked reader and parses it.
func OpenContainer(path string, key byte, format *HeaderFormat) (*Container, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(NewMaskedReader(file, key))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return c, nil
}

// Size returns the total size of the top-level blocks.
func (c *Container) Size() int64 {
	var n int64
	for _, b := range c.Blocks {
		n += b.size
	}
	return n
}

// Lookup resolves a path such as "LECF/LFLF[2]/ROOM/BOXD".
func (c *Container) Lookup(path string) (*Block, error) {
	return lookup(c.Blocks, path)
}

// Walk calls fn for every block in file order.
func (c *Container) Walk(fn func(blk *Block, depth int) error) error {
	for _, b := range c.Blocks {
		if err := b.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns every block with the given tag in file order.
func (c *Container) FindAll(tag string) []*Block {
	var out []*Block
	c.Walk(func(b *Block, _ int) error {
		if b.tag == tag {
			out = append(out, b)
		}
		return nil
	})
	return out
}

// WriteFile lays out the container and writes it masked with key. The file
// is written to a temporary file next to path and renamed into place.
func (c *Container) WriteFile(path string, key byte) error {
	if err := Layout(c); err != nil {
		return err
	}
	tmp, err := c.writeTemp(path, key)
	if err != nil {
		return err
	}
	return commitTemp(tmp, path)
}

// writeTemp writes the laid out container into a temp file in the
// directory of path and returns the temp file name.
func (c *Container) writeTemp(path string, key byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "scumm_*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := c.WriteTo(NewMaskedWriter(tmp, key)); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return tmpPath, nil
}

// commitTemp moves a temp file over path. When the rename fails, for
// example across volumes, the contents are rewritten in place instead.
func commitTemp(tmpPath, path string) error {
	defer os.Remove(tmpPath)
	if os.Rename(tmpPath, path) == nil {
		return nil
	}
	data, err := os.ReadFile(tmpPath)
	if err == nil {
		err = os.WriteFile(path, data, 0644)
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}
	return nil
}
