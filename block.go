// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Microsoft/go-winio/pkg/guid"
)

// Block is one node of a chunk tree.
//
// A block is either a container holding child blocks or a leaf holding a
// Payload. Offset and size describe where the block sits in its file; they
// are assigned by Parse and by Layout and are read-only to everything else.
type Block struct {
	ID guid.GUID

	tag      string
	offset   int64
	size     int64
	children []*Block
	payload  Payload

	// parent is used for upward lookups only.
	parent *Block
}

// NewLeaf creates a detached leaf block.
func NewLeaf(tag string, p Payload) *Block {
	if p == nil {
		p = Raw(nil)
	}
	return &Block{ID: newBlockID(), tag: tag, payload: p}
}

// NewContainerBlock creates a detached container block.
func NewContainerBlock(tag string, children ...*Block) *Block {
	b := &Block{ID: newBlockID(), tag: tag}
	for _, c := range children {
		b.AppendChild(c)
	}
	return b
}

func newBlockID() guid.GUID {
	id, err := guid.NewV4()
	if err != nil {
		return guid.GUID{}
	}
	return id
}

// Tag returns the block type tag.
func (b *Block) Tag() string { return b.tag }

// Offset returns the absolute offset of the block header in its file.
func (b *Block) Offset() int64 { return b.offset }

// Size returns the declared size of the block including its header.
func (b *Block) Size() int64 { return b.size }

// Parent returns the enclosing block, or nil for a top-level block.
func (b *Block) Parent() *Block { return b.parent }

// Children returns the child blocks in file order.
// The slice must not be modified.
func (b *Block) Children() []*Block { return b.children }

// Payload returns the leaf payload, or nil for a container.
func (b *Block) Payload() Payload { return b.payload }

// IsContainer reports whether the block holds child blocks.
func (b *Block) IsContainer() bool { return b.payload == nil }

// Bytes returns the encoded payload of a leaf, or nil for a container.
func (b *Block) Bytes() ([]byte, error) {
	if b.payload == nil {
		return nil, nil
	}
	return b.payload.MarshalBinary()
}

// SetPayload replaces the payload of a leaf. The new size is picked up by
// the next Layout.
func (b *Block) SetPayload(p Payload) error {
	if b.payload == nil {
		return fmt.Errorf("set payload on container %s", b.tag)
	}
	if p == nil {
		p = Raw(nil)
	}
	b.payload = p
	return nil
}

// AppendChild adds c as the last child of the container b.
func (b *Block) AppendChild(c *Block) {
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	c.parent = b
	b.children = append(b.children, c)
}

// RemoveChild detaches c from b. It reports whether c was a child.
func (b *Block) RemoveChild(c *Block) bool {
	for i, child := range b.children {
		if child == c {
			b.children = append(b.children[:i], b.children[i+1:]...)
			c.parent = nil
			return true
		}
	}
	return false
}

// Child returns the first child with the given tag, or nil.
func (b *Block) Child(tag string) *Block {
	for _, c := range b.children {
		if c.tag == tag {
			return c
		}
	}
	return nil
}

// ChildrenByTag returns all children with the given tag in file order.
func (b *Block) ChildrenByTag(tag string) []*Block {
	var out []*Block
	for _, c := range b.children {
		if c.tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// FindAncestor walks parent links and returns the nearest ancestor with the
// given tag, or nil.
func (b *Block) FindAncestor(tag string) *Block {
	if b == nil {
		return nil
	}
	for cur := b.parent; cur != nil; cur = cur.parent {
		if cur.tag == tag {
			return cur
		}
	}
	return nil
}

// IndexInParent returns the position of b among all its siblings, or -1
// for a top-level block.
func (b *Block) IndexInParent() int {
	if b.parent == nil {
		return -1
	}
	for i, c := range b.parent.children {
		if c == b {
			return i
		}
	}
	return -1
}

// IndexAmongSiblings returns the position of b among siblings sharing its
// tag, or -1 for a top-level block.
func (b *Block) IndexAmongSiblings() int {
	if b.parent == nil {
		return -1
	}
	n := 0
	for _, c := range b.parent.children {
		if c == b {
			return n
		}
		if c.tag == b.tag {
			n++
		}
	}
	return -1
}

// Walk calls fn for b and all its descendants in file order.
// Returning an error from fn stops the walk.
func (b *Block) Walk(fn func(blk *Block, depth int) error) error {
	return walk(b, 0, fn)
}

func walk(b *Block, depth int, fn func(*Block, int) error) error {
	if err := fn(b, depth); err != nil {
		return err
	}
	for _, c := range b.children {
		if err := walk(c, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Path returns a slash separated path such as "LECF/LFLF[3]/ROOM/BOXD".
// An index is added when the block has siblings with the same tag.
func (b *Block) Path() string {
	var parts []string
	for cur := b; cur != nil; cur = cur.parent {
		parts = append(parts, cur.pathSegment())
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

func (b *Block) pathSegment() string {
	if b.parent == nil {
		return b.tag
	}
	if len(b.parent.ChildrenByTag(b.tag)) > 1 {
		return fmt.Sprintf("%s[%d]", b.tag, b.IndexAmongSiblings())
	}
	return b.tag
}

// Lookup resolves a path relative to b, e.g. "ROOM/BOXD" or "OBIM[2]/IM01".
func (b *Block) Lookup(path string) (*Block, error) {
	return lookup(b.children, path)
}

func lookup(blocks []*Block, path string) (*Block, error) {
	var cur *Block
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		tag, idx, err := parseSegment(seg)
		if err != nil {
			return nil, err
		}
		n := 0
		var found *Block
		for _, c := range blocks {
			if c.tag != tag {
				continue
			}
			if n == idx {
				found = c
				break
			}
			n++
		}
		if found == nil {
			return nil, fmt.Errorf("lookup %s: %w", path, ErrNotFound)
		}
		cur = found
		blocks = found.children
	}
	if cur == nil {
		return nil, fmt.Errorf("lookup %q: %w", path, ErrNotFound)
	}
	return cur, nil
}

func parseSegment(seg string) (string, int, error) {
	open := strings.IndexByte(seg, '[')
	if open < 0 {
		return seg, 0, nil
	}
	if !strings.HasSuffix(seg, "]") {
		return "", 0, fmt.Errorf("bad path segment %q", seg)
	}
	idx, err := strconv.Atoi(seg[open+1 : len(seg)-1])
	if err != nil || idx < 0 {
		return "", 0, fmt.Errorf("bad path segment %q", seg)
	}
	return seg[:open], idx, nil
}
