// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import "io"

// DefaultMaskKey is the XOR key used by the masked CD releases.
const DefaultMaskKey = 0x69

// MaskedStream XORs every byte moving through it with a fixed key.
// A key of 0 passes bytes through unchanged.
//
// The stream does not own the underlying source; closing it is the caller's job.
type MaskedStream struct {
	r   io.Reader
	w   io.Writer
	s   io.Seeker
	key byte
	buf []byte
}

// NewMaskedStream wraps a read-write-seeker.
func NewMaskedStream(rws io.ReadWriteSeeker, key byte) *MaskedStream {
	return &MaskedStream{r: rws, w: rws, s: rws, key: key}
}

// NewMaskedReader wraps a reader for unmasked reads.
func NewMaskedReader(r io.Reader, key byte) *MaskedStream {
	m := &MaskedStream{r: r, key: key}
	if s, ok := r.(io.Seeker); ok {
		m.s = s
	}
	return m
}

// NewMaskedWriter wraps a writer for masked writes.
func NewMaskedWriter(w io.Writer, key byte) *MaskedStream {
	m := &MaskedStream{w: w, key: key}
	if s, ok := w.(io.Seeker); ok {
		m.s = s
	}
	return m
}

// Key returns the mask key.
func (m *MaskedStream) Key() byte {
	return m.key
}

// Read reads from the underlying source and unmasks the bytes read.
// Bytes read before an error are unmasked too.
func (m *MaskedStream) Read(p []byte) (int, error) {
	if m.r == nil {
		return 0, errNotReadable
	}
	n, err := m.r.Read(p)
	Mask(p[:n], p[:n], m.key)
	return n, err
}

// Write masks p into a scratch buffer and writes it to the underlying source.
// p itself is left untouched.
func (m *MaskedStream) Write(p []byte) (int, error) {
	if m.w == nil {
		return 0, errNotWritable
	}
	if cap(m.buf) < len(p) {
		m.buf = make([]byte, len(p))
	}
	buf := m.buf[:len(p)]
	Mask(buf, p, m.key)
	return m.w.Write(buf)
}

// Seek delegates to the underlying source.
func (m *MaskedStream) Seek(offset int64, whence int) (int64, error) {
	if m.s == nil {
		return 0, errNotSeekable
	}
	return m.s.Seek(offset, whence)
}

// Mask writes src XOR key into dst. dst and src may be the same slice.
// It returns the number of bytes written, which is min(len(dst), len(src)).
func Mask(dst, src []byte, key byte) int {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = src[i] ^ key
	}
	return n
}
