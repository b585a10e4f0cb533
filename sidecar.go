// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultSidecarExtension is appended to an exported image path to name
// its sidecar file.
const DefaultSidecarExtension = ".idx"

// SidecarPath returns the sidecar file name for an image path. An empty
// ext selects DefaultSidecarExtension.
func SidecarPath(imagePath, ext string) string {
	if ext == "" {
		ext = DefaultSidecarExtension
	}
	return imagePath + ext
}

// ParseSidecar parses a semicolon-separated list of integers. Whitespace
// around values and a trailing separator are ignored.
func ParseSidecar(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(strings.TrimSuffix(s, ";"), ";")
	out := make([]int, 0, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("sidecar value %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// FormatSidecar formats values as a semicolon-separated list.
func FormatSidecar(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ";")
}

// ReadSidecar reads the sidecar of an image. A missing sidecar is not an
// error and yields nil.
func ReadSidecar(imagePath, ext string) ([]int, error) {
	data, err := os.ReadFile(SidecarPath(imagePath, ext))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sidecar: %w", err)
	}
	return ParseSidecar(string(data))
}

// WriteSidecar writes values next to an image.
func WriteSidecar(imagePath, ext string, values []int) error {
	if err := os.WriteFile(SidecarPath(imagePath, ext), []byte(FormatSidecar(values)), 0644); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	return nil
}
