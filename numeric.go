// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import "golang.org/x/exp/constraints"

type number interface {
	constraints.Integer | constraints.Float
}

func clamp[T number](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// lerp interpolates from a to b by t in [0, 1].
func lerp[T number](a, b T, t float64) float64 {
	return float64(a) + (float64(b)-float64(a))*t
}
