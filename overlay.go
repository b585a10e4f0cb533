// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// OverlayOptions controls how walk boxes are drawn.
type OverlayOptions struct {
	Color      color.NRGBA // outline color; the fill uses it with FillAlpha
	FillAlpha  uint8
	Labels     bool
	LabelColor color.Color
}

// OverlayOptionsFromConfig returns lime outlines with white labels, using
// the fill alpha and label switch from cfg.
func OverlayOptionsFromConfig(cfg *Config) OverlayOptions {
	return OverlayOptions{
		Color:      color.NRGBA{R: 0, G: 255, B: 0, A: 255},
		FillAlpha:  cfg.OverlayFillAlpha,
		Labels:     cfg.OverlayLabels,
		LabelColor: color.White,
	}
}

// BoxLabel returns the label drawn for a box: its index followed by the
// slot reference or the fixed percentage.
func BoxLabel(b *WalkBox) string {
	if b.UsesScaleSlot() {
		return fmt.Sprintf("%d s%d", b.Index, b.SlotIndex())
	}
	return fmt.Sprintf("%d %d%%", b.Index, b.FixedScale())
}

// DrawWalkBoxes draws each box onto dst as a translucent polygon with a one
// pixel outline and, optionally, a label at its centroid.
func DrawWalkBoxes(dst draw.Image, boxes []WalkBox, opts OverlayOptions) {
	bounds := dst.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return
	}

	fill := image.NewUniform(color.NRGBA{R: opts.Color.R, G: opts.Color.G, B: opts.Color.B, A: opts.FillAlpha})
	line := image.NewUniform(opts.Color)
	z := vector.NewRasterizer(w, h)

	for i := range boxes {
		pts := boxes[i].Points
		if len(pts) < 2 {
			continue
		}
		local := make([]point32, len(pts))
		for j, p := range pts {
			local[j] = point32{float32(p.X - bounds.Min.X), float32(p.Y - bounds.Min.Y)}
		}

		if opts.FillAlpha > 0 && len(local) >= 3 {
			z.Reset(w, h)
			z.MoveTo(local[0].x+0.5, local[0].y+0.5)
			for _, p := range local[1:] {
				z.LineTo(p.x+0.5, p.y+0.5)
			}
			z.ClosePath()
			z.Draw(dst, bounds, fill, image.Point{})
		}

		z.Reset(w, h)
		for j := range local {
			strokeEdge(z, local[j], local[(j+1)%len(local)])
		}
		z.Draw(dst, bounds, line, image.Point{})

		if opts.Labels {
			drawLabel(dst, &boxes[i], opts.LabelColor)
		}
	}
}

type point32 struct{ x, y float32 }

// strokeEdge adds a one pixel wide quad covering the pixels from a to b.
func strokeEdge(z *vector.Rasterizer, a, b point32) {
	dx, dy := b.x-a.x, b.y-a.y
	var ux, uy float32
	if n := float32(math.Hypot(float64(dx), float64(dy))); n > 0 {
		ux, uy = dx/n*0.5, dy/n*0.5
	} else {
		ux = 0.5
	}
	// Pixel centers, extended half a pixel past both ends.
	ax, ay := a.x+0.5-ux, a.y+0.5-uy
	bx, by := b.x+0.5+ux, b.y+0.5+uy
	nx, ny := -uy, ux

	z.MoveTo(ax+nx, ay+ny)
	z.LineTo(bx+nx, by+ny)
	z.LineTo(bx-nx, by-ny)
	z.LineTo(ax-nx, ay-ny)
	z.ClosePath()
}

func drawLabel(dst draw.Image, b *WalkBox, c color.Color) {
	if c == nil {
		c = color.White
	}
	cx, cy := b.Centroid()
	bounds := dst.Bounds()
	x := clamp(int(cx)-10, bounds.Min.X, bounds.Max.X-1)
	y := clamp(int(cy)+5, bounds.Min.Y, bounds.Max.Y-1)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(BoxLabel(b))
}
