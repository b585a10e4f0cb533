// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
)

// ImageRef identifies one image plane inside a room.
type ImageRef struct {
	Room   int // room index, used for error context
	Object int // OBIM index among the room's objects, or -1 for the background
	Image  int // image state; 0 is the first image of an object
	Plane  int // 0 is the strip map, n > 0 is z-plane n
}

// Background returns the reference to a room's background strip map.
func Background(room int) ImageRef {
	return ImageRef{Room: room, Object: -1}
}

func (r ImageRef) String() string {
	if r.Object < 0 {
		return fmt.Sprintf("room %d background plane %d", r.Room, r.Plane)
	}
	return fmt.Sprintf("room %d object %d image %d plane %d", r.Room, r.Object, r.Image, r.Plane)
}

// Decoder turns an image block into pixels. Implementations live outside
// this package; the container code only calls them.
type Decoder interface {
	Decode(room *Block, ref ImageRef) (image.Image, error)
}

// HintDecoder is a Decoder that also reports the index assignment it saw,
// so that a later re-encode can reproduce it.
type HintDecoder interface {
	Decoder
	DecodeHint(room *Block, ref ImageRef) (image.Image, []int, error)
}

// Encoder turns pixels back into the payload of an image block. hint is the
// index assignment read from the image's sidecar and may be nil.
type Encoder interface {
	Encode(room *Block, ref ImageRef, img image.Image, hint []int) ([]byte, error)
}

// ImageBlock returns the block holding the referenced plane:
// RMIM/IM00/SMAP for the background or OBIM[n]/IMxx/SMAP for an object,
// with ZPnn in place of SMAP for z-planes.
func ImageBlock(room *Block, ref ImageRef) (*Block, error) {
	if room.Tag() == TagLFLF {
		if r := room.Child(TagROOM); r != nil {
			room = r
		}
	}

	var holder *Block
	var imageTag string
	if ref.Object < 0 {
		holder = room.Child(TagRMIM)
		imageTag = "IM00"
	} else {
		objects := room.ChildrenByTag(TagOBIM)
		if ref.Object < len(objects) {
			holder = objects[ref.Object]
		}
		imageTag = fmt.Sprintf("IM%02X", ref.Image+1)
	}
	if holder == nil {
		return nil, fmt.Errorf("%v: %w", ref, ErrNotFound)
	}

	img := holder.Child(imageTag)
	if img == nil {
		return nil, fmt.Errorf("%v: %s %w", ref, imageTag, ErrNotFound)
	}

	planeTag := TagSMAP
	if ref.Plane > 0 {
		planeTag = fmt.Sprintf("ZP%02X", ref.Plane)
	}
	blk := img.Child(planeTag)
	if blk == nil {
		return nil, fmt.Errorf("%v: %s %w", ref, planeTag, ErrNotFound)
	}
	return blk, nil
}

// ExportImage decodes an image and saves it to path, choosing the file
// format from the extension. When dec is a HintDecoder and reports a hint,
// a sidecar is written next to the image using sidecarExt.
func ExportImage(dec Decoder, room *Block, ref ImageRef, path, sidecarExt string) error {
	if _, err := ImageBlock(room, ref); err != nil {
		return err
	}

	var img image.Image
	var hint []int
	var err error
	if hd, ok := dec.(HintDecoder); ok {
		img, hint, err = hd.DecodeHint(room, ref)
	} else {
		img, err = dec.Decode(room, ref)
	}
	if err != nil {
		return fmt.Errorf("decode %v: %w", ref, err)
	}

	if err := SaveImage(path, img); err != nil {
		return err
	}
	if hint != nil {
		return WriteSidecar(path, sidecarExt, hint)
	}
	return nil
}

// ImportImage opens an edited image, encodes it with the hint from its
// sidecar and replaces the referenced block's payload. Codec failures are
// returned as *EncodeError.
func ImportImage(enc Encoder, room *Block, ref ImageRef, path, sidecarExt string) error {
	blk, err := ImageBlock(room, ref)
	if err != nil {
		return err
	}

	img, err := imgio.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	hint, err := ReadSidecar(path, sidecarExt)
	if err != nil {
		return err
	}

	data, err := enc.Encode(room, ref, img, hint)
	if err != nil {
		return &EncodeError{Room: ref.Room, Object: ref.Object, Image: ref.Image, Err: err}
	}
	return blk.SetPayload(Raw(data))
}

// SaveImage writes img to path as PNG, JPEG or BMP according to the file
// extension.
func SaveImage(path string, img image.Image) error {
	var enc imgio.Encoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		enc = imgio.PNGEncoder()
	case ".jpg", ".jpeg":
		enc = imgio.JPEGEncoder(95)
	case ".bmp":
		enc = imgio.BMPEncoder()
	default:
		return fmt.Errorf("save image: unsupported extension %q", filepath.Ext(path))
	}
	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	return nil
}
