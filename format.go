// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package scumm

import (
	"encoding/binary"
	"fmt"
)

// Block tags
const (
	TagLECF = "LECF" // data file root
	TagLOFF = "LOFF" // room offset table
	TagLFLF = "LFLF" // room bundle
	TagROOM = "ROOM"
	TagRMHD = "RMHD" // room header
	TagRMIM = "RMIM" // room image
	TagRMIH = "RMIH"
	TagSMAP = "SMAP" // strip map
	TagOBIM = "OBIM" // object image
	TagOBCD = "OBCD" // object code
	TagBOXD = "BOXD" // walk boxes
	TagBOXM = "BOXM" // box matrix
	TagSCAL = "SCAL" // scale slots
	TagCLUT = "CLUT" // palette
	TagPALS = "PALS"
	TagWRAP = "WRAP"
	TagAPAL = "APAL"
	TagRNAM = "RNAM" // room names
	TagMAXS = "MAXS"
	TagDROO = "DROO" // room directory
	TagDSCR = "DSCR" // script directory
	TagDSOU = "DSOU" // sound directory
	TagDCOS = "DCOS" // costume directory
	TagDCHR = "DCHR" // charset directory
	TagDOBJ = "DOBJ"
	TagSOUN = "SOUN"
	TagCOST = "COST"
	TagSCRP = "SCRP"

	// Small-header (version 4) tags
	TagLE = "LE"
	TagFO = "FO"
	TagLF = "LF"
	TagRO = "RO"
)

const (
	bigHeaderSize   = 8
	smallHeaderSize = 6
	maxBlockSize    = 0xFFFFFFFF
)

// schemaFunc decodes a structured payload from its raw bytes.
type schemaFunc func(data []byte) (Payload, error)

// HeaderFormat describes the block header convention of one container
// family along with the tags that hold child blocks and the structured
// schemas known for it.
type HeaderFormat struct {
	Name    string
	Version int

	small      bool
	containers map[string]bool
	schemas    map[string]schemaFunc
}

// HeaderSize returns the size of one block header in bytes.
func (f *HeaderFormat) HeaderSize() int {
	if f.small {
		return smallHeaderSize
	}
	return bigHeaderSize
}

// TagSize returns the tag width in bytes.
func (f *HeaderFormat) TagSize() int {
	if f.small {
		return 2
	}
	return 4
}

// IsContainer reports whether blocks with this tag hold child blocks.
func (f *HeaderFormat) IsContainer(tag string) bool {
	if f.containers[tag] {
		return true
	}
	// IM00..IMFF image planes hold SMAP and z-planes.
	return !f.small && len(tag) == 4 && tag[0] == 'I' && tag[1] == 'M' && isHexDigit(tag[2]) && isHexDigit(tag[3])
}

// readHeader decodes the header at data[off:].
func (f *HeaderFormat) readHeader(data []byte, off int64) (string, int64, error) {
	hs := int64(f.HeaderSize())
	if off+hs > int64(len(data)) {
		return "", 0, &FormatError{Offset: off, Reason: fmt.Sprintf("header needs %d bytes, %d left", hs, int64(len(data))-off)}
	}

	var tagBytes []byte
	var size int64
	if f.small {
		size = int64(binary.LittleEndian.Uint32(data[off:]))
		tagBytes = data[off+4 : off+6]
	} else {
		tagBytes = data[off : off+4]
		size = int64(binary.BigEndian.Uint32(data[off+4:]))
	}

	if !validTag(tagBytes) {
		return "", 0, &FormatError{Offset: off, Reason: fmt.Sprintf("unreadable tag % X", tagBytes)}
	}
	tag := string(tagBytes)

	if size < hs {
		return tag, 0, &FormatError{Offset: off, Tag: tag, Reason: fmt.Sprintf("declared size %d is smaller than the header", size)}
	}
	return tag, size, nil
}

// putHeader encodes a header into dst, which must be HeaderSize() bytes.
func (f *HeaderFormat) putHeader(dst []byte, tag string, size int64) error {
	if len(tag) != f.TagSize() || !validTag([]byte(tag)) {
		return fmt.Errorf("invalid tag %q for %s headers", tag, f.Name)
	}
	if size > maxBlockSize {
		return fmt.Errorf("block %s too large: %d bytes", tag, size)
	}
	if f.small {
		binary.LittleEndian.PutUint32(dst[0:4], uint32(size))
		copy(dst[4:6], tag)
	} else {
		copy(dst[0:4], tag)
		binary.BigEndian.PutUint32(dst[4:8], uint32(size))
	}
	return nil
}

// decodePayload returns the structured payload for tag, or Raw when the tag
// has no schema or the schema does not reproduce the bytes exactly.
func (f *HeaderFormat) decodePayload(tag string, data []byte) Payload {
	raw := Raw(append([]byte(nil), data...))
	decode, ok := f.schemas[tag]
	if !ok {
		return raw
	}
	p, err := decode(raw)
	if err != nil {
		return raw
	}
	back, err := p.MarshalBinary()
	if err != nil || string(back) != string(data) {
		return raw
	}
	return p
}

var (
	// FormatV4 is the 6-byte header convention of version 4 games.
	FormatV4 = &HeaderFormat{
		Name:       "v4",
		Version:    4,
		small:      true,
		containers: tagSet(TagLE, TagLF, TagRO),
		schemas:    map[string]schemaFunc{},
	}

	// FormatV5 is the 8-byte big-endian convention with version 5 schemas.
	FormatV5 = &HeaderFormat{
		Name:       "v5",
		Version:    5,
		containers: tagSet(TagLECF, TagLFLF, TagROOM, TagRMIM, TagOBIM, TagOBCD, TagPALS, TagWRAP),
		schemas: map[string]schemaFunc{
			TagRMHD: decodeRoomHeader,
			TagLOFF: decodeRoomOffsets,
			TagCLUT: decodePalette,
			TagAPAL: decodePalette,
			TagRNAM: decodeRoomNames,
			TagDROO: decodeDirectorySchema,
			TagDSCR: decodeDirectorySchema,
			TagDSOU: decodeDirectorySchema,
			TagDCOS: decodeDirectorySchema,
			TagDCHR: decodeDirectorySchema,
		},
	}

	// FormatV6 is the 8-byte big-endian convention with version 6 schemas.
	FormatV6 = &HeaderFormat{
		Name:       "v6",
		Version:    6,
		containers: tagSet(TagLECF, TagLFLF, TagROOM, TagRMIM, TagOBIM, TagOBCD, TagPALS, TagWRAP),
		schemas: map[string]schemaFunc{
			TagRMHD: decodeRoomHeader,
			TagLOFF: decodeRoomOffsets,
			TagCLUT: decodePalette,
			TagAPAL: decodePalette,
			TagRNAM: decodeRoomNames,
			TagDROO: decodeDirectorySchema,
			TagDSCR: decodeDirectorySchema,
			TagDSOU: decodeDirectorySchema,
			TagDCOS: decodeDirectorySchema,
			TagDCHR: decodeDirectorySchema,
		},
	}

	// FormatV8 is the 8-byte big-endian convention of versions 7 and 8.
	// No structured schemas are known for it.
	FormatV8 = &HeaderFormat{
		Name:       "v8",
		Version:    8,
		containers: tagSet(TagLECF, TagLFLF, TagROOM, "RMSC", TagRMIM, "IMAG", TagWRAP, TagOBIM, TagOBCD, TagPALS),
		schemas:    map[string]schemaFunc{},
	}
)

// FormatForVersion returns the header format for an engine version.
func FormatForVersion(version int) (*HeaderFormat, error) {
	switch {
	case version == 4:
		return FormatV4, nil
	case version == 5:
		return FormatV5, nil
	case version == 6:
		return FormatV6, nil
	case version == 7 || version == 8:
		return FormatV8, nil
	default:
		return nil, fmt.Errorf("unsupported engine version: %d", version)
	}
}

func tagSet(tags ...string) map[string]bool {
	m := make(map[string]bool, len(tags))
	for _, t := range tags {
		m[t] = true
	}
	return m
}

func validTag(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7E {
			return false
		}
	}
	return len(b) > 0
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')
}
