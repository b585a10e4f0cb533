// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

/*
Package scumm provides pure Go support for reading and writing the resource
containers of SCUMM adventure games.

A SCUMM game ships as an index file (room names, directories of scripts,
sounds, costumes and charsets) and a data file holding one LFLF block per room.
Both are trees of length-prefixed chunks. Several releases additionally XOR
every byte of both files with a fixed key. This package detects the game,
removes the mask, parses both files into a tree of [Block] values, decodes the
walk-box geometry of each room and writes a modified tree back to disk with all
sizes and offset tables recomputed.

# Features

  - Game detection from the installation directory ([FindGame])
  - Transparent XOR masking ([MaskedStream])
  - Lossless chunk tree parse and re-serialization ([Parse], [Container.WriteTo])
  - Walk boxes, scale slots and the box matrix ([DecodeWalkBoxes], [DecodeScaleSlots], [DecodeBoxMatrix])
  - Offset table fix-ups on save (LOFF and index directories)
  - Image export/import through a pluggable pixel codec ([Decoder], [Encoder])

# Basic Usage

Loading a game:

	info := scumm.FindGame("/games/tentacle/TENTACLE.000")
	if info.Variant == scumm.None {
		log.Fatal("no game found")
	}

	game, err := scumm.LoadGame(info)
	if err != nil {
		log.Fatal(err)
	}

	for i, room := range game.Rooms() {
		geo, err := scumm.RoomGeometry(room)
		if err != nil {
			continue
		}
		fmt.Println(i, len(geo.Boxes), "walk boxes")
	}

Saving a modified game:

	if err := game.Save(info.IndexFile, info.DataFile); err != nil {
		log.Fatal(err)
	}

# Header Formats

Games from version 5 on use 8-byte block headers: a four-character tag followed
by a big-endian size that includes the header. The version 4 floppy release of
Monkey Island uses 6-byte headers with a little-endian size followed by a
two-character tag. [FormatForVersion] picks the right convention.

# Limitations

  - Pixel codecs are not part of this package; plug them in through [Decoder] and [Encoder]
  - Structured schemas exist only for the version 5 and 6 families; everything else is kept as raw bytes
  - The box matrix decode is a structural guess and should be treated as diagnostic output
*/
package scumm
