// Package linker implements a four-pass placement-and-patch algorithm:
// merge the symbol tables of a list of object files, assign each module
// a contiguous base address, resolve every caller-table entry to a
// PC-relative delta, and patch it directly into the already-encoded
// instruction word using slice indexing and bounds-checked byte writes.
package linker

/*
Author: Jeff Berkowitz
Copyright (C) 2023 Jeff Berkowitz

This file is part of yuasm.

Yuasm is free software; you can redistribute it and/or
modify it under the terms of the GNU General Public License
as published by the Free Software Foundation, either version 3
of the License, or (at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see http://www.gnu.org/licenses/.
*/

import (
	"fmt"

	"github.com/gmofishsauce/yuasm/internal/object"
)

// module is one input object file plus the placement data computed for
// it in Pass 2.
type module struct {
	path string
	file *object.File
	base uint32
}

// Link runs all four passes over files in the given order. Module
// order is significant: given the same inputs in the same order, Link
// always produces byte-identical output. It returns the merged,
// patched instruction image ready to write as program.bin.
//
// standalone distinguishes only the hint text of an unresolved-symbol
// error: true when the caller is the linker driver invoked directly by
// a user with a presumably-complete file list, false when the caller is
// the assembler driver linking a single freshly-written object file as
// a convenience step. The resolution algorithm itself never varies.
func Link(paths []string, standalone bool) ([]byte, error) {
	mods, err := parseAll(paths)
	if err != nil {
		return nil, err
	}
	placeModules(mods)
	blob := mergeInstructions(mods)
	if err := resolveAndPatch(mods, blob, standalone); err != nil {
		return nil, err
	}
	return blob, nil
}

// parseAll is Pass 1: read each object file in the wire format
// internal/object implements.
func parseAll(paths []string) ([]*module, error) {
	mods := make([]*module, 0, len(paths))
	for _, p := range paths {
		f, err := object.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("link error: %s: %w", p, err)
		}
		mods = append(mods, &module{path: p, file: f})
	}
	return mods, nil
}

// placeModules is Pass 2: module i's base address is four times the
// total instruction count of every module before it in input order.
func placeModules(mods []*module) {
	var base uint32
	for _, m := range mods {
		m.base = base
		base += uint32(len(m.file.Instructions))
	}
}

// mergeInstructions concatenates every module's instruction blob, in
// order, into the buffer Pass 3 patches in place and Pass 4 emits.
func mergeInstructions(mods []*module) []byte {
	var total int
	for _, m := range mods {
		total += len(m.file.Instructions)
	}
	blob := make([]byte, 0, total)
	for _, m := range mods {
		blob = append(blob, m.file.Instructions...)
	}
	return blob
}

// opcode patch-field widths for the branch family. jumpd (0x21) and
// jumpifd (0x23) are register-indirect and never appear at a caller
// site; the encoder never emits a caller entry for them
// (internal/encoder.NeedsCallerEntry).
const (
	opJump   = 0x20
	opJumpif = 0x22
	opBr     = 0x26
	opBrif   = 0x27
)

// resolveAndPatch is Pass 3: for every (name, caller_abs_loc) across
// every module, find the first module in input order that defines
// name, compute the PC-relative delta, and patch it into blob in place
// at the caller's absolute location.
func resolveAndPatch(mods []*module, blob []byte, standalone bool) error {
	defAbsLoc := make(map[string]uint32)
	for _, m := range mods {
		for _, def := range m.file.Defs {
			if _, seen := defAbsLoc[def.Name]; seen {
				continue // first module in input order wins
			}
			defAbsLoc[def.Name] = m.base + def.Loc
		}
	}

	for _, m := range mods {
		for _, caller := range m.file.Callers {
			callerAbsLoc := m.base + caller.Loc
			defLoc, ok := defAbsLoc[caller.Name]
			if !ok {
				return fmt.Errorf("link error: undefined symbol %q referenced in %s: %s", caller.Name, m.path, unresolvedHint(standalone))
			}
			locDiff := int64(defLoc) - int64(callerAbsLoc)
			if err := patch(blob, callerAbsLoc, locDiff); err != nil {
				return fmt.Errorf("link error: %s: %w", m.path, err)
			}
		}
	}
	return nil
}

// unresolvedHint varies only by how the linker was invoked: directly by
// a user (standalone), who may simply have left an object file off the
// command line, versus as a convenience step right after the assembler
// wrote a single object file, where the missing definition is more
// likely to live in a sibling module that was never assembled yet.
func unresolvedHint(standalone bool) string {
	if standalone {
		return "please make sure to call the linker with all object files"
	}
	return "please call the linker manually with all object files"
}

// patch overwrites the target field of the instruction word at
// callerAbsLoc with delta, choosing the 24-bit or 16-bit field shape
// by inspecting the opcode byte already sitting at that offset.
func patch(blob []byte, callerAbsLoc uint32, delta int64) error {
	if int(callerAbsLoc)+3 >= len(blob) {
		return fmt.Errorf("caller location %d out of range", callerAbsLoc)
	}
	opcode := blob[callerAbsLoc]
	switch opcode {
	case opJump, opBr:
		v := uint32(delta) & 0xFFFFFF
		blob[callerAbsLoc+1] = byte(v >> 16)
		blob[callerAbsLoc+2] = byte(v >> 8)
		blob[callerAbsLoc+3] = byte(v)
	case opJumpif, opBrif:
		v := uint16(delta) & 0xFFFF
		blob[callerAbsLoc+1] = byte(v >> 8)
		blob[callerAbsLoc+2] = byte(v)
	default:
		return fmt.Errorf("logic error: caller site at %d has non-branch opcode 0x%02x", callerAbsLoc, opcode)
	}
	return nil
}
