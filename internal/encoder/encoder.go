// Package encoder lowers one mnemonic and its parameters to a 32-bit
// instruction word. The opcode occupies the high 8 bits of the word;
// the remaining three bytes hold register numbers, immediates,
// addresses, or (for branch mnemonics) a zeroed placeholder the linker
// later patches with a PC-relative delta.
//
// One table entry per mnemonic describes its operand shape and fixed
// byte layout; encoding a word is a table lookup plus a per-operand
// switch on the operand kind. Register and address operands are then
// placed by a switch on the mnemonic, since their byte positions differ
// between instruction forms.
package encoder

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

import "fmt"

// ArgKind describes what an operand slot expects.
type ArgKind struct{ k int }

var (
	ArgReg    = ArgKind{0} // an 8-bit register/unsigned value, non-negative
	ArgImm16  = ArgKind{1} // a 16-bit immediate; loadm only, may be negative
	ArgAddr16 = ArgKind{2} // a 16-bit address, non-negative
	ArgTarg24 = ArgKind{3} // a 24-bit PC-relative branch target (symbolic)
	ArgTarg16 = ArgKind{4} // a 16-bit PC-relative branch target (symbolic)
)

// isTarget reports whether k names a branch-target operand - the only
// operand kind that may be a symbolic identifier bound for the caller
// table instead of a literal number.
func (k ArgKind) isTarget() bool {
	return k == ArgTarg24 || k == ArgTarg16
}

// Spec describes one mnemonic's opcode and operand shape.
type Spec struct {
	Name   string
	Opcode byte
	Args   []ArgKind
}

// Table is the complete mnemonic table for the instruction set.
var Table = []Spec{
	{"loadm", 0x00, []ArgKind{ArgReg, ArgImm16}},
	{"loadr", 0x01, []ArgKind{ArgReg, ArgReg}},
	{"storen", 0x02, []ArgKind{ArgReg, ArgReg}},
	{"stored", 0x03, []ArgKind{ArgAddr16, ArgReg}},
	{"loadd", 0x04, []ArgKind{ArgReg, ArgAddr16}},
	{"add", 0x10, []ArgKind{ArgReg, ArgReg, ArgReg}},
	{"sub", 0x11, []ArgKind{ArgReg, ArgReg, ArgReg}},
	{"mul", 0x12, []ArgKind{ArgReg, ArgReg, ArgReg}},
	{"div", 0x13, []ArgKind{ArgReg, ArgReg, ArgReg}},
	{"jump", 0x20, []ArgKind{ArgTarg24}},
	{"jumpd", 0x21, []ArgKind{ArgReg}},
	{"jumpif", 0x22, []ArgKind{ArgTarg16, ArgReg}},
	{"jumpifd", 0x23, []ArgKind{ArgReg, ArgReg}},
	{"ret", 0x24, nil},
	{"end", 0x25, nil},
	{"br", 0x26, []ArgKind{ArgTarg24}},
	{"brif", 0x27, []ArgKind{ArgTarg16, ArgReg}},
	{"and", 0x30, []ArgKind{ArgReg, ArgReg, ArgReg}},
	{"or", 0x31, []ArgKind{ArgReg, ArgReg, ArgReg}},
	{"nand", 0x32, []ArgKind{ArgReg, ArgReg, ArgReg}},
	{"nor", 0x33, []ArgKind{ArgReg, ArgReg, ArgReg}},
	{"xor", 0x34, []ArgKind{ArgReg, ArgReg, ArgReg}},
	{"lshift", 0x40, []ArgKind{ArgReg, ArgReg, ArgReg}},
	{"rshift", 0x41, []ArgKind{ArgReg, ArgReg, ArgReg}},
	{"lt", 0x50, []ArgKind{ArgReg, ArgReg, ArgReg}},
	{"lte", 0x51, []ArgKind{ArgReg, ArgReg, ArgReg}},
	{"gt", 0x52, []ArgKind{ArgReg, ArgReg, ArgReg}},
	{"gte", 0x53, []ArgKind{ArgReg, ArgReg, ArgReg}},
	{"eq", 0x54, []ArgKind{ArgReg, ArgReg, ArgReg}},
}

var byName map[string]*Spec

func init() {
	byName = make(map[string]*Spec, len(Table))
	for i := range Table {
		byName[Table[i].Name] = &Table[i]
	}
}

// Lookup returns the Spec for a mnemonic, and whether it is known.
func Lookup(name string) (*Spec, bool) {
	s, ok := byName[name]
	return s, ok
}

// NeedsCallerEntry reports whether mnemonic is one of the four branch
// forms whose target field the linker patches. jumpd/jumpifd are
// register-indirect and must never reach the caller table.
func NeedsCallerEntry(name string) bool {
	s, ok := byName[name]
	return ok && len(s.Args) > 0 && s.Args[0].isTarget()
}

// Word is one encoded 32-bit instruction, stored MSB-first (byte[0] is
// the opcode byte) to match the object file's on-the-wire byte order.
type Word [4]byte

// Encode lowers one instruction to a Word. params holds the already
// macro-expanded operand text in source order; a leading '-' is still
// part of that text and is applied by ParseNumber. For a branch
// mnemonic whose target operand is a symbolic identifier, target
// returns that identifier name and hasTarget=true; the caller (the FSM)
// is responsible for recording a caller-table entry at the instruction's
// PC - encoder has no notion of PC or module state.
func Encode(mnemonic string, params []string) (word Word, target string, hasTarget bool, err error) {
	spec, ok := Lookup(mnemonic)
	if !ok {
		return word, "", false, fmt.Errorf("instruction error: unknown mnemonic %q", mnemonic)
	}
	if len(params) != len(spec.Args) {
		return word, "", false, fmt.Errorf("instruction error: %s expects %d operand(s), got %d", mnemonic, len(spec.Args), len(params))
	}

	word[0] = spec.Opcode

	for i, kind := range spec.Args {
		p := params[i]

		if kind.isTarget() && !looksNumeric(p) {
			if hasTarget {
				// Can't happen with the current table (only one target
				// operand per mnemonic, always first), but guard it.
				return word, "", false, fmt.Errorf("instruction error: %s: multiple symbolic targets", mnemonic)
			}
			target = p
			hasTarget = true
			continue // leave the target field zeroed; linker patches it
		}

		v, perr := ParseNumber(p)
		if perr != nil {
			return word, "", false, perr
		}
		// Only loadm's immediate may be negative; every other operand,
		// including a literal numeric branch target, must be
		// non-negative.
		if kind != ArgImm16 && v < 0 {
			return word, "", false, fmt.Errorf("instruction error: %s: illegal negative parameter %q", mnemonic, p)
		}

		switch {
		case kind == ArgReg:
			if err := placeReg(&word, mnemonic, i, v); err != nil {
				return word, "", false, err
			}
		case kind == ArgImm16:
			placeImm16(&word, uint16(int16(v)))
		case kind == ArgAddr16:
			if err := placeAddr16(&word, mnemonic, i, v); err != nil {
				return word, "", false, err
			}
		case kind == ArgTarg24:
			placeTarget24(&word, uint32(v)&0xFFFFFF)
		case kind == ArgTarg16:
			placeTarget16(&word, uint16(v))
		}
	}
	return word, target, hasTarget, nil
}

// placeReg places a register/unsigned-value operand according to each
// mnemonic's fixed byte layout, per its Table entry above.
func placeReg(w *Word, mnemonic string, argIndex int, v int64) error {
	if v < 0 || v > 0xFF {
		return fmt.Errorf("instruction error: %s: register/value %d out of byte range", mnemonic, v)
	}
	b := byte(v)
	switch mnemonic {
	case "loadm": // rd, val -> 00 rd val_hi val_lo
		w[1] = b
	case "loadr": // rd, raddr -> 01 rd raddr 00
		if argIndex == 0 {
			w[1] = b
		} else {
			w[2] = b
		}
	case "storen": // raddr, rs -> 02 raddr rs 00
		if argIndex == 0 {
			w[1] = b
		} else {
			w[2] = b
		}
	case "stored": // addr, rs -> 03 addr_hi addr_lo rs
		w[3] = b
	case "loadd": // rd, addr -> 04 rd addr_hi addr_lo
		w[1] = b
	case "jumpd": // rs -> 21 rs 00 00
		w[1] = b
	case "jumpif": // target, rcond -> 22 00 d15..8 rcond
		w[3] = b
	case "jumpifd": // rs, rcond -> 23 rs 00 rcond
		if argIndex == 0 {
			w[1] = b
		} else {
			w[3] = b
		}
	case "brif": // target, rcond -> 27 00 d15..8 rcond
		w[3] = b
	default: // add/sub/mul/div, and/or/nand/nor/xor, lshift/rshift, lt/lte/gt/gte/eq: rd,rs1,rs2
		w[1+argIndex] = b
	}
	return nil
}

// placeImm16 packs loadm's 16-bit two's-complement immediate into
// bytes val_hi, val_lo (word[2], word[3]).
func placeImm16(w *Word, v uint16) {
	w[2] = byte(v >> 8)
	w[3] = byte(v)
}

// placeAddr16 packs a 16-bit address for stored/loadd.
func placeAddr16(w *Word, mnemonic string, argIndex int, v int64) error {
	if v < 0 || v > 0xFFFF {
		return fmt.Errorf("instruction error: %s: address %d out of 16-bit range", mnemonic, v)
	}
	hi, lo := byte(v>>8), byte(v)
	switch mnemonic {
	case "stored": // addr, rs -> 03 addr_hi addr_lo rs
		w[1], w[2] = hi, lo
	case "loadd": // rd, addr -> 04 rd addr_hi addr_lo
		w[2], w[3] = hi, lo
	}
	return nil
}

// placeTarget24 packs a 24-bit PC-relative delta into bytes 1..3
// (jump/br). Used only for a literal numeric target; the common case of
// a symbolic target leaves this field zero for the linker to patch.
func placeTarget24(w *Word, delta uint32) {
	w[1] = byte(delta >> 16)
	w[2] = byte(delta >> 8)
	w[3] = byte(delta)
}

// placeTarget16 packs a 16-bit PC-relative delta into bytes 1..2
// (jumpif/brif); byte 3 is reserved for rcond, placed separately by
// placeReg.
func placeTarget16(w *Word, delta uint16) {
	w[1] = byte(delta >> 8)
	w[2] = byte(delta)
}
