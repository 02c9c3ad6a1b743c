// Package object implements the relocatable object file format: a symbol
// definition table, a symbol reference (caller) table, and an instruction
// stream, all written most-significant-byte-first. The assembler writes
// files in this format; the linker reads them. Compatibility between the
// two is the entire point, so the layout here is authoritative for both
// sides. Everything is written big-endian via encoding/binary.
package object

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
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Symbol is one (name, module-relative byte offset) record, used for both
// the defs table and the callers table - they share the same on-disk
// shape.
type Symbol struct {
	Name string
	Loc  uint32
}

// File is one module's object file contents: its exported definitions,
// its unresolved references, and its instruction stream.
type File struct {
	Defs         []Symbol
	Callers      []Symbol
	Instructions []byte // 4*K bytes, K instructions, MSB-first per word
}

// InstructionCount returns K, the number of 32-bit instruction words.
func (f *File) InstructionCount() int {
	return len(f.Instructions) / 4
}

// Write serializes f to w in the on-disk object file format.
func Write(w io.Writer, f *File) error {
	bw := bufio.NewWriter(w)

	if err := writeSymbolTable(bw, f.Defs); err != nil {
		return fmt.Errorf("object-file error: writing defs: %w", err)
	}
	if err := writeSymbolTable(bw, f.Callers); err != nil {
		return fmt.Errorf("object-file error: writing callers: %w", err)
	}
	if _, err := bw.Write(f.Instructions); err != nil {
		return fmt.Errorf("object-file error: writing instructions: %w", err)
	}
	return bw.Flush()
}

func writeSymbolTable(w *bufio.Writer, syms []Symbol) error {
	if err := binary.Write(w, binary.BigEndian, uint32(len(syms))); err != nil {
		return err
	}
	for _, s := range syms {
		if len(s.Name) > 0xFFFF {
			return fmt.Errorf("symbol name %q too long", s.Name)
		}
		if err := binary.Write(w, binary.BigEndian, uint16(len(s.Name))); err != nil {
			return err
		}
		if _, err := w.WriteString(s.Name); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, s.Loc); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile creates (or truncates) path and writes f to it.
func WriteFile(path string, f *File) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("object-file error: %w", err)
	}
	defer out.Close()
	return Write(out, f)
}

// Read parses one object file from r: N_defs, then that many (len, name,
// loc) records; N_callers, then that many records in the same shape;
// then all remaining bytes as the instruction blob. The blob's length
// must be a multiple of 4.
func Read(r io.Reader) (*File, error) {
	br := bufio.NewReader(r)

	defs, err := readSymbolTable(br)
	if err != nil {
		return nil, fmt.Errorf("object-file error: reading defs: %w", err)
	}
	callers, err := readSymbolTable(br)
	if err != nil {
		return nil, fmt.Errorf("object-file error: reading callers: %w", err)
	}
	instrs, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("object-file error: reading instructions: %w", err)
	}
	if len(instrs)%4 != 0 {
		return nil, fmt.Errorf("object-file error: misaligned instruction blob (%d bytes)", len(instrs))
	}
	return &File{Defs: defs, Callers: callers, Instructions: instrs}, nil
}

func readSymbolTable(r io.Reader) ([]Symbol, error) {
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	syms := make([]Symbol, 0, n)
	for i := uint32(0); i < n; i++ {
		var nameLen uint16
		if err := binary.Read(r, binary.BigEndian, &nameLen); err != nil {
			return nil, fmt.Errorf("truncated record %d: %w", i, err)
		}
		nameBuf := make([]byte, nameLen)
		if _, err := io.ReadFull(r, nameBuf); err != nil {
			return nil, fmt.Errorf("truncated record %d name: %w", i, err)
		}
		var loc uint32
		if err := binary.Read(r, binary.BigEndian, &loc); err != nil {
			return nil, fmt.Errorf("truncated record %d location: %w", i, err)
		}
		syms = append(syms, Symbol{Name: string(nameBuf), Loc: loc})
	}
	return syms, nil
}

// ReadFile opens and parses the object file at path.
func ReadFile(path string) (*File, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("object-file error: %w", err)
	}
	defer in.Close()
	return Read(in)
}
