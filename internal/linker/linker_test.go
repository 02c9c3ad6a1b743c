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
	"bytes"
	"path/filepath"
	"testing"

	"github.com/gmofishsauce/yuasm/internal/object"
)

func check(t *testing.T, a1 any, a2 any) {
	t.Helper()
	if a1 != a2 {
		t.Errorf("%[1]v (a %[1]T) != %[2]v (a %[2]T)", a1, a2)
	}
}

// writeObj writes an object file to dir/name and returns its path.
func writeObj(t *testing.T, dir, name string, f *object.File) string {
	t.Helper()
	path := filepath.Join(dir, name)
	check(t, object.WriteFile(path, f), nil)
	return path
}

// TestLinkCrossModule covers the canonical two-module cross-reference
// case: module A defines .main, calls helper, and ends; module B
// defines .helper and returns. Linking [A, B] must produce the
// byte-exact patched image.
func TestLinkCrossModule(t *testing.T) {
	dir := t.TempDir()

	a := &object.File{
		Defs:         []object.Symbol{{Name: "main", Loc: 0}},
		Callers:      []object.Symbol{{Name: "helper", Loc: 0}},
		Instructions: []byte{0x20, 0, 0, 0, 0x25, 0, 0, 0}, // jump helper; end
	}
	b := &object.File{
		Defs:         []object.Symbol{{Name: "helper", Loc: 0}},
		Instructions: []byte{0x24, 0, 0, 0}, // ret
	}

	pathA := writeObj(t, dir, "a.o", a)
	pathB := writeObj(t, dir, "b.o", b)

	blob, err := Link([]string{pathA, pathB}, false)
	check(t, err, nil)

	want := []byte{0x20, 0x00, 0x00, 0x08, 0x25, 0x00, 0x00, 0x00, 0x24, 0x00, 0x00, 0x00}
	if !bytes.Equal(blob, want) {
		t.Errorf("got % x, want % x", blob, want)
	}
}

func TestLinkUndefinedSymbol(t *testing.T) {
	dir := t.TempDir()
	a := &object.File{
		Callers:      []object.Symbol{{Name: "nowhere", Loc: 0}},
		Instructions: []byte{0x20, 0, 0, 0},
	}
	path := writeObj(t, dir, "a.o", a)

	_, err := Link([]string{path}, false)
	if err == nil {
		t.Fatal("expected undefined symbol error")
	}
}

// TestLinkUndefinedSymbolHintVariesByStandalone covers the one thing
// Standalone is allowed to change: the hint text, never the outcome.
func TestLinkUndefinedSymbolHintVariesByStandalone(t *testing.T) {
	dir := t.TempDir()
	a := &object.File{
		Callers:      []object.Symbol{{Name: "nowhere", Loc: 0}},
		Instructions: []byte{0x20, 0, 0, 0},
	}
	path := writeObj(t, dir, "a.o", a)

	_, errDriven := Link([]string{path}, false)
	_, errStandalone := Link([]string{path}, true)
	if errDriven == nil || errStandalone == nil {
		t.Fatal("expected undefined symbol error in both modes")
	}
	if errDriven.Error() == errStandalone.Error() {
		t.Errorf("expected hint text to differ between standalone and driven modes, got %q for both", errDriven.Error())
	}
}

func TestLinkFirstDefinitionWins(t *testing.T) {
	dir := t.TempDir()
	// Two modules both define "dup"; module order determines which wins.
	a := &object.File{
		Defs:         []object.Symbol{{Name: "dup", Loc: 0}},
		Instructions: []byte{0x24, 0, 0, 0}, // ret, at absolute 0
	}
	b := &object.File{
		Defs:         []object.Symbol{{Name: "dup", Loc: 0}},
		Callers:      []object.Symbol{{Name: "dup", Loc: 0}},
		Instructions: []byte{0x20, 0, 0, 0}, // jump dup, at absolute 4
	}
	pathA := writeObj(t, dir, "a.o", a)
	pathB := writeObj(t, dir, "b.o", b)

	blob, err := Link([]string{pathA, pathB}, false)
	check(t, err, nil)
	// "dup" resolves to module A's definition (absolute 0), not B's (absolute 4).
	// caller at absolute 4, delta = 0 - 4 = -4 = 0xFFFFFC in 24 bits.
	want := []byte{0x24, 0, 0, 0, 0x20, 0xFF, 0xFF, 0xFC}
	if !bytes.Equal(blob, want) {
		t.Errorf("got % x, want % x", blob, want)
	}
}

func TestLinkBadOpcodeAtCallerSite(t *testing.T) {
	dir := t.TempDir()
	a := &object.File{
		Defs:         []object.Symbol{{Name: "x", Loc: 0}},
		Callers:      []object.Symbol{{Name: "x", Loc: 4}},
		Instructions: []byte{0x24, 0, 0, 0, 0x01, 0, 0, 0}, // caller site has loadr's opcode, not a branch
	}
	path := writeObj(t, dir, "a.o", a)

	_, err := Link([]string{path}, false)
	if err == nil {
		t.Fatal("expected logic error for non-branch opcode at caller site")
	}
}
