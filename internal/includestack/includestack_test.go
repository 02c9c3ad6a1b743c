package includestack

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
	"io"
	"os"
	"path/filepath"
	"testing"
)

func check(t *testing.T, a1 any, a2 any) {
	t.Helper()
	if a1 != a2 {
		t.Errorf("%[1]v (a %[1]T) != %[2]v (a %[2]T)", a1, a2)
	}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	check(t, os.WriteFile(path, []byte(content), 0o644), nil)
	return path
}

func TestReadByteTracksLineNumber(t *testing.T) {
	path := writeTemp(t, "mod.asm", "ab\ncd\n")
	s, err := New(path)
	check(t, err, nil)
	defer s.Close()

	check(t, s.Top().Line, 1)
	for i := 0; i < 3; i++ {
		_, err := s.ReadByte()
		check(t, err, nil)
	}
	check(t, s.Top().Line, 2)
	check(t, s.Top().CurrentLine(), "")
}

func TestReadByteEOFLeavesFrameOnStack(t *testing.T) {
	path := writeTemp(t, "mod.asm", "x\n")
	s, err := New(path)
	check(t, err, nil)
	defer s.Close()

	for i := 0; i < 2; i++ {
		_, err := s.ReadByte()
		check(t, err, nil)
	}
	_, err = s.ReadByte()
	check(t, err, io.EOF)
	check(t, s.Empty(), false)
	check(t, s.Top().Path, path)

	s.Pop()
	check(t, s.Empty(), true)
}

func TestPushMakesNewFrameActive(t *testing.T) {
	outerPath := writeTemp(t, "outer.asm", "o\n")
	innerPath := writeTemp(t, "inner.asm", "i\n")

	s, err := New(outerPath)
	check(t, err, nil)
	defer s.Close()

	check(t, s.Push(innerPath), nil)
	check(t, s.Top().Path, innerPath)

	b, err := s.ReadByte()
	check(t, err, nil)
	check(t, b, byte('i'))
}

func TestPushMissingFileIsError(t *testing.T) {
	s, err := New(writeTemp(t, "mod.asm", "\n"))
	check(t, err, nil)
	defer s.Close()

	err = s.Push(filepath.Join(t.TempDir(), "nope.asm"))
	if err == nil {
		t.Fatal("expected error pushing a nonexistent include file")
	}
}
