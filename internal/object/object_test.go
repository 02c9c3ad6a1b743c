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
	"bytes"
	"testing"
)

func check(t *testing.T, a1 any, a2 any) {
	t.Helper()
	if a1 != a2 {
		t.Errorf("%[1]v (a %[1]T) != %[2]v (a %[2]T)", a1, a2)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	f := &File{
		Defs:         []Symbol{{Name: "main", Loc: 0}, {Name: "helper", Loc: 4}},
		Callers:      []Symbol{{Name: "helper", Loc: 0}},
		Instructions: []byte{0x20, 0, 0, 0, 0x25, 0, 0, 0},
	}

	var buf bytes.Buffer
	check(t, Write(&buf, f), nil)

	got, err := Read(&buf)
	check(t, err, nil)
	check(t, len(got.Defs), len(f.Defs))
	check(t, len(got.Callers), len(f.Callers))
	check(t, got.Defs[0].Name, f.Defs[0].Name)
	check(t, got.Defs[0].Loc, f.Defs[0].Loc)
	check(t, got.Defs[1].Name, f.Defs[1].Name)
	check(t, got.Defs[1].Loc, f.Defs[1].Loc)
	check(t, got.Callers[0].Name, f.Callers[0].Name)
	check(t, bytes.Equal(got.Instructions, f.Instructions), true)
	check(t, got.InstructionCount(), 2)
}

func TestReadMisalignedInstructionBlob(t *testing.T) {
	var buf bytes.Buffer
	f := &File{Instructions: []byte{1, 2, 3}}
	check(t, Write(&buf, f), nil)

	_, err := Read(&buf)
	if err == nil {
		t.Fatal("expected misalignment error")
	}
}

func TestReadTruncated(t *testing.T) {
	// N_defs says one record follows, but the bytes stop short.
	buf := bytes.NewBuffer([]byte{0, 0, 0, 1})
	_, err := Read(buf)
	if err == nil {
		t.Fatal("expected truncation error")
	}
}
