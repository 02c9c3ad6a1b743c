// Package macrotable implements the assembler's #define table: a mapping
// from identifier to a single replacement token. Last write wins on a
// duplicate name; insertion order is irrelevant, so a plain map
// suffices - there is no two-phase defined/undefined lifecycle here the
// way there is for section symbols.
package macrotable

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

// Table is the macro name -> replacement token mapping.
type Table struct {
	values map[string]string
}

// New returns an empty macro table.
func New() *Table {
	return &Table{values: make(map[string]string)}
}

// Define inserts or overwrites name's replacement value.
func (t *Table) Define(name, value string) {
	t.values[name] = value
}

// Expand returns the macro-expanded form of tok. A token that names no
// macro is returned unchanged. Expansion happens exactly once: if value
// itself names another macro, that second-level expansion never
// happens.
func (t *Table) Expand(tok string) string {
	if v, ok := t.values[tok]; ok {
		return v
	}
	return tok
}
