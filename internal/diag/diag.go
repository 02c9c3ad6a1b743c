// Package diag holds the toolchain's console diagnostics: a small
// pr/fatal/trace trio rather than a structured logger. Every diagnostic
// is a single line to stderr naming the source file, the current line
// number, and the offending line text.
package diag

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
	"os"
)

// Debug gates the token/state trace printed by the FSM when the driver's
// -d/--debug flag is set.
var Debug = false

// Trace prints a one-line debug trace when Debug is enabled.
func Trace(format string, args ...any) {
	if Debug {
		fmt.Fprintf(os.Stderr, "[ "+format+" ]\n", args...)
	}
}

// Error is a single-line diagnostic identifying where in the source the
// problem occurred. Kind is a short label (lex, identifier,
// preprocessor, instruction, numeric, include, object-file, link) - not
// a Go error type hierarchy, just a tag for the message.
type Error struct {
	Kind    string
	File    string
	Line    int
	Text    string // the offending source line, verbatim
	Message string
}

func (e *Error) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s, line %d: %s error: %s: %s", e.File, e.Line, e.Kind, e.Message, e.Text)
}

// Fatalf prints msg to stderr and exits the process with status 1. It is
// used only by cmd/yuasm and cmd/yulink, never by the library packages,
// which always return an error instead.
func Fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal: "+format+"\n", args...)
	os.Exit(1)
}

// Pr prints a one-line informational message.
func Pr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
