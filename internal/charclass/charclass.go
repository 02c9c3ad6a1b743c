// Package charclass classifies the input bytes of a source module into the
// fixed set of categories the assembler's finite-state machine dispatches
// on. Classification is a pure function of the byte; it never looks at
// surrounding context.
package charclass

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

// Category names an input byte class. It's a struct wrapping an int
// rather than a bare int constant, so that a Category can never be
// silently confused with an unrelated int.
type Category struct {
	c int
}

var (
	Unknown    = Category{0}
	Letter     = Category{1} // AL: letter or underscore
	Digit      = Category{2} // NUM
	Hash       = Category{3}
	Comma      = Category{4}
	Dot        = Category{5}
	Colon      = Category{6}
	Newline    = Category{7}
	CarrRet    = Category{8}
	Space      = Category{9}
	Semi       = Category{10}
	Slash      = Category{11}
	Star       = Category{12}
	ParenOpen  = Category{13}
	ParenClose = Category{14}
	Dash       = Category{15}
	Quote      = Category{16}
)

var names = map[Category]string{
	Unknown:    "UNKNOWN",
	Letter:     "AL",
	Digit:      "NUM",
	Hash:       "#",
	Comma:      ",",
	Dot:        ".",
	Colon:      ":",
	Newline:    "\\n",
	CarrRet:    "\\r",
	Space:      "SP",
	Semi:       ";",
	Slash:      "/",
	Star:       "*",
	ParenOpen:  "(",
	ParenClose: ")",
	Dash:       "-",
	Quote:      "\"",
}

func (c Category) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	return "?"
}

// Of classifies one input byte. Digits are 0-9 only; letters are ASCII
// a-z, A-Z, and underscore (identifiers may not begin with a digit, but
// that rule lives in the FSM, not here).
func Of(b byte) Category {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b == '_':
		return Letter
	case b >= '0' && b <= '9':
		return Digit
	}
	switch b {
	case '#':
		return Hash
	case ',':
		return Comma
	case '.':
		return Dot
	case ':':
		return Colon
	case '\n':
		return Newline
	case '\r':
		return CarrRet
	case ' ', '\t':
		return Space
	case ';':
		return Semi
	case '/':
		return Slash
	case '*':
		return Star
	case '(':
		return ParenOpen
	case ')':
		return ParenClose
	case '-':
		return Dash
	case '"':
		return Quote
	}
	return Unknown
}
