package fsm

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

import "github.com/gmofishsauce/yuasm/internal/charclass"

// stepScanPreprocDef accumulates the directive keyword right after '#'.
// No whitespace is tolerated between '#' and the keyword: both
// #define and #include are always written with no space.
func (a *Assembler) stepScanPreprocDef(b byte, cat charclass.Category) error {
	switch cat {
	case charclass.Letter, charclass.Digit:
		a.idBuf = append(a.idBuf, b)
	case charclass.Space, charclass.CarrRet, charclass.Newline:
		kw := string(a.idBuf)
		a.idBuf = nil
		switch kw {
		case "define":
			a.state = sScanPreprocSub
		case "include":
			a.state = sScanIncludeLead
		default:
			return a.errf("preprocessor", "unknown directive %q", kw)
		}
		if cat == charclass.Newline {
			return a.errf("preprocessor", "missing argument to #%s", kw)
		}
	default:
		return a.errf("preprocessor", "unexpected %s in directive keyword", cat)
	}
	return nil
}

// stepScanPreprocSub accumulates the macro name in "#define NAME
// VALUE". Leading whitespace before the name is tolerated (the
// separator that got us into this state may be more than one byte).
func (a *Assembler) stepScanPreprocSub(b byte, cat charclass.Category) error {
	switch cat {
	case charclass.Letter:
		a.idBuf = append(a.idBuf, b)
	case charclass.Digit:
		if len(a.idBuf) == 0 {
			return a.errf("identifier", "macro name may not begin with a digit")
		}
		a.idBuf = append(a.idBuf, b)
	case charclass.Space, charclass.CarrRet:
		if len(a.idBuf) == 0 {
			return nil // absorb extra separator whitespace
		}
		a.defName = string(a.idBuf)
		a.idBuf = nil
		a.valBuf = nil
		a.state = sScanPreprocVal
	case charclass.Newline:
		if len(a.idBuf) == 0 {
			return a.errf("preprocessor", "missing macro name after #define")
		}
		return a.errf("preprocessor", "missing macro value for %q", string(a.idBuf))
	default:
		return a.errf("preprocessor", "unexpected %s in macro name", cat)
	}
	return nil
}

// stepScanPreprocVal accumulates the replacement value in "#define
// NAME VALUE". A single leading '-' is permitted, matching the same
// one-dash rule the parameter sub-FSM enforces.
func (a *Assembler) stepScanPreprocVal(b byte, cat charclass.Category) error {
	switch cat {
	case charclass.Letter, charclass.Digit:
		a.valBuf = append(a.valBuf, b)
	case charclass.Dash:
		if len(a.valBuf) != 0 {
			return a.errf("preprocessor", "unexpected second '-' in macro value")
		}
		a.valBuf = append(a.valBuf, b)
	case charclass.Space, charclass.CarrRet:
		if len(a.valBuf) == 0 {
			return nil // absorb extra separator whitespace
		}
		a.macros.Define(a.defName, string(a.valBuf))
		a.defName, a.valBuf = "", nil
		a.state = sNothingOrCommentUntilLF
	case charclass.Newline:
		if len(a.valBuf) == 0 {
			return a.errf("preprocessor", "missing macro value for %q", a.defName)
		}
		a.macros.Define(a.defName, string(a.valBuf))
		a.defName, a.valBuf = "", nil
		a.state = sScanFirst
	default:
		return a.errf("preprocessor", "unexpected %s in macro value", cat)
	}
	return nil
}

// stepScanIncludeLead waits for the opening '"' of an #include path.
func (a *Assembler) stepScanIncludeLead(b byte, cat charclass.Category) error {
	switch cat {
	case charclass.Space, charclass.CarrRet:
		// stay
	case charclass.Quote:
		a.valBuf = nil
		a.state = sScanIncludeFpath
	case charclass.Newline:
		return a.errf("preprocessor", "missing quoted path after #include")
	default:
		return a.errf("preprocessor", "expected opening '\"', got %s", cat)
	}
	return nil
}

// stepScanIncludeFpath accumulates a quoted include path. Only letters,
// digits, '.', ',', ':', ';', '*', '/', space, and '#' are allowed inside
// the quotes; the next '"' closes the path, and anything else -
// including a '-' - is rejected.
func (a *Assembler) stepScanIncludeFpath(b byte, cat charclass.Category) error {
	switch cat {
	case charclass.Quote:
		path := string(a.valBuf)
		a.valBuf = nil
		if err := a.stack.Push(path); err != nil {
			return a.errf("include", "%s", err)
		}
		a.state = sScanFirst
	case charclass.Newline:
		return a.errf("preprocessor", "unterminated include path")
	case charclass.Letter, charclass.Digit, charclass.Dot, charclass.Comma,
		charclass.Colon, charclass.Semi, charclass.Star, charclass.Slash,
		charclass.Space, charclass.Hash:
		a.valBuf = append(a.valBuf, b)
	default:
		return a.errf("preprocessor", "invalid character %s in include path", cat)
	}
	return nil
}
