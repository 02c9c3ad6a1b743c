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

// stepScanFuncLead expects the first character of a section name right
// after the leading '.' of a ".name:" section label.
func (a *Assembler) stepScanFuncLead(b byte, cat charclass.Category) error {
	if cat != charclass.Letter {
		return a.errf("identifier", "section name must begin with a letter, got %s", cat)
	}
	a.idBuf = []byte{b}
	a.state = sScanFuncName
	return nil
}

// stepScanFuncName accumulates the section name until ':' (optionally
// preceded by whitespace) defines it at the current program counter.
func (a *Assembler) stepScanFuncName(b byte, cat charclass.Category) error {
	switch cat {
	case charclass.Letter, charclass.Digit:
		a.idBuf = append(a.idBuf, b)
	case charclass.Colon:
		return a.defineSection()
	case charclass.Space, charclass.CarrRet:
		a.state = sScanFuncTrail
	default:
		return a.errf("identifier", "unexpected %s in section name", cat)
	}
	return nil
}

// stepScanFuncTrail waits out whitespace between a section name and
// its terminating ':'.
func (a *Assembler) stepScanFuncTrail(b byte, cat charclass.Category) error {
	switch cat {
	case charclass.Space, charclass.CarrRet:
		// stay
	case charclass.Colon:
		return a.defineSection()
	default:
		return a.errf("identifier", "expected ':' after section name, got %s", cat)
	}
	return nil
}

// defineSection records the pending section name at the current
// program counter. A name defined twice in the same module is an
// identifier error - nothing downstream could decide which definition
// a caller meant.
func (a *Assembler) defineSection() error {
	name := string(a.idBuf)
	if _, dup := a.defs[name]; dup {
		return a.errf("identifier", "section %q redefined", name)
	}
	a.defs[name] = a.pc
	a.idBuf = nil
	a.state = sNothingOrCommentUntilLF
	return nil
}
