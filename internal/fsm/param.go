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

import (
	"strings"

	"github.com/gmofishsauce/yuasm/internal/charclass"
	"github.com/gmofishsauce/yuasm/internal/encoder"
	"github.com/gmofishsauce/yuasm/internal/object"
)

// stepParam implements all three parameter sub-FSM states. They share
// one handler because the difference between them is entirely in what
// a comma or a '-' is allowed to do next, and that's cheaper to express
// as a couple of state comparisons than as three near-identical
// functions.
//
// Only the comma-while-empty, dash-while-empty, and end-of-instruction
// (trailing-comma check) cases actually read a.state: once the
// parameter buffer is non-empty, a comma always ends it and a second
// dash is always an error, regardless of which of the three states got
// us here.
func (a *Assembler) stepParam(b byte, cat charclass.Category) error {
	switch cat {
	case charclass.Letter, charclass.Digit:
		a.curParam = append(a.curParam, b)
		a.state = sParamNoCommaNoDash

	case charclass.Dash:
		if len(a.curParam) != 0 {
			return a.errf("instruction", "unexpected second '-' in parameter")
		}
		if a.state != sParamYesCommaYesDash && a.state != sParamNoCommaYesDash {
			return a.errf("instruction", "unexpected second '-' in parameter")
		}
		a.curParam = append(a.curParam, b)
		a.state = sParamNoCommaNoDash

	case charclass.Comma:
		if len(a.curParam) != 0 {
			a.params = append(a.params, a.finalizeParam())
			a.state = sParamNoCommaYesDash
		} else if a.state == sParamYesCommaYesDash {
			a.state = sParamNoCommaYesDash
		} else {
			return a.errf("instruction", "unexpected ',' (empty parameter)")
		}

	case charclass.Space, charclass.CarrRet:
		if len(a.curParam) != 0 {
			a.params = append(a.params, a.finalizeParam())
		}
		a.state = sParamYesCommaYesDash

	case charclass.Slash:
		if len(a.curParam) != 0 {
			return a.errf("instruction", "unexpected '/' in parameter")
		}
		a.preCommentState = a.state
		a.state = sCommentScanBegin

	case charclass.Newline, charclass.Semi:
		if len(a.curParam) == 0 && a.state == sParamNoCommaYesDash {
			return a.errf("instruction", "trailing comma before end of instruction")
		}
		if len(a.curParam) != 0 {
			a.params = append(a.params, a.finalizeParam())
		}
		mnemonic := string(a.idBuf)
		if err := a.emitInstruction(mnemonic, a.params); err != nil {
			return err
		}
		if cat == charclass.Semi {
			a.state = sNothingOrCommentUntilLF
		} else {
			a.state = sScanFirst
		}

	default:
		return a.errf("instruction", "unexpected %s in parameter", cat)
	}
	return nil
}

// finalizeParam macro-expands and clears the in-progress parameter
// buffer, returning its final text. Expansion applies uniformly to
// every parameter regardless of which byte ended it.
func (a *Assembler) finalizeParam() string {
	s := a.macros.Expand(string(a.curParam))
	a.curParam = nil
	return s
}

// emitInstruction encodes one completed instruction, records a caller
// table entry for a symbolic branch target if present, appends the
// word to the instruction stream, and advances the program counter.
func (a *Assembler) emitInstruction(mnemonic string, params []string) error {
	word, target, hasTarget, err := encoder.Encode(mnemonic, params)
	if err != nil {
		return a.wrapEncodeErr(err)
	}
	if hasTarget {
		if !encoder.NeedsCallerEntry(mnemonic) {
			return a.errf("logic", "internal error: %s produced a symbolic target but takes no caller entry", mnemonic)
		}
		a.callers = append(a.callers, object.Symbol{Name: target, Loc: a.pc})
	}
	a.instrs = append(a.instrs, word[:]...)
	a.pc += 4

	a.idBuf = nil
	a.params = nil
	a.curParam = nil
	return nil
}

// wrapEncodeErr attaches file/line context to an error from the
// encoder package, which knows nothing of source position. The
// encoder's errors already carry their own "instruction error:" or
// "numeric error:" kind prefix, so that's stripped back off first
// rather than doubled up.
func (a *Assembler) wrapEncodeErr(err error) error {
	msg := err.Error()
	kind := "instruction"
	for _, k := range []string{"instruction error: ", "numeric error: "} {
		if strings.HasPrefix(msg, k) {
			kind = strings.TrimSuffix(k, " error: ")
			msg = strings.TrimPrefix(msg, k)
			break
		}
	}
	return a.errf(kind, "%s", msg)
}
