// Package fsm implements the assembler's single-pass character-driven
// finite-state machine: source text goes in one byte at a time and
// 32-bit instruction words, a section (def) table, and a caller
// (reference) table come out. Preprocessing (#define, #include) is
// layered onto the same state graph rather than run as a separate
// pass.
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
	"fmt"
	"io"

	"github.com/gmofishsauce/yuasm/internal/charclass"
	"github.com/gmofishsauce/yuasm/internal/diag"
	"github.com/gmofishsauce/yuasm/internal/encoder"
	"github.com/gmofishsauce/yuasm/internal/includestack"
	"github.com/gmofishsauce/yuasm/internal/macrotable"
	"github.com/gmofishsauce/yuasm/internal/object"
)

// Assembler holds all of the FSM's state across the whole input,
// including every file pushed by #include.
type Assembler struct {
	stack  *includestack.Stack
	macros *macrotable.Table

	defs    map[string]uint32
	callers []object.Symbol
	instrs  []byte
	pc      uint32

	state           int
	preCommentState int // state to resume once a comment ends

	idBuf   []byte // mnemonic / section name / directive keyword / macro name
	valBuf  []byte // macro value / include path
	defName string // macro name pending its value (SCAN_PREPROC_VAL)

	params   []string // parameters completed so far for the current instruction
	curParam []byte   // parameter currently being accumulated
}

// New creates an Assembler ready to assemble the module rooted at path.
func New(path string) (*Assembler, error) {
	stack, err := includestack.New(path)
	if err != nil {
		return nil, err
	}
	return &Assembler{
		stack:  stack,
		macros: macrotable.New(),
		defs:   make(map[string]uint32),
		state:  sScanFirst,
	}, nil
}

// Run assembles the whole include chain and returns the resulting
// object file. It stops at the first error: there is no local error
// recovery and no partial-output mode.
func (a *Assembler) Run() (*object.File, error) {
	defer a.stack.Close()

	for {
		b, rerr := a.stack.ReadByte()
		if rerr == io.EOF {
			if !eofLegal(a.state) {
				return nil, a.errf("lex", "unexpected end of file in state %s", stateNames[a.state])
			}
			a.stack.Pop()
			if a.stack.Empty() {
				break
			}
			continue
		}
		if rerr != nil {
			return nil, rerr
		}
		diag.Trace("state=%s byte=%q", stateNames[a.state], b)
		if err := a.step(b); err != nil {
			return nil, err
		}
	}

	defs := make([]object.Symbol, 0, len(a.defs))
	for name, loc := range a.defs {
		defs = append(defs, object.Symbol{Name: name, Loc: loc})
	}
	return &object.File{Defs: defs, Callers: a.callers, Instructions: a.instrs}, nil
}

// errf builds a diag.Error anchored at the current top-of-stack frame,
// or a frame-less one if the stack has already drained (shouldn't
// normally happen, since Run checks eofLegal before popping the last
// frame).
func (a *Assembler) errf(kind, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	top := a.stack.Top()
	if top == nil {
		return &diag.Error{Kind: kind, Message: msg}
	}
	return &diag.Error{Kind: kind, File: top.Path, Line: top.Line, Text: top.CurrentLine(), Message: msg}
}

// stateHandler processes one input byte while in a given state.
type stateHandler func(*Assembler, byte, charclass.Category) error

var dispatch [numStates]stateHandler

func init() {
	dispatch[sScanFirst] = (*Assembler).stepScanFirst
	dispatch[sScanInstrOrMacro] = (*Assembler).stepScanInstrOrMacro

	dispatch[sScanPreprocDef] = (*Assembler).stepScanPreprocDef
	dispatch[sScanPreprocSub] = (*Assembler).stepScanPreprocSub
	dispatch[sScanPreprocVal] = (*Assembler).stepScanPreprocVal
	dispatch[sScanIncludeLead] = (*Assembler).stepScanIncludeLead
	dispatch[sScanIncludeFpath] = (*Assembler).stepScanIncludeFpath

	dispatch[sScanFuncLead] = (*Assembler).stepScanFuncLead
	dispatch[sScanFuncName] = (*Assembler).stepScanFuncName
	dispatch[sScanFuncTrail] = (*Assembler).stepScanFuncTrail

	dispatch[sParamNoCommaNoDash] = (*Assembler).stepParam
	dispatch[sParamNoCommaYesDash] = (*Assembler).stepParam
	dispatch[sParamYesCommaYesDash] = (*Assembler).stepParam

	dispatch[sWaitParenClose] = (*Assembler).stepWaitParenClose

	dispatch[sCommentScanBegin] = (*Assembler).stepCommentScanBegin
	dispatch[sLineComment] = (*Assembler).stepLineComment
	dispatch[sBlockComment] = (*Assembler).stepBlockComment
	dispatch[sBlockCommentEnd] = (*Assembler).stepBlockCommentEnd

	dispatch[sScOrCommentUntilLF] = (*Assembler).stepTrailing
	dispatch[sNothingOrCommentUntilLF] = (*Assembler).stepTrailing
}

func (a *Assembler) step(b byte) error {
	h := dispatch[a.state]
	if h == nil {
		return a.errf("lex", "internal error: no handler for state %s", stateNames[a.state])
	}
	return h(a, b, charclass.Of(b))
}

// stepScanFirst is the state at the start of a line (or the start of
// the module): a line may open a section label (.name:), a
// preprocessor directive (#define/#include), an instruction or macro
// invocation, a comment, or nothing at all.
func (a *Assembler) stepScanFirst(b byte, cat charclass.Category) error {
	switch cat {
	case charclass.Letter:
		a.idBuf = []byte{b}
		a.state = sScanInstrOrMacro
	case charclass.Digit:
		return a.errf("identifier", "identifier may not begin with a digit")
	case charclass.Dot:
		a.idBuf = nil
		a.state = sScanFuncLead
	case charclass.Hash:
		a.idBuf = nil
		a.state = sScanPreprocDef
	case charclass.Slash:
		a.preCommentState = sScanFirst
		a.state = sCommentScanBegin
	case charclass.Space, charclass.CarrRet, charclass.Newline, charclass.Semi:
		// blank line, leading whitespace, or a bare ';' - stay put
	default:
		return a.errf("lex", "unexpected %s at start of line", cat)
	}
	return nil
}

// stepScanInstrOrMacro accumulates a mnemonic (or a macro name that
// expands to one) until whitespace, '(', or a line terminator ends it.
func (a *Assembler) stepScanInstrOrMacro(b byte, cat charclass.Category) error {
	switch cat {
	case charclass.Letter, charclass.Digit:
		a.idBuf = append(a.idBuf, b)
	case charclass.ParenOpen:
		a.state = sWaitParenClose
	case charclass.Space, charclass.CarrRet:
		name := a.macros.Expand(string(a.idBuf))
		if _, ok := encoder.Lookup(name); !ok {
			return a.errf("instruction", "unknown mnemonic %q", name)
		}
		a.idBuf = []byte(name)
		a.params = nil
		a.curParam = nil
		a.state = sParamYesCommaYesDash
	case charclass.Newline, charclass.Semi:
		name := a.macros.Expand(string(a.idBuf))
		if err := a.emitInstruction(name, nil); err != nil {
			return err
		}
		if cat == charclass.Semi {
			a.state = sNothingOrCommentUntilLF
		} else {
			a.state = sScanFirst
		}
	default:
		return a.errf("instruction", "unexpected %s in mnemonic", cat)
	}
	return nil
}

// stepWaitParenClose skips the argument list of call syntax such as a
// bare FOO(x) line: bytes up to the first ')' are ignored without being
// examined (parentheses do not nest), and no instruction is emitted.
func (a *Assembler) stepWaitParenClose(b byte, cat charclass.Category) error {
	switch cat {
	case charclass.ParenClose:
		a.state = sNothingOrCommentUntilLF
	case charclass.Newline:
		return a.errf("lex", "unterminated parameter list: missing ')'")
	}
	return nil
}
