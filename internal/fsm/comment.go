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

// stepCommentScanBegin follows a '/' wherever one is legal (line start,
// between an instruction's parameters, or a line-trailing region): a
// second '/' opens a line comment, a '*'
// opens a block comment, anything else is an error - this assembler
// has no division operator for '/' to otherwise mean.
func (a *Assembler) stepCommentScanBegin(b byte, cat charclass.Category) error {
	switch cat {
	case charclass.Slash:
		a.state = sLineComment
	case charclass.Star:
		a.state = sBlockComment
	default:
		return a.errf("lex", "unexpected %s after '/'", cat)
	}
	return nil
}

// stepLineComment discards bytes through end of line. The newline
// itself still means whatever it would have meant in the state the
// comment interrupted - ending the current parameter list and emitting
// an instruction, say - so it's handed to that state's own handler
// rather than swallowed here.
func (a *Assembler) stepLineComment(b byte, cat charclass.Category) error {
	if cat != charclass.Newline {
		return nil
	}
	a.state = a.preCommentState
	return a.step(b)
}

// stepBlockComment discards bytes until a '*' that might close the
// comment.
func (a *Assembler) stepBlockComment(b byte, cat charclass.Category) error {
	if cat == charclass.Star {
		a.state = sBlockCommentEnd
	}
	return nil
}

// stepBlockCommentEnd is inside a block comment just after a '*': a
// '/' closes the comment and resumes the pre-comment state; any other
// '*' stays here (absorbs a run of stars); anything else falls back
// into the comment body.
func (a *Assembler) stepBlockCommentEnd(b byte, cat charclass.Category) error {
	switch cat {
	case charclass.Slash:
		a.state = a.preCommentState
	case charclass.Star:
		// stay
	default:
		a.state = sBlockComment
	}
	return nil
}

// stepTrailing implements both sScOrCommentUntilLF and
// sNothingOrCommentUntilLF, where only whitespace, a comment, or a line
// terminator may follow. Every transition in this package (after a
// section label, a #define value, a ';', or a call's ')') enters
// sNothingOrCommentUntilLF; no transition enters sScOrCommentUntilLF,
// which shares this handler. Keeping both names rather than merging
// them into one preserves a direct mapping to the state list without
// changing anything observable.
func (a *Assembler) stepTrailing(b byte, cat charclass.Category) error {
	switch cat {
	case charclass.Space, charclass.CarrRet:
		// stay
	case charclass.Slash:
		a.preCommentState = a.state
		a.state = sCommentScanBegin
	case charclass.Newline:
		a.state = sScanFirst
	default:
		return a.errf("lex", "unexpected %s, expected end of line or comment", cat)
	}
	return nil
}
