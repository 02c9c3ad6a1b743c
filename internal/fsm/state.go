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

// The assembler's states, kept as plain int constants dispatched through
// an array of handler methods rather than one long per-byte switch
// statement over every state. Each handler further switches on the
// input byte's charclass.Category, so the combination amounts to a
// two-dimensional action table keyed on (state, category) without
// hand-writing the full state x category cross product - most cells
// would be identical "error" entries anyway.
const (
	sScanFirst = iota
	sScanInstrOrMacro

	sScanPreprocDef
	sScanPreprocSub
	sScanPreprocVal
	sScanIncludeLead
	sScanIncludeFpath

	sScanFuncLead
	sScanFuncName
	sScanFuncTrail

	sParamNoCommaNoDash
	sParamNoCommaYesDash
	sParamYesCommaYesDash

	sWaitParenClose

	sCommentScanBegin
	sLineComment
	sBlockComment
	sBlockCommentEnd

	sScOrCommentUntilLF
	sNothingOrCommentUntilLF

	sInvalid
	numStates
)

var stateNames = [numStates]string{
	sScanFirst:               "SCAN_FIRST",
	sScanInstrOrMacro:        "SCAN_INSTR_OR_MACRO",
	sScanPreprocDef:          "SCAN_PREPROC_DEF",
	sScanPreprocSub:          "SCAN_PREPROC_SUB",
	sScanPreprocVal:          "SCAN_PREPROC_VAL",
	sScanIncludeLead:         "SCAN_INCLUDE_LEAD",
	sScanIncludeFpath:        "SCAN_INCLUDE_FPATH",
	sScanFuncLead:            "SCAN_FUNC_LEAD",
	sScanFuncName:            "SCAN_FUNC_NAME",
	sScanFuncTrail:           "SCAN_FUNC_TRAIL",
	sParamNoCommaNoDash:      "SCAN_PARAM_NO_COMMA_NO_DASH",
	sParamNoCommaYesDash:     "SCAN_PARAM_NO_COMMA_YES_DASH",
	sParamYesCommaYesDash:    "SCAN_PARAM_YES_COMMA_YES_DASH",
	sWaitParenClose:          "WAIT_PAREN_CLOSE",
	sCommentScanBegin:        "COMMENT_SCAN_BEGIN",
	sLineComment:             "LINE_COMMENT",
	sBlockComment:            "BLOCK_COMMENT",
	sBlockCommentEnd:         "BLOCK_COMMENT_END",
	sScOrCommentUntilLF:      "SC_OR_COMMENT_UNTIL_LF",
	sNothingOrCommentUntilLF: "NOTHING_OR_COMMENT_UNTIL_LF",
	sInvalid:                 "INVALID_STATE",
}

// eofLegal reports whether reaching end-of-file while in state s is
// acceptable: only at the start of a line, inside a comment, or in a
// line-trailing state. Anywhere else - mid-mnemonic, mid-parameter,
// mid-directive - end-of-file is a fatal error.
func eofLegal(s int) bool {
	switch s {
	case sScanFirst, sLineComment, sBlockComment, sBlockCommentEnd,
		sScOrCommentUntilLF, sNothingOrCommentUntilLF:
		return true
	}
	return false
}
