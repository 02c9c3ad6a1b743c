package encoder

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
	"strconv"
	"strings"
)

// ParseNumber parses a numeric literal in one of three radices: decimal
// (default), hexadecimal ("0x"/"0X" prefix, case-insensitive), and
// binary ("0b"/"0B" prefix). A leading "-" is
// accepted here and applied to the magnitude; whether a negative value is
// legal for the operand it fills is validated by the caller (only loadm's
// immediate may be negative).
func ParseNumber(s string) (int64, error) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return 0, fmt.Errorf("numeric error: empty numeric literal")
	}

	var v int64
	var err error
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		v, err = strconv.ParseInt(s[2:], 16, 64)
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		v, err = strconv.ParseInt(s[2:], 2, 64)
	default:
		v, err = strconv.ParseInt(s, 10, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("numeric error: invalid digit in %q: %w", s, err)
	}
	if neg {
		v = -v
	}
	return v, nil
}

// looksNumeric reports whether s is a candidate numeric literal - i.e. it
// starts with a digit, or a '-' followed by a digit. Used by the encoder
// to tell a register/address/target operand apart from a symbolic
// identifier after macro expansion.
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	b := s[0]
	if b == '-' {
		return len(s) > 1 && s[1] >= '0' && s[1] <= '9'
	}
	return b >= '0' && b <= '9'
}
