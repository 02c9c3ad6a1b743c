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

import "testing"

func check(t *testing.T, a1 any, a2 any) {
	t.Helper()
	if a1 != a2 {
		t.Errorf("%[1]v (a %[1]T) != %[2]v (a %[2]T)", a1, a2)
	}
}

func TestOfLetters(t *testing.T) {
	check(t, Of('a'), Letter)
	check(t, Of('Z'), Letter)
	check(t, Of('_'), Letter)
}

func TestOfDigits(t *testing.T) {
	check(t, Of('0'), Digit)
	check(t, Of('9'), Digit)
}

func TestOfPunctuation(t *testing.T) {
	check(t, Of('#'), Hash)
	check(t, Of(','), Comma)
	check(t, Of('.'), Dot)
	check(t, Of(':'), Colon)
	check(t, Of('\n'), Newline)
	check(t, Of('\r'), CarrRet)
	check(t, Of(' '), Space)
	check(t, Of('\t'), Space)
	check(t, Of(';'), Semi)
	check(t, Of('/'), Slash)
	check(t, Of('*'), Star)
	check(t, Of('('), ParenOpen)
	check(t, Of(')'), ParenClose)
	check(t, Of('-'), Dash)
	check(t, Of('"'), Quote)
}

func TestOfUnknown(t *testing.T) {
	check(t, Of('@'), Unknown)
	check(t, Of('$'), Unknown)
}

func TestCategoryString(t *testing.T) {
	check(t, Letter.String(), "AL")
	check(t, Unknown.String(), "UNKNOWN")
}
