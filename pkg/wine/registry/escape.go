// Zaparoo Wine Uplay
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Wine Uplay.
//
// Zaparoo Wine Uplay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Wine Uplay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Wine Uplay.  If not, see <http://www.gnu.org/licenses/>.

package registry

import (
	"strconv"
	"strings"
)

var simpleEscapes = map[byte]rune{
	'a': '\a',
	'b': '\b',
	'e': 0x1b,
	'f': '\f',
	'n': '\n',
	'r': '\r',
	't': '\t',
	'v': '\v',
}

// scanString decodes s up to the first unescaped delim, returning the
// decoded text and whatever follows the delimiter. Wine escapes control
// characters as C escapes or octal, and non-ASCII as \x with up to four hex
// digits; any other escaped character stands for itself.
func scanString(s string, delim byte) (string, string, bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == delim {
			return b.String(), s[i+1:], true
		}
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", "", false
		}
		c = s[i]
		switch {
		case simpleEscapes[c] != 0:
			b.WriteRune(simpleEscapes[c])
		case c == 'x':
			n := countDigits(s[i+1:], 4, isHex)
			if n == 0 {
				b.WriteByte('x')
				continue
			}
			r, _ := strconv.ParseUint(s[i+1:i+1+n], 16, 32)
			b.WriteRune(rune(r))
			i += n
		case c >= '0' && c <= '7':
			n := countDigits(s[i:], 3, isOctal)
			r, _ := strconv.ParseUint(s[i:i+n], 8, 32)
			b.WriteRune(rune(r))
			i += n - 1
		default:
			b.WriteByte(c)
		}
	}
	return "", "", false
}

// Escape encodes s the way wineserver writes strings delimited by delim.
func Escape(s string, delim byte) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\\' || r == rune(delim):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20:
			b.WriteString(`\` + padOctal(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func padOctal(r rune) string {
	s := strconv.FormatInt(int64(r), 8)
	return strings.Repeat("0", 3-len(s)) + s
}

func countDigits(s string, limit int, ok func(byte) bool) int {
	n := 0
	for n < len(s) && n < limit && ok(s[n]) {
		n++
	}
	return n
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}
