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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestScanString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
		rest  string
	}{
		{name: "plain", input: `abc"=x`, want: "abc", rest: "=x"},
		{name: "escaped_quote", input: `a\"b"`, want: `a"b`},
		{name: "escaped_backslash", input: `C:\\Games\\"`, want: `C:\Games\`},
		{name: "c_escapes", input: `a\tb\nc"`, want: "a\tb\nc"},
		{name: "octal", input: `\0\033x"`, want: "\x00\x1bx"},
		{name: "hex_unicode", input: `Caf\x00e9"`, want: "Café"},
		{name: "short_hex", input: `\xe9!"`, want: "é!"},
		{name: "unknown_escape_is_literal", input: `\q\]"`, want: "q]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, rest, ok := scanString(tt.input, '"')
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rest, rest)
		})
	}

	t.Run("unterminated", func(t *testing.T) {
		t.Parallel()

		_, _, ok := scanString(`abc\"`, '"')
		assert.False(t, ok)
		_, _, ok = scanString(`abc\`, '"')
		assert.False(t, ok)
	})
}

func TestEscapeRoundTripProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		delim := rapid.SampledFrom([]byte{'"', ']'}).Draw(t, "delim")

		got, rest, ok := scanString(Escape(s, delim)+string(delim)+"tail", delim)
		if !ok {
			t.Fatalf("escaped string %q did not terminate", s)
		}
		if got != s {
			t.Fatalf("round trip mismatch: got %q, want %q", got, s)
		}
		if rest != "tail" {
			t.Fatalf("unexpected rest %q", rest)
		}
	})
}
