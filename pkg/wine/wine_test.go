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

package wine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Arch
		wantErr bool
	}{
		{input: "", want: ArchAuto},
		{input: "auto", want: ArchAuto},
		{input: "win32", want: ArchWin32},
		{input: "32-bit", want: ArchWin32},
		{input: "WIN64", want: ArchWin64},
		{input: "64-bit", want: ArchWin64},
		{input: "arm64", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseArch(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArchResolve(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ArchWin32, ArchWin32.Resolve(ArchWin64))
	assert.Equal(t, ArchWin64, ArchAuto.Resolve(ArchWin64))
	assert.Equal(t, ArchWin32, ArchAuto.Resolve(ArchWin32))
	assert.Equal(t, DefaultArch, Arch("").Resolve(ArchAuto))
	assert.True(t, ArchAuto.Is64())
	assert.False(t, ArchWin32.Is64())
}

func TestUnixPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		winPath string
		want    string
	}{
		{
			name:    "c drive",
			winPath: `C:\Program Files (x86)\Ubisoft\Ubisoft Game Launcher\Uplay.exe`,
			want:    "/pfx/drive_c/Program Files (x86)/Ubisoft/Ubisoft Game Launcher/Uplay.exe",
		},
		{
			name:    "lowercase drive",
			winPath: `c:\users\steamuser`,
			want:    "/pfx/drive_c/users/steamuser",
		},
		{
			name:    "other drive",
			winPath: `D:\Games\Anno`,
			want:    "/pfx/dosdevices/d:/Games/Anno",
		},
		{
			name:    "drive root",
			winPath: `C:\`,
			want:    "/pfx/drive_c",
		},
		{
			name:    "no drive",
			winPath: `Ubisoft\upc.exe`,
			want:    "Ubisoft/upc.exe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, UnixPath("/pfx", tt.winPath))
		})
	}
}
