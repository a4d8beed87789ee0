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

package options

import (
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/wineuplay/pkg/wine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaOrder(t *testing.T) {
	t.Parallel()

	names := func(schema []Option) []string {
		out := make([]string, 0, len(schema))
		for _, opt := range schema {
			out = append(out, opt.Name)
		}
		return out
	}

	assert.Equal(t,
		[]string{OptUplayPath, OptArgs, OptDefaultWin32Prefix, OptDefaultWin64Prefix},
		names(RunnerSchema("/runners/wineuplay")),
	)
	assert.Equal(t, []string{OptGameID, OptPrefix, OptArch, OptNoLaunch}, names(GameSchema()))
}

func TestGameSchemaIsCopied(t *testing.T) {
	t.Parallel()

	schema := GameSchema()
	schema[2].Choices[0].Value = "mutated"
	schema[0].Name = "mutated"

	fresh := GameSchema()
	assert.Equal(t, OptGameID, fresh[0].Name)
	assert.Equal(t, "auto", fresh[2].Choices[0].Value)
}

func TestParseRunner(t *testing.T) {
	t.Parallel()

	t.Run("defaults_from_runner_dir", func(t *testing.T) {
		t.Parallel()

		opts, err := ParseRunner(nil, "/data/runners/wineuplay")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/data/runners/wineuplay", "prefix"), opts.DefaultWin32Prefix)
		assert.Equal(t, filepath.Join("/data/runners/wineuplay", "prefix64"), opts.DefaultWin64Prefix)
		assert.Equal(t, "/data/runners/wineuplay/prefix64", opts.DefaultPrefix(wine.ArchAuto))
		assert.Equal(t, "/data/runners/wineuplay/prefix", opts.DefaultPrefix(wine.ArchWin32))
	})

	t.Run("empty_string_keeps_default", func(t *testing.T) {
		t.Parallel()

		opts, err := ParseRunner(map[string]any{OptDefaultWin64Prefix: ""}, "/r")
		require.NoError(t, err)
		assert.Equal(t, "/r/prefix64", opts.DefaultWin64Prefix)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Parallel()

		opts, err := ParseRunner(map[string]any{
			OptUplayPath:          "/games/uplay",
			OptArgs:               "-console",
			OptDefaultWin64Prefix: "/pfx64",
		}, "/r")
		require.NoError(t, err)
		assert.Equal(t, "/games/uplay", opts.UplayPath)
		assert.Equal(t, "/pfx64", opts.DefaultWin64Prefix)
		assert.Equal(t, "/r/prefix", opts.DefaultWin32Prefix)
	})

	t.Run("unknown_option_rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ParseRunner(map[string]any{"uplaypath": "/x"}, "/r")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "uplaypath")
	})
}

func TestExtraArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    string
		want    []string
		wantErr bool
	}{
		{name: "empty", args: "   ", want: nil},
		{name: "simple", args: "-console -log", want: []string{"-console", "-log"}},
		{name: "quoted", args: `--dir "C:\Program Files" 'a b'`, want: []string{"--dir", `C:\Program Files`, "a b"}},
		{
			name: "dollar_args_verbatim",
			args: `-login user -password pa$$word --dir=$HOME/x "a b"`,
			want: []string{"-login", "user", "-password", "pa$$word", "--dir=$HOME/x", "a b"},
		},
		{
			name: "expansions_not_run",
			args: `${GAME:-635} "$(id -u)" '$LANG' "x$USER"`,
			want: []string{"${GAME:-635}", "$(id -u)", "$LANG", "x$USER"},
		},
		{name: "escapes", args: `a\ b "q\"uote" "C:\x"`, want: []string{"a b", `q"uote`, `C:\x`}},
		{name: "unterminated", args: `"oops`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RunnerOptions{Args: tt.args}.ExtraArgs()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGame(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		opts, err := ParseGame(nil)
		require.NoError(t, err)
		assert.Equal(t, GameOptions{Arch: wine.ArchAuto}, opts)
	})

	t.Run("weakly_typed_values", func(t *testing.T) {
		t.Parallel()

		opts, err := ParseGame(map[string]any{
			OptGameID:   635,
			OptNoLaunch: "true",
			OptArch:     "64-bit",
		})
		require.NoError(t, err)
		assert.Equal(t, "635", opts.GameID)
		assert.True(t, opts.NoLaunch)
		assert.Equal(t, wine.ArchWin64, opts.Arch)
	})

	t.Run("invalid_arch", func(t *testing.T) {
		t.Parallel()

		_, err := ParseGame(map[string]any{OptArch: "arm64"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "arch must be one of: auto win32 win64")
	})
}

func TestGamePrefixOverride(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	opts, err := ParseGame(map[string]any{OptPrefix: "~/Games/uplay"})
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/Games/uplay", opts.PrefixOverride())
	assert.Empty(t, GameOptions{}.PrefixOverride())
}
