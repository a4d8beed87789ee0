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

package procs

import (
	"context"
	"errors"
	"os"
	"regexp"
	"testing"

	"github.com/shirou/gopsutil/v4/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatcher(t *testing.T) {
	t.Parallel()

	t.Run("rejects_invalid_pattern", func(t *testing.T) {
		t.Parallel()

		_, err := NewMatcher("Uplay.exe(")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid process pattern")
	})

	t.Run("must_matcher_panics_on_invalid_pattern", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { MustMatcher("[") })
	})
}

func TestMatcherMatches(t *testing.T) {
	t.Parallel()

	m := MustMatcher(`Uplay\.exe$`)

	tests := []struct {
		name    string
		comm    string
		cmdline string
		want    bool
	}{
		{name: "name match", comm: "Uplay.exe", want: true},
		{name: "cmdline match", comm: "wine64-preloader", cmdline: `C:\Program Files\Ubisoft\Uplay.exe`, want: true},
		{name: "suffix anchored", comm: "Uplay.exe.bak", want: false},
		{name: "unrelated", comm: "upc.exe", cmdline: "upc.exe --silent", want: false},
		{name: "empty", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, m.Matches(tt.comm, tt.cmdline))
		})
	}
}

func TestMatcherFind(t *testing.T) {
	t.Parallel()

	t.Run("list_error_is_wrapped", func(t *testing.T) {
		t.Parallel()

		m := MustMatcher("Uplay.exe$")
		m.list = func(context.Context) ([]*process.Process, error) {
			return nil, errors.New("boom")
		}

		_, err := m.Find(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list processes")
		assert.False(t, m.IsRunning(context.Background()))
	})

	t.Run("finds_current_test_process", func(t *testing.T) {
		t.Parallel()

		self, err := process.NewProcess(int32(os.Getpid())) //nolint:gosec // pid fits in int32
		require.NoError(t, err)
		name, err := self.Name()
		require.NoError(t, err)

		m := MustMatcher("^" + regexp.QuoteMeta(name) + "$")
		m.list = func(context.Context) ([]*process.Process, error) {
			return []*process.Process{self}, nil
		}

		pids, err := m.PIDs(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []int32{self.Pid}, pids)
		assert.True(t, m.IsRunning(context.Background()))
	})

	t.Run("kill_with_no_matches_is_noop", func(t *testing.T) {
		t.Parallel()

		m := MustMatcher("Uplay.exe$")
		m.list = func(context.Context) ([]*process.Process, error) {
			return nil, nil
		}

		assert.NoError(t, m.Kill(context.Background()))
	})
}
