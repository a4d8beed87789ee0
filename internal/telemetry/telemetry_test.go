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

package telemetry

import (
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty_string",
			input:    "",
			expected: "",
		},
		{
			name:     "no_username_in_path",
			input:    "/usr/local/bin/wineuplay",
			expected: "/usr/local/bin/wineuplay",
		},
		{
			name:     "linux_home_path",
			input:    "/home/callan/.local/share/wineuplay/runners/prefix64",
			expected: "/home/<user>/.local/share/wineuplay/runners/prefix64",
		},
		{
			name:     "wine_user_directory",
			input:    "/opt/prefix/drive_c/users/steamuser/Local Settings/settings.yml",
			expected: "/opt/prefix/drive_c/users/<user>/Local Settings/settings.yml",
		},
		{
			name:     "wine_user_directory_in_home",
			input:    "/home/alice/.wine/drive_c/users/alice/Application Data",
			expected: "/home/<user>/.wine/drive_c/users/<user>/Application Data",
		},
		{
			name:     "macos_users_path",
			input:    "/Users/callan/Library/wineuplay/config.toml",
			expected: "/Users/<user>/Library/wineuplay/config.toml",
		},
		{
			name:     "windows_path_lowercase_users",
			input:    "C:\\users\\alice\\Local Settings\\Application Data",
			expected: "C:\\Users\\<user>\\Local Settings\\Application Data",
		},
		{
			name:     "multiple_paths_in_message",
			input:    "copying /home/alice/src to /home/bob/dst",
			expected: "copying /home/<user>/src to /home/<user>/dst",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizePath(tt.input))
		})
	}
}

func TestSanitizeEvent(t *testing.T) {
	t.Parallel()

	event := &sentry.Event{
		ServerName: "callans-laptop",
		Message:    "failed to read /home/callan/.wine/user.reg",
		Extra:      map[string]any{"prefix": "/home/callan/.wine", "polls": 10},
		Exception: []sentry.Exception{{
			Value: "open /home/callan/x: no such file",
			Stacktrace: &sentry.Stacktrace{Frames: []sentry.Frame{{
				AbsPath:  "/home/callan/src/wineuplay/pkg/uplay/runner.go",
				Filename: "pkg/uplay/runner.go",
			}}},
		}},
	}

	got := sanitizeEvent(event)
	require.NotNil(t, got)
	assert.Empty(t, got.ServerName)
	assert.Equal(t, "failed to read /home/<user>/.wine/user.reg", got.Message)
	assert.Equal(t, "/home/<user>/.wine", got.Extra["prefix"])
	assert.Equal(t, 10, got.Extra["polls"])
	assert.Equal(t, "open /home/<user>/x: no such file", got.Exception[0].Value)
	assert.Equal(t, "/home/<user>/src/wineuplay/pkg/uplay/runner.go", got.Exception[0].Stacktrace.Frames[0].AbsPath)
}

func TestInitDisabled(t *testing.T) {
	t.Parallel()

	require.NoError(t, Init(Options{Enabled: false}))
	assert.False(t, Enabled(), "telemetry should be disabled by default")
}

func TestInitWithoutDSN(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Init(Options{Enabled: true}), ErrMissingDSN)
	assert.False(t, Enabled())
}

func TestCloseWhenDisabled(t *testing.T) {
	t.Parallel()

	// Should not panic when called while disabled
	Close()
}

func TestFlushWhenDisabled(t *testing.T) {
	t.Parallel()

	// Should not panic when called while disabled
	Flush()
}
