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

package helpers

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Logging tests replace the global logger and are not run in parallel.

func restoreLogging(t *testing.T) {
	t.Helper()
	logger := log.Logger
	level := zerolog.GlobalLevel()
	writer := LogWriter()
	t.Cleanup(func() {
		log.Logger = logger
		zerolog.SetGlobalLevel(level)
		logWriterMu.Lock()
		logWriter = writer
		logWriterMu.Unlock()
	})
}

func TestInitLogging(t *testing.T) {
	restoreLogging(t)

	logDir := filepath.Join(t.TempDir(), "logs", "nested")
	var console bytes.Buffer

	require.NoError(t, InitLogging(logDir, []io.Writer{&console}))
	log.Info().Str("prefix", "/prefix64").Msg("creating default uplay prefix")

	assert.Contains(t, console.String(), "creating default uplay prefix")

	data, err := os.ReadFile(filepath.Join(logDir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"prefix":"/prefix64"`)

	_, err = LogWriter().Write([]byte("{}\n"))
	require.NoError(t, err)
}

func TestInitLoggingBadDir(t *testing.T) {
	restoreLogging(t)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	err := InitLogging(filepath.Join(file, "logs"), nil)
	require.Error(t, err)
}

func TestSetDebugLogging(t *testing.T) {
	restoreLogging(t)

	SetDebugLogging(true)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	SetDebugLogging(false)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
