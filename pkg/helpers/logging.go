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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// LogFile is the name of the rotating log file inside the log directory.
const LogFile = "wineuplay.log"

var (
	logWriterMu sync.RWMutex
	logWriter   io.Writer = os.Stderr
)

// InitLogging points the global zerolog logger at a rotating file in logDir,
// plus any extra writers (usually a console writer for the CLI).
func InitLogging(logDir string, writers []io.Writer) error {
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logWriters := []io.Writer{&lumberjack.Logger{
		Filename:   filepath.Join(logDir, LogFile),
		MaxSize:    1,
		MaxBackups: 2,
	}}
	logWriters = append(logWriters, writers...)

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	w := io.MultiWriter(logWriters...)
	logWriterMu.Lock()
	logWriter = w
	logWriterMu.Unlock()

	log.Logger = log.Output(w).With().Timestamp().Caller().Logger()

	return nil
}

// LogWriter returns the writer set up by InitLogging, so other sinks can be
// layered next to it.
func LogWriter() io.Writer {
	logWriterMu.RLock()
	defer logWriterMu.RUnlock()
	return logWriter
}

// SetDebugLogging switches the global level between debug and info.
func SetDebugLogging(enabled bool) {
	if enabled {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
