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

package uplay

import "errors"

var (
	// ErrExecutableNotFound means no Uplay executable could be located when
	// a command was built.
	ErrExecutableNotFound = errors.New("can't find a Uplay executable")
	// ErrMissingGameID is returned when an install or uninstall is requested
	// without a game id.
	ErrMissingGameID = errors.New("missing game id")
	// ErrPrefixCreation wraps failures creating a default prefix.
	ErrPrefixCreation = errors.New("failed to create wine prefix")
	// ErrNotInstalled is returned by actions that need Uplay installed.
	ErrNotInstalled = errors.New("uplay is not installed")
)

// FileNotFound is the PlayResult error code for a launch target that
// disappeared after it was located.
const FileNotFound = "FILE_NOT_FOUND"
