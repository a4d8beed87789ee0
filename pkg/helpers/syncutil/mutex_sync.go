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

//go:build !deadlock

// Package syncutil wraps the mutex types used by the config layer so that a
// deadlock-detecting implementation can be swapped in with -tags=deadlock.
package syncutil

import "sync"

// DeadlockEnabled reports whether the deadlock detector is compiled in.
const DeadlockEnabled = false

// Mutex is a plain sync.Mutex in regular builds.
//
//nolint:gocritic // embedding is the point of the wrapper
type Mutex struct {
	sync.Mutex //nolint:forbidigo // wrapped here only
}

// RWMutex is a plain sync.RWMutex in regular builds.
//
//nolint:gocritic // embedding is the point of the wrapper
type RWMutex struct {
	sync.RWMutex //nolint:forbidigo // wrapped here only
}
