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
	"fmt"
	"strings"
)

// Arch is the bit-width of a Wine prefix.
type Arch string

const (
	ArchAuto  Arch = "auto"
	ArchWin32 Arch = "win32"
	ArchWin64 Arch = "win64"
)

// DefaultArch is used whenever an architecture is left on auto.
const DefaultArch = ArchWin64

// ParseArch accepts the option values and the labels shown to users.
func ParseArch(s string) (Arch, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ArchAuto, nil
	case "win32", "32", "32-bit":
		return ArchWin32, nil
	case "win64", "64", "64-bit":
		return ArchWin64, nil
	default:
		return "", fmt.Errorf("unknown prefix architecture: %q", s)
	}
}

// Resolve returns a concrete architecture, substituting def for auto. If
// def is itself auto or empty, DefaultArch is used.
func (a Arch) Resolve(def Arch) Arch {
	if a == ArchWin32 || a == ArchWin64 {
		return a
	}
	if def == ArchWin32 || def == ArchWin64 {
		return def
	}
	return DefaultArch
}

// Is64 reports whether a resolves to a 64-bit prefix.
func (a Arch) Is64() bool {
	return a.Resolve(DefaultArch) == ArchWin64
}

func (a Arch) String() string {
	if a == "" {
		return string(ArchAuto)
	}
	return string(a)
}
