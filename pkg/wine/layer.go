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

// Package wine is the narrow view of the Wine compatibility layer used by
// launcher integrations: creating prefixes, running programs inside them and
// stopping the wineserver.
package wine

import (
	"context"
	"path/filepath"
	"strings"
)

// ExecRequest describes a program to run inside a prefix.
type ExecRequest struct {
	Prefix     string
	Arch       Arch
	Executable string
	Args       []string
	WorkingDir string
}

// Layer is the capability set launcher integrations need from Wine.
type Layer interface {
	// Executable returns the wine binary used to start programs.
	Executable() string

	// Available reports whether the wine binary can be found.
	Available() bool

	// CreatePrefix initialises a fresh prefix at path.
	CreatePrefix(ctx context.Context, path string, arch Arch) error

	// Exec runs a Windows program inside a prefix and waits for it to exit.
	Exec(ctx context.Context, req ExecRequest) error

	// Winetricks installs the given verbs into a prefix.
	Winetricks(ctx context.Context, prefix string, arch Arch, verbs ...string) error

	// Shutdown asks the wineserver of a prefix to stop all its processes.
	Shutdown(ctx context.Context, prefix string) error

	// Env returns the environment needed to run programs in a prefix.
	Env(prefix string, arch Arch) map[string]string
}

// UnixPath maps a Windows path from inside prefix to a host path. The C:
// drive maps to drive_c, other drives go through the dosdevices links.
// Paths without a drive letter are returned with separators converted.
func UnixPath(prefix, winPath string) string {
	p := strings.ReplaceAll(winPath, `\`, "/")
	if len(p) < 2 || p[1] != ':' {
		return p
	}

	drive := strings.ToLower(p[:1])
	rest := strings.TrimLeft(p[2:], "/")

	var root string
	if drive == "c" {
		root = filepath.Join(prefix, "drive_c")
	} else {
		root = filepath.Join(prefix, "dosdevices", drive+":")
	}
	if rest == "" {
		return root
	}
	return filepath.Join(root, filepath.FromSlash(rest))
}
