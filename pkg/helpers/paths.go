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
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ExpandUser replaces a leading "~" with the current user's home directory.
// Paths not starting with "~" are returned unchanged.
func ExpandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn().Err(err).Msg("failed to get user home directory")
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// PathExists reports whether path exists on fs. Stat errors other than
// "not exist" are treated as absent.
func PathExists(fs afero.Fs, path string) bool {
	if path == "" {
		return false
	}
	_, err := fs.Stat(path)
	return err == nil
}

// FixPathCase walks path component by component and replaces each one with
// the on-disk entry that matches it case-insensitively. Wine stores paths
// case-insensitively, so a path read from the registry may not match the
// host filesystem exactly. Components that cannot be matched are kept as
// given, along with everything after them.
func FixPathCase(fs afero.Fs, path string) string {
	if path == "" {
		return path
	}
	path = filepath.Clean(path)
	if PathExists(fs, path) {
		return path
	}

	current := string(filepath.Separator)
	if !filepath.IsAbs(path) {
		current = "."
	}

	parts := strings.Split(strings.Trim(path, string(filepath.Separator)), string(filepath.Separator))
	for i, part := range parts {
		if part == "" || part == "." {
			continue
		}

		exact := filepath.Join(current, part)
		if PathExists(fs, exact) {
			current = exact
			continue
		}

		match, found := findEntryFold(fs, current, part)
		if !found {
			rest := append([]string{current}, parts[i:]...)
			return filepath.Join(rest...)
		}
		current = filepath.Join(current, match)
	}

	return current
}

func findEntryFold(fs afero.Fs, dir, name string) (string, bool) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if strings.EqualFold(entry.Name(), name) {
			return entry.Name(), true
		}
	}
	return "", false
}
