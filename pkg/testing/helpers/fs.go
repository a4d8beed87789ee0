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
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/wineuplay/pkg/wine/registry"
	"github.com/spf13/afero"
)

// FSHelper builds Wine prefixes on an afero filesystem for tests.
type FSHelper struct {
	Fs afero.Fs
}

// NewMemoryFS creates a new in-memory filesystem for testing
func NewMemoryFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewMemMapFs(),
	}
}

// HiveKey is one key written by WriteHive. Values map value names to raw
// .reg data such as `dword:00000001` or the output of RegString. The empty
// name is the default value.
type HiveKey struct {
	Values map[string]string
	Path   string
}

// RegString quotes and escapes s as a .reg string value.
func RegString(s string) string {
	return `"` + registry.Escape(s, '"') + `"`
}

// CreateFile writes content to path, creating parent directories.
func (h *FSHelper) CreateFile(path, content string) error {
	if err := h.Fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(h.Fs, path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// CreatePrefix creates an empty prefix with a system.reg recording arch.
func (h *FSHelper) CreatePrefix(path, arch string) error {
	if err := h.Fs.MkdirAll(filepath.Join(path, "drive_c"), 0o750); err != nil {
		return fmt.Errorf("failed to create prefix: %w", err)
	}
	return h.WriteHive(path, "system.reg", arch)
}

// WriteHive writes a hive named name into prefix. Key paths use slashes.
func (h *FSHelper) WriteHive(prefix, name, arch string, keys ...HiveKey) error {
	var b strings.Builder
	b.WriteString(registry.Header + "\n")
	b.WriteString(";; All keys relative to \\\\Machine\n\n")
	if arch != "" {
		b.WriteString("#arch=" + arch + "\n")
	}

	for _, k := range keys {
		parts := registry.SplitKeyPath(k.Path)
		for i := range parts {
			parts[i] = registry.Escape(parts[i], ']')
		}
		fmt.Fprintf(&b, "\n[%s] 1700000000\n", strings.Join(parts, `\\`))
		b.WriteString("#time=1da0f1e2b3c4d5e\n")
		for valueName, data := range k.Values {
			if valueName == "" {
				fmt.Fprintf(&b, "@=%s\n", data)
				continue
			}
			fmt.Fprintf(&b, "%s=%s\n", RegString(valueName), data)
		}
	}

	return h.CreateFile(filepath.Join(prefix, name), b.String())
}
