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

// Package registry reads the text registry hives Wine keeps in the root of a
// prefix (system.reg, user.reg, userdef.reg). Hives are loaded once and
// queried read-only; key and value names match case-insensitively as they
// do on Windows.
package registry

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ZaparooProject/wineuplay/pkg/wine"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding/charmap"
)

const (
	// Header is the first line of every hive written by wineserver.
	Header = "WINE REGISTRY Version 2"

	archPrefix = "#arch="

	scannerInitialBuffer = 64 * 1024
	scannerMaxLine       = 16 * 1024 * 1024
)

var (
	ErrInvalidHeader = errors.New("not a wine registry hive")
	ErrSyntax        = errors.New("registry syntax error")
)

type value struct {
	name string
	data string
}

type key struct {
	children map[string]*key
	values   map[string]value
	name     string
}

func newKey(name string) *key {
	return &key{
		name:     name,
		children: make(map[string]*key),
		values:   make(map[string]value),
	}
}

// Registry is a parsed hive.
type Registry struct {
	root *key
	arch wine.Arch
}

// Open reads and parses the hive at path.
func Open(fs afero.Fs, path string) (*Registry, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry hive: %w", err)
	}
	defer func() { _ = f.Close() }()

	reg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return reg, nil
}

// Parse reads a hive from r.
func Parse(r io.Reader) (*Registry, error) {
	reg := &Registry{
		root: newKey(""),
		arch: wine.ArchAuto,
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, scannerInitialBuffer), scannerMaxLine)

	var (
		current  *key
		pending  strings.Builder
		lineNo   int
		sawFirst bool
	)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(decodeLine(scanner.Bytes()))

		if pending.Len() > 0 {
			pending.WriteString(line)
			line = pending.String()
			pending.Reset()
		}
		// hex payloads are wrapped with a trailing backslash
		if strings.HasSuffix(line, `\`) && isContinuable(line) {
			pending.WriteString(strings.TrimSuffix(line, `\`))
			continue
		}

		if !sawFirst {
			if line == "" {
				continue
			}
			sawFirst = true
			if line != Header {
				return nil, ErrInvalidHeader
			}
			continue
		}

		switch {
		case line == "":
		case strings.HasPrefix(line, archPrefix):
			if arch, err := wine.ParseArch(strings.TrimPrefix(line, archPrefix)); err == nil {
				reg.arch = arch
			}
		case strings.HasPrefix(line, ";"), strings.HasPrefix(line, "#"):
		case strings.HasPrefix(line, "["):
			path, _, ok := scanString(line[1:], ']')
			if !ok {
				return nil, fmt.Errorf("%w: line %d: unterminated key", ErrSyntax, lineNo)
			}
			current = reg.root.create(splitWinPath(path))
		case current == nil:
			return nil, fmt.Errorf("%w: line %d: value outside of key", ErrSyntax, lineNo)
		default:
			v, err := parseValue(line)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrSyntax, lineNo, err)
			}
			current.values[strings.ToLower(v.name)] = v
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}
	if !sawFirst {
		return nil, ErrInvalidHeader
	}

	return reg, nil
}

// isContinuable reports whether a wrapped line belongs to a hex payload.
// Key paths and strings may legitimately end in a backslash.
func isContinuable(line string) bool {
	_, rest, ok := splitAssignment(strings.TrimSpace(line))
	if !ok {
		return false
	}
	return strings.HasPrefix(rest, "hex")
}

// decodeLine returns the line as UTF-8. Older wineservers wrote hives in
// the host codepage, so invalid UTF-8 is read as Windows-1252.
func decodeLine(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

// Arch returns the architecture recorded in the hive header, or auto if the
// hive has none.
func (r *Registry) Arch() wine.Arch {
	return r.arch
}

// Query returns the data of a value. An empty name selects the default value
// of the key. Key paths are slash separated, e.g.
// "Software/Classes/uplay/Shell/Open/Command".
func (r *Registry) Query(keyPath, name string) (string, bool) {
	k := r.find(keyPath)
	if k == nil {
		return "", false
	}
	v, ok := k.values[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return v.data, true
}

// QueryKey returns all values of a key by name. The default value, if set,
// is stored under the empty name. A key with no values yields an empty map
// and true; a missing key yields false.
func (r *Registry) QueryKey(keyPath string) (map[string]string, bool) {
	k := r.find(keyPath)
	if k == nil {
		return nil, false
	}
	out := make(map[string]string, len(k.values))
	for _, v := range k.values {
		out[v.name] = v.data
	}
	return out, true
}

// Subkeys returns the sorted names of the direct children of a key.
func (r *Registry) Subkeys(keyPath string) ([]string, bool) {
	k := r.find(keyPath)
	if k == nil {
		return nil, false
	}
	names := make([]string, 0, len(k.children))
	for _, child := range k.children {
		names = append(names, child.name)
	}
	sort.Strings(names)
	return names, true
}

func (r *Registry) find(keyPath string) *key {
	k := r.root
	for _, part := range SplitKeyPath(keyPath) {
		k = k.children[strings.ToLower(part)]
		if k == nil {
			return nil
		}
	}
	return k
}

func (k *key) create(parts []string) *key {
	for _, part := range parts {
		lower := strings.ToLower(part)
		child, ok := k.children[lower]
		if !ok {
			child = newKey(part)
			k.children[lower] = child
		}
		k = child
	}
	return k
}

// SplitKeyPath splits a slash separated key path, ignoring empty segments.
// Backslashes are accepted as separators too.
func SplitKeyPath(keyPath string) []string {
	return strings.FieldsFunc(keyPath, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}

func splitWinPath(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '\\' })
}
