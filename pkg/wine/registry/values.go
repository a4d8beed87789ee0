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

package registry

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

const (
	typeExpandSZ = "2"
	typeMultiSZ  = "7"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// splitAssignment splits `"name"=data` or `@=data` into the unescaped name
// and the raw data.
func splitAssignment(line string) (string, string, bool) {
	if rest, ok := strings.CutPrefix(line, "@="); ok {
		return "", rest, true
	}
	if !strings.HasPrefix(line, `"`) {
		return "", "", false
	}
	name, rest, ok := scanString(line[1:], '"')
	if !ok {
		return "", "", false
	}
	rest, ok = strings.CutPrefix(rest, "=")
	if !ok {
		return "", "", false
	}
	return name, rest, true
}

func parseValue(line string) (value, error) {
	name, data, ok := splitAssignment(line)
	if !ok {
		return value{}, fmt.Errorf("malformed value %q", line)
	}
	decoded, err := decodeData(data)
	if err != nil {
		return value{}, fmt.Errorf("value %q: %w", name, err)
	}
	return value{name: name, data: decoded}, nil
}

// decodeData renders a value payload as a string. Strings are unescaped,
// dwords become decimal, REG_EXPAND_SZ and REG_MULTI_SZ stored as hex are
// decoded from UTF-16LE (multi strings joined by newlines) and any other
// binary data is returned as lowercase hex.
func decodeData(data string) (string, error) {
	switch {
	case strings.HasPrefix(data, `"`):
		s, _, ok := scanString(data[1:], '"')
		if !ok {
			return "", errors.New("unterminated string")
		}
		return s, nil
	case strings.HasPrefix(data, "str("):
		_, rest, ok := strings.Cut(data, ":")
		if !ok || !strings.HasPrefix(rest, `"`) {
			return "", errors.New("malformed typed string")
		}
		s, _, ok := scanString(rest[1:], '"')
		if !ok {
			return "", errors.New("unterminated string")
		}
		return s, nil
	case strings.HasPrefix(data, "dword:"):
		n, err := strconv.ParseUint(strings.TrimSpace(data[len("dword:"):]), 16, 32)
		if err != nil {
			return "", fmt.Errorf("invalid dword: %w", err)
		}
		return strconv.FormatUint(n, 10), nil
	case strings.HasPrefix(data, "hex"):
		return decodeHex(data)
	default:
		return "", fmt.Errorf("unknown value type in %q", data)
	}
}

func decodeHex(data string) (string, error) {
	prefix, payload, ok := strings.Cut(data, ":")
	if !ok {
		return "", errors.New("invalid hex data: missing colon")
	}
	raw, err := parseHexBytes(payload)
	if err != nil {
		return "", err
	}

	kind := ""
	if open := strings.IndexByte(prefix, '('); open >= 0 {
		if end := strings.IndexByte(prefix, ')'); end > open {
			kind = strings.ToLower(prefix[open+1 : end])
		}
	}

	switch kind {
	case typeExpandSZ, typeMultiSZ:
		text, err := utf16le.NewDecoder().Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("invalid utf-16 string: %w", err)
		}
		parts := strings.Split(strings.TrimRight(string(text), "\x00"), "\x00")
		if kind == typeExpandSZ {
			return parts[0], nil
		}
		return strings.Join(parts, "\n"), nil
	default:
		return hex.EncodeToString(raw), nil
	}
}

func parseHexBytes(payload string) ([]byte, error) {
	parts := strings.Split(payload, ",")
	buf := make([]byte, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if len(p) == 1 {
			p = "0" + p
		}
		b, err := hex.DecodeString(p)
		if err != nil {
			return nil, fmt.Errorf("invalid hex byte %q: %w", p, err)
		}
		buf = append(buf, b...)
	}
	return buf, nil
}
