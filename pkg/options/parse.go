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

package options

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/ZaparooProject/wineuplay/pkg/helpers"
	"github.com/ZaparooProject/wineuplay/pkg/wine"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"mvdan.cc/sh/v3/syntax"
)

// RunnerOptions is the decoded runner configuration. Values are fixed once
// parsed; use the accessor methods for derived values.
type RunnerOptions struct {
	UplayPath          string `option:"uplay_path"`
	Args               string `option:"args"`
	DefaultWin32Prefix string `option:"default_win32_prefix" validate:"required"`
	DefaultWin64Prefix string `option:"default_win64_prefix" validate:"required"`
}

// DefaultPrefix returns the configured default prefix for a concrete arch.
func (o RunnerOptions) DefaultPrefix(arch wine.Arch) string {
	if arch.Resolve(wine.DefaultArch) == wine.ArchWin32 {
		return helpers.ExpandUser(o.DefaultWin32Prefix)
	}
	return helpers.ExpandUser(o.DefaultWin64Prefix)
}

// ExtraArgs tokenises Args the way a POSIX shell would, without expanding
// variables or running substitutions. Expansions are kept verbatim.
func (o RunnerOptions) ExtraArgs() ([]string, error) {
	if strings.TrimSpace(o.Args) == "" {
		return nil, nil
	}

	var fields []string
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	err := parser.Words(strings.NewReader(o.Args), func(w *syntax.Word) bool {
		fields = append(fields, literalWord(o.Args, w.Parts, false))
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("invalid launch arguments %q: %w", o.Args, err)
	}
	return fields, nil
}

// literalWord joins word parts with quotes and escapes removed. Anything
// the shell would expand is copied from src as written.
func literalWord(src string, parts []syntax.WordPart, quoted bool) string {
	var sb strings.Builder
	for _, part := range parts {
		switch p := part.(type) {
		case *syntax.Lit:
			sb.WriteString(unescape(p.Value, quoted))
		case *syntax.SglQuoted:
			if p.Dollar {
				sb.WriteString(source(src, p))
			} else {
				sb.WriteString(p.Value)
			}
		case *syntax.DblQuoted:
			if p.Dollar {
				sb.WriteString(source(src, p))
			} else {
				sb.WriteString(literalWord(src, p.Parts, true))
			}
		default:
			sb.WriteString(source(src, p))
		}
	}
	return sb.String()
}

func source(src string, n syntax.Node) string {
	start, end := n.Pos().Offset(), n.End().Offset()
	if start > end || end > uint(len(src)) {
		return ""
	}
	return src[start:end]
}

// unescape drops backslashes. Inside double quotes only \" and \\ are
// escapes.
func unescape(s string, quoted bool) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			sb.WriteByte(c)
			continue
		}
		next := s[i+1]
		switch {
		case quoted && next != '"' && next != '\\':
			sb.WriteByte(c)
		case !quoted && next == '\n':
			i++
		default:
			sb.WriteByte(next)
			i++
		}
	}
	return sb.String()
}

// GameOptions is the decoded per-game configuration.
type GameOptions struct {
	GameID   string    `option:"game_id"`
	Prefix   string    `option:"prefix"`
	Arch     wine.Arch `option:"arch" validate:"omitempty,oneof=auto win32 win64"`
	NoLaunch bool      `option:"nolaunch"`
}

// PrefixOverride returns the home-expanded explicit prefix, if any.
func (o GameOptions) PrefixOverride() string {
	if o.Prefix == "" {
		return ""
	}
	return helpers.ExpandUser(o.Prefix)
}

// Parser decodes and validates raw option tables.
type Parser struct {
	validate *validator.Validate
}

// NewParser creates a Parser.
func NewParser() *Parser {
	return &Parser{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// DefaultParser is a convenience parser for simple use cases.
var DefaultParser = NewParser()

// ParseRunner decodes raw runner options over the schema defaults.
func (p *Parser) ParseRunner(raw map[string]any, runnerDir string) (RunnerOptions, error) {
	var opts RunnerOptions
	if err := p.parse(withDefaults(RunnerSchema(runnerDir), raw), &opts); err != nil {
		return RunnerOptions{}, err
	}
	return opts, nil
}

// ParseGame decodes raw game options over the schema defaults.
func (p *Parser) ParseGame(raw map[string]any) (GameOptions, error) {
	var opts GameOptions
	if err := p.parse(withDefaults(GameSchema(), raw), &opts); err != nil {
		return GameOptions{}, err
	}
	if opts.Arch == "" {
		opts.Arch = wine.ArchAuto
	}
	return opts, nil
}

// ParseRunner is a convenience function using the default parser.
func ParseRunner(raw map[string]any, runnerDir string) (RunnerOptions, error) {
	return DefaultParser.ParseRunner(raw, runnerDir)
}

// ParseGame is a convenience function using the default parser.
func ParseGame(raw map[string]any) (GameOptions, error) {
	return DefaultParser.ParseGame(raw)
}

func withDefaults(schema []Option, raw map[string]any) map[string]any {
	merged := Defaults(schema)
	for k, v := range raw {
		// empty strings from forms mean "use the default"
		if s, ok := v.(string); ok && s == "" {
			if _, hasDefault := merged[k]; hasDefault {
				continue
			}
		}
		merged[k] = v
	}
	return merged
}

func (p *Parser) parse(raw map[string]any, dest any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dest,
		TagName:          "option",
		WeaklyTypedInput: true,
		ErrorUnused:      true, // typos like "uplaypath" must not be silently ignored
		DecodeHook:       stringToArchHook(),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(maps.Clone(raw)); err != nil {
		return fmt.Errorf("failed to decode options: %w", err)
	}

	if err := p.validate.Struct(dest); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			msgs := make([]string, 0, len(validationErrors))
			for _, fe := range validationErrors {
				msgs = append(msgs, formatValidationError(fe))
			}
			return fmt.Errorf("invalid options: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func formatValidationError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "required":
		return field + " is required"
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// stringToArchHook accepts the user-facing arch labels ("32-bit", "64")
// and normalises them. Unknown values pass through for the validator to
// reject.
func stringToArchHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeFor[wine.Arch]() {
			return data, nil
		}
		str, ok := data.(string)
		if !ok {
			return data, nil
		}
		arch, err := wine.ParseArch(str)
		if err != nil {
			return data, nil //nolint:nilerr // reported by validation
		}
		return arch, nil
	}
}
