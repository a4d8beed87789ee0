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

// Package options holds the declarative option schema of the Uplay runner
// and decodes raw option tables into immutable, validated values.
package options

import (
	"path/filepath"
	"slices"
)

// Type is the kind of input a host UI renders for an option.
type Type string

const (
	TypeString    Type = "string"
	TypeBool      Type = "bool"
	TypeChoice    Type = "choice"
	TypeDirectory Type = "directory_chooser"
)

// Choice is one entry of a TypeChoice option.
type Choice struct {
	Label string
	Value string
}

// Option describes a single configurable setting.
type Option struct {
	Default  any
	Name     string
	Type     Type
	Label    string
	Help     string
	Choices  []Choice
	Advanced bool
}

const (
	OptUplayPath          = "uplay_path"
	OptArgs               = "args"
	OptDefaultWin32Prefix = "default_win32_prefix"
	OptDefaultWin64Prefix = "default_win64_prefix"

	OptGameID   = "game_id"
	OptPrefix   = "prefix"
	OptArch     = "arch"
	OptNoLaunch = "nolaunch"
)

// RunnerSchema returns the runner level options. runnerDir is the directory
// default prefixes are created under.
func RunnerSchema(runnerDir string) []Option {
	return []Option{
		{
			Name:  OptUplayPath,
			Type:  TypeDirectory,
			Label: "Custom Uplay location",
			Help: "Choose a folder containing Uplay.exe\n" +
				"By default the runner looks for a Uplay installation in its " +
				"own prefixes and in ~/.wine.",
		},
		{
			Name:     OptArgs,
			Type:     TypeString,
			Label:    "Arguments",
			Help:     "Extra command line arguments used when launching Uplay",
			Advanced: true,
		},
		{
			Name:     OptDefaultWin32Prefix,
			Type:     TypeDirectory,
			Label:    "Default Wine prefix (32bit)",
			Help:     "Default prefix location for Uplay (32 bit)",
			Default:  filepath.Join(runnerDir, "prefix"),
			Advanced: true,
		},
		{
			Name:     OptDefaultWin64Prefix,
			Type:     TypeDirectory,
			Label:    "Default Wine prefix (64bit)",
			Help:     "Default prefix location for Uplay (64 bit)",
			Default:  filepath.Join(runnerDir, "prefix64"),
			Advanced: true,
		},
	}
}

var gameSchema = []Option{
	{
		Name:  OptGameID,
		Type:  TypeString,
		Label: "Game ID",
		Help:  "Uplay identifier of the game, as used in uplay:// links",
	},
	{
		Name:  OptPrefix,
		Type:  TypeDirectory,
		Label: "Prefix",
		Help: "The prefix (also named \"bottle\") used by Wine.\n" +
			"It's a directory containing a set of files and folders " +
			"making up a confined Windows environment.",
	},
	{
		Name:  OptArch,
		Type:  TypeChoice,
		Label: "Prefix architecture",
		Choices: []Choice{
			{Label: "Auto", Value: "auto"},
			{Label: "32-bit", Value: "win32"},
			{Label: "64-bit", Value: "win64"},
		},
		Default: "auto",
		Help: "The architecture of the Windows environment.\n" +
			"32-bit is recommended unless running a 64-bit only game.",
	},
	{
		Name:    OptNoLaunch,
		Type:    TypeBool,
		Label:   "Do not launch game, only open Uplay",
		Default: false,
		Help: "Opens Uplay with the current settings without running the game, " +
			"useful if a game has several launch options.",
	},
}

// GameSchema returns the per-game options. The returned slice is a copy.
func GameSchema() []Option {
	out := slices.Clone(gameSchema)
	for i := range out {
		out[i].Choices = slices.Clone(out[i].Choices)
	}
	return out
}

// Defaults collects the non-nil defaults of a schema by option name.
func Defaults(schema []Option) map[string]any {
	defaults := make(map[string]any, len(schema))
	for _, opt := range schema {
		if opt.Default != nil {
			defaults[opt.Name] = opt.Default
		}
	}
	return defaults
}
