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

import (
	"fmt"
	"maps"

	"github.com/ZaparooProject/wineuplay/pkg/helpers"
	"github.com/ZaparooProject/wineuplay/pkg/options"
	"github.com/ZaparooProject/wineuplay/pkg/wine"
	"github.com/rs/zerolog/log"
)

// LaunchCommand is a fully resolved command for the host to execute.
type LaunchCommand struct {
	Env        map[string]string
	Executable string
	WorkingDir string
	Args       []string
}

// Argv returns the executable followed by its arguments.
func (c LaunchCommand) Argv() []string {
	return append([]string{c.Executable}, c.Args...)
}

// CommandBuilder assembles launcher command lines. Every call locates the
// executable again; nothing is cached.
type CommandBuilder struct {
	layer  wine.Layer
	locate func() string
	opts   options.RunnerOptions
}

// NewCommandBuilder creates a builder using locate to find the executable.
func NewCommandBuilder(layer wine.Layer, locate func() string, opts options.RunnerOptions) *CommandBuilder {
	return &CommandBuilder{layer: layer, locate: locate, opts: opts}
}

// LaunchArgs returns wine, the Uplay executable and the configured extra
// arguments.
func (b *CommandBuilder) LaunchArgs() ([]string, error) {
	exe := b.locate()
	if exe == "" {
		return nil, ErrExecutableNotFound
	}
	extra, err := b.opts.ExtraArgs()
	if err != nil {
		return nil, err
	}
	return append([]string{b.layer.Executable(), exe}, extra...), nil
}

// PlayCommand opens the launcher and starts gameID, or only opens the
// launcher when skipLaunch is set or there is no game id.
func (b *CommandBuilder) PlayCommand(gameID string, skipLaunch bool) ([]string, error) {
	args, err := b.LaunchArgs()
	if err != nil {
		return nil, err
	}
	if skipLaunch {
		return args, nil
	}
	if gameID == "" {
		log.Warn().Msg("no game id set, opening Uplay without a game")
		return args, nil
	}
	return append(args, uri("launch", gameID)), nil
}

// InstallCommand asks the launcher to install gameID.
func (b *CommandBuilder) InstallCommand(gameID string) ([]string, error) {
	if gameID == "" {
		return nil, fmt.Errorf("%w: install", ErrMissingGameID)
	}
	args, err := b.LaunchArgs()
	if err != nil {
		return nil, err
	}
	return append(args, uri("install", gameID)), nil
}

// UninstallCommand asks the launcher to uninstall gameID.
func (b *CommandBuilder) UninstallCommand(gameID string) ([]string, error) {
	if gameID == "" {
		return nil, fmt.Errorf("%w: uninstall", ErrMissingGameID)
	}
	args, err := b.LaunchArgs()
	if err != nil {
		return nil, err
	}
	return append(args, uri("uninstall", gameID)), nil
}

// Command wraps argv with the working directory and Wine environment for
// prefix.
func (b *CommandBuilder) Command(argv []string, prefix Prefix) LaunchCommand {
	cmd := LaunchCommand{
		WorkingDir: helpers.ExpandUser("~"),
		Env:        maps.Clone(b.layer.Env(prefix.Path, prefix.Arch)),
	}
	if len(argv) > 0 {
		cmd.Executable = argv[0]
		cmd.Args = append([]string(nil), argv[1:]...)
	}
	return cmd
}

func uri(action, gameID string) string {
	return fmt.Sprintf("%s://%s/%s", URIScheme, action, gameID)
}
