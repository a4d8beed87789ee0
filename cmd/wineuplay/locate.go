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

package main

import (
	"errors"
	"fmt"

	"github.com/ZaparooProject/wineuplay/pkg/uplay"
	"github.com/spf13/cobra"
)

var errNoGameDir = errors.New("no game installation folder found in Uplay settings")

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "locate",
		Short: "Print the path of the Uplay executable",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			exe := runner.Locator().Locate()
			if exe == "" {
				return uplay.ErrExecutableNotFound
			}
			return output(map[string]string{"executable": exe}, func() {
				printInfo("%s", exe)
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "prefix",
		Short: "Print the Wine prefix of the game, creating the default one if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := runner.Prefix(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to resolve prefix: %w", err)
			}
			return output(map[string]string{"path": p.Path, "arch": p.Arch.String()}, func() {
				printInfo("%s (%s)", p.Path, p.Arch)
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "browse",
		Short: "Print the install directory of the game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := runner.BrowseDir(cmd.Context())
			if err != nil {
				return err
			}
			return output(map[string]string{"path": dir}, func() {
				printInfo("%s", dir)
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "game-dir",
		Short: "Print the launcher's default game installation folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, ok, err := runner.GameDir(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				return errNoGameDir
			}
			return output(map[string]string{"path": dir}, func() {
				printInfo("%s", dir)
			})
		},
	})
}
