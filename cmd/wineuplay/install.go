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
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var installPlan bool

func init() {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install Uplay into the default prefix",
		Long: `The install command downloads DirectX 2010 and the Uplay installer,
creates the default prefix if needed, installs DirectX and the required
winetricks components and finally runs the Uplay installer silently.

Example:
  wineuplay install
  wineuplay install --plan --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if installPlan {
				return printPlan()
			}
			if runner.IsInstalled() {
				printInfo("Uplay is already installed")
				return nil
			}
			task := runner.Install(cmd.Context(), func() {
				log.Info().Msg("Uplay installed")
			})
			if err := task.Wait(); err != nil {
				return err
			}
			printInfo("Uplay installed")
			return nil
		},
	}
	cmd.Flags().BoolVar(&installPlan, "plan", false, "Print the install steps without running them")
	rootCmd.AddCommand(cmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "install-game <id>",
		Short: "Ask Uplay to install a game and wait for the launcher to exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runner.InstallGame(cmd.Context(), args[0])
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Stop Uplay and start the uninstall of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := runner.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return output(map[string]bool{"removing": ok}, func() {
				if ok {
					printInfo("Uninstall of %s started", args[0])
				} else {
					printInfo("Uplay is not installed")
				}
			})
		},
	})
}

func printPlan() error {
	steps := runner.Pipeline().Steps()
	return output(steps, func() {
		for i, s := range steps {
			printInfo("%d. %-18s %s -> %s %s", i+1, s.Kind, s.Source, s.Target, strings.Join(s.Args, " "))
		}
	})
}
