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
	"strings"

	"github.com/ZaparooProject/wineuplay/pkg/helpers/command"
	"github.com/ZaparooProject/wineuplay/pkg/uplay"
	"github.com/spf13/cobra"
)

var errStillRunning = errors.New("a previous Uplay instance is still running")

var (
	playExec bool
	runData  bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Build the command that opens Uplay and starts the game",
		Long: `The play command stops a running Uplay, then prints the command, working
directory and environment needed to start the game through Uplay. With
--exec the command is started directly.

Example:
  wineuplay play --game 635 --json
  wineuplay play --game 635 --exec
  wineuplay play --run-data`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if runData {
				data, err := runner.RunData(ctx)
				if err != nil {
					return err
				}
				return output(data, func() {
					printInfo("%s", strings.Join(data.Command, " "))
				})
			}

			if !runner.Prelaunch(ctx) {
				return errStillRunning
			}
			res, err := runner.Play(ctx)
			if err != nil {
				return err
			}
			if res.Error == uplay.FileNotFound {
				if err := output(res, func() {}); err != nil {
					return err
				}
				return fmt.Errorf("%s: %s", res.Error, res.File)
			}

			if playExec {
				executor := &command.RealExecutor{}
				opts := command.ExecOptions{Env: res.Env, Dir: res.WorkingDir}
				if err := executor.StartWithOptions(ctx, opts, res.Command[0], res.Command[1:]...); err != nil {
					return fmt.Errorf("failed to start Uplay: %w", err)
				}
				printInfo("Uplay started")
				return nil
			}

			return output(res, func() {
				printInfo("%s", strings.Join(res.Command, " "))
			})
		},
	}
	cmd.Flags().BoolVar(&playExec, "exec", false, "Start the command instead of printing it")
	cmd.Flags().BoolVar(&runData, "run-data", false, "Print the launcher command without a game")
	rootCmd.AddCommand(cmd)
}
