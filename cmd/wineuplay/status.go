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
	"github.com/spf13/cobra"
)

type gameEntry struct {
	ID         string `json:"id"`
	InstallDir string `json:"install_dir,omitempty"`
}

type status struct {
	Config    string `json:"config"`
	Prefix    string `json:"prefix"`
	Arch      string `json:"arch"`
	DataDir   string `json:"data_dir,omitempty"`
	Installed bool   `json:"installed"`
	Running   bool   `json:"running"`
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "games",
		Short: "List the games Uplay knows about in the prefix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := runner.Prefix(cmd.Context())
			if err != nil {
				return err
			}
			ids := runner.Locator().GameIDs(p)
			games := make([]gameEntry, 0, len(ids))
			for _, id := range ids {
				rec := runner.Locator().Game(p, id)
				games = append(games, gameEntry{ID: rec.ID, InstallDir: rec.InstallDir})
			}
			return output(games, func() {
				for _, g := range games {
					printInfo("%-8s %s", g.ID, g.InstallDir)
				}
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "shutdown",
		Short: "Stop a running Uplay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := runner.ForceShutdown(cmd.Context()); err != nil {
				return err
			}
			if runner.IsRunning(cmd.Context()) {
				printInfo("Uplay is still running")
				return nil
			}
			printInfo("Uplay is not running")
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether Uplay is installed and running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := status{
				Config:    cfg.Path(),
				Installed: runner.IsInstalled(),
				Running:   runner.IsRunning(cmd.Context()),
			}
			if st.Installed {
				if p, err := runner.Prefix(cmd.Context()); err == nil {
					st.Prefix, st.Arch = p.Path, p.Arch.String()
				}
			}
			st.DataDir, _ = runner.DataDir()
			return output(st, func() {
				printInfo("config:    %s", st.Config)
				printInfo("installed: %t", st.Installed)
				printInfo("running:   %t", st.Running)
				if st.Prefix != "" {
					printInfo("prefix:    %s (%s)", st.Prefix, st.Arch)
				}
				if st.DataDir != "" {
					printInfo("data dir:  %s", st.DataDir)
				}
			})
		},
	})
}
