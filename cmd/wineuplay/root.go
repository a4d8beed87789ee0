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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ZaparooProject/wineuplay/internal/telemetry"
	"github.com/ZaparooProject/wineuplay/pkg/config"
	"github.com/ZaparooProject/wineuplay/pkg/helpers"
	"github.com/ZaparooProject/wineuplay/pkg/helpers/procs"
	"github.com/ZaparooProject/wineuplay/pkg/installer"
	"github.com/ZaparooProject/wineuplay/pkg/options"
	"github.com/ZaparooProject/wineuplay/pkg/uplay"
	"github.com/ZaparooProject/wineuplay/pkg/wine"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	gameID   string
	prefix   string
	archFlag string
	noLaunch bool
	jsonOut  bool
	debug    bool

	cfg    *config.Instance
	runner *uplay.Runner
)

var rootCmd = &cobra.Command{
	Use:   "wineuplay",
	Short: "Run the Uplay launcher and its games under Wine",
	Long: `wineuplay finds or installs the Ubisoft Uplay launcher inside a Wine
prefix, builds uplay:// commands to install, launch and remove games, and
stops a running launcher before its prefix is reused.

Runner and game options are read from the [runner] and [game] tables of
config.toml; the game flags below override the [game] table.`,
	Version:           config.AppVersion,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&gameID, "game", "g", "", "Uplay game id")
	rootCmd.PersistentFlags().StringVar(&prefix, "prefix", "", "Wine prefix to use instead of the runner default")
	rootCmd.PersistentFlags().StringVar(&archFlag, "arch", "", "Prefix architecture: auto, win32 or win64")
	rootCmd.PersistentFlags().BoolVar(&noLaunch, "nolaunch", false, "Open Uplay without starting the game")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
}

func setup(cmd *cobra.Command, _ []string) error {
	console := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: jsonOut}
	if err := helpers.InitLogging(config.LogDir(), []io.Writer{console}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	var err error
	cfg, err = config.NewConfig(config.ConfigDir(), config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	helpers.SetDebugLogging(debug || cfg.DebugLogging())

	if err := telemetry.Init(telemetry.Options{
		Enabled: cfg.ErrorReporting(),
		DSN:     cfg.SentryDSN(),
		Version: config.AppVersion,
		Arch:    wine.DefaultArch.String(),
	}); err != nil {
		log.Warn().Err(err).Msg("failed to initialize error reporting")
	}

	runnerOpts, err := options.ParseRunner(cfg.RunnerOptions(), config.RunnerDir())
	if err != nil {
		return fmt.Errorf("invalid runner options: %w", err)
	}
	gameOpts, err := options.ParseGame(gameRaw(cmd))
	if err != nil {
		return fmt.Errorf("invalid game options: %w", err)
	}

	fs := afero.NewOsFs()
	runner = uplay.NewRunner(uplay.Config{
		Runner:      runnerOpts,
		Game:        gameOpts,
		DownloadDir: config.DownloadDir(),
	}, uplay.Deps{
		Fs:       fs,
		Layer:    wine.NewClient(cfg.WineOptions()),
		Process:  procs.MustMatcher(uplay.ProcessPattern),
		Transfer: installer.NewHTTPTransfer(fs),
		Extract: func(archive, destDir string) error {
			return installer.ExtractTarGz(fs, archive, destDir)
		},
	})

	log.Debug().
		Str("config", cfg.Path()).
		Str("game", gameOpts.GameID).
		Msg("runner ready")
	return nil
}

// gameRaw overlays the game flags that were set on the [game] table.
func gameRaw(cmd *cobra.Command) map[string]any {
	raw := cfg.GameOptions()
	if raw == nil {
		raw = make(map[string]any)
	}
	flags := cmd.Flags()
	if flags.Changed("game") {
		raw[options.OptGameID] = gameID
	}
	if flags.Changed("prefix") {
		raw[options.OptPrefix] = prefix
	}
	if flags.Changed("arch") {
		raw[options.OptArch] = archFlag
	}
	if flags.Changed("nolaunch") {
		raw[options.OptNoLaunch] = noLaunch
	}
	return raw
}

// printInfo prints a line unless JSON output was requested.
func printInfo(format string, args ...any) {
	if !jsonOut {
		_, _ = fmt.Fprintf(os.Stdout, format+"\n", args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// output prints v as JSON in JSON mode, otherwise runs text.
func output(v any, text func()) error {
	if jsonOut {
		return printJSON(v)
	}
	text()
	return nil
}
