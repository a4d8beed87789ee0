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
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ZaparooProject/wineuplay/pkg/helpers"
	"github.com/ZaparooProject/wineuplay/pkg/helpers/command"
	"github.com/ZaparooProject/wineuplay/pkg/options"
	"github.com/ZaparooProject/wineuplay/pkg/wine"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Config is the decoded configuration of one runner instance.
type Config struct {
	Runner options.RunnerOptions
	Game   options.GameOptions
	// DownloadDir receives installers during Install.
	DownloadDir string
	// User is the Wine user directory name. Defaults to $USER.
	User string
	// DefaultArch replaces auto. Defaults to wine.DefaultArch.
	DefaultArch wine.Arch
}

// Deps are the collaborators a Runner drives.
type Deps struct {
	Fs       afero.Fs
	Layer    wine.Layer
	Process  Process
	Transfer Transfer
	Extract  Extractor
	Clock    clockwork.Clock
	Cmd      command.Executor
}

// PlayResult is either a command to run or an error code with the missing
// file.
type PlayResult struct {
	Env        map[string]string `json:"env,omitempty"`
	Error      string            `json:"error,omitempty"`
	File       string            `json:"file,omitempty"`
	WorkingDir string            `json:"working_dir,omitempty"`
	Command    []string          `json:"command,omitempty"`
}

// RunData is what a host needs to start the launcher without a game.
type RunData struct {
	Env     map[string]string `json:"env"`
	Command []string          `json:"command"`
}

// Runner is the game lifecycle facade over the Uplay integration.
type Runner struct {
	fs       afero.Fs
	layer    wine.Layer
	proc     Process
	cmd      command.Executor
	prefixes *PrefixResolver
	locator  *Locator
	commands *CommandBuilder
	shutdown *ShutdownController
	pipeline *InstallPipeline
	cfg      Config
}

// NewRunner wires a Runner. Zero Deps fields are filled with production
// implementations where one exists.
//
//nolint:gocritic // config struct copied for immutability
func NewRunner(cfg Config, deps Deps) *Runner {
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.Cmd == nil {
		deps.Cmd = &command.RealExecutor{}
	}
	if cfg.User == "" {
		cfg.User = os.Getenv("USER")
	}
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = filepath.Join(os.TempDir(), "wineuplay")
	}

	r := &Runner{
		fs:    deps.Fs,
		layer: deps.Layer,
		proc:  deps.Process,
		cmd:   deps.Cmd,
		cfg:   cfg,
	}
	r.prefixes = NewPrefixResolver(deps.Fs, deps.Layer, cfg.Runner, cfg.DefaultArch)
	r.locator = NewLocator(deps.Fs, r.prefixes, cfg.Runner)
	r.commands = NewCommandBuilder(deps.Layer, r.locator.Locate, cfg.Runner)
	r.shutdown = NewShutdownController(deps.Layer, deps.Process, deps.Clock, func(ctx context.Context) (string, error) {
		p, err := r.Prefix(ctx)
		return p.Path, err
	})
	r.pipeline = NewInstallPipeline(deps.Fs, deps.Transfer, deps.Extract, deps.Layer, r.prefixes, cfg.DownloadDir)
	return r
}

// Locator exposes the executable and registry lookups.
func (r *Runner) Locator() *Locator {
	return r.locator
}

// Commands exposes the command builder.
func (r *Runner) Commands() *CommandBuilder {
	return r.commands
}

// Pipeline exposes the install pipeline.
func (r *Runner) Pipeline() *InstallPipeline {
	return r.pipeline
}

// Prefix returns the game's prefix: the explicit prefix option if set,
// otherwise the default prefix for the game's arch, created if missing.
func (r *Runner) Prefix(ctx context.Context) (Prefix, error) {
	return r.prefixes.Resolve(ctx, r.cfg.Game.PrefixOverride(), r.cfg.Game.Arch)
}

// IsInstalled reports whether Wine is available, the default prefix exists
// and the Uplay executable can be located.
func (r *Runner) IsInstalled() bool {
	if !r.layer.Available() {
		log.Debug().Str("wine", r.layer.Executable()).Msg("wine is not available")
		return false
	}
	if !helpers.PathExists(r.fs, r.prefixes.DefaultPath(r.prefixes.DefaultArch())) {
		return false
	}
	return r.locator.Locate() != ""
}

// Install installs the launcher in the background.
func (r *Runner) Install(ctx context.Context, onComplete func()) *Task {
	return r.pipeline.Install(ctx, onComplete)
}

// Play builds the command that opens the launcher and starts the game.
// Configuration errors are returned; a launch target that disappeared is
// reported in the result instead.
func (r *Runner) Play(ctx context.Context) (PlayResult, error) {
	argv, err := r.commands.PlayCommand(r.cfg.Game.GameID, r.cfg.Game.NoLaunch)
	if err != nil {
		return PlayResult{}, err
	}
	if !r.layer.Available() {
		log.Warn().Str("file", argv[0]).Msg("wine executable not found")
		return PlayResult{Error: FileNotFound, File: argv[0]}, nil
	}
	prefix, err := r.Prefix(ctx)
	if err != nil {
		return PlayResult{}, err
	}

	// argv[1] is the located launcher, which may have gone away since
	if len(argv) > 1 && !helpers.PathExists(r.fs, argv[1]) {
		log.Warn().Str("file", argv[1]).Msg("uplay executable disappeared before launch")
		return PlayResult{Error: FileNotFound, File: argv[1]}, nil
	}

	cmd := r.commands.Command(argv, prefix)
	return PlayResult{
		Command:    cmd.Argv(),
		Env:        cmd.Env,
		WorkingDir: cmd.WorkingDir,
	}, nil
}

// RunData returns the launcher command without a game argument.
func (r *Runner) RunData(ctx context.Context) (RunData, error) {
	argv, err := r.commands.LaunchArgs()
	if err != nil {
		return RunData{}, err
	}
	prefix, err := r.Prefix(ctx)
	if err != nil {
		return RunData{}, err
	}
	return RunData{
		Command: argv,
		Env:     maps.Clone(r.layer.Env(prefix.Path, prefix.Arch)),
	}, nil
}

// InstallGame asks the launcher to install gameID and waits for the
// launcher process to exit.
func (r *Runner) InstallGame(ctx context.Context, gameID string) error {
	argv, err := r.commands.InstallCommand(gameID)
	if err != nil {
		return err
	}
	prefix, err := r.Prefix(ctx)
	if err != nil {
		return err
	}
	cmd := r.commands.Command(argv, prefix)
	log.Info().Str("game", gameID).Msg("installing game with Uplay")
	return r.run(ctx, cmd, false)
}

// Remove stops the launcher and starts the uninstall of gameID without
// waiting for it. It returns false if Uplay is not installed.
func (r *Runner) Remove(ctx context.Context, gameID string) (bool, error) {
	if !r.IsInstalled() {
		log.Warn().Str("game", gameID).Msg("trying to remove a Uplay game but Uplay is not installed")
		return false, nil
	}
	argv, err := r.commands.UninstallCommand(gameID)
	if err != nil {
		return false, err
	}
	if err := r.shutdown.ForceShutdown(ctx); err != nil {
		return false, err
	}
	prefix, err := r.Prefix(ctx)
	if err != nil {
		return false, err
	}
	cmd := r.commands.Command(argv, prefix)
	log.Info().Str("game", gameID).Msg("removing game with Uplay")
	if err := r.run(ctx, cmd, true); err != nil {
		return false, err
	}
	return true, nil
}

// BrowseDir returns the game's install directory on the host.
func (r *Runner) BrowseDir(ctx context.Context) (string, error) {
	if !r.IsInstalled() {
		return "", ErrNotInstalled
	}
	path, _, err := r.GamePath(ctx)
	return path, err
}

// GamePath returns the host path of the game's install directory, as
// recorded by the launcher.
func (r *Runner) GamePath(ctx context.Context) (string, bool, error) {
	if r.cfg.Game.GameID == "" {
		return "", false, nil
	}
	prefix, err := r.Prefix(ctx)
	if err != nil {
		return "", false, err
	}
	dir, ok := r.locator.InstallDir(prefix, r.cfg.Game.GameID)
	if !ok {
		return "", false, nil
	}
	return helpers.FixPathCase(r.fs, wine.UnixPath(prefix.Path, dir)), true, nil
}

// GameDir returns the launcher's default game installation folder from
// its settings.yml.
func (r *Runner) GameDir(ctx context.Context) (string, bool, error) {
	prefix, err := r.Prefix(ctx)
	if err != nil {
		return "", false, err
	}
	path := SettingsPath(r.fs, prefix.Path, r.cfg.User)
	if !helpers.PathExists(r.fs, path) {
		log.Debug().Str("path", path).Msg("uplay settings not found")
		return "", false, nil
	}
	settings, err := ReadSettings(r.fs, path)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read uplay settings")
		return "", false, nil
	}
	dir := settings.Misc.GameInstallationPath
	return dir, dir != "", nil
}

// DataDir returns the directory holding the Uplay executable.
func (r *Runner) DataDir() (string, bool) {
	exe := r.locator.Locate()
	if exe == "" {
		return "", false
	}
	dir := filepath.Dir(exe)
	info, err := r.fs.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return dir, true
}

// GameIDs lists the games the launcher knows about in the game's prefix.
func (r *Runner) GameIDs(ctx context.Context) ([]string, error) {
	prefix, err := r.Prefix(ctx)
	if err != nil {
		return nil, err
	}
	return r.locator.GameIDs(prefix), nil
}

// ForceShutdown stops a running launcher.
func (r *Runner) ForceShutdown(ctx context.Context) error {
	return r.shutdown.ForceShutdown(ctx)
}

// Prelaunch stops any running launcher so the game starts with the
// current prefix and settings. It reports whether the launcher is gone.
func (r *Runner) Prelaunch(ctx context.Context) bool {
	if err := r.shutdown.ForceShutdown(ctx); err != nil {
		log.Error().Err(err).Msg("prelaunch shutdown failed")
		return false
	}
	return !r.proc.IsRunning(ctx)
}

// IsRunning reports whether the launcher process is alive.
func (r *Runner) IsRunning(ctx context.Context) bool {
	return r.proc.IsRunning(ctx)
}

func (r *Runner) run(ctx context.Context, cmd LaunchCommand, background bool) error {
	opts := command.ExecOptions{Env: cmd.Env, Dir: cmd.WorkingDir}
	var err error
	if background {
		err = r.cmd.StartWithOptions(ctx, opts, cmd.Executable, cmd.Args...)
	} else {
		err = r.cmd.RunWithOptions(ctx, opts, cmd.Executable, cmd.Args...)
	}
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrExecutableNotFound, cmd.Executable)
	}
	if err != nil {
		return fmt.Errorf("failed to run %s: %w", filepath.Base(cmd.Executable), err)
	}
	return nil
}
