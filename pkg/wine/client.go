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

package wine

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/ZaparooProject/wineuplay/pkg/helpers/command"
	"github.com/rs/zerolog/log"
)

// Options configures which Wine binaries a Client uses.
type Options struct {
	// WinePath is the wine binary. Defaults to "wine" on PATH.
	WinePath string
	// WineserverPath defaults to the wineserver next to WinePath, or
	// "wineserver" on PATH when WinePath is not absolute.
	WineserverPath string
	// WinetricksPath defaults to "winetricks" on PATH.
	WinetricksPath string
	// Debug is passed as WINEDEBUG. Defaults to "-all".
	Debug string
}

func (o Options) withDefaults() Options {
	if o.WinePath == "" {
		o.WinePath = "wine"
	}
	if o.WineserverPath == "" {
		if filepath.IsAbs(o.WinePath) {
			o.WineserverPath = filepath.Join(filepath.Dir(o.WinePath), "wineserver")
		} else {
			o.WineserverPath = "wineserver"
		}
	}
	if o.WinetricksPath == "" {
		o.WinetricksPath = "winetricks"
	}
	if o.Debug == "" {
		o.Debug = "-all"
	}
	return o
}

// Client implements Layer by shelling out to wine, wineserver and
// winetricks.
type Client struct {
	cmd      command.Executor
	lookPath func(string) (string, error)
	opts     Options
}

// Compile-time interface implementation check.
var _ Layer = (*Client)(nil)

// NewClient creates a Client that runs real commands.
func NewClient(opts Options) *Client {
	return NewClientWithExecutor(opts, &command.RealExecutor{})
}

// NewClientWithExecutor creates a Client with a custom command executor.
// This is useful for testing.
func NewClientWithExecutor(opts Options, cmd command.Executor) *Client {
	return &Client{
		opts:     opts.withDefaults(),
		cmd:      cmd,
		lookPath: exec.LookPath,
	}
}

// Executable returns the configured wine binary.
func (c *Client) Executable() string {
	return c.opts.WinePath
}

// Available reports whether the wine binary resolves to a file.
func (c *Client) Available() bool {
	_, err := c.lookPath(c.opts.WinePath)
	return err == nil
}

// Env returns the variables that select prefix and architecture.
func (c *Client) Env(prefix string, arch Arch) map[string]string {
	env := map[string]string{
		"WINEDEBUG": c.opts.Debug,
	}
	if prefix != "" {
		env["WINEPREFIX"] = prefix
	}
	if arch == ArchWin32 || arch == ArchWin64 {
		env["WINEARCH"] = string(arch)
	}
	return env
}

// CreatePrefix runs wineboot in a new prefix and waits for the wineserver
// to settle so the registry hives are flushed to disk.
func (c *Client) CreatePrefix(ctx context.Context, path string, arch Arch) error {
	arch = arch.Resolve(DefaultArch)
	env := c.Env(path, arch)
	// skip the mono and gecko install prompts
	env["WINEDLLOVERRIDES"] = "mscoree,mshtml="

	log.Info().Str("prefix", path).Str("arch", arch.String()).Msg("creating wine prefix")
	opts := command.ExecOptions{Env: env}
	if err := c.cmd.RunWithOptions(ctx, opts, c.opts.WinePath, "wineboot", "-i"); err != nil {
		return fmt.Errorf("wineboot failed for %s: %w", path, err)
	}
	if err := c.cmd.RunWithOptions(ctx, opts, c.opts.WineserverPath, "-w"); err != nil {
		log.Warn().Err(err).Str("prefix", path).Msg("failed waiting for wineserver")
	}
	return nil
}

// Exec runs a program in a prefix and waits for it to exit.
func (c *Client) Exec(ctx context.Context, req ExecRequest) error {
	dir := req.WorkingDir
	if dir == "" && filepath.IsAbs(req.Executable) {
		dir = filepath.Dir(req.Executable)
	}

	args := append([]string{req.Executable}, req.Args...)
	log.Debug().
		Str("prefix", req.Prefix).
		Strs("args", args).
		Msg("running program in wine prefix")

	opts := command.ExecOptions{Env: c.Env(req.Prefix, req.Arch), Dir: dir}
	if err := c.cmd.RunWithOptions(ctx, opts, c.opts.WinePath, args...); err != nil {
		return fmt.Errorf("failed to run %s: %w", filepath.Base(req.Executable), err)
	}
	return nil
}

// Winetricks installs verbs unattended.
func (c *Client) Winetricks(ctx context.Context, prefix string, arch Arch, verbs ...string) error {
	if len(verbs) == 0 {
		return nil
	}
	env := c.Env(prefix, arch)
	env["WINE"] = c.opts.WinePath
	env["WINESERVER"] = c.opts.WineserverPath

	log.Info().Str("prefix", prefix).Strs("verbs", verbs).Msg("running winetricks")
	args := append([]string{"-q"}, verbs...)
	opts := command.ExecOptions{Env: env}
	if err := c.cmd.RunWithOptions(ctx, opts, c.opts.WinetricksPath, args...); err != nil {
		return fmt.Errorf("winetricks %v failed: %w", verbs, err)
	}
	return nil
}

// Shutdown kills every process attached to the prefix's wineserver.
func (c *Client) Shutdown(ctx context.Context, prefix string) error {
	log.Debug().Str("prefix", prefix).Msg("stopping wineserver")
	opts := command.ExecOptions{Env: c.Env(prefix, "")}
	if err := c.cmd.RunWithOptions(ctx, opts, c.opts.WineserverPath, "-k"); err != nil {
		return fmt.Errorf("wineserver -k failed for %s: %w", prefix, err)
	}
	return nil
}
