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

// Package command provides an abstraction over exec.Command so that Wine,
// wineserver and winetricks invocations can be mocked in tests.
package command

import (
	"context"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// ExecOptions configures the environment a command runs in.
type ExecOptions struct {
	// Env is layered over the current process environment. Keys in Env
	// replace inherited keys of the same name.
	Env map[string]string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// CleanEnv drops the inherited process environment entirely.
	CleanEnv bool
}

// Executor provides an abstraction over exec.Command for testability.
type Executor interface {
	// Run executes a command and waits for it to complete.
	Run(ctx context.Context, name string, args ...string) error

	// Output runs a command and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// Start starts a command without waiting for it to complete.
	Start(ctx context.Context, name string, args ...string) error

	// RunWithOptions executes a command with a custom environment and
	// working directory and waits for it to exit.
	RunWithOptions(ctx context.Context, opts ExecOptions, name string, args ...string) error

	// StartWithOptions starts a command with a custom environment and
	// working directory without waiting for it.
	StartWithOptions(ctx context.Context, opts ExecOptions, name string, args ...string) error
}

// RealExecutor runs real system commands.
type RealExecutor struct{}

// Compile-time interface implementation check.
var _ Executor = (*RealExecutor)(nil)

// Run executes a system command using exec.CommandContext.
//
//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Output runs a command and returns its standard output.
//
//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Start starts a command without waiting for it to complete.
//
//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) Start(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Start()
}

// RunWithOptions executes a command in the given environment and waits.
//
//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) RunWithOptions(
	ctx context.Context,
	opts ExecOptions,
	name string,
	args ...string,
) error {
	return buildCmd(ctx, opts, name, args).Run()
}

// StartWithOptions starts a command in the given environment.
//
//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) StartWithOptions(
	ctx context.Context,
	opts ExecOptions,
	name string,
	args ...string,
) error {
	return buildCmd(ctx, opts, name, args).Start()
}

func buildCmd(ctx context.Context, opts ExecOptions, name string, args []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 || opts.CleanEnv {
		cmd.Env = MergeEnv(opts.CleanEnv, opts.Env)
	}
	return cmd
}

// MergeEnv returns a KEY=VALUE list made of the process environment (unless
// clean is set) with env layered on top. Output is sorted by key for the
// added entries so logs are stable.
func MergeEnv(clean bool, env map[string]string) []string {
	var base []string
	if !clean {
		base = os.Environ()
	}

	result := make([]string, 0, len(base)+len(env))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, overridden := env[key]; overridden {
			continue
		}
		result = append(result, kv)
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		result = append(result, k+"="+env[k])
	}
	return result
}
