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

package command

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealExecutor_Run(t *testing.T) {
	t.Parallel()

	executor := &RealExecutor{}

	t.Run("executes_successful_command", func(t *testing.T) {
		t.Parallel()

		err := executor.Run(context.Background(), "true")

		assert.NoError(t, err)
	})

	t.Run("returns_error_for_failed_command", func(t *testing.T) {
		t.Parallel()

		err := executor.Run(context.Background(), "false")

		assert.Error(t, err)
	})

	t.Run("returns_error_for_nonexistent_command", func(t *testing.T) {
		t.Parallel()

		err := executor.Run(context.Background(), "nonexistent_command_that_should_not_exist_12345")

		require.Error(t, err)
	})
}

func TestRealExecutor_RunWithOptions(t *testing.T) {
	t.Parallel()

	executor := &RealExecutor{}

	t.Run("passes_environment", func(t *testing.T) {
		t.Parallel()

		opts := ExecOptions{Env: map[string]string{"WINEUPLAY_TEST_VAR": "prefix64"}}
		err := executor.RunWithOptions(
			context.Background(), opts, "sh", "-c", `test "$WINEUPLAY_TEST_VAR" = prefix64`,
		)

		assert.NoError(t, err)
	})

	t.Run("uses_working_directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		resolved, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)

		opts := ExecOptions{Dir: dir}
		err = executor.RunWithOptions(
			context.Background(), opts, "sh", "-c", `test "$(pwd -P)" = "`+resolved+`"`,
		)

		assert.NoError(t, err)
	})
}

func TestRealExecutor_StartWithOptions(t *testing.T) {
	t.Parallel()

	executor := &RealExecutor{}

	t.Run("starts_command", func(t *testing.T) {
		t.Parallel()

		err := executor.StartWithOptions(context.Background(), ExecOptions{}, "true")

		assert.NoError(t, err)
	})

	t.Run("returns_error_for_nonexistent_command", func(t *testing.T) {
		t.Parallel()

		err := executor.StartWithOptions(
			context.Background(), ExecOptions{}, "nonexistent_command_that_should_not_exist_12345",
		)

		require.Error(t, err)
	})
}

func TestMergeEnv(t *testing.T) {
	t.Setenv("WINEPREFIX", "/old/prefix")

	t.Run("overrides_inherited_keys", func(t *testing.T) {
		env := MergeEnv(false, map[string]string{"WINEPREFIX": "/new/prefix"})

		assert.Contains(t, env, "WINEPREFIX=/new/prefix")
		assert.NotContains(t, env, "WINEPREFIX=/old/prefix")
	})

	t.Run("clean_env_only_contains_given_keys", func(t *testing.T) {
		env := MergeEnv(true, map[string]string{"WINEARCH": "win64", "WINEDEBUG": "-all"})

		assert.Equal(t, []string{"WINEARCH=win64", "WINEDEBUG=-all"}, env)
	})
}
