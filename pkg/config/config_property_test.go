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

package config

import (
	"testing"

	"github.com/ZaparooProject/wineuplay/pkg/wine"
	"pgregory.net/rapid"
)

// TestPropertyOptionsSurviveSaveLoad verifies raw option strings come back
// unchanged after a save and reload.
func TestPropertyOptionsSurviveSaveLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	rapid.Check(t, func(t *rapid.T) {
		uplayPath := rapid.StringMatching(`[ -~]{0,40}`).Draw(t, "uplayPath")
		args := rapid.StringMatching(`[ -~]{0,40}`).Draw(t, "args")
		gameID := rapid.StringMatching(`[0-9]{1,6}`).Draw(t, "gameID")
		debugLogging := rapid.Bool().Draw(t, "debug")

		cfg := &Instance{
			cfgPath:  dir + "/" + CfgFile,
			vals:     cloneValues(BaseDefaults),
			defaults: cloneValues(BaseDefaults),
		}
		cfg.SetRunnerOption("uplay_path", uplayPath)
		cfg.SetRunnerOption("args", args)
		cfg.SetGameOption("game_id", gameID)
		cfg.SetDebugLogging(debugLogging)
		if err := cfg.Save(); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		loaded := &Instance{
			cfgPath:  cfg.cfgPath,
			vals:     cloneValues(BaseDefaults),
			defaults: cloneValues(BaseDefaults),
		}
		if err := loaded.Load(); err != nil {
			t.Fatalf("load failed: %v", err)
		}

		if got := loaded.RunnerOptions()["uplay_path"]; got != uplayPath {
			t.Fatalf("uplay_path: want %q, got %v", uplayPath, got)
		}
		if got := loaded.RunnerOptions()["args"]; got != args {
			t.Fatalf("args: want %q, got %v", args, got)
		}
		if got := loaded.GameOptions()["game_id"]; got != gameID {
			t.Fatalf("game_id: want %q, got %v", gameID, got)
		}
		if loaded.DebugLogging() != debugLogging {
			t.Fatalf("debug_logging: want %t", debugLogging)
		}
	})
}

// TestPropertyWineOptionsKeepDebugDefault verifies an unset wine debug
// channel falls back to the base default.
func TestPropertyWineOptionsKeepDebugDefault(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		exe := rapid.StringMatching(`/[a-z]{1,8}(/[a-z]{1,8}){0,3}/wine`).Draw(t, "exe")

		defaults := cloneValues(BaseDefaults)
		defaults.Wine.Executable = exe
		cfg := &Instance{vals: cloneValues(defaults), defaults: defaults}

		opts := cfg.WineOptions()
		want := wine.Options{WinePath: exe, Debug: BaseDefaults.Wine.Debug}
		if opts != want {
			t.Fatalf("want %+v, got %+v", want, opts)
		}
	})
}
