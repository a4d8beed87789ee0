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
	"fmt"
	"path/filepath"

	"github.com/ZaparooProject/wineuplay/pkg/helpers"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Settings is the part of the launcher's settings.yml the runner reads.
type Settings struct {
	Misc struct {
		GameInstallationPath string `yaml:"game_installation_path"`
	} `yaml:"misc"`
}

// SettingsPath returns where the launcher keeps settings.yml for user in
// prefix, case-corrected against fs.
func SettingsPath(fs afero.Fs, prefix, user string) string {
	path := filepath.Join(prefix, "users", user, filepath.FromSlash(settingsDir), settingsFile)
	return helpers.FixPathCase(fs, path)
}

// ReadSettings parses the launcher's settings.yml.
func ReadSettings(fs afero.Fs, path string) (Settings, error) {
	var s Settings
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return s, fmt.Errorf("failed to read uplay settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse uplay settings: %w", err)
	}
	return s, nil
}
