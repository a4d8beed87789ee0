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
	"path/filepath"

	"github.com/adrg/xdg"
)

var AppVersion = "DEVELOPMENT"

const (
	AppName    = "wineuplay"
	CfgFile    = "config.toml"
	LogsDir    = "logs"
	RunnersDir = "runners"
	TempDir    = "tmp"
)

// ConfigDir is where config.toml lives.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DataDir holds runner prefixes, logs and downloads.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// LogDir is where the rotating log file is written.
func LogDir() string {
	return filepath.Join(DataDir(), LogsDir)
}

// RunnerDir is the parent of the default Uplay prefixes.
func RunnerDir() string {
	return filepath.Join(DataDir(), RunnersDir, AppName)
}

// DownloadDir is where installers are fetched to before running them.
func DownloadDir() string {
	return filepath.Join(xdg.CacheHome, AppName, TempDir)
}
