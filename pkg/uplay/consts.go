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

// Package uplay runs the Ubisoft Uplay (Ubisoft Connect) launcher inside a
// Wine prefix: it finds or installs the launcher, builds uplay:// commands
// for games and stops a running instance before the prefix is reused.
package uplay

import "time"

const (
	// DX2010URL is the DirectX June 2010 redistributable, repacked as a
	// tarball.
	DX2010URL = "https://lutris.net/files/tools/directx-2010.tar.gz"
	// InstallerURL is the official launcher installer.
	InstallerURL = "https://ubistatic3-a.akamaihd.net/orbit/launcher_installer/UplayInstaller.exe"

	// ExeName is the launcher binary looked up in a custom Uplay location.
	ExeName = "Uplay.exe"
	// ProcessPattern matches the running launcher process.
	ProcessPattern = `Uplay.exe$`

	URIScheme = "uplay"

	UserHive   = "user.reg"
	SystemHive = "system.reg"

	// FallbackPrefix is the stock Wine prefix, checked after the runner's
	// own prefixes.
	FallbackPrefix = "~/.wine"

	dxArchiveName   = "directx-2010.tar.gz"
	dxExtractDir    = "directx-2010"
	dxSetupName     = "DXSETUP.exe"
	installerName   = "UplayInstaller.exe"
	dxSilentFlag    = "/silent"
	installerSilent = "/S"

	openCommandKey  = "Software/Classes/uplay/Shell/Open/Command"
	gameStarterKey  = "Software/Ubisoft/Uplay/GameStarter"
	installsKey64   = "Software/Wow6432Node/Ubisoft/Launcher/Installs"
	installsKeyWow  = "Software/Wow6432/Ubisoft/Launcher/Installs"
	installsKey32   = "Software/Ubisoft/Launcher/Installs"
	installDirValue = "InstallDir"

	settingsDir  = "Local Settings/Application Data/Ubisoft Game Launcher"
	settingsFile = "settings.yml"
)

const (
	PollInterval  = time.Second
	GracefulPolls = 10
	ForcedPolls   = 5
)

// defaultExeSubpaths are tried in order inside each candidate prefix.
var defaultExeSubpaths = []string{
	"drive_c/Program Files (x86)/Ubisoft/Ubisoft Game Launcher/upc.exe",
	"drive_c/Program Files/Ubisoft/Ubisoft Game Launcher/upc.exe",
}

// WinetricksVerbs are installed before the launcher: core fonts, the
// d3dcompiler_43 runtime and GDI+.
var WinetricksVerbs = []string{"corefonts", "d3dcompiler_43", "gdiplus"}
