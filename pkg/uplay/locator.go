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
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZaparooProject/wineuplay/pkg/helpers"
	"github.com/ZaparooProject/wineuplay/pkg/options"
	"github.com/ZaparooProject/wineuplay/pkg/wine"
	"github.com/ZaparooProject/wineuplay/pkg/wine/registry"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// GameRecord is a game known to the launcher.
type GameRecord struct {
	ID         string
	InstallDir string
}

// Locator finds the Uplay executable and reads launcher state out of a
// prefix's registry hives. Lookups never create prefixes.
type Locator struct {
	fs       afero.Fs
	prefixes *PrefixResolver
	opts     options.RunnerOptions
}

// NewLocator creates a Locator.
func NewLocator(fs afero.Fs, prefixes *PrefixResolver, opts options.RunnerOptions) *Locator {
	return &Locator{fs: fs, prefixes: prefixes, opts: opts}
}

// Candidates returns the prefixes searched for an installed launcher, in
// priority order.
func (l *Locator) Candidates() []string {
	return []string{
		l.prefixes.DefaultPath(wine.ArchWin64),
		l.prefixes.DefaultPath(wine.ArchWin32),
		helpers.ExpandUser(FallbackPrefix),
	}
}

// Locate returns the path of the Uplay executable, or an empty string if
// it can't be found. A configured custom location is used when it holds
// Uplay.exe; otherwise each candidate prefix is checked for the default
// install paths and then for the uplay:// handler registered in user.reg.
func (l *Locator) Locate() string {
	if custom := l.customPath(); custom != "" {
		return custom
	}

	for _, prefix := range l.Candidates() {
		for _, sub := range defaultExeSubpaths {
			path := filepath.Join(prefix, filepath.FromSlash(sub))
			if helpers.PathExists(l.fs, path) {
				log.Debug().Str("path", path).Msg("found uplay at default location")
				return path
			}
		}

		if path := l.fromOpenCommand(prefix); path != "" {
			return path
		}
	}

	log.Debug().Msg("no uplay executable found")
	return ""
}

func (l *Locator) customPath() string {
	if l.opts.UplayPath == "" {
		return ""
	}
	path, err := filepath.Abs(filepath.Join(helpers.ExpandUser(l.opts.UplayPath), ExeName))
	if err != nil {
		log.Warn().Err(err).Str("uplay_path", l.opts.UplayPath).Msg("invalid custom uplay location")
		return ""
	}
	if !helpers.PathExists(l.fs, path) {
		log.Debug().Str("path", path).Msg("custom uplay location has no executable")
		return ""
	}
	return path
}

// fromOpenCommand resolves the executable from the uplay:// protocol
// handler. Useful when Uplay has been installed but not launched yet.
func (l *Locator) fromOpenCommand(prefix string) string {
	reg := l.openHive(prefix, UserHive)
	if reg == nil {
		return ""
	}
	value, ok := reg.Query(openCommandKey, "")
	if !ok {
		return ""
	}
	winPath := OpenCommandPath(value)
	if winPath == "" {
		return ""
	}

	path := helpers.FixPathCase(l.fs, wine.UnixPath(prefix, winPath))
	if !helpers.PathExists(l.fs, path) {
		log.Debug().Str("path", path).Msg("registered uplay executable does not exist")
		return ""
	}
	log.Debug().Str("path", path).Msg("found uplay from protocol handler")
	return path
}

// OpenCommandPath extracts the executable from a shell open command such
// as `"C:\...\upc.exe" "%1"`, trimming stray backslashes around it.
func OpenCommandPath(cmd string) string {
	var exe string
	if parts := strings.Split(cmd, `"`); len(parts) >= 3 {
		exe = parts[1]
	} else if fields := strings.Fields(cmd); len(fields) > 0 {
		exe = fields[0]
	}
	return strings.Trim(exe, `\`)
}

// InstallDir returns the install directory of a game as recorded in the
// prefix's system.reg, in Windows form. 64-bit prefixes keep the launcher's
// keys under Wow6432Node; the bare Wow6432 key is checked after it.
func (l *Locator) InstallDir(prefix Prefix, gameID string) (string, bool) {
	reg := l.openHive(prefix.Path, SystemHive)
	if reg == nil {
		log.Warn().Str("game", gameID).Msg("data path for game not found, no system registry")
		return "", false
	}

	keys := []string{installsKey32}
	if prefix.Arch.Resolve(l.prefixes.DefaultArch()) == wine.ArchWin64 {
		keys = []string{installsKey64, installsKeyWow}
	}

	log.Debug().Str("game", gameID).Msg("checking for game in the wine registry")
	for _, key := range keys {
		dir, ok := reg.Query(key+"/"+gameID, installDirValue)
		if ok && dir != "" {
			log.Debug().Str("game", gameID).Str("path", dir).Msg("game found")
			return dir, true
		}
	}
	log.Warn().Str("game", gameID).Msg("data path for game not found")
	return "", false
}

// Game returns the record for a game id. InstallDir is empty if the game
// is not installed in prefix.
func (l *Locator) Game(prefix Prefix, gameID string) GameRecord {
	dir, _ := l.InstallDir(prefix, gameID)
	return GameRecord{ID: gameID, InstallDir: dir}
}

// GameIDs lists the games the launcher has started in prefix, sorted. Both
// subkeys and values under GameStarter count as ids.
func (l *Locator) GameIDs(prefix Prefix) []string {
	reg := l.openHive(prefix.Path, UserHive)
	if reg == nil {
		return []string{}
	}

	seen := make(map[string]struct{})
	if subkeys, ok := reg.Subkeys(gameStarterKey); ok {
		for _, id := range subkeys {
			seen[id] = struct{}{}
		}
	}
	if values, ok := reg.QueryKey(gameStarterKey); ok {
		for name := range values {
			if name != "" {
				seen[name] = struct{}{}
			}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// openHive returns nil when the hive is missing or unreadable.
func (l *Locator) openHive(prefix, name string) *registry.Registry {
	path := filepath.Join(prefix, name)
	if !helpers.PathExists(l.fs, path) {
		log.Debug().Str("hive", path).Msg("registry hive not found")
		return nil
	}
	reg, err := registry.Open(l.fs, path)
	if err != nil {
		log.Warn().Err(err).Str("hive", path).Msg("failed to read registry hive")
		return nil
	}
	return reg
}
