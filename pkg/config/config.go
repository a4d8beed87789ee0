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
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/ZaparooProject/wineuplay/pkg/helpers/syncutil"
	"github.com/ZaparooProject/wineuplay/pkg/wine"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	SchemaVersion = 1
	CfgEnv        = "WINEUPLAY_CFG"
)

var ErrSchemaMismatch = errors.New("schema version mismatch")

type Values struct {
	Runner         map[string]any `toml:"runner,omitempty"`
	Game           map[string]any `toml:"game,omitempty"`
	Wine           Wine           `toml:"wine"`
	SentryDSN      string         `toml:"sentry_dsn,omitempty"`
	ConfigSchema   int            `toml:"config_schema"`
	DebugLogging   bool           `toml:"debug_logging"`
	ErrorReporting bool           `toml:"error_reporting"`
}

type Wine struct {
	Executable string `toml:"executable,omitempty"`
	Wineserver string `toml:"wineserver,omitempty"`
	Winetricks string `toml:"winetricks,omitempty"`
	Debug      string `toml:"debug,omitempty"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Wine: Wine{
		Debug: "-all",
	},
}

type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

//nolint:gocritic // config struct copied for immutability
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		cfgPath:  cfgPath,
		vals:     cloneValues(defaults),
		defaults: cloneValues(defaults),
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")

		err := os.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err := cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	newVals := cloneValues(c.defaults)
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return ErrSchemaMismatch
	}

	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Path returns the file the config is read from.
func (c *Instance) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfgPath
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
	if enabled {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func (c *Instance) ErrorReporting() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.ErrorReporting
}

func (c *Instance) SentryDSN() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.SentryDSN
}

// WineOptions returns the Wine client settings.
func (c *Instance) WineOptions() wine.Options {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return wine.Options{
		WinePath:       c.vals.Wine.Executable,
		WineserverPath: c.vals.Wine.Wineserver,
		WinetricksPath: c.vals.Wine.Winetricks,
		Debug:          c.vals.Wine.Debug,
	}
}

// RunnerOptions returns a copy of the raw [runner] table.
func (c *Instance) RunnerOptions() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.vals.Runner)
}

// GameOptions returns a copy of the raw [game] table.
func (c *Instance) GameOptions() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.vals.Game)
}

func (c *Instance) SetRunnerOption(name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.vals.Runner == nil {
		c.vals.Runner = make(map[string]any)
	}
	c.vals.Runner[name] = value
}

func (c *Instance) SetGameOption(name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.vals.Game == nil {
		c.vals.Game = make(map[string]any)
	}
	c.vals.Game[name] = value
}

//nolint:gocritic // config struct copied for immutability
func cloneValues(v Values) Values {
	v.Runner = maps.Clone(v.Runner)
	v.Game = maps.Clone(v.Game)
	return v
}
