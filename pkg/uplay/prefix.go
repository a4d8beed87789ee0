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
	"fmt"
	"path/filepath"

	"github.com/ZaparooProject/wineuplay/pkg/helpers"
	"github.com/ZaparooProject/wineuplay/pkg/options"
	"github.com/ZaparooProject/wineuplay/pkg/wine"
	"github.com/ZaparooProject/wineuplay/pkg/wine/registry"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Prefix is a Wine prefix with a concrete architecture.
type Prefix struct {
	Path string
	Arch wine.Arch
}

// PrefixResolver picks the prefix Uplay runs in, creating the runner's
// default prefix on first use.
type PrefixResolver struct {
	fs          afero.Fs
	layer       wine.Layer
	opts        options.RunnerOptions
	defaultArch wine.Arch
}

// NewPrefixResolver creates a resolver. defaultArch replaces auto; pass
// wine.ArchAuto to use wine.DefaultArch.
func NewPrefixResolver(
	fs afero.Fs,
	layer wine.Layer,
	opts options.RunnerOptions,
	defaultArch wine.Arch,
) *PrefixResolver {
	return &PrefixResolver{
		fs:          fs,
		layer:       layer,
		opts:        opts,
		defaultArch: defaultArch.Resolve(wine.DefaultArch),
	}
}

// DefaultArch is the architecture auto resolves to.
func (r *PrefixResolver) DefaultArch() wine.Arch {
	return r.defaultArch
}

// DefaultPath returns the runner's default prefix for arch without
// creating it.
func (r *PrefixResolver) DefaultPath(arch wine.Arch) string {
	return r.opts.DefaultPrefix(arch.Resolve(r.defaultArch))
}

// Resolve returns override if set, otherwise the default prefix for arch.
// An override is returned as given after home expansion; it is not
// checked or created. Its arch comes from arch, or from the prefix's
// system.reg when arch is auto.
func (r *PrefixResolver) Resolve(ctx context.Context, override string, arch wine.Arch) (Prefix, error) {
	if override != "" {
		path := helpers.ExpandUser(override)
		if arch == wine.ArchWin32 || arch == wine.ArchWin64 {
			return Prefix{Path: path, Arch: arch}, nil
		}
		return Prefix{Path: path, Arch: r.DetectArch(path)}, nil
	}
	return r.GetOrCreateDefault(ctx, arch)
}

// GetOrCreateDefault returns the default prefix for arch, creating the
// parent directories and initialising the prefix if it does not exist.
func (r *PrefixResolver) GetOrCreateDefault(ctx context.Context, arch wine.Arch) (Prefix, error) {
	arch = arch.Resolve(r.defaultArch)
	path := r.DefaultPath(arch)
	if helpers.PathExists(r.fs, path) {
		return Prefix{Path: path, Arch: arch}, nil
	}

	log.Debug().Str("prefix", path).Str("arch", arch.String()).Msg("creating default uplay prefix")
	if err := r.fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return Prefix{}, fmt.Errorf("%w: %s: %w", ErrPrefixCreation, path, err)
	}
	if err := r.layer.CreatePrefix(ctx, path, arch); err != nil {
		return Prefix{}, fmt.Errorf("%w: %s: %w", ErrPrefixCreation, path, err)
	}
	return Prefix{Path: path, Arch: arch}, nil
}

// DetectArch reads the #arch header of a prefix's system.reg, falling back
// to the default arch when the hive is missing or has no header.
func (r *PrefixResolver) DetectArch(path string) wine.Arch {
	hive := filepath.Join(path, SystemHive)
	if !helpers.PathExists(r.fs, hive) {
		return r.defaultArch
	}
	reg, err := registry.Open(r.fs, hive)
	if err != nil {
		log.Warn().Err(err).Str("hive", hive).Msg("failed to read prefix arch")
		return r.defaultArch
	}
	return reg.Arch().Resolve(r.defaultArch)
}
