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

	"github.com/ZaparooProject/wineuplay/pkg/helpers/poll"
	"github.com/ZaparooProject/wineuplay/pkg/wine"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Process is the running launcher as seen by the shutdown controller.
type Process interface {
	IsRunning(ctx context.Context) bool
	Kill(ctx context.Context) error
}

// ShutdownController stops a running launcher: first through the prefix's
// wineserver, then by killing the process if it is still alive.
type ShutdownController struct {
	layer    wine.Layer
	proc     Process
	clock    clockwork.Clock
	prefix   func(ctx context.Context) (string, error)
	graceful poll.Policy
	forced   poll.Policy
}

// NewShutdownController creates a controller using the default 10 then 5
// one-second polls. prefix is resolved only when a shutdown is needed.
func NewShutdownController(
	layer wine.Layer,
	proc Process,
	clock clockwork.Clock,
	prefix func(ctx context.Context) (string, error),
) *ShutdownController {
	return &ShutdownController{
		layer:    layer,
		proc:     proc,
		clock:    clock,
		prefix:   prefix,
		graceful: poll.Every(PollInterval, GracefulPolls),
		forced:   poll.Every(PollInterval, ForcedPolls),
	}
}

// ForceShutdown stops the launcher if it is running. Only a failure to
// request the graceful stop is returned; if the process survives both the
// graceful and the forced wait, the failure is logged and nil is returned,
// so callers that need it gone must check again. A cancelled ctx ends each
// wait before its first poll, so the launcher is killed at once and the
// failure is logged the same way.
func (s *ShutdownController) ForceShutdown(ctx context.Context) error {
	if !s.proc.IsRunning(ctx) {
		return nil
	}

	log.Info().Msg("waiting for Uplay to shutdown...")
	prefix, err := s.prefix(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve prefix for shutdown: %w", err)
	}
	if err := s.layer.Shutdown(ctx, prefix); err != nil {
		return fmt.Errorf("failed to request Uplay shutdown: %w", err)
	}

	stopped := func() bool { return !s.proc.IsRunning(ctx) }

	res := poll.Until(ctx, s.clock, s.graceful, stopped)
	if res.Satisfied {
		log.Debug().Int("polls", res.Attempts).Msg("Uplay stopped")
		return nil
	}

	log.Info().Msg("forcing Uplay shutdown")
	if err := s.proc.Kill(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to kill Uplay")
	}

	res = poll.Until(ctx, s.clock, s.forced, stopped)
	if res.Satisfied {
		log.Debug().Int("polls", res.Attempts).Msg("Uplay killed")
		return nil
	}

	log.Error().Msg("failed to shut down Uplay")
	return nil
}
