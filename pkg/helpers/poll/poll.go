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

// Package poll provides a fixed-interval polling primitive driven by a
// clockwork.Clock, so waits can be replaced by a fake clock in tests.
package poll

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Policy describes how often and how many times a condition is sampled.
type Policy struct {
	Interval    time.Duration
	MaxAttempts int
}

// Every returns a Policy sampling every interval, at most attempts times.
func Every(interval time.Duration, attempts int) Policy {
	return Policy{Interval: interval, MaxAttempts: attempts}
}

// Result reports the outcome of Until.
type Result struct {
	// Attempts is the number of times the condition was evaluated.
	Attempts int
	// Satisfied is true if the condition returned true.
	Satisfied bool
}

// Until waits one interval, then evaluates cond, repeating up to
// MaxAttempts times. It returns as soon as cond is true. A cancelled ctx
// stops the loop between samples; the interval sleep itself is not
// interrupted.
func Until(ctx context.Context, clock clockwork.Clock, p Policy, cond func() bool) Result {
	var res Result
	for range p.MaxAttempts {
		if ctx.Err() != nil {
			return res
		}
		clock.Sleep(p.Interval)
		res.Attempts++
		if cond() {
			res.Satisfied = true
			return res
		}
	}
	return res
}
