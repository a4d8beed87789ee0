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

package poll

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drive advances the fake clock one interval at a time until done closes.
func drive(t *testing.T, clock *clockwork.FakeClock, interval time.Duration, done <-chan struct{}) {
	t.Helper()
	for {
		select {
		case <-done:
			return
		default:
		}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		err := clock.BlockUntilContext(ctx, 1)
		cancel()
		if err == nil {
			clock.Advance(interval)
		}
	}
}

func TestUntil(t *testing.T) {
	t.Parallel()

	t.Run("stops_as_soon_as_condition_holds", func(t *testing.T) {
		t.Parallel()

		clock := clockwork.NewFakeClock()
		start := clock.Now()
		calls := 0
		done := make(chan struct{})
		var res Result

		go func() {
			defer close(done)
			res = Until(context.Background(), clock, Every(time.Second, 10), func() bool {
				calls++
				return calls == 3
			})
		}()
		drive(t, clock, time.Second, done)

		assert.True(t, res.Satisfied)
		assert.Equal(t, 3, res.Attempts)
		assert.Equal(t, 3, calls)
		assert.Equal(t, 3*time.Second, clock.Since(start))
	})

	t.Run("gives_up_after_max_attempts", func(t *testing.T) {
		t.Parallel()

		clock := clockwork.NewFakeClock()
		calls := 0
		done := make(chan struct{})
		var res Result

		go func() {
			defer close(done)
			res = Until(context.Background(), clock, Every(time.Second, 5), func() bool {
				calls++
				return false
			})
		}()
		drive(t, clock, time.Second, done)

		assert.False(t, res.Satisfied)
		assert.Equal(t, 5, res.Attempts)
		assert.Equal(t, 5, calls)
	})

	t.Run("zero_attempts_never_samples", func(t *testing.T) {
		t.Parallel()

		res := Until(context.Background(), clockwork.NewFakeClock(), Every(time.Second, 0), func() bool {
			require.Fail(t, "condition should not be evaluated")
			return true
		})

		assert.Equal(t, Result{}, res)
	})

	t.Run("cancelled_context_stops_before_sampling", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res := Until(ctx, clockwork.NewFakeClock(), Every(time.Second, 10), func() bool {
			return true
		})

		assert.Zero(t, res.Attempts)
		assert.False(t, res.Satisfied)
	})

	t.Run("real_clock_short_interval", func(t *testing.T) {
		t.Parallel()

		calls := 0
		res := Until(context.Background(), clockwork.NewRealClock(), Every(time.Millisecond, 3), func() bool {
			calls++
			return false
		})

		assert.Equal(t, 3, res.Attempts)
		assert.Equal(t, 3, calls)
	})
}
