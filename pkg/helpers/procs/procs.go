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

// Package procs finds and kills host processes whose name or command line
// matches a pattern. Wine processes show up on the host under their Windows
// executable name, so this is how a running launcher is detected.
package procs

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/process"
)

// Lister returns the processes currently running on the host.
type Lister func(ctx context.Context) ([]*process.Process, error)

// Matcher matches processes by a regular expression applied to the process
// name and, failing that, the full command line.
type Matcher struct {
	re   *regexp.Regexp
	list Lister
}

// NewMatcher compiles pattern into a Matcher backed by gopsutil.
func NewMatcher(pattern string) (*Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid process pattern %q: %w", pattern, err)
	}
	return &Matcher{re: re, list: process.ProcessesWithContext}, nil
}

// MustMatcher is NewMatcher for patterns known at compile time.
func MustMatcher(pattern string) *Matcher {
	m, err := NewMatcher(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// Pattern returns the source of the match expression.
func (m *Matcher) Pattern() string {
	return m.re.String()
}

// Matches reports whether a process name or command line matches.
func (m *Matcher) Matches(name, cmdline string) bool {
	if name != "" && m.re.MatchString(name) {
		return true
	}
	return cmdline != "" && m.re.MatchString(cmdline)
}

// Find returns all matching processes.
func (m *Matcher) Find(ctx context.Context) ([]*process.Process, error) {
	all, err := m.list(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	var found []*process.Process
	for _, p := range all {
		name, _ := p.NameWithContext(ctx)
		cmdline, _ := p.CmdlineWithContext(ctx)
		if m.Matches(name, cmdline) {
			found = append(found, p)
		}
	}
	return found, nil
}

// PIDs returns the pids of all matching processes.
func (m *Matcher) PIDs(ctx context.Context) ([]int32, error) {
	found, err := m.Find(ctx)
	if err != nil {
		return nil, err
	}
	pids := make([]int32, 0, len(found))
	for _, p := range found {
		pids = append(pids, p.Pid)
	}
	return pids, nil
}

// IsRunning reports whether at least one matching process exists. A failure
// to list processes is logged and reported as not running.
func (m *Matcher) IsRunning(ctx context.Context) bool {
	found, err := m.Find(ctx)
	if err != nil {
		log.Warn().Err(err).Str("pattern", m.Pattern()).Msg("process lookup failed")
		return false
	}
	return len(found) > 0
}

// Kill sends SIGKILL to every matching process. Processes that exit before
// the signal is delivered are not an error.
func (m *Matcher) Kill(ctx context.Context) error {
	found, err := m.Find(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, p := range found {
		log.Info().Int32("pid", p.Pid).Str("pattern", m.Pattern()).Msg("killing process")
		if err := p.KillWithContext(ctx); err != nil {
			if running, _ := p.IsRunningWithContext(ctx); !running {
				continue
			}
			errs = append(errs, fmt.Errorf("kill pid %d: %w", p.Pid, err))
		}
	}
	return errors.Join(errs...)
}
