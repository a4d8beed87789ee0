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
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ZaparooProject/wineuplay/pkg/helpers"
	"github.com/ZaparooProject/wineuplay/pkg/options"
	testhelpers "github.com/ZaparooProject/wineuplay/pkg/testing/helpers"
	"github.com/ZaparooProject/wineuplay/pkg/testing/mocks"
	"github.com/ZaparooProject/wineuplay/pkg/wine"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	prefix64 = "/data/runners/wineuplay/prefix64"
	prefix32 = "/data/runners/wineuplay/prefix"

	x86Exe = "drive_c/Program Files (x86)/Ubisoft/Ubisoft Game Launcher/upc.exe"
	x64Exe = "drive_c/Program Files/Ubisoft/Ubisoft Game Launcher/upc.exe"
)

func fallbackPrefix() string {
	return helpers.ExpandUser(FallbackPrefix)
}

func runnerOpts() options.RunnerOptions {
	return options.RunnerOptions{
		DefaultWin32Prefix: prefix32,
		DefaultWin64Prefix: prefix64,
	}
}

func newLayer() *mocks.MockWineLayer {
	layer := &mocks.MockWineLayer{}
	layer.On("Executable").Return("wine").Maybe()
	layer.On("Available").Return(true).Maybe()
	layer.On("Env", mock.Anything, mock.Anything).Return(map[string]string{"WINEDEBUG": "-all"}).Maybe()
	return layer
}

func newResolver(fs afero.Fs, layer wine.Layer, opts options.RunnerOptions) *PrefixResolver {
	return NewPrefixResolver(fs, layer, opts, wine.ArchAuto)
}

func newLocator(fs afero.Fs, opts options.RunnerOptions) *Locator {
	return NewLocator(fs, newResolver(fs, newLayer(), opts), opts)
}

func touch(t *testing.T, h *testhelpers.FSHelper, path string) {
	t.Helper()
	require.NoError(t, h.CreateFile(path, "MZ"))
}

// openCommandHive registers the uplay:// handler pointing at winPath.
func openCommandHive(t *testing.T, h *testhelpers.FSHelper, prefix, winPath string) {
	t.Helper()
	require.NoError(t, h.WriteHive(prefix, UserHive, "win64", testhelpers.HiveKey{
		Path:   openCommandKey,
		Values: map[string]string{"": testhelpers.RegString(`"` + winPath + `" "%1"`)},
	}))
}

// recordingFs remembers every path that was stat'ed or opened.
type recordingFs struct {
	afero.Fs
	paths []string
	mu    sync.Mutex
}

func (r *recordingFs) record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, filepath.Clean(name))
}

func (r *recordingFs) Stat(name string) (os.FileInfo, error) {
	r.record(name)
	//nolint:wrapcheck // passthrough
	return r.Fs.Stat(name)
}

func (r *recordingFs) Open(name string) (afero.File, error) {
	r.record(name)
	//nolint:wrapcheck // passthrough
	return r.Fs.Open(name)
}

func (r *recordingFs) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

// fakeProcess reports running until stopAfter liveness checks have been
// made. A negative stopAfter never stops; Kill may change it.
type fakeProcess struct {
	onKill    func(p *fakeProcess)
	checks    int
	stopAfter int
	kills     int
	mu        sync.Mutex
}

func (p *fakeProcess) IsRunning(context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.checks++
	return p.stopAfter < 0 || p.checks <= p.stopAfter
}

func (p *fakeProcess) Kill(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kills++
	if p.onKill != nil {
		p.onKill(p)
	}
	return nil
}

func (p *fakeProcess) counts() (checks, kills int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.checks, p.kills
}

// drive advances the fake clock one interval at a time until done closes.
func drive(t *testing.T, clock *clockwork.FakeClock, done <-chan struct{}) {
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
			clock.Advance(PollInterval)
		}
	}
}
