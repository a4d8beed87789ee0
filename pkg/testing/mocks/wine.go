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

package mocks

import (
	"context"
	"fmt"

	"github.com/ZaparooProject/wineuplay/pkg/wine"
	"github.com/stretchr/testify/mock"
)

// MockWineLayer is a testify mock for wine.Layer.
type MockWineLayer struct {
	mock.Mock
}

var _ wine.Layer = (*MockWineLayer)(nil)

func (m *MockWineLayer) Executable() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockWineLayer) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockWineLayer) CreatePrefix(ctx context.Context, path string, arch wine.Arch) error {
	args := m.Called(ctx, path, arch)
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock wine create prefix failed: %w", err)
	}
	return nil
}

func (m *MockWineLayer) Exec(ctx context.Context, req wine.ExecRequest) error {
	args := m.Called(ctx, req)
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock wine exec failed: %w", err)
	}
	return nil
}

func (m *MockWineLayer) Winetricks(ctx context.Context, prefix string, arch wine.Arch, verbs ...string) error {
	args := m.Called(ctx, prefix, arch, verbs)
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock winetricks failed: %w", err)
	}
	return nil
}

func (m *MockWineLayer) Shutdown(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock wine shutdown failed: %w", err)
	}
	return nil
}

func (m *MockWineLayer) Env(prefix string, arch wine.Arch) map[string]string {
	args := m.Called(prefix, arch)
	env, _ := args.Get(0).(map[string]string)
	return env
}

// MockProcess is a testify mock for the launcher process.
type MockProcess struct {
	mock.Mock
}

func (m *MockProcess) IsRunning(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockProcess) Kill(ctx context.Context) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock process kill failed: %w", err)
	}
	return nil
}

// MockTransfer is a testify mock for file downloads.
type MockTransfer struct {
	mock.Mock
}

func (m *MockTransfer) Fetch(ctx context.Context, url, dest string) error {
	args := m.Called(ctx, url, dest)
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock transfer failed: %w", err)
	}
	return nil
}
