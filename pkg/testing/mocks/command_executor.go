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

// Package mocks holds testify mocks for the collaborator interfaces used
// across the module.
package mocks

import (
	"context"

	"github.com/ZaparooProject/wineuplay/pkg/helpers/command"
	"github.com/stretchr/testify/mock"
)

// MockCommandExecutor is a testify mock for command.Executor.
// Variadic args are recorded as a single []string argument.
//
// Example:
//
//	cmd := &MockCommandExecutor{}
//	cmd.On("RunWithOptions", mock.Anything, mock.Anything, "wineserver", []string{"-k"}).Return(nil)
type MockCommandExecutor struct {
	mock.Mock
}

var _ command.Executor = (*MockCommandExecutor)(nil)

// Run mocks command.Executor.Run.
func (m *MockCommandExecutor) Run(ctx context.Context, name string, args ...string) error {
	called := m.Called(ctx, name, args)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return called.Error(0)
}

// Output mocks command.Executor.Output.
func (m *MockCommandExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	called := m.Called(ctx, name, args)
	out, _ := called.Get(0).([]byte)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return out, called.Error(1)
}

// Start mocks command.Executor.Start.
func (m *MockCommandExecutor) Start(ctx context.Context, name string, args ...string) error {
	called := m.Called(ctx, name, args)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return called.Error(0)
}

// RunWithOptions mocks command.Executor.RunWithOptions.
func (m *MockCommandExecutor) RunWithOptions(
	ctx context.Context,
	opts command.ExecOptions,
	name string,
	args ...string,
) error {
	called := m.Called(ctx, opts, name, args)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return called.Error(0)
}

// StartWithOptions mocks command.Executor.StartWithOptions.
func (m *MockCommandExecutor) StartWithOptions(
	ctx context.Context,
	opts command.ExecOptions,
	name string,
	args ...string,
) error {
	called := m.Called(ctx, opts, name, args)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return called.Error(0)
}
