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

// Package helpers contains shared fixtures for tests: mock constructors
// with permissive defaults and Wine prefix builders on afero filesystems.
package helpers

import (
	"github.com/ZaparooProject/wineuplay/pkg/testing/mocks"
	"github.com/stretchr/testify/mock"
)

// NewMockCommandExecutor creates a MockCommandExecutor that succeeds by default.
// Override specific commands in tests that need to verify exact behavior:
//
//	cmd := helpers.NewMockCommandExecutor()
//	cmd.ExpectedCalls = nil
//	cmd.On("RunWithOptions", mock.Anything, mock.Anything, "wine", []string{"wineboot", "-i"}).Return(nil)
func NewMockCommandExecutor() *mocks.MockCommandExecutor {
	cmd := &mocks.MockCommandExecutor{}
	cmd.On("Run", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(nil).Maybe()
	cmd.On("Output", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return([]byte{}, nil).Maybe()
	cmd.On("Start", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(nil).Maybe()
	cmd.On(
		"RunWithOptions", mock.Anything, mock.Anything, mock.AnythingOfType("string"), mock.Anything,
	).Return(nil).Maybe()
	cmd.On(
		"StartWithOptions", mock.Anything, mock.Anything, mock.AnythingOfType("string"), mock.Anything,
	).Return(nil).Maybe()
	return cmd
}
