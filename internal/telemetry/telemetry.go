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

// Package telemetry provides opt-in error reporting via Sentry.
// All PII is stripped before transmission.
package telemetry

import (
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"sync"
	"time"

	"github.com/ZaparooProject/wineuplay/pkg/helpers"
	"github.com/getsentry/sentry-go"
	sentryzerolog "github.com/getsentry/sentry-go/zerolog"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	flushTimeout = 2 * time.Second
	sendTimeout  = 30 * time.Second
)

// ErrMissingDSN is returned when reporting is enabled without a DSN.
var ErrMissingDSN = errors.New("error reporting enabled but no sentry dsn configured")

var (
	enabled      bool
	sentryWriter *sentryzerolog.Writer
	closeOnce    sync.Once

	// Patterns to strip usernames from file paths
	homePathRe    = regexp.MustCompile(`(?i)/home/[^/]+/`)
	usersPathRe   = regexp.MustCompile(`(?i)/Users/[^/<][^/]*/`)
	windowsUserRe = regexp.MustCompile(`(?i)[a-zA-Z]:\\Users\\[^\\]+\\`)
	wineUserRe    = regexp.MustCompile(`(?i)drive_c/users/[^/]+/`)
)

// Options configures Init.
type Options struct {
	DSN     string
	Version string
	// Arch is the default Wine architecture, sent as a tag.
	Arch    string
	Enabled bool
}

// Init initializes Sentry error reporting with zerolog integration.
// If reporting is not enabled, telemetry remains disabled.
func Init(opts Options) error {
	if !opts.Enabled {
		log.Debug().Msg("error reporting disabled")
		return nil
	}
	if opts.DSN == "" {
		return ErrMissingDSN
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.Logger = nil
	httpClient := rc.StandardClient()
	httpClient.Timeout = sendTimeout

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              opts.DSN,
		Release:          "wineuplay@" + opts.Version,
		AttachStacktrace: true,
		// Privacy: explicitly disable PII collection
		SendDefaultPII: false,
		ServerName:     "",
		MaxBreadcrumbs: 0,
		HTTPClient:     httpClient,
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			return sanitizeEvent(event)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize sentry: %w", err)
	}

	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("os", runtime.GOOS)
		scope.SetTag("arch", runtime.GOARCH)
		if opts.Arch != "" {
			scope.SetTag("wine_arch", opts.Arch)
		}
	})

	sentryWriter, err = sentryzerolog.NewWithHub(sentry.CurrentHub(), sentryzerolog.Options{
		Levels:          []zerolog.Level{zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel},
		FlushTimeout:    flushTimeout,
		WithBreadcrumbs: false,
	})
	if err != nil {
		return fmt.Errorf("failed to create sentry zerolog writer: %w", err)
	}

	log.Logger = log.Output(zerolog.MultiLevelWriter(
		helpers.LogWriter(),
		sentryWriter,
	)).With().Timestamp().Caller().Logger()

	enabled = true
	log.Info().Msg("error reporting enabled")
	return nil
}

// Close flushes pending events and shuts down Sentry.
// Safe to call multiple times.
func Close() {
	if !enabled {
		return
	}
	closeOnce.Do(func() {
		_ = sentryWriter.Close()
		sentry.Flush(flushTimeout)
	})
}

// Flush ensures all pending events are sent to Sentry.
// Call this before os.Exit to ensure error events are transmitted.
func Flush() {
	if !enabled {
		return
	}
	sentry.Flush(flushTimeout)
}

// Enabled returns whether telemetry is enabled.
func Enabled() bool {
	return enabled
}

// sanitizeEvent removes PII from Sentry events before sending.
func sanitizeEvent(event *sentry.Event) *sentry.Event {
	// SDK may populate the hostname despite ServerName: ""
	event.ServerName = ""

	for i := range event.Exception {
		event.Exception[i].Value = sanitizePath(event.Exception[i].Value)
		if event.Exception[i].Stacktrace != nil {
			for j := range event.Exception[i].Stacktrace.Frames {
				frame := &event.Exception[i].Stacktrace.Frames[j]
				frame.AbsPath = sanitizePath(frame.AbsPath)
				frame.Filename = sanitizePath(frame.Filename)
			}
		}
	}

	event.Message = sanitizePath(event.Message)

	for k, v := range event.Extra {
		if s, ok := v.(string); ok {
			event.Extra[k] = sanitizePath(s)
		}
	}

	return event
}

// sanitizePath removes usernames from file paths, including the user
// directories inside Wine prefixes.
func sanitizePath(path string) string {
	if path == "" {
		return path
	}

	result := wineUserRe.ReplaceAllString(path, "drive_c/users/<user>/")
	result = homePathRe.ReplaceAllString(result, "/home/<user>/")
	result = usersPathRe.ReplaceAllString(result, "/Users/<user>/")
	result = windowsUserRe.ReplaceAllString(result, "C:\\Users\\<user>\\")

	return result
}
