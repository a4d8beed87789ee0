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

// Package installer fetches and unpacks the redistributables and launcher
// installers the Uplay runner needs.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	partSuffix   = ".part"
	defaultRetry = 3
)

var ErrIncompleteDownload = errors.New("download incomplete")

var timeoutTr = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ResponseHeaderTimeout: 30 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
}

// HTTPTransfer downloads files over HTTP, retrying transient failures.
type HTTPTransfer struct {
	client *retryablehttp.Client
	fs     afero.Fs
}

// NewHTTPTransfer creates a transfer writing to fs.
func NewHTTPTransfer(fs afero.Fs) *HTTPTransfer {
	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{Transport: timeoutTr}
	client.RetryMax = defaultRetry
	client.Logger = zerologLeveled{}
	return NewHTTPTransferWithClient(fs, client)
}

// NewHTTPTransferWithClient creates a transfer using a custom client.
// This is useful for testing.
func NewHTTPTransferWithClient(fs afero.Fs, client *retryablehttp.Client) *HTTPTransfer {
	return &HTTPTransfer{client: client, fs: fs}
}

// Fetch downloads url to dest. The body is written to dest+".part" and only
// renamed into place once fully received, so dest never holds a partial
// file.
func (t *HTTPTransfer) Fetch(ctx context.Context, url, dest string) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	log.Info().Str("url", url).Str("dest", dest).Msg("downloading")
	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("error getting url: %w", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			log.Error().Err(err).Msg("closing body")
		}
	}(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("invalid status code: %d", resp.StatusCode)
	}

	if err := t.fs.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return fmt.Errorf("error creating download dir: %w", err)
	}

	tempPath := dest + partSuffix
	file, err := t.fs.Create(tempPath)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	written, copyErr := io.Copy(file, resp.Body)
	closeErr := file.Close()

	switch {
	case copyErr != nil:
		t.removePartial(tempPath)
		return fmt.Errorf("error downloading file: %w", copyErr)
	case resp.ContentLength > 0 && written != resp.ContentLength:
		t.removePartial(tempPath)
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrIncompleteDownload, resp.ContentLength, written)
	case closeErr != nil:
		t.removePartial(tempPath)
		return fmt.Errorf("error closing file: %w", closeErr)
	}

	if err := t.fs.Rename(tempPath, dest); err != nil {
		t.removePartial(tempPath)
		return fmt.Errorf("error renaming temp file: %w", err)
	}

	log.Debug().Str("dest", dest).Int64("bytes", written).Msg("download complete")
	return nil
}

func (t *HTTPTransfer) removePartial(path string) {
	if err := t.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msgf("error removing partial download: %s", path)
	}
}

// zerologLeveled routes retryablehttp's logging into zerolog.
type zerologLeveled struct{}

var _ retryablehttp.LeveledLogger = zerologLeveled{}

func (zerologLeveled) Error(msg string, keysAndValues ...any) {
	logKV(log.Error(), msg, keysAndValues)
}

func (zerologLeveled) Warn(msg string, keysAndValues ...any) {
	logKV(log.Warn(), msg, keysAndValues)
}

func (zerologLeveled) Info(msg string, keysAndValues ...any) {
	logKV(log.Debug(), msg, keysAndValues)
}

func (zerologLeveled) Debug(msg string, keysAndValues ...any) {
	logKV(log.Trace(), msg, keysAndValues)
}

func logKV(e *zerolog.Event, msg string, keysAndValues []any) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		e = e.Interface(key, keysAndValues[i+1])
	}
	e.Msg(msg)
}
