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

package installer

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var ErrUnsafeArchivePath = errors.New("archive entry escapes destination")

// ExtractTarGz unpacks a gzip compressed tarball into destDir. Only regular
// files and directories are extracted; entries that would land outside
// destDir are rejected.
func ExtractTarGz(fs afero.Fs, archive, destDir string) error {
	f, err := fs.Open(archive)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to read gzip stream: %w", err)
	}
	defer func() { _ = gz.Close() }()

	root := filepath.Clean(destDir)
	if err := fs.MkdirAll(root, 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", root, err)
	}

	tr := tar.NewReader(gz)
	count := 0
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read archive: %w", err)
		}

		target := filepath.Join(root, filepath.FromSlash(hdr.Name))
		if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
			return fmt.Errorf("%w: %s", ErrUnsafeArchivePath, hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := fs.MkdirAll(target, 0o750); err != nil {
				return fmt.Errorf("failed to create %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := writeEntry(fs, target, tr); err != nil {
				return err
			}
			count++
		default:
			log.Debug().Str("entry", hdr.Name).Msg("skipping non-regular archive entry")
		}
	}

	log.Debug().Str("archive", archive).Int("files", count).Msg("extracted archive")
	return nil
}

func writeEntry(fs afero.Fs, target string, r io.Reader) error {
	if err := fs.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
	}
	out, err := fs.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	//nolint:gosec // archives come from a fixed, trusted URL
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", target, err)
	}
	return nil
}
