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
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/wineuplay/pkg/wine"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Transfer downloads a URL to a local file.
type Transfer interface {
	Fetch(ctx context.Context, url, dest string) error
}

// Extractor unpacks an archive into a directory.
type Extractor func(archive, destDir string) error

// StepKind classifies install steps.
type StepKind string

const (
	StepDownload   StepKind = "download"
	StepDependency StepKind = "dependency-install"
	StepProduct    StepKind = "product-install"
)

// InstallStep is one entry of the install plan.
type InstallStep struct {
	Kind   StepKind
	Source string
	Target string
	Args   []string
}

// Task is a running install. Wait blocks until it has finished.
type Task struct {
	done chan struct{}
	err  error
}

// Wait returns the error of the first failed step, or nil.
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

// Done is closed when the task has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

var errDXSetupMissing = errors.New("DXSETUP.exe not found in DirectX archive")

// InstallPipeline installs the launcher into the default prefix: DirectX
// 2010, a few winetricks components, then Uplay itself.
type InstallPipeline struct {
	fs       afero.Fs
	transfer Transfer
	extract  Extractor
	layer    wine.Layer
	prefixes *PrefixResolver
	tempDir  string
}

// NewInstallPipeline creates a pipeline downloading into tempDir.
func NewInstallPipeline(
	fs afero.Fs,
	transfer Transfer,
	extract Extractor,
	layer wine.Layer,
	prefixes *PrefixResolver,
	tempDir string,
) *InstallPipeline {
	return &InstallPipeline{
		fs:       fs,
		transfer: transfer,
		extract:  extract,
		layer:    layer,
		prefixes: prefixes,
		tempDir:  tempDir,
	}
}

func (p *InstallPipeline) dxArchive() string {
	return filepath.Join(p.tempDir, dxArchiveName)
}

func (p *InstallPipeline) dxDir() string {
	return filepath.Join(p.tempDir, dxExtractDir)
}

func (p *InstallPipeline) installerPath() string {
	return filepath.Join(p.tempDir, installerName)
}

// Steps returns the install plan in execution order. The completion
// callback is not a step.
func (p *InstallPipeline) Steps() []InstallStep {
	prefix := p.prefixes.DefaultPath(wine.ArchAuto)
	return []InstallStep{
		{Kind: StepDownload, Source: DX2010URL, Target: p.dxArchive()},
		{Kind: StepDownload, Source: InstallerURL, Target: p.installerPath()},
		{Kind: StepDependency, Source: filepath.Join(p.dxDir(), dxSetupName), Target: prefix, Args: []string{dxSilentFlag}},
		{Kind: StepDependency, Source: "winetricks", Target: prefix, Args: append([]string(nil), WinetricksVerbs...)},
		{Kind: StepProduct, Source: p.installerPath(), Target: prefix, Args: []string{installerSilent}},
	}
}

// Install starts the pipeline in the background. Steps run strictly in
// order and the first failure stops the pipeline; onComplete runs only if
// every step succeeded. The error is reported by Task.Wait.
func (p *InstallPipeline) Install(ctx context.Context, onComplete func()) *Task {
	task := &Task{done: make(chan struct{})}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.run(gctx, onComplete)
	})
	go func() {
		task.err = g.Wait()
		close(task.done)
	}()
	return task
}

func (p *InstallPipeline) run(ctx context.Context, onComplete func()) error {
	if err := p.transfer.Fetch(ctx, DX2010URL, p.dxArchive()); err != nil {
		return fmt.Errorf("failed to download DirectX: %w", err)
	}
	if err := p.extract(p.dxArchive(), p.dxDir()); err != nil {
		return fmt.Errorf("failed to extract DirectX: %w", err)
	}
	if err := p.transfer.Fetch(ctx, InstallerURL, p.installerPath()); err != nil {
		return fmt.Errorf("failed to download Uplay installer: %w", err)
	}

	prefix, err := p.prefixes.GetOrCreateDefault(ctx, wine.ArchAuto)
	if err != nil {
		return err
	}

	dxSetup, err := p.findDXSetup()
	if err != nil {
		return err
	}
	log.Info().Str("prefix", prefix.Path).Msg("installing DirectX")
	err = p.layer.Exec(ctx, wine.ExecRequest{
		Prefix:     prefix.Path,
		Arch:       prefix.Arch,
		Executable: dxSetup,
		Args:       []string{dxSilentFlag},
	})
	if err != nil {
		return fmt.Errorf("failed to install DirectX: %w", err)
	}

	if err := p.layer.Winetricks(ctx, prefix.Path, prefix.Arch, WinetricksVerbs...); err != nil {
		return fmt.Errorf("failed to install winetricks components: %w", err)
	}

	log.Info().Str("prefix", prefix.Path).Msg("running Uplay installer")
	err = p.layer.Exec(ctx, wine.ExecRequest{
		Prefix:     prefix.Path,
		Arch:       prefix.Arch,
		Executable: p.installerPath(),
		Args:       []string{installerSilent},
	})
	if err != nil {
		return fmt.Errorf("failed to install Uplay: %w", err)
	}

	if onComplete != nil {
		onComplete()
	}
	return nil
}

// findDXSetup looks for DXSETUP.exe anywhere in the extracted archive,
// ignoring case.
func (p *InstallPipeline) findDXSetup() (string, error) {
	var found string
	err := afero.Walk(p.fs, p.dxDir(), func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.EqualFold(info.Name(), dxSetupName) {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil && !errors.Is(err, filepath.SkipAll) {
		return "", fmt.Errorf("failed to search DirectX archive: %w", err)
	}
	if found == "" {
		return "", errDXSetupMissing
	}
	return found, nil
}
