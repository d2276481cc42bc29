// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package mirrors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/debtools/baseline"
	"github.com/debtools/baseline/apt"
	"github.com/debtools/baseline/bind"
	"github.com/debtools/baseline/log"
	"github.com/debtools/baseline/log/stdlog"
	"github.com/debtools/baseline/osrelease"
	"github.com/debtools/baseline/runctx"
	"github.com/debtools/baseline/utils/osfile"
)

const (
	legacyListPath = "/etc/apt/sources.list"
	deb822PathFmt  = "/etc/apt/sources.list.d/%s.sources"
)

type command struct {
	mirror    string
	protocol  string
	deb822    bool
	apply     bool
	logConfig *log.Config
}

func (c *command) runE(cmd *cobra.Command, _ []string) (cmdErr error) {
	if f := c.logConfig.File; f != nil {
		defer f.Close()
	}
	logger := stdlog.New(c.logConfig)

	defer func() {
		if cmdErr != nil {
			logger.Errorf("fatal error exiting: %s", cmdErr)
			cmd.SilenceErrors = true
		}
	}()

	if c.protocol != "https" && c.protocol != "http" {
		return fmt.Errorf("unsupported protocol %q, expected https or http", c.protocol)
	}

	info, err := osrelease.Detect()
	if err != nil {
		return baseline.Fatalf("detect OS release: %s", err)
	}
	if !info.Supported() {
		return baseline.Fatalf("unsupported OS %q, this tool targets Debian and Ubuntu", info.ID)
	}
	logger.Infof("detected %s", info)

	url, err := c.mirrorURL(info.ID)
	if err != nil {
		return err
	}
	logger.Infof("using mirror %s", url)

	cfg := apt.SourcesConfig{
		OS:     info,
		URL:    url,
		DEB822: c.deb822,
	}
	doc := cfg.Render()

	if !c.apply {
		cmd.OutOrStdout().Write(doc)
		logger.Infof("use --apply to install the source list")
		return nil
	}

	if err := baseline.RequireRoot(); err != nil {
		return err
	}

	g := runctx.NewGroup(func(ctx context.Context) error {
		return c.applySources(ctx, logger, doc, info.ID)
	})
	return g.Run()
}

func (c *command) applySources(ctx context.Context, logger *stdlog.Logger, doc []byte, id string) error {
	target := legacyListPath
	if c.deb822 {
		target = fmt.Sprintf(deb822PathFmt, id)
	}

	if err := backup(target, logger); err != nil {
		return err
	}
	// The legacy list shadows a DEB822 file for the same suites, retire
	// it when switching formats.
	if c.deb822 {
		if err := backup(legacyListPath, logger); err != nil {
			return err
		}
		if err := os.Remove(legacyListPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove legacy source list: %w", err)
		}
	}

	if err := osfile.WriteAtomic(target, doc, 0o644); err != nil {
		return baseline.Fatal(fmt.Errorf("write source list: %w", err))
	}
	logger.Infof("wrote %s", target)

	pkg := apt.NewManager(logger.Named("apt"))
	logger.Infof("refreshing package index")
	if err := pkg.Update(ctx); err != nil {
		return fmt.Errorf("package index refresh failed, restore the .bak file: %w", err)
	}
	logger.Infof("package index refreshed, mirror is live")
	return nil
}

// backup copies the current file aside with a timestamp suffix. Nothing
// to back up is the normal case on a freshly installed system.
func backup(path string, logger *stdlog.Logger) error {
	current, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	bak := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102-150405"))
	if err := osfile.WriteAtomic(bak, current, 0o644); err != nil {
		return fmt.Errorf("back up %s: %w", path, err)
	}
	logger.Infof("backed up %s to %s", path, bak)
	return nil
}

// mirrorURL resolves the --mirror value, a catalog name or a literal
// URL.
func (c *command) mirrorURL(id string) (string, error) {
	if strings.Contains(c.mirror, "://") {
		return strings.TrimRight(c.mirror, "/"), nil
	}
	m, ok := apt.LookupMirror(c.mirror)
	if !ok {
		names := make([]string, 0, len(apt.Mirrors()))
		for _, m := range apt.Mirrors() {
			names = append(names, m.Name)
		}
		return "", fmt.Errorf("unknown mirror %q, available: %s", c.mirror, strings.Join(names, ", "))
	}
	return m.URL(id, c.protocol)
}

func Command() *cobra.Command {
	c := command{
		mirror:    "official",
		protocol:  "https",
		logConfig: log.DefaultConfig(),
	}

	cmd := &cobra.Command{
		Use:   "mirrors [--mirror <name|URL>] [--apply] [flags]",
		Short: "Reset apt source lists to a known-good mirror",
		Long:  long,
		RunE:  c.runE,
	}

	fs := cmd.Flags()
	fs.StringVarP(&c.mirror, "mirror", "m", c.mirror, "<name|URL>"+
		"Mirror to use, a catalog name or a literal base URL. ")
	fs.StringVar(&c.protocol, "protocol", c.protocol, "<https|http>"+
		"Scheme used for catalog mirrors. ")
	fs.BoolVar(&c.deb822, "deb822", c.deb822,
		"Write the structured .sources format instead of the legacy one-line format. ")
	fs.BoolVar(&c.apply, "apply", c.apply,
		"Back up the current source lists, install the generated one and refresh the package index. "+
			"Without this flag the generated list is printed and nothing is changed. ")
	bind.LogConfig(fs, c.logConfig)

	bind.AutoMarkFlagFilename(cmd)

	return cmd
}

const long = `Reset apt source lists to a known-good mirror.

The generated list covers the base suite plus updates, backports and
security for the detected release. Without --apply the list is printed to
stdout for review. With --apply the current lists are backed up with a
timestamp suffix, the new list is installed atomically and the package
index is refreshed to prove the mirror works.
`
