// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package hostname

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/debtools/baseline"
	"github.com/debtools/baseline/bind"
	"github.com/debtools/baseline/hostsfile"
	"github.com/debtools/baseline/log"
	"github.com/debtools/baseline/log/stdlog"
	"github.com/debtools/baseline/runctx"
)

const hostsPath = "/etc/hosts"

type command struct {
	set       string
	fqdn      string
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

	if err := baseline.RequireRoot(); err != nil {
		return err
	}

	g := runctx.NewGroup(func(ctx context.Context) error {
		return c.run(ctx, logger)
	})
	return g.Run()
}

func (c *command) run(ctx context.Context, logger *stdlog.Logger) error {
	if c.set != "" {
		logger.Infof("setting hostname to %s", c.set)
		out, err := exec.CommandContext(ctx, "hostnamectl", "set-hostname", c.set).CombinedOutput()
		if err != nil {
			return fmt.Errorf("hostnamectl set-hostname: %w: %s", err, out)
		}
	}

	name, err := os.Hostname()
	if err != nil {
		return fmt.Errorf("read hostname: %w", err)
	}
	logger.Infof("hostname is %s", name)

	if aliases, err := hostsfile.LocalhostAliases(); err == nil {
		logger.Debugf("current loopback names: %s", strings.Join(aliases, " "))
	}

	for _, h := range c.names(name) {
		changed, err := hostsfile.EnsureHostname(hostsPath, h)
		if err != nil {
			return baseline.Fatal(fmt.Errorf("update %s: %w", hostsPath, err))
		}
		if changed {
			logger.Infof("mapped %s to %s in %s", h, hostsfile.LoopbackHostAddr, hostsPath)
		} else {
			logger.Infof("%s already maps %s", hostsPath, h)
		}
	}

	// Re-read the file, do not trust the write path.
	for _, h := range c.names(name) {
		ok, err := hostsfile.Resolves(hostsPath, h)
		if err != nil {
			return fmt.Errorf("verify %s: %w", hostsPath, err)
		}
		if !ok {
			return fmt.Errorf("%s still does not resolve %s locally", hostsPath, h)
		}
	}
	logger.Infof("hostname resolves locally")
	return nil
}

func (c *command) names(hostname string) []string {
	names := []string{hostname}
	if c.fqdn != "" && c.fqdn != hostname {
		names = append(names, c.fqdn)
	}
	return names
}

func Command() *cobra.Command {
	c := command{
		logConfig: log.DefaultConfig(),
	}

	cmd := &cobra.Command{
		Use:   "hostname [--set <name>] [flags]",
		Short: "Make the machine's hostname resolve locally",
		Long:  long,
		RunE:  c.runE,
	}

	fs := cmd.Flags()
	fs.StringVar(&c.set, "set", c.set, "<name>"+
		"New hostname to set via hostnamectl before repairing the hosts file. ")
	fs.StringVar(&c.fqdn, "fqdn", c.fqdn, "<name>"+
		"Fully qualified name to map alongside the short hostname. ")
	bind.LogConfig(fs, c.logConfig)

	bind.AutoMarkFlagFilename(cmd)

	return cmd
}

const long = `Make the machine's hostname resolve locally.

A hostname missing from /etc/hosts breaks sudo, apt and anything else that
resolves the local name before the network is up. The command maps the
hostname to ` + hostsfile.LoopbackHostAddr + ` the way the Debian installer
does, atomically and idempotently, then verifies by re-parsing the file.
`
