// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package ipv6

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/debtools/baseline"
	"github.com/debtools/baseline/bind"
	"github.com/debtools/baseline/log"
	"github.com/debtools/baseline/log/stdlog"
	"github.com/debtools/baseline/runctx"
	"github.com/debtools/baseline/sysctl"
	"github.com/debtools/baseline/utils/osfile"
)

type command struct {
	enable    bool
	disable   bool
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

	disabled, err := sysctl.IPv6Disabled(sysctl.ProcIPv6Disabled)
	if err != nil {
		return fmt.Errorf("read IPv6 state: %w", err)
	}
	logger.Infof("IPv6 is currently %s", state(disabled))

	if !c.enable && !c.disable {
		return nil
	}

	if err := baseline.RequireRoot(); err != nil {
		return err
	}

	g := runctx.NewGroup(func(ctx context.Context) error {
		return c.apply(ctx, logger)
	})
	return g.Run()
}

func (c *command) apply(ctx context.Context, logger *stdlog.Logger) error {
	doc := sysctl.RenderIPv6(c.disable)
	if err := osfile.WriteAtomic(sysctl.DropInPath, doc, 0o644); err != nil {
		return baseline.Fatal(fmt.Errorf("write sysctl drop-in: %w", err))
	}
	logger.Infof("wrote %s", sysctl.DropInPath)

	if err := sysctl.Apply(ctx); err != nil {
		return err
	}

	disabled, err := sysctl.IPv6Disabled(sysctl.ProcIPv6Disabled)
	if err != nil {
		return fmt.Errorf("verify IPv6 state: %w", err)
	}
	if disabled != c.disable {
		return fmt.Errorf("IPv6 is still %s after apply", state(disabled))
	}
	logger.Infof("IPv6 is now %s", state(disabled))
	return nil
}

func state(disabled bool) string {
	if disabled {
		return "disabled"
	}
	return "enabled"
}

func Command() *cobra.Command {
	c := command{
		logConfig: log.DefaultConfig(),
	}

	cmd := &cobra.Command{
		Use:   "ipv6 [--enable|--disable] [flags]",
		Short: "Show or toggle the kernel IPv6 stack",
		Long:  long,
		RunE:  c.runE,
	}

	fs := cmd.Flags()
	fs.BoolVar(&c.enable, "enable", c.enable,
		"Enable IPv6 on all interfaces. ")
	fs.BoolVar(&c.disable, "disable", c.disable,
		"Disable IPv6 on all interfaces. ")
	bind.LogConfig(fs, c.logConfig)

	cmd.MarkFlagsMutuallyExclusive("enable", "disable")

	bind.AutoMarkFlagFilename(cmd)

	return cmd
}

const long = `Show or toggle the kernel IPv6 stack.

Without flags the command only reports the live state read from procfs.
With --enable or --disable it writes a sysctl drop-in, reloads sysctl
configuration and verifies the live state changed. The drop-in keeps the
setting across reboots.
`
