// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package dns

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/netip"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/goleak"

	"github.com/debtools/baseline"
	"github.com/debtools/baseline/apt"
	"github.com/debtools/baseline/bind"
	"github.com/debtools/baseline/dnsprobe"
	"github.com/debtools/baseline/internal/version"
	"github.com/debtools/baseline/log"
	"github.com/debtools/baseline/log/stdlog"
	"github.com/debtools/baseline/osrelease"
	"github.com/debtools/baseline/runctx"
	"github.com/debtools/baseline/systemd"
	"github.com/debtools/baseline/utils/cobrautil"
)

type command struct {
	selection     string
	customIPv4    []netip.Addr
	customIPv6    []netip.Addr
	customTLSName string
	ipv6          bool
	force         bool
	dryRun        bool
	goleak        bool
	logConfig     *log.Config
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

	logger.Infof("baseline %s (%s)", version.Version, version.Commit)

	if cfg, err := (cobrautil.FlagsDescriber{
		Format:          cobrautil.Plain,
		ShowChangedOnly: true,
	}).DescribeFlags(cmd.Flags()); err != nil {
		return err
	} else if len(cfg) > 0 {
		logger.Debugf("configuration\n%s", cfg)
	}

	if err := baseline.RequireRoot(); err != nil {
		return err
	}

	info, err := osrelease.Detect()
	if err != nil {
		return baseline.Fatalf("detect OS release: %s", err)
	}
	if !info.Supported() {
		return baseline.Fatalf("unsupported OS %q, this tool targets Debian and Ubuntu", info.ID)
	}
	logger.Infof("detected %s", info)

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	input := c.selection
	if input == "" {
		input = promptSelection(in, out)
	}

	var custom *baseline.Provider
	if baseline.RequestsCustom(input) {
		custom, err = c.customProvider(in, out)
		if err != nil {
			return err
		}
	}

	sel := baseline.ParseSelection(input, custom, c.ipv6)

	paths := baseline.DefaultPaths()
	svc := systemd.NewManager(logger.Named("systemd"))
	pkg := apt.NewManager(logger.Named("apt"))
	resolved := systemd.Resolved{}
	probe := dnsprobe.New(baseline.StubListenerAddr)

	pipeline := &baseline.DNSPipeline{
		Remover: &baseline.ConflictRemover{
			Paths:            paths,
			Pkg:              pkg,
			LegacyResolvconf: info.LegacyResolvconf(),
			Log:              logger.Named("conflicts"),
		},
		Configurator: &baseline.DaemonConfigurator{
			Paths: paths,
			Svc:   svc,
			Pkg:   pkg,
			Ready: resolved.Ping,
			Flush: resolved.FlushCaches,
			Log:   logger.Named("resolved"),
		},
		Verifier: &baseline.Verifier{
			Svc: svc,
			Status: func(ctx context.Context) error {
				mode, err := resolved.Status(ctx)
				if err != nil {
					return err
				}
				logger.Named("verify").Debugf("daemon reports DNSSEC mode %q", mode)
				return nil
			},
			Lookup: func(ctx context.Context) error {
				return probe.Lookup(ctx, dnsprobe.WellKnownName)
			},
			Log: logger.Named("verify"),
		},
		Paths: paths,
		Svc:   svc,
		Confirm: func(prompt string) bool {
			return promptYesNo(in, out, prompt)
		},
		Force:  c.force,
		DryRun: c.dryRun,
		Log:    logger.Named("dns"),
	}

	if c.goleak {
		defer func() {
			if err := goleak.Find(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "goleak: %s", err)
			}
		}()
	}

	g := runctx.NewGroup(func(ctx context.Context) error {
		return pipeline.Run(ctx, sel)
	})
	return g.Run()
}

// customProvider builds the user supplied catalog entry from flags,
// prompting for any part not preseeded. An empty IPv4 endpoint list
// aborts the run, there is nothing sensible to configure without it.
func (c *command) customProvider(in *bufio.Reader, out io.Writer) (*baseline.Provider, error) {
	ipv4 := c.customIPv4
	if len(ipv4) == 0 {
		line := promptLine(in, out, "Custom provider IPv4 endpoints (space separated): ")
		addrs, err := baseline.ParseAddrList(line)
		if err != nil {
			return nil, baseline.Fatalf("parse custom IPv4 endpoints: %s", err)
		}
		ipv4 = addrs
	}
	if len(ipv4) == 0 {
		return nil, baseline.Fatalf("custom provider requires at least one IPv4 endpoint")
	}

	ipv6 := c.customIPv6
	if c.ipv6 && len(ipv6) == 0 {
		line := promptLine(in, out, "Custom provider IPv6 endpoints (space separated, empty to skip): ")
		addrs, err := baseline.ParseAddrList(line)
		if err != nil {
			return nil, baseline.Fatalf("parse custom IPv6 endpoints: %s", err)
		}
		ipv6 = addrs
	}

	tlsName := c.customTLSName
	if tlsName == "" {
		tlsName = promptLine(in, out, "Custom provider DNS-over-TLS name (empty disables encrypted transport): ")
	}

	return &baseline.Provider{
		Name:    "Custom",
		IPv4:    ipv4,
		IPv6:    ipv6,
		TLSName: tlsName,
	}, nil
}

func promptSelection(in *bufio.Reader, out io.Writer) string {
	fmt.Fprintln(out, "Available DNS providers:")
	for i, p := range baseline.Catalog() {
		fmt.Fprintf(out, "  %d. %-12s %s\n", i+1, p.Name, strings.Join(p.Endpoints(), " "))
	}
	fmt.Fprintf(out, "  %d. %-12s user supplied endpoints\n", baseline.CustomIndex(), "Custom")
	return promptLine(in, out, "Select providers, space separated, first is primary (empty for defaults): ")
}

func promptLine(in *bufio.Reader, out io.Writer, prompt string) string {
	fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

func promptYesNo(in *bufio.Reader, out io.Writer, prompt string) bool {
	answer := promptLine(in, out, prompt+" [y/N]: ")
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func Command() *cobra.Command {
	c := command{
		logConfig: log.DefaultConfig(),
	}

	cmd := &cobra.Command{
		Use:   "dns [--select <indices>] [--ipv6] [flags]",
		Short: "Make systemd-resolved the sole DNS authority",
		Long:  long,
		RunE:  c.runE,
	}

	fs := cmd.Flags()
	bind.DNSSelection(fs, &c.selection)
	bind.CustomProvider(fs, &c.customIPv4, &c.customIPv6, &c.customTLSName)
	bind.IPv6(fs, &c.ipv6)
	bind.Force(fs, &c.force)
	bind.DryRun(fs, &c.dryRun)
	bind.LogConfig(fs, c.logConfig)

	fs.BoolVar(&c.goleak, "goleak", false, "enable goleak")
	if err := fs.MarkHidden("goleak"); err != nil {
		panic(err)
	}

	bind.AutoMarkFlagFilename(cmd)

	return cmd
}

const long = `Make systemd-resolved the sole DNS authority on a Debian or Ubuntu server.

The command checks the current state first and does nothing when the system
is already configured. Otherwise it disables every alternate source of
resolver configuration (dhclient overrides, hook scripts, legacy interface
stanzas), installs and configures systemd-resolved with the selected
providers, links /etc/resolv.conf to the stub resolver file, and verifies
the end state with a live DNS lookup.

Every step is idempotent, an interrupted run is recovered by running again.
`
