// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package baseline

import (
	"github.com/spf13/cobra"

	"github.com/debtools/baseline/bind"
	"github.com/debtools/baseline/command/dns"
	"github.com/debtools/baseline/command/hostname"
	"github.com/debtools/baseline/command/ipv6"
	"github.com/debtools/baseline/command/mirrors"
	"github.com/debtools/baseline/command/version"
	"github.com/debtools/baseline/utils/cobrautil"
	"github.com/debtools/baseline/utils/cobrautil/templates"
)

const (
	EnvPrefix          = "BASELINE"
	ConfigFileFlagName = "config-file"
)

func FlagGroups() templates.FlagGroups {
	return templates.FlagGroups{
		{
			Name: "DNS options",
			Prefix: []string{
				"select",
				"custom",
				"ipv6",
				"force",
				"dry-run",
			},
		},
		{
			Name: "Mirror options",
			Prefix: []string{
				"mirror",
				"protocol",
				"deb822",
				"apply",
			},
		},
		{
			Name: "Hostname options",
			Prefix: []string{
				"set",
				"fqdn",
			},
		},
		{
			Name: "IPv6 options",
			Prefix: []string{
				"enable",
				"disable",
			},
		},
		{
			Name:   "Logging options",
			Prefix: []string{"log"},
		},
		{
			Name: "Options",
			Prefix: []string{
				"config-file",
				"",
			},
		},
	}
}

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Debian/Ubuntu server baseline configuration tool",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cobrautil.BindAll(cmd, EnvPrefix, ConfigFileFlagName)
		},
	}
	bind.ConfigFile(cmd.PersistentFlags(), new(string))

	cmd.AddCommand(
		dns.Command(),
		mirrors.Command(),
		hostname.Command(),
		ipv6.Command(),
		version.Command(),
	)

	cobrautil.NoHelpSubcommand(cmd)
	templates.SetUsageFunc(cmd, FlagGroups(), EnvPrefix)
	for _, sub := range cmd.Commands() {
		if sub.Long == "" {
			cobrautil.DefaultLong(sub)
		}
		templates.SetUsageFunc(sub, FlagGroups(), EnvPrefix)
	}

	// Add config-file command to all commands.
	cobrautil.AddConfigFileForEachCommand(cmd, FlagGroups(), ConfigFileFlagName)

	return cmd
}
