// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package templates renders cobra help output with flags grouped by
// topic and environment variable names appended, in the manner of
// kubectl.
package templates

import (
	"fmt"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
)

func getFlagFormat(f *flag.Flag) string {
	if f.Shorthand != "" {
		return "    -%s, --%s%s%s%s\n\t%s%s"
	}
	return "    %s--%s%s%s%s\n\t%s%s"
}

// SetUsageFunc replaces the command's usage output with one that prints
// the flags grouped according to groups.
func SetUsageFunc(cmd *cobra.Command, groups FlagGroups, envPrefix string) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		w := c.OutOrStderr()

		fmt.Fprintf(w, "Usage:\n  %s\n", c.UseLine())

		if cmds := c.Commands(); len(cmds) > 0 {
			fmt.Fprintf(w, "\nCommands:\n")
			for _, sub := range cmds {
				if !sub.IsAvailableCommand() {
					continue
				}
				fmt.Fprintf(w, "  %-12s %s\n", sub.Name(), sub.Short)
			}
		}

		p := NewHelpFlagPrinter(w, envPrefix, 80)
		for i, fs := range SplitFlagSet(groups, c.Flags()) {
			if !fs.HasAvailableFlags() {
				continue
			}
			fmt.Fprintf(w, "\n%s:\n\n", groups[i].Name)
			fs.VisitAll(func(f *flag.Flag) {
				if f.Hidden {
					return
				}
				p.PrintHelpFlag(f)
			})
		}

		if c.HasAvailableSubCommands() {
			fmt.Fprintf(w, "Use \"%s [command] --help\" for more information about a command.\n", c.CommandPath())
		}
		return nil
	})
}
