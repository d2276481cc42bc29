// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package templates

import (
	"strings"

	"github.com/spf13/pflag"
)

type FlagGroup struct {
	Name string
	// Prefix lists the flag name prefixes that select flags into the
	// group. An empty prefix matches everything, place it last.
	Prefix []string
}

type FlagGroups []FlagGroup

// SplitFlagSet splits a flag set into one flag set per group based on
// flag name prefixes. If multiple groups match a flag, the flag goes to
// the first matching group. The returned flag sets are ordered like the
// groups.
func SplitFlagSet(g FlagGroups, f *pflag.FlagSet) []*pflag.FlagSet {
	result := make([]*pflag.FlagSet, len(g))
	for i, p := range g {
		result[i] = pflag.NewFlagSet(p.Name, pflag.ExitOnError)
	}

	f.VisitAll(func(f *pflag.Flag) {
		for i := range g {
			if matchesGroup(f.Name, g[i]) {
				result[i].AddFlag(f)
				return
			}
		}
	})
	return result
}

func matchesGroup(name string, g FlagGroup) bool {
	for _, p := range g.Prefix {
		if p == "" || name == p || strings.HasPrefix(name, p+"-") {
			return true
		}
	}
	return false
}
