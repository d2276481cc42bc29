// Copyright 2024-2026 The baseline Authors, all rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bind attaches command line flags to configuration values.
package bind

import (
	"fmt"
	"net/netip"
	"os"
	"path/filepath"

	"github.com/mmatczuk/anyflag"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/debtools/baseline/log"
)

func ConfigFile(fs *pflag.FlagSet, configFile *string) {
	fs.StringVarP(configFile,
		"config-file", "c", *configFile, "<path>"+
			"Configuration file to load options from. "+
			"The supported formats are: JSON, YAML and TOML. "+
			"The file format is determined by the file extension, if not specified the default format is YAML. "+
			"The following precedence order of configuration sources is used: command flags, environment variables, config file, default values. ")
}

func LogConfig(fs *pflag.FlagSet, cfg *log.Config) {
	fs.Var(NewFileFlag(&cfg.File, openFileParser(log.DefaultFileFlags, log.DefaultFileMode)),
		"log-file", "<path>"+
			"Path to the log file, if empty, logs to stdout. ")

	logLevel := []log.Level{
		log.ErrorLevel,
		log.InfoLevel,
		log.DebugLevel,
	}
	fs.Var(anyflag.NewValue[log.Level](cfg.Level, &cfg.Level, anyflag.EnumParser[log.Level](logLevel...)),
		"log-level", "<error|info|debug>"+
			"Log level. ")
}

// DNSSelection binds the provider selection preseed. An empty value
// makes the dns command prompt interactively.
func DNSSelection(fs *pflag.FlagSet, selection *string) {
	fs.StringVarP(selection,
		"select", "s", *selection, "<indices>"+
			"Space separated catalog indices, e.g. \"1 2\". "+
			"The first valid index selects the primary provider, the rest are fallbacks. "+
			"Unknown indices are ignored. "+
			"If empty, the selection is prompted for interactively. ")
}

// CustomProvider binds the custom provider preseed flags. They fill
// the custom catalog entry without interactive prompts.
func CustomProvider(fs *pflag.FlagSet, ipv4, ipv6 *[]netip.Addr, tlsName *string) {
	fs.Var(anyflag.NewSliceValue[netip.Addr](nil, ipv4, netip.ParseAddr),
		"custom-dns", "<ip>"+
			"IPv4 endpoint of the custom DNS provider. "+
			"The flag can be specified multiple times. ")

	fs.Var(anyflag.NewSliceValue[netip.Addr](nil, ipv6, netip.ParseAddr),
		"custom-dns6", "<ip>"+
			"IPv6 endpoint of the custom DNS provider, only used together with --ipv6. "+
			"The flag can be specified multiple times. ")

	fs.StringVar(tlsName,
		"custom-tls-name", *tlsName, "<hostname>"+
			"DNS-over-TLS server identity of the custom DNS provider. "+
			"If empty, encrypted transport is disabled for the whole generated configuration. ")
}

func IPv6(fs *pflag.FlagSet, ipv6 *bool) {
	fs.BoolVar(ipv6,
		"ipv6", *ipv6,
		"Include IPv6 endpoints of the selected providers. ")
}

func Force(fs *pflag.FlagSet, force *bool) {
	fs.BoolVarP(force,
		"force", "f", *force,
		"Reconfigure even when the health check passes, without asking. ")
}

func DryRun(fs *pflag.FlagSet, dryRun *bool) {
	fs.BoolVar(dryRun,
		"dry-run", *dryRun,
		"Stop before mutating the system, after printing the health report and the selection. ")
}

func AutoMarkFlagFilename(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config-file" || f.Name == "log-file" {
			markFlagFilename(cmd, f.Name)
		}
	})
}

func markFlagFilename(cmd *cobra.Command, name string) {
	if err := cmd.MarkFlagFilename(name); err != nil {
		panic(err)
	}
}

func openFileParser(flags int, mode os.FileMode) func(val string) (*os.File, error) {
	return func(val string) (*os.File, error) {
		if val == "" {
			return nil, nil //nolint:nilnil // no file means stdout
		}
		if dir := filepath.Dir(val); dir != "." {
			if err := os.MkdirAll(dir, log.DefaultDirMode); err != nil {
				return nil, fmt.Errorf("create log directory: %w", err)
			}
		}
		return os.OpenFile(val, flags, mode)
	}
}
