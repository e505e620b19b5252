/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package cmd

import (
	"github.com/daeuniverse/adg-upstream/config"
	"github.com/spf13/cobra"
)

var (
	Version = "unknown"
	rootCmd = &cobra.Command{
		Use:   "adg-upstream [flags] [command [argument ...]]",
		Short: "adg-upstream generates AdGuard Home upstream DNS files from domain lists.",
		Long: `adg-upstream downloads v2fly domain-list-community lists, routes the domains
of every list to a DNS resolver and writes an AdGuard Home upstream_dns_file.`,
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	config.Version = Version
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
}

// readConfig loads cfgFile, or the built-in config if it is empty.
func readConfig(cfgFile string) (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}
