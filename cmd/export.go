/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package cmd

import (
	"fmt"
	"os"

	"github.com/daeuniverse/adg-upstream/config"
	"github.com/spf13/cobra"
)

var (
	exportCmd = &cobra.Command{
		Use: "export",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	exportConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the built-in config as annotated YAML",
		Run: func(cmd *cobra.Command, args []string) {
			b, err := config.Marshal(config.Default())
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			fmt.Print(string(b))
		},
	}
	exportOutlineCmd = &cobra.Command{
		Use:   "outline",
		Short: "Print the config structure as JSON",
		Run: func(cmd *cobra.Command, args []string) {
			s, err := config.ExportOutlineJson(Version)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			fmt.Println(s)
		},
	}
)

func init() {
	exportCmd.AddCommand(exportConfigCmd)
	exportCmd.AddCommand(exportOutlineCmd)
}
