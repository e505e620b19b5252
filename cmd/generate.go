/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/daeuniverse/adg-upstream/common/consts"
	"github.com/daeuniverse/adg-upstream/config"
	"github.com/daeuniverse/adg-upstream/control"
	"github.com/daeuniverse/adg-upstream/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

func init() {
	generateCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file, built-in config if empty")
	generateCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output file (default \""+consts.DefaultOutput+"\")")
	generateCmd.PersistentFlags().StringVarP(&containerFile, "input", "i", "", "read lists from this binary container instead of downloading them")
	generateCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "", "", "override global.log_level")
	generateCmd.PersistentFlags().BoolVarP(&disableTimestamp, "disable-timestamp", "", false, "disable timestamp")
}

var (
	cfgFile          string
	outputFile       string
	containerFile    string
	logLevel         string
	disableTimestamp bool

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate the upstream DNS file",
		Run: func(cmd *cobra.Command, args []string) {
			conf, err := readConfig(cfgFile)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"err": err,
				}).Fatalln("Failed to read config")
			}
			applyFlags(conf)

			log, closeLog := newLogger(conf)
			defer closeLog()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := Generate(ctx, log, conf); err != nil {
				log.Errorln(err)
				closeLog()
				os.Exit(1)
			}
		},
	}
)

func applyFlags(conf *config.Config) {
	if outputFile != "" {
		conf.Output.Path = outputFile
	}
	if containerFile != "" {
		conf.Source.Kind = consts.SourceKind_Container
		conf.Source.Container = containerFile
	}
	if logLevel != "" {
		conf.Global.LogLevel = logLevel
	}
	if disableTimestamp {
		conf.Global.DisableTimestamp = true
	}
}

func newLogger(conf *config.Config) (log *logrus.Logger, closeLog func()) {
	var logOpts *lumberjack.Logger
	if conf.Global.LogFile != "" {
		logOpts = &lumberjack.Logger{
			Filename:   conf.Global.LogFile,
			MaxSize:    conf.Global.LogMaxSize,
			MaxBackups: conf.Global.LogMaxBackups,
		}
	}
	log = logger.NewLogger(conf.Global.LogLevel, conf.Global.DisableTimestamp, logOpts)
	logrus.SetLevel(log.Level)
	return log, func() {
		if logOpts != nil {
			_ = logOpts.Close()
		}
	}
}

func Generate(ctx context.Context, log *logrus.Logger, conf *config.Config) error {
	g, err := control.New(log, conf)
	if err != nil {
		return err
	}
	_, err = g.Run(ctx)
	return err
}
