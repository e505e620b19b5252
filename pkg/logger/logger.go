/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) since 2023, v2rayA Organization <team@v2raya.org>
 */

package logger

import (
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger returns a logger at level. Unknown levels fall back to info.
// Logs go to logOpts when it is not nil, and to stderr otherwise.
func NewLogger(level string, disableTimestamp bool, logOpts *lumberjack.Logger) *logrus.Logger {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	formatter := &prefixed.TextFormatter{
		DisableTimestamp: disableTimestamp,
		FullTimestamp:    true,
		TimestampFormat:  "Jan 02 15:04:05",
	}
	if logOpts != nil {
		log.SetOutput(logOpts)
		formatter.DisableColors = true
	}
	log.SetFormatter(formatter)

	return log
}
