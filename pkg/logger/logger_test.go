/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) since 2023, v2rayA Organization <team@v2raya.org>
 */

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestLogger(t *testing.T) {
	var logOpts *lumberjack.Logger
	log := NewLogger("debug", false, logOpts)
	require.Equal(t, logrus.DebugLevel, log.Level)
	log.Info("Hi there!")

	require.Equal(t, logrus.InfoLevel, NewLogger("chatty", true, nil).Level)
}

func TestLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adg-upstream.log")
	logOpts := &lumberjack.Logger{Filename: path, MaxSize: 1}
	defer logOpts.Close()

	log := NewLogger("info", true, logOpts)
	log.Info("written to file")
	log.Debug("dropped")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "written to file")
	require.NotContains(t, string(b), "dropped")
}
