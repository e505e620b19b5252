/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package common

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ReportMemory logs the peak resident memory of the process at debug level.
// It does nothing where /proc is unavailable.
func ReportMemory(log *logrus.Logger, tag string) {
	if !log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	b, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(os.Getpid()), "status"))
	if err != nil {
		return
	}
	str := strings.TrimSpace(string(b))
	_, after, _ := strings.Cut(str, "VmHWM:")
	usage, _, _ := strings.Cut(after, "\n")
	log.Debugln(tag+": memory usage:", strings.TrimSpace(usage))
}
