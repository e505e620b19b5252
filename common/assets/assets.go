/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	"github.com/daeuniverse/adg-upstream/common/consts"
	"github.com/sirupsen/logrus"
)

type LocationFinder struct {
	externDirs []string
}

func NewLocationFinder(externDirPath []string) *LocationFinder {
	return &LocationFinder{
		externDirs: externDirPath,
	}
}

// SearchDirs returns the directories searched for assets, in order.
func (c *LocationFinder) SearchDirs() []string {
	var searchDirs []string
	if location := os.Getenv(consts.AssetLocationEnv); location != "" {
		searchDirs = append(searchDirs, location)
	}
	if runtime.GOOS != "windows" {
		dataDirs := append([]string{xdg.DataHome}, xdg.DataDirs...)
		for _, dir := range dataDirs {
			searchDirs = append(searchDirs, filepath.Join(dir, consts.AssetDirName))
		}
	}
	searchDirs = append(searchDirs, c.externDirs...)
	return searchDirs
}

// GetLocationAsset resolves filename. A path that exists as given is
// returned untouched; otherwise the base name is looked up in SearchDirs.
func (c *LocationFinder) GetLocationAsset(log *logrus.Logger, filename string) (path string, err error) {
	if _, err = os.Stat(filename); err == nil {
		return filename, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	if filepath.IsAbs(filename) {
		return "", fmt.Errorf("%v: %w", filename, os.ErrNotExist)
	}

	searchDirs := c.SearchDirs()
	log.Debugf(`Search "%v" in [%v]`, filename, strings.Join(searchDirs, ", "))
	for _, searchDir := range searchDirs {
		searchPath := filepath.Join(searchDir, filename)
		if _, err = os.Stat(searchPath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", err
		}
		log.Debugf(`Found "%v" at %v`, filename, searchPath)
		return searchPath, nil
	}
	return "", fmt.Errorf("%v: %w in [%v]", filename, os.ErrNotExist, strings.Join(searchDirs, ", "))
}
