/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package config

import (
	"strings"

	"github.com/daeuniverse/adg-upstream/common"
	"github.com/daeuniverse/adg-upstream/common/consts"
)

type patch func(params *Config) error

var patches = []patch{
	patchRuleLists,
	patchMatchAll,
	patchLogLevel,
	patchAssetDirs,
}

// patchRuleLists lowercases list names; list files are named in lowercase.
func patchRuleLists(params *Config) error {
	for i := range params.Rules {
		params.Rules[i].Lists = common.Deduplicate(common.LowerTrimmed(params.Rules[i].Lists))
		params.Rules[i].Upstream = strings.TrimSpace(params.Rules[i].Upstream)
	}
	return nil
}

func patchMatchAll(params *Config) error {
	params.Format.MatchAll = strings.TrimSpace(params.Format.MatchAll)
	if params.Format.MatchAll == "" {
		params.Format.MatchAll = consts.MatchAllSentinel
	}
	return nil
}

func patchLogLevel(params *Config) error {
	params.Global.LogLevel = strings.ToLower(strings.TrimSpace(params.Global.LogLevel))
	return nil
}

func patchAssetDirs(params *Config) error {
	params.Source.AssetDirs = common.Deduplicate(params.Source.AssetDirs)
	return nil
}
