/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package config

import (
	"fmt"

	"github.com/daeuniverse/adg-upstream/common/consts"
	"github.com/sirupsen/logrus"
)

// Check validates values that cannot be expressed by tags.
func (c *Config) Check() error {
	if _, err := logrus.ParseLevel(c.Global.LogLevel); err != nil {
		return fmt.Errorf("global.log_level: %w", err)
	}

	switch c.Source.Kind {
	case consts.SourceKind_Plaintext, consts.SourceKind_Archive, consts.SourceKind_Container:
	default:
		return fmt.Errorf("source.kind: unknown source kind %q", c.Source.Kind)
	}
	switch c.Source.ContainerLayout {
	case consts.ContainerLayout_Flat, consts.ContainerLayout_GeoSite:
	default:
		return fmt.Errorf("source.container_layout: unknown layout %q", c.Source.ContainerLayout)
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("source.timeout must be positive")
	}
	if c.Source.Retries < 0 {
		return fmt.Errorf("source.retries must not be negative")
	}

	switch c.Aggregate.Exclusion {
	case consts.ExclusionMode_All, consts.ExclusionMode_CatchAll, consts.ExclusionMode_None:
	default:
		return fmt.Errorf("aggregate.exclusion: unknown mode %q", c.Aggregate.Exclusion)
	}
	switch c.Aggregate.Collapse {
	case consts.CollapseMode_None, consts.CollapseMode_TwoLabel, consts.CollapseMode_PublicSuffix:
	default:
		return fmt.Errorf("aggregate.collapse: unknown mode %q", c.Aggregate.Collapse)
	}

	if c.Format.BatchSize < 1 {
		return fmt.Errorf("format.batch_size must be at least 1, got %v", c.Format.BatchSize)
	}
	switch c.Format.MatchAll {
	case consts.MatchAllSentinel, consts.MatchAllDotSentinel:
	default:
		return fmt.Errorf("format.match_all: must be %q or %q, got %q", consts.MatchAllSentinel, consts.MatchAllDotSentinel, c.Format.MatchAll)
	}
	if c.Format.Fallback != "" {
		if _, ok := c.UpstreamAddress(c.Format.Fallback); !ok {
			return fmt.Errorf("format.fallback: unknown upstream %q", c.Format.Fallback)
		}
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path is empty")
	}

	for name, addr := range c.Upstream {
		if addr == "" {
			return fmt.Errorf("upstream.%v: empty address", name)
		}
	}
	for i, rule := range c.Rules {
		if len(rule.Lists) == 0 {
			return fmt.Errorf("rules[%v]: no list", i)
		}
		if _, ok := c.UpstreamAddress(rule.Upstream); !ok {
			return fmt.Errorf("rules[%v]: unknown upstream %q", i, rule.Upstream)
		}
	}
	return nil
}
