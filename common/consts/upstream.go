/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package consts

const (
	// MatchAllSentinel is the canonical "every domain" pattern of an
	// upstream_dns_file line.
	MatchAllSentinel = "[//]"
	// MatchAllDotSentinel is the alternative spelling some deployments use.
	MatchAllDotSentinel = "[/./]"
)

type SourceKind string

const (
	SourceKind_Plaintext SourceKind = "plaintext"
	SourceKind_Archive   SourceKind = "archive"
	SourceKind_Container SourceKind = "container"
)

type ContainerLayout string

const (
	ContainerLayout_Flat    ContainerLayout = "flat"
	ContainerLayout_GeoSite ContainerLayout = "geosite"
)

type ExclusionMode string

const (
	ExclusionMode_All      ExclusionMode = "all"
	ExclusionMode_CatchAll ExclusionMode = "catch_all"
	ExclusionMode_None     ExclusionMode = "none"
)

type CollapseMode string

const (
	CollapseMode_None         CollapseMode = "none"
	CollapseMode_TwoLabel     CollapseMode = "two_label"
	CollapseMode_PublicSuffix CollapseMode = "public_suffix"
)

const (
	DefaultOutput     = "upstream_dns.txt"
	DefaultBaseURL    = "https://raw.githubusercontent.com/v2fly/domain-list-community/master/data"
	DefaultArchiveURL = "https://github.com/v2fly/domain-list-community/archive/refs/heads/master.zip"
	DefaultUserAgent  = "adg-upstream/1.0"
	StatsTimeLayout   = "2006-01-02 15:04:05 UTC"
	AssetDirName      = "adg-upstream"
	AssetLocationEnv  = "ADG_UPSTREAM_LOCATION_ASSET"
	DefaultContainer  = "geosite.dat"
)
