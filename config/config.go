/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package config

import (
	"time"

	"github.com/daeuniverse/adg-upstream/common/consts"
)

var (
	Version string
)

type Global struct {
	LogLevel         string `yaml:"log_level" default:"info"`
	LogFile          string `yaml:"log_file"`
	LogMaxSize       int    `yaml:"log_max_size" default:"10"`
	LogMaxBackups    int    `yaml:"log_max_backups" default:"1"`
	DisableTimestamp bool   `yaml:"disable_timestamp" default:"false"`
}

type Source struct {
	Kind            consts.SourceKind      `yaml:"kind" default:"plaintext"`
	BaseUrl         string                 `yaml:"base_url" default:"https://raw.githubusercontent.com/v2fly/domain-list-community/master/data"`
	ArchiveUrl      string                 `yaml:"archive_url" default:"https://github.com/v2fly/domain-list-community/archive/refs/heads/master.zip"`
	Container       string                 `yaml:"container" default:"geosite.dat"`
	ContainerLayout consts.ContainerLayout `yaml:"container_layout" default:"flat"`
	AssetDirs       []string               `yaml:"asset_dirs"`
	KeepQualified   bool                   `yaml:"keep_qualified" default:"true"`
	Timeout         time.Duration          `yaml:"timeout" default:"30s"`
	Retries         int                    `yaml:"retries" default:"2"`
	UserAgent       string                 `yaml:"user_agent" default:"adg-upstream/1.0"`
}

type Aggregate struct {
	Exclusion consts.ExclusionMode `yaml:"exclusion" default:"all"`
	Collapse  consts.CollapseMode  `yaml:"collapse" default:"none"`
}

type Format struct {
	BatchSize       int    `yaml:"batch_size" default:"1"`
	MatchAll        string `yaml:"match_all" default:"[//]"`
	Fallback        string `yaml:"fallback"`
	FallbackHint    string `yaml:"fallback_hint"`
	Header          bool   `yaml:"header" default:"false"`
	SeparateBuckets bool   `yaml:"separate_buckets" default:"false"`
}

type Output struct {
	Path    string `yaml:"path" default:"upstream_dns.txt"`
	Stats   string `yaml:"stats"`
	Report  string `yaml:"report"`
	Metrics string `yaml:"metrics"`
}

// Rule routes the domains of lists to an upstream. Rules are listed in
// priority order.
type Rule struct {
	Lists    []string `yaml:"lists" required:""`
	Upstream string   `yaml:"upstream" required:""`
	CatchAll bool     `yaml:"catch_all,omitempty"`
}

type Config struct {
	Global    Global            `yaml:"global" desc:"GlobalDesc"`
	Source    Source            `yaml:"source" desc:"SourceDesc"`
	Aggregate Aggregate         `yaml:"aggregate" desc:"AggregateDesc"`
	Format    Format            `yaml:"format" desc:"FormatDesc"`
	Output    Output            `yaml:"output" desc:"OutputDesc"`
	Upstream  map[string]string `yaml:"upstream" required:""`
	Rules     []Rule            `yaml:"rules" required:""`
}

// UpstreamAddress returns the address of the upstream named name.
func (c *Config) UpstreamAddress(name string) (string, bool) {
	addr, ok := c.Upstream[name]
	return addr, ok
}

// Default returns the built-in configuration: plaintext lists routed to the
// public resolvers of their operators, mainland China lists as catch-all.
func Default() *Config {
	conf := &Config{}
	if err := FillDefaults(conf); err != nil {
		panic(err)
	}
	conf.Upstream = map[string]string{
		"tencent":   "119.29.29.29",
		"bytedance": "180.184.1.1",
		"alibaba":   "223.5.5.5",
		"baidu":     "180.76.76.76",
		"xiaomi":    "180.184.1.1",
		"oppo":      "114.114.114.114",
		"apple_cn":  "223.5.5.5",
		"cn":        "202.98.0.68",
	}
	conf.Rules = []Rule{
		{Lists: []string{"tencent"}, Upstream: "tencent"},
		{Lists: []string{"bytedance"}, Upstream: "bytedance"},
		{Lists: []string{"alibaba"}, Upstream: "alibaba"},
		{Lists: []string{"baidu"}, Upstream: "baidu"},
		{Lists: []string{"xiaomi"}, Upstream: "xiaomi"},
		{Lists: []string{"oppo"}, Upstream: "oppo"},
		{Lists: []string{"apple-cn", "apple"}, Upstream: "apple_cn"},
		{Lists: []string{"cn", "geolocation-cn"}, Upstream: "cn", CatchAll: true},
	}
	for _, patch := range patches {
		if err := patch(conf); err != nil {
			panic(err)
		}
	}
	return conf
}
