/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/daeuniverse/adg-upstream/common"
	"github.com/daeuniverse/adg-upstream/common/consts"
	"github.com/daeuniverse/adg-upstream/component/aggregator"
	"github.com/daeuniverse/adg-upstream/component/source"
	"github.com/stretchr/testify/require"
)

func buildBuckets(t *testing.T, rules []aggregator.Rule, lists map[string]common.DomainSet) *aggregator.Buckets {
	a, err := aggregator.New(aggregator.Plan{Rules: rules})
	require.NoError(t, err)
	return a.Build(lists)
}

func TestFormat_PlaintextScenario(t *testing.T) {
	set := source.ParseList(strings.NewReader("domain:qq.com\ndomain:weixin.qq.com\n"), true)
	buckets := buildBuckets(t,
		[]aggregator.Rule{{Classification: "tencent", Resolver: "119.29.29.29"}},
		map[string]common.DomainSet{"tencent": set},
	)

	lines, err := Format(buckets, Options{BatchSize: 1})
	require.NoError(t, err)
	require.Equal(t, []string{
		"[/qq.com/]119.29.29.29",
		"[/weixin.qq.com/]119.29.29.29",
	}, lines)
}

func TestFormat_QualifiedLineKeepsDomain(t *testing.T) {
	// "@!cn" is cut off and the domain is kept unless keep_qualified is
	// disabled.
	set := source.ParseList(strings.NewReader("domain:foo.com@!cn\n"), true)
	require.Equal(t, common.NewDomainSet("foo.com"), set)
	require.Zero(t, source.ParseList(strings.NewReader("domain:foo.com@!cn\n"), false).Len())
}

func TestFormat_Batches(t *testing.T) {
	const batchSize = 3
	buckets := buildBuckets(t,
		[]aggregator.Rule{{Classification: "alibaba", Resolver: "https://dns.alidns.com/dns-query"}},
		map[string]common.DomainSet{"alibaba": common.NewDomainSet("d.com", "a.com", "c.com", "b.com")},
	)

	lines, err := Format(buckets, Options{BatchSize: batchSize})
	require.NoError(t, err)
	require.Equal(t, []string{
		"[/a.com/b.com/c.com/]https://dns.alidns.com/dns-query",
		"[/d.com/]https://dns.alidns.com/dns-query",
	}, lines)
}

func TestFormat_RoundTrip(t *testing.T) {
	want := common.NewDomainSet("qq.com", "weixin.qq.com", "gtimg.cn", "wechat.com")
	buckets := buildBuckets(t,
		[]aggregator.Rule{{Classification: "tencent", Resolver: "119.29.29.29"}},
		map[string]common.DomainSet{"tencent": want},
	)
	lines, err := Format(buckets, Options{BatchSize: 1})
	require.NoError(t, err)

	got := common.NewDomainSet()
	for _, l := range lines {
		parts := strings.Split(l, "/")
		require.Len(t, parts, 3)
		got.Add(parts[1])
	}
	require.Equal(t, want, got)
}

func TestFormat_Idempotent(t *testing.T) {
	buckets := buildBuckets(t,
		[]aggregator.Rule{
			{Classification: "tencent", Resolver: "119.29.29.29"},
			{Classification: "alibaba", Resolver: "223.5.5.5"},
		},
		map[string]common.DomainSet{
			"tencent": common.NewDomainSet("qq.com", "wechat.com", "gtimg.cn"),
			"alibaba": common.NewDomainSet("taobao.com", "tmall.com", "alipay.com"),
		},
	)
	first, err := Format(buckets, Options{BatchSize: 2})
	require.NoError(t, err)
	second, err := Format(buckets, Options{BatchSize: 2})
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, []string{
		"[/gtimg.cn/qq.com/]119.29.29.29",
		"[/wechat.com/]119.29.29.29",
		"[/alipay.com/taobao.com/]223.5.5.5",
		"[/tmall.com/]223.5.5.5",
	}, first)
}

func TestFormat_EmptyBucketsAndFallback(t *testing.T) {
	buckets := buildBuckets(t,
		[]aggregator.Rule{
			{Classification: "xiaomi", Resolver: "180.184.1.1"},
			{Classification: "baidu", Resolver: "180.76.76.76"},
		},
		map[string]common.DomainSet{"baidu": common.NewDomainSet("baidu.com")},
	)

	lines, err := Format(buckets, Options{BatchSize: 50})
	require.NoError(t, err)
	require.Equal(t, []string{"[/baidu.com/]180.76.76.76"}, lines)

	lines, err = Format(buckets, Options{BatchSize: 50, Fallback: "202.98.0.68"})
	require.NoError(t, err)
	require.Equal(t, []string{"[/baidu.com/]180.76.76.76", "[//]202.98.0.68"}, lines)

	lines, err = Format(buckets, Options{BatchSize: 50, Fallback: "202.98.0.68", MatchAll: consts.MatchAllDotSentinel, SeparateBuckets: true})
	require.NoError(t, err)
	require.Equal(t, []string{"[/baidu.com/]180.76.76.76", "", "[/./]202.98.0.68"}, lines)
	require.Equal(t, 2, CountRules(lines))
}

func TestFormat_InvalidOptions(t *testing.T) {
	buckets := buildBuckets(t, nil, nil)
	_, err := Format(buckets, Options{BatchSize: 0})
	require.Error(t, err)
	_, err = Format(buckets, Options{BatchSize: 1, MatchAll: "[/*/]"})
	require.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upstream_dns.txt")
	header := Header(HeaderInfo{
		Updated:   "2026-01-02 03:04:05 UTC",
		Entries:   []HeaderEntry{{Classification: "tencent", Resolver: "119.29.29.29", Domains: 2}},
		Total:     2,
		RuleLines: 1,
	})
	require.NoError(t, WriteFile(path, header, []string{"[/qq.com/wechat.com/]119.29.29.29"}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		"# AdGuard Home upstream DNS file generated by adg-upstream",
		"# Updated: 2026-01-02 03:04:05 UTC",
		"# tencent: 2 domains -> 119.29.29.29",
		"# Total domains: 2",
		"# Total rule lines: 1",
		"",
		"[/qq.com/wechat.com/]119.29.29.29",
		"",
	}, "\n"), string(b))
}

func TestWriteFile_NoHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upstream_dns.txt")
	require.NoError(t, WriteFile(path, nil, []string{"[/qq.com/]119.29.29.29"}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[/qq.com/]119.29.29.29\n", string(b))

	require.Error(t, WriteFile(filepath.Join(t.TempDir(), "missing", "out.txt"), nil, nil))
}
