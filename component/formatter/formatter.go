/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

// Package formatter renders resolver buckets as AdGuard Home
// upstream_dns_file lines.
package formatter

import (
	"fmt"
	"os"
	"strings"

	"github.com/daeuniverse/adg-upstream/common/consts"
	"github.com/daeuniverse/adg-upstream/component/aggregator"
)

type Options struct {
	// BatchSize is the maximum number of domains per line. 1 writes one
	// line per domain.
	BatchSize int
	// MatchAll is the sentinel pattern of the fallback line. Empty means
	// consts.MatchAllSentinel.
	MatchAll string
	// Fallback, if set, is routed every domain no other line matches.
	Fallback string
	// SeparateBuckets puts an empty line after the lines of every bucket.
	SeparateBuckets bool
}

func (o *Options) check() error {
	if o.BatchSize < 1 {
		return fmt.Errorf("batch size must be at least 1, got %v", o.BatchSize)
	}
	switch o.MatchAll {
	case "":
		o.MatchAll = consts.MatchAllSentinel
	case consts.MatchAllSentinel, consts.MatchAllDotSentinel:
	default:
		return fmt.Errorf("unsupported match-all sentinel: %q", o.MatchAll)
	}
	return nil
}

// Format returns the rule lines of buckets in bucket order. Domains of a
// bucket are sorted and grouped into lines of at most BatchSize domains:
// "[/a.com/b.com/]resolver". Empty buckets produce no line. The fallback
// line, if any, comes last.
func Format(buckets *aggregator.Buckets, opts Options) ([]string, error) {
	if err := opts.check(); err != nil {
		return nil, err
	}
	var lines []string
	for _, bucket := range buckets.List() {
		domains := bucket.Domains.Sorted()
		if len(domains) == 0 {
			continue
		}
		for i := 0; i < len(domains); i += opts.BatchSize {
			end := i + opts.BatchSize
			if end > len(domains) {
				end = len(domains)
			}
			lines = append(lines, Line(domains[i:end], bucket.Resolver))
		}
		if opts.SeparateBuckets {
			lines = append(lines, "")
		}
	}
	if opts.Fallback != "" {
		lines = append(lines, opts.MatchAll+opts.Fallback)
	}
	return lines, nil
}

// Line renders one rule line routing domains to resolver.
func Line(domains []string, resolver string) string {
	var b strings.Builder
	b.WriteString("[/")
	for _, d := range domains {
		b.WriteString(d)
		b.WriteByte('/')
	}
	b.WriteByte(']')
	b.WriteString(resolver)
	return b.String()
}

// CountRules counts the lines that are neither empty nor comments.
func CountRules(lines []string) int {
	var n int
	for _, l := range lines {
		if l == "" || consts.IsCommentLine(l) {
			continue
		}
		n++
	}
	return n
}

// WriteFile writes header and lines to path, one per line, with a newline
// after the last one.
func WriteFile(path string, header []string, lines []string) error {
	var b strings.Builder
	for _, l := range header {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write %v: %w", path, err)
	}
	return nil
}
