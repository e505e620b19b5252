/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package formatter

import (
	"fmt"
)

type HeaderEntry struct {
	Classification string
	Resolver       string
	Domains        int
}

// HeaderInfo is the content of the optional comment block on top of the
// rule file. AdGuard Home ignores it.
type HeaderInfo struct {
	Updated   string
	Entries   []HeaderEntry
	Total     int
	RuleLines int
	// FallbackHint is the resolver users are asked to configure as their
	// last plain upstream when the file carries no fallback line.
	FallbackHint string
}

func Header(info HeaderInfo) []string {
	header := []string{
		"# AdGuard Home upstream DNS file generated by adg-upstream",
		fmt.Sprintf("# Updated: %v", info.Updated),
	}
	for _, e := range info.Entries {
		header = append(header, fmt.Sprintf("# %v: %v domains -> %v", e.Classification, e.Domains, e.Resolver))
	}
	if info.FallbackHint != "" {
		header = append(header, fmt.Sprintf("# Fallback: add %v as the last upstream of AdGuard Home", info.FallbackHint))
	}
	header = append(header,
		fmt.Sprintf("# Total domains: %v", info.Total),
		fmt.Sprintf("# Total rule lines: %v", info.RuleLines),
		"",
	)
	return header
}
