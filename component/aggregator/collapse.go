/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package aggregator

import (
	"fmt"
	"strings"

	"github.com/daeuniverse/adg-upstream/common/consts"
	"github.com/miekg/dns"
	"golang.org/x/net/publicsuffix"
)

// Collapser rewrites a domain before it is placed into a bucket.
type Collapser interface {
	Collapse(domain string) string
}

func NewCollapser(mode consts.CollapseMode) (Collapser, error) {
	switch mode {
	case consts.CollapseMode_None, "":
		return &NoneCollapser{}, nil
	case consts.CollapseMode_TwoLabel:
		return &TwoLabelCollapser{}, nil
	case consts.CollapseMode_PublicSuffix:
		return &PublicSuffixCollapser{}, nil
	default:
		return nil, fmt.Errorf("unknown collapse mode: %v", mode)
	}
}

type NoneCollapser struct {
}

func (c *NoneCollapser) Collapse(domain string) string {
	return domain
}

// TwoLabelCollapser keeps the last two labels. "a.b.example.co.uk" becomes
// "co.uk", which is wrong for multi-label public suffixes.
type TwoLabelCollapser struct {
}

func (c *TwoLabelCollapser) Collapse(domain string) string {
	labels := dns.SplitDomainName(domain)
	if len(labels) <= 2 {
		return domain
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

// PublicSuffixCollapser keeps the registrable domain (eTLD+1) according to
// the public suffix list. Domains it cannot reduce are kept as is.
type PublicSuffixCollapser struct {
}

func (c *PublicSuffixCollapser) Collapse(domain string) string {
	root, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return domain
	}
	return root
}
