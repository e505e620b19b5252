/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package common

import (
	"strings"
	"unicode/utf8"

	"github.com/miekg/dns"
	"golang.org/x/exp/slices"
	"golang.org/x/net/idna"
)

// DomainSet is a set of normalized domains.
type DomainSet map[string]struct{}

func NewDomainSet(domains ...string) DomainSet {
	s := make(DomainSet, len(domains))
	for _, d := range domains {
		s.Add(d)
	}
	return s
}

func (s DomainSet) Add(domain string) {
	s[domain] = struct{}{}
}

func (s DomainSet) Has(domain string) bool {
	_, ok := s[domain]
	return ok
}

func (s DomainSet) Len() int {
	return len(s)
}

// Merge adds every domain of other into s.
func (s DomainSet) Merge(other DomainSet) {
	for d := range other {
		s[d] = struct{}{}
	}
}

// Sorted returns the domains in lexicographic order.
func (s DomainSet) Sorted() []string {
	list := make([]string, 0, len(s))
	for d := range s {
		list = append(list, d)
	}
	slices.Sort(list)
	return list
}

// NormalizeDomain lowercases raw and checks it is usable as a rule domain:
// non-empty, containing a label separator, not starting with one and not a
// wildcard. Non-ASCII names are converted to punycode.
func NormalizeDomain(raw string) (string, bool) {
	d := strings.TrimSpace(raw)
	if d == "" || !strings.Contains(d, ".") || strings.HasPrefix(d, ".") {
		return "", false
	}
	if strings.Contains(d, "*") {
		return "", false
	}
	if isASCII(d) {
		d = strings.ToLower(d)
	} else {
		ascii, err := idna.Lookup.ToASCII(d)
		if err != nil {
			return "", false
		}
		d = strings.ToLower(ascii)
	}
	if _, ok := dns.IsDomainName(d); !ok {
		return "", false
	}
	return d, true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
