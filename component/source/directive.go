/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package source

import (
	"bufio"
	"io"
	"strings"

	"github.com/daeuniverse/adg-upstream/common"
	"github.com/daeuniverse/adg-upstream/common/consts"
)

// Directive is one parsed line of a domain-list-community list.
type Directive struct {
	Kind    consts.DirectiveKind
	Payload string
	// Qualifiers holds "@"-prefixed attributes such as "@cn" or "@!cn".
	Qualifiers []string
}

// ParseDirective parses a list line. It returns false for empty lines,
// comments and unprefixed lines that cannot be host names.
//
// The value is the first whitespace separated field after the prefix.
// Attributes may follow either after whitespace ("foo.com @cn") or glued to
// the value ("foo.com@cn"). A field starting with "#" ends the line.
func ParseDirective(line string) (Directive, bool) {
	line = strings.TrimSpace(line)
	if line == "" || consts.IsCommentLine(line) {
		return Directive{}, false
	}

	d := Directive{Kind: consts.DirectiveKind_Plain}
	rest := line
	for _, kind := range consts.DirectivePrefixes {
		if strings.HasPrefix(line, kind.Prefix()) {
			d.Kind = kind
			rest = line[len(kind.Prefix()):]
			break
		}
	}
	if d.Kind == consts.DirectiveKind_Plain && !strings.Contains(line, ".") {
		return Directive{}, false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return d, true
	}
	value := fields[0]
	if i := strings.Index(value, consts.QualifierSeparator); i >= 0 {
		d.Qualifiers = append(d.Qualifiers, splitQualifiers(value[i:])...)
		value = value[:i]
	}
	d.Payload = value
	for _, f := range fields[1:] {
		if strings.HasPrefix(f, consts.CommentPrefix) {
			break
		}
		if strings.HasPrefix(f, consts.QualifierSeparator) {
			d.Qualifiers = append(d.Qualifiers, splitQualifiers(f)...)
		}
	}
	return d, true
}

func splitQualifiers(s string) (qualifiers []string) {
	for _, q := range strings.Split(s, consts.QualifierSeparator) {
		if q == "" {
			continue
		}
		qualifiers = append(qualifiers, consts.QualifierSeparator+q)
	}
	return qualifiers
}

// Domain returns the domain carried by the directive. Only full, domain and
// plain directives carry one. A qualified directive is dropped unless
// keepQualified is set, in which case its unconditional part is kept.
func (d Directive) Domain(keepQualified bool) (string, bool) {
	if !d.Kind.YieldsDomain() {
		return "", false
	}
	if len(d.Qualifiers) > 0 && !keepQualified {
		return "", false
	}
	return common.NormalizeDomain(d.Payload)
}

// ParseList collects the domains of every line of r.
func ParseList(r io.Reader, keepQualified bool) common.DomainSet {
	set := common.NewDomainSet()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		d, ok := ParseDirective(scanner.Text())
		if !ok {
			continue
		}
		if domain, ok := d.Domain(keepQualified); ok {
			set.Add(domain)
		}
	}
	return set
}
