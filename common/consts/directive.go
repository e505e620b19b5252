/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package consts

import "strings"

type DirectiveKind uint8

const (
	DirectiveKind_Plain DirectiveKind = iota
	DirectiveKind_Full
	DirectiveKind_Domain
	DirectiveKind_Include
	DirectiveKind_Regexp
	DirectiveKind_Keyword
	DirectiveKind_Attr
)

// DirectivePrefixes lists every prefixed kind. Lines without one of these
// prefixes are plain host lines.
var DirectivePrefixes = []DirectiveKind{
	DirectiveKind_Domain,
	DirectiveKind_Full,
	DirectiveKind_Regexp,
	DirectiveKind_Keyword,
	DirectiveKind_Attr,
	DirectiveKind_Include,
}

func (k DirectiveKind) String() string {
	switch k {
	case DirectiveKind_Plain:
		return "plain"
	case DirectiveKind_Full:
		return "full"
	case DirectiveKind_Domain:
		return "domain"
	case DirectiveKind_Include:
		return "include"
	case DirectiveKind_Regexp:
		return "regexp"
	case DirectiveKind_Keyword:
		return "keyword"
	case DirectiveKind_Attr:
		return "attr"
	default:
		return "<unknown>"
	}
}

// Prefix returns the line prefix of the kind, e.g. "domain:". Plain has none.
func (k DirectiveKind) Prefix() string {
	if k == DirectiveKind_Plain {
		return ""
	}
	return k.String() + ":"
}

// YieldsDomain reports whether directives of this kind carry a host name.
func (k DirectiveKind) YieldsDomain() bool {
	switch k {
	case DirectiveKind_Plain, DirectiveKind_Full, DirectiveKind_Domain:
		return true
	default:
		return false
	}
}

const (
	QualifierSeparator = "@"
	CommentPrefix      = "#"
)

func IsCommentLine(line string) bool {
	return strings.HasPrefix(line, CommentPrefix)
}
