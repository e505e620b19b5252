/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

// Package geodata decodes binary domain classification containers.
//
// Two layouts are understood. The flat layout is a sequence of tagged
// records where field 1 names the current classification and field 2
// carries a domain record of that classification. The geosite layout is the
// v2ray geosite.dat GeoSiteList message.
package geodata

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/daeuniverse/adg-upstream/common"
	"google.golang.org/protobuf/encoding/protowire"
)

var (
	ErrMalformedContainer = errors.New("malformed container")
)

const (
	fieldTag    protowire.Number = 1
	fieldDomain protowire.Number = 2
)

// interest matches tag names case-insensitively against the requested
// classifications and maps them back to the requested spelling. An empty
// interest accepts every tag under its lowercase name.
type interest map[string]string

func newInterest(classifications []string) interest {
	in := make(interest, len(classifications))
	for _, c := range classifications {
		in[strings.ToLower(c)] = c
	}
	return in
}

func (in interest) lookup(tag string) (string, bool) {
	key := strings.ToLower(tag)
	if len(in) == 0 {
		return key, true
	}
	c, ok := in[key]
	return c, ok
}

// DecodeContainer decodes the flat layout and returns the domains of the
// requested classifications. Every classification of the container is
// returned when none is requested.
//
// A length prefix running past the end of data fails the whole decode with
// ErrMalformedContainer. Unknown fields are skipped; an unsupported wire
// type, or a truncated scalar, ends decoding and keeps what was decoded so
// far.
func DecodeContainer(data []byte, classifications ...string) (map[string]common.DomainSet, error) {
	in := newInterest(classifications)
	result := make(map[string]common.DomainSet)

	var (
		current   string
		isCurrent bool
		offset    int
	)
	for len(data) > 0 {
		header, n := protowire.ConsumeVarint(data)
		if n < 0 {
			break
		}
		data = data[n:]
		offset += n
		num, typ := protowire.Number(header>>3), protowire.Type(header&7)

		switch typ {
		case protowire.VarintType:
			if _, n = protowire.ConsumeVarint(data); n < 0 {
				return result, nil
			}
		case protowire.Fixed64Type:
			if n = 8; len(data) < n {
				return result, nil
			}
		case protowire.Fixed32Type:
			if n = 4; len(data) < n {
				return result, nil
			}
		case protowire.BytesType:
			var payload []byte
			payload, n = protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("%w: field %v at offset %v: %v", ErrMalformedContainer, num, offset, protowire.ParseError(n))
			}
			switch num {
			case fieldTag:
				current, isCurrent = in.lookup(string(payload))
				if isCurrent && result[current] == nil {
					result[current] = common.NewDomainSet()
				}
			case fieldDomain:
				if !isCurrent {
					break
				}
				if domain, ok := decodeDomainRecord(payload); ok {
					result[current].Add(domain)
				}
			}
		default:
			return result, nil
		}
		data = data[n:]
		offset += n
	}
	return result, nil
}

// decodeDomainRecord skips the type discriminant and the kind varint of a
// nested domain record; the remaining bytes are the domain.
func decodeDomainRecord(b []byte) (string, bool) {
	for i := 0; i < 2; i++ {
		_, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return "", false
		}
		b = b[n:]
	}
	if !utf8.Valid(b) {
		return "", false
	}
	return common.NormalizeDomain(string(b))
}

// CountDomains sums the sizes of all sets in m.
func CountDomains(m map[string]common.DomainSet) int {
	var total int
	for _, s := range m {
		total += s.Len()
	}
	return total
}
