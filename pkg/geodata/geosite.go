/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package geodata

import (
	"fmt"

	"github.com/daeuniverse/adg-upstream/common"
	"google.golang.org/protobuf/encoding/protowire"
)

// Domain types of v2ray's routercommon.Domain.
const (
	DomainType_Plain  uint64 = 0
	DomainType_Regex  uint64 = 1
	DomainType_Domain uint64 = 2
	DomainType_Full   uint64 = 3
)

const (
	geoSiteListEntry protowire.Number = 1

	geoSiteCountryCode protowire.Number = 1
	geoSiteDomain      protowire.Number = 2

	domainType      protowire.Number = 1
	domainValue     protowire.Number = 2
	domainAttribute protowire.Number = 3
)

type fieldVisitor func(num protowire.Number, typ protowire.Type, value []byte) error

// walkFields visits every field of a message. For length-delimited fields
// value is the payload without its length prefix, otherwise it is the raw
// encoded value.
func walkFields(b []byte, visit fieldVisitor) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrMalformedContainer, protowire.ParseError(n))
		}
		b = b[n:]
		var value []byte
		if typ == protowire.BytesType {
			value, n = protowire.ConsumeBytes(b)
		} else {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n >= 0 {
				value = b[:n]
			}
		}
		if n < 0 {
			return fmt.Errorf("%w: field %v: %v", ErrMalformedContainer, num, protowire.ParseError(n))
		}
		if err := visit(num, typ, value); err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// DecodeGeoSiteList decodes a v2ray geosite.dat file. Full and suffix
// domains are kept; keyword and regex entries are dropped. Entries carrying
// attributes are kept only if keepQualified is set.
func DecodeGeoSiteList(data []byte, keepQualified bool, classifications ...string) (map[string]common.DomainSet, error) {
	in := newInterest(classifications)
	result := make(map[string]common.DomainSet)
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, value []byte) error {
		if num != geoSiteListEntry || typ != protowire.BytesType {
			return nil
		}
		return decodeGeoSite(value, in, keepQualified, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func decodeGeoSite(b []byte, in interest, keepQualified bool, result map[string]common.DomainSet) error {
	var (
		code    string
		domains [][]byte
	)
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, value []byte) error {
		if typ != protowire.BytesType {
			return nil
		}
		switch num {
		case geoSiteCountryCode:
			code = string(value)
		case geoSiteDomain:
			domains = append(domains, value)
		}
		return nil
	})
	if err != nil {
		return err
	}
	classification, ok := in.lookup(code)
	if !ok || code == "" {
		return nil
	}
	set := result[classification]
	if set == nil {
		set = common.NewDomainSet()
		result[classification] = set
	}
	for _, d := range domains {
		typ, value, qualified, err := decodeGeoSiteDomain(d)
		if err != nil {
			return err
		}
		if typ != DomainType_Domain && typ != DomainType_Full {
			continue
		}
		if qualified && !keepQualified {
			continue
		}
		if domain, ok := common.NormalizeDomain(value); ok {
			set.Add(domain)
		}
	}
	return nil
}

func decodeGeoSiteDomain(b []byte) (typ uint64, value string, qualified bool, err error) {
	err = walkFields(b, func(num protowire.Number, wireType protowire.Type, raw []byte) error {
		switch {
		case num == domainType && wireType == protowire.VarintType:
			typ, _ = protowire.ConsumeVarint(raw)
		case num == domainValue && wireType == protowire.BytesType:
			value = string(raw)
		case num == domainAttribute:
			qualified = true
		}
		return nil
	})
	return typ, value, qualified, err
}
