/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package source

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/daeuniverse/adg-upstream/common"
)

// Plaintext reads lists one by one from "<baseURL>/<classification>".
type Plaintext struct {
	baseURL       string
	fetcher       Fetcher
	keepQualified bool
}

func NewPlaintext(baseURL string, fetcher Fetcher, keepQualified bool) *Plaintext {
	return &Plaintext{
		baseURL:       strings.TrimRight(baseURL, "/"),
		fetcher:       fetcher,
		keepQualified: keepQualified,
	}
}

func (p *Plaintext) URL(classification string) string {
	return p.baseURL + "/" + url.PathEscape(classification)
}

func (p *Plaintext) Read(ctx context.Context, classification string) (common.DomainSet, error) {
	u := p.URL(classification)
	b, err := p.fetcher.Fetch(ctx, u)
	if err != nil {
		return common.NewDomainSet(), asFetchError(u, err)
	}
	return ParseList(bytes.NewReader(b), p.keepQualified), nil
}
