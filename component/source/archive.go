/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/daeuniverse/adg-upstream/common"
	"github.com/mholt/archives"
	"github.com/sirupsen/logrus"
)

// Archive reads lists out of the domain-list-community repository archive.
// The archive is downloaded once, on the first Read.
type Archive struct {
	log           *logrus.Logger
	url           string
	fetcher       Fetcher
	keepQualified bool

	loaded bool
	files  map[string][]byte
	err    error
}

func NewArchive(log *logrus.Logger, url string, fetcher Fetcher, keepQualified bool) *Archive {
	return &Archive{
		log:           log,
		url:           url,
		fetcher:       fetcher,
		keepQualified: keepQualified,
	}
}

func (a *Archive) Read(ctx context.Context, classification string) (common.DomainSet, error) {
	if err := a.load(ctx); err != nil {
		return common.NewDomainSet(), err
	}
	content, ok := a.files[strings.ToLower(classification)]
	if !ok {
		return common.NewDomainSet(), &FetchError{
			URL: a.url,
			Err: fmt.Errorf("%v: %w in archive", classification, ErrClassificationNotFound),
		}
	}
	return ParseList(bytes.NewReader(content), a.keepQualified), nil
}

func (a *Archive) load(ctx context.Context) error {
	if a.loaded {
		return a.err
	}
	a.loaded = true

	b, err := a.fetcher.Fetch(ctx, a.url)
	if err != nil {
		a.err = asFetchError(a.url, err)
		return a.err
	}
	files, err := extractDataFiles(ctx, b)
	if err != nil {
		a.err = &FetchError{URL: a.url, Err: fmt.Errorf("extract archive: %w", err)}
		return a.err
	}
	a.log.Debugf("Archive %v: %v lists", a.url, len(files))
	a.files = files
	return nil
}

// extractDataFiles returns the files of the top-level "data" directory,
// e.g. "domain-list-community-master/data/tencent", keyed by lowercase name.
func extractDataFiles(ctx context.Context, b []byte) (map[string][]byte, error) {
	files := make(map[string][]byte)
	var format archives.Zip
	err := format.Extract(ctx, bytes.NewReader(b), func(ctx context.Context, f archives.FileInfo) error {
		if f.IsDir() {
			return nil
		}
		parts := strings.Split(strings.TrimPrefix(f.NameInArchive, "/"), "/")
		if len(parts) != 3 || parts[1] != "data" || parts[2] == "" {
			return nil
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			return fmt.Errorf("read %v: %w", f.NameInArchive, err)
		}
		files[strings.ToLower(parts[2])] = content
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
