/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

// Package source reads domain classification lists.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/daeuniverse/adg-upstream/common"
)

var ErrClassificationNotFound = errors.New("classification not found")

// Source produces the domain set of one classification.
//
// On failure Read returns an empty, non-nil set together with the error so
// that callers can degrade the classification and go on.
type Source interface {
	Read(ctx context.Context, classification string) (common.DomainSet, error)
}

// Preloader is implemented by sources that must load all their data before
// the first Read. A Preload error is fatal to the run.
type Preloader interface {
	Preload(ctx context.Context, classifications []string) error
}

// Result is the outcome of reading one classification.
type Result struct {
	Classification string
	Domains        common.DomainSet
	Err            error
}

// FetchError reports that the bytes of a list could not be fetched: a
// transport failure, a timeout or a non-2xx status.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %v: unexpected status %v", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %v: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func asFetchError(url string, err error) error {
	var fe *FetchError
	if errors.As(err, &fe) {
		return err
	}
	return &FetchError{URL: url, Err: err}
}
