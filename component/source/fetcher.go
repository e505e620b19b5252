/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package source

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"

	"github.com/daeuniverse/adg-upstream/common/consts"
	"github.com/sirupsen/logrus"
)

// Fetcher fetches the bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type FetcherConfig struct {
	Timeout        time.Duration // per attempt
	Retries        int           // extra attempts after the first one
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	UserAgent      string
}

type HTTPFetcher struct {
	log    *logrus.Logger
	client *http.Client
	cfg    FetcherConfig
}

func NewHTTPFetcher(log *logrus.Logger, client *http.Client, cfg FetcherConfig) *HTTPFetcher {
	if client == nil {
		client = &http.Client{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = time.Second
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = consts.DefaultUserAgent
	}
	return &HTTPFetcher{
		log:    log,
		client: client,
		cfg:    cfg,
	}
}

// Fetch GETs url. Every failure is returned as a *FetchError. Transport
// errors and 5xx/429 responses are retried; other statuses are not.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (b []byte, err error) {
	for attempt := 0; ; attempt++ {
		var retryable bool
		b, retryable, err = f.fetchOnce(ctx, url)
		if err == nil {
			return b, nil
		}
		if !retryable || attempt >= f.cfg.Retries {
			return nil, err
		}
		backoff := calcBackoff(f.cfg.InitialBackoff, f.cfg.MaxBackoff, attempt+1)
		f.log.WithFields(logrus.Fields{
			"url":     url,
			"attempt": attempt + 1,
			"backoff": backoff,
		}).Debugf("Fetch failed: %v", err)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, &FetchError{URL: url, Err: ctx.Err()}
		case <-timer.C:
		}
	}
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string) (b []byte, retryable bool, err error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, &FetchError{URL: url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, true, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		retryable = resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, retryable, &FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %v", resp.Status),
		}
	}

	b, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, &FetchError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	return b, false, nil
}

func calcBackoff(initial, max time.Duration, failures int) time.Duration {
	pow := math.Pow(2, float64(failures-1))
	backoff := time.Duration(float64(initial) * pow)
	if backoff > max {
		backoff = max
	}

	// Jitter keeps retries of several lists from lining up.
	jitterFrac := 0.2
	jitter := time.Duration(rand.Float64()*2*jitterFrac*float64(backoff)) -
		time.Duration(jitterFrac*float64(backoff))

	return backoff + jitter
}
