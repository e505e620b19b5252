/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/daeuniverse/adg-upstream/common/consts"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testFetcher(retries int) *HTTPFetcher {
	return NewHTTPFetcher(logrus.New(), nil, FetcherConfig{
		Timeout:        5 * time.Second,
		Retries:        retries,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	})
}

func TestHTTPFetcher_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, consts.DefaultUserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("domain:qq.com\n"))
	}))
	defer srv.Close()

	b, err := testFetcher(0).Fetch(context.Background(), srv.URL+"/tencent")
	require.NoError(t, err)
	require.Equal(t, "domain:qq.com\n", string(b))
}

func TestHTTPFetcher_NotFoundIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := testFetcher(3).Fetch(context.Background(), srv.URL+"/missing")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, http.StatusNotFound, fe.StatusCode)
	require.Equal(t, int32(1), hits.Load())
}

func TestHTTPFetcher_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	b, err := testFetcher(2).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "ok", string(b))
	require.Equal(t, int32(3), hits.Load())
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-done:
		}
	}))
	defer srv.Close()
	defer close(done)

	f := NewHTTPFetcher(logrus.New(), nil, FetcherConfig{Timeout: 50 * time.Millisecond})
	_, err := f.Fetch(context.Background(), srv.URL)
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	require.Zero(t, fe.StatusCode)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCalcBackoff(t *testing.T) {
	for failures := 1; failures < 10; failures++ {
		b := calcBackoff(time.Second, 8*time.Second, failures)
		require.Greater(t, b, time.Duration(0))
		require.LessOrEqual(t, b, time.Duration(1.2*float64(8*time.Second)))
	}
}
