/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package source

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/daeuniverse/adg-upstream/common"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type staticFetcher struct {
	b     []byte
	err   error
	calls int
}

func (f *staticFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls++
	return f.b, f.err
}

func buildArchive(t *testing.T, files map[string]string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestArchive_Read(t *testing.T) {
	fetcher := &staticFetcher{b: buildArchive(t, map[string]string{
		"domain-list-community-master/data/tencent":  "domain:qq.com\nfull:www.qq.com @cn\n",
		"domain-list-community-master/data/alibaba":  "domain:taobao.com\n",
		"domain-list-community-master/README.md":     "# readme\n",
		"domain-list-community-master/data/x/nested": "domain:nested.com\n",
	})}
	a := NewArchive(logrus.New(), "https://example.org/master.zip", fetcher, true)

	set, err := a.Read(context.Background(), "tencent")
	require.NoError(t, err)
	require.Equal(t, common.NewDomainSet("qq.com", "www.qq.com"), set)

	set, err = a.Read(context.Background(), "Alibaba")
	require.NoError(t, err)
	require.Equal(t, common.NewDomainSet("taobao.com"), set)

	set, err = a.Read(context.Background(), "readme.md")
	require.ErrorIs(t, err, ErrClassificationNotFound)
	require.Zero(t, set.Len())
	var fe *FetchError
	require.ErrorAs(t, err, &fe)

	require.Equal(t, 1, fetcher.calls)
}

func TestArchive_DownloadFailureIsRemembered(t *testing.T) {
	fetcher := &staticFetcher{err: errors.New("connection refused")}
	a := NewArchive(logrus.New(), "https://example.org/master.zip", fetcher, true)

	for _, c := range []string{"tencent", "alibaba"} {
		set, err := a.Read(context.Background(), c)
		var fe *FetchError
		require.ErrorAs(t, err, &fe)
		require.Equal(t, "https://example.org/master.zip", fe.URL)
		require.Zero(t, set.Len())
	}
	require.Equal(t, 1, fetcher.calls)
}

func TestArchive_NotAZip(t *testing.T) {
	a := NewArchive(logrus.New(), "https://example.org/master.zip", &staticFetcher{b: []byte("not a zip")}, true)
	_, err := a.Read(context.Background(), "tencent")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
}
