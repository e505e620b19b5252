/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/daeuniverse/adg-upstream/common"
	"github.com/daeuniverse/adg-upstream/common/consts"
	"github.com/daeuniverse/adg-upstream/pkg/geodata"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func flatContainer(entries map[string][]string) []byte {
	var b []byte
	for tag, domains := range entries {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, tag)
		for _, d := range domains {
			nested := protowire.AppendVarint(nil, 2)
			nested = protowire.AppendVarint(nested, 0)
			nested = append(nested, d...)
			b = protowire.AppendTag(b, 2, protowire.BytesType)
			b = protowire.AppendBytes(b, nested)
		}
	}
	return b
}

func writeTemp(t *testing.T, b []byte) string {
	path := filepath.Join(t.TempDir(), "lists.dat")
	require.NoError(t, os.WriteFile(path, b, 0644))
	return path
}

func TestContainer_Read(t *testing.T) {
	path := writeTemp(t, flatContainer(map[string][]string{
		"TENCENT": {"qq.com", "wechat.com"},
		"baidu":   {"baidu.com"},
	}))
	c := NewContainer(path, consts.ContainerLayout_Flat, true)
	require.NoError(t, c.Preload(context.Background(), []string{"tencent", "alibaba"}))

	set, err := c.Read(context.Background(), "tencent")
	require.NoError(t, err)
	require.Equal(t, common.NewDomainSet("qq.com", "wechat.com"), set)

	set, err = c.Read(context.Background(), "alibaba")
	require.ErrorIs(t, err, ErrClassificationNotFound)
	require.NotNil(t, set)
	require.Zero(t, set.Len())

	// Not requested at preload time.
	_, err = c.Read(context.Background(), "baidu")
	require.ErrorIs(t, err, ErrClassificationNotFound)
}

func TestContainer_PreloadErrors(t *testing.T) {
	c := NewContainer(filepath.Join(t.TempDir(), "missing.dat"), consts.ContainerLayout_Flat, true)
	require.ErrorIs(t, c.Preload(context.Background(), nil), os.ErrNotExist)

	_, err := c.Read(context.Background(), "tencent")
	require.Error(t, err)

	truncated := protowire.AppendTag(nil, 1, protowire.BytesType)
	truncated = protowire.AppendVarint(truncated, 100)
	c = NewContainer(writeTemp(t, truncated), consts.ContainerLayout_Flat, true)
	require.ErrorIs(t, c.Preload(context.Background(), nil), geodata.ErrMalformedContainer)
}

func TestContainer_GeoSiteLayout(t *testing.T) {
	domain := protowire.AppendTag(nil, 1, protowire.VarintType)
	domain = protowire.AppendVarint(domain, uint64(geodata.DomainType_Domain))
	domain = protowire.AppendTag(domain, 2, protowire.BytesType)
	domain = protowire.AppendString(domain, "qq.com")

	site := protowire.AppendTag(nil, 1, protowire.BytesType)
	site = protowire.AppendString(site, "TENCENT")
	site = protowire.AppendTag(site, 2, protowire.BytesType)
	site = protowire.AppendBytes(site, domain)

	list := protowire.AppendTag(nil, 1, protowire.BytesType)
	list = protowire.AppendBytes(list, site)

	c := NewContainer(writeTemp(t, list), consts.ContainerLayout_GeoSite, true)
	require.NoError(t, c.Preload(context.Background(), []string{"tencent"}))
	set, err := c.Read(context.Background(), "tencent")
	require.NoError(t, err)
	require.Equal(t, common.NewDomainSet("qq.com"), set)
}
