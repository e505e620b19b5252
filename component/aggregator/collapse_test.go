/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package aggregator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTwoLabelCollapser(t *testing.T) {
	c := &TwoLabelCollapser{}
	require.Equal(t, "qq.com", c.Collapse("a.b.qq.com"))
	require.Equal(t, "qq.com", c.Collapse("qq.com"))
	require.Equal(t, "co.uk", c.Collapse("www.bbc.co.uk"))
}

func TestPublicSuffixCollapser(t *testing.T) {
	c := &PublicSuffixCollapser{}
	require.Equal(t, "qq.com", c.Collapse("a.b.qq.com"))
	require.Equal(t, "bbc.co.uk", c.Collapse("www.bbc.co.uk"))
	// A bare public suffix has no eTLD+1.
	require.Equal(t, "com.cn", c.Collapse("com.cn"))
}

func TestNoneCollapser(t *testing.T) {
	require.Equal(t, "a.b.qq.com", (&NoneCollapser{}).Collapse("a.b.qq.com"))
}
