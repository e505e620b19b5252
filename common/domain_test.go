/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOk bool
	}{
		{raw: "QQ.com", want: "qq.com", wantOk: true},
		{raw: "  weixin.qq.com ", want: "weixin.qq.com", wantOk: true},
		{raw: "пример.рф", want: "xn--e1afmkfd.xn--p1ai", wantOk: true},
		{raw: "", wantOk: false},
		{raw: "localhost", wantOk: false},
		{raw: ".qq.com", wantOk: false},
		{raw: "*.qq.com", wantOk: false},
		{raw: "a..b", wantOk: false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := NormalizeDomain(tt.raw)
			require.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDomainSet(t *testing.T) {
	s := NewDomainSet("b.com", "a.com")
	s.Add("a.com")
	require.Equal(t, 2, s.Len())
	require.True(t, s.Has("b.com"))
	require.False(t, s.Has("c.com"))

	s.Merge(NewDomainSet("c.com", "b.com"))
	require.Equal(t, []string{"a.com", "b.com", "c.com"}, s.Sorted())
}

func TestDeduplicate(t *testing.T) {
	require.Equal(t, []string{"cn", "apple"}, Deduplicate([]string{"cn", "apple", "cn"}))
	require.Equal(t, []string{"cn", "apple"}, LowerTrimmed([]string{" CN ", "", "Apple"}))
}
