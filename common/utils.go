/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) since 2022, mzz2017 (mzz@tuta.io). All rights reserved.
 */

package common

import (
	"strings"
)

// Deduplicate keeps the first occurrence of every value, preserving order.
func Deduplicate(list []string) []string {
	res := make([]string, 0, len(list))
	m := make(map[string]struct{})
	for _, v := range list {
		if _, ok := m[v]; ok {
			continue
		}
		m[v] = struct{}{}
		res = append(res, v)
	}
	return res
}

// LowerTrimmed trims spaces of every element and lowercases it. Empty
// elements are dropped.
func LowerTrimmed(list []string) []string {
	res := make([]string, 0, len(list))
	for _, v := range list {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		res = append(res, v)
	}
	return res
}
