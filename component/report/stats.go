/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package report

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

// Stats is the statistics sidecar document.
type Stats struct {
	Domains int    `json:"domains"`
	Updated string `json:"updated"`
}

func MarshalStats(stats Stats) ([]byte, error) {
	if stats.Domains < 0 {
		return nil, fmt.Errorf("%w: total %v", ErrNegativeCount, stats.Domains)
	}
	b, err := jsoniter.MarshalIndent(stats, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func WriteStats(path string, stats Stats) error {
	b, err := MarshalStats(stats)
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	return nil
}

// ReadStats reads back a sidecar written by WriteStats.
func ReadStats(path string) (*Stats, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var stats Stats
	if err = jsoniter.Unmarshal(b, &stats); err != nil {
		return nil, fmt.Errorf("decode stats %v: %w", path, err)
	}
	return &stats, nil
}
