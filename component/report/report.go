/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

// Package report writes run statistics: a Markdown status table, a JSON
// sidecar and a Prometheus textfile.
package report

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/slices"
)

var ErrNegativeCount = errors.New("negative domain count")

// Failure is a classification that contributed nothing because it could
// not be read.
type Failure struct {
	Classification string
	Reason         string
}

// Status is the outcome of one generation run.
type Status struct {
	Counts   map[string]int
	Total    int
	Updated  string
	Failures []Failure
}

func (s *Status) check() error {
	if s.Total < 0 {
		return fmt.Errorf("%w: total %v", ErrNegativeCount, s.Total)
	}
	for c, n := range s.Counts {
		if n < 0 {
			return fmt.Errorf("%w: %v has %v", ErrNegativeCount, c, n)
		}
	}
	return nil
}

func (s *Status) classifications() []string {
	list := make([]string, 0, len(s.Counts))
	for c := range s.Counts {
		list = append(list, c)
	}
	slices.Sort(list)
	return list
}

// Render renders s as a Markdown document.
func Render(s *Status) (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("# Upstream DNS rules\n\n")
	fmt.Fprintf(&b, "Updated: %v\n\n", s.Updated)
	b.WriteString("| Classification | Domains |\n")
	b.WriteString("| --- | ---: |\n")
	for _, c := range s.classifications() {
		fmt.Fprintf(&b, "| %v | %v |\n", c, s.Counts[c])
	}
	fmt.Fprintf(&b, "| **Total** | **%v** |\n", s.Total)
	if len(s.Failures) > 0 {
		b.WriteString("\n## Failed classifications\n\n")
		for _, f := range s.Failures {
			fmt.Fprintf(&b, "- %v: %v\n", f.Classification, f.Reason)
		}
	}
	return b.String(), nil
}

func WriteReport(path string, s *Status) error {
	md, err := Render(s)
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, []byte(md), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
