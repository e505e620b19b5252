/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

// Package aggregator groups the domains of classifications into one bucket
// per resolver.
package aggregator

import (
	"fmt"

	"github.com/daeuniverse/adg-upstream/common"
	"github.com/daeuniverse/adg-upstream/common/consts"
	"github.com/mohae/deepcopy"
)

// Rule routes the domains of one classification to a resolver.
type Rule struct {
	Classification string
	Resolver       string
	// CatchAll marks broad classifications. Under ExclusionMode_CatchAll
	// only these lose the domains claimed by earlier rules.
	CatchAll bool
}

// Plan is the priority-ordered list of rules plus the aggregation options.
// Earlier rules win.
type Plan struct {
	Rules     []Rule
	Exclusion consts.ExclusionMode
	Collapse  consts.CollapseMode
}

func DeepClonePlan(plan Plan) Plan {
	return deepcopy.Copy(plan).(Plan)
}

// Classifications returns the classifications of the plan in priority order
// without duplicates.
func (p Plan) Classifications() []string {
	list := make([]string, 0, len(p.Rules))
	for _, r := range p.Rules {
		list = append(list, r.Classification)
	}
	return common.Deduplicate(list)
}

type Aggregator struct {
	plan      Plan
	collapser Collapser
}

func New(plan Plan) (*Aggregator, error) {
	plan = DeepClonePlan(plan)
	switch plan.Exclusion {
	case "":
		plan.Exclusion = consts.ExclusionMode_All
	case consts.ExclusionMode_All, consts.ExclusionMode_CatchAll, consts.ExclusionMode_None:
	default:
		return nil, fmt.Errorf("unknown exclusion mode: %v", plan.Exclusion)
	}
	collapser, err := NewCollapser(plan.Collapse)
	if err != nil {
		return nil, err
	}
	return &Aggregator{
		plan:      plan,
		collapser: collapser,
	}, nil
}

// WithCollapser replaces the collapser chosen by the plan.
func (a *Aggregator) WithCollapser(c Collapser) *Aggregator {
	a.collapser = c
	return a
}

func (a *Aggregator) Plan() Plan {
	return DeepClonePlan(a.plan)
}

// Build unions the domains of every rule into the bucket of its resolver.
// Classifications absent from lists contribute nothing.
//
// Depending on the exclusion mode, a domain already placed by an earlier rule
// under another resolver is not placed again. Rules sharing a resolver never
// exclude each other.
func (a *Aggregator) Build(lists map[string]common.DomainSet) *Buckets {
	buckets := newBuckets()
	claimed := make(map[string]string)
	for _, rule := range a.plan.Rules {
		bucket := buckets.bucket(rule.Resolver)
		exclude := a.excludes(rule)
		for d := range lists[rule.Classification] {
			d = a.collapser.Collapse(d)
			owner, ok := claimed[d]
			if !ok {
				claimed[d] = rule.Resolver
			} else if exclude && owner != rule.Resolver {
				continue
			}
			bucket.Domains.Add(d)
		}
	}
	return buckets
}

func (a *Aggregator) excludes(rule Rule) bool {
	switch a.plan.Exclusion {
	case consts.ExclusionMode_None:
		return false
	case consts.ExclusionMode_CatchAll:
		return rule.CatchAll
	default:
		return true
	}
}

// Bucket holds the domains routed to one resolver.
type Bucket struct {
	Resolver string
	Domains  common.DomainSet
}

// Buckets keeps buckets in order of the first rule naming their resolver.
type Buckets struct {
	list  []*Bucket
	index map[string]*Bucket
}

func newBuckets() *Buckets {
	return &Buckets{index: make(map[string]*Bucket)}
}

func (b *Buckets) bucket(resolver string) *Bucket {
	if bucket, ok := b.index[resolver]; ok {
		return bucket
	}
	bucket := &Bucket{Resolver: resolver, Domains: common.NewDomainSet()}
	b.list = append(b.list, bucket)
	b.index[resolver] = bucket
	return bucket
}

func (b *Buckets) List() []*Bucket {
	return b.list
}

// Get returns the domains of resolver, or nil.
func (b *Buckets) Get(resolver string) common.DomainSet {
	if bucket, ok := b.index[resolver]; ok {
		return bucket.Domains
	}
	return nil
}

func (b *Buckets) Resolvers() []string {
	resolvers := make([]string, 0, len(b.list))
	for _, bucket := range b.list {
		resolvers = append(resolvers, bucket.Resolver)
	}
	return resolvers
}

// Total counts distinct domains over all buckets.
func (b *Buckets) Total() int {
	seen := common.NewDomainSet()
	for _, bucket := range b.list {
		seen.Merge(bucket.Domains)
	}
	return seen.Len()
}
