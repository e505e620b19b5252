/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

// Package control drives one generation run: read lists, aggregate them,
// write the rule file and its sidecars.
package control

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/daeuniverse/adg-upstream/common"
	"github.com/daeuniverse/adg-upstream/common/assets"
	"github.com/daeuniverse/adg-upstream/common/consts"
	"github.com/daeuniverse/adg-upstream/component/aggregator"
	"github.com/daeuniverse/adg-upstream/component/formatter"
	"github.com/daeuniverse/adg-upstream/component/report"
	"github.com/daeuniverse/adg-upstream/component/source"
	"github.com/daeuniverse/adg-upstream/config"
	"github.com/mohae/deepcopy"
	"github.com/sirupsen/logrus"
)

// ErrNoDomains is returned when a container yields no domain at all, which
// means its layout was not understood.
var ErrNoDomains = errors.New("no domains produced")

// Summary describes a finished run.
type Summary struct {
	// Results holds one entry per classification in priority order.
	Results   []source.Result
	Counts    map[string]int
	Total     int
	RuleLines int
	Updated   time.Time
	Failures  []report.Failure
}

// Status converts the summary for the report emitters.
func (s *Summary) Status() *report.Status {
	return &report.Status{
		Counts:   s.Counts,
		Total:    s.Total,
		Updated:  s.Updated.UTC().Format(consts.StatsTimeLayout),
		Failures: s.Failures,
	}
}

type Generator struct {
	log  *logrus.Logger
	conf *config.Config
	src  source.Source
	now  func() time.Time
}

// New builds a generator reading from the source configured in conf.
func New(log *logrus.Logger, conf *config.Config) (*Generator, error) {
	src, err := NewSource(log, conf)
	if err != nil {
		return nil, err
	}
	return NewGenerator(log, conf, src), nil
}

// NewGenerator builds a generator over src. conf is copied.
func NewGenerator(log *logrus.Logger, conf *config.Config, src source.Source) *Generator {
	return &Generator{
		log:  log,
		conf: deepcopy.Copy(conf).(*config.Config),
		src:  src,
		now:  time.Now,
	}
}

// NewSource returns the source reader selected by conf.Source.Kind.
func NewSource(log *logrus.Logger, conf *config.Config) (source.Source, error) {
	fetcher := source.NewHTTPFetcher(log, &http.Client{}, source.FetcherConfig{
		Timeout:   conf.Source.Timeout,
		Retries:   conf.Source.Retries,
		UserAgent: conf.Source.UserAgent,
	})
	switch conf.Source.Kind {
	case consts.SourceKind_Plaintext:
		return source.NewPlaintext(conf.Source.BaseUrl, fetcher, conf.Source.KeepQualified), nil
	case consts.SourceKind_Archive:
		return source.NewArchive(log, conf.Source.ArchiveUrl, fetcher, conf.Source.KeepQualified), nil
	case consts.SourceKind_Container:
		path, err := assets.NewLocationFinder(conf.Source.AssetDirs).GetLocationAsset(log, conf.Source.Container)
		if err != nil {
			return nil, fmt.Errorf("failed to locate container: %w", err)
		}
		log.Infof("Reading container %v", path)
		return source.NewContainer(path, conf.Source.ContainerLayout, conf.Source.KeepQualified), nil
	default:
		return nil, fmt.Errorf("unknown source kind: %v", conf.Source.Kind)
	}
}

// Plan expands the configured rules into one aggregation rule per list.
func (g *Generator) Plan() (aggregator.Plan, error) {
	plan := aggregator.Plan{
		Exclusion: g.conf.Aggregate.Exclusion,
		Collapse:  g.conf.Aggregate.Collapse,
	}
	for i, rule := range g.conf.Rules {
		resolver, ok := g.conf.UpstreamAddress(rule.Upstream)
		if !ok {
			return aggregator.Plan{}, fmt.Errorf("rules[%v]: unknown upstream %q", i, rule.Upstream)
		}
		for _, list := range rule.Lists {
			plan.Rules = append(plan.Rules, aggregator.Rule{
				Classification: list,
				Resolver:       resolver,
				CatchAll:       rule.CatchAll,
			})
		}
	}
	return plan, nil
}

// Run reads every list one after another, then writes the outputs. A list
// that cannot be read is logged, counted as empty and reported in the
// summary; it does not fail the run.
func (g *Generator) Run(ctx context.Context) (*Summary, error) {
	plan, err := g.Plan()
	if err != nil {
		return nil, err
	}
	agg, err := aggregator.New(plan)
	if err != nil {
		return nil, err
	}
	classifications := plan.Classifications()

	if p, ok := g.src.(source.Preloader); ok {
		if err = p.Preload(ctx, classifications); err != nil {
			return nil, err
		}
	}

	summary := &Summary{
		Counts:  make(map[string]int, len(classifications)),
		Updated: g.now(),
	}
	lists := make(map[string]common.DomainSet, len(classifications))
	for _, c := range classifications {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		result := g.read(ctx, c)
		summary.Results = append(summary.Results, result)
		summary.Counts[c] = result.Domains.Len()
		lists[c] = result.Domains
		if result.Err != nil {
			summary.Failures = append(summary.Failures, report.Failure{
				Classification: c,
				Reason:         result.Err.Error(),
			})
		}
	}

	buckets := agg.Build(lists)
	summary.Total = buckets.Total()
	g.logSummary(summary, buckets)

	if summary.Total == 0 && g.conf.Source.Kind == consts.SourceKind_Container {
		return summary, fmt.Errorf("%w: container %v", ErrNoDomains, g.conf.Source.Container)
	}

	if err = g.write(summary, buckets, plan); err != nil {
		return summary, err
	}
	common.ReportMemory(g.log, "generate")
	return summary, nil
}

func (g *Generator) read(ctx context.Context, classification string) source.Result {
	domains, err := g.src.Read(ctx, classification)
	if domains == nil {
		domains = common.NewDomainSet()
	}
	if err != nil {
		g.log.WithFields(logrus.Fields{
			"list": classification,
		}).Warnf("Failed to read list: %v", err)
	}
	return source.Result{
		Classification: classification,
		Domains:        domains,
		Err:            err,
	}
}

func (g *Generator) logSummary(summary *Summary, buckets *aggregator.Buckets) {
	for _, r := range summary.Results {
		if r.Err != nil {
			g.log.Infof("%v: %v domains (failed)", r.Classification, r.Domains.Len())
			continue
		}
		g.log.Infof("%v: %v domains", r.Classification, r.Domains.Len())
	}
	if g.log.IsLevelEnabled(logrus.DebugLevel) {
		var b strings.Builder
		for _, bucket := range buckets.List() {
			fmt.Fprintf(&b, "\t%v: %v\n", bucket.Resolver, bucket.Domains.Len())
		}
		g.log.Debugf("Buckets:\n%v", b.String())
	}
	g.log.Infof("Total: %v domains, %v failed lists", summary.Total, len(summary.Failures))
}

func (g *Generator) write(summary *Summary, buckets *aggregator.Buckets, plan aggregator.Plan) error {
	opts := formatter.Options{
		BatchSize:       g.conf.Format.BatchSize,
		MatchAll:        g.conf.Format.MatchAll,
		SeparateBuckets: g.conf.Format.SeparateBuckets,
	}
	if g.conf.Format.Fallback != "" {
		opts.Fallback, _ = g.conf.UpstreamAddress(g.conf.Format.Fallback)
	}
	lines, err := formatter.Format(buckets, opts)
	if err != nil {
		return err
	}
	summary.RuleLines = formatter.CountRules(lines)

	status := summary.Status()
	var header []string
	if g.conf.Format.Header {
		header = formatter.Header(g.headerInfo(summary, status, plan))
	}
	if err = formatter.WriteFile(g.conf.Output.Path, header, lines); err != nil {
		return err
	}
	g.log.Infof("Wrote %v rule lines to %v", summary.RuleLines, g.conf.Output.Path)

	if path := g.conf.Output.Stats; path != "" {
		if err = report.WriteStats(path, report.Stats{Domains: summary.Total, Updated: status.Updated}); err != nil {
			return err
		}
	}
	if path := g.conf.Output.Report; path != "" {
		if err = report.WriteReport(path, status); err != nil {
			return err
		}
	}
	if path := g.conf.Output.Metrics; path != "" {
		if err = report.WriteMetrics(path, status, summary.Updated); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) headerInfo(summary *Summary, status *report.Status, plan aggregator.Plan) formatter.HeaderInfo {
	info := formatter.HeaderInfo{
		Updated:      status.Updated,
		Total:        summary.Total,
		RuleLines:    summary.RuleLines,
		FallbackHint: g.conf.Format.FallbackHint,
	}
	resolvers := make(map[string]string, len(plan.Rules))
	for _, r := range plan.Rules {
		if _, ok := resolvers[r.Classification]; !ok {
			resolvers[r.Classification] = r.Resolver
		}
	}
	for _, r := range summary.Results {
		info.Entries = append(info.Entries, formatter.HeaderEntry{
			Classification: r.Classification,
			Resolver:       resolvers[r.Classification],
			Domains:        r.Domains.Len(),
		})
	}
	return info
}
