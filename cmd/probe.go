/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/daeuniverse/adg-upstream/component/probe"
	"github.com/daeuniverse/adg-upstream/config"
	"github.com/daeuniverse/adg-upstream/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	probeCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file, built-in config if empty")
	probeCmd.PersistentFlags().StringVarP(&probeDomain, "domain", "d", "example.com", "domain to query")
	probeCmd.PersistentFlags().IntVarP(&probeCount, "count", "n", 3, "queries per upstream")
	probeCmd.PersistentFlags().DurationVarP(&probeTimeout, "timeout", "t", 5*time.Second, "timeout of every query")
	rootCmd.AddCommand(probeCmd)
}

var (
	probeDomain  string
	probeCount   int
	probeTimeout time.Duration

	probeCmd = &cobra.Command{
		Use:   "probe",
		Short: "Measure the latency of configured upstreams",
		Run: func(cmd *cobra.Command, args []string) {
			conf, err := readConfig(cfgFile)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"err": err,
				}).Fatalln("Failed to read config")
			}
			log := logger.NewLogger(conf.Global.LogLevel, conf.Global.DisableTimestamp, nil)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			printProbeResults(ProbeUpstreams(ctx, log, conf))
		},
	}
)

// ProbeUpstreams probes every configured upstream in name order.
func ProbeUpstreams(ctx context.Context, log *logrus.Logger, conf *config.Config) []probe.Result {
	names := make([]string, 0, len(conf.Upstream))
	for name := range conf.Upstream {
		names = append(names, name)
	}
	slices.Sort(names)

	p := probe.NewProber(log, probeDomain, probeCount, probeTimeout)
	results := make([]probe.Result, 0, len(names))
	for _, name := range names {
		r := p.Probe(ctx, conf.Upstream[name])
		r.Upstream = name
		results = append(results, r)
	}
	return results
}

func printProbeResults(results []probe.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "UPSTREAM\tSERVER\tOK\tMIN\tAVG\tMAX\tERROR")
	for _, r := range results {
		var errStr string
		if r.Err != nil {
			errStr = r.Err.Error()
		}
		fmt.Fprintf(w, "%v\t%v\t%v/%v\t%v\t%v\t%v\t%v\n",
			r.Upstream, r.Server, r.Succeeded, r.Sent, r.Min, r.Avg, r.Max, errStr)
	}
	_ = w.Flush()
}
