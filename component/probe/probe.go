/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

// Package probe measures the latency of upstream resolvers.
package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
)

var ErrUnsupportedScheme = errors.New("unsupported upstream scheme")

// ParseUpstream converts an upstream address as written in AdGuard Home
// into a miekg/dns network and server address. DNS-over-HTTPS, QUIC and
// DNS stamps are not supported.
func ParseUpstream(upstream string) (network string, server string, err error) {
	network, defaultPort := "udp", "53"
	host := upstream
	if scheme, rest, ok := strings.Cut(upstream, "://"); ok {
		switch strings.ToLower(scheme) {
		case "udp":
		case "tcp":
			network = "tcp"
		case "tls":
			network, defaultPort = "tcp-tls", "853"
		default:
			return "", "", fmt.Errorf("%w: %v", ErrUnsupportedScheme, scheme)
		}
		host = rest
	}
	if host == "" {
		return "", "", fmt.Errorf("empty upstream address")
	}
	if addr, err := netip.ParseAddr(host); err == nil {
		return network, net.JoinHostPort(addr.String(), defaultPort), nil
	}
	if h, port, err := net.SplitHostPort(host); err == nil {
		return network, net.JoinHostPort(h, port), nil
	}
	return network, net.JoinHostPort(host, defaultPort), nil
}

// Result is the outcome of probing one upstream.
type Result struct {
	Upstream  string
	Server    string
	Sent      int
	Succeeded int
	Min       time.Duration
	Max       time.Duration
	Avg       time.Duration
	Err       error
}

type Prober struct {
	log     *logrus.Logger
	domain  string
	count   int
	timeout time.Duration
}

func NewProber(log *logrus.Logger, domain string, count int, timeout time.Duration) *Prober {
	if count < 1 {
		count = 1
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Prober{
		log:     log,
		domain:  dns.Fqdn(domain),
		count:   count,
		timeout: timeout,
	}
}

// Probe sends A queries to upstream one after another and records their
// latency. Err holds the last failure, or the parse error of upstream.
func (p *Prober) Probe(ctx context.Context, upstream string) Result {
	r := Result{Upstream: upstream}
	network, server, err := ParseUpstream(upstream)
	if err != nil {
		r.Err = err
		return r
	}
	r.Server = server
	client := &dns.Client{
		Net:     network,
		Timeout: p.timeout,
	}

	var total time.Duration
	for i := 0; i < p.count; i++ {
		if err = ctx.Err(); err != nil {
			r.Err = err
			break
		}
		m := new(dns.Msg)
		m.SetQuestion(p.domain, dns.TypeA)

		r.Sent++
		start := time.Now()
		_, _, err = client.ExchangeContext(ctx, m, server)
		latency := time.Since(start)
		if err != nil {
			p.log.Debugf("Query %v to %v failed: %v", i+1, server, err)
			r.Err = err
			continue
		}
		r.Succeeded++
		total += latency
		if r.Min == 0 || latency < r.Min {
			r.Min = latency
		}
		if latency > r.Max {
			r.Max = latency
		}
	}
	if r.Succeeded > 0 {
		r.Avg = total / time.Duration(r.Succeeded)
	}
	return r
}
