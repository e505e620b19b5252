/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package probe

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestParseUpstream(t *testing.T) {
	tests := []struct {
		in      string
		network string
		server  string
	}{
		{"119.29.29.29", "udp", "119.29.29.29:53"},
		{"180.184.1.1:5353", "udp", "180.184.1.1:5353"},
		{"2400:3200::1", "udp", "[2400:3200::1]:53"},
		{"[2400:3200::1]:53", "udp", "[2400:3200::1]:53"},
		{"udp://223.5.5.5", "udp", "223.5.5.5:53"},
		{"tcp://223.5.5.5", "tcp", "223.5.5.5:53"},
		{"tls://dot.pub", "tcp-tls", "dot.pub:853"},
		{"tls://dns.alidns.com:8853", "tcp-tls", "dns.alidns.com:8853"},
	}
	for _, tt := range tests {
		network, server, err := ParseUpstream(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.network, network, tt.in)
		require.Equal(t, tt.server, server, tt.in)
	}

	for _, in := range []string{"https://doh.pub/dns-query", "quic://dns.alidns.com", "sdns://AgcAAA", "tcp://"} {
		_, _, err := ParseUpstream(in)
		require.Error(t, err, in)
	}
	_, _, err := ParseUpstream("https://doh.pub/dns-query")
	require.ErrorIs(t, err, ErrUnsupportedScheme)
}

func startServer(t *testing.T) string {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	started := make(chan struct{})
	srv := &dns.Server{
		PacketConn: pc,
		Handler: dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
			m := new(dns.Msg)
			m.SetReply(r)
			_ = w.WriteMsg(m)
		}),
		NotifyStartedFunc: func() { close(started) },
	}
	go func() {
		_ = srv.ActivateAndServe()
	}()
	<-started
	t.Cleanup(func() {
		_ = srv.Shutdown()
	})
	return pc.LocalAddr().String()
}

func TestProbe(t *testing.T) {
	addr := startServer(t)
	p := NewProber(logrus.New(), "qq.com", 3, time.Second)

	r := p.Probe(context.Background(), addr)
	require.NoError(t, r.Err)
	require.Equal(t, addr, r.Server)
	require.Equal(t, 3, r.Sent)
	require.Equal(t, 3, r.Succeeded)
	require.LessOrEqual(t, r.Min, r.Avg)
	require.LessOrEqual(t, r.Avg, r.Max)
}

func TestProbe_Unsupported(t *testing.T) {
	p := NewProber(logrus.New(), "qq.com", 1, time.Second)
	r := p.Probe(context.Background(), "https://dns.alidns.com/dns-query")
	require.ErrorIs(t, r.Err, ErrUnsupportedScheme)
	require.Zero(t, r.Sent)
}

func TestProbe_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewProber(logrus.New(), "qq.com", 2, time.Second)
	r := p.Probe(ctx, "127.0.0.1:53")
	require.ErrorIs(t, r.Err, context.Canceled)
	require.Zero(t, r.Sent)
}
