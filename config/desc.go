/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2023-2026, daeuniverse Organization <dae@v2raya.org>
 */

package config

type Desc map[string]string

var SectionSummaryDesc = Desc{
	"global":    "Logging.",
	"source":    "Where domain lists are read from.",
	"aggregate": "How domains of different lists are combined.",
	"format":    "Shape of the generated upstream_dns_file.",
	"output":    "Output files. Empty paths are not written.",
	"upstream":  "Named upstream resolvers. Value can be an IP address, host:port, or a scheme-prefixed address such as https://dns.alidns.com/dns-query, tls://dot.pub or quic://dns.alidns.com.",
	"rules": `Priority-ordered rules. Each rule routes the domains of its lists to an upstream.
A domain listed by two rules with different upstreams goes to the earlier rule.`,
}

var SectionDescription = map[string]Desc{
	"GlobalDesc":    GlobalDesc,
	"SourceDesc":    SourceDesc,
	"AggregateDesc": AggregateDesc,
	"FormatDesc":    FormatDesc,
	"OutputDesc":    OutputDesc,
}

var GlobalDesc = Desc{
	"log_level":         "Log level: error, warn, info, debug, trace.",
	"log_file":          "Write logs to this file instead of stderr. The file is rotated by size.",
	"log_max_size":      "Maximum size in megabytes of the log file before it is rotated.",
	"log_max_backups":   "Maximum number of rotated log files to keep.",
	"disable_timestamp": "Do not print timestamps in logs.",
}

var SourceDesc = Desc{
	"kind": `Optional values of kind are:
1. "plaintext". Download every list from base_url one by one.
2. "archive". Download the whole repository archive from archive_url once and read lists from its data directory.
3. "container". Read lists from the local binary file container.`,
	"base_url":         "Base URL of plaintext lists. A list is fetched from <base_url>/<name>.",
	"archive_url":      "URL of the domain-list-community zip archive.",
	"container":        "Path or file name of the binary container. File names are searched in $ADG_UPSTREAM_LOCATION_ASSET, XDG data directories and asset_dirs.",
	"container_layout": "Layout of the container: \"flat\" (tag and domain records at top level) or \"geosite\" (v2ray geosite.dat).",
	"asset_dirs":       "Extra directories to search the container in.",
	"keep_qualified":   "Keep domains carrying attributes such as @cn or @!cn, without the attributes. Set it false to drop them.",
	"timeout":          "Timeout of every download attempt.",
	"retries":          "Retries after a failed download. 404 and other client errors are not retried.",
	"user_agent":       "User-Agent header of downloads.",
}

var AggregateDesc = Desc{
	"exclusion": `Optional values of exclusion are:
1. "all". A domain already routed by an earlier rule to another upstream is not routed again.
2. "catch_all". Same as "all" but only applies to rules with catch_all set.
3. "none". Every rule keeps all of its domains.`,
	"collapse": `Optional values of collapse are:
1. "none". Keep domains as they are.
2. "two_label". Keep the last two labels, e.g. www.qq.com -> qq.com. Wrong for suffixes like com.cn.
3. "public_suffix". Keep the registrable domain according to the public suffix list.`,
}

var FormatDesc = Desc{
	"batch_size":       "Maximum number of domains per line. 1 writes one line per domain.",
	"match_all":        "Pattern matching every domain, used by the fallback line: \"[//]\" or \"[/./]\". Quote it in YAML.",
	"fallback":         "Name of an upstream for every other domain. It is written as the last line.",
	"fallback_hint":    "Resolver mentioned in the header as the one to configure as plain upstream of AdGuard Home.",
	"header":           "Write a comment header with update time and counts.",
	"separate_buckets": "Write an empty line after the lines of every upstream.",
}

var OutputDesc = Desc{
	"path":    "Path of the upstream_dns_file.",
	"stats":   "Path of the JSON statistics file.",
	"report":  "Path of the Markdown status report.",
	"metrics": "Path of the Prometheus textfile collector file.",
}
