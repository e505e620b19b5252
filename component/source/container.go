/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package source

import (
	"context"
	"fmt"
	"os"

	"github.com/daeuniverse/adg-upstream/common"
	"github.com/daeuniverse/adg-upstream/common/consts"
	"github.com/daeuniverse/adg-upstream/pkg/geodata"
)

// Container reads lists from a local binary container file.
type Container struct {
	path          string
	layout        consts.ContainerLayout
	keepQualified bool

	lists map[string]common.DomainSet
}

func NewContainer(path string, layout consts.ContainerLayout, keepQualified bool) *Container {
	return &Container{
		path:          path,
		layout:        layout,
		keepQualified: keepQualified,
	}
}

// Preload reads and decodes the whole file. Read errors and malformed
// containers are returned as is.
func (c *Container) Preload(ctx context.Context, classifications []string) error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("read container: %w", err)
	}
	switch c.layout {
	case consts.ContainerLayout_GeoSite:
		c.lists, err = geodata.DecodeGeoSiteList(data, c.keepQualified, classifications...)
	case consts.ContainerLayout_Flat, "":
		c.lists, err = geodata.DecodeContainer(data, classifications...)
	default:
		return fmt.Errorf("unknown container layout: %v", c.layout)
	}
	if err != nil {
		return fmt.Errorf("decode %v: %w", c.path, err)
	}
	return nil
}

func (c *Container) Read(ctx context.Context, classification string) (common.DomainSet, error) {
	if c.lists == nil {
		return common.NewDomainSet(), fmt.Errorf("container %v is not loaded", c.path)
	}
	set, ok := c.lists[classification]
	if !ok {
		return common.NewDomainSet(), fmt.Errorf("%v: %w in %v", classification, ErrClassificationNotFound, c.path)
	}
	return set, nil
}
