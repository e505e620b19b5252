/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2023-2026, daeuniverse Organization <dae@v2raya.org>
 */

package config

import (
	"reflect"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/exp/slices"
)

type Outline struct {
	Version   string         `json:"version"`
	Leaves    []string       `json:"leaves"`
	Structure []*OutlineElem `json:"structure"`
}

type OutlineElem struct {
	Name      string         `json:"name,omitempty"`
	Mapping   string         `json:"mapping,omitempty"`
	IsArray   bool           `json:"isArray,omitempty"`
	IsMap     bool           `json:"isMap,omitempty"`
	Type      string         `json:"type,omitempty"`
	Default   string         `json:"default,omitempty"`
	Required  bool           `json:"required,omitempty"`
	Desc      string         `json:"desc,omitempty"`
	Structure []*OutlineElem `json:"structure,omitempty"`
}

// ExportOutline describes the config structure for front-ends.
func ExportOutline(version string) *Outline {
	t := reflect.TypeOf(Config{})
	exporter := outlineExporter{
		leaves:       make(map[string]struct{}),
		pktPathScope: t.PkgPath(),
	}
	structure := exporter.exportStruct(t, SectionSummaryDesc, false)
	var leaves []string
	for k := range exporter.leaves {
		leaves = append(leaves, k)
	}
	slices.Sort(leaves)

	return &Outline{
		Version:   version,
		Leaves:    leaves,
		Structure: structure,
	}
}

func ExportOutlineJson(version string) (string, error) {
	b, err := jsoniter.MarshalIndent(ExportOutline(version), "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type outlineExporter struct {
	leaves       map[string]struct{}
	pktPathScope string
}

func yamlKey(field reflect.StructField) string {
	key, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
	return key
}

func (e *outlineExporter) exportStruct(t reflect.Type, descSource Desc, inheritSource bool) (outlines []*OutlineElem) {
	for i := 0; i < t.NumField(); i++ {
		section := t.Field(i)
		key := yamlKey(section)
		var desc string
		if descSource != nil {
			desc = descSource[key]
		}
		var isArray, isMap bool
		var typ reflect.Type
		switch section.Type.Kind() {
		case reflect.Slice, reflect.Array:
			typ = section.Type.Elem()
			isArray = true
		case reflect.Map:
			typ = section.Type.Elem()
			isMap = true
		default:
			typ = section.Type
		}
		if typ.Kind() == reflect.Pointer {
			typ = typ.Elem()
		}
		var children []*OutlineElem
		if typ.Kind() == reflect.Struct {
			var nextDescSource Desc
			if inheritSource {
				nextDescSource = descSource
			} else {
				nextDescSource = SectionDescription[section.Tag.Get("desc")]
			}
			if typ.PkgPath() == "" || typ.PkgPath() == e.pktPathScope {
				children = e.exportStruct(typ, nextDescSource, true)
			}
		}
		if len(children) == 0 {
			e.leaves[typ.String()] = struct{}{}
		}
		_, required := section.Tag.Lookup("required")
		outlines = append(outlines, &OutlineElem{
			Name:      section.Name,
			Mapping:   key,
			IsArray:   isArray,
			IsMap:     isMap,
			Type:      typ.String(),
			Default:   section.Tag.Get("default"),
			Required:  required,
			Desc:      desc,
			Structure: children,
		})
	}
	return outlines
}
