/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package config

import (
	"bytes"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// Marshal encodes conf as YAML with the descriptions of desc.go as comments.
func Marshal(conf *Config) ([]byte, error) {
	var root yaml.Node
	if err := root.Encode(conf); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	annotate(&root, reflect.TypeOf(*conf), SectionSummaryDesc, false)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// annotate sets head comments on the keys of a mapping node encoded from a
// struct of type t.
func annotate(node *yaml.Node, t reflect.Type, descSource Desc, inheritSource bool) {
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode || t.Kind() != reflect.Struct {
		return
	}
	fields := make(map[string]reflect.StructField, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		fields[yamlKey(t.Field(i))] = t.Field(i)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		field, ok := fields[keyNode.Value]
		if !ok {
			continue
		}
		if desc := descSource[keyNode.Value]; desc != "" {
			keyNode.HeadComment = desc
		}
		if field.Type.Kind() != reflect.Struct {
			continue
		}
		next := descSource
		if !inheritSource {
			next = SectionDescription[field.Tag.Get("desc")]
		}
		annotate(valueNode, field.Type, next, true)
	}
}
