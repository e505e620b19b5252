/*
 * SPDX-License-Identifier: AGPL-3.0-only
 * Copyright (c) 2022-2026, daeuniverse Organization <dae@v2raya.org>
 */

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and parses the YAML config file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	conf, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return conf, nil
}

// Parse fills defaults, decodes b over them, applies patches and checks the
// result. Unknown keys are rejected.
func Parse(b []byte) (conf *Config, err error) {
	conf = &Config{}
	if err = FillDefaults(conf); err != nil {
		return nil, err
	}
	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err = decoder.Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err = CheckRequired(conf); err != nil {
		return nil, err
	}
	// Apply config patches.
	for _, patch := range patches {
		if err = patch(conf); err != nil {
			return nil, err
		}
	}
	if err = conf.Check(); err != nil {
		return nil, err
	}
	return conf, nil
}

// FillDefaults sets every field carrying a `default` tag, descending into
// nested structs. v must be a pointer to a struct.
func FillDefaults(v interface{}) error {
	to := reflect.ValueOf(v)
	if to.Kind() != reflect.Pointer || to.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("FillDefaults can only fill a *struct")
	}
	return fillDefaults(to.Elem())
}

func fillDefaults(to reflect.Value) error {
	tot := to.Type()
	for i := 0; i < to.NumField(); i++ {
		field := to.Field(i)
		structField := tot.Field(i)

		defaultValue, ok := structField.Tag.Lookup("default")
		if !ok {
			if field.Kind() == reflect.Struct {
				if err := fillDefaults(field); err != nil {
					return err
				}
			}
			continue
		}
		if err := decodeValue(field, defaultValue); err != nil {
			return fmt.Errorf(`failed to decode default value of "%v": %w`, structField.Name, err)
		}
	}
	return nil
}

// decodeValue decodes s into field. Strings are assigned as is, slices are
// comma separated and everything else is decoded as a YAML scalar.
func decodeValue(field reflect.Value, s string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(s)
	case reflect.Slice:
		field.Set(reflect.MakeSlice(field.Type(), 0, 0))
		for _, value := range strings.Split(s, ",") {
			vPointerNew := reflect.New(field.Type().Elem())
			if err := decodeValue(vPointerNew.Elem(), strings.TrimSpace(value)); err != nil {
				return err
			}
			field.Set(reflect.Append(field, vPointerNew.Elem()))
		}
	default:
		return yaml.Unmarshal([]byte(s), field.Addr().Interface())
	}
	return nil
}

// CheckRequired reports the first field tagged `required` that is still
// zero, naming it by its yaml path.
func CheckRequired(conf *Config) error {
	return checkRequired(reflect.ValueOf(conf).Elem(), "")
}

func checkRequired(to reflect.Value, path string) error {
	tot := to.Type()
	for i := 0; i < to.NumField(); i++ {
		field := to.Field(i)
		structField := tot.Field(i)
		key, _, _ := strings.Cut(structField.Tag.Get("yaml"), ",")
		if path != "" {
			key = path + "." + key
		}
		if _, required := structField.Tag.Lookup("required"); required && field.IsZero() {
			return fmt.Errorf(`"%v" is required but not provided`, key)
		}
		switch field.Kind() {
		case reflect.Struct:
			if err := checkRequired(field, key); err != nil {
				return err
			}
		case reflect.Slice:
			if field.Type().Elem().Kind() != reflect.Struct {
				continue
			}
			for j := 0; j < field.Len(); j++ {
				if err := checkRequired(field.Index(j), fmt.Sprintf("%v[%v]", key, j)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
