package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
)

// ReadFile reads a KEY=VALUE file without any interpolation.
//
// Blank lines, lines starting with '#' or ';', [section] headers and lines
// without '=' are skipped. Keys and values are trimmed and one pair of
// matching surrounding quotes is removed from the value. Everything else,
// including '$', is kept verbatim. A later duplicate key overwrites an earlier one.
func ReadFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	defer func() { _ = f.Close() }()

	values := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == ';' || line[0] == '[' {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = unquote(strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}

	return values, nil
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

// Require checks keys in order and returns a *MissingKeyError for the first
// one that is absent or empty.
func Require(values map[string]string, keys ...string) error {
	for _, key := range keys {
		if values[key] == "" {
			return &MissingKeyError{Key: key}
		}
	}
	return nil
}

// Decode parses values into T with caarlos0/env, using the map in place of
// the process environment. Decoding failures for a single field are reported
// as *InvalidValueError naming the variable.
func Decode[T any](values map[string]string) (T, error) {
	var v T
	err := env.ParseWithOptions(&v, env.Options{Environment: values})
	if err == nil {
		return v, nil
	}

	var aggErr env.AggregateError
	if errors.As(err, &aggErr) {
		for _, e := range aggErr.Errors {
			var perr env.ParseError
			if errors.As(e, &perr) {
				return v, &InvalidValueError{Key: envKey[T](perr.Name), Err: perr.Err}
			}
		}
	}
	return v, fmt.Errorf("%w: %w", ErrParse, err)
}

// envKey maps a struct field name of T to its env tag, falling back to the field name.
func envKey[T any](field string) string {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		return field
	}
	sf, ok := typ.FieldByName(field)
	if !ok {
		return field
	}
	if name, _, _ := strings.Cut(sf.Tag.Get("env"), ","); name != "" {
		return name
	}
	return field
}
