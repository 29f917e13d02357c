package cli

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] for YAML configuration files.
//
// The file is a mapping from flag names to values. Keys may use hyphens
// or underscores, and may be nested one level under a command name to
// apply only to that command:
//
//	log-level: debug
//	log_pretty: false
//	apply:
//	  workers: 4
//
// Command-line flags override config file values. A file that is empty or
// not a mapping configures nothing.
func resolve(r io.Reader) (kong.Resolver, error) {
	var m map[string]any

	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return config{}, nil
		}

		return nil, err
	}

	return config(m), nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	parent *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if parent != nil && parent.Command != nil {
		if sub, ok := lookup(r, parent.Command.Name).(map[string]any); ok {
			if v := lookup(sub, flag.Name); v != nil {
				return scalar(v), nil
			}
		}
	}

	if v := lookup(r, flag.Name); v != nil {
		if _, nested := v.(map[string]any); !nested {
			return scalar(v), nil
		}
	}

	return nil, nil
}

// lookup finds name in m, trying the underscore spelling of hyphens.
func lookup(m map[string]any, name string) any {
	if v, ok := m[name]; ok {
		return v
	}

	return m[strings.ReplaceAll(name, "-", "_")]
}

// scalar converts decoded YAML numbers to the strings kong parses.
func scalar(v any) any {
	switch n := v.(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case []any:
		out := make([]any, len(n))
		for i, e := range n {
			out[i] = scalar(e)
		}

		return out
	default:
		return v
	}
}
