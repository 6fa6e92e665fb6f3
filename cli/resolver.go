package cli

import (
	"io"
	"strings"

	"github.com/alecthomas/kong"
	yaml "github.com/goccy/go-yaml"
)

// loadYAML is a kong.ConfigurationLoader that reads CLI flag defaults from a
// YAML document, one top-level key per flag (hyphens or underscores, either
// spelling is accepted). Command-line flags always take precedence over
// whatever this resolves.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		// Matches the reference project's resolver: a malformed config file
		// resolves to no overrides rather than failing the run.
		return config{}, nil //nolint:nilerr
	}

	return config(m), nil
}

// config implements kong.Resolver over a flat YAML document.
type config map[string]any

// Validate implements kong.Resolver.
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements kong.Resolver.
func (r config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	name := flag.Name
	underscored := strings.ReplaceAll(name, "-", "_")

	if v, ok := r[name]; ok {
		return v, nil
	}

	if v, ok := r[underscored]; ok {
		return v, nil
	}

	return nil, nil
}
