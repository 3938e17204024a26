package graphio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the encoding used by Encode.
type Format int

const (
	// YAML is two-space indented YAML.
	YAML Format = iota
	// JSON is indented JSON.
	JSON
)

// ErrFormat indicates an unknown format name.
var ErrFormat = errors.New("graphio: unknown format")

// String returns "yaml" or "json".
func (f Format) String() string {
	if f == JSON {
		return "json"
	}

	return "yaml"
}

// ParseFormat accepts "yaml", "yml" or "json", case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return YAML, nil
	case "json":
		return JSON, nil
	}

	return YAML, fmt.Errorf("%w: %q", ErrFormat, s)
}

// Encode writes v (a Document, a kruskal.Snapshot, a playback.View, ...) to w.
func Encode(w io.Writer, v any, f Format) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("graphio: encode json: %w", err)
		}
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("graphio: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("graphio: encode yaml: %w", err)
		}
	}

	return nil
}
