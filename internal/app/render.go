package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats understood by Render.
const (
	FormatJSON = "json"
	FormatRaw  = "raw"
	FormatYAML = "yaml"
)

// Render writes payload to w in the requested format. FormatRaw writes the
// bytes exactly as received.
func Render(w io.Writer, payload json.RawMessage, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatRaw:
		_, err := w.Write(payload)
		return err
	case "", FormatJSON:
		var buf bytes.Buffer
		if err := json.Indent(&buf, payload, "", "  "); err != nil {
			return fmt.Errorf("indent json: %w", err)
		}
		buf.WriteByte('\n')
		_, err := buf.WriteTo(w)
		return err
	case FormatYAML:
		// JSON is a YAML subset; decoding through yaml.v3 keeps integer types.
		var v any
		if err := yaml.Unmarshal(payload, &v); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// Bundle merges named payloads into a single JSON object with sorted keys.
// Each payload is copied verbatim.
func Bundle(payloads map[string]json.RawMessage) (json.RawMessage, error) {
	names := make([]string, 0, len(payloads))
	for name := range payloads {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, fmt.Errorf("bundle key %q: %w", name, err)
		}
		payload := payloads[name]
		if !json.Valid(payload) {
			return nil, fmt.Errorf("bundle %s: payload is not valid JSON", name)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(payload)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
