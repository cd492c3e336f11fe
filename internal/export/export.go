// Package export converts style tables to and from other encodings: the
// native line format, flat YAML and TOML mappings, and nested JSON.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/NissesSenap/plotstyle/internal/style"
)

var (
	// ErrUnknownFormat is returned for a format name Encode and Decode do
	// not handle.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrKeyConflict is returned when a key is also the prefix of another
	// key, which nested JSON cannot express.
	ErrKeyConflict = errors.New("key is both a value and a prefix")
)

type Format string

const (
	FormatRC   Format = "rc"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Formats lists every supported format
var Formats = []Format{FormatRC, FormatYAML, FormatTOML, FormatJSON}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatRC, FormatYAML, FormatTOML, FormatJSON:
		return f, nil
	case "mplstyle":
		return FormatRC, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Encode writes t to w in the given format
func Encode(w io.Writer, t *style.Table, format Format) error {
	switch format {
	case FormatRC:
		_, err := t.WriteTo(w)
		return err

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(t.Map()); err != nil {
			return err
		}
		return enc.Close()

	case FormatTOML:
		return toml.NewEncoder(w).Encode(t.Map())

	case FormatJSON:
		doc, err := encodeJSON(t)
		if err != nil {
			return err
		}
		_, err = w.Write(append(doc, '\n'))
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Decode reads a table in the given format. YAML and TOML carry no order,
// so their keys come back sorted.
func Decode(r io.Reader, format Format, opts ...style.ParseOption) (*style.Table, error) {
	if format == FormatRC {
		return style.Parse(r, opts...)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatYAML:
		var m map[string]string
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
		return fromMap(m)

	case FormatTOML:
		var m map[string]string
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decoding toml: %w", err)
		}
		return fromMap(m)

	case FormatJSON:
		return decodeJSON(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func fromMap(m map[string]string) (*style.Table, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	settings := make([]style.Setting, len(keys))
	for i, k := range keys {
		settings[i] = style.Setting{Key: k, Value: m[k]}
	}
	return style.New(settings)
}

// encodeJSON nests keys on their dots: "axes.grid" becomes
// {"axes": {"grid": ...}}. Values stay strings.
func encodeJSON(t *style.Table) ([]byte, error) {
	keys := t.Keys()
	leaves := make(map[string]bool, len(keys))
	for _, k := range keys {
		leaves[k] = true
	}
	for _, k := range keys {
		for i := strings.IndexByte(k, '.'); i >= 0; i = nextDot(k, i) {
			if leaves[k[:i]] {
				return nil, fmt.Errorf("%w: %s and %s", ErrKeyConflict, k[:i], k)
			}
		}
	}

	doc := []byte("{}")
	var err error
	for _, s := range t.Settings() {
		doc, err = sjson.SetBytes(doc, escapePath(s.Key), s.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", s.Key, err)
		}
	}

	pretty := gjson.GetBytes(doc, "@pretty").Raw
	return bytes.TrimRight([]byte(pretty), "\n"), nil
}

func nextDot(s string, after int) int {
	j := strings.IndexByte(s[after+1:], '.')
	if j < 0 {
		return -1
	}
	return after + 1 + j
}

// escapePath escapes the characters sjson treats as path syntax, except
// the dots that separate levels.
func escapePath(key string) string {
	var sb strings.Builder
	for _, r := range key {
		switch r {
		case '*', '?', '|', '#', '@', '\\', ':', '!', '=', '<', '>', '%':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func decodeJSON(data []byte) (*style.Table, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("decoding json: invalid document")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("decoding json: top level is not an object")
	}

	var settings []style.Setting
	var walk func(prefix string, node gjson.Result) error
	walk = func(prefix string, node gjson.Result) error {
		var err error
		node.ForEach(func(key, value gjson.Result) bool {
			name := key.String()
			if prefix != "" {
				name = prefix + "." + name
			}
			switch {
			case value.IsObject():
				err = walk(name, value)
			case value.IsArray():
				err = fmt.Errorf("decoding json: %s is an array", name)
			default:
				settings = append(settings, style.Setting{Key: name, Value: value.String()})
			}
			return err == nil
		})
		return err
	}
	if err := walk("", root); err != nil {
		return nil, err
	}
	return style.New(settings)
}
