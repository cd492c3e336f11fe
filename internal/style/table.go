package style

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Setting is a single named default value
type Setting struct {
	Key     string
	Value   string
	Comment string
	Line    int // 1-based source line, 0 when built in memory
}

// Namespace returns the part of the key before the first dot
func (s Setting) Namespace() string {
	return Namespace(s.Key)
}

// Namespace returns the prefix of key up to the first dot, or the whole key
// when it has none.
func Namespace(key string) string {
	if i := strings.IndexByte(key, '.'); i >= 0 {
		return key[:i]
	}
	return key
}

// Table is an immutable, ordered set of settings with unique keys.
type Table struct {
	settings []Setting
	index    map[string]int
	warnings []Warning
}

// New builds a table from settings in the given order.
func New(settings []Setting) (*Table, error) {
	t := &Table{
		settings: make([]Setting, 0, len(settings)),
		index:    make(map[string]int, len(settings)),
	}
	for _, s := range settings {
		if _, exists := t.index[s.Key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, s.Key)
		}
		t.index[s.Key] = len(t.settings)
		t.settings = append(t.settings, s)
	}
	return t, nil
}

// Lookup returns the setting stored under key
func (t *Table) Lookup(key string) (Setting, error) {
	i, ok := t.index[key]
	if !ok {
		return Setting{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return t.settings[i], nil
}

// Value returns the value stored under key
func (t *Table) Value(key string) (Value, error) {
	s, err := t.Lookup(key)
	if err != nil {
		return "", err
	}
	return Value(s.Value), nil
}

// LookupOr returns the value for key, or fallback when the key is absent.
func (t *Table) LookupOr(key, fallback string) Value {
	if i, ok := t.index[key]; ok {
		return Value(t.settings[i].Value)
	}
	return Value(fallback)
}

func (t *Table) Has(key string) bool {
	_, ok := t.index[key]
	return ok
}

func (t *Table) Len() int {
	return len(t.settings)
}

// Keys returns all keys in source order
func (t *Table) Keys() []string {
	keys := make([]string, len(t.settings))
	for i, s := range t.settings {
		keys[i] = s.Key
	}
	return keys
}

// Settings returns a copy of all settings in source order
func (t *Table) Settings() []Setting {
	out := make([]Setting, len(t.settings))
	copy(out, t.settings)
	return out
}

// Map returns the key-value mapping without comments or order
func (t *Table) Map() map[string]string {
	m := make(map[string]string, len(t.settings))
	for _, s := range t.settings {
		m[s.Key] = s.Value
	}
	return m
}

// Namespaces returns the distinct key prefixes in order of first appearance.
func (t *Table) Namespaces() []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range t.settings {
		ns := s.Namespace()
		if !seen[ns] {
			seen[ns] = true
			out = append(out, ns)
		}
	}
	return out
}

// Section returns the settings whose namespace is ns
func (t *Table) Section(ns string) []Setting {
	var out []Setting
	for _, s := range t.settings {
		if s.Namespace() == ns {
			out = append(out, s)
		}
	}
	return out
}

// Warnings returns what lenient parsing skipped or replaced
func (t *Table) Warnings() []Warning {
	out := make([]Warning, len(t.warnings))
	copy(out, t.warnings)
	return out
}

// Float looks up key and interprets it as a number.
func (t *Table) Float(key string) (float64, error) {
	v, err := t.Value(key)
	if err != nil {
		return 0, err
	}
	f, err := v.Float()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func (t *Table) Int(key string) (int, error) {
	v, err := t.Value(key)
	if err != nil {
		return 0, err
	}
	n, err := v.Int()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func (t *Table) Bool(key string) (bool, error) {
	v, err := t.Value(key)
	if err != nil {
		return false, err
	}
	b, err := v.Bool()
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func (t *Table) Floats(key string) ([]float64, error) {
	v, err := t.Value(key)
	if err != nil {
		return nil, err
	}
	fs, err := v.Floats()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return fs, nil
}

func (t *Table) Color(key string) (colorful.Color, error) {
	v, err := t.Value(key)
	if err != nil {
		return colorful.Color{}, err
	}
	c, err := v.Color()
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%s: %w", key, err)
	}
	return c, nil
}

// Cycle returns the color tokens of the series color cycle. It reads
// axes.prop_cycle and falls back to the older axes.color_cycle key.
func (t *Table) Cycle() ([]string, error) {
	key := "axes.prop_cycle"
	if !t.Has(key) && t.Has("axes.color_cycle") {
		key = "axes.color_cycle"
	}
	v, err := t.Value(key)
	if err != nil {
		return nil, err
	}
	tokens, err := v.Cycle()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return tokens, nil
}

// CycleColors is Cycle with every token parsed as a color.
func (t *Table) CycleColors() ([]colorful.Color, error) {
	tokens, err := t.Cycle()
	if err != nil {
		return nil, err
	}
	return parseColors(tokens)
}
