package style

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

type parseConfig struct {
	source  string
	lenient bool
}

// ParseOption configures Parse
type ParseOption func(*parseConfig)

// Lenient makes Parse skip malformed lines and let a repeated key replace
// the earlier value instead of failing. Each such event is kept as a
// Warning on the returned table.
func Lenient() ParseOption {
	return func(c *parseConfig) {
		c.lenient = true
	}
}

// WithSource names the input in errors and warnings
func WithSource(name string) ParseOption {
	return func(c *parseConfig) {
		c.source = name
	}
}

// ParseFile parses the style file at path.
func ParseFile(path string, opts ...ParseOption) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f, append([]ParseOption{WithSource(path)}, opts...)...)
}

// Parse reads "key : value  # comment" lines from r. Blank lines and lines
// that are only a comment are ignored.
func Parse(r io.Reader, opts ...ParseOption) (*Table, error) {
	cfg := parseConfig{source: "<input>"}
	for _, opt := range opts {
		opt(&cfg)
	}

	t := &Table{index: make(map[string]int)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		if lineNo == 1 {
			raw = strings.TrimPrefix(raw, "\ufeff")
		}

		content, comment := splitComment(raw)
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}

		key, value, ok := strings.Cut(content, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			perr := &ParseError{Source: cfg.source, Line: lineNo, Text: raw, Err: ErrMalformedLine}
			if !cfg.lenient {
				return nil, perr
			}
			t.warnings = append(t.warnings, Warning{Line: lineNo, Message: "missing colon or key, line skipped"})
			continue
		}

		s := Setting{
			Key:     key,
			Value:   strings.TrimSpace(value),
			Comment: strings.TrimSpace(comment),
			Line:    lineNo,
		}

		if i, exists := t.index[key]; exists {
			if !cfg.lenient {
				return nil, &ParseError{Source: cfg.source, Line: lineNo, Text: raw, Err: ErrDuplicateKey}
			}
			t.warnings = append(t.warnings, Warning{
				Line:    lineNo,
				Message: fmt.Sprintf("duplicate key %q replaces the value from line %d", key, t.settings[i].Line),
			})
			t.settings[i] = s
			continue
		}

		t.index[key] = len(t.settings)
		t.settings = append(t.settings, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", cfg.source, err)
	}

	return t, nil
}

// splitComment cuts line at the first '#' that is not inside quotes.
func splitComment(line string) (content, comment string) {
	var quote rune
	for i, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '#':
			return line[:i], line[i+1:]
		}
	}
	return line, ""
}
