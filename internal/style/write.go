package style

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteTo serializes the table in the same format Parse reads. A "###"
// banner starts every run of keys sharing a namespace. Parsing the output
// gives back the same keys, values and order.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	for _, s := range t.settings {
		if err := checkWritable(s); err != nil {
			return 0, err
		}
	}

	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	prev := ""
	for i, s := range t.settings {
		ns := s.Namespace()
		if i == 0 || ns != prev {
			if i > 0 {
				bw.WriteString("\n")
			}
			fmt.Fprintf(bw, "### %s\n", strings.ToUpper(ns))
			prev = ns
		}
		line := s.Key + " : " + s.Value
		if s.Comment != "" {
			line += "  # " + s.Comment
		}
		bw.WriteString(line)
		bw.WriteString("\n")
	}

	if err := bw.Flush(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// String returns the serialized table
func (t *Table) String() string {
	var sb strings.Builder
	if _, err := t.WriteTo(&sb); err != nil {
		return fmt.Sprintf("<unwritable table: %v>", err)
	}
	return sb.String()
}

// checkWritable reports settings whose text would not survive a trip
// through the line format.
func checkWritable(s Setting) error {
	switch {
	case s.Key == "" || s.Key != strings.TrimSpace(s.Key):
		return fmt.Errorf("%w: key %q is empty or padded", ErrMalformedLine, s.Key)
	case strings.ContainsAny(s.Key, ":#\n\r'\""):
		return fmt.Errorf("%w: key %q contains a reserved character", ErrMalformedLine, s.Key)
	case s.Value != strings.TrimSpace(s.Value) || strings.ContainsAny(s.Value, "\n\r"):
		return fmt.Errorf("%w: value of %s is padded or spans lines", ErrMalformedLine, s.Key)
	case strings.ContainsAny(s.Comment, "\n\r"):
		return fmt.Errorf("%w: comment of %s spans lines", ErrMalformedLine, s.Key)
	}
	if content, comment := splitComment(s.Value); content != s.Value || comment != "" {
		return fmt.Errorf("%w: value of %s contains an unquoted '#'", ErrMalformedLine, s.Key)
	}
	if s.Comment != "" && openQuote(s.Value) {
		return fmt.Errorf("%w: value of %s has an unclosed quote and a comment", ErrMalformedLine, s.Key)
	}
	return nil
}

func openQuote(s string) bool {
	var quote rune
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		}
	}
	return quote != 0
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
