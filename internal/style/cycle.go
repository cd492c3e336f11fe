package style

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Cycle returns the color tokens of a color cycle value. Three spellings
// are understood:
//
//	cycler('color', ['348ABD', 'A60628'])
//	cycler(color=['348ABD', 'A60628'])
//	348ABD, A60628
//
// Tokens come back without quotes or a leading '#'.
func (v Value) Cycle() ([]string, error) {
	s := strings.TrimSpace(string(v))

	if strings.HasPrefix(s, "cycler(") {
		if !strings.HasSuffix(s, ")") {
			return nil, fmt.Errorf("unterminated cycler expression")
		}
		inner := strings.TrimSpace(s[len("cycler(") : len(s)-1])
		list, err := cyclerColorList(inner)
		if err != nil {
			return nil, err
		}
		s = list
	}

	var tokens []string
	for _, part := range strings.Split(s, ",") {
		tok := strings.TrimSpace(part)
		tok = strings.Trim(tok, `'"`)
		tok = strings.TrimPrefix(strings.TrimSpace(tok), "#")
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty color cycle")
	}
	return tokens, nil
}

// CycleColors is Cycle with every token parsed as a color.
func (v Value) CycleColors() ([]colorful.Color, error) {
	tokens, err := v.Cycle()
	if err != nil {
		return nil, err
	}
	return parseColors(tokens)
}

// cyclerColorList extracts the bracketed list from the arguments of a
// cycler call. Only the color property is supported.
func cyclerColorList(args string) (string, error) {
	var prop, rest string
	switch {
	case strings.HasPrefix(args, "'"), strings.HasPrefix(args, `"`):
		quote := args[:1]
		end := strings.Index(args[1:], quote)
		if end < 0 {
			return "", fmt.Errorf("unterminated property name")
		}
		prop = args[1 : end+1]
		rest = strings.TrimSpace(args[end+2:])
		if !strings.HasPrefix(rest, ",") {
			return "", fmt.Errorf("expected ',' after property name")
		}
		rest = strings.TrimSpace(rest[1:])
	default:
		eq := strings.IndexByte(args, '=')
		if eq < 0 {
			return "", fmt.Errorf("expected property name in cycler")
		}
		prop = strings.TrimSpace(args[:eq])
		rest = strings.TrimSpace(args[eq+1:])
	}

	if prop != "color" {
		return "", fmt.Errorf("unsupported cycler property %q", prop)
	}
	if !strings.HasPrefix(rest, "[") || !strings.HasSuffix(rest, "]") {
		return "", fmt.Errorf("expected a [...] list of colors")
	}
	return rest[1 : len(rest)-1], nil
}
