package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// namedColors are the color names style files commonly use: the single
// letter base colors, the tab10 palette and a subset of the CSS names.
var namedColors = map[string]string{
	"b": "#0000ff",
	"g": "#008000",
	"r": "#ff0000",
	"c": "#00bfbf",
	"m": "#bf00bf",
	"y": "#bfbf00",
	"k": "#000000",
	"w": "#ffffff",

	"tab:blue":   "#1f77b4",
	"tab:orange": "#ff7f0e",
	"tab:green":  "#2ca02c",
	"tab:red":    "#d62728",
	"tab:purple": "#9467bd",
	"tab:brown":  "#8c564b",
	"tab:pink":   "#e377c2",
	"tab:gray":   "#7f7f7f",
	"tab:olive":  "#bcbd22",
	"tab:cyan":   "#17becf",

	"black":       "#000000",
	"white":       "#ffffff",
	"red":         "#ff0000",
	"green":       "#008000",
	"blue":        "#0000ff",
	"cyan":        "#00ffff",
	"magenta":     "#ff00ff",
	"yellow":      "#ffff00",
	"gray":        "#808080",
	"grey":        "#808080",
	"lightgray":   "#d3d3d3",
	"lightgrey":   "#d3d3d3",
	"darkgray":    "#a9a9a9",
	"darkgrey":    "#a9a9a9",
	"dimgray":     "#696969",
	"whitesmoke":  "#f5f5f5",
	"gainsboro":   "#dcdcdc",
	"silver":      "#c0c0c0",
	"orange":      "#ffa500",
	"purple":      "#800080",
	"brown":       "#a52a2a",
	"pink":        "#ffc0cb",
	"olive":       "#808000",
	"navy":        "#000080",
	"teal":        "#008080",
	"maroon":      "#800000",
	"lime":        "#00ff00",
	"gold":        "#ffd700",
	"indigo":      "#4b0082",
	"crimson":     "#dc143c",
	"steelblue":   "#4682b4",
	"darkblue":    "#00008b",
	"darkgreen":   "#006400",
	"darkred":     "#8b0000",
	"darkorange":  "#ff8c00",
	"forestgreen": "#228b22",
	"skyblue":     "#87ceeb",
	"slategray":   "#708090",
	"tomato":      "#ff6347",
	"salmon":      "#fa8072",
	"violet":      "#ee82ee",
	"beige":       "#f5f5dc",
	"ivory":       "#fffff0",
	"linen":       "#faf0e6",
	"snow":        "#fffafa",
}

// Color parses a color value: hex digits with or without '#', a color name,
// or a grey level between 0 and 1.
func (v Value) Color() (colorful.Color, error) {
	return ParseColor(string(v))
}

// ParseColor parses a single color token. See Value.Color.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.Trim(strings.TrimSpace(s), `'"`)
	if s == "" {
		return colorful.Color{}, fmt.Errorf("empty color")
	}

	if hex, ok := namedColors[strings.ToLower(s)]; ok {
		return colorful.Hex(hex)
	}

	digits := strings.TrimPrefix(s, "#")
	if isHex(digits) && (len(digits) == 6 || len(digits) == 3) {
		return colorful.Hex("#" + digits)
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f < 0 || f > 1 {
			return colorful.Color{}, fmt.Errorf("grey level %v outside [0, 1]", f)
		}
		return colorful.Color{R: f, G: f, B: f}, nil
	}

	return colorful.Color{}, fmt.Errorf("not a color: %q", s)
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func parseColors(tokens []string) ([]colorful.Color, error) {
	out := make([]colorful.Color, len(tokens))
	for i, tok := range tokens {
		c, err := ParseColor(tok)
		if err != nil {
			return nil, fmt.Errorf("cycle entry %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}
