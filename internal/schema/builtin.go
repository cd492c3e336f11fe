package schema

import "sync"

var (
	builtinOnce   sync.Once
	builtinSchema *Schema
)

func ptr(f float64) *float64 { return &f }

// Builtin returns the schema of the keys the bundled default style uses,
// plus closely related keys that style files commonly set.
func Builtin() *Schema {
	builtinOnce.Do(func() {
		s := New()
		for _, r := range builtinRules() {
			s.MustRegister(r)
		}
		builtinSchema = s
	})
	return builtinSchema
}

func builtinRules() []Rule {
	nonNeg := ptr(0)
	unit := ptr(1)

	rules := []Rule{
		{Key: "lines.linewidth", Kind: KindFloat, Min: nonNeg, Description: "line width in points"},
		{Key: "lines.linestyle", Kind: KindLineStyle, Description: "default line style"},
		{Key: "lines.antialiased", Kind: KindBool, Description: "antialias lines"},
		{Key: "lines.markersize", Kind: KindFloat, Min: nonNeg, Description: "marker size in points"},
		{Key: "lines.color", Kind: KindColor, Description: "default line color"},

		{Key: "patch.linewidth", Kind: KindFloat, Min: nonNeg, Description: "patch edge width in points"},
		{Key: "patch.facecolor", Kind: KindColor, Description: "patch fill color"},
		{Key: "patch.edgecolor", Kind: KindColor, Description: "patch edge color"},
		{Key: "patch.antialiased", Kind: KindBool, Description: "antialias patches"},

		{Key: "font.family", Kind: KindString, Description: "font family"},
		{Key: "font.size", Kind: KindFloat, Min: ptr(0.1), Description: "base font size in points"},
		{Key: "font.weight", Kind: KindString, Description: "font weight"},

		{Key: "text.color", Kind: KindColor, Description: "text color"},
		{Key: "text.hinting_factor", Kind: KindInt, Min: nonNeg, Description: "horizontal hinting softness"},
		{Key: "text.antialiased", Kind: KindBool, Description: "antialias text"},

		{Key: "axes.facecolor", Kind: KindColor, Description: "axes background color"},
		{Key: "axes.edgecolor", Kind: KindColor, Description: "axes edge color"},
		{Key: "axes.linewidth", Kind: KindFloat, Min: nonNeg, Description: "axes edge width"},
		{Key: "axes.grid", Kind: KindBool, Description: "draw grid lines"},
		{Key: "axes.titlesize", Kind: KindFontSize, Description: "axes title font size"},
		{Key: "axes.labelsize", Kind: KindFontSize, Description: "axis label font size"},
		{Key: "axes.labelcolor", Kind: KindColor, Description: "axis label color"},
		{Key: "axes.axisbelow", Kind: KindBool, Description: "draw grid and ticks below data"},
		{Key: "axes.prop_cycle", Kind: KindCycle, Description: "series color cycle"},
		{Key: "axes.color_cycle", Kind: KindCycle, Description: "series color cycle (legacy spelling)"},

		{Key: "grid.color", Kind: KindColor, Description: "grid line color"},
		{Key: "grid.linestyle", Kind: KindLineStyle, Description: "grid line style"},
		{Key: "grid.linewidth", Kind: KindFloat, Min: nonNeg, Description: "grid line width"},
		{Key: "grid.alpha", Kind: KindFloat, Min: nonNeg, Max: unit, Description: "grid line opacity"},

		{Key: "legend.fancybox", Kind: KindBool, Description: "rounded legend box"},
		{Key: "legend.numpoints", Kind: KindInt, Min: unit, Description: "markers per legend line"},
		{Key: "legend.frameon", Kind: KindBool, Description: "draw legend frame"},
		{Key: "legend.fontsize", Kind: KindFontSize, Description: "legend font size"},
		{Key: "legend.loc", Kind: KindString, Description: "legend location"},

		{Key: "figure.figsize", Kind: KindFloatList, Len: 2, Min: ptr(0.01), Description: "figure width and height in inches"},
		{Key: "figure.facecolor", Kind: KindColor, Description: "figure background color"},
		{Key: "figure.edgecolor", Kind: KindColor, Description: "figure edge color"},
		{Key: "figure.dpi", Kind: KindFloat, Min: ptr(1), Description: "figure resolution"},
		{Key: "figure.subplot.left", Kind: KindFloat, Min: nonNeg, Max: unit, Description: "left subplot margin"},
		{Key: "figure.subplot.right", Kind: KindFloat, Min: nonNeg, Max: unit, Description: "right subplot margin"},
		{Key: "figure.subplot.bottom", Kind: KindFloat, Min: nonNeg, Max: unit, Description: "bottom subplot margin"},
		{Key: "figure.subplot.top", Kind: KindFloat, Min: nonNeg, Max: unit, Description: "top subplot margin"},

		{Key: "image.cmap", Kind: KindString, Description: "default colormap"},
		{Key: "image.origin", Kind: KindEnum, Enum: []string{"upper", "lower"}, Description: "pixel origin"},
		{Key: "image.interpolation", Kind: KindString, Description: "image interpolation"},
		{Key: "image.aspect", Kind: KindString, Description: "image aspect"},

		{Key: "savefig.dpi", Kind: KindFloat, Min: ptr(1), Description: "output resolution"},
		{Key: "savefig.facecolor", Kind: KindColor, Description: "saved figure background"},
		{Key: "savefig.format", Kind: KindEnum, Enum: []string{"png", "svg", "pdf", "eps", "ps"}, Description: "output format"},
	}

	for _, axis := range []string{"xtick", "ytick"} {
		rules = append(rules,
			Rule{Key: axis + ".major.size", Kind: KindFloat, Min: nonNeg, Description: "major tick length"},
			Rule{Key: axis + ".minor.size", Kind: KindFloat, Min: nonNeg, Description: "minor tick length"},
			Rule{Key: axis + ".major.width", Kind: KindFloat, Min: nonNeg, Description: "major tick width"},
			Rule{Key: axis + ".minor.width", Kind: KindFloat, Min: nonNeg, Description: "minor tick width"},
			Rule{Key: axis + ".major.pad", Kind: KindFloat, Description: "major tick label padding"},
			Rule{Key: axis + ".minor.pad", Kind: KindFloat, Description: "minor tick label padding"},
			Rule{Key: axis + ".color", Kind: KindColor, Description: "tick color"},
			Rule{Key: axis + ".direction", Kind: KindEnum, Enum: []string{"in", "out", "inout"}, Description: "tick direction"},
			Rule{Key: axis + ".labelsize", Kind: KindFontSize, Description: "tick label font size"},
		)
	}
	return rules
}
