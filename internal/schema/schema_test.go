package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NissesSenap/plotstyle/internal/style"
)

func TestBuiltin_DefaultStyleIsClean(t *testing.T) {
	problems := Builtin().Check(style.Default())
	assert.Empty(t, problems)

	for _, key := range style.Default().Keys() {
		assert.NotNil(t, Builtin().Lookup(key), "no rule for %s", key)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	s := New()
	require.NoError(t, s.Register(Rule{Key: "axes.grid", Kind: KindBool}))

	err := s.Register(Rule{Key: "axes.grid", Kind: KindString})
	assert.ErrorIs(t, err, ErrRuleExists)

	assert.Panics(t, func() {
		s.MustRegister(Rule{Key: "axes.grid", Kind: KindBool})
	})
	assert.Equal(t, []string{"axes.grid"}, s.Keys())
}

func TestCheck(t *testing.T) {
	input := `axes.grid : sometimes
figure.figsize : 8, 4.944, 3
unknown.key : 1
lines.linewidth : -1
image.origin : lower
axes.titlesize : huge
`
	table, err := style.Parse(strings.NewReader(input))
	require.NoError(t, err)

	problems := Builtin().Check(table)
	require.Len(t, problems, 5)

	assert.Equal(t, "axes.grid", problems[0].Key)
	assert.Equal(t, SeverityError, problems[0].Severity)

	assert.Equal(t, "figure.figsize", problems[1].Key)
	assert.Contains(t, problems[1].Message, "expected 2 numbers")

	assert.Equal(t, "unknown.key", problems[2].Key)
	assert.Equal(t, SeverityWarning, problems[2].Severity)
	assert.Equal(t, "unknown style key", problems[2].Message)

	assert.Equal(t, "lines.linewidth", problems[3].Key)
	assert.Contains(t, problems[3].Message, "minimum")

	assert.Equal(t, "axes.titlesize", problems[4].Key)
	assert.Equal(t, 6, problems[4].Line)
	assert.Contains(t, problems[4].String(), "line 6: error: axes.titlesize")

	assert.True(t, HasErrors(problems))
	assert.False(t, HasErrors(problems[2:3]))
}

func TestCheck_NaNWidth(t *testing.T) {
	table, err := style.Parse(strings.NewReader("lines.linewidth : nan\n"))
	require.NoError(t, err)

	problems := Builtin().Check(table)
	require.Len(t, problems, 1)
	assert.Equal(t, "lines.linewidth", problems[0].Key)
	assert.Equal(t, SeverityError, problems[0].Severity)
}

func TestRule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		value   string
		wantErr bool
	}{
		{"float ok", Rule{Kind: KindFloat}, "2.5", false},
		{"float bad", Rule{Kind: KindFloat}, "wide", true},
		{"float above max", Rule{Kind: KindFloat, Max: ptr(1)}, "1.5", true},
		{"float nan with min", Rule{Kind: KindFloat, Min: ptr(0)}, "nan", true},
		{"float nan unbounded", Rule{Kind: KindFloat}, "nan", false},
		{"int ok", Rule{Kind: KindInt}, "72", false},
		{"int fraction", Rule{Kind: KindInt}, "7.2", true},
		{"bool ok", Rule{Kind: KindBool}, "False", false},
		{"color ok", Rule{Kind: KindColor}, "bcbcbc", false},
		{"color bad", Rule{Kind: KindColor}, "blurple", true},
		{"fontsize name", Rule{Kind: KindFontSize}, "x-large", false},
		{"fontsize number", Rule{Kind: KindFontSize}, "12", false},
		{"fontsize zero", Rule{Kind: KindFontSize}, "0", true},
		{"enum ok", Rule{Kind: KindEnum, Enum: []string{"in", "out"}}, "in", false},
		{"enum bad", Rule{Kind: KindEnum, Enum: []string{"in", "out"}}, "up", true},
		{"list ok", Rule{Kind: KindFloatList, Len: 2}, "8, 4.944", false},
		{"list short", Rule{Kind: KindFloatList, Len: 2}, "8", true},
		{"cycle ok", Rule{Kind: KindCycle}, "cycler('color', ['r', 'g'])", false},
		{"cycle bad color", Rule{Kind: KindCycle}, "cycler('color', ['r', 'nope'])", true},
		{"linestyle ok", Rule{Kind: KindLineStyle}, "--", false},
		{"linestyle bad", Rule{Kind: KindLineStyle}, "wavy", true},
		{"string anything", Rule{Kind: KindString}, "whatever", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate(style.Value(tt.value))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "cycle", KindCycle.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
	assert.Equal(t, "warning", SeverityWarning.String())
}
