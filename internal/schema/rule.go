// Package schema describes which keys a style table may contain and what
// their values must look like. It is the consumer-side loader's view of a
// style file; style tables themselves never validate.
package schema

import (
	"fmt"
	"math"
	"strings"

	"github.com/NissesSenap/plotstyle/internal/style"
)

// Kind is the expected shape of a value.
type Kind uint8

const (
	KindString Kind = iota
	KindFloat
	KindInt
	KindBool
	KindColor
	// KindFontSize is a positive number or a relative size name.
	KindFontSize
	KindEnum
	KindFloatList
	KindCycle
	KindLineStyle
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindColor:
		return "color"
	case KindFontSize:
		return "fontsize"
	case KindEnum:
		return "enum"
	case KindFloatList:
		return "floatlist"
	case KindCycle:
		return "cycle"
	case KindLineStyle:
		return "linestyle"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

var fontSizes = []string{
	"xx-small", "x-small", "small", "medium", "large", "x-large", "xx-large",
	"smaller", "larger",
}

var lineStyles = []string{"-", "--", "-.", ":", "None", "none", "solid", "dashed", "dashdot", "dotted"}

// Rule constrains the value of one key.
type Rule struct {
	Key  string
	Kind Kind

	// Enum lists allowed tokens for KindEnum.
	Enum []string

	// Min and Max bound numeric kinds (nil means unbounded).
	Min *float64
	Max *float64

	// Len is the required element count for KindFloatList (0 means any).
	Len int

	Description string
}

// Validate checks v against the rule
func (r *Rule) Validate(v style.Value) error {
	switch r.Kind {
	case KindString:
		return nil

	case KindFloat:
		f, err := v.Float()
		if err != nil {
			return err
		}
		return r.validateRange(f)

	case KindInt:
		n, err := v.Int()
		if err != nil {
			return err
		}
		return r.validateRange(float64(n))

	case KindBool:
		_, err := v.Bool()
		return err

	case KindColor:
		_, err := v.Color()
		return err

	case KindFontSize:
		if contains(fontSizes, v.String()) {
			return nil
		}
		f, err := v.Float()
		if err != nil {
			return fmt.Errorf("expected a font size, one of %s or a number", strings.Join(fontSizes, ", "))
		}
		if f <= 0 {
			return fmt.Errorf("font size %v must be positive", f)
		}
		return nil

	case KindEnum:
		if !contains(r.Enum, v.String()) {
			return fmt.Errorf("value %q must be one of: %s", v.String(), strings.Join(r.Enum, ", "))
		}
		return nil

	case KindFloatList:
		fs, err := v.Floats()
		if err != nil {
			return err
		}
		if r.Len > 0 && len(fs) != r.Len {
			return fmt.Errorf("expected %d numbers, got %d", r.Len, len(fs))
		}
		for _, f := range fs {
			if err := r.validateRange(f); err != nil {
				return err
			}
		}
		return nil

	case KindCycle:
		_, err := v.CycleColors()
		return err

	case KindLineStyle:
		if !contains(lineStyles, v.String()) {
			return fmt.Errorf("value %q is not a line style", v.String())
		}
		return nil
	}
	return fmt.Errorf("unknown kind %v", r.Kind)
}

func (r *Rule) validateRange(f float64) error {
	if math.IsNaN(f) && (r.Min != nil || r.Max != nil) {
		return fmt.Errorf("value %v is not a number", f)
	}
	if r.Min != nil && f < *r.Min {
		return fmt.Errorf("value %v is less than minimum %v", f, *r.Min)
	}
	if r.Max != nil && f > *r.Max {
		return fmt.Errorf("value %v is greater than maximum %v", f, *r.Max)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
