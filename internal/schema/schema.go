package schema

import (
	"errors"
	"fmt"
	"sort"

	"github.com/NissesSenap/plotstyle/internal/style"
)

// ErrRuleExists is returned when a key is registered twice.
var ErrRuleExists = errors.New("rule already registered")

// Severity of a Problem
type Severity uint8

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Problem is one finding of Check.
type Problem struct {
	Key      string
	Line     int
	Severity Severity
	Message  string
}

func (p Problem) String() string {
	return fmt.Sprintf("line %d: %s: %s: %s", p.Line, p.Severity, p.Key, p.Message)
}

// Schema is a set of rules keyed by setting name.
type Schema struct {
	rules map[string]*Rule
}

// New creates an empty schema.
func New() *Schema {
	return &Schema{rules: make(map[string]*Rule)}
}

// Register adds a rule. Returns an error if the key already has one.
func (s *Schema) Register(rule Rule) error {
	if _, exists := s.rules[rule.Key]; exists {
		return fmt.Errorf("%w: %s", ErrRuleExists, rule.Key)
	}
	r := rule
	s.rules[rule.Key] = &r
	return nil
}

// MustRegister registers a rule and panics on error.
func (s *Schema) MustRegister(rule Rule) {
	if err := s.Register(rule); err != nil {
		panic(err)
	}
}

// Lookup returns the rule for key, or nil.
func (s *Schema) Lookup(key string) *Rule {
	return s.rules[key]
}

// Keys returns all registered keys sorted
func (s *Schema) Keys() []string {
	keys := make([]string, 0, len(s.rules))
	for k := range s.rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Check reports unknown keys as warnings and values that break their rule
// as errors, ordered by source line.
func (s *Schema) Check(t *style.Table) []Problem {
	var problems []Problem
	for _, setting := range t.Settings() {
		rule := s.rules[setting.Key]
		if rule == nil {
			problems = append(problems, Problem{
				Key:      setting.Key,
				Line:     setting.Line,
				Severity: SeverityWarning,
				Message:  "unknown style key",
			})
			continue
		}
		if err := rule.Validate(style.Value(setting.Value)); err != nil {
			problems = append(problems, Problem{
				Key:      setting.Key,
				Line:     setting.Line,
				Severity: SeverityError,
				Message:  err.Error(),
			})
		}
	}

	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].Line < problems[j].Line
	})
	return problems
}

// HasErrors reports whether any problem is an error.
func HasErrors(problems []Problem) bool {
	for _, p := range problems {
		if p.Severity == SeverityError {
			return true
		}
	}
	return false
}
