package style

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed default.mplstyle
var defaultSource string

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// DefaultSource returns the text of the built-in style file
func DefaultSource() string {
	return defaultSource
}

// Default returns the built-in style table. It is parsed on first use and
// shared afterwards.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse(strings.NewReader(defaultSource), WithSource("default.mplstyle"))
		if err != nil {
			panic("style: embedded default is malformed: " + err.Error())
		}
		defaultTable = t
	})
	return defaultTable
}
