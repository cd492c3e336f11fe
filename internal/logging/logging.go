// Package logging builds the structured logger shared by the commands.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/NissesSenap/plotstyle/internal/config"
)

// New returns a logger writing to w with the configured level and format.
// An unknown level or format still yields a usable logger (info, text)
// together with an error describing what was ignored.
func New(w io.Writer, cfg config.Logging) (*log.Logger, error) {
	var errs []string

	level := log.InfoLevel
	if cfg.Level != "" {
		parsed, err := log.ParseLevel(cfg.Level)
		if err != nil {
			errs = append(errs, fmt.Sprintf("log level %q", cfg.Level))
		} else {
			level = parsed
		}
	}

	formatter := log.TextFormatter
	switch strings.ToLower(cfg.Format) {
	case "", "text":
	case "logfmt":
		formatter = log.LogfmtFormatter
	case "json":
		formatter = log.JSONFormatter
	default:
		errs = append(errs, fmt.Sprintf("log format %q", cfg.Format))
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: formatter != log.TextFormatter,
		Prefix:          "plotstyle",
	})

	if len(errs) > 0 {
		return logger, fmt.Errorf("ignoring unknown %s", strings.Join(errs, " and "))
	}
	return logger, nil
}

// Discard returns a logger that drops everything
func Discard() *log.Logger {
	return log.New(io.Discard)
}
