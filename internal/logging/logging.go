package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"golang.org/x/term"
)

// Format selects how log records are rendered.
type Format string

const (
	// FormatAuto picks text on a terminal, logfmt inside GitHub Actions and
	// JSON everywhere else.
	FormatAuto   Format = "auto"
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatLogfmt Format = "logfmt"
)

// ParseFormat parses a --log-format value. The empty string is FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatText, FormatJSON, FormatLogfmt:
		return f, nil
	}
	return "", fmt.Errorf("unknown log format %q (want auto, text, json or logfmt)", s)
}

// Setup initializes the global slog logger using charmbracelet/log as the backend.
func Setup(verbose bool, format Format) {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, verbose, resolve(format))))
}

// NewHandler returns a charmbracelet/log handler writing to w.
// FormatAuto is treated as text.
func NewHandler(w io.Writer, verbose bool, format Format) *charmlog.Logger {
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
	})

	if verbose {
		handler.SetLevel(charmlog.DebugLevel)
	} else {
		handler.SetLevel(charmlog.InfoLevel)
	}

	switch format {
	case FormatJSON:
		handler.SetFormatter(charmlog.JSONFormatter)
	case FormatLogfmt:
		handler.SetFormatter(charmlog.LogfmtFormatter)
	}

	return handler
}

func resolve(format Format) Format {
	if format != FormatAuto && format != "" {
		return format
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return FormatLogfmt
	}
	if !isTerminal() {
		return FormatJSON
	}
	return FormatText
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
