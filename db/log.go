package db

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

// Logger receives a `*Log` for every executed statement. Nil disables logging.
type Logger interface {
	Debug(args ...any)
}

// Record of one executed statement. Duration is in microseconds.
type Log struct {
	Type     string `json:"type"`
	Query    string `json:"query"`
	Duration int64  `json:"duration"`
	Args     []any  `json:"args,omitempty"`
}

func (l *Log) PrettyPrint(writer io.Writer) {
	fmt.Fprintf(writer, "\u001B[38;5;8m%-32s \u001B[38;5;24m%-6s\u001B[0m %8d\u001B[38;5;8mµs\u001B[0m %s\n",
		l.Type, "SQL", l.Duration, clean(l.Query))
}

var whitespaceReg = regexp.MustCompile(`\s+`)

func clean(query string) string {
	return strings.TrimSpace(whitespaceReg.ReplaceAllString(query, " "))
}

func sendStats(logger Logger, start time.Time, queryType, query string, args []any) {
	if logger == nil {
		return
	}

	logger.Debug(&Log{
		Type:     queryType,
		Query:    query,
		Duration: time.Since(start).Microseconds(),
		Args:     args,
	})
}
