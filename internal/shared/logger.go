package shared

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// NewLogger returns a named hclog logger writing to w (stderr when nil).
func NewLogger(name, level string, w io.Writer) hclog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Output: w,
		Level:  lvl,
	})
}

// OrNull returns l, or a logger that discards everything when l is nil.
func OrNull(l hclog.Logger) hclog.Logger {
	if l == nil {
		return hclog.NewNullLogger()
	}
	return l
}
