package shared

import (
	"encoding/json"
	"io"
	"sync"
)

// JSONWriter streams scan results as a JSON array. Nothing is written to
// disk; callers hand it stdout or a buffer.
type JSONWriter struct {
	mu      sync.Mutex
	w       io.Writer
	pretty  bool
	started bool
	first   bool
}

func NewJSONWriter(w io.Writer, pretty bool) *JSONWriter {
	if w == nil {
		return nil
	}
	return &JSONWriter{
		w:      w,
		pretty: pretty,
		first:  true,
	}
}

func (l *JSONWriter) WriteScan(res ScanResult) error {
	if l == nil || l.w == nil {
		return nil
	}

	res.ModeName = res.Mode.String()
	if res.Findings == nil {
		res.Findings = []Finding{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.started {
		if _, err := io.WriteString(l.w, "[\n"); err != nil {
			return err
		}
		l.started = true
	}

	if !l.first {
		if _, err := io.WriteString(l.w, ",\n"); err != nil {
			return err
		}
	}
	l.first = false

	var (
		out []byte
		err error
	)
	if l.pretty {
		// MarshalIndent skips the prefix on the first line
		out, err = json.MarshalIndent(res, "  ", "  ")
		out = append([]byte("  "), out...)
	} else {
		out, err = json.Marshal(res)
	}
	if err != nil {
		return err
	}

	if _, err := l.w.Write(out); err != nil {
		return err
	}
	if _, err := io.WriteString(l.w, "\n"); err != nil {
		return err
	}

	return nil
}

func (l *JSONWriter) Close() error {
	if l == nil || l.w == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.started {
		_, err := io.WriteString(l.w, "[]\n")
		return err
	}
	if _, err := io.WriteString(l.w, "]\n"); err != nil {
		return err
	}
	l.started = false
	return nil
}
