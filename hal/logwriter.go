package hal

import (
	"bytes"
	"io"
	"sync"
)

// LineWriter adapts a Logger to io.Writer. Writes are split on newlines;
// a trailing partial line is held until its newline arrives.
func LineWriter(l Logger) io.Writer {
	return &lineWriter{l: l}
}

type lineWriter struct {
	mu      sync.Mutex
	l       Logger
	pending []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = append(w.pending, p...)
	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}
		w.l.WriteLineBytes(w.pending[:i])
		w.pending = w.pending[i+1:]
	}
	if len(w.pending) == 0 {
		w.pending = nil
	}
	return len(p), nil
}
