package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans each Write out to all of its writers, so log
// output can reach stdout and the rolling log file in one call.
type CombinedWriter struct {
	writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{writers: writers}
}

// Write reports the total bytes written across all writers; errors from
// individual writers are combined, and a failing writer does not stop
// the others from receiving p.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var total int
	var errs error
	for _, w := range cw.writers {
		written, err := w.Write(p)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		total += written
	}
	return total, errs
}
