package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans out every write to all of its writers. Used to send logs
// to both stdout and the rotated log file.
type CombinedWriter struct {
	Writers []io.Writer
	// Err keeps the last failed write, if any.
	Err error
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: append([]io.Writer{}, writers...),
	}
}

func (cw *CombinedWriter) Write(p []byte) (n int, err error) {
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		n += written
	}
	if err != nil {
		cw.Err = err
	}
	return n, err
}
