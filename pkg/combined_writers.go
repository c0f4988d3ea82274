package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans a single write out to all of its writers,
// e.g. the rotated log file and stdout.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: append([]io.Writer(nil), writers...),
	}
}

// Write keeps going after a failed writer; n is the sum of bytes written
// by the writers that succeeded.
func (cw *CombinedWriter) Write(p []byte) (n int, err error) {
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		n += written
	}
	return n, err
}
