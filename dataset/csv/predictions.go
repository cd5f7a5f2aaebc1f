package csv

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
)

// DefaultPredictionHeader is the header line written before predictions
// unless another one is given.
const DefaultPredictionHeader = "Prediction"

/*
PredictionWriter writes predicted labels onto an io.Writer, one integer per
line, optionally preceded by a header line.
*/
type PredictionWriter struct {
	w     *bufio.Writer
	count int
}

/*
NewPredictionWriter takes an io.Writer and a header string and returns a
PredictionWriter for it. The header is written first unless it is empty.
*/
func NewPredictionWriter(writer io.Writer, header string) (*PredictionWriter, error) {
	pw := &PredictionWriter{w: bufio.NewWriter(writer)}
	if header != "" {
		_, err := fmt.Fprintln(pw.w, header)
		if err != nil {
			return nil, fmt.Errorf("writing predictions header: %v", err)
		}
	}
	return pw, nil
}

// Write writes the given label on a line of its own.
func (pw *PredictionWriter) Write(ctx context.Context, label int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := pw.w.WriteString(strconv.Itoa(label) + "\n")
	if err != nil {
		return fmt.Errorf("writing prediction %d: %v", pw.count+1, err)
	}
	pw.count++
	return nil
}

// Count returns the number of predictions written.
func (pw *PredictionWriter) Count() int {
	return pw.count
}

// Flush writes any buffered predictions to the underlying io.Writer.
func (pw *PredictionWriter) Flush() error {
	return pw.w.Flush()
}
