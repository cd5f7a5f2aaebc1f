/*
Package prediction provides the interface for destinations of predicted
labels and the means to drain predictions into them.
*/
package prediction

import (
	"context"
	"fmt"
)

/*
Sink is an interface for destinations of predicted labels, such as
the PredictionWriters in the dataset/csv and dataset/sqlset packages.
*/
type Sink interface {
	// Write takes a label and writes it after any previously
	// written one, returning an error if it cannot be written.
	Write(ctx context.Context, label int) error
	// Flush ensures any pending written labels are stored
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

/*
Iterator is an interface for sequences of predicted labels, like the
*bonsai.PredictionIter obtained from bonsai.Predictions.
*/
type Iterator interface {
	Next() bool
	Label() int
	Err() error
}

/*
Drain takes a context, an Iterator and a Sink and writes every label
from the Iterator onto the Sink in order, flushing the Sink at the end.
It returns the number of labels written and the first error found
iterating, writing or flushing, or the context's error if it is
cancelled.
*/
func Drain(ctx context.Context, it Iterator, sink Sink) (int, error) {
	var n int
	for it.Next() {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		err := sink.Write(ctx, it.Label())
		if err != nil {
			return n, fmt.Errorf("writing prediction #%d: %v", n, err)
		}
		n++
	}
	if err := it.Err(); err != nil {
		return n, err
	}
	if err := sink.Flush(); err != nil {
		return n, fmt.Errorf("flushing predictions: %v", err)
	}
	return n, nil
}
