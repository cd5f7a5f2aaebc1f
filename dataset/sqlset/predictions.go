package sqlset

import (
	"context"
	"fmt"
)

/*
PredictionWriter stores predicted labels in the predictions table of
a database, with their position as id. Labels are buffered and inserted
in batches.
*/
type PredictionWriter struct {
	adapter Adapter
	pending []int
	count   int
}

/*
NewPredictionWriter takes a context and an Adapter and returns a
PredictionWriter for it, creating the predictions table if it does not
exist yet and removing any predictions it holds, so ids always match the
positions of the records predicted.
*/
func NewPredictionWriter(ctx context.Context, adapter Adapter) (*PredictionWriter, error) {
	err := adapter.ResetPredictionTable(ctx)
	if err != nil {
		return nil, err
	}
	return &PredictionWriter{adapter: adapter}, nil
}

// Write buffers the given label, inserting the buffered labels when
// enough have been gathered.
func (pw *PredictionWriter) Write(ctx context.Context, label int) error {
	pw.pending = append(pw.pending, label)
	if len(pw.pending) < MaxRowInsertionsPerStatement {
		return nil
	}
	return pw.flush(ctx)
}

// Flush inserts any buffered labels.
func (pw *PredictionWriter) Flush() error {
	return pw.flush(context.Background())
}

// Count returns the number of predictions inserted.
func (pw *PredictionWriter) Count() int {
	return pw.count
}

func (pw *PredictionWriter) flush(ctx context.Context) error {
	if len(pw.pending) == 0 {
		return nil
	}
	n, err := pw.adapter.AddPredictions(ctx, pw.count, pw.pending)
	pw.count += n
	pw.pending = pw.pending[n:]
	if err != nil {
		return fmt.Errorf("writing predictions: %v", err)
	}
	pw.pending = pw.pending[:0]
	return nil
}
