package bonsai

import (
	"fmt"

	"github.com/pbanos/bonsai/record"
	"github.com/pbanos/bonsai/tree"
)

/*
Predictions represents the labels a tree assigns to a sequence of records.
Labels are computed as they are iterated, and the sequence can be iterated
as many times as needed, each iteration yielding the same labels in the
same order as the records.
*/
type Predictions struct {
	root    tree.Node
	records []record.Record
}

// Len returns the number of labels in the predictions, one per record.
func (p *Predictions) Len() int {
	return len(p.records)
}

// Iter returns a new iterator positioned before the first label.
func (p *Predictions) Iter() *PredictionIter {
	return &PredictionIter{p: p, i: -1}
}

// Labels iterates over the predictions and returns all labels
// or the error that stopped the iteration.
func (p *Predictions) Labels() ([]int, error) {
	labels := make([]int, 0, p.Len())
	it := p.Iter()
	for it.Next() {
		labels = append(labels, it.Label())
	}
	return labels, it.Err()
}

/*
PredictionIter iterates over Predictions. Use it like:

	it := predictions.Iter()
	for it.Next() {
		label := it.Label()
		...
	}
	if err := it.Err(); err != nil {
		...
	}
*/
type PredictionIter struct {
	p     *Predictions
	i     int
	label int
	err   error
}

// Next classifies the next record and returns true, or returns false
// if there are no more records or a record could not be classified,
// in which case Err returns the reason.
func (it *PredictionIter) Next() bool {
	if it.err != nil || it.i >= len(it.p.records) {
		return false
	}
	it.i++
	if it.i >= len(it.p.records) {
		return false
	}
	label, err := tree.Classify(it.p.records[it.i], it.p.root)
	if err != nil {
		it.err = fmt.Errorf("predicting record #%d: %w", it.i, err)
		return false
	}
	it.label = label
	return true
}

// Label returns the label predicted for the current record.
func (it *PredictionIter) Label() int {
	return it.label
}

// Index returns the position of the current record, starting at 0.
func (it *PredictionIter) Index() int {
	return it.i
}

// Err returns the error that stopped the iteration, if any.
func (it *PredictionIter) Err() error {
	return it.err
}
