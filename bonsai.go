/*
Package bonsai grows binary decision trees from labeled numeric records
and uses them to classify records.

Trees are grown choosing at every node the attribute threshold with the
greatest information gain, until all records of a node share a label or
no threshold improves on the node's entropy.
*/
package bonsai

import (
	"fmt"

	"github.com/pbanos/bonsai/record"
	"github.com/pbanos/bonsai/tree"
	"go.uber.org/zap"
)

// InducerError represents an error related with the use of an Inducer
type InducerError string

/*
ErrNotTrained is the error returned when an Inducer is asked to evaluate
records or make predictions before it has a tree to do so.
*/
const ErrNotTrained = InducerError("inducer has not been trained")

func (ie InducerError) Error() string {
	return string(ie)
}

/*
Inducer grows a tree from a set of training records and uses it to
evaluate and classify other records.

An Inducer must be trained with its Train method (or built with a tree
with NewWithTree) before evaluating or predicting records. Once trained
its tree is never modified, so it can be used from multiple goroutines to
evaluate and predict as long as Train is not called concurrently.
*/
type Inducer struct {
	logger  *zap.Logger
	records []record.Record
	root    tree.Node
}

// New returns an untrained Inducer that logs with the
// given logger. A nil logger disables logging.
func New(logger *zap.Logger) *Inducer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inducer{logger: logger}
}

// NewWithTree returns an Inducer that evaluates and predicts
// records with the given tree, such as a tree grown by another
// Inducer and persisted. A nil logger disables logging.
func NewWithTree(root tree.Node, logger *zap.Logger) *Inducer {
	in := New(logger)
	in.root = root
	return in
}

/*
Train takes a slice of labeled records, keeps a copy of it and grows a
tree from it that will be used by subsequent calls to Evaluate and
Predict. It returns an error wrapping record.ErrInvalidInput if the
records are not suitable to grow a tree (see Build), in which case the
Inducer keeps its previous state.
*/
func (in *Inducer) Train(records []record.Record) error {
	snapshot := make([]record.Record, len(records))
	copy(snapshot, records)
	root, err := Build(snapshot)
	if err != nil {
		return fmt.Errorf("training: %w", err)
	}
	in.records = snapshot
	in.root = root
	stats := tree.Measure(root)
	in.logger.Debug("tree grown",
		zap.Int("records", len(snapshot)),
		zap.Int("attributes", snapshot[0].Arity()),
		zap.Int("nodes", stats.Nodes),
		zap.Int("leaves", stats.Leaves),
		zap.Int("depth", stats.Depth),
	)
	return nil
}

// Tree returns the root of the tree of the Inducer, or
// ErrNotTrained if it has none.
func (in *Inducer) Tree() (tree.Node, error) {
	if in.root == nil {
		return nil, ErrNotTrained
	}
	return in.root, nil
}

// TrainingRecords returns the records the Inducer was last trained
// with. It returns nil for an Inducer built with NewWithTree.
func (in *Inducer) TrainingRecords() []record.Record {
	return in.records
}

// Classify returns the label the tree of the Inducer assigns to the
// given record. See tree.Classify.
func (in *Inducer) Classify(r record.Record) (int, error) {
	if in.root == nil {
		return 0, ErrNotTrained
	}
	return tree.Classify(r, in.root)
}

/*
Evaluate takes a slice of labeled records and returns the fraction of
them the tree of the Inducer classifies with their own label.

It returns ErrNotTrained if the Inducer has no tree and an error wrapping
record.ErrInvalidInput if the slice is empty, any record is unlabeled or
has fewer attributes than the tree expects.
*/
func (in *Inducer) Evaluate(records []record.Record) (float64, error) {
	if in.root == nil {
		return 0.0, ErrNotTrained
	}
	_, err := record.Validate(records, true)
	if err != nil {
		return 0.0, fmt.Errorf("evaluating: %w", err)
	}
	var hits int
	for i, r := range records {
		l, err := tree.Classify(r, in.root)
		if err != nil {
			return 0.0, fmt.Errorf("evaluating record #%d: %w", i, err)
		}
		if l == r.Label {
			hits++
		}
	}
	result := float64(hits) / float64(len(records))
	in.logger.Debug("records evaluated", zap.Int("records", len(records)), zap.Int("hits", hits), zap.Float64("accuracy", result))
	return result, nil
}

/*
Predict takes a slice of records and returns the Predictions of the tree
of the Inducer for them, or ErrNotTrained if it has no tree.

Records are classified lazily as the predictions are iterated, ignoring
their labels if they have any.
*/
func (in *Inducer) Predict(records []record.Record) (*Predictions, error) {
	if in.root == nil {
		return nil, ErrNotTrained
	}
	snapshot := make([]record.Record, len(records))
	copy(snapshot, records)
	return &Predictions{root: in.root, records: snapshot}, nil
}
