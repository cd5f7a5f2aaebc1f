package bonsai

import (
	"testing"

	"github.com/pbanos/bonsai/record"
	"github.com/pbanos/bonsai/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInducerNotTrained(t *testing.T) {
	in := New(nil)
	_, err := in.Evaluate([]record.Record{labeled(0, 1)})
	assert.Equal(t, ErrNotTrained, err)
	_, err = in.Predict([]record.Record{record.NewUnlabeled([]float64{1})})
	assert.Equal(t, ErrNotTrained, err)
	_, err = in.Tree()
	assert.Equal(t, ErrNotTrained, err)
	_, err = in.Classify(record.NewUnlabeled([]float64{1}))
	assert.Equal(t, ErrNotTrained, err)
}

func TestInducerTrainInvalidInputKeepsState(t *testing.T) {
	in := New(nil)
	require.NoError(t, in.Train([]record.Record{labeled(0, 1), labeled(1, 5)}))
	root, err := in.Tree()
	require.NoError(t, err)

	err = in.Train(nil)
	assert.ErrorIs(t, err, record.ErrInvalidInput)
	after, err := in.Tree()
	require.NoError(t, err)
	assert.Equal(t, root, after)
	assert.Len(t, in.TrainingRecords(), 2)
}

func TestInducerScenario(t *testing.T) {
	in := New(nil)
	training := []record.Record{labeled(0, 1.0), labeled(0, 2.0), labeled(1, 5.0), labeled(1, 6.0)}
	require.NoError(t, in.Train(training))

	accuracy, err := in.Evaluate(training)
	require.NoError(t, err)
	assert.Equal(t, 1.0, accuracy)

	accuracy, err = in.Evaluate([]record.Record{labeled(0, 3.0), labeled(0, 4.0)})
	require.NoError(t, err)
	assert.Equal(t, 0.5, accuracy)

	p, err := in.Predict([]record.Record{record.NewUnlabeled([]float64{3.0}), record.NewUnlabeled([]float64{4.0}), record.NewUnlabeled([]float64{3.5})})
	require.NoError(t, err)
	labels, err := p.Labels()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0}, labels)
}

func TestInducerTrainingSnapshot(t *testing.T) {
	in := New(nil)
	training := []record.Record{labeled(0, 1.0), labeled(1, 6.0)}
	require.NoError(t, in.Train(training))
	training[0] = labeled(1, 1.0)
	assert.Equal(t, 0, in.TrainingRecords()[0].Label)
}

func TestInducerEvaluateInvalidInput(t *testing.T) {
	in := New(nil)
	require.NoError(t, in.Train([]record.Record{labeled(0, 1, 1), labeled(1, 1, 5)}))
	cases := map[string][]record.Record{
		"empty":     nil,
		"unlabeled": {record.NewUnlabeled([]float64{1, 1})},
		"too short": {labeled(0, 1)},
	}
	for name, records := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := in.Evaluate(records)
			assert.ErrorIs(t, err, record.ErrInvalidInput)
		})
	}
}

func TestPredictionsAreRestartable(t *testing.T) {
	in := New(nil)
	training := separableRecords()
	require.NoError(t, in.Train(training))
	stripped := make([]record.Record, len(training))
	for i, r := range training {
		stripped[i] = r.Unlabeled()
	}
	p, err := in.Predict(stripped)
	require.NoError(t, err)
	assert.Equal(t, len(training), p.Len())

	first, err := p.Labels()
	require.NoError(t, err)
	second, err := p.Labels()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	for i, r := range training {
		l, err := in.Classify(r)
		require.NoError(t, err)
		assert.Equal(t, l, first[i])
		assert.Equal(t, r.Label, first[i])
	}
	accuracy, err := in.Evaluate(training)
	require.NoError(t, err)
	assert.Equal(t, 1.0, accuracy)
}

func TestPredictionsAreLazy(t *testing.T) {
	in := NewWithTree(tree.NewSplit(1, 0, tree.NewLeaf(0), tree.NewLeaf(1)), nil)
	records := []record.Record{
		record.NewUnlabeled([]float64{0, -1}),
		record.NewUnlabeled([]float64{0, 1}),
		record.NewUnlabeled([]float64{0}),
		record.NewUnlabeled([]float64{0, 1}),
	}
	p, err := in.Predict(records)
	require.NoError(t, err)
	it := p.Iter()
	require.True(t, it.Next())
	assert.Equal(t, 0, it.Label())
	assert.Equal(t, 0, it.Index())
	require.True(t, it.Next())
	assert.Equal(t, 1, it.Label())
	assert.False(t, it.Next())
	assert.ErrorIs(t, it.Err(), record.ErrInvalidInput)
	assert.False(t, it.Next())

	labels, err := p.Labels()
	assert.ErrorIs(t, err, record.ErrInvalidInput)
	assert.Equal(t, []int{0, 1}, labels)
}

func TestPredictionsOfNoRecords(t *testing.T) {
	in := NewWithTree(tree.NewLeaf(2), nil)
	p, err := in.Predict(nil)
	require.NoError(t, err)
	it := p.Iter()
	assert.False(t, it.Next())
	assert.NoError(t, it.Err())
}

func TestInducerLogsTrainingSummary(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	in := New(zap.New(core))
	require.NoError(t, in.Train([]record.Record{labeled(0, 1.0), labeled(0, 2.0), labeled(1, 5.0), labeled(1, 6.0)}))
	entries := logs.FilterMessage("tree grown").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 4, fields["records"])
	assert.EqualValues(t, 3, fields["nodes"])
	assert.EqualValues(t, 2, fields["leaves"])
	assert.EqualValues(t, 1, fields["depth"])
}
