package bonsai

import (
	"math"
	"testing"

	"github.com/pbanos/bonsai/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labeled(label int, attributes ...float64) record.Record {
	return record.New(attributes, label)
}

func TestEntropySingleClass(t *testing.T) {
	e, err := Entropy([]record.Record{labeled(3, 1), labeled(3, 2), labeled(3, 7)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, e)
}

func TestEntropyEvenlySplitClasses(t *testing.T) {
	for k := 1; k <= 5; k++ {
		var records []record.Record
		for c := 0; c < k; c++ {
			for i := 0; i < 3; i++ {
				records = append(records, labeled(c, float64(i)))
			}
		}
		e, err := Entropy(records)
		require.NoError(t, err)
		assert.InDelta(t, math.Log2(float64(k)), e, 1e-12, "entropy for %d classes", k)
	}
}

func TestEntropyUnevenClasses(t *testing.T) {
	e, err := Entropy([]record.Record{labeled(0), labeled(1), labeled(1), labeled(1)})
	require.NoError(t, err)
	expected := -(0.25*math.Log2(0.25) + 0.75*math.Log2(0.75))
	assert.InDelta(t, expected, e, 1e-12)
}

func TestEntropyEmpty(t *testing.T) {
	_, err := Entropy(nil)
	assert.ErrorIs(t, err, record.ErrInvalidInput)
}

func TestInformationGain(t *testing.T) {
	records := []record.Record{labeled(0, 1), labeled(0, 2), labeled(1, 5), labeled(1, 6)}

	g, err := InformationGain(records, 0, 3.5)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, g, 1e-12)

	g, err = InformationGain(records, 0, 1.5)
	require.NoError(t, err)
	h := -(1.0/3.0*math.Log2(1.0/3.0) + 2.0/3.0*math.Log2(2.0/3.0))
	assert.InDelta(t, 1.0-0.75*h, g, 1e-12)
}

func TestInformationGainWithEmptyPart(t *testing.T) {
	records := []record.Record{labeled(0, 1), labeled(1, 2)}
	for _, threshold := range []float64{-10, 2, 10} {
		g, err := InformationGain(records, 0, threshold)
		require.NoError(t, err)
		assert.Equal(t, 0.0, g, "threshold %v", threshold)
	}
}

func TestInformationGainInvalidInput(t *testing.T) {
	_, err := InformationGain(nil, 0, 0)
	assert.ErrorIs(t, err, record.ErrInvalidInput)

	_, err = InformationGain([]record.Record{labeled(0, 1)}, 1, 0)
	assert.ErrorIs(t, err, record.ErrInvalidInput)

	_, err = InformationGain([]record.Record{labeled(0, 1)}, -1, 0)
	assert.ErrorIs(t, err, record.ErrInvalidInput)
}
