package bonsai

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pbanos/bonsai/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomRecords(seed int64, n, arity, classes int) []record.Record {
	r := rand.New(rand.NewSource(seed))
	records := make([]record.Record, n)
	for i := range records {
		attributes := make([]float64, arity)
		for j := range attributes {
			// few distinct values to get plenty of repeated ones
			attributes[j] = float64(r.Intn(8)) / 2.0
		}
		records[i] = labeled(r.Intn(classes), attributes...)
	}
	return records
}

func TestSweepMatchesInformationGain(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		records := randomRecords(seed, 40, 3, 3)
		sCounts := record.CountLabels(records)
		sEntropy := entropyOf(sCounts, len(records))
		for a := 0; a < 3; a++ {
			sorted := append([]record.Record(nil), records...)
			sortByAttribute(sorted, a)
			var visited int
			sweep(sorted, a, sCounts, sEntropy, func(threshold, informationGain float64) {
				visited++
				expected, err := InformationGain(records, a, threshold)
				require.NoError(t, err)
				assert.Equal(t, expected, informationGain, "seed %d attribute %d threshold %v", seed, a, threshold)
				assert.GreaterOrEqual(t, informationGain, -1e-12, "seed %d attribute %d threshold %v", seed, a, threshold)
			})
			assert.Equal(t, len(records)-1, visited)
		}
	}
}

// naiveBestSplit follows the textbook procedure: sort per attribute to
// obtain thresholds, but compute every information gain on the unsorted
// records with InformationGain.
func naiveBestSplit(t *testing.T, records []record.Record, arity int) (candidate, bool) {
	best := candidate{attribute: -1}
	for a := 0; a < arity; a++ {
		sorted := append([]record.Record(nil), records...)
		sortByAttribute(sorted, a)
		for i := 0; i < len(sorted)-1; i++ {
			threshold := midpoint(sorted[i].Attributes[a], sorted[i+1].Attributes[a])
			g, err := InformationGain(records, a, threshold)
			require.NoError(t, err)
			if g > best.informationGain {
				best = candidate{a, threshold, g}
			}
		}
	}
	return best, best.attribute >= 0
}

func TestBestSplitMatchesNaiveSearch(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		records := randomRecords(seed, 25, 4, 2)
		expected, expectedOK := naiveBestSplit(t, records, 4)
		c, ok := bestSplit(records, 4)
		assert.Equal(t, expectedOK, ok, "seed %d", seed)
		assert.Equal(t, expected, c, "seed %d", seed)
	}
}

func TestBestSplitFirstCandidateWinsTies(t *testing.T) {
	// both attributes separate the classes equally well
	records := []record.Record{labeled(0, 1, 1), labeled(0, 2, 2), labeled(1, 5, 5), labeled(1, 6, 6)}
	c, ok := bestSplit(records, 2)
	require.True(t, ok)
	assert.Equal(t, 0, c.attribute)
	assert.Equal(t, 3.5, c.threshold)

	// thresholds 1.5 and 2.5 achieve the same information gain
	records = []record.Record{labeled(0, 1), labeled(1, 2), labeled(0, 3)}
	c, ok = bestSplit(records, 1)
	require.True(t, ok)
	assert.Equal(t, 1.5, c.threshold)
}

func TestBestSplitNoPositiveGain(t *testing.T) {
	records := []record.Record{labeled(0, 1, 2), labeled(1, 1, 2), labeled(2, 1, 2)}
	_, ok := bestSplit(records, 2)
	assert.False(t, ok)

	// XOR: no single threshold reduces the entropy
	records = []record.Record{labeled(0, 0, 0), labeled(0, 1, 1), labeled(1, 0, 1), labeled(1, 1, 0)}
	_, ok = bestSplit(records, 2)
	assert.False(t, ok)
}

func TestPartition(t *testing.T) {
	records := []record.Record{labeled(0, 3), labeled(1, 1), labeled(2, 2), labeled(3, 5)}
	left, right := partition(records, 0, 2)
	assert.Equal(t, []record.Record{labeled(1, 1), labeled(2, 2)}, left)
	assert.Equal(t, []record.Record{labeled(0, 3), labeled(3, 5)}, right)
}

func TestMidpoint(t *testing.T) {
	assert.Equal(t, 3.5, midpoint(2, 5))
	assert.Equal(t, -1.0, midpoint(-1, -1))
	assert.InEpsilon(t, 1.35e308, midpoint(1e308, 1.7e308), 1e-12)
	assert.Equal(t, 0.0, midpoint(-math.MaxFloat64, math.MaxFloat64))
	assert.Equal(t, math.MaxFloat64, midpoint(math.MaxFloat64, math.MaxFloat64))
}
