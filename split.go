package bonsai

import (
	"math"
	"sort"

	"github.com/pbanos/bonsai/record"
)

/*
candidate represents a way to split a set of records in two: those whose
value for the attribute is less than or equal to the threshold and the
rest, along with the information gain it achieves.
*/
type candidate struct {
	attribute       int
	threshold       float64
	informationGain float64
}

/*
bestSplit takes a slice of records and their arity and returns the
candidate split with the greatest information gain among the midpoints
between adjacent values of each attribute, and true. Attributes are
scanned in ascending order and thresholds in ascending order within each
attribute, and a candidate only replaces the current best when its
information gain is strictly greater, so the first of several equally
good candidates wins. Candidates must beat an information gain of 0;
if none does, bestSplit returns false.

For each attribute the records are sorted by its value and swept once,
accumulating label counts on each side of the threshold. Since all
records with values up to the threshold form a prefix of the sorted
slice, the counts are the same InformationGain computes by partitioning
the unsorted records, and so is the resulting information gain.
*/
func bestSplit(records []record.Record, arity int) (candidate, bool) {
	best := candidate{attribute: -1}
	sCounts := record.CountLabels(records)
	sEntropy := entropyOf(sCounts, len(records))
	sorted := make([]record.Record, len(records))
	for a := 0; a < arity; a++ {
		copy(sorted, records)
		sortByAttribute(sorted, a)
		sweep(sorted, a, sCounts, sEntropy, func(threshold, informationGain float64) {
			if informationGain > best.informationGain {
				best = candidate{a, threshold, informationGain}
			}
		})
	}
	return best, best.attribute >= 0
}

func sortByAttribute(records []record.Record, attribute int) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Attributes[attribute] < records[j].Attributes[attribute]
	})
}

// sweep goes through the records, sorted by the given attribute, calling
// f with the midpoint between every pair of adjacent values and the
// information gain of splitting the records by it, in ascending order.
// sCounts and sEntropy are the label counts and entropy of the records.
func sweep(sorted []record.Record, attribute int, sCounts record.LabelCounts, sEntropy float64, f func(threshold, informationGain float64)) {
	n := len(sorted)
	left := make(record.LabelCounts)
	right := sCounts.Clone()
	var leftCount int
	for i := 0; i < n-1; i++ {
		threshold := midpoint(sorted[i].Attributes[attribute], sorted[i+1].Attributes[attribute])
		for leftCount < n && sorted[leftCount].Attributes[attribute] <= threshold {
			l := sorted[leftCount].Label
			left[l]++
			right[l]--
			leftCount++
		}
		f(threshold, gain(sEntropy, left, leftCount, right, n-leftCount))
	}
}

// midpoint returns the value halfway between a and b, halving them
// before adding when their sum overflows.
func midpoint(a, b float64) float64 {
	m := (a + b) / 2.0
	if math.IsInf(m, 0) {
		return a/2.0 + b/2.0
	}
	return m
}

// partition splits the given records into those whose value for the
// attribute is less than or equal to the threshold and the rest,
// keeping their relative order.
func partition(records []record.Record, attribute int, threshold float64) (left, right []record.Record) {
	for _, r := range records {
		if r.Attributes[attribute] <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	return left, right
}
