package bonsai

import (
	"fmt"
	"math"

	"github.com/pbanos/bonsai/record"
)

/*
Entropy takes a slice of records and returns the Shannon entropy in bits
of their labels: a measure of the disinformation we have on the classes
of the records.

It returns an error wrapping record.ErrInvalidInput if the slice is empty,
as the entropy of an empty set is undefined.
*/
func Entropy(records []record.Record) (float64, error) {
	if len(records) == 0 {
		return 0.0, fmt.Errorf("computing entropy of empty set: %w", record.ErrInvalidInput)
	}
	return entropyOf(record.CountLabels(records), len(records)), nil
}

/*
InformationGain takes a slice of records, the index of an attribute and
a threshold and returns the reduction in entropy achieved by splitting
the records into those whose attribute value is less than or equal to
the threshold and the rest, each part's entropy weighted by its size.

An empty part contributes nothing to the result. An error wrapping
record.ErrInvalidInput is returned if the slice is empty or a record
lacks the attribute.
*/
func InformationGain(records []record.Record, attribute int, threshold float64) (float64, error) {
	if len(records) == 0 {
		return 0.0, fmt.Errorf("computing information gain of empty set: %w", record.ErrInvalidInput)
	}
	left := make(record.LabelCounts)
	right := make(record.LabelCounts)
	var leftCount int
	for i, r := range records {
		if attribute < 0 || attribute >= len(r.Attributes) {
			return 0.0, fmt.Errorf("computing information gain on attribute %d: record #%d has %d attributes: %w", attribute, i, len(r.Attributes), record.ErrInvalidInput)
		}
		if r.Attributes[attribute] <= threshold {
			left[r.Label]++
			leftCount++
		} else {
			right[r.Label]++
		}
	}
	sEntropy := entropyOf(record.CountLabels(records), len(records))
	return gain(sEntropy, left, leftCount, right, len(records)-leftCount), nil
}

// entropyOf computes the entropy for the given label counts adding
// up the terms in ascending label order, so that equal counts always
// produce the exact same float64.
func entropyOf(counts record.LabelCounts, total int) float64 {
	var result float64
	for _, l := range counts.Labels() {
		p := float64(counts[l]) / float64(total)
		result -= p * math.Log2(p)
	}
	return result
}

// gain computes the information gain of the partition described by
// the given left and right label counts over a set with entropy
// sEntropy.
func gain(sEntropy float64, left record.LabelCounts, leftCount int, right record.LabelCounts, rightCount int) float64 {
	total := float64(leftCount + rightCount)
	result := sEntropy
	if leftCount > 0 {
		result -= float64(leftCount) / total * entropyOf(left, leftCount)
	}
	if rightCount > 0 {
		result -= float64(rightCount) / total * entropyOf(right, rightCount)
	}
	return result
}
