package bonsai

import (
	"fmt"

	"github.com/pbanos/bonsai/record"
	"github.com/pbanos/bonsai/tree"
)

/*
Build takes a slice of labeled records and returns the root of a binary
decision tree grown from them, or an error wrapping record.ErrInvalidInput
if the slice is empty, any record is unlabeled or the records do not share
the same number of attributes.

A node becomes a leaf with the label of its records when all of them
share it. Otherwise it is split on the attribute and threshold with the
greatest information gain (see bestSplit) and both parts are developed
the same way. When no split achieves a positive information gain, as
happens with records that have the same attributes but different labels,
the node becomes a leaf with the most frequent label among its records.
*/
func Build(records []record.Record) (tree.Node, error) {
	arity, err := record.Validate(records, true)
	if err != nil {
		return nil, fmt.Errorf("building tree: %w", err)
	}
	return build(records, arity), nil
}

func build(records []record.Record, arity int) tree.Node {
	if label, ok := record.Homogeneous(records); ok {
		return tree.NewLeaf(label)
	}
	c, ok := bestSplit(records, arity)
	if !ok {
		label, _ := record.Majority(records)
		return tree.NewLeaf(label)
	}
	left, right := partition(records, c.attribute, c.threshold)
	return tree.NewSplit(c.attribute, c.threshold, build(left, arity), build(right, arity))
}
