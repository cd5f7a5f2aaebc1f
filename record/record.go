/*
Package record defines the labeled numeric feature vectors from which trees
are grown and that trees classify.
*/
package record

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Error represents an error related with records
type Error string

/*
ErrInvalidInput is the error returned (usually wrapped with details)
when a set of records cannot be used for the requested operation: it is
empty when it must not be, its records do not share the same number of
attributes, a record lacks a label it needs or has a value that is not a
finite number.
*/
const ErrInvalidInput = Error("invalid input")

func (e Error) Error() string {
	return string(e)
}

/*
Record represents a sample: an ordered sequence of numeric attributes and,
for records used to grow or test trees, the integer label of its class.

Records to be classified carry no label, which is represented by a false
Labeled field.
*/
type Record struct {
	Attributes []float64
	Label      int
	Labeled    bool
}

/*
New takes a slice of attribute values and a label and returns a labeled
record with them.
*/
func New(attributes []float64, label int) Record {
	return Record{Attributes: attributes, Label: label, Labeled: true}
}

/*
NewUnlabeled takes a slice of attribute values and returns a record with them
whose label is unknown.
*/
func NewUnlabeled(attributes []float64) Record {
	return Record{Attributes: attributes}
}

// Unlabeled returns a copy of the record without its label.
func (r Record) Unlabeled() Record {
	return Record{Attributes: r.Attributes}
}

// Arity returns the number of attributes of the record.
func (r Record) Arity() int {
	return len(r.Attributes)
}

func (r Record) String() string {
	values := make([]string, len(r.Attributes))
	for i, v := range r.Attributes {
		values[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	label := "?"
	if r.Labeled {
		label = strconv.Itoa(r.Label)
	}
	return fmt.Sprintf("[%s] -> %s", strings.Join(values, " "), label)
}

/*
Validate takes a slice of records and a boolean indicating whether
records must be labeled and returns the arity shared by all of them or
an error wrapping ErrInvalidInput if:
  - the slice is empty
  - any record has a different number of attributes than the first one
  - any attribute is NaN or infinite
  - labeled is true and any record is unlabeled
*/
func Validate(records []Record, labeled bool) (int, error) {
	if len(records) == 0 {
		return 0, fmt.Errorf("no records: %w", ErrInvalidInput)
	}
	arity := records[0].Arity()
	for i, r := range records {
		if r.Arity() != arity {
			return 0, fmt.Errorf("record #%d has %d attributes, expected %d: %w", i, r.Arity(), arity, ErrInvalidInput)
		}
		for j, v := range r.Attributes {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("record #%d attribute %d is not a finite number: %w", i, j, ErrInvalidInput)
			}
		}
		if labeled && !r.Labeled {
			return 0, fmt.Errorf("record #%d has no label: %w", i, ErrInvalidInput)
		}
	}
	return arity, nil
}

/*
Homogeneous takes a non-empty slice of records and returns the label
of the first one and whether all of them share it.
*/
func Homogeneous(records []Record) (int, bool) {
	label := records[0].Label
	for _, r := range records[1:] {
		if r.Label != label {
			return label, false
		}
	}
	return label, true
}

// Majority returns the most frequent label among the given
// records. Ties are broken in favour of the smallest label.
// It returns false if records is empty.
func Majority(records []Record) (int, bool) {
	if len(records) == 0 {
		return 0, false
	}
	counts := CountLabels(records)
	var best, bestCount int
	for _, l := range counts.Labels() {
		if c := counts[l]; c > bestCount {
			best, bestCount = l, c
		}
	}
	return best, true
}
