package record

import "sort"

// LabelCounts maps each label to the number of records carrying it.
type LabelCounts map[int]int

// CountLabels returns the LabelCounts for the given records.
func CountLabels(records []Record) LabelCounts {
	counts := make(LabelCounts)
	for _, r := range records {
		counts[r.Label]++
	}
	return counts
}

// Labels returns the labels with a non-zero count in ascending order.
func (lc LabelCounts) Labels() []int {
	labels := make([]int, 0, len(lc))
	for l, c := range lc {
		if c > 0 {
			labels = append(labels, l)
		}
	}
	sort.Ints(labels)
	return labels
}

// Total returns the sum of all counts.
func (lc LabelCounts) Total() int {
	var total int
	for _, c := range lc {
		total += c
	}
	return total
}

// Clone returns a copy of the counts that can be modified
// independently.
func (lc LabelCounts) Clone() LabelCounts {
	result := make(LabelCounts, len(lc))
	for l, c := range lc {
		result[l] = c
	}
	return result
}
