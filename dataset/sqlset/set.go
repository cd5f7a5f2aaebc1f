package sqlset

import (
	"context"
	"fmt"

	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/record"
)

/*
Set is a dataset.Reader and dataset.Writer on the records
table of a database.
*/
type Set struct {
	adapter Adapter
	arity   int
}

/*
Create takes a context, an Adapter and the number of attributes of the
records to store and returns a Set, creating the records table if it does
not exist yet.
*/
func Create(ctx context.Context, adapter Adapter, arity int) (*Set, error) {
	err := adapter.CreateRecordTable(ctx, arity)
	if err != nil {
		return nil, err
	}
	return &Set{adapter, arity}, nil
}

/*
Open takes a context and an Adapter and returns a Set on the existing
records table, with the number of attributes discovered from its
columns.
*/
func Open(ctx context.Context, adapter Adapter) (*Set, error) {
	arity, err := adapter.Arity(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening set: %v", err)
	}
	return &Set{adapter, arity}, nil
}

// Arity returns the number of attributes of the records of the set.
func (s *Set) Arity() int {
	return s.arity
}

// Read sends the records of the set on the returned channel in the
// order they were written. See dataset.Reader.
func (s *Set) Read(ctx context.Context) (<-chan record.Record, <-chan error) {
	return dataset.Stream(ctx, func(yield func(record.Record) error) error {
		err := s.adapter.IterateOnRecords(ctx, s.arity, func(_ int, r record.Record) (bool, error) {
			return true, yield(r)
		})
		if err != nil {
			return fmt.Errorf("reading records: %w", err)
		}
		return nil
	})
}

/*
Write adds the given records to the set and returns the number of records
added. Records must have exactly as many attributes as the set, otherwise
none is written and an error wrapping record.ErrInvalidInput is returned.
*/
func (s *Set) Write(ctx context.Context, records []record.Record) (int, error) {
	for i, r := range records {
		if r.Arity() != s.arity {
			return 0, fmt.Errorf("writing record #%d with %d attributes into set with %d: %w", i, r.Arity(), s.arity, record.ErrInvalidInput)
		}
	}
	n, err := s.adapter.AddRecords(ctx, records, s.arity)
	if err != nil {
		return n, fmt.Errorf("writing records: %v", err)
	}
	return n, nil
}

// Count returns the number of records in the set.
func (s *Set) Count(ctx context.Context) (int, error) {
	return s.adapter.CountRecords(ctx)
}

// Flush is a no-op: records are stored as soon as they are written.
func (s *Set) Flush() error {
	return nil
}
