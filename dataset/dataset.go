/*
Package dataset provides the interfaces to read records from and write
records to the different backends datasets are kept in, along with an
in-memory implementation and helpers to move records between them.
*/
package dataset

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/pbanos/bonsai/record"
)

/*
Reader is an interface for sources of records.

Its Read method takes a context and returns a channel on which the
records of the source are sent in order, and a channel on which an error
is sent if reading fails or the context is cancelled. The record channel
is closed once all records have been sent or an error occurs, and the
error channel is closed after that.
*/
type Reader interface {
	Read(context.Context) (<-chan record.Record, <-chan error)
}

/*
Writer is an interface for destinations of records.
*/
type Writer interface {
	// Write will attempt to write the given records and will
	// return the number of records actually written and an
	// error (if not all records could be written)
	Write(context.Context, []record.Record) (int, error)
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

type memoryDataset struct {
	records []record.Record
}

/*
New takes a slice of records and returns a Reader that sends them. The
slice is not copied, so it must not be modified while being read.
*/
func New(records []record.Record) Reader {
	return &memoryDataset{records}
}

func (md *memoryDataset) Read(ctx context.Context) (<-chan record.Record, <-chan error) {
	return Stream(ctx, func(yield func(record.Record) error) error {
		for _, r := range md.records {
			if err := yield(r); err != nil {
				return err
			}
		}
		return nil
	})
}

/*
Stream takes a context and a producer function and returns the channels
a Reader's Read method returns. The producer is run on its own goroutine
and is given a yield function that sends a record on the record channel;
yield returns the context's error when it is cancelled, which the
producer should then return. Any error returned by the producer is sent
on the error channel.
*/
func Stream(ctx context.Context, produce func(yield func(record.Record) error) error) (<-chan record.Record, <-chan error) {
	records := make(chan record.Record)
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		defer close(records)
		err := produce(func(r record.Record) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case records <- r:
				return nil
			}
		})
		if err != nil {
			errs <- err
		}
	}()
	return records, errs
}

/*
Collect takes a context, a Reader and a labeled boolean and reads all
records from it into a slice. It returns an error if reading fails or if
the records are not valid (see record.Validate), with labeled indicating
whether all records must carry a label.
*/
func Collect(ctx context.Context, r Reader, labeled bool) ([]record.Record, error) {
	var records []record.Record
	rs, errs := r.Read(ctx)
	for rec := range rs {
		records = append(records, rec)
	}
	if err := <-errs; err != nil {
		return nil, err
	}
	if _, err := record.Validate(records, labeled); err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	return records, nil
}

/*
Copy takes a context, a Writer and a Reader and writes every record read
from the Reader onto the Writer, flushing it at the end. It returns the
number of records written and an error if reading, writing or flushing
fails.
*/
func Copy(ctx context.Context, dst Writer, src Reader) (int, error) {
	n, _, err := Split(ctx, src, dst, nil, 0, nil)
	return n, err
}

/*
Split takes a context, a Reader, two Writers, a probability p between
0 and 1 and a source of randomness, and writes every record read from
the Reader onto the second Writer with probability p and onto the first
one otherwise. Both writers are flushed at the end. It returns the number
of records written onto each Writer and an error if reading, writing or
flushing fails.

A nil second Writer is only valid with p 0, in which case rnd may be nil.
*/
func Split(ctx context.Context, src Reader, dst, split Writer, p float64, rnd *rand.Rand) (int, int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	rs, errs := src.Read(ctx)
	counts := make([]int, 2)
	var err error
	for r := range rs {
		w, i := dst, 0
		if p > 0 && rnd.Float64() < p {
			w, i = split, 1
		}
		_, err = w.Write(ctx, []record.Record{r})
		if err != nil {
			err = fmt.Errorf("writing record #%d: %v", counts[0]+counts[1], err)
			cancel()
			break
		}
		counts[i]++
	}
	// drain so the reading goroutine can finish
	for range rs {
	}
	readErr := <-errs
	if err == nil {
		err = readErr
	}
	if err != nil {
		return counts[0], counts[1], err
	}
	for _, w := range []Writer{dst, split} {
		if w == nil {
			continue
		}
		if err = w.Flush(); err != nil {
			return counts[0], counts[1], fmt.Errorf("flushing records: %v", err)
		}
	}
	return counts[0], counts[1], nil
}
