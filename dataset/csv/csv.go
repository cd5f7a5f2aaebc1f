/*
Package csv provides the means to read records from and write records to
comma separated values streams, with one record per line.
*/
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/record"
)

/*
Mode indicates how the values on each line are to be interpreted.
*/
type Mode int

const (
	// Labeled lines hold the attribute values of a record
	// followed by its integer label.
	Labeled Mode = iota
	// Unlabeled lines hold the attribute values of a record
	// followed by a placeholder that is ignored. Records are
	// read without label.
	Unlabeled
	// AttributesOnly lines hold only the attribute values of a
	// record. Records are read without label.
	AttributesOnly
)

func (m Mode) String() string {
	switch m {
	case Labeled:
		return "labeled"
	case Unlabeled:
		return "unlabeled"
	case AttributesOnly:
		return "attributes only"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Option configures a Reader.
type Option func(*Reader)

// Header makes the Reader skip the first line of the stream.
func Header() Option {
	return func(r *Reader) {
		r.header = true
	}
}

/*
Reader is a dataset.Reader that parses records from a CSV stream.

Any value that cannot be parsed makes the reading fail with an error
wrapping record.ErrInvalidInput that indicates its line.
*/
type Reader struct {
	open   func() (io.ReadCloser, error)
	name   string
	mode   Mode
	header bool
}

/*
NewReader takes an io.Reader, a Mode and any options and returns a
Reader that parses records from it. The io.Reader can only be read once.
*/
func NewReader(r io.Reader, mode Mode, opts ...Option) *Reader {
	return newReader(func() (io.ReadCloser, error) { return io.NopCloser(r), nil }, "stream", mode, opts)
}

/*
NewFileReader takes a filepath string, a Mode and any options and returns
a Reader that parses records from the file each time it is read. If the
filepath is "" os.Stdin is used instead.
*/
func NewFileReader(filepath string, mode Mode, opts ...Option) *Reader {
	if filepath == "" {
		return newReader(func() (io.ReadCloser, error) { return io.NopCloser(os.Stdin), nil }, "STDIN", mode, opts)
	}
	return newReader(func() (io.ReadCloser, error) { return os.Open(filepath) }, filepath, mode, opts)
}

func newReader(open func() (io.ReadCloser, error), name string, mode Mode, opts []Option) *Reader {
	r := &Reader{open: open, name: name, mode: mode}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read sends the records parsed from the stream on the returned channel.
// See dataset.Reader.
func (r *Reader) Read(ctx context.Context) (<-chan record.Record, <-chan error) {
	return dataset.Stream(ctx, func(yield func(record.Record) error) error {
		rc, err := r.open()
		if err != nil {
			return fmt.Errorf("reading records: %v", err)
		}
		defer rc.Close()
		return r.ReadBySample(rc, func(_ int, rec record.Record) error {
			return yield(rec)
		})
	})
}

/*
ReadBySample takes an io.Reader and a lambda function on an integer and a
record.Record, parses the records from the reader and for each calls the
lambda function with the record and its index. If the lambda function
returns an error, the reading is stopped and the error returned. An error
is also returned if something goes wrong when reading or parsing a
record.
*/
func (r *Reader) ReadBySample(reader io.Reader, lambda func(int, record.Record) error) error {
	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	if r.header {
		_, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading header from %s: %v", r.name, err)
		}
	}
	for i := 0; ; i++ {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s: %v", r.name, err)
		}
		line, _ := cr.FieldPos(0)
		rec, err := r.parse(row)
		if err != nil {
			return fmt.Errorf("parsing line %d from %s: %w", line, r.name, err)
		}
		err = lambda(i, rec)
		if err != nil {
			return err
		}
	}
}

func (r *Reader) parse(row []string) (record.Record, error) {
	attributeCount := len(row)
	if r.mode != AttributesOnly {
		attributeCount--
	}
	if attributeCount < 1 {
		return record.Record{}, fmt.Errorf("%d values are not enough for a record in %s mode: %w", len(row), r.mode, record.ErrInvalidInput)
	}
	attributes := make([]float64, attributeCount)
	for i := range attributes {
		v, err := strconv.ParseFloat(row[i], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return record.Record{}, fmt.Errorf("converting attribute %d value %q to a finite float64: %w", i, row[i], record.ErrInvalidInput)
		}
		attributes[i] = v
	}
	if r.mode != Labeled {
		return record.NewUnlabeled(attributes), nil
	}
	label, err := parseLabel(row[attributeCount])
	if err != nil {
		return record.Record{}, err
	}
	return record.New(attributes, label), nil
}

// parseLabel accepts integers and floats with an integral value,
// such as 1.0, for the label.
func parseLabel(v string) (int, error) {
	label, err := strconv.Atoi(v)
	if err == nil {
		return label, nil
	}
	f, ferr := strconv.ParseFloat(v, 64)
	if ferr != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("converting label %q to an integer: %w", v, record.ErrInvalidInput)
	}
	return int(f), nil
}

/*
Writer is a dataset.Writer that writes records as CSV lines with their
attribute values followed by their label, or '?' if they have none.
*/
type Writer struct {
	count int
	w     *csv.Writer
}

/*
NewWriter takes an io.Writer and returns a Writer that will write any
records on it.
*/
func NewWriter(writer io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(writer)}
}

// Write writes the given records and returns how many were written.
func (cw *Writer) Write(ctx context.Context, records []record.Record) (int, error) {
	for n, r := range records {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		row := make([]string, 0, len(r.Attributes)+1)
		for _, v := range r.Attributes {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if r.Labeled {
			row = append(row, strconv.Itoa(r.Label))
		} else {
			row = append(row, "?")
		}
		err := cw.w.Write(row)
		if err != nil {
			return n, fmt.Errorf("writing CSV row for record %d: %v", cw.count+1, err)
		}
		cw.count++
	}
	return len(records), nil
}

// Count returns the total number of records written
func (cw *Writer) Count() int {
	return cw.count
}

// Flush writes any buffered records to the underlying io.Writer.
func (cw *Writer) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
