package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/dataset/csv"
	"github.com/pbanos/bonsai/dataset/mongodataset"
	"github.com/pbanos/bonsai/dataset/sqlset"
	"github.com/pbanos/bonsai/dataset/sqlset/pgadapter"
	"github.com/pbanos/bonsai/dataset/sqlset/sqlite3adapter"
	"github.com/pbanos/bonsai/prediction"
	"github.com/pbanos/bonsai/record"
	"github.com/spf13/cobra"
	mgo "gopkg.in/mgo.v2"
)

type locationKind int

const (
	csvLocation locationKind = iota
	sqlite3Location
	postgresqlLocation
	mongoLocation
)

// kindOf tells the backend a set location refers to: a PostgreSQL or
// MongoDB connection URL, an SQLite3 .db file or else a CSV file ("" for
// STDIN/STDOUT).
func kindOf(location string) locationKind {
	switch {
	case strings.HasPrefix(location, "postgresql://") || strings.HasPrefix(location, "postgres://"):
		return postgresqlLocation
	case strings.HasPrefix(location, "mongodb://"):
		return mongoLocation
	case strings.HasSuffix(location, ".db"):
		return sqlite3Location
	}
	return csvLocation
}

func parseCSVMode(mode string) (csv.Mode, error) {
	switch mode {
	case "labeled":
		return csv.Labeled, nil
	case "unlabeled":
		return csv.Unlabeled, nil
	case "attributes":
		return csv.AttributesOnly, nil
	}
	return 0, fmt.Errorf("unknown CSV mode %q: valid modes are labeled, unlabeled and attributes", mode)
}

// setOptions holds the flags that determine how sets are accessed.
type setOptions struct {
	csvMode    string
	csvHeader  bool
	maxDBConns int
}

func (so *setOptions) Validate() error {
	_, err := parseCSVMode(so.csvMode)
	return err
}

// closer releases the resources held for a set
type closer func() error

func noopCloser() error { return nil }

/*
openReader takes a set location and returns a dataset.Reader on it and a
closer to release it once done.
*/
func (rcc *rootCmdConfig) openReader(ctx context.Context, location string, so *setOptions) (dataset.Reader, closer, error) {
	switch kindOf(location) {
	case postgresqlLocation:
		rcc.Logf("Creating PostgreSQL adapter for url %s to read set...", describe(location))
		adapter, err := pgadapter.New(location)
		if err != nil {
			return nil, nil, err
		}
		s, err := sqlset.Open(ctx, adapter)
		if err != nil {
			adapter.Close()
			return nil, nil, err
		}
		return s, adapter.Close, nil
	case sqlite3Location:
		rcc.Logf("Creating SQLite3 adapter for file %s to read set...", describe(location))
		if _, err := os.Stat(location); err != nil {
			return nil, nil, fmt.Errorf("opening set: %v", err)
		}
		adapter, err := sqlite3adapter.New(location, so.maxDBConns)
		if err != nil {
			return nil, nil, err
		}
		s, err := sqlset.Open(ctx, adapter)
		if err != nil {
			adapter.Close()
			return nil, nil, err
		}
		return s, adapter.Close, nil
	case mongoLocation:
		rcc.Logf("Connecting to MongoDB at %s to read set...", describe(location))
		session, err := mgo.Dial(location)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to mongodb: %v", err)
		}
		md, err := mongodataset.Open(ctx, session)
		if err != nil {
			session.Close()
			return nil, nil, err
		}
		return md, func() error { session.Close(); return nil }, nil
	}
	mode, err := parseCSVMode(so.csvMode)
	if err != nil {
		return nil, nil, err
	}
	var opts []csv.Option
	if so.csvHeader {
		opts = append(opts, csv.Header())
	}
	if location == "" {
		rcc.Logf("Reading %s CSV set from STDIN...", mode)
	} else {
		rcc.Logf("Reading %s CSV set from %s...", mode, describe(location))
	}
	return csv.NewFileReader(location, mode, opts...), noopCloser, nil
}

/*
readRecords collects the records of the set at the given location,
requiring them to be labeled if labeled is true.
*/
func (rcc *rootCmdConfig) readRecords(location string, so *setOptions, labeled bool) ([]record.Record, error) {
	r, closeSet, err := rcc.openReader(rcc.Context(), location, so)
	if err != nil {
		return nil, err
	}
	defer closeSet()
	records, err := dataset.Collect(rcc.Context(), r, labeled)
	if err != nil {
		return nil, fmt.Errorf("reading set %s: %w", describe(location), err)
	}
	rcc.Logf("Read %d records with %d attributes", len(records), records[0].Arity())
	return records, nil
}

// lazySQLWriter creates the records table on the first write, when
// the number of attributes becomes known.
type lazySQLWriter struct {
	adapter sqlset.Adapter
	set     *sqlset.Set
}

func (lw *lazySQLWriter) Write(ctx context.Context, records []record.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	if lw.set == nil {
		s, err := sqlset.Create(ctx, lw.adapter, records[0].Arity())
		if err != nil {
			return 0, err
		}
		lw.set = s
	}
	return lw.set.Write(ctx, records)
}

func (lw *lazySQLWriter) Flush() error {
	return nil
}

func (rcc *rootCmdConfig) sqlAdapter(location string, so *setOptions) (sqlset.Adapter, error) {
	if kindOf(location) == postgresqlLocation {
		rcc.Logf("Creating PostgreSQL adapter for url %s...", describe(location))
		return pgadapter.New(location)
	}
	rcc.Logf("Creating SQLite3 adapter for file %s...", describe(location))
	return sqlite3adapter.New(location, so.maxDBConns)
}

/*
openWriter takes a set location and returns a dataset.Writer on it and a
closer to release it once done.
*/
func (rcc *rootCmdConfig) openWriter(ctx context.Context, location string, so *setOptions) (dataset.Writer, closer, error) {
	switch kindOf(location) {
	case postgresqlLocation, sqlite3Location:
		adapter, err := rcc.sqlAdapter(location, so)
		if err != nil {
			return nil, nil, err
		}
		return &lazySQLWriter{adapter: adapter}, adapter.Close, nil
	case mongoLocation:
		rcc.Logf("Connecting to MongoDB at %s to write set...", describe(location))
		session, err := mgo.Dial(location)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to mongodb: %v", err)
		}
		md, err := mongodataset.Open(ctx, session)
		if err != nil {
			session.Close()
			return nil, nil, err
		}
		return md, func() error { session.Close(); return nil }, nil
	}
	if location == "" {
		rcc.Logf("Using STDOUT to dump set...")
		return csv.NewWriter(os.Stdout), noopCloser, nil
	}
	rcc.Logf("Creating %s to dump set...", describe(location))
	f, err := os.Create(location)
	if err != nil {
		return nil, nil, err
	}
	return csv.NewWriter(f), f.Close, nil
}

/*
openSink takes a location and returns a prediction.Sink on it and a closer
to release it once done. CSV sinks start with the given header line
unless it is empty.
*/
func (rcc *rootCmdConfig) openSink(ctx context.Context, location, header string, so *setOptions) (prediction.Sink, closer, error) {
	switch kindOf(location) {
	case postgresqlLocation, sqlite3Location:
		adapter, err := rcc.sqlAdapter(location, so)
		if err != nil {
			return nil, nil, err
		}
		pw, err := sqlset.NewPredictionWriter(ctx, adapter)
		if err != nil {
			adapter.Close()
			return nil, nil, err
		}
		return pw, adapter.Close, nil
	case mongoLocation:
		return nil, nil, fmt.Errorf("predictions cannot be written to mongodb")
	}
	out, closeOut := os.Stdout, noopCloser
	if location != "" {
		rcc.Logf("Creating %s to dump predictions...", describe(location))
		f, err := os.Create(location)
		if err != nil {
			return nil, nil, err
		}
		out, closeOut = f, f.Close
	}
	pw, err := csv.NewPredictionWriter(out, header)
	if err != nil {
		closeOut()
		return nil, nil, err
	}
	return pw, closeOut, nil
}

// describe returns a printable name for a location without any
// credentials it may carry.
func describe(location string) string {
	if location == "" {
		return "STDIN"
	}
	if u, err := url.Parse(location); err == nil && u.User != nil {
		u.User = url.User(u.User.Username())
		return u.String()
	}
	return location
}

// parsePercent parses an integer percentage between 1 and 100 into a
// probability.
func parsePercent(p int) (float64, error) {
	if p <= 0 || p > 100 {
		return 0, fmt.Errorf("invalid percentage %s: it must be an integer between 1 and 100", strconv.Itoa(p))
	}
	return float64(p) / 100.0, nil
}

func (so *setOptions) addFlags(cmd *cobra.Command, defaultMode string) {
	cmd.Flags().StringVar(&(so.csvMode), "csv-mode", defaultMode, "how to read CSV lines: labeled (attributes followed by an integer label), unlabeled (attributes followed by an ignored value) or attributes (attributes only)")
	cmd.Flags().BoolVar(&(so.csvHeader), "csv-header", false, "skip the first line of CSV inputs")
	cmd.Flags().IntVar(&(so.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
}
