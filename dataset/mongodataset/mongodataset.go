/*
Package mongodataset provides an implementation of dataset.Reader and
dataset.Writer that uses a MongoDB database as backend.

Records are kept in the records collection of the session's default
database as documents with a seq field holding their position, an
attributes array and, for labeled records, a label field.
*/
package mongodataset

import (
	"context"
	"fmt"

	"github.com/pbanos/bonsai/dataset"
	"github.com/pbanos/bonsai/record"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const (
	recordsCollectionName = "records"
)

type document struct {
	Seq        int       `bson:"seq"`
	Attributes []float64 `bson:"attributes"`
	Label      *int      `bson:"label,omitempty"`
}

/*
Dataset is a dataset.Reader and dataset.Writer on
a MongoDB collection.
*/
type Dataset struct {
	session *mgo.Session
	next    int
}

/*
Open takes a context and a MongoDB database session and returns a Dataset
that works on the default database for that session or an error if it
fails to prepare the collection. Records written to the Dataset are
appended after the ones already in it.
*/
func Open(ctx context.Context, session *mgo.Session) (*Dataset, error) {
	md := &Dataset{session: session}
	err := md.ensureIndexes()
	if err != nil {
		return nil, fmt.Errorf("opening mongo dataset: %v", err)
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	last := &document{}
	err = md.recordsCollection().Find(nil).Sort("-seq").One(last)
	switch err {
	case nil:
		md.next = last.Seq + 1
	case mgo.ErrNotFound:
	default:
		return nil, fmt.Errorf("opening mongo dataset: %v", err)
	}
	return md, nil
}

// Read sends the records of the dataset on the returned channel in seq
// order. See dataset.Reader.
func (md *Dataset) Read(ctx context.Context) (<-chan record.Record, <-chan error) {
	return dataset.Stream(ctx, func(yield func(record.Record) error) error {
		iter := md.recordsCollection().Find(nil).Sort("seq").Iter()
		defer iter.Close()
		doc := &document{}
		for i := 0; iter.Next(doc); i++ {
			r := record.NewUnlabeled(doc.Attributes)
			if doc.Label != nil {
				r = record.New(doc.Attributes, *doc.Label)
			}
			if err := yield(r); err != nil {
				return err
			}
			doc = &document{}
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("reading records: %v", err)
		}
		return nil
	})
}

// Write appends the given records to the dataset and returns the
// number of records written.
func (md *Dataset) Write(ctx context.Context, records []record.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	docs := make([]interface{}, 0, len(records))
	for i, r := range records {
		doc := &document{Seq: md.next + i, Attributes: r.Attributes}
		if r.Labeled {
			label := r.Label
			doc.Label = &label
		}
		docs = append(docs, doc)
	}
	err := md.recordsCollection().Insert(docs...)
	if err != nil {
		return 0, fmt.Errorf("writing records: %v", err)
	}
	md.next += len(records)
	return len(records), nil
}

// Count returns the number of records in the dataset.
func (md *Dataset) Count(context.Context) (int, error) {
	return md.recordsCollection().Find(bson.M{}).Count()
}

// Flush is a no-op: records are stored as soon as they are written.
func (md *Dataset) Flush() error {
	return nil
}

func (md *Dataset) ensureIndexes() error {
	index := mgo.Index{
		Key:        []string{"seq"},
		Unique:     true,
		Background: true,
	}
	return md.recordsCollection().EnsureIndex(index)
}

func (md *Dataset) recordsCollection() *mgo.Collection {
	return md.session.DB("").C(recordsCollectionName)
}
