/*
Package sqlset provides implementations of dataset.Reader and
dataset.Writer that use SQL databases as backends, along with a sink for
predictions.

The set uses 2 database tables:
  - records, with an id column, a REAL column for each attribute
    named a0, a1... and a nullable INTEGER label column
  - predictions, with an id column holding the position of the
    predicted record and an INTEGER label column

The number of attributes of the records of a set is given when the set is
created and discovered from the columns of the records table when an
existing set is opened.

Database specifics are provided by an implementation of the Dialect
interface, such as the ones in the sqlite3adapter and pgadapter
packages.
*/
package sqlset
