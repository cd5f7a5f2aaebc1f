package sqlset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/pbanos/bonsai/record"
)

const (
	recordsTable     = "records"
	predictionsTable = "predictions"
	labelColumn      = "label"

	// MaxRowInsertionsPerStatement is the maximum number of records
	// or predictions that are added with a single insert command.
	// Adding more will result in making more insertion commands.
	MaxRowInsertionsPerStatement = 10
)

var attributeColumnRegexp = regexp.MustCompile(`^a(0|[1-9][0-9]*)$`)

/*
Dialect is an interface for the database specific parts of the SQL
statements an Adapter runs.
*/
type Dialect interface {
	// Placeholder returns the placeholder for the i-th (starting
	// with 1) argument of a statement.
	Placeholder(i int) string
	// CreateRecordTableStmt returns the statement that creates the
	// records table with the given attribute columns if it does not exist.
	CreateRecordTableStmt(attributeColumns []string) string
	// CreatePredictionTableStmt returns the statement that creates the
	// predictions table if it does not exist.
	CreatePredictionTableStmt() string
	// ColumnsQuery returns a query and its arguments that list the names
	// of the columns of the given table, one per row.
	ColumnsQuery(table string) (string, []interface{})
}

/*
Adapter is an interface providing the methods
needed to implement a set with a database backend.
*/
type Adapter interface {
	CreateRecordTable(ctx context.Context, arity int) error
	Arity(ctx context.Context) (int, error)
	AddRecords(ctx context.Context, records []record.Record, arity int) (int, error)
	IterateOnRecords(ctx context.Context, arity int, lambda func(int, record.Record) (bool, error)) error
	CountRecords(ctx context.Context) (int, error)

	ResetPredictionTable(ctx context.Context) error
	AddPredictions(ctx context.Context, firstID int, labels []int) (int, error)

	Close() error
}

type adapter struct {
	db *sql.DB
	d  Dialect
}

/*
NewAdapter takes an open database and the Dialect to use with it and
returns an Adapter working on it. The Adapter owns the database and closes
it when closed.
*/
func NewAdapter(db *sql.DB, d Dialect) Adapter {
	return &adapter{db, d}
}

// AttributeColumn returns the name of the column for the
// i-th attribute.
func AttributeColumn(i int) string {
	return "a" + strconv.Itoa(i)
}

func attributeColumns(arity int) []string {
	columns := make([]string, arity)
	for i := range columns {
		columns[i] = AttributeColumn(i)
	}
	return columns
}

func (a *adapter) CreateRecordTable(ctx context.Context, arity int) error {
	if arity < 1 {
		return fmt.Errorf("creating records table: invalid number of attributes %d", arity)
	}
	_, err := a.db.ExecContext(ctx, a.d.CreateRecordTableStmt(attributeColumns(arity)))
	if err != nil {
		return fmt.Errorf("ensuring records table exists: %v", err)
	}
	return nil
}

func (a *adapter) Arity(ctx context.Context) (int, error) {
	query, args := a.d.ColumnsQuery(recordsTable)
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("listing records table columns: %v", err)
	}
	defer rows.Close()
	var indexes []int
	for rows.Next() {
		var name string
		err = rows.Scan(&name)
		if err != nil {
			return 0, fmt.Errorf("listing records table columns: %v", err)
		}
		if m := attributeColumnRegexp.FindStringSubmatch(name); m != nil {
			i, _ := strconv.Atoi(m[1])
			indexes = append(indexes, i)
		}
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("listing records table columns: %v", err)
	}
	if len(indexes) == 0 {
		return 0, fmt.Errorf("records table not found or without attribute columns")
	}
	sort.Ints(indexes)
	for i, index := range indexes {
		if i != index {
			return 0, fmt.Errorf("records table lacks column %s", AttributeColumn(i))
		}
	}
	return len(indexes), nil
}

func (a *adapter) insertStmt(table string, columns []string, rows int) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `INSERT INTO %s (`, table)
	for i, c := range columns {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, `"%s"`, c)
	}
	buf.WriteString(") VALUES ")
	var n int
	for r := 0; r < rows; r++ {
		if r > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for i := range columns {
			if i > 0 {
				buf.WriteString(", ")
			}
			n++
			buf.WriteString(a.d.Placeholder(n))
		}
		buf.WriteString(")")
	}
	return buf.String()
}

// insertInChunks inserts count rows into the table in chunks of at
// most MaxRowInsertionsPerStatement rows, getting the values for each
// row from the values function. It returns the number of rows inserted.
func (a *adapter) insertInChunks(ctx context.Context, table string, columns []string, count int, values func(int) []interface{}) (int, error) {
	var stmt *sql.Stmt
	var stmtRows int
	defer func() {
		if stmt != nil {
			stmt.Close()
		}
	}()
	for chunkStart := 0; chunkStart < count; chunkStart += MaxRowInsertionsPerStatement {
		chunkEnd := chunkStart + MaxRowInsertionsPerStatement
		if chunkEnd > count {
			chunkEnd = count
		}
		if stmt == nil || stmtRows != chunkEnd-chunkStart {
			if stmt != nil {
				stmt.Close()
			}
			var err error
			stmtRows = chunkEnd - chunkStart
			stmt, err = a.db.PrepareContext(ctx, a.insertStmt(table, columns, stmtRows))
			if err != nil {
				stmt = nil
				return chunkStart, fmt.Errorf("preparing insert command for %d rows: %v", stmtRows, err)
			}
		}
		args := make([]interface{}, 0, stmtRows*len(columns))
		for i := chunkStart; i < chunkEnd; i++ {
			args = append(args, values(i)...)
		}
		_, err := stmt.ExecContext(ctx, args...)
		if err != nil {
			return chunkStart, fmt.Errorf("inserting rows %d to %d into %s: %v", chunkStart+1, chunkEnd, table, err)
		}
	}
	return count, nil
}

func (a *adapter) AddRecords(ctx context.Context, records []record.Record, arity int) (int, error) {
	columns := append(attributeColumns(arity), labelColumn)
	return a.insertInChunks(ctx, recordsTable, columns, len(records), func(i int) []interface{} {
		r := records[i]
		values := make([]interface{}, 0, len(columns))
		for _, v := range r.Attributes {
			values = append(values, v)
		}
		if r.Labeled {
			values = append(values, int64(r.Label))
		} else {
			values = append(values, nil)
		}
		return values
	})
}

func (a *adapter) IterateOnRecords(ctx context.Context, arity int, lambda func(int, record.Record) (bool, error)) error {
	var queryBuffer bytes.Buffer
	queryBuffer.WriteString(`SELECT `)
	for _, c := range attributeColumns(arity) {
		fmt.Fprintf(&queryBuffer, `"%s", `, c)
	}
	fmt.Fprintf(&queryBuffer, `"%s" FROM %s ORDER BY "id"`, labelColumn, recordsTable)
	rows, err := a.db.QueryContext(ctx, queryBuffer.String())
	if err != nil {
		return err
	}
	defer rows.Close()
	for j := 0; rows.Next(); j++ {
		attributes := make([]sql.NullFloat64, arity)
		var label sql.NullInt64
		values := make([]interface{}, 0, arity+1)
		for i := range attributes {
			values = append(values, &attributes[i])
		}
		values = append(values, &label)
		err = rows.Scan(values...)
		if err != nil {
			return err
		}
		r := record.Record{Attributes: make([]float64, arity)}
		for i, v := range attributes {
			if !v.Valid {
				return fmt.Errorf("record #%d has no value for attribute %d: %w", j, i, record.ErrInvalidInput)
			}
			r.Attributes[i] = v.Float64
		}
		if label.Valid {
			r.Label, r.Labeled = int(label.Int64), true
		}
		ok, err := lambda(j, r)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return rows.Err()
}

func (a *adapter) CountRecords(ctx context.Context) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, recordsTable)).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (a *adapter) ResetPredictionTable(ctx context.Context) error {
	_, err := a.db.ExecContext(ctx, a.d.CreatePredictionTableStmt())
	if err != nil {
		return fmt.Errorf("ensuring predictions table exists: %v", err)
	}
	_, err = a.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, predictionsTable))
	if err != nil {
		return fmt.Errorf("removing previous predictions: %v", err)
	}
	return nil
}

func (a *adapter) AddPredictions(ctx context.Context, firstID int, labels []int) (int, error) {
	return a.insertInChunks(ctx, predictionsTable, []string{"id", labelColumn}, len(labels), func(i int) []interface{} {
		return []interface{}{int64(firstID + i), int64(labels[i])}
	})
}

func (a *adapter) Close() error {
	return a.db.Close()
}
