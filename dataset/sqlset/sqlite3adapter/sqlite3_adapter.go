/*
Package sqlite3adapter provides an implementation of the
Adapter interface in the sqlset package that works
over an SQLite3 database file.
*/
package sqlite3adapter

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/bonsai/dataset/sqlset"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

type dialect struct{}

/*
New takes a path to an SQLite3 database file and the maximum number of
open connections to it (0 means unlimited) and returns an Adapter that
works on the file's database or an error if it fails to open as an
sqlite3 database.
*/
func New(path string, maxConns int) (sqlset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite3 database %s: %v", path, err)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return sqlset.NewAdapter(db, dialect{}), nil
}

func (dialect) Placeholder(int) string {
	return "?"
}

func (dialect) CreateRecordTableStmt(attributeColumns []string) string {
	var b strings.Builder
	b.WriteString(`CREATE TABLE IF NOT EXISTS records("id" INTEGER PRIMARY KEY AUTOINCREMENT, `)
	for _, c := range attributeColumns {
		fmt.Fprintf(&b, `"%s" REAL NOT NULL, `, c)
	}
	b.WriteString(`"label" INTEGER NULL)`)
	return b.String()
}

func (dialect) CreatePredictionTableStmt() string {
	return `CREATE TABLE IF NOT EXISTS predictions("id" INTEGER PRIMARY KEY, "label" INTEGER NOT NULL)`
}

func (dialect) ColumnsQuery(table string) (string, []interface{}) {
	return `SELECT name FROM pragma_table_info(?)`, []interface{}{table}
}
