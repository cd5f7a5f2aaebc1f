/*
Package pgadapter provides an implementation of the
Adapter interface in the sqlset package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/bonsai/dataset/sqlset"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

type dialect struct{}

/*
New takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect to it.
*/
func New(url string) (sqlset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to postgresql database: %v", err)
	}
	return sqlset.NewAdapter(db, dialect{}), nil
}

func (dialect) Placeholder(i int) string {
	return fmt.Sprintf("$%d", i)
}

func (dialect) CreateRecordTableStmt(attributeColumns []string) string {
	var b strings.Builder
	b.WriteString(`CREATE TABLE IF NOT EXISTS records("id" SERIAL PRIMARY KEY, `)
	for _, c := range attributeColumns {
		fmt.Fprintf(&b, `"%s" DOUBLE PRECISION NOT NULL, `, c)
	}
	b.WriteString(`"label" INTEGER NULL)`)
	return b.String()
}

func (dialect) CreatePredictionTableStmt() string {
	return `CREATE TABLE IF NOT EXISTS predictions("id" INTEGER PRIMARY KEY, "label" INTEGER NOT NULL)`
}

func (dialect) ColumnsQuery(table string) (string, []interface{}) {
	return `SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1`, []interface{}{table}
}
