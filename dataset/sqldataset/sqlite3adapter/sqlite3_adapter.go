/*
Package sqlite3adapter provides an implementation of the Adapter
interface in the sqldataset package that works over an SQLite3
database file.
*/
package sqlite3adapter

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/bramble/dataset/sqldataset"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

// MaxSampleInsertionsPerStatement is the maximum number of samples
// that are added with a single insert command by the AddSamples method
// of the adapter. Adding more will result in making more insertion
// commands.
const MaxSampleInsertionsPerStatement = 10

type adapter struct {
	db *sql.DB
}

/*
New takes a path to an SQLite3 database file and a maximum number of
open connections and returns an Adapter that works on the file's
database or an error if it fails to open as an sqlite3 database.
*/
func New(path string, maxDBConns int) (sqldataset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(maxDBConns)
	return &adapter{db}, nil
}

func (a *adapter) CreateSampleTable(ctx context.Context, columns []string) error {
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString("CREATE TABLE IF NOT EXISTS samples (id INTEGER PRIMARY KEY AUTOINCREMENT")
	for _, c := range columns {
		fmt.Fprintf(&createStmtBuf, `, "%s" INTEGER NULL`, c)
	}
	createStmtBuf.WriteString(")")
	_, err := a.db.ExecContext(ctx, createStmtBuf.String())
	if err != nil {
		return fmt.Errorf("running samples table creation statement: %v", err)
	}
	return nil
}

func (a *adapter) AddSamples(ctx context.Context, columns []string, rows [][]*int) (int, error) {
	var added int
	for len(rows) > 0 {
		batch := rows
		if len(batch) > MaxSampleInsertionsPerStatement {
			batch = batch[:MaxSampleInsertionsPerStatement]
		}
		rows = rows[len(batch):]
		var insertStmtBuf bytes.Buffer
		fmt.Fprintf(&insertStmtBuf, `INSERT INTO samples ("%s") VALUES `, strings.Join(columns, `", "`))
		args := make([]interface{}, 0, len(batch)*len(columns))
		for i, row := range batch {
			if i > 0 {
				insertStmtBuf.WriteString(", ")
			}
			insertStmtBuf.WriteString("(")
			for j, v := range row {
				if j > 0 {
					insertStmtBuf.WriteString(", ")
				}
				insertStmtBuf.WriteString("?")
				if v == nil {
					args = append(args, nil)
				} else {
					args = append(args, *v)
				}
			}
			insertStmtBuf.WriteString(")")
		}
		_, err := a.db.ExecContext(ctx, insertStmtBuf.String(), args...)
		if err != nil {
			return added, fmt.Errorf("inserting samples: %v", err)
		}
		added += len(batch)
	}
	return added, nil
}

func (a *adapter) IterateOnSamples(ctx context.Context, columns []string, lambda func(int, []*int) (bool, error)) error {
	query := fmt.Sprintf(`SELECT "%s" FROM samples ORDER BY id`, strings.Join(columns, `", "`))
	sqlRows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("querying samples: %v", err)
	}
	defer sqlRows.Close()
	for i := 0; sqlRows.Next(); i++ {
		scanned := make([]sql.NullInt64, len(columns))
		dest := make([]interface{}, len(columns))
		for j := range scanned {
			dest[j] = &scanned[j]
		}
		if err := sqlRows.Scan(dest...); err != nil {
			return fmt.Errorf("scanning sample: %v", err)
		}
		row := make([]*int, len(columns))
		for j, ni := range scanned {
			if ni.Valid {
				v := int(ni.Int64)
				row[j] = &v
			}
		}
		ok, err := lambda(i, row)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return sqlRows.Err()
}

func (a *adapter) CountSamples(ctx context.Context) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM samples").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting samples: %v", err)
	}
	return count, nil
}

func (a *adapter) Close() error {
	return a.db.Close()
}
