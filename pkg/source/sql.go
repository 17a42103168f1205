package source

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	rkerrors "github.com/recordkit/recordkit/pkg/errors"
	"github.com/recordkit/recordkit/pkg/types"
)

// SQLDrivers lists the database/sql drivers linked into recordkit.
var SQLDrivers = []string{"sqlite3", "postgres", "mysql"}

// OpenSQL opens a database handle for one of SQLDrivers and verifies the
// connection.
func OpenSQL(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, rkerrors.NewSourceError(rkerrors.CodeUnsupportedFormat,
			fmt.Sprintf("open %s", driver), err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, rkerrors.NewSourceError(rkerrors.CodeReadFailure,
			fmt.Sprintf("connect %s", driver), err)
	}
	return db, nil
}

// SQL runs one query and returns a record per result row, fields named by
// result columns. Text and blob columns come back as strings and
// timestamps as RFC 3339 strings.
type SQL struct {
	DB    *sql.DB
	Query string
	Args  []any
}

// Load implements Source.
func (s *SQL) Load(ctx context.Context) (*types.Collection, error) {
	if s.DB == nil || s.Query == "" {
		return nil, rkerrors.InvalidInput("source: SQL needs a database handle and a query")
	}
	start := time.Now()
	rows, err := s.DB.QueryContext(ctx, s.Query, s.Args...)
	if err != nil {
		return nil, rkerrors.NewSourceError(rkerrors.CodeReadFailure, "query failed", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, rkerrors.NewSourceError(rkerrors.CodeReadFailure, "read result columns", err)
	}

	out := types.New()
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, rkerrors.NewSourceError(rkerrors.CodeReadFailure,
				fmt.Sprintf("scan row %d", out.Len()), err)
		}
		rec := make(types.Record, len(columns))
		for i, col := range columns {
			rec[col] = formatValue(values[i])
		}
		out.Append(rec)
	}
	if err := rows.Err(); err != nil {
		return nil, rkerrors.NewSourceError(rkerrors.CodeReadFailure, "iterate rows", err)
	}

	slog.DebugContext(ctx, "Loaded query", "columns", len(columns), "rows", out.Len(), "duration", time.Since(start))
	return out, nil
}

func formatValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return val
	}
}
