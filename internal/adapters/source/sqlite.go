package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/model"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite reads tables from an SQLite conversion of the competition database
// (for example produced by mdb-schema/mdb-export or an ODBC copy). When path
// is empty the cycle location is opened.
type SQLite struct {
	path string
}

var _ Strategy = (*SQLite)(nil)

// NewSQLite returns the strategy.
func NewSQLite(path string) *SQLite {
	return &SQLite{path: path}
}

// Name implements Strategy.
func (s *SQLite) Name() string { return "sqlite" }

// ReadTable implements Strategy.
func (s *SQLite) ReadTable(ctx context.Context, location, table string) ([]model.Row, error) {
	path := s.path
	if path == "" {
		path = location
	}
	dsn, err := readOnlyDSN(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = db.Close() }()

	rs, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer func() { _ = rs.Close() }()

	cols, err := rs.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", table, err)
	}

	var rows []model.Row
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rs.Next() {
		if err := rs.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		row := make(model.Row, len(cols))
		for i, col := range cols {
			if v, ok := renderValue(values[i]); ok {
				row[col] = v
			}
		}
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return rows, nil
}

// renderValue turns a driver value into the textual form the CSV extractors
// produce. NULL is reported as absent.
func renderValue(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case []byte:
		return string(t), true
	case string:
		return t, true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		if t {
			return "1", true
		}
		return "0", true
	case time.Time:
		return t.Format("2006-01-02 15:04:05"), true
	default:
		return fmt.Sprint(t), true
	}
}

// readOnlyDSN builds a read-only file URI for path. The path is made absolute
// and escaped so that ? # and % in file names are not read as URI syntax.
func readOnlyDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p, RawQuery: "mode=ro"}).String(), nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
