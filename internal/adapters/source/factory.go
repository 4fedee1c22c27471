package source

import (
	"fmt"

	"github.com/spf13/afero"
)

// Strategy names accepted by Strategies.
const (
	NameMDBExport = "mdb-export"
	NameSQLite    = "sqlite"
	NameCSVDir    = "csvdir"
)

// Settings carries per-strategy parameters.
type Settings struct {
	MDBExportPath string
	SQLitePath    string
	CSVDir        string
	FS            afero.Fs
}

// Strategies builds the named strategies in order.
func Strategies(names []string, s Settings) ([]Strategy, error) {
	out := make([]Strategy, 0, len(names))
	for _, name := range names {
		switch name {
		case NameMDBExport:
			out = append(out, NewMDBExport(s.MDBExportPath))
		case NameSQLite:
			out = append(out, NewSQLite(s.SQLitePath))
		case NameCSVDir:
			out = append(out, NewCSVDir(s.FS, s.CSVDir))
		default:
			return nil, fmt.Errorf("unknown strategy %q", name)
		}
	}
	return out, nil
}
