package fixture

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/model"
)

const filePermission = 0o644

// WriteCSV writes every table to <dir>/<table>.csv in the layout mdb-export
// produces: a header row, then one line per row with absent values empty.
func WriteCSV(fs afero.Fs, dir string, tables Tables) error {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	for table, rows := range tables {
		if err := writeTable(fs, filepath.Join(dir, table+".csv"), rows); err != nil {
			return fmt.Errorf("write table %s: %w", table, err)
		}
	}
	return nil
}

func writeTable(fs afero.Fs, path string, rows []model.Row) (err error) {
	var header []string
	seen := make(map[string]struct{})
	for _, row := range rows {
		for col := range row {
			if _, ok := seen[col]; !ok {
				seen[col] = struct{}{}
				header = append(header, col)
			}
		}
	}
	slices.Sort(header)

	f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, col := range header {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
