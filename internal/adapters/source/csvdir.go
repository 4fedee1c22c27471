package source

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/model"
	"github.com/spf13/afero"
)

// CSVDir reads <dir>/<table>.csv files, e.g. a folder produced by running
// mdb-export once per table. When dir is empty the cycle location is used.
type CSVDir struct {
	fs  afero.Fs
	dir string
}

var _ Strategy = (*CSVDir)(nil)

// NewCSVDir returns the strategy over fs.
func NewCSVDir(fs afero.Fs, dir string) *CSVDir {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &CSVDir{fs: fs, dir: dir}
}

// Name implements Strategy.
func (c *CSVDir) Name() string { return "csvdir" }

// ReadTable implements Strategy.
func (c *CSVDir) ReadTable(_ context.Context, location, table string) ([]model.Row, error) {
	dir := c.dir
	if dir == "" {
		dir = location
	}
	path := filepath.Join(dir, table+".csv")
	f, err := c.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := parseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
