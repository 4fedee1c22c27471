package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/model"
)

const mdbExportBinary = "mdb-export"

// MDBExport reads tables by running mdb-tools' mdb-export on the database file.
type MDBExport struct {
	binary string
}

var _ Strategy = (*MDBExport)(nil)

// NewMDBExport returns the strategy. An empty binary means: a copy shipped
// next to our executable if there is one, otherwise mdb-export from PATH.
func NewMDBExport(binary string) *MDBExport {
	if binary == "" {
		binary = findBundledMDBExport()
	}
	return &MDBExport{binary: binary}
}

// Name implements Strategy.
func (m *MDBExport) Name() string { return mdbExportBinary }

// Binary returns the command that will be run.
func (m *MDBExport) Binary() string { return m.binary }

// ReadTable implements Strategy.
func (m *MDBExport) ReadTable(ctx context.Context, location, table string) ([]model.Row, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, m.binary, location, table)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("run %s: %w: %s", m.binary, err, msg)
		}
		return nil, fmt.Errorf("run %s: %w", m.binary, err)
	}
	return parseCSV(&stdout)
}

func findBundledMDBExport() string {
	exe, err := os.Executable()
	if err != nil {
		return mdbExportBinary
	}
	dir := filepath.Dir(exe)
	for _, name := range []string{mdbExportBinary + ".exe", mdbExportBinary} {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return mdbExportBinary
}
