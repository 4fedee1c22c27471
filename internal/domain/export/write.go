package export

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
)

const outputPermission = 0o644

// WriteFiles removes any previous outputs, then writes the EVT file followed
// by the JSON file. An empty path skips that output. A failure part way
// leaves whatever was already written; the two files are not replaced
// atomically as a pair.
func WriteFiles(afs afero.Fs, doc *Document, evtPath, jsonPath string) error {
	for _, p := range []string{evtPath, jsonPath} {
		if p == "" {
			continue
		}
		if err := afs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: remove %s: %w", ErrOutputWrite, p, err)
		}
	}

	if evtPath != "" {
		if err := afero.WriteFile(afs, evtPath, doc.EVT, outputPermission); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrOutputWrite, evtPath, err)
		}
	}
	if jsonPath != "" {
		if err := afero.WriteFile(afs, jsonPath, doc.JSON, outputPermission); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrOutputWrite, jsonPath, err)
		}
	}
	return nil
}
