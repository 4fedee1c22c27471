package export

import "errors"

// Sentinel errors for the export package.
var (
	ErrOutputWrite = errors.New("output write failed")
	ErrRender      = errors.New("render failed")
)
