package scheduler

import "errors"

// Sentinel kinds for scheduler errors.
var (
	ErrBusy    = errors.New("export cycle already running")
	ErrStopped = errors.New("scheduler stopped")
)
