package service

import (
	"errors"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/source"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/export"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/model"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/resolver"
)

// ErrSourceNotFound is returned when the source location does not exist.
var ErrSourceNotFound = errors.New("source not found")

// Error kinds reported in the cycle_errors_total metric.
const (
	KindSourceNotFound       = "source_not_found"
	KindNoCompetition        = "no_competition"
	KindAmbiguousCompetition = "ambiguous_competition"
	KindMissingCompetitionID = "missing_competition_id"
	KindTableRead            = "table_read"
	KindFieldDecode          = "field_decode"
	KindOutputWrite          = "output_write"
	KindRender               = "render"
	KindOther                = "other"
)

// ErrorKind classifies a cycle error.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrSourceNotFound):
		return KindSourceNotFound
	case errors.Is(err, resolver.ErrNoCompetition):
		return KindNoCompetition
	case errors.Is(err, resolver.ErrAmbiguousCompetition):
		return KindAmbiguousCompetition
	case errors.Is(err, resolver.ErrMissingCompetitionID):
		return KindMissingCompetitionID
	case errors.Is(err, model.ErrFieldDecode):
		return KindFieldDecode
	case errors.Is(err, source.ErrTableRead):
		return KindTableRead
	case errors.Is(err, export.ErrOutputWrite):
		return KindOutputWrite
	case errors.Is(err, export.ErrRender):
		return KindRender
	default:
		return KindOther
	}
}
