// Package resolver determines the single competition an export cycle targets.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/model"
)

// Sentinel kinds for resolution failures.
var (
	ErrNoCompetition        = errors.New("no competition found in source")
	ErrAmbiguousCompetition = errors.New("multiple competitions found in source")
	ErrMissingCompetitionID = errors.New("competition id is missing")
)

// Resolve reads the competition table and returns its only row. Exactly one
// row with a present id is required.
func Resolve(ctx context.Context, src model.TableReader, location string) (model.Competition, error) {
	rows, err := src.ReadTable(ctx, location, model.TableCompetition)
	if err != nil {
		return model.Competition{}, err
	}
	switch {
	case len(rows) == 0:
		return model.Competition{}, ErrNoCompetition
	case len(rows) > 1:
		return model.Competition{}, fmt.Errorf("%w: %d rows", ErrAmbiguousCompetition, len(rows))
	}

	d := model.NewDecoder(model.TableCompetition, 0, rows[0])
	c := model.Competition{
		ID:     d.Int(model.ColCompetitionNo),
		Place:  d.String(model.ColPlace),
		Date:   d.String(model.ColDate),
		ClubID: d.Int(model.ColClubNo),
	}
	if err := d.Err(); err != nil {
		return model.Competition{}, err
	}
	if c.ID == nil {
		return model.Competition{}, ErrMissingCompetitionID
	}
	return c, nil
}

// ResolveCompetitionID returns override verbatim when set, otherwise the id
// of the only competition in the source.
func ResolveCompetitionID(ctx context.Context, src model.TableReader, location string, override *int) (int, error) {
	if override != nil {
		return *override, nil
	}
	c, err := Resolve(ctx, src, location)
	if err != nil {
		return 0, err
	}
	return *c.ID, nil
}
