// Package joiner assembles the competition model from raw source tables.
//
// Every retrieval reads its own tables and re-runs the retrievals it depends
// on; wrap the source in a per-cycle cache to avoid reading a table twice.
// Rows missing a primary or required foreign key are dropped and counted,
// never reported as errors.
package joiner

import (
	"context"
	"strings"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/model"
	"github.com/gilliangoud/gcpv-lynx-generator/pkg/logger"
	"github.com/gilliangoud/gcpv-lynx-generator/pkg/metrics"
)

// Joiner builds entities from the tables stored at one source location.
type Joiner struct {
	src      model.TableReader
	location string
	logger   logger.Logger
}

// Option applies a configuration option to the Joiner.
type Option func(*Joiner)

// WithLogger sets a custom logger for the joiner.
func WithLogger(l logger.Logger) Option {
	return func(j *Joiner) {
		if l != nil {
			j.logger = l
		}
	}
}

// New returns a Joiner reading location through src.
func New(src model.TableReader, location string, opts ...Option) *Joiner {
	j := &Joiner{
		src:      src,
		location: location,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Load builds every collection for competitionID, running each retrieval once.
func (j *Joiner) Load(ctx context.Context, competitionID int) (*model.Model, error) {
	competitors, err := j.Competitors(ctx)
	if err != nil {
		return nil, err
	}
	clubs, err := j.Clubs(ctx)
	if err != nil {
		return nil, err
	}
	cics, err := j.competitorsInCompetition(ctx, competitionID, competitors, clubs)
	if err != nil {
		return nil, err
	}
	distances, err := j.Distances(ctx)
	if err != nil {
		return nil, err
	}
	programs, err := j.programs(ctx, competitionID, distances)
	if err != nil {
		return nil, err
	}
	races, err := j.races(ctx, competitionID, programs)
	if err != nil {
		return nil, err
	}
	lanes, err := j.lanes(ctx, races, cics)
	if err != nil {
		return nil, err
	}

	j.logger.Debug(ctx, "model joined",
		logger.Int("competitionId", competitionID),
		logger.Int("competitors", len(competitors)),
		logger.Int("registrations", len(cics)),
		logger.Int("programs", len(programs)),
		logger.Int("races", len(races)),
		logger.Int("lanes", len(lanes)),
	)

	return &model.Model{
		CompetitionID:            competitionID,
		Competitors:              competitors,
		CompetitorsInCompetition: cics,
		Programs:                 programs,
		Races:                    races,
		Lanes:                    lanes,
	}, nil
}

// Competitors returns every skater with a skater number.
func (j *Joiner) Competitors(ctx context.Context) ([]model.Competitor, error) {
	rows, err := j.src.ReadTable(ctx, j.location, model.TableSkaters)
	if err != nil {
		return nil, err
	}

	out := make([]model.Competitor, 0, len(rows))
	dropped := 0
	for i, row := range rows {
		d := model.NewDecoder(model.TableSkaters, i, row)
		no := d.Int(model.ColSkaterNo)
		c := model.Competitor{
			ExternalID: d.String(model.ColSkaterCode),
			FirstName:  d.String(model.ColFirstName),
			LastName:   d.String(model.ColLastName),
			BirthDate:  d.String(model.ColBirthDate),
			Sex:        d.String(model.ColSex),
			Division:   d.String(model.ColDivision),
			CategoryID: d.Int(model.ColCategoryNo),
			ClubID:     d.Int(model.ColClubNo),
		}
		if err := d.Err(); err != nil {
			return nil, err
		}
		if no == nil {
			dropped++
			continue
		}
		c.No = *no
		out = append(out, c)
	}
	j.dropped(ctx, model.TableSkaters, dropped)
	return out, nil
}

// Clubs returns every club with a club number.
func (j *Joiner) Clubs(ctx context.Context) ([]model.Club, error) {
	rows, err := j.src.ReadTable(ctx, j.location, model.TableClubs)
	if err != nil {
		return nil, err
	}

	out := make([]model.Club, 0, len(rows))
	dropped := 0
	for i, row := range rows {
		d := model.NewDecoder(model.TableClubs, i, row)
		id := d.Int(model.ColClubNo)
		c := model.Club{
			Name:         d.String(model.ColClubName),
			Comment:      d.String(model.ColComment),
			RegionID:     d.Int(model.ColRegionNo),
			Abbreviation: d.String(model.ColAbbreviation),
		}
		if err := d.Err(); err != nil {
			return nil, err
		}
		if id == nil {
			dropped++
			continue
		}
		c.ID = *id
		out = append(out, c)
	}
	j.dropped(ctx, model.TableClubs, dropped)
	return out, nil
}

// CompetitorsInCompetition returns the registrations of competitionID with
// the competitor's external id and the club affiliation resolved.
func (j *Joiner) CompetitorsInCompetition(ctx context.Context, competitionID int) ([]model.CompetitorInCompetition, error) {
	competitors, err := j.Competitors(ctx)
	if err != nil {
		return nil, err
	}
	clubs, err := j.Clubs(ctx)
	if err != nil {
		return nil, err
	}
	return j.competitorsInCompetition(ctx, competitionID, competitors, clubs)
}

func (j *Joiner) competitorsInCompetition(ctx context.Context, competitionID int, competitors []model.Competitor, clubs []model.Club) ([]model.CompetitorInCompetition, error) {
	byNo := make(map[int]*model.Competitor, len(competitors))
	for i := range competitors {
		byNo[competitors[i].No] = &competitors[i]
	}
	clubByID := make(map[int]*model.Club, len(clubs))
	for i := range clubs {
		clubByID[clubs[i].ID] = &clubs[i]
	}

	rows, err := j.src.ReadTable(ctx, j.location, model.TableSkaterComp)
	if err != nil {
		return nil, err
	}

	out := make([]model.CompetitorInCompetition, 0, len(rows))
	dropped := 0
	for i, row := range rows {
		d := model.NewDecoder(model.TableSkaterComp, i, row)
		compID := d.Int(model.ColCompetitionNo)
		id := d.Int(model.ColSkaterCompNo)
		no := d.Int(model.ColSkaterNo)
		removed := d.Int(model.ColRemoved)
		c := model.CompetitorInCompetition{
			CategoryID: d.Int(model.ColCategoryNo),
			ClubID:     d.Int(model.ColClubNo),
			Rank:       d.Int(model.ColRank),
			Group:      d.String(model.ColGroup),
			HelmetID:   d.Int(model.ColHelmet),
		}
		if err := d.Err(); err != nil {
			return nil, err
		}
		if compID == nil || *compID != competitionID {
			continue
		}
		if id == nil || no == nil {
			dropped++
			continue
		}

		c.ID = *id
		c.CompetitorNo = *no
		if removed != nil {
			c.Removed = model.Ptr(*removed != 0)
		}
		if comp, ok := byNo[*no]; ok {
			c.CompetitorExternalID = comp.ExternalID
		}
		if c.ClubID != nil {
			if club, ok := clubByID[*c.ClubID]; ok {
				c.Affiliation = affiliation(club)
				c.ClubName = club.Name
			}
		}
		out = append(out, c)
	}
	j.dropped(ctx, model.TableSkaterComp, dropped)
	return out, nil
}

// Distances returns every standard distance with its track classification.
func (j *Joiner) Distances(ctx context.Context) ([]model.Distance, error) {
	rows, err := j.src.ReadTable(ctx, j.location, model.TableDistances)
	if err != nil {
		return nil, err
	}

	out := make([]model.Distance, 0, len(rows))
	dropped := 0
	for i, row := range rows {
		d := model.NewDecoder(model.TableDistances, i, row)
		id := d.Int(model.ColDistanceNo)
		dist := model.Distance{
			Name:   d.String(model.ColDistance),
			Length: d.Int(model.ColRaceLength),
		}
		if err := d.Err(); err != nil {
			return nil, err
		}
		if id == nil {
			dropped++
			continue
		}
		dist.ID = *id
		dist.Track = Track(dist.Name)
		out = append(out, dist)
	}
	j.dropped(ctx, model.TableDistances, dropped)
	return out, nil
}

// Programs returns the program items of competitionID with length and track
// copied from their distance.
func (j *Joiner) Programs(ctx context.Context, competitionID int) ([]model.ProgramItem, error) {
	distances, err := j.Distances(ctx)
	if err != nil {
		return nil, err
	}
	return j.programs(ctx, competitionID, distances)
}

func (j *Joiner) programs(ctx context.Context, competitionID int, distances []model.Distance) ([]model.ProgramItem, error) {
	distByID := make(map[int]*model.Distance, len(distances))
	for i := range distances {
		distByID[distances[i].ID] = &distances[i]
	}

	rows, err := j.src.ReadTable(ctx, j.location, model.TableProgram)
	if err != nil {
		return nil, err
	}

	out := make([]model.ProgramItem, 0, len(rows))
	dropped := 0
	for i, row := range rows {
		d := model.NewDecoder(model.TableProgram, i, row)
		compID := d.Int(model.ColCompetitionNo)
		id := d.Int(model.ColProgramKey)
		distID := d.Int(model.ColDistanceNo)
		p := model.ProgramItem{
			Distance:      d.String(model.ColDistance),
			Wave:          d.String(model.ColWaveNo),
			Group:         d.String(model.ColGroup),
			SequenceOrder: d.Float(model.ColSequenceOrder),
			Track:         model.TrackStandard,
		}
		if err := d.Err(); err != nil {
			return nil, err
		}
		if compID == nil || *compID != competitionID {
			continue
		}
		if id == nil || distID == nil {
			dropped++
			continue
		}

		p.ID = *id
		p.CompetitionID = *compID
		p.DistanceID = *distID
		if dist, ok := distByID[*distID]; ok {
			p.Length = dist.Length
			p.Track = dist.Track
		}
		out = append(out, p)
	}
	j.dropped(ctx, model.TableProgram, dropped)
	return out, nil
}

// Races returns the waves whose program item belongs to competitionID.
func (j *Joiner) Races(ctx context.Context, competitionID int) ([]model.Race, error) {
	programs, err := j.Programs(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	return j.races(ctx, competitionID, programs)
}

func (j *Joiner) races(ctx context.Context, competitionID int, programs []model.ProgramItem) ([]model.Race, error) {
	progByID := make(map[int]*model.ProgramItem, len(programs))
	for i := range programs {
		progByID[programs[i].ID] = &programs[i]
	}

	rows, err := j.src.ReadTable(ctx, j.location, model.TableWaves)
	if err != nil {
		return nil, err
	}

	out := make([]model.Race, 0, len(rows))
	dropped := 0
	for i, row := range rows {
		d := model.NewDecoder(model.TableWaves, i, row)
		progID := d.Int(model.ColProgramKey)
		id := d.Int(model.ColWaveKey)
		r := model.Race{
			Sequence: d.Int(model.ColSeq),
			Round:    d.String(model.ColQualOrFinal),
		}
		if name := d.String(model.ColWaveNo); name != nil {
			r.Name = *name
		}
		if err := d.Err(); err != nil {
			return nil, err
		}
		if progID == nil {
			dropped++
			continue
		}
		prog, ok := progByID[*progID]
		if !ok || prog.CompetitionID != competitionID {
			continue
		}
		if id == nil {
			dropped++
			continue
		}

		r.ID = *id
		r.ProgramItemID = prog.ID
		r.Length = prog.Length
		r.Track = prog.Track
		out = append(out, r)
	}
	j.dropped(ctx, model.TableWaves, dropped)
	return out, nil
}

// Lanes returns the lane assignments of the races of competitionID.
func (j *Joiner) Lanes(ctx context.Context, competitionID int) ([]model.Lane, error) {
	races, err := j.Races(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	cics, err := j.CompetitorsInCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	return j.lanes(ctx, races, cics)
}

func (j *Joiner) lanes(ctx context.Context, races []model.Race, cics []model.CompetitorInCompetition) ([]model.Lane, error) {
	raceIDs := make(map[int]struct{}, len(races))
	for _, r := range races {
		raceIDs[r.ID] = struct{}{}
	}
	cicByID := make(map[int]*model.CompetitorInCompetition, len(cics))
	for i := range cics {
		cicByID[cics[i].ID] = &cics[i]
	}

	rows, err := j.src.ReadTable(ctx, j.location, model.TableWaveAssignment)
	if err != nil {
		return nil, err
	}

	out := make([]model.Lane, 0, len(rows))
	dropped := 0
	for i, row := range rows {
		d := model.NewDecoder(model.TableWaveAssignment, i, row)
		raceID := d.Int(model.ColWaveKey)
		cicID := d.Int(model.ColSkaterCompNo)
		id := d.Int(model.ColWaveAssignmentK)
		l := model.Lane{
			Time:          d.String(model.ColTime),
			Position:      d.Int(model.ColRank),
			StartPosition: d.Int(model.ColHelmet),
		}
		if err := d.Err(); err != nil {
			return nil, err
		}
		if raceID == nil {
			dropped++
			continue
		}
		if _, ok := raceIDs[*raceID]; !ok {
			continue
		}
		if cicID == nil || id == nil {
			dropped++
			continue
		}

		l.ID = *id
		l.RaceID = *raceID
		l.SkaterInCompetitionID = *cicID
		if cic, ok := cicByID[*cicID]; ok {
			l.SkaterExternalID = cic.CompetitorExternalID
		}
		out = append(out, l)
	}
	j.dropped(ctx, model.TableWaveAssignment, dropped)
	return out, nil
}

// Track classifies a distance by its display name.
func Track(name *string) int {
	if name != nil && strings.Contains(*name, model.TrackOlympicMarker) {
		return model.TrackOlympic
	}
	return model.TrackStandard
}

// affiliation prefers the club abbreviation over its full name.
func affiliation(c *model.Club) *string {
	if c.Abbreviation != nil {
		return c.Abbreviation
	}
	return c.Name
}

func (j *Joiner) dropped(ctx context.Context, table string, n int) {
	if n == 0 {
		return
	}
	metrics.RecordRowsDropped(table, n)
	j.logger.Debug(ctx, "rows without required keys dropped",
		logger.String("table", table),
		logger.Int("rows", n),
	)
}
