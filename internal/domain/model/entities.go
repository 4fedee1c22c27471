// Package model contains the joined competition entities passed between layers.
package model

// Track lengths in metres.
const (
	TrackStandard = 100
	TrackOlympic  = 111

	// TrackOlympicMarker in a distance name selects the 111m track.
	TrackOlympicMarker = "(111)"
)

// Competition is a row of the competition table.
type Competition struct {
	ID     *int
	Place  *string
	Date   *string
	ClubID *int
}

// Competitor is a registered skater.
type Competitor struct {
	No         int
	ExternalID *string
	FirstName  *string
	LastName   *string
	BirthDate  *string
	Sex        *string
	Division   *string
	CategoryID *int
	ClubID     *int
}

// Club is a skating club.
type Club struct {
	ID           int
	Name         *string
	Comment      *string
	RegionID     *int
	Abbreviation *string
}

// CompetitorInCompetition is a skater's registration for one competition.
type CompetitorInCompetition struct {
	ID                   int
	CompetitorNo         int
	CompetitorExternalID *string
	CategoryID           *int
	ClubID               *int
	Affiliation          *string
	ClubName             *string
	Rank                 *int
	Removed              *bool
	Group                *string
	HelmetID             *int
}

// Distance is a standard race distance.
type Distance struct {
	ID     int
	Name   *string
	Length *int
	Track  int
}

// ProgramItem is a scheduled distance/group entry of a competition.
type ProgramItem struct {
	ID            int
	CompetitionID int
	DistanceID    int
	Distance      *string
	Wave          *string
	Group         *string
	SequenceOrder *float64
	Length        *int
	Track         int
}

// Race is one wave of a program item, e.g. "101A".
type Race struct {
	ID            int
	Name          string
	Length        *int
	Track         int
	ProgramItemID int
	Sequence      *int
	Round         *string
}

// Lane is a skater's assignment and result within a race.
type Lane struct {
	ID                    int
	RaceID                int
	SkaterInCompetitionID int
	SkaterExternalID      *string
	Time                  *string
	Position              *int
	StartPosition         *int
}

// Model is everything one export cycle needs, scoped to a single competition.
type Model struct {
	CompetitionID            int
	Competitors              []Competitor
	CompetitorsInCompetition []CompetitorInCompetition
	Programs                 []ProgramItem
	Races                    []Race
	Lanes                    []Lane
}
