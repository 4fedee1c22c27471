// Package export renders the joined competition model into the EVT file read
// by the timing system and the JSON document used by live displays.
//
// Both outputs are produced from a single pass over the races so they always
// list the same races and lanes in the same order.
package export

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/model"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/sequence"
)

// AffiliationPlaceholder is replaced by the affiliation in the URL template.
const AffiliationPlaceholder = "{affiliation}"

// DefaultAffiliationURLTemplate is used when Options leaves the template empty.
const DefaultAffiliationURLTemplate = "logos/provinces/" + AffiliationPlaceholder + ".png"

// Options tunes rendering.
type Options struct {
	// AffiliationURLTemplate builds a lane's affiliationUrl.
	AffiliationURLTemplate string
}

// Race is one race of the JSON document.
type Race struct {
	Name   string  `json:"name"`
	Title  string  `json:"title"`
	Event  string  `json:"event"`
	Heat   int     `json:"heat"`
	Group  *string `json:"group,omitempty"`
	Length *int    `json:"length,omitempty"`
	Track  int     `json:"track"`
	Lanes  []Lane  `json:"lanes"`
}

// Lane is one lane of a JSON race.
type Lane struct {
	StartPosition  *int    `json:"startPosition,omitempty"`
	HelmetID       *int    `json:"helmetId,omitempty"`
	Name           string  `json:"name"`
	AffiliationURL string  `json:"affiliationUrl"`
	LastName       *string `json:"lastName,omitempty"`
	FirstName      *string `json:"firstName,omitempty"`
	Affiliation    *string `json:"affiliation,omitempty"`
	CompetitorID   *string `json:"competitorId,omitempty"`
}

// Document holds both renderings of one model.
type Document struct {
	Races []Race
	EVT   []byte
	// JSON is Races indented by two spaces with a trailing newline.
	JSON []byte
}

// LaneCount returns the number of lanes over all races.
func (d *Document) LaneCount() int {
	n := 0
	for _, r := range d.Races {
		n += len(r.Lanes)
	}
	return n
}

// Render sorts the races of m and renders both outputs. m.Races is not modified.
func Render(m *model.Model, opts Options) (*Document, error) {
	tmpl := opts.AffiliationURLTemplate
	if tmpl == "" {
		tmpl = DefaultAffiliationURLTemplate
	}

	programs := make(map[int]*model.ProgramItem, len(m.Programs))
	for i := range m.Programs {
		programs[m.Programs[i].ID] = &m.Programs[i]
	}
	registrations := make(map[int]*model.CompetitorInCompetition, len(m.CompetitorsInCompetition))
	for i := range m.CompetitorsInCompetition {
		registrations[m.CompetitorsInCompetition[i].ID] = &m.CompetitorsInCompetition[i]
	}
	competitors := make(map[string]*model.Competitor, len(m.Competitors))
	for i := range m.Competitors {
		if id := m.Competitors[i].ExternalID; id != nil {
			competitors[*id] = &m.Competitors[i]
		}
	}
	lanesByRace := make(map[int][]model.Lane)
	for _, l := range m.Lanes {
		lanesByRace[l.RaceID] = append(lanesByRace[l.RaceID], l)
	}

	races := slices.Clone(m.Races)
	sequence.Sort(races)

	var evt bytes.Buffer
	out := make([]Race, 0, len(races))
	for _, race := range races {
		var group *string
		var length *int
		track := model.TrackStandard
		if p, ok := programs[race.ProgramItemID]; ok {
			group, length, track = p.Group, p.Length, p.Track
		}
		groupText := deref(group)
		lengthText := strconv.Itoa(derefInt(length))

		fmt.Fprintf(&evt, "%s,1,01,%s %s %sm %dm\n", race.Name, race.Name, groupText, lengthText, track)

		event, heat := SplitHeat(race.Name)
		jr := Race{
			Name:   race.Name,
			Title:  fmt.Sprintf("%s - %sm  %s (%dm)", race.Name, lengthText, groupText, track),
			Event:  event,
			Heat:   heat,
			Group:  group,
			Length: length,
			Track:  track,
			Lanes:  make([]Lane, 0, len(lanesByRace[race.ID])),
		}

		lanes := lanesByRace[race.ID]
		SortLanes(lanes)
		for _, lane := range lanes {
			var cic *model.CompetitorInCompetition
			var comp *model.Competitor
			if c, ok := registrations[lane.SkaterInCompetitionID]; ok {
				cic = c
				if c.CompetitorExternalID != nil {
					comp = competitors[*c.CompetitorExternalID]
				}
			}

			jl := Lane{StartPosition: lane.StartPosition}
			if cic != nil {
				jl.HelmetID = cic.HelmetID
				jl.Affiliation = cic.Affiliation
			}
			if comp != nil {
				jl.LastName = comp.LastName
				jl.FirstName = comp.FirstName
				jl.CompetitorID = comp.ExternalID
			}
			jl.Name = strings.TrimSpace(deref(jl.FirstName) + " " + deref(jl.LastName))
			jl.AffiliationURL = strings.ReplaceAll(tmpl, AffiliationPlaceholder, deref(jl.Affiliation))

			fmt.Fprintf(&evt, ",%d,%s,%s,%s,%s,,%s\n",
				derefInt(jl.HelmetID),
				optInt(jl.StartPosition),
				deref(jl.LastName),
				deref(jl.FirstName),
				deref(jl.Affiliation),
				deref(jl.CompetitorID),
			)
			jr.Lanes = append(jr.Lanes, jl)
		}
		out = append(out, jr)
	}

	doc, err := MarshalJSON(out, "  ")
	if err != nil {
		return nil, err
	}
	return &Document{Races: out, EVT: evt.Bytes(), JSON: doc}, nil
}

// SortLanes orders lanes by start position. Lanes without one go last and
// lanes with equal positions keep their order.
func SortLanes(lanes []model.Lane) {
	slices.SortStableFunc(lanes, func(a, b model.Lane) int {
		switch {
		case a.StartPosition == nil && b.StartPosition == nil:
			return 0
		case a.StartPosition == nil:
			return 1
		case b.StartPosition == nil:
			return -1
		}
		return cmp.Compare(*a.StartPosition, *b.StartPosition)
	})
}

// MarshalJSON encodes races without HTML escaping. An empty indent gives the
// compact form. The result ends with a newline.
func MarshalJSON(races []Race, indent string) ([]byte, error) {
	if races == nil {
		races = []Race{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(races); err != nil {
		return nil, fmt.Errorf("%w: encode json: %w", ErrRender, err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
