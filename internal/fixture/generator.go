package fixture

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/model"
)

// Default generator sizes.
const (
	DefaultPrograms        = 8
	DefaultRacesPerProgram = 6
	DefaultLanesPerRace    = 6
)

// Config sizes a generated competition.
type Config struct {
	CompetitionID   int
	Programs        int
	RacesPerProgram int
	LanesPerRace    int
	Seed            uint64
}

func (c Config) withDefaults() Config {
	if c.CompetitionID <= 0 {
		c.CompetitionID = 1
	}
	if c.Programs <= 0 {
		c.Programs = DefaultPrograms
	}
	if c.RacesPerProgram <= 0 {
		c.RacesPerProgram = DefaultRacesPerProgram
	}
	if c.LanesPerRace <= 0 {
		c.LanesPerRace = DefaultLanesPerRace
	}
	return c
}

var (
	firstNames = []string{"Marie", "Léa", "Sam", "Olivier", "Chloé", "Nathan", "Emma", "Félix", "Zoé", "William"}
	lastNames  = []string{"Tremblay", "Gagnon", "Roy", "Côté", "Bouchard", "Gauthier", "Morin", "Lavoie", "Fortin", "Dion"}
	clubs      = []struct{ name, abbr string }{
		{"Club de patinage de vitesse de Montréal", "CPVM"},
		{"Club de patinage de vitesse de Québec", "CPVQ"},
		{"Calgary Speed Skating Club", ""},
		{"Ottawa Pacers", "OP"},
	}
	distances = []struct {
		name   string
		length int
	}{
		{"222m (111)", 222},
		{"500m", 500},
		{"777m (111)", 777},
		{"1000m", 1000},
		{"1500m", 1500},
	}
)

// Generate builds a complete, well-formed competition. The same Config always
// yields the same tables.
func Generate(cfg Config) Tables {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewPCG(cfg.Seed, uint64(cfg.CompetitionID)))
	itoa := strconv.Itoa

	t := Tables{
		model.TableCompetition: {{
			model.ColCompetitionNo: itoa(cfg.CompetitionID),
			model.ColPlace:         "Generated",
			model.ColClubNo:        "1",
		}},
	}

	for i, c := range clubs {
		t[model.TableClubs] = append(t[model.TableClubs], model.Row{
			model.ColClubNo:       itoa(i + 1),
			model.ColClubName:     c.name,
			model.ColAbbreviation: c.abbr,
		})
	}
	for i, d := range distances {
		t[model.TableDistances] = append(t[model.TableDistances], model.Row{
			model.ColDistanceNo: itoa(i + 1),
			model.ColDistance:   d.name,
			model.ColRaceLength: itoa(d.length),
		})
	}

	skater := 0
	for p := 1; p <= cfg.Programs; p++ {
		distNo := rng.IntN(len(distances)) + 1
		programKey := cfg.CompetitionID*10000 + p
		t[model.TableProgram] = append(t[model.TableProgram], model.Row{
			model.ColProgramKey:    itoa(programKey),
			model.ColCompetitionNo: itoa(cfg.CompetitionID),
			model.ColDistanceNo:    itoa(distNo),
			model.ColGroup:         fmt.Sprintf("Groupe %d", p),
			model.ColSequenceOrder: itoa(p),
		})

		for r := 0; r < cfg.RacesPerProgram; r++ {
			waveKey := programKey*100 + r
			t[model.TableWaves] = append(t[model.TableWaves], model.Row{
				model.ColWaveKey:    itoa(waveKey),
				model.ColWaveNo:     fmt.Sprintf("%d%c", p, 'A'+rune(r%26)),
				model.ColProgramKey: itoa(programKey),
				model.ColSeq:        itoa(r + 1),
			})

			for _, start := range rng.Perm(cfg.LanesPerRace) {
				skater++
				club := rng.IntN(len(clubs)) + 1
				code := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%d/%d", cfg.CompetitionID, skater)))
				t[model.TableSkaters] = append(t[model.TableSkaters], model.Row{
					model.ColSkaterNo:   itoa(skater),
					model.ColFirstName:  firstNames[rng.IntN(len(firstNames))],
					model.ColLastName:   lastNames[rng.IntN(len(lastNames))],
					model.ColSkaterCode: code.String()[:8],
					model.ColClubNo:     itoa(club),
				})
				t[model.TableSkaterComp] = append(t[model.TableSkaterComp], model.Row{
					model.ColSkaterCompNo:  itoa(skater),
					model.ColCompetitionNo: itoa(cfg.CompetitionID),
					model.ColSkaterNo:      itoa(skater),
					model.ColClubNo:        itoa(club),
					model.ColHelmet:        itoa(100 + skater),
					model.ColRemoved:       "0",
				})
				t[model.TableWaveAssignment] = append(t[model.TableWaveAssignment], model.Row{
					model.ColWaveAssignmentK: itoa(skater),
					model.ColWaveKey:         itoa(waveKey),
					model.ColSkaterCompNo:    itoa(skater),
					model.ColHelmet:          itoa(start + 1),
				})
			}
		}
	}
	return t
}

// Lanes returns the number of lanes Generate produces for cfg.
func (c Config) Lanes() int {
	c = c.withDefaults()
	return c.Programs * c.RacesPerProgram * c.LanesPerRace
}
