package fixture

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/source"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/model"
)

// nonEmpty drops absent values so rows compare the way the joiner reads them.
func nonEmpty(rows []model.Row) []map[string]string {
	out := make([]map[string]string, 0, len(rows))
	for _, r := range rows {
		m := make(map[string]string)
		for k, v := range r {
			if v != "" {
				m[k] = v
			}
		}
		out = append(out, m)
	}
	return out
}

func TestGenerate(t *testing.T) {
	Convey("Given a generator config", t, func() {
		cfg := Config{CompetitionID: 3, Programs: 2, RacesPerProgram: 3, LanesPerRace: 4, Seed: 42}

		Convey("When generating twice", func() {
			a := Generate(cfg)
			b := Generate(cfg)

			Convey("Then the tables should be identical", func() {
				So(a, ShouldResemble, b)
			})
		})

		Convey("When generating with another seed", func() {
			other := cfg
			other.Seed = 43

			Convey("Then the lanes should differ", func() {
				So(Generate(other)[model.TableWaveAssignment], ShouldNotResemble, Generate(cfg)[model.TableWaveAssignment])
			})
		})

		Convey("When counting rows", func() {
			tables := Generate(cfg)

			Convey("Then sizes should follow the config", func() {
				So(cfg.Lanes(), ShouldEqual, 24)
				So(len(tables[model.TableWaveAssignment]), ShouldEqual, cfg.Lanes())
				So(len(tables[model.TableSkaters]), ShouldEqual, cfg.Lanes())
				So(len(tables[model.TableWaves]), ShouldEqual, 6)
				So(len(tables[model.TableProgram]), ShouldEqual, 2)
				So(tables[model.TableCompetition][0][model.ColCompetitionNo], ShouldEqual, "3")
			})
		})

		Convey("When the config is empty", func() {
			Convey("Then defaults should apply", func() {
				So(Config{}.Lanes(), ShouldEqual, DefaultPrograms*DefaultRacesPerProgram*DefaultLanesPerRace)
				So(len(Generate(Config{})[model.TableProgram]), ShouldEqual, DefaultPrograms)
			})
		})
	})
}

func TestWriteCSV(t *testing.T) {
	Convey("Given the sample tables on an in-memory filesystem", t, func() {
		fs := afero.NewMemMapFs()
		So(WriteCSV(fs, "/db", Sample()), ShouldBeNil)

		Convey("When reading them back through the csvdir strategy", func() {
			dir := source.NewCSVDir(fs, "")

			Convey("Then every table should round-trip", func() {
				for table, want := range Sample() {
					got, err := dir.ReadTable(context.Background(), "/db", table)
					So(err, ShouldBeNil)
					So(nonEmpty(got), ShouldResemble, nonEmpty(want))
				}
			})
		})

		Convey("When the filesystem is read-only", func() {
			err := WriteCSV(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/db", Sample())

			Convey("Then writing should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
