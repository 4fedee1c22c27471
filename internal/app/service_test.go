package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/afero"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/repository"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/source"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/source/sourcetest"
	service "github.com/gilliangoud/gcpv-lynx-generator/internal/app"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/export"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/model"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/resolver"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/fixture"
	. "github.com/smartystreets/goconvey/convey"
)

const sourcePath = "/data/comp.pat"

func newService(fs afero.Fs, mem *sourcetest.Memory, opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithFS(fs),
		service.WithSource(mem),
		service.WithStore(repository.NewSnapshotStore()),
	}
	return service.New(append(base, opts...)...)
}

func newFS() afero.Fs {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, sourcePath, []byte("access"), 0o644); err != nil {
		panic(err)
	}
	return fs
}

func TestRunCycle(t *testing.T) {
	ctx := context.Background()
	req := service.Request{SourcePath: sourcePath, EVTPath: "/out/LYNX.EVT", JSONPath: "/out/races.json"}

	Convey("Given the sample competition database", t, func() {
		fs := newFS()
		mem := sourcetest.NewMemory(fixture.Sample())
		svc := newService(fs, mem)

		Convey("When a cycle runs", func() {
			snap, err := svc.RunCycle(ctx, req)
			So(err, ShouldBeNil)

			Convey("Then the EVT file should be written", func() {
				evt, err := afero.ReadFile(fs, req.EVTPath)
				So(err, ShouldBeNil)
				So(string(evt), ShouldEqual, fixture.SampleEVT)
			})

			Convey("Then the JSON file should be the pretty rendering", func() {
				js, err := afero.ReadFile(fs, req.JSONPath)
				So(err, ShouldBeNil)
				So(string(js), ShouldStartWith, "[\n  {\n")
			})

			Convey("Then the snapshot should be published", func() {
				So(snap.CompetitionID, ShouldEqual, fixture.SampleCompetitionID)
				So(snap.RaceCount, ShouldEqual, 2)
				So(snap.LaneCount, ShouldEqual, 4)
				So(string(snap.JSON), ShouldStartWith, `[{"name":"1A","title":"1A - 500m  Open A (100m)"`)

				current, err := svc.Store().Current(ctx)
				So(err, ShouldBeNil)
				So(current.ID, ShouldEqual, snap.ID)
			})

			Convey("And the next cycle fails", func() {
				mem.Set(model.TableCompetition, nil)
				_, err := svc.RunCycle(ctx, req)

				Convey("Then the previous snapshot should stay visible", func() {
					So(errors.Is(err, resolver.ErrNoCompetition), ShouldBeTrue)
					current, err := svc.Store().Current(ctx)
					So(err, ShouldBeNil)
					So(current.ID, ShouldEqual, snap.ID)
					So(svc.Store().Count(ctx), ShouldEqual, 1)
				})
			})

			Convey("And it runs again on identical input", func() {
				first, _ := afero.ReadFile(fs, req.JSONPath)
				_, err := svc.RunCycle(ctx, req)
				So(err, ShouldBeNil)
				second, _ := afero.ReadFile(fs, req.JSONPath)

				Convey("Then the outputs should be byte-identical", func() {
					So(second, ShouldResemble, first)
				})
			})
		})

		Convey("When the competition is overridden", func() {
			override := 8
			_, err := svc.RunCycle(ctx, service.Request{
				SourcePath:          sourcePath,
				EVTPath:             "/out/LYNX.EVT",
				CompetitionOverride: &override,
			})

			Convey("Then only that competition should be exported", func() {
				So(err, ShouldBeNil)
				evt, _ := afero.ReadFile(fs, "/out/LYNX.EVT")
				So(string(evt), ShouldEqual, "9A,1,01,9A Other 777m 111m\n,99,1,Dion,Marie,CPVM,,QC-0001\n")
			})
		})

		Convey("When no output paths are set", func() {
			snap, err := svc.RunCycle(ctx, service.Request{SourcePath: sourcePath})

			Convey("Then nothing should be written but the snapshot published", func() {
				So(err, ShouldBeNil)
				So(snap.RaceCount, ShouldEqual, 2)
				ok, _ := afero.DirExists(fs, "/out")
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When the source file does not exist", func() {
			_, err := svc.RunCycle(ctx, service.Request{SourcePath: "/data/missing.pat", EVTPath: "/out/LYNX.EVT"})

			Convey("Then ErrSourceNotFound should be returned and nothing published", func() {
				So(errors.Is(err, service.ErrSourceNotFound), ShouldBeTrue)
				_, err := svc.Store().Current(ctx)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When a table cannot be read", func() {
			tables := fixture.Sample()
			delete(tables, model.TableWaveAssignment)
			svc := newService(fs, sourcetest.NewMemory(tables))

			_, err := svc.RunCycle(ctx, req)

			Convey("Then the cycle should fail and leave earlier outputs untouched", func() {
				So(err, ShouldNotBeNil)
				ok, _ := afero.Exists(fs, req.EVTPath)
				So(ok, ShouldBeFalse)
			})
		})
	})

	Convey("Given a service with a default request", t, func() {
		fs := newFS()
		svc := newService(fs, sourcetest.NewMemory(fixture.Sample()),
			service.WithRequest(service.Request{SourcePath: sourcePath, JSONPath: "/races.json"}),
			service.WithAffiliationURLTemplate("/logos/{affiliation}.svg"),
		)

		Convey("When RunOnce is called", func() {
			err := svc.RunOnce(ctx)

			Convey("Then the configured request should be exported", func() {
				So(err, ShouldBeNil)
				js, _ := afero.ReadFile(fs, "/races.json")
				So(string(js), ShouldContainSubstring, `"affiliationUrl": "/logos/CPVM.svg"`)
			})
		})
	})

	Convey("Given generated competitions of several sizes", t, func() {
		for _, cfg := range []fixture.Config{
			{CompetitionID: 3, Programs: 1, RacesPerProgram: 1, LanesPerRace: 1},
			{CompetitionID: 4, Seed: 9},
		} {
			svc := newService(newFS(), sourcetest.NewMemory(fixture.Generate(cfg)))
			snap, err := svc.RunCycle(ctx, service.Request{SourcePath: sourcePath})

			So(err, ShouldBeNil)
			So(snap.LaneCount, ShouldEqual, cfg.Lanes())
		}
	})
}

func TestErrorKind(t *testing.T) {
	Convey("Given cycle errors", t, func() {
		cases := map[error]string{
			fmt.Errorf("x: %w", service.ErrSourceNotFound):        service.KindSourceNotFound,
			fmt.Errorf("x: %w", resolver.ErrNoCompetition):        service.KindNoCompetition,
			fmt.Errorf("x: %w", resolver.ErrAmbiguousCompetition): service.KindAmbiguousCompetition,
			fmt.Errorf("x: %w", resolver.ErrMissingCompetitionID): service.KindMissingCompetitionID,
			fmt.Errorf("x: %w", source.ErrTableRead):              service.KindTableRead,
			fmt.Errorf("x: %w", model.ErrFieldDecode):             service.KindFieldDecode,
			fmt.Errorf("x: %w", export.ErrOutputWrite):            service.KindOutputWrite,
			fmt.Errorf("x: %w", export.ErrRender):                 service.KindRender,
			errors.New("boom"):                                    service.KindOther,
		}
		for err, kind := range cases {
			So(service.ErrorKind(err), ShouldEqual, kind)
		}
	})
}
