package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/adapters/source/sourcetest"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/model"
	"github.com/gilliangoud/gcpv-lynx-generator/internal/domain/resolver"
	. "github.com/smartystreets/goconvey/convey"
)

func competitions(rows ...model.Row) *sourcetest.Memory {
	return sourcetest.NewMemory(map[string][]model.Row{model.TableCompetition: rows})
}

func TestResolveCompetitionID(t *testing.T) {
	ctx := context.Background()

	Convey("Given a source with exactly one competition", t, func() {
		src := competitions(model.Row{"NoCompetition": "7", "Lieu": "Montréal"})

		Convey("When no override is supplied", func() {
			id, err := resolver.ResolveCompetitionID(ctx, src, "comp.pat", nil)

			Convey("Then the competition id should be returned", func() {
				So(err, ShouldBeNil)
				So(id, ShouldEqual, 7)
			})
		})

		Convey("When an override is supplied", func() {
			id, err := resolver.ResolveCompetitionID(ctx, src, "comp.pat", model.Ptr(42))

			Convey("Then it should be used verbatim", func() {
				So(err, ShouldBeNil)
				So(id, ShouldEqual, 42)
			})
		})

		Convey("When resolving the whole row", func() {
			c, err := resolver.Resolve(ctx, src, "comp.pat")

			Convey("Then the descriptive fields should be present", func() {
				So(err, ShouldBeNil)
				So(*c.Place, ShouldEqual, "Montréal")
				So(c.Date, ShouldBeNil)
			})
		})
	})

	Convey("Given an override and an unreadable source", t, func() {
		src := sourcetest.NewMemory(nil)

		id, err := resolver.ResolveCompetitionID(ctx, src, "comp.pat", model.Ptr(3))

		Convey("Then the source should not be consulted", func() {
			So(err, ShouldBeNil)
			So(id, ShouldEqual, 3)
		})
	})

	Convey("Given an empty competition table", t, func() {
		_, err := resolver.ResolveCompetitionID(ctx, competitions(), "comp.pat", nil)

		Convey("Then ErrNoCompetition should be returned", func() {
			So(errors.Is(err, resolver.ErrNoCompetition), ShouldBeTrue)
		})
	})

	Convey("Given two competitions", t, func() {
		src := competitions(model.Row{"NoCompetition": "1"}, model.Row{"NoCompetition": "2"})

		_, err := resolver.ResolveCompetitionID(ctx, src, "comp.pat", nil)

		Convey("Then ErrAmbiguousCompetition should be returned", func() {
			So(errors.Is(err, resolver.ErrAmbiguousCompetition), ShouldBeTrue)
		})
	})

	Convey("Given a competition row without an id", t, func() {
		_, err := resolver.ResolveCompetitionID(ctx, competitions(model.Row{"Lieu": "Laval"}), "comp.pat", nil)

		Convey("Then ErrMissingCompetitionID should be returned", func() {
			So(errors.Is(err, resolver.ErrMissingCompetitionID), ShouldBeTrue)
		})
	})

	Convey("Given a competition id that is not a number", t, func() {
		_, err := resolver.ResolveCompetitionID(ctx, competitions(model.Row{"NoCompetition": "seven"}), "comp.pat", nil)

		Convey("Then a decode error should be returned", func() {
			So(errors.Is(err, model.ErrFieldDecode), ShouldBeTrue)
		})
	})

	Convey("Given a source without a competition table", t, func() {
		_, err := resolver.ResolveCompetitionID(ctx, sourcetest.NewMemory(nil), "comp.pat", nil)

		Convey("Then the read error should be returned", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
