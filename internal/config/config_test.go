package config_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":3030")
			convey.So(cfg.EVTFile, convey.ShouldEqual, "LYNX.EVT")
			convey.So(cfg.JSONFile, convey.ShouldEqual, "races.json")
			convey.So(cfg.Interval(), convey.ShouldEqual, time.Minute)
			convey.So(cfg.CompetitionID, convey.ShouldBeNil)
			convey.So(cfg.Strategies, convey.ShouldResemble, []string{config.StrategyMDBExport})
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then output paths should be disabled without an output dir", func() {
			convey.So(cfg.EVTPath(), convey.ShouldEqual, "")
			convey.So(cfg.JSONPath(), convey.ShouldEqual, "")
		})

		convey.Convey("When an output dir is set", func() {
			cfg.OutputDir = filepath.Join("out", "lynx")

			convey.Convey("Then both paths should live in it", func() {
				convey.So(cfg.EVTPath(), convey.ShouldEqual, filepath.Join("out", "lynx", "LYNX.EVT"))
				convey.So(cfg.JSONPath(), convey.ShouldEqual, filepath.Join("out", "lynx", "races.json"))
			})
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()

		convey.Convey("When the interval is zero", func() {
			cfg.IntervalSeconds = 0
			err := cfg.Validate()

			convey.Convey("Then it should be invalid", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When an unknown strategy is listed", func() {
			cfg.Strategies = []string{"odbc"}
			err := cfg.Validate()

			convey.Convey("Then it should be invalid", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "odbc")
			})
		})

		convey.Convey("When no strategy is listed", func() {
			cfg.Strategies = nil

			convey.Convey("Then it should be invalid", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the URL template has no placeholder", func() {
			cfg.AffiliationURLTemplate = "/logos/fixed.png"

			convey.Convey("Then it should be invalid", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
