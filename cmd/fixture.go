package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gilliangoud/gcpv-lynx-generator/internal/fixture"
	"github.com/gilliangoud/gcpv-lynx-generator/pkg/logger"
)

func newFixtureCmd(c *cli) *cobra.Command {
	var (
		out    string
		sample bool
		gen    fixture.Config
	)

	fixtureCmd := &cobra.Command{
		Use:   "fixture",
		Short: "Write a synthetic competition as per-table CSV files",
		Long: "Write a synthetic competition as <out>/<table>.csv files, readable by the\n" +
			"csvdir strategy. Useful for trying export, watch and serve without a\n" +
			"real competition database.",
		Args: cobra.NoArgs,
	}
	fixtureCmd.Flags().StringVar(&out, "out", "", "output directory (required)")
	fixtureCmd.Flags().BoolVar(&sample, "sample", false, "write the small hand-written sample instead of a generated competition")
	fixtureCmd.Flags().IntVar(&gen.CompetitionID, "competition-id", 1, "competition id of the generated data")
	fixtureCmd.Flags().IntVar(&gen.Programs, "programs", fixture.DefaultPrograms, "program items to generate")
	fixtureCmd.Flags().IntVar(&gen.RacesPerProgram, "races", fixture.DefaultRacesPerProgram, "races per program item")
	fixtureCmd.Flags().IntVar(&gen.LanesPerRace, "lanes", fixture.DefaultLanesPerRace, "lanes per race")
	fixtureCmd.Flags().Uint64Var(&gen.Seed, "seed", 1, "random seed")

	fixtureCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if out == "" {
			return errors.New("--out is required")
		}

		tables := fixture.Sample()
		if !sample {
			tables = fixture.Generate(gen)
		}
		if err := fixture.WriteCSV(c.fs, out, tables); err != nil {
			return fmt.Errorf("write fixture: %w", err)
		}

		c.log.Info(cmd.Context(), "fixture written",
			logger.String("dir", out),
			logger.Int("tables", len(tables)),
			logger.Bool("sample", sample),
		)
		return nil
	}
	return fixtureCmd
}
