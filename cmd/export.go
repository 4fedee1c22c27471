package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gilliangoud/gcpv-lynx-generator/pkg/logger"
)

type exportFlags struct {
	source        string
	evt           string
	json          string
	competitionID int
}

func newExportCmd(c *cli) *cobra.Command {
	var f exportFlags

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Run a single export cycle and exit",
		Args:  cobra.NoArgs,
	}
	exportCmd.Flags().StringVar(&f.source, "source", "", "competition database path (overrides source_path)")
	exportCmd.Flags().StringVar(&f.evt, "evt", "", "EVT output file (overrides output_dir/evt_file)")
	exportCmd.Flags().StringVar(&f.json, "json", "", "JSON output file (overrides output_dir/json_file)")
	exportCmd.Flags().IntVar(&f.competitionID, "competition-id", 0, "export this competition instead of resolving it")

	exportCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		req := c.request()
		if f.source != "" {
			req.SourcePath = f.source
		}
		if f.evt != "" {
			req.EVTPath = f.evt
		}
		if f.json != "" {
			req.JSONPath = f.json
		}
		if cmd.Flags().Changed("competition-id") {
			id := f.competitionID
			req.CompetitionOverride = &id
		}

		svc, err := c.newService(req)
		if err != nil {
			return err
		}
		snap, err := svc.RunCycle(ctx, req)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		c.log.Info(ctx, "export written",
			logger.Int("competition", snap.CompetitionID),
			logger.Int("races", snap.RaceCount),
			logger.Int("lanes", snap.LaneCount),
			logger.String("evt", req.EVTPath),
			logger.String("json", req.JSONPath),
		)
		return nil
	}
	return exportCmd
}
