package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/huikaichung/knowyourself/internal/modules/charts"
)

// batchFile is the YAML document accepted by the batch command. Fields left
// empty on a request are taken from defaults, then from configuration.
//
//	defaults:
//	  timezone: Asia/Taipei
//	requests:
//	  - date: "1990-01-15"
//	    time: "08:30"
//	    latitude: 25.033
//	    longitude: 121.565
type batchFile struct {
	Defaults struct {
		Latitude  *float64 `yaml:"latitude"`
		Longitude *float64 `yaml:"longitude"`
		Timezone  string   `yaml:"timezone"`
	} `yaml:"defaults"`
	Requests []batchRequest `yaml:"requests"`
}

// batchRequest keeps coordinates optional so a zero latitude is not confused
// with an omitted one.
type batchRequest struct {
	Date      string   `yaml:"date"`
	Time      string   `yaml:"time"`
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
	Timezone  string   `yaml:"timezone"`
}

// batchSummary wraps batch results for output.
type batchSummary struct {
	Total   int                  `json:"total"`
	Failed  int                  `json:"failed"`
	Results []charts.BatchResult `json:"results"`
}

func parseBatch(r io.Reader, a *app) ([]charts.ReadingRequest, error) {
	var doc batchFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("batch file is empty")
		}
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}

	lat, lon, tz := a.cfg.DefaultLatitude, a.cfg.DefaultLongitude, a.cfg.DefaultTimezone
	if doc.Defaults.Latitude != nil {
		lat = *doc.Defaults.Latitude
	}
	if doc.Defaults.Longitude != nil {
		lon = *doc.Defaults.Longitude
	}
	if doc.Defaults.Timezone != "" {
		tz = doc.Defaults.Timezone
	}

	reqs := make([]charts.ReadingRequest, 0, len(doc.Requests))
	for _, br := range doc.Requests {
		req := charts.ReadingRequest{
			Date:      br.Date,
			Time:      br.Time,
			Latitude:  lat,
			Longitude: lon,
			Timezone:  tz,
		}
		if br.Latitude != nil {
			req.Latitude = *br.Latitude
		}
		if br.Longitude != nil {
			req.Longitude = *br.Longitude
		}
		if br.Timezone != "" {
			req.Timezone = br.Timezone
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func newBatchCmd(a *app) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "batch <file.yaml|->",
		Short: "Calculate readings for every request in a YAML file",
		Long: `Reads a YAML list of birth requests and prints one result per request.
A request that fails is reported with its error kind and field; the rest
of the batch still runs. Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open batch file: %w", err)
				}
				defer f.Close()
				in = f
			}

			reqs, err := parseBatch(in, a)
			if err != nil {
				return err
			}

			results, err := a.container.ChartsService.CalculateBatch(cmd.Context(), reqs, workers)
			if err != nil {
				return fmt.Errorf("batch aborted: %w", err)
			}

			summary := batchSummary{Total: len(results), Results: results}
			for _, r := range results {
				if r.Error != "" {
					summary.Failed++
				}
			}
			return a.print(cmd.OutOrStdout(), summary)
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "number of readings calculated concurrently")
	return cmd
}
