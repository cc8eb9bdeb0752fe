package main

import (
	"github.com/spf13/cobra"

	"github.com/huikaichung/knowyourself/internal/modules/charts"
)

// birthFlags are the inputs shared by the single-chart commands.
type birthFlags struct {
	date      string
	time      string
	latitude  float64
	longitude float64
	timezone  string
}

func (f *birthFlags) register(cmd *cobra.Command, withPlace bool) {
	cmd.Flags().StringVar(&f.date, "date", "", "birth date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&f.time, "time", "", "local birth time, HH:MM or HH:MM:SS (required)")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	if withPlace {
		cmd.Flags().Float64Var(&f.latitude, "lat", 0, "latitude in degrees, north positive (default DEFAULT_LATITUDE)")
		cmd.Flags().Float64Var(&f.longitude, "lon", 0, "longitude in degrees, east positive (default DEFAULT_LONGITUDE)")
		cmd.Flags().StringVar(&f.timezone, "tz", "", "IANA time zone (default DEFAULT_TIMEZONE)")
	}
}

// request fills unset place flags from configuration.
func (f *birthFlags) request(cmd *cobra.Command, a *app) charts.ReadingRequest {
	req := charts.ReadingRequest{
		Date:      f.date,
		Time:      f.time,
		Latitude:  f.latitude,
		Longitude: f.longitude,
		Timezone:  f.timezone,
	}
	if !cmd.Flags().Changed("lat") {
		req.Latitude = a.cfg.DefaultLatitude
	}
	if !cmd.Flags().Changed("lon") {
		req.Longitude = a.cfg.DefaultLongitude
	}
	if req.Timezone == "" {
		req.Timezone = a.cfg.DefaultTimezone
	}
	return req
}

func newWesternCmd(a *app) *cobra.Command {
	var f birthFlags
	cmd := &cobra.Command{
		Use:   "western",
		Short: "Calculate a tropical natal chart",
		Long: `Calculates Sun, Moon and planet placements, the Ascendant, Midheaven,
house cusps and major aspects.

Example:
  chartcalc western --date 1990-01-15 --time 08:30 --lat 25.033 --lon 121.565 --tz Asia/Taipei`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := f.request(cmd, a)
			chart, err := a.container.ChartsService.CalculatePreciseChart(req.Date, req.Time, req.Latitude, req.Longitude, req.Timezone)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), chart)
		},
	}
	f.register(cmd, true)
	return cmd
}

func newZiweiCmd(a *app) *cobra.Command {
	var f birthFlags
	cmd := &cobra.Command{
		Use:   "ziwei",
		Short: "Calculate a Zi Wei Dou Shu chart",
		Long: `Converts the local civil birth date to the lunar calendar and places the
Ming palace, Five-Elements Bureau and stars.

Example:
  chartcalc ziwei --date 1990-01-15 --time 08:30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := a.container.ChartsService.CalculateZiweiChart(f.date, f.time)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), chart)
		},
	}
	f.register(cmd, false)
	return cmd
}

func newReadingCmd(a *app) *cobra.Command {
	var f birthFlags
	cmd := &cobra.Command{
		Use:   "reading",
		Short: "Calculate both charts for one birth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reading, err := a.container.ChartsService.CalculateReading(cmd.Context(), f.request(cmd, a))
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), reading)
		},
	}
	f.register(cmd, true)
	return cmd
}
