package ziwei

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/huikaichung/knowyourself/internal/domain"
	"github.com/huikaichung/knowyourself/internal/modules/ganzhi"
	"github.com/huikaichung/knowyourself/internal/modules/lunar"
)

// LeapPolicy decides which month a leap-month birth is counted in.
type LeapPolicy string

const (
	// LeapSplit counts days 1-15 of a leap month as the month it repeats and
	// days 16 onward as the following month.
	LeapSplit LeapPolicy = "split"
	// LeapSame always counts a leap month as the month it repeats.
	LeapSame LeapPolicy = "same"
)

// ParseLeapPolicy accepts "split" or "same".
func ParseLeapPolicy(s string) (LeapPolicy, error) {
	switch LeapPolicy(s) {
	case LeapSplit, LeapSame:
		return LeapPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown leap month policy %q", s)
	}
}

// PlacementMonth applies the policy to a lunar date.
func (p LeapPolicy) PlacementMonth(ld lunar.Date) int {
	if ld.Leap && p == LeapSplit && ld.Day >= 16 {
		return ld.Month%12 + 1
	}
	return ld.Month
}

var chartNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("knowyourself/ziwei-chart"))

// Service calculates Zi Wei Dou Shu charts
type Service struct {
	policy LeapPolicy
	log    zerolog.Logger
}

// NewService creates a new ziwei chart service
func NewService(policy LeapPolicy, log zerolog.Logger) *Service {
	if policy == "" {
		policy = LeapSplit
	}
	return &Service{
		policy: policy,
		log:    log.With().Str("service", "ziwei").Logger(),
	}
}

// Calculate builds the chart for a local civil birth date and clock time. The
// local date is converted as given; no time zone shift is applied.
func (s *Service) Calculate(date domain.CivilDate, clock domain.ClockTime) (*Chart, error) {
	if err := clock.Validate(); err != nil {
		return nil, err
	}

	ld, err := lunar.FromSolar(date)
	if err != nil {
		return nil, err
	}

	in := Input{
		Lunar: ld,
		Month: s.policy.PlacementMonth(ld),
		Hour:  ganzhi.HourBranch(clock.Hour),
	}
	pillars, err := lunar.FourPillars(date, clock)
	if err != nil {
		return nil, fmt.Errorf("failed to derive pillars: %w", err)
	}
	term, onTerm, err := lunar.TermOn(date)
	if err != nil {
		return nil, fmt.Errorf("failed to look up solar term: %w", err)
	}

	chart := Build(in)
	chart.FourPillars = pillars
	if onTerm {
		chart.SolarTerm = &term
	}
	chart.BirthDate = date
	chart.BirthTime = clock
	chart.LeapMonthPolicy = string(s.policy)
	chart.ID = uuid.NewSHA1(chartNamespace, []byte(fmt.Sprintf("%s|%d|%s", date, int(in.Hour), s.policy))).String()

	s.log.Debug().
		Str("chart_id", chart.ID).
		Str("lunar_date", chart.LunarDate).
		Str("ming_gong", chart.MingGong.Branch).
		Int("wu_xing_ju", chart.WuXingJu).
		Msg("Ziwei chart calculated")

	return &chart, nil
}

// At returns a copy of c for another clock time in the same double hour. The
// pillars are derived again when a 節 falls on the birth date, since the solar
// month can turn inside the hour.
func (c *Chart) At(clock domain.ClockTime) (*Chart, error) {
	if err := clock.Validate(); err != nil {
		return nil, err
	}
	if got, want := ganzhi.HourBranch(clock.Hour).String(), c.HourBranch; got != want {
		return nil, fmt.Errorf("clock %s is in hour %s, chart is for hour %s", clock, got, want)
	}

	out := c.Clone()
	out.BirthTime = clock
	if c.SolarTerm != nil && c.SolarTerm.IsJie() {
		pillars, err := lunar.FourPillars(c.BirthDate, clock)
		if err != nil {
			return nil, fmt.Errorf("failed to derive pillars: %w", err)
		}
		out.FourPillars = pillars
	}
	return out, nil
}
