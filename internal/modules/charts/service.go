// Package charts is the calculation entry point: it parses raw birth data, runs the
// western and ziwei pipelines and memoizes their deterministic results.
package charts

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/huikaichung/knowyourself/internal/cache"
	"github.com/huikaichung/knowyourself/internal/domain"
	"github.com/huikaichung/knowyourself/internal/modules/ganzhi"
	"github.com/huikaichung/knowyourself/internal/modules/timeloc"
	"github.com/huikaichung/knowyourself/internal/modules/western"
	"github.com/huikaichung/knowyourself/internal/modules/ziwei"
)

// ReadingRequest carries the raw birth data of a combined reading.
type ReadingRequest struct {
	Date      string  `json:"date" yaml:"date"`
	Time      string  `json:"time" yaml:"time"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Timezone  string  `json:"timezone" yaml:"timezone"`
}

// Reading combines both charts for one birth.
type Reading struct {
	Western *western.Chart `json:"western"`
	Ziwei   *ziwei.Chart   `json:"ziwei"`
}

// Service provides chart calculation operations. The caches hold charts that are
// never handed out; every caller gets its own copy stamped with its own inputs.
type Service struct {
	western      *western.Service
	ziwei        *ziwei.Service
	westernCache *cache.Memo[*western.Chart]
	ziweiCache   *cache.Memo[*ziwei.Chart]
	log          zerolog.Logger
}

// NewService creates a new charts service
func NewService(
	westernService *western.Service,
	ziweiService *ziwei.Service,
	cacheSize int,
	log zerolog.Logger,
) *Service {
	return &Service{
		western:      westernService,
		ziwei:        ziweiService,
		westernCache: cache.New[*western.Chart]("western", cacheSize, log),
		ziweiCache:   cache.New[*ziwei.Chart]("ziwei", cacheSize, log),
		log:          log.With().Str("service", "charts").Logger(),
	}
}

// CalculatePreciseChart computes the western natal chart. Results are cached by
// UTC instant and coordinates; the returned chart carries the caller's birth moment.
func (s *Service) CalculatePreciseChart(date, clock string, latitude, longitude float64, timezone string) (*western.Chart, error) {
	m, err := domain.ParseBirthMoment(date, clock, timezone)
	if err != nil {
		return nil, err
	}
	loc := domain.GeoCoordinate{Latitude: latitude, Longitude: longitude}
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	inst, err := timeloc.Resolve(m)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%d|%.6f|%.6f", inst.UTC.UnixNano(), latitude, longitude)
	core, err := s.westernCache.GetOrCompute(key, func() (*western.Chart, error) {
		return s.western.CalculateAt(inst, m, loc)
	})
	if err != nil {
		s.log.Debug().Err(err).Str("date", date).Str("time", clock).Msg("Western chart rejected")
		return nil, err
	}

	chart := core.Clone()
	chart.Birth = m
	chart.Location = loc
	return chart, nil
}

// CalculateZiweiChart computes the ziwei chart from the local civil date and time.
// Results are cached by civil date and hour branch; the returned chart carries the
// caller's clock time.
func (s *Service) CalculateZiweiChart(date, clock string) (*ziwei.Chart, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	c, err := domain.ParseClock(clock)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s|%d", d, int(ganzhi.HourBranch(c.Hour)))
	core, err := s.ziweiCache.GetOrCompute(key, func() (*ziwei.Chart, error) {
		return s.ziwei.Calculate(d, c)
	})
	if err != nil {
		s.log.Debug().Err(err).Str("date", date).Str("time", clock).Msg("Ziwei chart rejected")
		return nil, err
	}
	return core.At(c)
}

// CalculateReading runs both pipelines concurrently. The first failure is returned.
func (s *Service) CalculateReading(ctx context.Context, req ReadingRequest) (*Reading, error) {
	var reading Reading

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		chart, err := s.CalculatePreciseChart(req.Date, req.Time, req.Latitude, req.Longitude, req.Timezone)
		if err != nil {
			return err
		}
		reading.Western = chart
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		chart, err := s.CalculateZiweiChart(req.Date, req.Time)
		if err != nil {
			return err
		}
		reading.Ziwei = chart
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &reading, nil
}

// CacheStats reports the western and ziwei cache counters.
func (s *Service) CacheStats() map[string]cache.Stats {
	return map[string]cache.Stats{
		"western": s.westernCache.Stats(),
		"ziwei":   s.ziweiCache.Stats(),
	}
}
