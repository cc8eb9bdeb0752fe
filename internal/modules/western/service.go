package western

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/huikaichung/knowyourself/internal/domain"
	"github.com/huikaichung/knowyourself/internal/modules/ephemeris"
	"github.com/huikaichung/knowyourself/internal/modules/houses"
	"github.com/huikaichung/knowyourself/internal/modules/timeloc"
	"github.com/huikaichung/knowyourself/pkg/formulas"
)

// chartNamespace scopes the deterministic chart identifiers.
var chartNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("knowyourself/western-chart"))

// Service calculates western natal charts
type Service struct {
	houseSystem houses.System
	log         zerolog.Logger
}

// NewService creates a new western chart service
func NewService(houseSystem houses.System, log zerolog.Logger) *Service {
	if houseSystem == "" {
		houseSystem = houses.Placidus
	}
	return &Service{
		houseSystem: houseSystem,
		log:         log.With().Str("service", "western").Logger(),
	}
}

// HouseSystem returns the configured house system.
func (s *Service) HouseSystem() houses.System {
	return s.houseSystem
}

// Calculate builds the natal chart for a birth moment and location.
func (s *Service) Calculate(m domain.BirthMoment, loc domain.GeoCoordinate) (*Chart, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	inst, err := timeloc.Resolve(m)
	if err != nil {
		return nil, err
	}
	return s.CalculateAt(inst, m, loc)
}

// CalculateAt builds the natal chart for an instant already resolved from m.
func (s *Service) CalculateAt(inst timeloc.Instant, m domain.BirthMoment, loc domain.GeoCoordinate) (*Chart, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	jde := inst.JDE()
	t := timeloc.Centuries(jde)
	dPsi, _ := ephemeris.Nutation(t)
	eps := ephemeris.TrueObliquity(t)

	// apparent sidereal time: mean sidereal time plus the equation of the equinoxes
	ramc := formulas.Normalize360(inst.LocalMeanSidereal(loc.Longitude) + dPsi*formulas.CosD(eps))

	h, err := houses.Calculate(houses.Input{RAMC: ramc, Latitude: loc.Latitude, Obliquity: eps}, s.houseSystem)
	if err != nil {
		s.log.Debug().Err(err).Float64("latitude", loc.Latitude).Msg("House calculation rejected")
		return nil, err
	}

	positions, err := ephemeris.ComputeAll(jde)
	if err != nil {
		return nil, fmt.Errorf("failed to compute positions: %w", err)
	}

	planets, cusps := assemble(positions, h)
	aspects := FindAspects(planets)
	chart := &Chart{
		ID:            chartID(inst, loc, h.System),
		Birth:         m,
		Location:      loc,
		UTC:           inst.UTC,
		JulianDay:     inst.JD,
		SiderealTime:  timeloc.SiderealHours(ramc),
		Obliquity:     eps,
		HouseSystem:   h.System,
		PrecisionTier: ephemeris.PrecisionTier,
		Ascendant:     NewPlacement(h.Ascendant),
		Midheaven:     NewPlacement(h.Midheaven),
		Planets:       planets,
		Houses:        cusps,
		Aspects:       aspects,
		Patterns:      FindPatterns(planets, aspects),
	}

	var ok bool
	if chart.Sun, ok = chart.Body(ephemeris.Sun.String()); !ok {
		return nil, domain.NewError(domain.KindEphemerisUnavailable, "body", "sun", "sun position missing")
	}
	if chart.Moon, ok = chart.Body(ephemeris.Moon.String()); !ok {
		return nil, domain.NewError(domain.KindEphemerisUnavailable, "body", "moon", "moon position missing")
	}

	s.log.Debug().
		Str("chart_id", chart.ID).
		Time("utc", inst.UTC).
		Str("sun", chart.Sun.Sign).
		Str("moon", chart.Moon.Sign).
		Str("ascendant", chart.Ascendant.Sign).
		Msg("Western chart calculated")

	return chart, nil
}

func chartID(inst timeloc.Instant, loc domain.GeoCoordinate, system houses.System) string {
	key := fmt.Sprintf("%d|%.6f|%.6f|%s", inst.UTC.UnixNano(), loc.Latitude, loc.Longitude, system)
	return uuid.NewSHA1(chartNamespace, []byte(key)).String()
}
