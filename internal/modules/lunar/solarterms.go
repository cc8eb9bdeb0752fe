package lunar

import (
	"fmt"
	"math"
	"time"

	"github.com/huikaichung/knowyourself/internal/domain"
	"github.com/huikaichung/knowyourself/internal/modules/ephemeris"
	"github.com/huikaichung/knowyourself/internal/modules/timeloc"
	"github.com/huikaichung/knowyourself/pkg/formulas"
)

// chinaStandardTime is the fixed UTC+8 zone the almanac dates terms in.
var chinaStandardTime = time.FixedZone("CST", 8*3600)

// termNames are in civil-year order, starting with 小寒 at solar longitude 285.
var termNames = [24]string{
	"小寒", "大寒", "立春", "雨水", "驚蟄", "春分",
	"清明", "穀雨", "立夏", "小滿", "芒種", "夏至",
	"小暑", "大暑", "立秋", "處暑", "白露", "秋分",
	"寒露", "霜降", "立冬", "小雪", "大雪", "冬至",
}

// SolarTerm is the moment the Sun reaches a multiple of 15 degrees of apparent longitude.
type SolarTerm struct {
	Name      string           `json:"name"`
	Longitude float64          `json:"longitude"`
	Time      time.Time        `json:"time"` // China Standard Time
	Date      domain.CivilDate `json:"date"`
}

// IsJie reports whether the term opens a solar month (節) rather than falling
// in its middle (中氣).
func (t SolarTerm) IsJie() bool {
	return math.Mod(t.Longitude, 30) == 15
}

// SolarTerms returns the 24 terms of a civil year in date order.
func SolarTerms(year int) ([]SolarTerm, error) {
	if year < MinYear || year > MaxYear {
		return nil, domain.NewError(domain.KindDateOutOfRange, "year", fmt.Sprint(year),
			fmt.Sprintf("solar terms are supported for %d through %d", MinYear, MaxYear))
	}

	// 小寒 falls around January 6 and terms are about 15.22 days apart
	firstGuess := timeloc.JulianDay(time.Date(year, time.January, 6, 0, 0, 0, 0, time.UTC))

	terms := make([]SolarTerm, 0, len(termNames))
	for k, name := range termNames {
		target := formulas.Normalize360(285 + float64(k)*15)
		jde := findSunLongitude(target, firstGuess+15.2184*float64(k))

		// JDE is terrestrial time; step back to universal time before dating the term
		ut := timeloc.TimeFromJulianDay(jde)
		ut = ut.Add(-time.Duration(timeloc.DeltaT(timeloc.DecimalYear(ut)) * float64(time.Second)))
		local := ut.In(chinaStandardTime)

		terms = append(terms, SolarTerm{
			Name:      name,
			Longitude: target,
			Time:      local,
			Date:      domain.CivilDate{Year: local.Year(), Month: local.Month(), Day: local.Day()},
		})
	}
	return terms, nil
}

// TermOn returns the solar term that falls on a civil date (China Standard Time),
// if any.
func TermOn(d domain.CivilDate) (SolarTerm, bool, error) {
	if err := d.Validate(); err != nil {
		return SolarTerm{}, false, err
	}
	terms, err := SolarTerms(d.Year)
	if err != nil {
		return SolarTerm{}, false, err
	}
	for _, term := range terms {
		if term.Date == d {
			return term, true, nil
		}
	}
	return SolarTerm{}, false, nil
}

// findSunLongitude bisects for the JDE at which the Sun's apparent longitude equals
// target, within ten days of the guess.
func findSunLongitude(target, guess float64) float64 {
	lo, hi := guess-10, guess+10
	for hi-lo > 1e-6 {
		mid := (lo + hi) / 2
		if formulas.Normalize180(ephemeris.SunApparentLongitude(mid)-target) < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
