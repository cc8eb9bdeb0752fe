package lunar

import (
	"time"

	"github.com/huikaichung/knowyourself/internal/domain"
	"github.com/huikaichung/knowyourself/internal/modules/ganzhi"
)

// Pillars are the year, month, day and hour pillars (八字) of a birth. Year and
// month follow the solar terms: the year turns at 立春 and each month at its 節.
type Pillars struct {
	Year  ganzhi.Pillar `json:"year"`
	Month ganzhi.Pillar `json:"month"`
	Day   ganzhi.Pillar `json:"day"`
	Hour  ganzhi.Pillar `json:"hour"`
}

// FourPillars derives the pillars of a local civil birth. Term boundaries are
// compared on the China Standard Time wall clock, the clock the almanac uses.
func FourPillars(d domain.CivilDate, c domain.ClockTime) (Pillars, error) {
	if err := d.Validate(); err != nil {
		return Pillars{}, err
	}
	if err := c.Validate(); err != nil {
		return Pillars{}, err
	}
	terms, err := SolarTerms(d.Year)
	if err != nil {
		return Pillars{}, err
	}

	birth := time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, c.Second, 0, chinaStandardTime)

	// before 小寒 the month opened at the previous year's 大雪 (子 month)
	month := 11
	for k := 0; k < len(terms); k += 2 {
		if terms[k].Time.After(birth) {
			break
		}
		month = k / 2
		if month == 0 {
			month = 12
		}
	}

	year := d.Year
	if birth.Before(terms[2].Time) { // 立春
		year--
	}

	yp := ganzhi.YearPillar(year)
	dp := ganzhi.DayPillar(d.DayNumber())
	return Pillars{
		Year:  yp,
		Month: ganzhi.MonthPillar(yp.Stem, month),
		Day:   dp,
		Hour:  ganzhi.HourPillar(dp.Stem, ganzhi.HourBranch(c.Hour)),
	}, nil
}
