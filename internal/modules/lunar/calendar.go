// Package lunar converts between the Gregorian calendar and the traditional
// Chinese lunisolar calendar for lunar years 1900 through 2100, and locates the
// twenty-four solar terms.
package lunar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/huikaichung/knowyourself/internal/domain"
	"github.com/huikaichung/knowyourself/internal/modules/ganzhi"
)

const (
	MinYear = 1900
	MaxYear = 2100
)

var (
	// MinDate is the civil date of lunar 1900-01-01.
	MinDate = domain.CivilDate{Year: 1900, Month: time.January, Day: 31}
	// MaxDate is the last civil date accepted for conversion.
	MaxDate = domain.CivilDate{Year: 2100, Month: time.December, Day: 31}
)

// yearStarts[i] is the Julian Day Number of the first day of lunar year MinYear+i;
// the extra final entry closes the last year.
var yearStarts = buildYearStarts()

func buildYearStarts() [MaxYear - MinYear + 2]int {
	var starts [MaxYear - MinYear + 2]int
	starts[0] = MinDate.DayNumber()
	for y := MinYear; y <= MaxYear; y++ {
		starts[y-MinYear+1] = starts[y-MinYear] + YearDays(y)
	}
	return starts
}

// Date is a lunar calendar date.
type Date struct {
	Year  int  `json:"year"`
	Month int  `json:"month"`
	Day   int  `json:"day"`
	Leap  bool `json:"leap"`
}

// LeapMonth returns the leap month of a lunar year, 0 when there is none.
func LeapMonth(year int) int {
	if year < MinYear || year > MaxYear {
		return 0
	}
	return int(yearInfo[year-MinYear] & 0xf)
}

// MonthDays returns the length of a regular (leap false) or leap month, or 0 when
// the month does not exist.
func MonthDays(year, month int, leap bool) int {
	if year < MinYear || year > MaxYear || month < 1 || month > 12 {
		return 0
	}
	info := yearInfo[year-MinYear]
	if leap {
		if LeapMonth(year) != month {
			return 0
		}
		if info&0x10000 != 0 {
			return 30
		}
		return 29
	}
	if info&(0x10000>>uint(month)) != 0 {
		return 30
	}
	return 29
}

// YearDays returns the number of days in a lunar year.
func YearDays(year int) int {
	total := 0
	for m := 1; m <= 12; m++ {
		total += MonthDays(year, m, false)
	}
	if leap := LeapMonth(year); leap != 0 {
		total += MonthDays(year, leap, true)
	}
	return total
}

// FromSolar converts a civil date to its lunar date.
func FromSolar(d domain.CivilDate) (Date, error) {
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	if d.Before(MinDate) || MaxDate.Before(d) {
		return Date{}, domain.NewError(domain.KindDateOutOfRange, "date", d.String(),
			fmt.Sprintf("lunar conversion supports %s through %s", MinDate, MaxDate))
	}

	jdn := d.DayNumber()
	idx := 0
	for idx+1 < len(yearStarts) && yearStarts[idx+1] <= jdn {
		idx++
	}
	year := MinYear + idx
	offset := jdn - yearStarts[idx]

	leap := LeapMonth(year)
	for m := 1; m <= 12; m++ {
		n := MonthDays(year, m, false)
		if offset < n {
			return Date{Year: year, Month: m, Day: offset + 1}, nil
		}
		offset -= n
		if m == leap {
			n = MonthDays(year, m, true)
			if offset < n {
				return Date{Year: year, Month: m, Day: offset + 1, Leap: true}, nil
			}
			offset -= n
		}
	}
	return Date{}, domain.NewError(domain.KindInternal, "date", d.String(), "lunar table exhausted")
}

// ToSolar converts a lunar date back to the civil calendar.
func ToSolar(ld Date) (domain.CivilDate, error) {
	if err := ld.Validate(); err != nil {
		return domain.CivilDate{}, err
	}

	jdn := yearStarts[ld.Year-MinYear]
	leap := LeapMonth(ld.Year)
	for m := 1; m < ld.Month; m++ {
		jdn += MonthDays(ld.Year, m, false)
		if m == leap {
			jdn += MonthDays(ld.Year, m, true)
		}
	}
	if ld.Leap {
		jdn += MonthDays(ld.Year, ld.Month, false)
	}
	jdn += ld.Day - 1

	d := domain.CivilDateFromDayNumber(jdn)
	if MaxDate.Before(d) {
		return domain.CivilDate{}, domain.NewError(domain.KindDateOutOfRange, "lunar_date", ld.String(),
			fmt.Sprintf("civil date %s is past %s", d, MaxDate))
	}
	return d, nil
}

// Validate checks the lunar date exists in the table.
func (ld Date) Validate() error {
	if ld.Year < MinYear || ld.Year > MaxYear {
		return domain.NewError(domain.KindDateOutOfRange, "lunar_date", ld.String(),
			fmt.Sprintf("lunar years %d through %d are supported", MinYear, MaxYear))
	}
	if ld.Month < 1 || ld.Month > 12 {
		return domain.NewError(domain.KindInvalidDate, "lunar_date", ld.String(), "month must be within [1, 12]")
	}
	if ld.Leap && LeapMonth(ld.Year) != ld.Month {
		return domain.NewError(domain.KindInvalidDate, "lunar_date", ld.String(), "year has no such leap month")
	}
	if ld.Day < 1 || ld.Day > MonthDays(ld.Year, ld.Month, ld.Leap) {
		return domain.NewError(domain.KindInvalidDate, "lunar_date", ld.String(), "day exceeds month length")
	}
	return nil
}

// YearPillar returns the stem-branch name of the lunar year.
func (ld Date) YearPillar() ganzhi.Pillar {
	return ganzhi.YearPillar(ld.Year)
}

// Before reports whether ld precedes other in lunar order.
func (ld Date) Before(other Date) bool {
	if ld.Year != other.Year {
		return ld.Year < other.Year
	}
	if ld.Month != other.Month {
		return ld.Month < other.Month
	}
	if ld.Leap != other.Leap {
		return !ld.Leap
	}
	return ld.Day < other.Day
}

// String renders the date as 農曆 1989年12月19日, marking leap months with 閏.
func (ld Date) String() string {
	var b strings.Builder
	b.WriteString("農曆 ")
	b.WriteString(strconv.Itoa(ld.Year))
	b.WriteString("年")
	if ld.Leap {
		b.WriteString("閏")
	}
	b.WriteString(strconv.Itoa(ld.Month))
	b.WriteString("月")
	b.WriteString(strconv.Itoa(ld.Day))
	b.WriteString("日")
	return b.String()
}

var monthNames = [13]string{"", "正", "二", "三", "四", "五", "六", "七", "八", "九", "十", "冬", "臘"}

var digitNames = [11]string{"", "一", "二", "三", "四", "五", "六", "七", "八", "九", "十"}

// Traditional renders the date the way almanacs print it, e.g. 己巳年臘月十九.
func (ld Date) Traditional() string {
	month := monthNames[ld.Month] + "月"
	if ld.Leap {
		month = "閏" + month
	}
	return ld.YearPillar().String() + "年" + month + dayName(ld.Day)
}

func dayName(day int) string {
	switch {
	case day <= 10:
		return "初" + digitNames[day]
	case day < 20:
		return "十" + digitNames[day-10]
	case day == 20:
		return "二十"
	case day < 30:
		return "廿" + digitNames[day-20]
	default:
		return "三十"
	}
}
