package ziwei

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huikaichung/knowyourself/internal/domain"
	"github.com/huikaichung/knowyourself/internal/modules/ganzhi"
	"github.com/huikaichung/knowyourself/internal/modules/lunar"
)

func newTestService(policy LeapPolicy) *Service {
	return NewService(policy, zerolog.New(nil).Level(zerolog.Disabled))
}

func date(y int, m time.Month, d int) domain.CivilDate {
	return domain.CivilDate{Year: y, Month: m, Day: d}
}

func TestCalculate_TaipeiReference(t *testing.T) {
	svc := newTestService(LeapSplit)

	chart, err := svc.Calculate(date(1990, time.January, 15), domain.ClockTime{Hour: 8, Minute: 30})
	require.NoError(t, err)

	assert.Equal(t, "農曆 1989年12月19日", chart.LunarDate)
	assert.Equal(t, "己巳年臘月十九", chart.LunarText)
	assert.Equal(t, "己巳", chart.YearPillar)
	assert.Equal(t, "辰", chart.HourBranch)
	assert.Equal(t, "酉", chart.MingGong.Branch)
	assert.Equal(t, "癸", chart.MingGong.Stem)
	assert.Equal(t, "命宮", chart.MingGong.Name)
	assert.Equal(t, "巳", chart.ShenGong.Branch)
	assert.Equal(t, 4, chart.WuXingJu)
	assert.Equal(t, "金四局", chart.Bureau.Name)

	zw, ok := chart.StarBranch("紫微")
	require.True(t, ok)
	assert.Equal(t, "巳", zw.String())
	tf, ok := chart.StarBranch("天府")
	require.True(t, ok)
	assert.Equal(t, "亥", tf.String())

	ming := chart.Palace(9)
	names := []string{}
	for _, s := range ming.MajorStars {
		names = append(names, s.Name)
	}
	assert.ElementsMatch(t, []string{"廉貞", "破軍"}, names)

	wuqu := chart.Palace(1)
	for _, s := range wuqu.MajorStars {
		if s.Name == "武曲" {
			assert.Equal(t, HuaLu, s.Transformation)
		}
	}

	parents, ok := chart.PalaceNamed("父母宮")
	require.True(t, ok)
	assert.Equal(t, "戌", parents.Branch)
	siblings, ok := chart.PalaceNamed("兄弟宮")
	require.True(t, ok)
	assert.Equal(t, "申", siblings.Branch)

	// 七殺 巳, 貪狼 丑 and 破軍 酉 all face the 酉 Ming palace
	require.Len(t, chart.Patterns, 1)
	assert.Equal(t, "殺破狼格", chart.Patterns[0].Name)

	assert.Equal(t, "己巳", chart.FourPillars.Year.String())
	assert.Equal(t, "丁丑", chart.FourPillars.Month.String())
	assert.Equal(t, "庚辰", chart.FourPillars.Day.String())
	assert.Equal(t, "庚辰", chart.FourPillars.Hour.String())
	assert.Nil(t, chart.SolarTerm)
}

func TestCalculate_SolarTermDay(t *testing.T) {
	svc := newTestService(LeapSplit)

	before, err := svc.Calculate(date(2024, time.February, 4), domain.ClockTime{Hour: 10})
	require.NoError(t, err)
	require.NotNil(t, before.SolarTerm)
	assert.Equal(t, "立春", before.SolarTerm.Name)
	assert.Equal(t, "癸卯", before.FourPillars.Year.String())

	after, err := svc.Calculate(date(2024, time.February, 4), domain.ClockTime{Hour: 18})
	require.NoError(t, err)
	assert.Equal(t, "甲辰", after.FourPillars.Year.String())
	assert.Equal(t, "丙寅", after.FourPillars.Month.String())
}

func TestChart_CloneSharesNothing(t *testing.T) {
	chart, err := newTestService(LeapSplit).Calculate(date(2024, time.February, 4), domain.ClockTime{Hour: 10})
	require.NoError(t, err)

	clone := chart.Clone()
	assert.Equal(t, chart, clone)

	clone.Palaces[9].MajorStars = append(clone.Palaces[9].MajorStars[:0], Star{Name: "x"})
	clone.SolarTerm.Name = "x"
	if len(clone.Patterns) > 0 {
		clone.Patterns[0].MatchedStars[0] = "x"
		assert.NotEqual(t, "x", chart.Patterns[0].MatchedStars[0])
	}
	assert.NotEqual(t, chart.Palaces[9].MajorStars, clone.Palaces[9].MajorStars)
	assert.Equal(t, "立春", chart.SolarTerm.Name)
}

func TestCalculate_ExactlyOneMingPalace(t *testing.T) {
	svc := newTestService(LeapSplit)
	start := date(1995, time.January, 1).DayNumber()

	for i := 0; i < 400; i += 7 {
		d := domain.CivilDateFromDayNumber(start + i)
		for hour := 0; hour < 24; hour += 5 {
			chart, err := svc.Calculate(d, domain.ClockTime{Hour: hour})
			require.NoError(t, err)

			ming, shen, majors := 0, 0, 0
			for _, p := range chart.Palaces {
				if p.IsMing {
					ming++
				}
				if p.IsShen {
					shen++
				}
				majors += len(p.MajorStars)
			}
			assert.Equal(t, 1, ming)
			assert.Equal(t, 1, shen)
			assert.Equal(t, 14, majors)
			assert.Contains(t, []int{2, 3, 4, 5, 6}, chart.WuXingJu)
		}
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	svc := newTestService(LeapSplit)
	a, err := svc.Calculate(date(2000, time.February, 29), domain.ClockTime{Hour: 0, Minute: 15})
	require.NoError(t, err)
	b, err := svc.Calculate(date(2000, time.February, 29), domain.ClockTime{Hour: 0, Minute: 15})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, "子", a.HourBranch)
}

func TestCalculate_LateZiHourKeepsCivilDay(t *testing.T) {
	svc := newTestService(LeapSplit)
	chart, err := svc.Calculate(date(1990, time.January, 15), domain.ClockTime{Hour: 23, Minute: 30})
	require.NoError(t, err)

	assert.Equal(t, "子", chart.HourBranch)
	assert.Equal(t, 19, chart.Lunar.Day)
}

func TestCalculate_LeapMonthPolicy(t *testing.T) {
	// 2023-04-10 is the 20th day of the leap second month
	d := date(2023, time.April, 10)

	split, err := newTestService(LeapSplit).Calculate(d, domain.ClockTime{Hour: 12})
	require.NoError(t, err)
	assert.True(t, split.Lunar.Leap)
	assert.Equal(t, 3, split.PlacementMonth)

	same, err := newTestService(LeapSame).Calculate(d, domain.ClockTime{Hour: 12})
	require.NoError(t, err)
	assert.Equal(t, 2, same.PlacementMonth)

	assert.NotEqual(t, split.MingGong.Branch, same.MingGong.Branch)
	assert.NotEqual(t, split.ID, same.ID)

	early, err := newTestService(LeapSplit).Calculate(date(2023, time.March, 25), domain.ClockTime{Hour: 12})
	require.NoError(t, err)
	assert.Equal(t, 2, early.PlacementMonth)
}

func TestPlacementMonth_LeapTwelfthWraps(t *testing.T) {
	assert.Equal(t, 1, LeapSplit.PlacementMonth(lunar.Date{Year: 2033, Month: 12, Day: 20, Leap: true}))
}

func TestCalculate_Errors(t *testing.T) {
	svc := newTestService(LeapSplit)

	_, err := svc.Calculate(date(1900, time.February, 29), domain.ClockTime{Hour: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = svc.Calculate(date(1850, time.May, 1), domain.ClockTime{Hour: 1})
	assert.ErrorIs(t, err, domain.ErrDateOutOfRange)

	_, err = svc.Calculate(date(1990, time.January, 15), domain.ClockTime{Hour: 24})
	assert.ErrorIs(t, err, domain.ErrInvalidTime)
}

func TestBuild_PureFunction(t *testing.T) {
	in := Input{Lunar: lunar.Date{Year: 1989, Month: 12, Day: 19}, Month: 12, Hour: ganzhi.Branch(4)}
	assert.Equal(t, Build(in), Build(in))
}

func TestChart_JSONShape(t *testing.T) {
	chart, err := newTestService(LeapSplit).Calculate(date(1990, time.January, 15), domain.ClockTime{Hour: 8, Minute: 30})
	require.NoError(t, err)

	raw, err := json.Marshal(chart)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "農曆 1989年12月19日", decoded["lunar_date"])
	assert.Equal(t, float64(4), decoded["wu_xing_ju"])
	ming, ok := decoded["ming_gong"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "酉", ming["branch"])
	pillars, ok := decoded["four_pillars"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "庚辰", pillars["day"])
	assert.NotContains(t, decoded, "solar_term")
	assert.Len(t, decoded["patterns"], 1)
}

func TestParseLeapPolicy(t *testing.T) {
	p, err := ParseLeapPolicy("same")
	require.NoError(t, err)
	assert.Equal(t, LeapSame, p)

	_, err = ParseLeapPolicy("merge")
	assert.Error(t, err)
}

func TestChart_At(t *testing.T) {
	svc := newTestService(LeapSplit)

	// 立春 2024 falls at about 16:27 CST, inside the 申 hour
	early, err := svc.Calculate(date(2024, time.February, 4), domain.ClockTime{Hour: 15, Minute: 10})
	require.NoError(t, err)
	require.Equal(t, "癸卯", early.FourPillars.Year.String())

	late, err := early.At(domain.ClockTime{Hour: 16, Minute: 50})
	require.NoError(t, err)
	assert.Equal(t, domain.ClockTime{Hour: 16, Minute: 50}, late.BirthTime)
	assert.Equal(t, "甲辰", late.FourPillars.Year.String())
	assert.Equal(t, "丙寅", late.FourPillars.Month.String())
	assert.Equal(t, domain.ClockTime{Hour: 15, Minute: 10}, early.BirthTime)
	assert.Equal(t, "癸卯", early.FourPillars.Year.String())

	direct, err := svc.Calculate(date(2024, time.February, 4), domain.ClockTime{Hour: 16, Minute: 50})
	require.NoError(t, err)
	assert.Equal(t, direct, late)

	_, err = early.At(domain.ClockTime{Hour: 18})
	assert.Error(t, err)
}
