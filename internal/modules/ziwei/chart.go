package ziwei

import (
	"slices"

	"github.com/huikaichung/knowyourself/internal/domain"
	"github.com/huikaichung/knowyourself/internal/modules/ganzhi"
	"github.com/huikaichung/knowyourself/internal/modules/lunar"
)

// StarKind separates the fourteen major stars from the auxiliaries.
type StarKind string

const (
	Major StarKind = "major"
	Minor StarKind = "minor"
)

// Star is a star resident in a palace.
type Star struct {
	Name           string   `json:"name"`
	Kind           StarKind `json:"kind"`
	Transformation string   `json:"transformation,omitempty"`
}

// Palace is one of the twelve palaces of the ring.
type Palace struct {
	Name        string `json:"name"`
	Branch      string `json:"branch"`
	BranchIndex int    `json:"branch_index"`
	Stem        string `json:"stem"`
	IsMing      bool   `json:"is_ming"`
	IsShen      bool   `json:"is_shen"`
	MajorStars  []Star `json:"major_stars"`
	MinorStars  []Star `json:"minor_stars"`
}

// PalaceRef identifies a palace by branch.
type PalaceRef struct {
	Branch string `json:"branch"`
	Index  int    `json:"index"`
	Stem   string `json:"stem"`
	Name   string `json:"name"`
}

// Chart is a Zi Wei Dou Shu chart. Palaces are indexed by branch, 子 first.
type Chart struct {
	ID              string           `json:"id"`
	BirthDate       domain.CivilDate `json:"birth_date"`
	BirthTime       domain.ClockTime `json:"birth_time"`
	Lunar           lunar.Date       `json:"lunar"`
	LunarDate       string           `json:"lunar_date"`
	LunarText       string           `json:"lunar_text"`
	PlacementMonth  int              `json:"placement_month"`
	YearPillar      string           `json:"year_pillar"`
	HourBranch      string           `json:"hour_branch"`
	FourPillars     lunar.Pillars    `json:"four_pillars"`
	SolarTerm       *lunar.SolarTerm `json:"solar_term,omitempty"` // term falling on the birth date

	MingGong        PalaceRef        `json:"ming_gong"`
	ShenGong        PalaceRef        `json:"shen_gong"`
	WuXingJu        int              `json:"wu_xing_ju"`
	Bureau          Bureau           `json:"bureau"`
	LeapMonthPolicy string           `json:"leap_month_policy"`
	Palaces         [12]Palace       `json:"palaces"`
	Patterns        []Pattern        `json:"patterns"`
}

// Clone returns a copy that shares no slices with c.
func (c *Chart) Clone() *Chart {
	out := *c
	for i, p := range c.Palaces {
		out.Palaces[i].MajorStars = slices.Clone(p.MajorStars)
		out.Palaces[i].MinorStars = slices.Clone(p.MinorStars)
	}
	out.Patterns = slices.Clone(c.Patterns)
	for i, p := range c.Patterns {
		out.Patterns[i].MatchedStars = slices.Clone(p.MatchedStars)
	}
	if c.SolarTerm != nil {
		term := *c.SolarTerm
		out.SolarTerm = &term
	}
	return &out
}

// Palace returns the palace at a branch.
func (c *Chart) Palace(b ganzhi.Branch) Palace {
	return c.Palaces[int(b.Add(0))]
}

// PalaceNamed returns the palace with the given role name, e.g. 財帛宮.
func (c *Chart) PalaceNamed(name string) (Palace, bool) {
	for _, p := range c.Palaces {
		if p.Name == name {
			return p, true
		}
	}
	return Palace{}, false
}

// StarBranch returns the branch holding a star.
func (c *Chart) StarBranch(star string) (ganzhi.Branch, bool) {
	for i, p := range c.Palaces {
		for _, s := range p.MajorStars {
			if s.Name == star {
				return ganzhi.Branch(i), true
			}
		}
		for _, s := range p.MinorStars {
			if s.Name == star {
				return ganzhi.Branch(i), true
			}
		}
	}
	return 0, false
}

// Input is everything the placement rules depend on.
type Input struct {
	Lunar lunar.Date
	// Month is the lunar month used for counting, after the leap-month policy.
	Month int
	Hour  ganzhi.Branch
}

// Build places palaces and stars. It is a pure function of its input.
func Build(in Input) Chart {
	yearStem := in.Lunar.YearPillar().Stem
	ming := MingBranch(in.Month, in.Hour)
	shen := ShenBranch(in.Month, in.Hour)
	bureau := BureauFor(yearStem, ming)
	ziwei := ZiweiBranch(bureau.Size, in.Lunar.Day)
	siHua := SiHua(yearStem)

	var c Chart
	for i := range c.Palaces {
		b := ganzhi.Branch(i)
		c.Palaces[i] = Palace{
			Name:        PalaceNames[int(ming.Add(-i))],
			Branch:      b.String(),
			BranchIndex: i,
			Stem:        PalaceStem(yearStem, b).String(),
			IsMing:      b == ming,
			IsShen:      b == shen,
			MajorStars:  []Star{},
			MinorStars:  []Star{},
		}
	}

	for _, sp := range MajorStars(ziwei) {
		p := &c.Palaces[int(sp.Branch)]
		p.MajorStars = append(p.MajorStars, Star{Name: sp.Name, Kind: Major, Transformation: siHua[sp.Name]})
	}
	for _, sp := range MinorStars(yearStem, in.Month, in.Hour) {
		p := &c.Palaces[int(sp.Branch)]
		p.MinorStars = append(p.MinorStars, Star{Name: sp.Name, Kind: Minor, Transformation: siHua[sp.Name]})
	}

	c.Lunar = in.Lunar
	c.LunarDate = in.Lunar.String()
	c.LunarText = in.Lunar.Traditional()
	c.PlacementMonth = in.Month
	c.YearPillar = in.Lunar.YearPillar().String()
	c.HourBranch = in.Hour.String()
	c.MingGong = c.ref(ming)
	c.ShenGong = c.ref(shen)
	c.Bureau = bureau
	c.WuXingJu = bureau.Size
	c.Patterns = FindPatterns(&c)
	return c
}

func (c *Chart) ref(b ganzhi.Branch) PalaceRef {
	p := c.Palaces[int(b)]
	return PalaceRef{Branch: p.Branch, Index: p.BranchIndex, Stem: p.Stem, Name: p.Name}
}
