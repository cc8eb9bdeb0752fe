// Package ganzhi implements the sexagenary cycle of Heavenly Stems and Earthly
// Branches, the pillar derivations built on it and the NaYin element table.
package ganzhi

import "fmt"

// Element is one of the five phases.
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

var elementNames = [5]string{"木", "火", "土", "金", "水"}

func (e Element) String() string { return elementNames[e] }

// Stem is a Heavenly Stem, 0 = 甲.
type Stem int

var stemNames = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

func (s Stem) String() string { return stemNames[mod(int(s), 10)] }

// Element returns the phase of the stem: 甲乙 wood through 壬癸 water.
func (s Stem) Element() Element { return Element(mod(int(s), 10) / 2) }

// Yang reports whether the stem is yang (甲丙戊庚壬).
func (s Stem) Yang() bool { return mod(int(s), 10)%2 == 0 }

// Branch is an Earthly Branch, 0 = 子.
type Branch int

var branchNames = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

var branchAnimals = [12]string{"鼠", "牛", "虎", "兔", "龍", "蛇", "馬", "羊", "猴", "雞", "狗", "豬"}

func (b Branch) String() string { return branchNames[mod(int(b), 12)] }

// Animal returns the zodiac animal of the branch.
func (b Branch) Animal() string { return branchAnimals[mod(int(b), 12)] }

// Add steps around the ring of branches, negative n counting backwards.
func (b Branch) Add(n int) Branch { return Branch(mod(int(b)+n, 12)) }

// ParseBranch resolves a branch character.
func ParseBranch(s string) (Branch, error) {
	for i, n := range branchNames {
		if n == s {
			return Branch(i), nil
		}
	}
	return 0, fmt.Errorf("unknown earthly branch %q", s)
}

// Pillar is a stem-branch pair. Only pairs of equal parity exist in the cycle.
type Pillar struct {
	Stem   Stem
	Branch Branch
}

// PillarAt returns the pillar at a position of the sixty-cycle, 0 = 甲子.
func PillarAt(index int) Pillar {
	i := mod(index, 60)
	return Pillar{Stem: Stem(i % 10), Branch: Branch(i % 12)}
}

// Index returns the position of the pillar in the sixty-cycle.
func (p Pillar) Index() int {
	return mod(6*int(p.Stem)-5*int(p.Branch), 60)
}

func (p Pillar) String() string { return p.Stem.String() + p.Branch.String() }

// MarshalText renders the two-character pillar, e.g. 己巳.
func (p Pillar) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// YearPillar returns the pillar of a (lunar) year; 4 AD was 甲子.
func YearPillar(year int) Pillar {
	return PillarAt(year - 4)
}

// MonthStem returns the stem of the lunar month by the five-tigers rule: the
// first month (寅) of a 甲 or 己 year is 丙寅, and each month advances one stem.
func MonthStem(yearStem Stem, month int) Stem {
	first := mod(int(yearStem), 5)*2 + 2
	return Stem(mod(first+month-1, 10))
}

// MonthPillar returns the pillar of a lunar month (1 = 寅 month).
func MonthPillar(yearStem Stem, month int) Pillar {
	return Pillar{Stem: MonthStem(yearStem, month), Branch: Branch(mod(month+1, 12))}
}

// DayPillar returns the pillar of a civil day given its Julian Day Number.
func DayPillar(jdn int) Pillar {
	return PillarAt(jdn + 49)
}

// HourBranch maps a clock hour to its two-hour branch. 23:00 starts 子.
func HourBranch(hour int) Branch {
	return Branch(mod((hour+1)/2, 12))
}

// HourPillar returns the pillar of a double hour by the five-rats rule.
func HourPillar(dayStem Stem, hour Branch) Pillar {
	first := mod(int(dayStem), 5) * 2
	return Pillar{Stem: Stem(mod(first+int(hour), 10)), Branch: hour}
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
