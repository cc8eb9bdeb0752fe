package ziwei

import "github.com/huikaichung/knowyourself/internal/modules/ganzhi"

// Pattern is a named star configuration (格局) found around the Ming palace.
type Pattern struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	MatchedStars []string `json:"matched_stars"`
}

type patternScope int

const (
	// every star sits in the Ming palace
	inMing patternScope = iota
	// every star sits in the Ming palace or one of its 三方四正 palaces
	inSanFang
	// the two stars occupy the palaces on either side of the Ming palace
	flankingMing
)

type patternRule struct {
	name     string
	category string
	scope    patternScope
	stars    []string
}

var patternRules = []patternRule{
	{"紫府同宮格", "富貴格", inMing, []string{"紫微", "天府"}},
	{"機月同梁格", "吏人格", inSanFang, []string{"天機", "太陰", "天同", "天梁"}},
	{"殺破狼格", "開創格", inSanFang, []string{"七殺", "破軍", "貪狼"}},
	{"昌曲夾命格", "富貴格", flankingMing, []string{"文昌", "文曲"}},
	{"左右夾命格", "貴人格", flankingMing, []string{"左輔", "右弼"}},
}

// sanFangPalaces are the Ming palace and the palaces that face it.
var sanFangPalaces = []string{"命宮", "財帛宮", "事業宮", "遷移宮"}

// FindPatterns returns the patterns present in a chart, in table order.
func FindPatterns(c *Chart) []Pattern {
	ming := ganzhi.Branch(c.MingGong.Index)
	sanFang := make(map[ganzhi.Branch]bool, len(sanFangPalaces))
	for _, name := range sanFangPalaces {
		if p, ok := c.PalaceNamed(name); ok {
			sanFang[ganzhi.Branch(p.BranchIndex)] = true
		}
	}

	patterns := []Pattern{}
	for _, r := range patternRules {
		if r.matches(c, ming, sanFang) {
			patterns = append(patterns, Pattern{
				Name:         r.name,
				Category:     r.category,
				MatchedStars: append([]string(nil), r.stars...),
			})
		}
	}
	return patterns
}

func (r patternRule) matches(c *Chart, ming ganzhi.Branch, sanFang map[ganzhi.Branch]bool) bool {
	branches := make([]ganzhi.Branch, len(r.stars))
	for i, star := range r.stars {
		b, ok := c.StarBranch(star)
		if !ok {
			return false
		}
		branches[i] = b
	}

	switch r.scope {
	case inMing:
		for _, b := range branches {
			if b != ming {
				return false
			}
		}
		return true
	case inSanFang:
		for _, b := range branches {
			if !sanFang[b] {
				return false
			}
		}
		return true
	case flankingMing:
		if len(branches) != 2 {
			return false
		}
		prev, next := ming.Add(-1), ming.Add(1)
		return (branches[0] == prev && branches[1] == next) || (branches[0] == next && branches[1] == prev)
	}
	return false
}
