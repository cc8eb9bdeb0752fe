package ziwei

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huikaichung/knowyourself/internal/modules/ganzhi"
)

// chartWith lays out palace names from ming and drops each star on its branch.
func chartWith(ming ganzhi.Branch, stars map[string]int) *Chart {
	var c Chart
	for i := range c.Palaces {
		c.Palaces[i] = Palace{
			Name:        PalaceNames[int(ming.Add(-i))],
			Branch:      ganzhi.Branch(i).String(),
			BranchIndex: i,
			IsMing:      ganzhi.Branch(i) == ming,
		}
	}
	for name, b := range stars {
		c.Palaces[b].MajorStars = append(c.Palaces[b].MajorStars, Star{Name: name, Kind: Major})
	}
	c.MingGong = c.ref(ming)
	return &c
}

func patternNames(ps []Pattern) []string {
	names := make([]string, 0, len(ps))
	for _, p := range ps {
		names = append(names, p.Name)
	}
	return names
}

func TestFindPatterns(t *testing.T) {
	yin := ganzhi.Branch(2)
	si := ganzhi.Branch(5)

	tests := []struct {
		name  string
		ming  ganzhi.Branch
		stars map[string]int
		want  []string
	}{
		{"紫微天府 in the Ming palace", yin, map[string]int{"紫微": 2, "天府": 2}, []string{"紫府同宮格"}},
		{"紫微天府 outside the Ming palace", yin, map[string]int{"紫微": 8, "天府": 8}, []string{}},
		{"機月同梁 across the facing palaces", yin, map[string]int{"天機": 2, "太陰": 2, "天同": 6, "天梁": 10}, []string{"機月同梁格"}},
		{"機月同梁 broken by one star", yin, map[string]int{"天機": 2, "太陰": 2, "天同": 6, "天梁": 3}, []string{}},
		{"殺破狼", yin, map[string]int{"七殺": 2, "破軍": 10, "貪狼": 6}, []string{"殺破狼格"}},
		{"昌曲 flanking", si, map[string]int{"文昌": 4, "文曲": 6}, []string{"昌曲夾命格"}},
		{"昌曲 on one side", si, map[string]int{"文昌": 4, "文曲": 4}, []string{}},
		{"左右 flanking with 殺破狼", si, map[string]int{"左輔": 6, "右弼": 4, "七殺": 5, "破軍": 1, "貪狼": 9}, []string{"殺破狼格", "左右夾命格"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindPatterns(chartWith(tt.ming, tt.stars))
			assert.Equal(t, tt.want, patternNames(got))
		})
	}
}

func TestFindPatterns_MatchedStars(t *testing.T) {
	got := FindPatterns(chartWith(2, map[string]int{"紫微": 2, "天府": 2}))
	if assert.Len(t, got, 1) {
		assert.Equal(t, "富貴格", got[0].Category)
		assert.Equal(t, []string{"紫微", "天府"}, got[0].MatchedStars)
	}
}
