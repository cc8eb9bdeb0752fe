// Package ziwei places the palaces and stars of a Zi Wei Dou Shu chart. Every rule
// is a fixed table or counting rule over the twelve branches.
package ziwei

import (
	"github.com/huikaichung/knowyourself/internal/modules/ganzhi"
)

// yin is the branch the month count starts from.
const yin = ganzhi.Branch(2)

// MingBranch counts from 寅 forward by month-1, then back by the hour branch.
func MingBranch(month int, hour ganzhi.Branch) ganzhi.Branch {
	return yin.Add(month - 1 - int(hour))
}

// ShenBranch counts from 寅 forward by month-1, then forward by the hour branch.
func ShenBranch(month int, hour ganzhi.Branch) ganzhi.Branch {
	return yin.Add(month - 1 + int(hour))
}

// PalaceStem assigns palace stems by the five-tigers rule: 寅 takes the stem of
// the first lunar month and each branch after it advances one stem, so 子 and 丑
// repeat the stems of 寅 and 卯.
func PalaceStem(yearStem ganzhi.Stem, b ganzhi.Branch) ganzhi.Stem {
	steps := int(b.Add(-int(yin)))
	return ganzhi.MonthStem(yearStem, steps+1)
}

// Bureau is the Five-Elements Bureau (五行局).
type Bureau struct {
	Size    int    `json:"size"`
	Name    string `json:"name"`
	Element string `json:"element"`
}

var bureauBySize = map[int]Bureau{
	2: {2, "水二局", "水"},
	3: {3, "木三局", "木"},
	4: {4, "金四局", "金"},
	5: {5, "土五局", "土"},
	6: {6, "火六局", "火"},
}

var bureauSizeByElement = map[ganzhi.Element]int{
	ganzhi.Water: 2,
	ganzhi.Wood:  3,
	ganzhi.Metal: 4,
	ganzhi.Earth: 5,
	ganzhi.Fire:  6,
}

// BureauFor derives the bureau from the NaYin element of the Ming palace pillar.
func BureauFor(yearStem ganzhi.Stem, ming ganzhi.Branch) Bureau {
	pillar := ganzhi.Pillar{Stem: PalaceStem(yearStem, ming), Branch: ming}
	return bureauBySize[bureauSizeByElement[pillar.NaYin().Element]]
}

// ZiweiBranch locates 紫微 from the bureau size and lunar day. Borrow the fewest
// days x that make day+x divisible by the bureau, count the quotient from 寅,
// then step back x palaces for odd x or forward x for even x.
func ZiweiBranch(bureau, day int) ganzhi.Branch {
	if bureau <= 0 {
		return yin
	}
	x := 0
	for (day+x)%bureau != 0 {
		x++
	}
	q := (day + x) / bureau
	pos := yin.Add(q - 1)
	if x%2 == 1 {
		return pos.Add(-x)
	}
	return pos.Add(x)
}

// TianfuBranch mirrors 紫微 across the 寅-申 axis.
func TianfuBranch(ziwei ganzhi.Branch) ganzhi.Branch {
	return ganzhi.Branch(0).Add(4 - int(ziwei))
}

type starOffset struct {
	name   string
	offset int
}

// 紫微 series, counted backwards from 紫微.
var ziweiSeries = []starOffset{
	{"紫微", 0}, {"天機", -1}, {"太陽", -3}, {"武曲", -4}, {"天同", -5}, {"廉貞", -8},
}

// 天府 series, counted forwards from 天府.
var tianfuSeries = []starOffset{
	{"天府", 0}, {"太陰", 1}, {"貪狼", 2}, {"巨門", 3}, {"天相", 4}, {"天梁", 5}, {"七殺", 6}, {"破軍", 10},
}

// MajorStarNames lists the fourteen major stars in placement order.
var MajorStarNames = func() []string {
	names := make([]string, 0, len(ziweiSeries)+len(tianfuSeries))
	for _, s := range ziweiSeries {
		names = append(names, s.name)
	}
	for _, s := range tianfuSeries {
		names = append(names, s.name)
	}
	return names
}()

// StarPosition is a star and the branch it resides in.
type StarPosition struct {
	Name   string
	Branch ganzhi.Branch
}

// MajorStars places the fourteen major stars from the 紫微 branch.
func MajorStars(ziwei ganzhi.Branch) []StarPosition {
	tianfu := TianfuBranch(ziwei)
	out := make([]StarPosition, 0, len(MajorStarNames))
	for _, s := range ziweiSeries {
		out = append(out, StarPosition{s.name, ziwei.Add(s.offset)})
	}
	for _, s := range tianfuSeries {
		out = append(out, StarPosition{s.name, tianfu.Add(s.offset)})
	}
	return out
}

// lucunByStem is the 祿存 branch for each year stem.
var lucunByStem = [10]ganzhi.Branch{2, 3, 5, 6, 5, 6, 8, 9, 11, 0}

// kuiYueByStem holds the 天魁 and 天鉞 branches for each year stem.
var kuiYueByStem = [10][2]ganzhi.Branch{
	{1, 7}, {0, 8}, {11, 9}, {11, 9}, {1, 7}, {0, 8}, {1, 7}, {6, 2}, {3, 5}, {3, 5},
}

// MinorStars places the auxiliary stars: 文昌 and 文曲 by hour, 左輔 and 右弼 by
// month, 祿存 with 擎羊 and 陀羅 plus 天魁 and 天鉞 by year stem, and 地空 and 地劫 by hour.
func MinorStars(yearStem ganzhi.Stem, month int, hour ganzhi.Branch) []StarPosition {
	const (
		chen = ganzhi.Branch(4)
		xu   = ganzhi.Branch(10)
		hai  = ganzhi.Branch(11)
	)
	h := int(hour)
	lucun := lucunByStem[int(yearStem)%10]
	kuiYue := kuiYueByStem[int(yearStem)%10]

	return []StarPosition{
		{"文昌", xu.Add(-h)},
		{"文曲", chen.Add(h)},
		{"左輔", chen.Add(month - 1)},
		{"右弼", xu.Add(-(month - 1))},
		{"祿存", lucun},
		{"擎羊", lucun.Add(1)},
		{"陀羅", lucun.Add(-1)},
		{"天魁", kuiYue[0]},
		{"天鉞", kuiYue[1]},
		{"地劫", hai.Add(h)},
		{"地空", hai.Add(-h)},
	}
}

// Transformation kinds of the 四化.
const (
	HuaLu   = "化祿"
	HuaQuan = "化權"
	HuaKe   = "化科"
	HuaJi   = "化忌"
)

var transformationKinds = [4]string{HuaLu, HuaQuan, HuaKe, HuaJi}

// siHuaByStem lists the stars taking 化祿, 化權, 化科 and 化忌 for each year stem.
var siHuaByStem = [10][4]string{
	{"廉貞", "破軍", "武曲", "太陽"},
	{"天機", "天梁", "紫微", "太陰"},
	{"天同", "天機", "文昌", "廉貞"},
	{"太陰", "天同", "天機", "巨門"},
	{"貪狼", "太陰", "右弼", "天機"},
	{"武曲", "貪狼", "天梁", "文曲"},
	{"太陽", "武曲", "太陰", "天同"},
	{"巨門", "太陽", "文曲", "文昌"},
	{"天梁", "紫微", "左輔", "武曲"},
	{"破軍", "巨門", "太陰", "貪狼"},
}

// SiHua returns the star each transformation attaches to, keyed by star name.
func SiHua(yearStem ganzhi.Stem) map[string]string {
	row := siHuaByStem[int(yearStem)%10]
	out := make(map[string]string, len(row))
	for i, star := range row {
		out[star] = transformationKinds[i]
	}
	return out
}

// PalaceNames run counterclockwise (descending branch) from the Ming palace.
var PalaceNames = [12]string{
	"命宮", "兄弟宮", "夫妻宮", "子女宮", "財帛宮", "疾厄宮",
	"遷移宮", "交友宮", "事業宮", "田宅宮", "福德宮", "父母宮",
}
