package western

// Pattern names, with the Chinese names used in readings.
const (
	GrandTrine = "Grand Trine"
	TSquare    = "T-Square"
	Stellium   = "Stellium"
)

var patternNamesCN = map[string]string{
	GrandTrine: "大三角",
	TSquare:    "T三角",
	Stellium:   "星群",
}

// stelliumSize is the smallest group of bodies in one sign that forms a stellium.
const stelliumSize = 3

// Pattern is a configuration of three or more bodies. Element is set for a
// single-element grand trine, Sign for a stellium and Apex for a T-square.
type Pattern struct {
	Name    string   `json:"name"`
	NameCN  string   `json:"name_cn"`
	Bodies  []string `json:"planets"`
	Element string   `json:"element,omitempty"`
	Sign    string   `json:"sign,omitempty"`
	Apex    string   `json:"apex,omitempty"`
}

type bodyPair struct{ a, b string }

func pairOf(a, b string) bodyPair {
	if b < a {
		a, b = b, a
	}
	return bodyPair{a, b}
}

// FindPatterns detects grand trines, T-squares and stelliums among the planets
// from their aspects. The lunar node takes no part.
func FindPatterns(planets []BodyPlacement, aspects []Aspect) []Pattern {
	kinds := make(map[bodyPair]AspectKind, len(aspects))
	for _, a := range aspects {
		kinds[pairOf(a.A, a.B)] = a.Kind
	}
	is := func(a, b BodyPlacement, kind AspectKind) bool {
		k, ok := kinds[pairOf(a.Body, b.Body)]
		return ok && k == kind
	}

	bodies := make([]BodyPlacement, 0, len(planets))
	for _, p := range planets {
		if p.Body != "mean_node" {
			bodies = append(bodies, p)
		}
	}

	patterns := []Pattern{}
	n := len(bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !is(bodies[i], bodies[j], Trine) {
				continue
			}
			for k := j + 1; k < n; k++ {
				if !is(bodies[i], bodies[k], Trine) || !is(bodies[j], bodies[k], Trine) {
					continue
				}
				p := newPattern(GrandTrine, bodies[i], bodies[j], bodies[k])
				if bodies[i].Element == bodies[j].Element && bodies[j].Element == bodies[k].Element {
					p.Element = bodies[i].Element
				}
				patterns = append(patterns, p)
			}
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !is(bodies[i], bodies[j], Opposition) {
				continue
			}
			for k := 0; k < n; k++ {
				if k == i || k == j || !is(bodies[i], bodies[k], Square) || !is(bodies[j], bodies[k], Square) {
					continue
				}
				p := newPattern(TSquare, bodies[i], bodies[j], bodies[k])
				p.Apex = bodies[k].Body
				patterns = append(patterns, p)
			}
		}
	}

	var bySign [12][]BodyPlacement
	for _, b := range bodies {
		bySign[b.SignIndex] = append(bySign[b.SignIndex], b)
	}
	for _, group := range bySign {
		if len(group) < stelliumSize {
			continue
		}
		p := newPattern(Stellium, group...)
		p.Sign = group[0].Sign
		patterns = append(patterns, p)
	}
	return patterns
}

func newPattern(name string, members ...BodyPlacement) Pattern {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Body
	}
	return Pattern{Name: name, NameCN: patternNamesCN[name], Bodies: names}
}
