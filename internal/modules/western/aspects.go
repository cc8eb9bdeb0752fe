package western

import (
	"math"
	"sort"

	"github.com/huikaichung/knowyourself/pkg/formulas"
)

// AspectKind is a major Ptolemaic aspect.
type AspectKind string

const (
	Conjunction AspectKind = "conjunction"
	Sextile     AspectKind = "sextile"
	Square      AspectKind = "square"
	Trine       AspectKind = "trine"
	Opposition  AspectKind = "opposition"
)

type aspectRule struct {
	kind  AspectKind
	angle float64
	orb   float64
}

var aspectRules = []aspectRule{
	{Conjunction, 0, 8},
	{Sextile, 60, 6},
	{Square, 90, 8},
	{Trine, 120, 8},
	{Opposition, 180, 8},
}

// Aspect is an angular relationship between two chart bodies.
type Aspect struct {
	A        string     `json:"a"`
	B        string     `json:"b"`
	Kind     AspectKind `json:"kind"`
	Angle    float64    `json:"angle"`
	Orb      float64    `json:"orb"`
	Applying bool       `json:"applying"`
}

// FindAspects returns every major aspect within orb between the placements,
// tightest first.
func FindAspects(bodies []BodyPlacement) []Aspect {
	var out []Aspect
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			sep := formulas.Separation(a.Longitude, b.Longitude)
			for _, rule := range aspectRules {
				orb := math.Abs(sep - rule.angle)
				if orb > rule.orb {
					continue
				}
				out = append(out, Aspect{
					A:        a.Body,
					B:        b.Body,
					Kind:     rule.kind,
					Angle:    rule.angle,
					Orb:      formulas.Round(orb, displayPrecision),
					Applying: applying(a, b, rule.angle),
				})
				break
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Orb < out[j].Orb })
	return out
}

// applying reports whether the separation is moving toward the exact angle.
func applying(a, b BodyPlacement, exact float64) bool {
	const step = 0.01 // days
	now := formulas.Separation(a.Longitude, b.Longitude)
	later := formulas.Separation(a.Longitude+a.Speed*step, b.Longitude+b.Speed*step)
	return math.Abs(later-exact) < math.Abs(now-exact)
}
