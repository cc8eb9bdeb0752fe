package ephemeris

import (
	"fmt"
	"strings"

	"github.com/huikaichung/knowyourself/internal/domain"
)

// Body identifies a tracked celestial body or chart point.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	MeanNode
)

var bodyNames = [...]string{
	Sun:      "sun",
	Moon:     "moon",
	Mercury:  "mercury",
	Venus:    "venus",
	Mars:     "mars",
	Jupiter:  "jupiter",
	Saturn:   "saturn",
	Uranus:   "uranus",
	Neptune:  "neptune",
	Pluto:    "pluto",
	MeanNode: "mean_node",
}

// AllBodies lists every body the engine models, in chart order.
var AllBodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto, MeanNode}

// Valid reports whether the engine models the body.
func (b Body) Valid() bool {
	return b >= Sun && b <= MeanNode
}

// String returns the lower-case body key used in chart output.
func (b Body) String() string {
	if !b.Valid() {
		return fmt.Sprintf("body(%d)", int(b))
	}
	return bodyNames[b]
}

// MarshalText renders the body key.
func (b Body) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("unknown body %d", int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText parses a body key.
func (b *Body) UnmarshalText(text []byte) error {
	parsed, err := ParseBody(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBody parses a body key such as "moon" or "mean_node".
func ParseBody(name string) (Body, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range bodyNames {
		if n == key {
			return Body(i), nil
		}
	}
	return 0, domain.NewError(domain.KindEphemerisUnavailable, "body", name, "body is not modeled")
}
