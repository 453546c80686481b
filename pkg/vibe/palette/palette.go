// Package palette holds the Palette type and the color math shared by the
// generators and the UI.
package palette

import (
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
)

// Size is the number of colors in every generated palette.
const Size = 5

// JitterRange bounds the brightness perturbation: percents are drawn from
// [-JitterRange, +JitterRange).
const JitterRange = 10.0

var hexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Palette is one generated set of colors. Colors are kept in display order.
type Palette struct {
	ID        string   `json:"id"`
	Prompt    string   `json:"prompt"`
	Colors    []string `json:"colors"`
	Timestamp int64    `json:"timestamp"` // Unix milliseconds
}

// New creates a palette with a fresh id, stamped with now.
func New(prompt string, colors []string, now time.Time) Palette {
	owned := make([]string, len(colors))
	copy(owned, colors)

	return Palette{
		ID:        NewID(),
		Prompt:    prompt,
		Colors:    owned,
		Timestamp: now.UnixMilli(),
	}
}

// CreatedAt returns the creation instant.
func (p Palette) CreatedAt() time.Time {
	return time.UnixMilli(p.Timestamp)
}

// NewID returns a short opaque random id.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// IsHex reports whether s is a #RRGGBB color.
func IsHex(s string) bool {
	return hexPattern.MatchString(s)
}

// ValidateColors checks that colors holds exactly want well-formed hex colors.
func ValidateColors(colors []string, want int) error {
	if len(colors) != want {
		return fmt.Errorf("expected %d colors, got %d", want, len(colors))
	}
	for i, c := range colors {
		if !IsHex(c) {
			return fmt.Errorf("color %d (%q) is not a #RRGGBB hex value", i, c)
		}
	}
	return nil
}

// AdjustBrightness scales every channel of hex by (1 + percent/100), rounding
// and clamping to [0,255]. The result is lowercase #rrggbb.
func AdjustBrightness(hex string, percent float64) (string, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", fmt.Errorf("parse color %q: %w", hex, err)
	}

	factor := 1 + percent/100
	r, g, b := c.RGB255()
	adjusted := colorful.Color{
		R: scaleChannel(r, factor) / 255,
		G: scaleChannel(g, factor) / 255,
		B: scaleChannel(b, factor) / 255,
	}
	return adjusted.Hex(), nil
}

func scaleChannel(v uint8, factor float64) float64 {
	return math.Min(255, math.Max(0, math.Round(float64(v)*factor)))
}

// JitterPercent draws a perturbation from [-JitterRange, +JitterRange).
func JitterPercent(rng *rand.Rand) float64 {
	return rng.Float64()*2*JitterRange - JitterRange
}

// Jitter applies an independent brightness perturbation to each seed.
func Jitter(seeds []string, rng *rand.Rand) ([]string, error) {
	out := make([]string, 0, len(seeds))
	for _, seed := range seeds {
		c, err := AdjustBrightness(seed, JitterPercent(rng))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Luminance returns the perceived brightness of hex in [0,1].
func Luminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.RGB255()
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
}

// IsLight reports whether dark text reads better than light text on hex.
func IsLight(hex string) bool {
	return Luminance(hex) > 0.5
}
