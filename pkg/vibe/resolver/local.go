package resolver

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/ImGajeed76/vibepalette/pkg/vibe/palette"
	"github.com/ImGajeed76/vibepalette/pkg/vibe/theme"
)

// LocalGenerator builds palettes from the theme table. It never needs the
// network; Delay only keeps the pacing of the service path.
type LocalGenerator struct {
	Delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewLocalGenerator creates a generator. A nil rng is seeded from the clock.
func NewLocalGenerator(delay time.Duration, rng *rand.Rand) *LocalGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &LocalGenerator{Delay: delay, rng: rng}
}

// Colors matches prompt against the theme table and jitters the seeds.
func (g *LocalGenerator) Colors(ctx context.Context, prompt string) ([]string, error) {
	if g.Delay > 0 {
		timer := time.NewTimer(g.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	t := theme.Match(prompt)

	g.mu.Lock()
	defer g.mu.Unlock()
	return palette.Jitter(t.Seeds, g.rng)
}
