package mines

import (
	"hash/maphash"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// RandomSource is the only randomness the core consumes.
type RandomSource interface {
	// NextIndex returns a value in [0, upperBound), or 0 when upperBound <= 1.
	NextIndex(upperBound int) int
	// NextUnit returns a value in [0, 1).
	NextUnit() float64
}

type Clock interface {
	Now() time.Time
}

type Dependencies struct {
	Random RandomSource
	Clock  Clock
	NewID  func() uuid.UUID
}

// NextID falls back to a random UUID when no generator is injected.
func (d Dependencies) NextID() uuid.UUID {
	if d.NewID == nil {
		return uuid.New()
	}
	return d.NewID()
}

func (d Dependencies) Now() time.Time {
	if d.Clock == nil {
		return time.Now()
	}
	return d.Clock.Now()
}

// index clamps whatever the source returns into [0, upperBound).
func (d Dependencies) index(upperBound int) int {
	if upperBound <= 1 {
		return 0
	}
	return min(max(0, d.Random.NextIndex(upperBound)), upperBound-1)
}

type pcgRandom struct {
	r *rand.Rand
}

func (p pcgRandom) NextIndex(upperBound int) int {
	if upperBound <= 1 {
		return 0
	}
	return p.r.IntN(upperBound)
}

func (p pcgRandom) NextUnit() float64 {
	return p.r.Float64()
}

// NewSeededRandom returns a reproducible source.
func NewSeededRandom(seed1, seed2 uint64) RandomSource {
	return pcgRandom{rand.New(rand.NewPCG(seed1, seed2))}
}

func NewRandom() RandomSource {
	return NewSeededRandom(new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64())
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

var SystemClock Clock = systemClock{}

func LiveDependencies() Dependencies {
	return Dependencies{
		Random: NewRandom(),
		Clock:  SystemClock,
		NewID:  uuid.New,
	}
}
