package evaluator

import (
	"math/rand/v2"

	"github.com/zeebo/blake3"
)

// DefaultSeed replaces an empty seed
const DefaultSeed = `Invocat`

// Random is the source of every random decision made by an Evaluator
type Random interface {
	// Choose returns a uniformly distributed number in the half open interval [0,n). It panics if n <= 0.
	Choose(n int) int
}

type stream struct {
	r *rand.Rand
}

// NewSeededRandom returns a reproducible Random. The seed string is hashed into the key of
// a ChaCha8 generator so that equal seeds always yield the same sequence of choices. The
// empty seed is replaced by DefaultSeed.
func NewSeededRandom(seed string) Random {
	if seed == `` {
		seed = DefaultSeed
	}
	return &stream{rand.New(rand.NewChaCha8(blake3.Sum256([]byte(seed))))}
}

// NewRandom returns a Random seeded from system entropy
func NewRandom() Random {
	return &stream{rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

func (s *stream) Choose(n int) int {
	return s.r.IntN(n)
}
