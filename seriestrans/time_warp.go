package seriestrans

import (
	"math/rand"

	"github.com/unixpickle/anyvec"
)

// DefaultWarpStrength is the warp strength used by
// TimeWarp when none is configured.
const DefaultWarpStrength = 0.2

// TimeWarp stretches and squeezes the time axis of each
// sample along a smooth random path, leaving the values
// themselves untouched.
type TimeWarp struct {
	// Strength scales how far the warp path may deviate
	// from the identity.
	// If it is 0, DefaultWarpStrength is used.
	Strength float64

	// Rand, if non-nil, is the source of randomness.
	// If it is nil, the global source is used.
	Rand *rand.Rand
}

// Transform warps each sample of a packed batch with its
// own random path.
func (t *TimeWarp) Transform(samples anyvec.Vector, n, seqLen,
	channels int) anyvec.Vector {
	strength := t.Strength
	if strength == 0 {
		strength = DefaultWarpStrength
	}
	table := make([]int, 0, n*seqLen*channels)
	for s := 0; s < n; s++ {
		base := s * seqLen * channels
		for _, src := range warpPath(t.Rand, seqLen, strength) {
			for ch := 0; ch < channels; ch++ {
				table = append(table, base+src*channels+ch)
			}
		}
	}
	return gather(samples, table)
}

// warpPath produces a monotonic source time step for
// every output time step.
// The path is the normalized cumulative sum of randomly
// perturbed unit increments.
func warpPath(r *rand.Rand, seqLen int, strength float64) []int {
	incs := make([]float64, seqLen)
	var total float64
	for i := range incs {
		inc := 1 + strength*normFloat(r)
		if inc < 0 {
			inc = 0
		}
		incs[i] = inc
		total += inc
	}
	res := make([]int, seqLen)
	var pos float64
	for i, inc := range incs {
		src := int(pos / total * float64(seqLen))
		if src > seqLen-1 {
			src = seqLen - 1
		}
		res[i] = src
		pos += inc
	}
	return res
}
