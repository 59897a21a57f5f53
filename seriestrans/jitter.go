package seriestrans

import (
	"math/rand"

	"github.com/unixpickle/anyvec"
)

// DefaultJitterSigma is the noise standard deviation used
// by Jitter when none is configured.
const DefaultJitterSigma = 0.03

// Jitter adds Gaussian noise to every value of every
// sample.
type Jitter struct {
	// Sigma is the noise standard deviation.
	// If it is 0, DefaultJitterSigma is used.
	Sigma float64

	// Rand, if non-nil, is the source of randomness.
	// If it is nil, the global source is used.
	Rand *rand.Rand
}

// Transform adds noise to a packed batch.
func (j *Jitter) Transform(samples anyvec.Vector, n, seqLen,
	channels int) anyvec.Vector {
	c := samples.Creator()
	sigma := j.Sigma
	if sigma == 0 {
		sigma = DefaultJitterSigma
	}
	noise := c.MakeVector(samples.Len())
	anyvec.Rand(noise, anyvec.Normal, j.Rand)
	noise.Scale(c.MakeNumeric(sigma))
	noise.Add(samples)
	return noise
}
