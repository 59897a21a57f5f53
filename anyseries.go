// Package anyseries provides APIs for feeding fixed-shape
// time-series samples to a classifier during training.
// It assembles samples into mini-batches, optionally
// balancing the classes in each batch, synthesizing extra
// samples with signal transforms, and normalizing the
// output with precomputed statistics.
//
// Sequences are packed the way anynet packs tensors: each
// sample is a vector of seqLen*channels components in
// time-major order, and a batch is the concatenation of
// its samples.
package anyseries

import "github.com/unixpickle/anyvec"

// A Loader resolves a sample reference to the packed
// sequence data for that sample.
//
// Load must fail if the reference is unknown or if the
// stored data does not have the expected shape.
// Loads may happen concurrently from multiple goroutines.
type Loader interface {
	Load(ref string) (anyvec.Vector, error)
}

// A Transform perturbs a packed batch of n sequences,
// each with seqLen time steps of channels values.
//
// The result has the same shape as the input.
// A Transform must not modify its input and must not
// retain a reference to the input or output.
type Transform interface {
	Transform(samples anyvec.Vector, n, seqLen, channels int) anyvec.Vector
}
