package anyseries

import (
	"errors"
	"math/rand"
	"runtime"
	"sync"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// Errors for invalid configurations and for datasets that
// cannot satisfy a balancing or augmentation request.
var (
	ErrAugmentFraction = errors.New("balanced augmentation requires a " +
		"positive augment fraction")
	ErrNoTransforms   = errors.New("augmentation requires transforms")
	ErrClassExhausted = errors.New("class has too few samples")
	ErrAugmentSources = errors.New("too few samples to draw augmentation " +
		"sources")
)

// A Batch stores a group of samples and their one-hot
// labels in a packed format, ready to be fed to a
// network.
type Batch struct {
	// Inputs holds Num packed sequences.
	Inputs *anydiff.Const

	// Outputs holds Num one-hot label rows.
	Outputs *anydiff.Const

	Num int
}

// A Generator assembles batches of sequence samples for
// one training or evaluation process.
//
// Batch never touches the epoch ordering or the installed
// statistics, and access to Rand is serialized, so
// batches may be requested from multiple goroutines as
// long as EpochEnd and Fit are not called concurrently
// with them.
type Generator struct {
	// Creator is used to allocate vectors for batches,
	// labels, and statistics.
	Creator anyvec.Creator

	// Loader resolves the Data's sample references.
	Loader Loader

	// Data is the dataset to draw samples from.
	Data *Dataset

	// BatchSize is the number of samples per batch.
	// The final batch of an epoch may be smaller when
	// augmentation is disabled.
	BatchSize int

	// SeqLen and Channels give the fixed shape of every
	// sample in the dataset.
	SeqLen   int
	Channels int

	// Stats, if non-nil, is used to normalize every
	// outgoing batch.
	Stats *Stats

	// Shuffle indicates whether EpochEnd should randomly
	// reorder the samples.
	Shuffle bool

	// Augment indicates whether batches should be padded
	// to BatchSize with transformed copies of their own
	// samples.
	Augment bool

	// AugmentFraction is the fraction of each epoch's
	// samples to synthesize as extras.
	// It must be positive when Augment and Balance are
	// both set.
	AugmentFraction float64

	// Balance indicates whether each batch should contain
	// an equal quota of samples from every class.
	Balance bool

	// Transforms are the perturbations used to synthesize
	// augmentation samples.
	// It may not be empty when Augment is set.
	Transforms []Transform

	// Rand, if non-nil, is the source of randomness for
	// shuffling, sampling, and transform selection.
	// If it is nil, the global source is used.
	// The Generator serializes its own use of Rand, but
	// the caller must not use it concurrently.
	Rand *rand.Rand

	// MaxGos specifies the maximum goroutines to use
	// simultaneously for loading samples.
	// If it is 0, GOMAXPROCS is used.
	MaxGos int

	// randLock guards Rand, since *rand.Rand sources are
	// not safe for concurrent use.
	randLock sync.Mutex

	perm []int
}

// NumBatches returns the number of batches per epoch,
// counting the samples synthesized by augmentation.
func (g *Generator) NumBatches() int {
	total := float64(g.Data.Len()) * (1 + g.AugmentFraction)
	n := int(total / float64(g.BatchSize))
	if float64(n*g.BatchSize) < total {
		n++
	}
	return n
}

// Batch produces the batch at an index within the current
// epoch.
// The index must be in [0, NumBatches()).
func (g *Generator) Batch(index int) (*Batch, error) {
	if index < 0 || index >= g.NumBatches() {
		panic("batch index out of range")
	}
	indices, err := g.batchIndices(index)
	if err != nil {
		return nil, err
	}
	samples, labels, err := g.load(indices)
	if err != nil {
		return nil, err
	}
	if g.Augment {
		samples, labels, err = g.augmented(samples, labels)
		if err != nil {
			return nil, err
		}
	}
	joined := g.Creator.Concat(samples...)
	if g.Stats != nil {
		g.Stats.Normalize(joined)
	}
	return &Batch{
		Inputs:  anydiff.NewConst(joined),
		Outputs: anydiff.NewConst(oneHot(g.Creator, labels, g.Data.NumClasses)),
		Num:     len(labels),
	}, nil
}

// EpochEnd regenerates the epoch ordering, reshuffling it
// if the Shuffle option is set.
//
// The caller is responsible for calling EpochEnd between
// epochs; Batch never reorders on its own.
func (g *Generator) EpochEnd() {
	g.perm = make([]int, g.Data.Len())
	for i := range g.perm {
		g.perm[i] = i
	}
	if g.Shuffle {
		for i := range g.perm {
			j := i + g.intn(len(g.perm)-i)
			g.perm[i], g.perm[j] = g.perm[j], g.perm[i]
		}
	}
}

// batchIndices selects the dataset indices for a batch,
// either as a window of the epoch ordering or by sampling
// a quota from every class.
func (g *Generator) batchIndices(index int) ([]int, error) {
	if !g.Balance {
		start := index * g.BatchSize
		end := start + g.BatchSize
		if start > g.Data.Len() {
			start = g.Data.Len()
		}
		if end > g.Data.Len() {
			end = g.Data.Len()
		}
		res := make([]int, 0, end-start)
		for i := start; i < end; i++ {
			if g.perm != nil {
				res = append(res, g.perm[i])
			} else {
				res = append(res, i)
			}
		}
		return res, nil
	}

	if g.Augment && g.AugmentFraction <= 0 {
		return nil, ErrAugmentFraction
	}
	quota := g.classQuota()
	var indices []int
	for _, pool := range g.Data.classIndices() {
		if len(pool) < quota {
			return nil, ErrClassExhausted
		}
		indices = append(indices, g.choose(pool, quota)...)
	}
	for i := range indices {
		j := i + g.intn(len(indices)-i)
		indices[i], indices[j] = indices[j], indices[i]
	}
	if len(indices) > g.BatchSize {
		indices = indices[:g.BatchSize]
	}
	return indices, nil
}

// classQuota computes the per-class sample count for
// balanced batches, leaving room for the augmentation
// fraction.
func (g *Generator) classQuota() int {
	factor := 1 + g.AugmentFraction
	quota := int(float64(g.BatchSize) / factor / float64(g.Data.NumClasses))
	if float64(quota)*factor*float64(g.Data.NumClasses) < float64(g.BatchSize) {
		quota++
	}
	return quota
}

// load fetches the samples and labels for a list of
// dataset indices, preserving their order.
func (g *Generator) load(indices []int) ([]anyvec.Vector, []int, error) {
	samples := make([]anyvec.Vector, len(indices))
	labels := make([]int, len(indices))

	idxChan := make(chan int, len(indices))
	for i := range indices {
		idxChan <- i
	}
	close(idxChan)

	maxGos := g.MaxGos
	if maxGos == 0 {
		maxGos = runtime.GOMAXPROCS(0)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, maxGos)
	for i := 0; i < maxGos; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idxChan {
				vec, err := g.Loader.Load(g.Data.Refs[indices[i]])
				if err != nil {
					errChan <- essentials.AddCtx("load batch", err)
					return
				}
				samples[i] = vec
				labels[i] = g.Data.Labels[indices[i]]
			}
		}()
	}

	wg.Wait()
	close(errChan)

	if err := <-errChan; err != nil {
		return nil, nil, err
	}
	return samples, labels, nil
}

// augmented pads a batch up to BatchSize with transformed
// copies of randomly chosen samples from the batch.
// The tail goes through one random transform and, with
// even odds, a second one.
func (g *Generator) augmented(samples []anyvec.Vector,
	labels []int) ([]anyvec.Vector, []int, error) {
	numAug := g.BatchSize - len(samples)
	if numAug <= 0 {
		return samples, labels, nil
	}
	if len(g.Transforms) == 0 {
		return nil, nil, ErrNoTransforms
	}
	if numAug > len(samples) {
		return nil, nil, ErrAugmentSources
	}

	positions := make([]int, len(samples))
	for i := range positions {
		positions[i] = i
	}
	positions = g.choose(positions, numAug)

	tail := make([]anyvec.Vector, numAug)
	for i, pos := range positions {
		tail[i] = samples[pos].Copy()
		labels = append(labels, labels[pos])
	}
	joined := g.Creator.Concat(tail...)

	transform := g.Transforms[g.intn(len(g.Transforms))]
	joined = transform.Transform(joined, numAug, g.SeqLen, g.Channels)
	if g.intn(2) == 1 {
		transform = g.Transforms[g.intn(len(g.Transforms))]
		joined = transform.Transform(joined, numAug, g.SeqLen, g.Channels)
	}

	return append(samples, joined), labels, nil
}

// choose samples k values from a pool without
// replacement.
// The pool itself is left untouched.
func (g *Generator) choose(pool []int, k int) []int {
	res := append([]int{}, pool...)
	for i := 0; i < k; i++ {
		j := i + g.intn(len(res)-i)
		res[i], res[j] = res[j], res[i]
	}
	return res[:k]
}

func (g *Generator) intn(n int) int {
	if g.Rand != nil {
		g.randLock.Lock()
		defer g.randLock.Unlock()
		return g.Rand.Intn(n)
	}
	return rand.Intn(n)
}

// oneHot encodes labels as rows of numClasses values.
func oneHot(c anyvec.Creator, labels []int, numClasses int) anyvec.Vector {
	data := make([]float64, len(labels)*numClasses)
	for i, label := range labels {
		data[i*numClasses+label] = 1
	}
	return c.MakeVectorData(c.MakeNumericList(data))
}
