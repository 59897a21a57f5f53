// Command train fits a small feed-forward classifier on
// synthetic multi-channel waveforms, with the batches
// balanced, augmented, and normalized by anyseries.
package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anynet/anyff"
	"github.com/unixpickle/anynet/anysgd"
	"github.com/unixpickle/anyseries"
	"github.com/unixpickle/anyseries/seriestrans"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/rip"
)

const (
	SeqLen     = 50
	Channels   = 3
	NumClasses = 4
	NumSamples = 512
	BatchSize  = 32
	StepSize   = 0.001
)

func main() {
	log.Println("Setting up...")

	creator := anyvec32.CurrentCreator()
	data, loader := syntheticData(creator)

	gen := &anyseries.Generator{
		Creator:         creator,
		Loader:          loader,
		Data:            data,
		BatchSize:       BatchSize,
		SeqLen:          SeqLen,
		Channels:        Channels,
		Shuffle:         true,
		Augment:         true,
		AugmentFraction: 0.5,
		Balance:         true,
		Transforms: []anyseries.Transform{
			&seriestrans.Jitter{},
			&seriestrans.TimeWarp{},
			&seriestrans.Rotation{},
			&seriestrans.RandSampling{},
		},
	}

	log.Println("Fitting normalization statistics...")
	if _, err := gen.Fit(nil); err != nil {
		essentials.Die(err)
	}

	network := anynet.Net{
		anynet.NewFC(creator, SeqLen*Channels, 64),
		anynet.Tanh,
		anynet.NewFC(creator, 64, NumClasses),
		anynet.LogSoftmax,
	}
	trainer := &anyff.Trainer{
		Net:     network,
		Cost:    anynet.DotCost{},
		Params:  network.Parameters(),
		Average: true,
	}
	adam := &anysgd.Adam{}

	log.Println("Press ctrl+c once to stop...")
	stop := rip.NewRIP().Chan()
	for epoch := 0; ; epoch++ {
		for i := 0; i < gen.NumBatches(); i++ {
			select {
			case <-stop:
				return
			default:
			}
			batch, err := gen.Batch(i)
			if err != nil {
				essentials.Die(err)
			}
			grad := trainer.Gradient(&anyff.Batch{
				Inputs:  batch.Inputs,
				Outputs: batch.Outputs,
				Num:     batch.Num,
			})
			grad = adam.Transform(grad)
			grad.Scale(creator.MakeNumeric(-StepSize))
			grad.AddToVars()
		}
		log.Printf("epoch %d: cost=%v", epoch, trainer.LastCost)
		gen.EpochEnd()
	}
}

// syntheticData builds waveforms whose frequency depends
// on their class.
func syntheticData(creator anyvec.Creator) (*anyseries.Dataset,
	anyseries.Loader) {
	samples := map[string]anyvec.Vector{}
	data := &anyseries.Dataset{NumClasses: NumClasses, Partition: "train"}
	for i := 0; i < NumSamples; i++ {
		class := i % NumClasses
		values := make([]float64, SeqLen*Channels)
		for t := 0; t < SeqLen; t++ {
			phase := 2 * math.Pi * float64(t) / SeqLen * float64(class+1)
			for ch := 0; ch < Channels; ch++ {
				values[t*Channels+ch] = math.Sin(phase+float64(ch)) +
					0.1*rand.NormFloat64()
			}
		}
		ref := fmt.Sprintf("sample%04d", i)
		samples[ref] = creator.MakeVectorData(creator.MakeNumericList(values))
		data.Refs = append(data.Refs, ref)
		data.Labels = append(data.Labels, class)
	}
	loader := &anyseries.MemoryLoader{
		Samples:  samples,
		SeqLen:   SeqLen,
		Channels: Channels,
	}
	return data, loader
}
