package seriestrans

import (
	"math"
	"math/rand"
	"testing"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec32"
)

const (
	testNum      = 3
	testSeqLen   = 20
	testChannels = 3
)

// testBatch encodes the position of every value into the
// value itself: sample s, time t, channel ch holds
// s*1000 + t*10 + ch.
func testBatch() anyvec.Vector {
	data := make([]float32, testNum*testSeqLen*testChannels)
	for s := 0; s < testNum; s++ {
		for t := 0; t < testSeqLen; t++ {
			for ch := 0; ch < testChannels; ch++ {
				data[(s*testSeqLen+t)*testChannels+ch] =
					float32(s*1000 + t*10 + ch)
			}
		}
	}
	return anyvec32.MakeVectorData(data)
}

func checkShape(t *testing.T, in, out anyvec.Vector) {
	t.Helper()
	if out.Len() != in.Len() {
		t.Fatalf("output has %d values, expected %d", out.Len(), in.Len())
	}
}

func checkUntouched(t *testing.T, in anyvec.Vector) {
	t.Helper()
	fresh := testBatch().Data().([]float32)
	for i, x := range in.Data().([]float32) {
		if x != fresh[i] {
			t.Fatal("transform modified its input")
		}
	}
}

func TestJitter(t *testing.T) {
	j := &Jitter{Sigma: 0.5, Rand: rand.New(rand.NewSource(7))}
	in := testBatch()
	out := j.Transform(in, testNum, testSeqLen, testChannels)
	checkShape(t, in, out)
	checkUntouched(t, in)

	inData := in.Data().([]float32)
	var changed bool
	for i, x := range out.Data().([]float32) {
		if x != inData[i] {
			changed = true
		}
		if math.Abs(float64(x-inData[i])) > 5 {
			t.Errorf("value %d moved by %f, more than 10 sigma", i, x-inData[i])
		}
	}
	if !changed {
		t.Error("jitter left every value untouched")
	}
}

func TestTimeWarp(t *testing.T) {
	w := &TimeWarp{Rand: rand.New(rand.NewSource(7))}
	in := testBatch()
	out := w.Transform(in, testNum, testSeqLen, testChannels)
	checkShape(t, in, out)
	checkUntouched(t, in)
	checkResampled(t, out)
}

func TestRandSampling(t *testing.T) {
	r := &RandSampling{KeepFraction: 0.6, Rand: rand.New(rand.NewSource(7))}
	in := testBatch()
	out := r.Transform(in, testNum, testSeqLen, testChannels)
	checkShape(t, in, out)
	checkUntouched(t, in)
	checkResampled(t, out)
}

// checkResampled verifies that a time-axis resampling
// kept every value in its own sample and channel and kept
// time monotonic.
func checkResampled(t *testing.T, out anyvec.Vector) {
	t.Helper()
	data := out.Data().([]float32)
	for s := 0; s < testNum; s++ {
		lastSource := make([]int, testChannels)
		for tm := 0; tm < testSeqLen; tm++ {
			for ch := 0; ch < testChannels; ch++ {
				x := int(data[(s*testSeqLen+tm)*testChannels+ch])
				if x/1000 != s || x%10 != ch {
					t.Fatalf("sample %d time %d channel %d got value %d from "+
						"another series", s, tm, ch, x)
				}
				source := (x % 1000) / 10
				if source < lastSource[ch] {
					t.Fatalf("sample %d channel %d goes back in time at %d",
						s, ch, tm)
				}
				lastSource[ch] = source
			}
		}
	}
}

func TestRotation(t *testing.T) {
	r := &Rotation{Rand: rand.New(rand.NewSource(7))}
	in := testBatch()
	out := r.Transform(in, testNum, testSeqLen, testChannels)
	checkShape(t, in, out)
	checkUntouched(t, in)

	// Every time step must hold a signed permutation of
	// its original channel values.
	data := out.Data().([]float32)
	for s := 0; s < testNum; s++ {
		for tm := 0; tm < testSeqLen; tm++ {
			seen := map[int]bool{}
			for ch := 0; ch < testChannels; ch++ {
				x := int(math.Abs(float64(data[(s*testSeqLen+tm)*testChannels+ch])))
				if x/1000 != s || (x%1000)/10 != tm {
					t.Fatalf("sample %d time %d got value %d from another "+
						"time step", s, tm, x)
				}
				seen[x%10] = true
			}
			if len(seen) != testChannels {
				t.Fatalf("sample %d time %d lost a channel", s, tm)
			}
		}
	}
}
