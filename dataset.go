package anyseries

import "fmt"

// A Dataset describes a collection of labeled samples.
// The actual sequence data lives behind a Loader; the
// Dataset only stores references to it.
type Dataset struct {
	// Refs are opaque sample references, resolvable by a
	// Loader.
	Refs []string

	// Labels has one class label per reference.
	// Every label must be in [0, NumClasses).
	Labels []int

	// NumClasses is the number of distinct classes.
	NumClasses int

	// Partition tags the role of this dataset, e.g.
	// "train" or "validation".
	Partition string
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Refs)
}

// Check verifies the Dataset's invariants: one label per
// reference, and every label a valid class.
func (d *Dataset) Check() error {
	if len(d.Labels) != len(d.Refs) {
		return fmt.Errorf("check dataset: %d refs but %d labels", len(d.Refs),
			len(d.Labels))
	}
	for i, label := range d.Labels {
		if label < 0 || label >= d.NumClasses {
			return fmt.Errorf("check dataset: sample %d has invalid label %d", i,
				label)
		}
	}
	return nil
}

// classIndices groups the dataset indices by label.
func (d *Dataset) classIndices() [][]int {
	res := make([][]int, d.NumClasses)
	for i, label := range d.Labels {
		res[label] = append(res[label], i)
	}
	return res
}
