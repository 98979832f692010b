package resolution

import "iter"

// Sampled is the outcome of a single-offset computation within a sweep.
// Exactly one of Value and Err is meaningful.
type Sampled[T any] struct {
	Index  int     `json:"index"`
	Offset float64 `json:"offset_m"`
	Value  T       `json:"value"`
	Err    error   `json:"-"`
}

// OK reports whether the computation succeeded.
func (s Sampled[T]) OK() bool { return s.Err == nil }

// Offsets returns the midpoints of n equal sub-intervals of [0, maxOffset]:
// offset_i = (maxOffset/n)·(i + 0.5).
func Offsets(n int, maxOffset float64) []float64 {
	if n <= 0 {
		return nil
	}
	step := maxOffset / float64(n)
	out := make([]float64, n)
	for i := range out {
		out[i] = step * (float64(i) + 0.5)
	}
	return out
}

// Samples lazily applies fn to each offset. Samples are independent: a
// failure at one offset does not stop the sequence.
func Samples[T any](offsets []float64, fn func(offset float64) (T, error)) iter.Seq2[int, Sampled[T]] {
	return func(yield func(int, Sampled[T]) bool) {
		for i, x := range offsets {
			v, err := fn(x)
			if !yield(i, Sampled[T]{Index: i, Offset: x, Value: v, Err: err}) {
				return
			}
		}
	}
}

// MapOffsets applies fn to every offset and collects the outcomes in order.
func MapOffsets[T any](offsets []float64, fn func(offset float64) (T, error)) []Sampled[T] {
	out := make([]Sampled[T], 0, len(offsets))
	for _, s := range Samples(offsets, fn) {
		out = append(out, s)
	}
	return out
}

// Sweep evaluates p at each offset.
func Sweep(p LayerParameters, offsets []float64, opts ...Option) []Sampled[Evaluation] {
	return MapOffsets(offsets, func(x float64) (Evaluation, error) {
		return Evaluate(p, x, opts...)
	})
}
