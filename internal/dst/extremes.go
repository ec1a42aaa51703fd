package dst

// Extremes tracks the smallest and largest 1D forward outputs seen.
// The zero value starts at Min = Max = 0, so a range that never crosses
// zero still reports 0 on that side.
type Extremes struct {
	Min int32
	Max int32
}

// Observe folds v into the range
func (e *Extremes) Observe(v int32) {
	if v > e.Max {
		e.Max = v
	}
	if v < e.Min {
		e.Min = v
	}
}

// Merge folds another accumulator into e. Used to combine per-worker
// results after a parallel pass.
func (e *Extremes) Merge(o Extremes) {
	e.Observe(o.Min)
	e.Observe(o.Max)
}

func (e *Extremes) observeVector(v *[Size]int32) {
	if e == nil {
		return
	}
	for _, s := range v {
		e.Observe(s)
	}
}
