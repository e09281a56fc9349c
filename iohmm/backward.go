package iohmm

// BetaReverseIterator produces backward variables in reverse time order,
// beta_T, beta_{T-1}, ..., one time step per Next call (spec.md §4.6.2).
// Unlike AlphaIterator it cannot run over an unbounded stream: the
// terminal condition beta_T[i] = 1 requires knowing where the sequence
// ends, so its source must already be reversed and finite.
type BetaReverseIterator[I comparable, O any] struct {
	model    *MealyIOHMM[I, O]
	source   Source[I, O]
	prevBeta []float64
	nextObs  Observation[I, O]
	started  bool
	cur      []float64
	err      error
}

// BetasReverse returns a lazily-produced backward-variable stream over
// reversedSource, which must yield observations in time-decreasing order
// ((x_T,y_T) first, ..., (x_1,y_1) last).
func (m *MealyIOHMM[I, O]) BetasReverse(reversedSource Source[I, O]) *BetaReverseIterator[I, O] {
	return &BetaReverseIterator[I, O]{model: m, source: reversedSource}
}

// Next advances the iterator. It returns false when the source is
// exhausted or a domain error occurred; check Err to distinguish.
func (it *BetaReverseIterator[I, O]) Next() bool {
	if it.err != nil {
		return false
	}
	obs, ok := it.source.Next()
	if !ok {
		return false
	}

	n := it.model.n

	if !it.started {
		beta := make([]float64, n)
		for i := range beta {
			beta[i] = 1
		}
		it.prevBeta = beta
		it.nextObs = obs
		it.started = true
		it.cur = beta
		return true
	}

	// beta_t[i] = sum_j a_ij(x_t) * b_j(x_{t+1},y_{t+1}) * beta_{t+1}[j]
	beta := make([]float64, n)
	for i := 0; i < n; i++ {
		var s float64
		for j := 0; j < n; j++ {
			aij, err := it.model.a[i].Pdf(obs.Input, j)
			if err != nil {
				it.err = err
				return false
			}
			bj, err := it.model.b[j].Pdf(it.nextObs.Input, it.nextObs.Output)
			if err != nil {
				it.err = err
				return false
			}
			s += aij * bj * it.prevBeta[j]
		}
		beta[i] = s
	}

	it.prevBeta = beta
	it.nextObs = obs
	it.cur = beta
	return true
}

// Beta returns the backward variable produced by the most recent
// successful call to Next.
func (it *BetaReverseIterator[I, O]) Beta() []float64 {
	return it.cur
}

// Err returns the first domain error Next encountered.
func (it *BetaReverseIterator[I, O]) Err() error {
	return it.err
}

// Betas computes the ordinary forward-ordered backward variables
// beta_1, ..., beta_T for a finite observation sequence, by running
// BetasReverse over the reversed sequence and reversing the result
// (spec.md §4.6.2: "Ordinary forward-ordered beta requires a finite
// sequence").
func (m *MealyIOHMM[I, O]) Betas(o []Observation[I, O]) ([][]float64, error) {
	if len(o) == 0 {
		return nil, nil
	}
	it := m.BetasReverse(NewSliceSource(reverseSlice(o)))
	var betasReverse [][]float64
	for it.Next() {
		betasReverse = append(betasReverse, it.Beta())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return reverseSlice(betasReverse), nil
}
