package iohmm

// AlphaIterator produces forward variables alpha_1, alpha_2, ... lazily,
// one time step per Next call, in time-increasing order (spec.md
// §4.6.1). It follows the bufio.Scanner/database/sql.Rows convention:
// call Next until it returns false, then check Err.
type AlphaIterator[I comparable, O any] struct {
	model     *MealyIOHMM[I, O]
	source    Source[I, O]
	prevAlpha []float64
	prevInput I
	started   bool
	cur       []float64
	err       error
}

// Alphas returns a lazily-produced forward-variable stream over source.
// source may be unbounded: each alpha_t is a fresh length-N slice
// computed purely from alpha_{t-1} and the next observation, so Alphas
// never materializes more than one time step of history.
func (m *MealyIOHMM[I, O]) Alphas(source Source[I, O]) *AlphaIterator[I, O] {
	return &AlphaIterator[I, O]{model: m, source: source}
}

// Next advances the iterator. It returns false when the source is
// exhausted or a domain error occurred; check Err to distinguish the two.
func (it *AlphaIterator[I, O]) Next() bool {
	if it.err != nil {
		return false
	}
	obs, ok := it.source.Next()
	if !ok {
		return false
	}

	n := it.model.n
	alpha := make([]float64, n)

	if !it.started {
		// alpha_1[i] = pi_i * b_i(x_1,y_1)
		for i := 0; i < n; i++ {
			bi, err := it.model.b[i].Pdf(obs.Input, obs.Output)
			if err != nil {
				it.err = err
				return false
			}
			alpha[i] = it.model.pi[i] * bi
		}
	} else {
		// alpha_{t+1}[j] = (sum_i alpha_t[i] * a_ij(x_t)) * b_j(x_{t+1},y_{t+1})
		for j := 0; j < n; j++ {
			var s float64
			for i := 0; i < n; i++ {
				aij, err := it.model.a[i].Pdf(it.prevInput, j)
				if err != nil {
					it.err = err
					return false
				}
				s += it.prevAlpha[i] * aij
			}
			bj, err := it.model.b[j].Pdf(obs.Input, obs.Output)
			if err != nil {
				it.err = err
				return false
			}
			alpha[j] = s * bj
		}
	}

	it.prevAlpha = alpha
	it.prevInput = obs.Input
	it.started = true
	it.cur = alpha
	return true
}

// Alpha returns the forward variable produced by the most recent
// successful call to Next.
func (it *AlphaIterator[I, O]) Alpha() []float64 {
	return it.cur
}

// Err returns the first domain error Next encountered, or nil if the
// iterator simply ran out of observations.
func (it *AlphaIterator[I, O]) Err() error {
	return it.err
}
