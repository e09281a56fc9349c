package iohmm

import "gonum.org/v1/gonum/floats"

// Probability computes P(o), the joint probability of a finite
// observation sequence, as the fold-sum of the final forward variable
// (spec.md §4.6.3, and the Open Questions note on summing alpha_T via a
// fold).
func (m *MealyIOHMM[I, O]) Probability(o []Observation[I, O]) (float64, error) {
	if len(o) == 0 {
		return 0, nil
	}

	it := m.Alphas(NewSliceSource(o))
	var last []float64
	for it.Next() {
		last = it.Alpha()
	}
	if err := it.Err(); err != nil {
		return 0, err
	}

	return floats.Sum(last), nil
}
