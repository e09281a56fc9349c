package iohmm

import (
	"gonum.org/v1/gonum/floats"

	"github.com/kshedden/mealyhmm/ioerr"
	"github.com/kshedden/mealyhmm/transition"
)

// Train runs one Baum-Welch re-estimation step against a finite
// observation sequence, blending the re-estimated parameters into pi,
// A, and B with coefficient eta (spec.md §4.6.4). It is a single
// iteration, not a convergence loop -- a caller wanting EM to
// convergence calls Train repeatedly, typically recording the log of
// m.Probability(o) into LogLikelihoodTrace between calls (see
// cmd/estimate).
//
// An empty sequence leaves the model unchanged.
func (m *MealyIOHMM[I, O]) Train(o []Observation[I, O], eta float64) error {
	t := len(o)
	if t == 0 {
		return nil
	}

	alpha := make([][]float64, t)
	ai := m.Alphas(NewSliceSource(o))
	for step := 0; step < t; step++ {
		if !ai.Next() {
			if err := ai.Err(); err != nil {
				return err
			}
			return invalidInput("Train: observation source ended early")
		}
		alpha[step] = append([]float64(nil), ai.Alpha()...)
	}

	beta, err := m.Betas(o)
	if err != nil {
		return err
	}

	// S_step = sum_i alpha_step[i] * beta_step[i]; S_{T-1} = P(o)
	// (spec.md §4.6.4 step 2, §8 invariant 3).
	s := make([]float64, t)
	for step := 0; step < t; step++ {
		sum := floats.Dot(alpha[step], beta[step])
		s[step] = sum
		if sum == 0 {
			m.Warnings.DegenerateSteps++
			m.log().Printf("iohmm: Train: degenerate normalizer at step %d: %v", step, ioerr.ErrDegenerate)
		}
	}

	m.trainPi(alpha, beta, s, eta)
	if err := m.trainTransitions(o, alpha, beta, s, eta); err != nil {
		return err
	}
	if err := m.trainEmissions(o, alpha, beta, eta); err != nil {
		return err
	}

	return nil
}

// TrainMany applies Train to each sequence in turn with the same eta;
// there is no normalization across sequences (spec.md §4.6.4 step 6).
func (m *MealyIOHMM[I, O]) TrainMany(sequences [][]Observation[I, O], eta float64) error {
	for _, seq := range sequences {
		if err := m.Train(seq, eta); err != nil {
			return err
		}
	}
	return nil
}

func (m *MealyIOHMM[I, O]) trainPi(alpha, beta [][]float64, s []float64, eta float64) {
	if s[0] == 0 {
		return
	}
	n := m.n
	gamma0 := make([]float64, n)
	for i := 0; i < n; i++ {
		gamma0[i] = alpha[0][i] * beta[0][i] / s[0]
	}
	for i := 0; i < n; i++ {
		m.pi[i] = (1-eta)*m.pi[i] + eta*gamma0[i]
	}
}

func (m *MealyIOHMM[I, O]) trainTransitions(o []Observation[I, O], alpha, beta [][]float64, s []float64, eta float64) error {
	n := m.n
	t := len(o)
	for i := 0; i < n; i++ {
		var triples []transition.Triple[I, int]
		for step := 0; step < t-1; step++ {
			if s[step] == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				aij, err := m.a[i].Pdf(o[step].Input, j)
				if err != nil {
					return err
				}
				bj, err := m.b[j].Pdf(o[step+1].Input, o[step+1].Output)
				if err != nil {
					return err
				}
				w := alpha[step][i] * aij * bj * beta[step+1][j] / s[step]
				triples = append(triples, transition.Triple[I, int]{
					Input: o[step].Input, Output: j, Weight: w,
				})
			}
		}
		if len(triples) == 0 {
			continue
		}
		if err := m.a[i].FitUnnormalized(triples, eta); err != nil {
			return err
		}
	}
	return nil
}

func (m *MealyIOHMM[I, O]) trainEmissions(o []Observation[I, O], alpha, beta [][]float64, eta float64) error {
	n := m.n
	t := len(o)
	for i := 0; i < n; i++ {
		var triples []transition.Triple[I, O]
		for step := 0; step < t; step++ {
			w := alpha[step][i] * beta[step][i]
			triples = append(triples, transition.Triple[I, O]{
				Input: o[step].Input, Output: o[step].Output, Weight: w,
			})
		}
		if err := m.b[i].FitUnnormalized(triples, eta); err != nil {
			return err
		}
	}
	return nil
}
