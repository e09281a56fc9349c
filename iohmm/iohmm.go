// Package iohmm implements the Mealy-flavor Input-Output Hidden Markov
// Model engine: the forward (alpha) and backward (beta) recurrences, the
// joint-sequence probability, and the Baum-Welch-style re-estimation
// procedure that fits the initial-state distribution and the per-state
// transition/emission distributions. See spec.md §4.6.
package iohmm

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/kshedden/mealyhmm/ioerr"
	"github.com/kshedden/mealyhmm/rng"
	"github.com/kshedden/mealyhmm/transition"
)

// Tolerance is the published threshold for probability-sum validation
// (spec.md §6).
const Tolerance = 1e-6

// Warnings counts diagnostic conditions encountered during Train and
// Randomize,
// mirroring hmmlib.HMM's own warnings counter in spirit: nothing here
// aborts a call, but a caller can inspect these after the fact to decide
// whether the model is becoming degenerate.
type Warnings struct {
	// DegenerateSteps counts time steps skipped because their
	// normalizer S_t vanished (spec.md §4.6.4 step 2).
	DegenerateSteps int
	// NormalizeUnderflow counts Randomize draws, across pi and every
	// A_i/B_i sub-distribution reachable through the randomizable
	// capability, that had to fall back to a safe default because a
	// drawn mass collapsed to zero.
	NormalizeUnderflow int
}

// MealyIOHMM is a Mealy-flavor IOHMM: N hidden states, an initial-state
// distribution pi, a per-state transition distribution A_i(next state|x),
// and a per-state emission distribution B_i(output|x). It is a pure
// function of its parameters -- the only mutations are Train, ResetPi,
// and Randomize (spec.md §4.6.5); none of Pi/A/B/Probability/Alphas/
// Betas ever mutate it.
type MealyIOHMM[I comparable, O any] struct {
	n  int
	pi []float64
	a  []transition.Transition[I, int]
	b  []transition.Transition[I, O]

	Warnings Warnings
	// LogLikelihoodTrace is append-only history of log-likelihood
	// values (log P(o), summed over sequences by cmd/estimate) a
	// caller has chosen to record across repeated Train calls; the
	// core never appends to it itself, since spec.md §4.6.4 defines
	// Train as one iteration, not a convergence loop. cmd/estimate
	// drives the loop and calls RecordLogLikelihood.
	LogLikelihoodTrace []float64

	logger *log.Logger
}

// Option configures a MealyIOHMM at construction time. This -- not an
// environment variable or config file -- is the entire configuration
// surface for the engine (spec.md §6).
type Option[I comparable, O any] func(*MealyIOHMM[I, O])

// WithLogger overrides the diagnostic logger used during Train. Without
// this option the engine lazily constructs one writing to os.Stderr, the
// same default hmmlib.HMM.Initialize installs for msglogger.
func WithLogger[I comparable, O any](logger *log.Logger) Option[I, O] {
	return func(m *MealyIOHMM[I, O]) {
		m.logger = logger
	}
}

// New builds a MealyIOHMM from an initial-state vector and per-state
// transition/emission distributions. N is taken to be len(pi). a and b
// must have at least N entries each; entries beyond the first N are
// discarded (spec.md §4.6.6).
func New[I comparable, O any](
	pi []float64,
	a []transition.Transition[I, int],
	b []transition.Transition[I, O],
	opts ...Option[I, O],
) (*MealyIOHMM[I, O], error) {
	n := len(pi)
	if n < 1 {
		return nil, invalidInput("New: N=%d must be >= 1", n)
	}
	var total float64
	for _, p := range pi {
		if p < 0 {
			return nil, invalidInput("New: negative initial probability %v", p)
		}
		total += p
	}
	if diff := total - 1; diff > Tolerance || diff < -Tolerance {
		return nil, invalidInput("New: initial probabilities sum to %v, not 1", total)
	}
	if len(a) < n {
		return nil, invalidInput("New: len(A)=%d < N=%d", len(a), n)
	}
	if len(b) < n {
		return nil, invalidInput("New: len(B)=%d < N=%d", len(b), n)
	}

	m := &MealyIOHMM[I, O]{
		n:  n,
		pi: append([]float64(nil), pi...),
		a:  append([]transition.Transition[I, int](nil), a[:n]...),
		b:  append([]transition.Transition[I, O](nil), b[:n]...),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// NewFromGenerators builds a MealyIOHMM the way New does, but constructs
// A and B via per-state generator functions instead of explicit slices
// (spec.md §6's "new(pi[], A_generator, B_generator)" variant).
func NewFromGenerators[I comparable, O any](
	pi []float64,
	aGen func(state int) transition.Transition[I, int],
	bGen func(state int) transition.Transition[I, O],
	opts ...Option[I, O],
) (*MealyIOHMM[I, O], error) {
	n := len(pi)
	a := make([]transition.Transition[I, int], n)
	b := make([]transition.Transition[I, O], n)
	for i := 0; i < n; i++ {
		a[i] = aGen(i)
		b[i] = bGen(i)
	}
	return New(pi, a, b, opts...)
}

func (m *MealyIOHMM[I, O]) log() *log.Logger {
	if m.logger == nil {
		m.logger = log.New(os.Stderr, "", log.Ltime)
	}
	return m.logger
}

// NumStates returns N, the number of hidden states.
func (m *MealyIOHMM[I, O]) NumStates() int {
	return m.n
}

// Pi returns pi_i, the initial probability of state i.
func (m *MealyIOHMM[I, O]) Pi(i int) (float64, error) {
	if i < 0 || i >= m.n {
		return 0, outOfDomain("Pi: state %d not in [0,%d)", i, m.n)
	}
	return m.pi[i], nil
}

// A returns a_ij(x), the probability of transitioning from state i to
// state j under input x.
func (m *MealyIOHMM[I, O]) A(x I, i, j int) (float64, error) {
	if i < 0 || i >= m.n {
		return 0, outOfDomain("A: state %d not in [0,%d)", i, m.n)
	}
	return m.a[i].Pdf(x, j)
}

// B returns b_i(x,y), the probability of emitting y from state i under
// input x.
func (m *MealyIOHMM[I, O]) B(x I, i int, y O) (float64, error) {
	if i < 0 || i >= m.n {
		return 0, outOfDomain("B: state %d not in [0,%d)", i, m.n)
	}
	return m.b[i].Pdf(x, y)
}

// ResetPi resets the initial-state distribution to uniform over the N
// states.
func (m *MealyIOHMM[I, O]) ResetPi() {
	u := 1 / float64(m.n)
	for i := range m.pi {
		m.pi[i] = u
	}
}

// randomizable is the optional capability MealyIOHMM.Randomize probes
// transition implementations for; FiniteTransitionDistribution satisfies
// it via RandomizeAll. The returned count is the number of
// sub-distributions that underflowed while randomizing.
type randomizable interface {
	RandomizeAll(src transition.Rander) int
}

// Randomize perturbs pi and, for every A_i/B_i that exposes the optional
// randomizable capability, their sub-distributions too. Used to escape
// degenerate models (spec.md §4.2's randomize contract, applied at the
// engine level per spec.md §4.6.5). Every fallback to a safe default --
// here and in the sub-distributions it reaches through randomizable --
// is counted in m.Warnings.NormalizeUnderflow.
func (m *MealyIOHMM[I, O]) Randomize(src rng.Source) {
	src = rng.OrDefault(src)
	weights := make([]float64, m.n)
	var total float64
	for i := range weights {
		u := src.NextUnit()
		if u <= 0 {
			u = 1e-12
			m.Warnings.NormalizeUnderflow++
		}
		weights[i] = -math.Log(u)
		total += weights[i]
	}
	if total <= 0 {
		m.ResetPi()
	} else {
		for i := range m.pi {
			m.pi[i] = weights[i] / total
		}
	}

	for _, a := range m.a {
		if r, ok := a.(randomizable); ok {
			m.Warnings.NormalizeUnderflow += r.RandomizeAll(src)
		}
	}
	for _, b := range m.b {
		if r, ok := b.(randomizable); ok {
			m.Warnings.NormalizeUnderflow += r.RandomizeAll(src)
		}
	}
}

// RecordLogLikelihood appends v to LogLikelihoodTrace. Intended for a
// caller-driven Train loop (see cmd/estimate), not called internally.
func (m *MealyIOHMM[I, O]) RecordLogLikelihood(v float64) {
	m.LogLikelihoodTrace = append(m.LogLikelihoodTrace, v)
}

// Viterbi is an intentional stub. Decoding the most likely state
// sequence is out of scope for this core (spec.md §1 Non-goals); Moore
// and "saw"/higher-order extensions are likewise external collaborators
// with no implementation here (spec.md §9).
func (m *MealyIOHMM[I, O]) Viterbi(o []Observation[I, O]) ([]int, error) {
	return nil, errNotImplemented
}

var errNotImplemented = errors.New("iohmm: Viterbi is not implemented; see spec.md Non-goals")

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("iohmm: "+format+": %w", append(args, ioerr.ErrInvalidInput)...)
}

func outOfDomain(format string, args ...any) error {
	return fmt.Errorf("iohmm: "+format+": %w", append(args, ioerr.ErrOutOfDomain)...)
}
