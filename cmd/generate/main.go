// Command generate builds a random Mealy IOHMM and writes sampled
// observation sequences to stdout, one "sequence input output" line per
// time step. It has no persistence step -- spec.md rules out gob/gzip
// model files, so the model lives only for the duration of this process
// (see SPEC_FULL.md §2).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/kshedden/mealyhmm/distribution"
	"github.com/kshedden/mealyhmm/iohmm"
	"github.com/kshedden/mealyhmm/rng"
	"github.com/kshedden/mealyhmm/transition"
)

func main() {
	nState := flag.Int("nstate", 3, "Number of hidden states")
	nInput := flag.Int("ninput", 2, "Number of distinct input tokens, numbered 1..ninput")
	nOutput := flag.Int("noutput", 2, "Number of distinct output tokens, numbered 0..noutput-1")
	nSeq := flag.Int("nseq", 10, "Number of observation sequences to generate")
	seqLen := flag.Int("seqlen", 20, "Length of each observation sequence")
	seed := flag.Int64("seed", 0, "RNG seed; 0 selects a time-based seed")
	flag.Parse()

	logger := log.New(os.Stderr, "generate: ", log.Ltime)

	seedVal := *seed
	if seedVal == 0 {
		seedVal = time.Now().UnixNano()
	}
	src := rng.New(rand.New(rand.NewSource(seedVal)))

	pi, a, b := randomParameters(*nState, *nInput, *nOutput, src)

	// Build the engine purely to exercise New's invariant checks before
	// sampling -- generate never calls any iohmm method that would
	// require it afterward.
	if _, err := iohmm.New(pi, a, b); err != nil {
		logger.Fatalf("building model: %v", err)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	for s := 0; s < *nSeq; s++ {
		state := sampleState(pi, src)
		for t := 0; t < *seqLen; t++ {
			x := 1 + src.NextBelow(*nInput)
			y := b[state].Sample(x, src)
			if _, err := fmt.Fprintf(w, "%d %d %d\n", s, x, y); err != nil {
				logger.Fatalf("writing sequence %d: %v", s, err)
			}
			state = a[state].Sample(x, src)
		}
	}
	logger.Printf("wrote %d sequences of length %d over %d states", *nSeq, *seqLen, *nState)
}

// randomParameters builds a uniform pi and, for each state, a transition
// and emission distribution randomized over inputs [1,nInput] (states
// transition uniformly over [0,nState), emissions uniformly over
// [0,nOutput)), then perturbs every sub-distribution away from uniform.
func randomParameters(nState, nInput, nOutput int, src rng.Source) ([]float64, []transition.Transition[int, int], []transition.Transition[int, int]) {
	pi := make([]float64, nState)
	for i := range pi {
		pi[i] = 1 / float64(nState)
	}

	a := make([]transition.Transition[int, int], nState)
	b := make([]transition.Transition[int, int], nState)
	for i := 0; i < nState; i++ {
		ai, err := transition.NewIntegerRangeTransitionDistribution[int](1, nInput, func(index int) distribution.Distribution[int] {
			d, err := distribution.NewUniformFinite(nState)
			if err != nil {
				panic(err)
			}
			return d
		})
		if err != nil {
			panic(err)
		}
		ai.RandomizeAll(src)
		a[i] = ai

		bi, err := transition.NewIntegerRangeTransitionDistribution[int](1, nInput, func(index int) distribution.Distribution[int] {
			d, err := distribution.NewUniformFinite(nOutput)
			if err != nil {
				panic(err)
			}
			return d
		})
		if err != nil {
			panic(err)
		}
		bi.RandomizeAll(src)
		b[i] = bi
	}

	return pi, a, b
}

func sampleState(pi []float64, src rng.Source) int {
	u := src.NextUnit()
	var running float64
	for i, p := range pi {
		running += p
		if u < running {
			return i
		}
	}
	return len(pi) - 1
}
