// Command estimate reads observation sequences produced by cmd/generate
// from stdin (or -infile), fits a fresh Mealy IOHMM to them by repeated
// Baum-Welch re-estimation, and reports the log-likelihood trajectory.
// Like cmd/generate, it persists nothing between runs -- spec.md rules out
// gob/gzip model files (SPEC_FULL.md §2).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/kshedden/mealyhmm/distribution"
	"github.com/kshedden/mealyhmm/iohmm"
	"github.com/kshedden/mealyhmm/rng"
	"github.com/kshedden/mealyhmm/transition"
)

func main() {
	infile := flag.String("infile", "", "Observation file; defaults to stdin")
	nState := flag.Int("nstate", 3, "Number of hidden states to fit")
	nInput := flag.Int("ninput", 2, "Number of distinct input tokens, numbered 1..ninput")
	nOutput := flag.Int("noutput", 2, "Number of distinct output tokens, numbered 0..noutput-1")
	maxIter := flag.Int("maxiter", 20, "Maximum number of Baum-Welch iterations")
	eta := flag.Float64("eta", 1.0, "Blending coefficient passed to Train")
	tol := flag.Float64("tol", 1e-6, "Stop early once the log-likelihood improves by less than this")
	seed := flag.Int64("seed", 0, "RNG seed; 0 selects a time-based seed")
	logname := flag.String("logname", "estimate", "Prefix for diagnostic log messages")
	flag.Parse()

	logger := log.New(os.Stderr, *logname+": ", log.Ltime)

	in := os.Stdin
	if *infile != "" {
		f, err := os.Open(*infile)
		if err != nil {
			logger.Fatalf("opening %s: %v", *infile, err)
		}
		defer f.Close()
		in = f
	}

	sequences, err := readSequences(in)
	if err != nil {
		logger.Fatalf("reading observations: %v", err)
	}
	if len(sequences) == 0 {
		logger.Fatalf("no observation sequences found")
	}

	seedVal := *seed
	if seedVal == 0 {
		seedVal = time.Now().UnixNano()
	}
	src := rng.New(rand.New(rand.NewSource(seedVal)))

	m, err := newStartingModel(*nState, *nInput, *nOutput, src, logger)
	if err != nil {
		logger.Fatalf("building starting model: %v", err)
	}

	logger.Printf("fitting %d states over %d sequences", *nState, len(sequences))

	prevLL := math.Inf(-1)
	for iter := 0; iter < *maxIter; iter++ {
		bar := progressbar.Default(int64(len(sequences)), fmt.Sprintf("iteration %d", iter))

		var ll float64
		for _, seq := range sequences {
			p, err := m.Probability(seq)
			if err != nil {
				logger.Fatalf("probability: %v", err)
			}
			if p > 0 {
				ll += math.Log(p)
			} else {
				ll += math.Inf(-1)
			}
			if err := m.Train(seq, *eta); err != nil {
				logger.Fatalf("train: %v", err)
			}
			_ = bar.Add(1)
		}
		m.RecordLogLikelihood(ll)
		logger.Printf("iteration %d: log-likelihood %f (warnings: %d degenerate steps)",
			iter, ll, m.Warnings.DegenerateSteps)

		if ll-prevLL < *tol {
			logger.Printf("converged after %d iterations", iter+1)
			break
		}
		prevLL = ll
	}

	logger.Printf("final log-likelihood trace: %v", m.LogLikelihoodTrace)
}

func newStartingModel(nState, nInput, nOutput int, src rng.Source, logger *log.Logger) (*iohmm.MealyIOHMM[int, int], error) {
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
			return nil, err
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
			return nil, err
		}
		bi.RandomizeAll(src)
		b[i] = bi
	}

	return iohmm.New(pi, a, b, iohmm.WithLogger[int, int](logger))
}

// readSequences parses lines of "sequence input output" into grouped
// observation sequences, in the format cmd/generate writes.
func readSequences(r *os.File) ([][]iohmm.Observation[int, int], error) {
	scanner := bufio.NewScanner(r)
	var sequences [][]iohmm.Observation[int, int]
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var seq, x, y int
		if _, err := fmt.Sscanf(line, "%d %d %d", &seq, &x, &y); err != nil {
			return nil, fmt.Errorf("parsing line %q: %w", line, err)
		}
		for len(sequences) <= seq {
			sequences = append(sequences, nil)
		}
		sequences[seq] = append(sequences[seq], iohmm.Observation[int, int]{Input: x, Output: y})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sequences, nil
}
