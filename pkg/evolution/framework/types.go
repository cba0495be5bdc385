package framework

import (
	"errors"
	"math/rand/v2"
)

var (
	// ErrEmptyPopulation is returned by lookups that need at least one individual.
	ErrEmptyPopulation = errors.New("population is empty")
	// ErrIndexOutOfRange is returned by bounds-checked locus access.
	ErrIndexOutOfRange = errors.New("locus index out of range")
	// ErrInvalidLocus is returned when a value is not allowed at a locus.
	ErrInvalidLocus = errors.New("invalid locus value")
	// ErrNotPermutation is returned when a sequence has duplicates or omissions.
	ErrNotPermutation = errors.New("sequence is not a permutation")
	// ErrKindMismatch is returned when two genomes of different representations are combined.
	ErrKindMismatch = errors.New("genome kinds do not match")
	// ErrLengthMismatch is returned when two genomes of different lengths are combined.
	ErrLengthMismatch = errors.New("genome lengths do not match")
)

// FitnessFunction scores a genome. Higher is better.
type FitnessFunction interface {
	Score(Genome) float64

	// MaxFitness returns the score at which search can stop. The second
	// value is false when no exact optimum bound is known, in which case
	// runs end on their generation budget.
	MaxFitness() (float64, bool)
}

// Problem describes the contract a specific search problem needs to implement.
type Problem interface {
	Name() string
	Fitness() FitnessFunction

	// NewGenome returns a uniformly random individual for the initial population.
	NewGenome(rng *rand.Rand) Genome
}

// NewRand returns a PCG backed random source. Every randomized operator takes
// one of these so that runs are reproducible under a fixed seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
