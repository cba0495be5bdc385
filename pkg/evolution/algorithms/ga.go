package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/genetic-search/pkg/evolution/framework"
	"github.com/mihai-snyk/genetic-search/pkg/evolution/metrics"
	"github.com/mihai-snyk/genetic-search/pkg/evolution/operators"
)

const (
	Name = "GA"
)

// Outcome tells why a run stopped.
type Outcome string

const (
	// OutcomeConverged means the fittest individual reached the maximum fitness.
	OutcomeConverged Outcome = "Converged"
	// OutcomeGenerationLimit means the generation budget ran out first.
	OutcomeGenerationLimit Outcome = "GenerationLimit"
	// OutcomeDeadline means the context deadline expired first.
	OutcomeDeadline Outcome = "Deadline"
)

// Config holds the parameters of a generational genetic algorithm.
type Config struct {
	PopSize        int
	MaxGenerations int
	MutationRate   float64
	UniformRate    float64
	Elitism        bool
	TournamentSize int
	Segment        operators.SegmentPolicy

	// Workers above one produce the children of a generation in parallel,
	// each worker with its own random stream.
	Workers int
	Seed    uint64

	// Fitness overrides the problem's fitness function, e.g. with a memoizing
	// wrapper. Optional.
	Fitness framework.FitnessFunction
	// Metrics is optional.
	Metrics *metrics.Metrics
}

// DefaultConfig returns the parameters both benchmarks are tuned for.
func DefaultConfig() Config {
	return Config{
		PopSize:        20,
		MaxGenerations: 1000,
		MutationRate:   0.015,
		UniformRate:    0.5,
		Elitism:        true,
		TournamentSize: 5,
		Segment:        operators.SegmentSorted,
		Workers:        1,
	}
}

func (c Config) validate() error {
	var errs []error
	if c.PopSize < 1 {
		errs = append(errs, fmt.Errorf("population size must be at least 1, got %d", c.PopSize))
	}
	if c.MaxGenerations < 1 {
		errs = append(errs, fmt.Errorf("generation budget must be at least 1, got %d", c.MaxGenerations))
	}
	if !(c.MutationRate >= 0 && c.MutationRate <= 1) {
		errs = append(errs, fmt.Errorf("mutation rate must be in [0, 1], got %v", c.MutationRate))
	}
	if !(c.UniformRate >= 0 && c.UniformRate <= 1) {
		errs = append(errs, fmt.Errorf("uniform rate must be in [0, 1], got %v", c.UniformRate))
	}
	if c.TournamentSize < 1 {
		errs = append(errs, fmt.Errorf("tournament size must be at least 1, got %d", c.TournamentSize))
	}
	if c.Segment != operators.SegmentSorted && c.Segment != operators.SegmentUnsorted {
		errs = append(errs, fmt.Errorf("unknown segment policy %q", c.Segment))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	return errors.Join(errs...)
}

// GeneticAlgorithm evolves a population of one problem generation by
// generation: tournament selection, crossover, mutation and optional elitism.
// It is not safe for concurrent use; Evolve parallelizes internally.
type GeneticAlgorithm struct {
	Config

	problem framework.Problem
	fitness framework.FitnessFunction
	rng     *rand.Rand
}

// NewGeneticAlgorithm creates a new instance for problem. An empty segment
// policy defaults to SegmentSorted.
func NewGeneticAlgorithm(problem framework.Problem, cfg Config) (*GeneticAlgorithm, error) {
	if cfg.Segment == "" {
		cfg.Segment = operators.SegmentSorted
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s configuration: %w", Name, err)
	}

	fitness := cfg.Fitness
	if fitness == nil {
		fitness = problem.Fitness()
	}
	return &GeneticAlgorithm{
		Config:  cfg,
		problem: problem,
		fitness: fitness,
		rng:     framework.NewRand(cfg.Seed),
	}, nil
}

// FitnessFunction returns the function the algorithm scores with.
func (ga *GeneticAlgorithm) FitnessFunction() framework.FitnessFunction {
	return ga.fitness
}

// Initialize creates an initial random population of PopSize individuals.
func (ga *GeneticAlgorithm) Initialize() *framework.Population {
	pop := framework.NewPopulation(ga.PopSize, ga.fitness)
	for i := 0; i < ga.PopSize; i++ {
		pop.Add(ga.problem.NewGenome(ga.rng))
	}
	return pop
}

func (ga *GeneticAlgorithm) selection() operators.Tournament {
	return operators.Tournament{Size: ga.TournamentSize}
}

func (ga *GeneticAlgorithm) crossover() operators.Crossover {
	return operators.Crossover{UniformRate: ga.UniformRate, Segment: ga.Segment}
}

func (ga *GeneticAlgorithm) mutation() operators.Mutation {
	return operators.Mutation{Rate: ga.MutationRate}
}

// Evolve builds the next generation from pop. pop itself is left untouched;
// the returned population shares no genomes with it.
func (ga *GeneticAlgorithm) Evolve(ctx context.Context, pop *framework.Population) (*framework.Population, error) {
	logger := klog.FromContext(ctx)
	if pop.Size() == 0 {
		return nil, framework.ErrEmptyPopulation
	}
	// Score everything up front so breeding only reads from pop.
	pop.Evaluate()

	size := pop.Size()
	next := framework.NewPopulation(size, ga.fitness)
	offset := 0
	if ga.Elitism {
		elite, err := pop.Fittest()
		if err != nil {
			return nil, err
		}
		next.Add(elite.Clone())
		offset = 1
	}

	children, err := ga.breed(ctx, pop, size-offset)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		next.Add(child)
	}

	mutation := ga.mutation()
	for i := offset; i < next.Size(); i++ {
		if err := mutation.Mutate(ga.rng, next.At(i)); err != nil {
			return nil, fmt.Errorf("mutating individual %d: %w", i, err)
		}
	}

	logger.V(5).Info("evolved population", "problem", ga.problem.Name(), "size", next.Size(),
		"selection", ga.selection().Name(), "elitism", ga.Elitism)
	return next, nil
}

// breed produces n children. With several workers the slots are split into
// contiguous chunks; the per-worker streams are seeded from the engine's
// stream before any goroutine starts, so results only depend on Seed and
// Workers.
func (ga *GeneticAlgorithm) breed(ctx context.Context, pop *framework.Population, n int) ([]framework.Genome, error) {
	children := make([]framework.Genome, n)
	workers := ga.Workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return children, ga.breedInto(ga.rng, pop, children)
	}

	g, gctx := errgroup.WithContext(ctx)
	chunk := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += chunk {
		part := children[lo:min(lo+chunk, n)]
		rng := framework.NewRand(ga.rng.Uint64())
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return ga.breedInto(rng, pop, part)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return children, nil
}

func (ga *GeneticAlgorithm) breedInto(rng *rand.Rand, pop *framework.Population, out []framework.Genome) error {
	selection, crossover := ga.selection(), ga.crossover()
	for i := range out {
		parent1, err := selection.Select(rng, pop)
		if err != nil {
			return err
		}
		parent2, err := selection.Select(rng, pop)
		if err != nil {
			return err
		}
		child, err := crossover.Cross(rng, parent1, parent2)
		if err != nil {
			return err
		}
		out[i] = child
	}
	return nil
}

// Result describes a finished run.
type Result struct {
	Outcome     Outcome
	Generations int
	Population  *framework.Population
	Fittest     framework.Genome
	Fitness     float64
	// History holds one entry per generation, the initial population included.
	History []GenerationStats
}

// Converged reports whether the run reached the maximum fitness.
func (r *Result) Converged() bool {
	return r.Outcome == OutcomeConverged
}

// Run executes the algorithm starting from pop, or from a fresh random
// population when pop is nil. It stops when the fittest individual reaches
// the maximum fitness, after MaxGenerations generations, or when the context
// deadline expires. Other context errors are returned with the partial result.
func (ga *GeneticAlgorithm) Run(ctx context.Context, pop *framework.Population) (*Result, error) {
	logger := klog.FromContext(ctx)
	if pop == nil {
		pop = ga.Initialize()
	}
	maxFitness, bounded := ga.fitness.MaxFitness()

	res := &Result{Population: pop}
	stats, err := NewGenerationStats(0, pop)
	if err != nil {
		return nil, err
	}
	res.History = append(res.History, stats)

	for {
		if bounded && stats.Best >= maxFitness {
			res.Outcome = OutcomeConverged
			break
		}
		if res.Generations >= ga.MaxGenerations {
			res.Outcome = OutcomeGenerationLimit
			break
		}
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				res.Outcome = OutcomeDeadline
				break
			}
			return res, err
		}

		start := time.Now()
		next, err := ga.Evolve(ctx, res.Population)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				res.Outcome = OutcomeDeadline
				break
			}
			return res, err
		}
		res.Population = next
		res.Generations++

		stats, err = NewGenerationStats(res.Generations, next)
		if err != nil {
			return res, err
		}
		res.History = append(res.History, stats)
		ga.Metrics.ObserveGeneration(ga.problem.Name(), stats.Best, stats.Mean, time.Since(start))
		logger.V(2).Info("generation & fitness", "problem", ga.problem.Name(), "generation", res.Generations, "best", stats.Best, "mean", stats.Mean)
	}

	fittest, err := res.Population.Fittest()
	if err != nil {
		return res, err
	}
	res.Fittest = fittest
	res.Fitness = res.Population.Fitness().Score(fittest)
	ga.Metrics.ObserveOutcome(ga.problem.Name(), string(res.Outcome))

	logger.V(1).Info("run finished", "problem", ga.problem.Name(), "outcome", res.Outcome, "generations", res.Generations, "fitness", res.Fitness)
	return res, nil
}
