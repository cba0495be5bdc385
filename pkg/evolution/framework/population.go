package framework

import (
	"math/rand/v2"
)

// Population is an ordered collection of genomes scored by one fitness
// function. It owns its genomes. Scores are computed lazily and memoized per
// member; Evaluate warms them so that read-only use from several goroutines
// is safe afterwards.
type Population struct {
	capacity    int
	fitness     FitnessFunction
	individuals []Genome
	scores      []float64
	scored      []bool
}

// NewPopulation returns an empty population with nominal size capacity.
func NewPopulation(capacity int, fitness FitnessFunction) *Population {
	return &Population{
		capacity:    capacity,
		fitness:     fitness,
		individuals: make([]Genome, 0, capacity),
		scores:      make([]float64, 0, capacity),
		scored:      make([]bool, 0, capacity),
	}
}

// NewRandomPopulation returns a population filled with size random genomes
// drawn from problem.
func NewRandomPopulation(size int, problem Problem, rng *rand.Rand) *Population {
	pop := NewPopulation(size, problem.Fitness())
	for i := 0; i < size; i++ {
		pop.Add(problem.NewGenome(rng))
	}
	return pop
}

// Add appends an individual. The population takes ownership of g.
func (p *Population) Add(g Genome) {
	p.individuals = append(p.individuals, g)
	p.scores = append(p.scores, 0)
	p.scored = append(p.scored, false)
}

// Size returns the number of individuals currently held.
func (p *Population) Size() int {
	return len(p.individuals)
}

// Capacity returns the nominal size the population was created with.
func (p *Population) Capacity() int {
	return p.capacity
}

// Fitness returns the function members are scored with.
func (p *Population) Fitness() FitnessFunction {
	return p.fitness
}

// At returns the i-th individual. It panics if i is out of range.
func (p *Population) At(i int) Genome {
	return p.individuals[i]
}

// Individuals returns a copy of the member slice. The genomes are shared.
func (p *Population) Individuals() []Genome {
	out := make([]Genome, len(p.individuals))
	copy(out, p.individuals)
	return out
}

// Score returns the fitness of the i-th individual.
func (p *Population) Score(i int) float64 {
	if !p.scored[i] {
		p.scores[i] = p.fitness.Score(p.individuals[i])
		p.scored[i] = true
	}
	return p.scores[i]
}

// Scores evaluates every member and returns a copy of the scores in order.
func (p *Population) Scores() []float64 {
	p.Evaluate()
	out := make([]float64, len(p.scores))
	copy(out, p.scores)
	return out
}

// Evaluate scores every member that has not been scored yet.
func (p *Population) Evaluate() {
	for i := range p.individuals {
		p.Score(i)
	}
}

// FittestIndex returns the index of the highest scoring member. Ties keep
// the leftmost one.
func (p *Population) FittestIndex() (int, error) {
	if len(p.individuals) == 0 {
		return -1, ErrEmptyPopulation
	}
	best := 0
	for i := 1; i < len(p.individuals); i++ {
		if p.Score(i) > p.Score(best) {
			best = i
		}
	}
	return best, nil
}

// Fittest returns the highest scoring member.
func (p *Population) Fittest() (Genome, error) {
	i, err := p.FittestIndex()
	if err != nil {
		return nil, err
	}
	return p.individuals[i], nil
}

// RandomIndex draws a member index uniformly, with replacement.
func (p *Population) RandomIndex(rng *rand.Rand) (int, error) {
	if len(p.individuals) == 0 {
		return -1, ErrEmptyPopulation
	}
	return rng.IntN(len(p.individuals)), nil
}

// RandomMember draws a member uniformly, with replacement.
func (p *Population) RandomMember(rng *rand.Rand) (Genome, error) {
	i, err := p.RandomIndex(rng)
	if err != nil {
		return nil, err
	}
	return p.individuals[i], nil
}
