package framework

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// onesFitness counts set bits and how often it was asked to.
type onesFitness struct {
	calls int
}

func (f *onesFitness) Score(g Genome) float64 {
	f.calls++
	n := 0
	for i := 0; i < g.Len(); i++ {
		v, _ := g.Get(i)
		n += v
	}
	return float64(n)
}

func (f *onesFitness) MaxFitness() (float64, bool) { return 0, false }

type onesProblem struct {
	length  int
	fitness *onesFitness
}

func (p *onesProblem) Name() string                    { return "ones" }
func (p *onesProblem) Fitness() FitnessFunction        { return p.fitness }
func (p *onesProblem) NewGenome(rng *rand.Rand) Genome { return RandomBitGenome(rng, p.length) }

func mustBits(t *testing.T, s string) *BitGenome {
	t.Helper()
	g, err := ParseBitGenome(s)
	require.NoError(t, err)
	return g
}

func TestPopulationFittest(t *testing.T) {
	pop := NewPopulation(4, &onesFitness{})
	first := mustBits(t, "1100")
	pop.Add(mustBits(t, "1000"))
	pop.Add(first)
	pop.Add(mustBits(t, "0011"))
	pop.Add(mustBits(t, "0000"))

	got, err := pop.Fittest()
	require.NoError(t, err)
	assert.Same(t, first, got, "ties resolve to the leftmost member")

	i, err := pop.FittestIndex()
	require.NoError(t, err)
	assert.Equal(t, 1, i)
}

func TestEmptyPopulation(t *testing.T) {
	pop := NewPopulation(5, &onesFitness{})
	assert.Equal(t, 0, pop.Size())
	assert.Equal(t, 5, pop.Capacity())

	_, err := pop.Fittest()
	assert.ErrorIs(t, err, ErrEmptyPopulation)
	_, err = pop.RandomMember(NewRand(1))
	assert.ErrorIs(t, err, ErrEmptyPopulation)
}

func TestNewRandomPopulation(t *testing.T) {
	problem := &onesProblem{length: 16, fitness: &onesFitness{}}
	pop := NewRandomPopulation(10, problem, NewRand(1))
	require.Equal(t, 10, pop.Size())
	assert.Equal(t, 10, pop.Capacity())
	for _, g := range pop.Individuals() {
		assert.Equal(t, 16, g.Len())
	}
}

func TestRandomMemberIsMember(t *testing.T) {
	problem := &onesProblem{length: 8, fitness: &onesFitness{}}
	pop := NewRandomPopulation(6, problem, NewRand(2))
	members := pop.Individuals()

	rng := NewRand(9)
	seen := map[int]bool{}
	for i := 0; i < 300; i++ {
		g, err := pop.RandomMember(rng)
		require.NoError(t, err)
		assert.Contains(t, members, g)
		idx, _ := pop.RandomIndex(rng)
		seen[idx] = true
	}
	assert.Len(t, seen, 6, "every member should be drawn eventually")
}

func TestPopulationScoresAreMemoized(t *testing.T) {
	fitness := &onesFitness{}
	pop := NewPopulation(3, fitness)
	pop.Add(mustBits(t, "111"))
	pop.Add(mustBits(t, "101"))

	assert.Equal(t, []float64{3, 2}, pop.Scores())
	pop.Evaluate()
	_, _ = pop.Fittest()
	assert.Equal(t, 2, fitness.calls)

	pop.Add(mustBits(t, "000"))
	assert.Equal(t, 0.0, pop.Score(2))
	assert.Equal(t, 3, fitness.calls)
}

func TestCachedFitness(t *testing.T) {
	inner := &onesFitness{}
	cached := NewCachedFitness(inner, time.Minute)

	a := mustBits(t, "1010")
	assert.Equal(t, 2.0, cached.Score(a))
	assert.Equal(t, 2.0, cached.Score(a.Clone()))
	assert.Equal(t, 1, inner.calls, "equal encodings share one entry")
	assert.Equal(t, 1, cached.Len())

	assert.Equal(t, 4.0, cached.Score(mustBits(t, "1111")))
	assert.Equal(t, 2, inner.calls)

	cached.Flush()
	assert.Equal(t, 0, cached.Len())
	cached.Score(a)
	assert.Equal(t, 3, inner.calls)

	_, bounded := cached.MaxFitness()
	assert.False(t, bounded)
}
