package operators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihai-snyk/genetic-search/pkg/evolution/benchmarks"
	"github.com/mihai-snyk/genetic-search/pkg/evolution/framework"
)

func newRoyalRoadPopulation(t *testing.T, size, length int, seed uint64) *framework.Population {
	t.Helper()
	rng := framework.NewRand(seed)
	problem := benchmarks.RandomRoyalRoad(rng, length)
	return framework.NewRandomPopulation(size, problem, rng)
}

func TestTournamentSelectReturnsMember(t *testing.T) {
	pop := newRoyalRoadPopulation(t, 8, 16, 1)
	members := pop.Individuals()
	rng := framework.NewRand(2)

	for size := 1; size <= pop.Size(); size++ {
		tournament := Tournament{Size: size}
		for i := 0; i < 50; i++ {
			g, err := tournament.Select(rng, pop)
			require.NoError(t, err)
			assert.Contains(t, members, g, "tournament size %d", size)
		}
	}
}

func TestTournamentLargeSizeFavoursFittest(t *testing.T) {
	pop := newRoyalRoadPopulation(t, 5, 32, 3)
	best, err := pop.FittestIndex()
	require.NoError(t, err)

	rng := framework.NewRand(4)
	tournament := Tournament{Size: 50 * pop.Size()}
	for i := 0; i < 20; i++ {
		idx, err := tournament.SelectIndex(rng, pop)
		require.NoError(t, err)
		assert.Equal(t, pop.Score(best), pop.Score(idx))
	}
}

func TestTournamentSizeOneIsUniform(t *testing.T) {
	pop := newRoyalRoadPopulation(t, 4, 8, 5)
	rng := framework.NewRand(6)
	counts := make([]int, pop.Size())
	const draws = 4000
	for i := 0; i < draws; i++ {
		idx, err := Tournament{Size: 1}.SelectIndex(rng, pop)
		require.NoError(t, err)
		counts[idx]++
	}
	for i, c := range counts {
		assert.InDelta(t, draws/4, c, draws/20, "member %d", i)
	}
}

func TestTournamentErrors(t *testing.T) {
	pop := newRoyalRoadPopulation(t, 4, 8, 7)
	rng := framework.NewRand(8)

	_, err := Tournament{Size: 0}.Select(rng, pop)
	assert.Error(t, err)

	empty := framework.NewPopulation(4, pop.Fitness())
	_, err = Tournament{Size: 3}.Select(rng, empty)
	assert.ErrorIs(t, err, framework.ErrEmptyPopulation)
}

func TestTournamentName(t *testing.T) {
	assert.Equal(t, "tournament", Tournament{Size: 5}.Name())
}
