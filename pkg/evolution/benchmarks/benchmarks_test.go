package benchmarks

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihai-snyk/genetic-search/pkg/evolution/framework"
)

func TestRoyalRoadScore(t *testing.T) {
	target, err := framework.NewBitGenome([]uint8{1, 1, 0, 0, 1, 0, 1, 1})
	require.NoError(t, err)
	candidate, err := framework.NewBitGenome([]uint8{1, 0, 0, 0, 1, 0, 1, 0})
	require.NoError(t, err)

	problem := NewRoyalRoad(target)
	assert.Equal(t, 6.0, problem.Score(candidate))
	assert.Equal(t, 8.0, problem.Score(target))

	maxFitness, bounded := problem.MaxFitness()
	assert.True(t, bounded)
	assert.Equal(t, 8.0, maxFitness)
}

func TestRoyalRoadOwnsTarget(t *testing.T) {
	target, _ := framework.ParseBitGenome("1010")
	problem := NewRoyalRoad(target)
	require.NoError(t, target.Set(0, 0))
	assert.Equal(t, "1010", problem.Target().String())
}

func TestRoyalRoadRejectsForeignGenomes(t *testing.T) {
	problem := RandomRoyalRoad(framework.NewRand(1), 8)
	assert.Panics(t, func() { problem.Score(framework.RandomBitGenome(framework.NewRand(2), 9)) })
	assert.Panics(t, func() { problem.Score(framework.RandomPermutationGenome(framework.NewRand(2), 8)) })
}

func TestRoyalRoadNewGenome(t *testing.T) {
	rng := framework.NewRand(3)
	problem := RandomRoyalRoad(rng, DefaultGenomeLength)
	assert.Equal(t, RoyalRoadName, problem.Name())
	g := problem.NewGenome(rng)
	assert.Equal(t, framework.KindBit, g.Kind())
	assert.Equal(t, DefaultGenomeLength, g.Len())
	score := problem.Fitness().Score(g)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, float64(DefaultGenomeLength))
}

func TestCityDistance(t *testing.T) {
	a := City{X: 0, Y: 0}
	b := City{X: 25, Y: 25}
	assert.Equal(t, 35, int(a.DistanceTo(b)))
}

func TestTravelingSalesmanTotalDistance(t *testing.T) {
	problem := NewTravelingSalesman([]City{
		{X: 0, Y: 10},
		{X: 0, Y: 20},
		{X: 0, Y: 30},
	})
	tour := problem.IdentityTour()
	assert.InDelta(t, 40.0, problem.TotalDistance(tour), 1e-9)
	assert.InDelta(t, 1.0/40, problem.Score(tour), 1e-12)

	_, bounded := problem.MaxFitness()
	assert.False(t, bounded)
}

func TestTravelingSalesmanDegenerateTours(t *testing.T) {
	for _, cities := range [][]City{{}, {{X: 3, Y: 4}}} {
		problem := NewTravelingSalesman(cities)
		tour := problem.IdentityTour()
		assert.Equal(t, 0.0, problem.TotalDistance(tour))
		assert.True(t, math.IsInf(problem.Score(tour), 1))
	}
}

func square(side float64) []City {
	return []City{{X: 0, Y: 0}, {X: 0, Y: side}, {X: side, Y: side}, {X: side, Y: 0}}
}

func TestTravelingSalesmanDistanceFollowsSwaps(t *testing.T) {
	problem := NewTravelingSalesman(square(1))
	tour := problem.IdentityTour()
	assert.InDelta(t, 4.0, problem.TotalDistance(tour), 1e-9)

	// Visiting the corners crosswise adds both diagonals.
	require.NoError(t, tour.Swap(1, 2))
	assert.InDelta(t, 2+2*math.Sqrt2, problem.TotalDistance(tour), 1e-9)
}

func TestTravelingSalesmanScoresArePerProblem(t *testing.T) {
	small := NewTravelingSalesman(square(1))
	large := NewTravelingSalesman(square(100))
	tour := small.IdentityTour()

	assert.InDelta(t, 1.0/4, small.Score(tour), 1e-12)
	assert.InDelta(t, 1.0/400, large.Score(tour), 1e-12)
	assert.InDelta(t, 1.0/4, small.Score(tour), 1e-12)
	assert.InDelta(t, 1.0/400, large.Score(tour.Clone()), 1e-12)
}

func TestRandomTravelingSalesman(t *testing.T) {
	rng := framework.NewRand(4)
	problem := RandomTravelingSalesman(rng, DefaultCityCount, DefaultExtent)
	require.Len(t, problem.Cities(), DefaultCityCount)
	for _, c := range problem.Cities() {
		assert.GreaterOrEqual(t, c.X, 1.0)
		assert.LessOrEqual(t, c.X, float64(DefaultExtent))
		assert.GreaterOrEqual(t, c.Y, 1.0)
		assert.LessOrEqual(t, c.Y, float64(DefaultExtent))
	}

	g := problem.NewGenome(rng).(*framework.PermutationGenome)
	require.NoError(t, g.Validate())
	route := problem.Route(g)
	require.Len(t, route, DefaultCityCount)
	assert.Equal(t, problem.Cities()[g.Order()[0]], route[0])
	assert.Greater(t, problem.Score(g), 0.0)
}

func TestTravelingSalesmanRejectsForeignGenomes(t *testing.T) {
	problem := RandomTravelingSalesman(framework.NewRand(5), 5, 100)
	assert.Panics(t, func() { problem.Score(framework.RandomBitGenome(framework.NewRand(6), 5)) })
	assert.Panics(t, func() { problem.Score(framework.RandomPermutationGenome(framework.NewRand(6), 4)) })
}
