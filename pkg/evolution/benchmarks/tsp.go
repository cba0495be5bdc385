package benchmarks

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/mihai-snyk/genetic-search/pkg/evolution/framework"
)

const (
	TravelingSalesmanName = "TravelingSalesman"

	// DefaultCityCount and DefaultExtent describe the random city maps used
	// when no explicit list is configured.
	DefaultCityCount = 20
	DefaultExtent    = 500
)

// City is a named point on the plane.
type City struct {
	Name string  `json:"name,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance between two cities.
func (c City) DistanceTo(o City) float64 {
	return floats.Distance([]float64{c.X, c.Y}, []float64{o.X, o.Y}, 2)
}

// TravelingSalesman searches for the shortest closed tour over a fixed list
// of cities. Genomes are permutations of the city indices.
type TravelingSalesman struct {
	cities []City
	points [][]float64
}

var (
	_ framework.Problem         = &TravelingSalesman{}
	_ framework.FitnessFunction = &TravelingSalesman{}
)

// NewTravelingSalesman uses a copy of cities as the universe.
func NewTravelingSalesman(cities []City) *TravelingSalesman {
	p := &TravelingSalesman{
		cities: make([]City, len(cities)),
		points: make([][]float64, len(cities)),
	}
	copy(p.cities, cities)
	for i, c := range p.cities {
		p.points[i] = []float64{c.X, c.Y}
	}
	return p
}

// RandomTravelingSalesman places n cities at integer coordinates in
// [1, extent] on both axes.
func RandomTravelingSalesman(rng *rand.Rand, n, extent int) *TravelingSalesman {
	cities := make([]City, n)
	for i := range cities {
		cities[i] = City{
			Name: fmt.Sprintf("city-%d", i),
			X:    float64(1 + rng.IntN(extent)),
			Y:    float64(1 + rng.IntN(extent)),
		}
	}
	return NewTravelingSalesman(cities)
}

func (p *TravelingSalesman) Name() string {
	return TravelingSalesmanName
}

func (p *TravelingSalesman) Fitness() framework.FitnessFunction {
	return p
}

// Cities returns a copy of the universe in list order.
func (p *TravelingSalesman) Cities() []City {
	out := make([]City, len(p.cities))
	copy(out, p.cities)
	return out
}

// Route resolves a tour to its cities in visiting order.
func (p *TravelingSalesman) Route(g *framework.PermutationGenome) []City {
	order := g.Order()
	route := make([]City, len(order))
	for i, idx := range order {
		route[i] = p.cities[idx]
	}
	return route
}

// NewGenome returns a uniformly random tour.
func (p *TravelingSalesman) NewGenome(rng *rand.Rand) framework.Genome {
	return framework.RandomPermutationGenome(rng, len(p.cities))
}

// IdentityTour visits the cities in list order.
func (p *TravelingSalesman) IdentityTour() *framework.PermutationGenome {
	order := make([]int, len(p.cities))
	for i := range order {
		order[i] = i
	}
	g, _ := framework.NewPermutationGenome(order)
	return g
}

// TotalDistance returns the length of the closed tour, return leg included.
// The value is cached on the genome for this problem until the genome is next
// modified.
func (p *TravelingSalesman) TotalDistance(g *framework.PermutationGenome) float64 {
	if g.Len() != len(p.cities) {
		panic(fmt.Sprintf("%s: tour visits %d cities, want %d", TravelingSalesmanName, g.Len(), len(p.cities)))
	}
	return g.Cost(p, p.tourLength)
}

func (p *TravelingSalesman) tourLength(order []int) float64 {
	if len(order) < 2 {
		return 0
	}
	total := 0.0
	from := order[0]
	for _, to := range order[1:] {
		total += floats.Distance(p.points[from], p.points[to], 2)
		from = to
	}
	return total + floats.Distance(p.points[from], p.points[order[0]], 2)
}

// Score is the reciprocal of the tour length. A tour with zero length, which
// includes every tour over fewer than two cities, is already optimal and
// scores +Inf.
func (p *TravelingSalesman) Score(g framework.Genome) float64 {
	tour, ok := g.(*framework.PermutationGenome)
	if !ok {
		panic(fmt.Sprintf("%s: cannot score %s genome", TravelingSalesmanName, g.Kind()))
	}
	d := p.TotalDistance(tour)
	if d == 0 {
		return math.Inf(1)
	}
	return 1 / d
}

// MaxFitness is unknown for tours; runs stop on their generation budget.
func (p *TravelingSalesman) MaxFitness() (float64, bool) {
	return 0, false
}
