package framework

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Kind identifies the representation behind a Genome.
type Kind int

const (
	KindBit Kind = iota
	KindPermutation
)

func (k Kind) String() string {
	switch k {
	case KindBit:
		return "bit"
	case KindPermutation:
		return "permutation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Genome is the encoding of one candidate solution. It is a closed set of
// variants: *BitGenome and *PermutationGenome. Operators switch on the
// concrete type to pick representation-specific behaviour.
type Genome interface {
	Kind() Kind
	Len() int
	Get(int) (int, error)
	Set(int, int) error
	Clone() Genome

	// Key is a stable encoding of the loci, used for memoization.
	Key() string
	String() string

	sealed()
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, n)
	}
	return nil
}

// BitGenome uses a binary encoding scheme, where each locus is 0 or 1.
type BitGenome struct {
	bits []uint8
}

var _ Genome = &BitGenome{}

// NewBitGenome copies bits into a new genome. Every value must be 0 or 1.
func NewBitGenome(bits []uint8) (*BitGenome, error) {
	for i, b := range bits {
		if b > 1 {
			return nil, fmt.Errorf("%w: bit %d at locus %d", ErrInvalidLocus, b, i)
		}
	}
	own := make([]uint8, len(bits))
	copy(own, bits)
	return &BitGenome{bits: own}, nil
}

// ParseBitGenome parses a string of '0' and '1' characters.
func ParseBitGenome(s string) (*BitGenome, error) {
	bits := make([]uint8, len(s))
	for i, c := range s {
		switch c {
		case '0':
		case '1':
			bits[i] = 1
		default:
			return nil, fmt.Errorf("%w: %q at locus %d", ErrInvalidLocus, c, i)
		}
	}
	return &BitGenome{bits: bits}, nil
}

// RandomBitGenome fills every locus with an independent fair coin flip.
func RandomBitGenome(rng *rand.Rand, length int) *BitGenome {
	bits := make([]uint8, length)
	for i := range bits {
		bits[i] = uint8(rng.IntN(2))
	}
	return &BitGenome{bits: bits}
}

func (g *BitGenome) Kind() Kind { return KindBit }

func (g *BitGenome) Len() int { return len(g.bits) }

func (g *BitGenome) Get(i int) (int, error) {
	if err := checkIndex(i, len(g.bits)); err != nil {
		return 0, err
	}
	return int(g.bits[i]), nil
}

func (g *BitGenome) Set(i, v int) error {
	if err := checkIndex(i, len(g.bits)); err != nil {
		return err
	}
	if v != 0 && v != 1 {
		return fmt.Errorf("%w: bit %d at locus %d", ErrInvalidLocus, v, i)
	}
	g.bits[i] = uint8(v)
	return nil
}

// Bits returns a copy of the loci.
func (g *BitGenome) Bits() []uint8 {
	out := make([]uint8, len(g.bits))
	copy(out, g.bits)
	return out
}

func (g *BitGenome) Clone() Genome {
	newBits := make([]uint8, len(g.bits))
	copy(newBits, g.bits)
	return &BitGenome{bits: newBits}
}

func (g *BitGenome) Key() string { return g.String() }

func (g *BitGenome) String() string {
	var sb strings.Builder
	sb.Grow(len(g.bits))
	for _, b := range g.bits {
		sb.WriteByte('0' + b)
	}
	return sb.String()
}

func (g *BitGenome) sealed() {}

// PermutationGenome is an ordering of the indices 0..L-1 of a fixed universe,
// e.g. the cities of a tour. It also holds a cached cost for that ordering.
type PermutationGenome struct {
	order []int

	cost      float64
	costOwner any
	costValid bool
}

var _ Genome = &PermutationGenome{}

// NewPermutationGenome copies order into a new genome, rejecting anything
// that is not a permutation of 0..len(order)-1.
func NewPermutationGenome(order []int) (*PermutationGenome, error) {
	own := make([]int, len(order))
	copy(own, order)
	g := &PermutationGenome{order: own}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// RandomPermutationGenome returns a uniformly random permutation of 0..length-1.
func RandomPermutationGenome(rng *rand.Rand, length int) *PermutationGenome {
	order := make([]int, length)
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(length, func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return &PermutationGenome{order: order}
}

func (g *PermutationGenome) Kind() Kind { return KindPermutation }

func (g *PermutationGenome) Len() int { return len(g.order) }

func (g *PermutationGenome) Get(i int) (int, error) {
	if err := checkIndex(i, len(g.order)); err != nil {
		return 0, err
	}
	return g.order[i], nil
}

// Set writes one locus without re-validating the permutation invariant.
// Callers are responsible for keeping the sequence a permutation.
func (g *PermutationGenome) Set(i, v int) error {
	if err := checkIndex(i, len(g.order)); err != nil {
		return err
	}
	if v < 0 || v >= len(g.order) {
		return fmt.Errorf("%w: element %d outside universe of size %d", ErrInvalidLocus, v, len(g.order))
	}
	g.order[i] = v
	g.costValid = false
	return nil
}

// Swap exchanges two loci. It preserves the permutation invariant.
func (g *PermutationGenome) Swap(i, j int) error {
	if err := checkIndex(i, len(g.order)); err != nil {
		return err
	}
	if err := checkIndex(j, len(g.order)); err != nil {
		return err
	}
	g.order[i], g.order[j] = g.order[j], g.order[i]
	g.costValid = false
	return nil
}

// Order returns a copy of the loci.
func (g *PermutationGenome) Order() []int {
	out := make([]int, len(g.order))
	copy(out, g.order)
	return out
}

// Validate reports whether every element of the universe appears exactly once.
func (g *PermutationGenome) Validate() error {
	seen := make([]bool, len(g.order))
	for i, v := range g.order {
		if v < 0 || v >= len(g.order) {
			return fmt.Errorf("%w: element %d at locus %d outside universe of size %d", ErrNotPermutation, v, i, len(g.order))
		}
		if seen[v] {
			return fmt.Errorf("%w: element %d repeated at locus %d", ErrNotPermutation, v, i)
		}
		seen[v] = true
	}
	return nil
}

// Cost returns the cost of this ordering as computed by fn on behalf of
// owner. The value is cached per owner: Set, Swap and a call with a
// different owner recompute it. The cache is not guarded; warm it before
// sharing the genome between goroutines. owner must be comparable.
func (g *PermutationGenome) Cost(owner any, fn func(order []int) float64) float64 {
	if !g.costValid || g.costOwner != owner {
		g.cost = fn(g.order)
		g.costOwner = owner
		g.costValid = true
	}
	return g.cost
}

func (g *PermutationGenome) Clone() Genome {
	newOrder := make([]int, len(g.order))
	copy(newOrder, g.order)
	return &PermutationGenome{
		order:     newOrder,
		cost:      g.cost,
		costOwner: g.costOwner,
		costValid: g.costValid,
	}
}

func (g *PermutationGenome) Key() string { return g.String() }

func (g *PermutationGenome) String() string {
	parts := make([]string, len(g.order))
	for i, v := range g.order {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (g *PermutationGenome) sealed() {}
