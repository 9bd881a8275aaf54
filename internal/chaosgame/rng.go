package chaosgame

import (
	crand "crypto/rand"
	"math/rand/v2"
)

// Seed is the reseed payload shared by every Rule and Choice in a tree.
type Seed [SeedSize]byte

// EntropySeed reads a fresh seed from the system entropy source.
func EntropySeed() Seed {
	var s Seed
	_, _ = crand.Read(s[:])
	return s
}

// RuleRng is the per-instance generator of a Rule or Choice. It remembers the
// identity seed it was created with; Reseed folds new bytes into that
// identity, so clones reseeded alike replay the same stream while unrelated
// instances stay independent.
type RuleRng struct {
	identity Seed
	src      *rand.ChaCha8
	rnd      *rand.Rand
}

func NewRuleRng() *RuleRng {
	return newRuleRngFrom(EntropySeed())
}

func newRuleRngFrom(identity Seed) *RuleRng {
	src := rand.NewChaCha8(identity)
	return &RuleRng{identity: identity, src: src, rnd: rand.New(src)}
}

// Clone copies the generator state; the copy never aliases the original.
func (r *RuleRng) Clone() *RuleRng {
	src := *r.src
	return &RuleRng{identity: r.identity, src: &src, rnd: rand.New(&src)}
}

func (r *RuleRng) Reseed(seed Seed) {
	var folded Seed
	for i := range folded {
		folded[i] = r.identity[i] ^ seed[i]
	}
	r.src.Seed(folded)
}

func (r *RuleRng) Float64() Real     { return r.rnd.Float64() }
func (r *RuleRng) NormFloat64() Real { return r.rnd.NormFloat64() }
func (r *RuleRng) IntN(n int) int    { return r.rnd.IntN(n) }
func (r *RuleRng) Uint64() uint64    { return r.rnd.Uint64() }
func (r *RuleRng) Bool() bool        { return r.rnd.Uint64()&1 == 1 }
