package signal

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/sigil-zk/sigil/constraint"
	"github.com/sigil-zk/sigil/logger"
)

// PublicMarker is the optional backend capability used to flag wires as
// public inputs. The reference backend implements it.
type PublicMarker interface {
	MarkPublic(constraint.Wire)
}

// Builder threads Signals through a constraint-system backend. It holds the
// exclusive mutable borrow of the backend: construction is single-threaded
// and sequential, wire allocation order is the term order.
type Builder struct {
	sys     constraint.System
	witness bool

	// boolean-constrained signals, deduplicated by shape so a selector is
	// never constrained twice
	mtBooleans map[[16]byte][]Signal
}

// NewBuilder wraps a backend. Whether the backend tracks witness values is
// observed through the ONE wire.
func NewBuilder(sys constraint.System) *Builder {
	_, witness := sys.ReadWitness(0)
	log := logger.Logger()
	log.Debug().Bool("witness", witness).Msg("new signal builder")
	return &Builder{
		sys:        sys,
		witness:    witness,
		mtBooleans: make(map[[16]byte][]Signal),
	}
}

// System returns the underlying backend.
func (b *Builder) System() constraint.System { return b.sys }

// IsWitness reports whether the backend tracks witness values.
func (b *Builder) IsWitness() bool { return b.witness }

// Namespace opens a nested diagnostic scope; the returned closer releases it.
// Gadgets defer the closer on entry so the scope is released on every exit
// path, failure included.
func (b *Builder) Namespace(name string) func() {
	return b.sys.OpenNamespace(name)
}

// Alloc creates a Signal backed by a fresh backend wire, optionally seeded
// with a concrete value during witness generation.
func (b *Builder) Alloc(value *fr.Element) (Signal, error) {
	w, err := b.sys.AllocateWire(value)
	if err != nil {
		return Signal{}, err
	}
	s := Signal{terms: constraint.LinearCombination{{Wire: w, Coeff: fr.One()}}}
	if value != nil && b.witness {
		s.val = *value
		s.hasVal = true
	}
	return s, nil
}

// Public creates an allocated Signal and marks its wire as a public input.
func (b *Builder) Public(value *fr.Element) (Signal, error) {
	s, err := b.Alloc(value)
	if err != nil {
		return Signal{}, err
	}
	if pm, ok := b.sys.(PublicMarker); ok {
		pm.MarkPublic(s.terms[0].Wire)
	}
	return s, nil
}

// MarkPublic flags an already-allocated Signal as a public input. Expressions
// are first materialized through an equality-constrained fresh wire.
func (b *Builder) MarkPublic(s Signal) (Signal, error) {
	if s.Kind() != Allocated {
		var seed *fr.Element
		if s.hasVal {
			v := s.val
			seed = &v
		}
		m, err := b.Alloc(seed)
		if err != nil {
			return Signal{}, err
		}
		if err := b.AssertIsEqual(m, s); err != nil {
			return Signal{}, err
		}
		s = m
	}
	if pm, ok := b.sys.(PublicMarker); ok {
		pm.MarkPublic(s.terms[0].Wire)
	}
	return s, nil
}
