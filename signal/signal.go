// Package signal implements the algebraic core of the circuit-construction
// layer: lazily-allocating linear combinations over backend wires.
//
// A Signal is interpreted as constant + Σ coeffᵢ·wireᵢ. Arithmetic merges
// sorted term lists without touching the backend; a backend wire is consumed
// only when a multiplication cannot be folded away. That allocation decision
// is the layer's central cost rule: every unavoidable multiplication costs
// exactly one constraint, everything else is free.
package signal

import (
	"encoding/binary"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/blake2b"

	"github.com/sigil-zk/sigil/constraint"
)

// Kind is the structural shape of a Signal. The multiplication rule branches
// on it explicitly.
type Kind uint8

const (
	// Constant: zero terms; the Signal is fully known at construction time.
	Constant Kind = iota
	// Allocated: exactly one term with coefficient one and zero offset; the
	// Signal mirrors a backend wire.
	Allocated
	// Expression: any other shape; an unmaterialized linear combination that
	// has not consumed a backend wire.
	Expression
)

// Signal is a value in the circuit: a sorted, duplicate-free list of
// (wire, coefficient) terms plus a constant offset. Signals are immutable;
// arithmetic produces new ones.
type Signal struct {
	terms  constraint.LinearCombination // sorted by wire id, never the ONE wire
	offset fr.Element

	// concrete value during witness generation; absent in setup-only passes
	val    fr.Element
	hasVal bool
}

// Zero returns the structural additive identity.
func Zero() Signal {
	var s Signal
	s.val.SetZero()
	s.hasVal = true
	return s
}

// One returns the constant 1.
func One() Signal {
	return NewConstant(fr.One())
}

// NewConstant returns the constant Signal of value v.
func NewConstant(v fr.Element) Signal {
	return Signal{offset: v, val: v, hasVal: true}
}

// NewConstantUint64 returns the constant Signal of value v.
func NewConstantUint64(v uint64) Signal {
	var e fr.Element
	e.SetUint64(v)
	return NewConstant(e)
}

// Kind returns the structural shape of the Signal.
func (s Signal) Kind() Kind {
	if len(s.terms) == 0 {
		return Constant
	}
	if len(s.terms) == 1 && s.offset.IsZero() && s.terms[0].Coeff.IsOne() {
		return Allocated
	}
	return Expression
}

// AsConstant returns the Signal's value if it is structurally a constant.
func (s Signal) AsConstant() (fr.Element, bool) {
	if len(s.terms) != 0 {
		return fr.Element{}, false
	}
	return s.offset, true
}

// IsZero reports whether the Signal is the structural additive identity:
// no terms and a zero offset.
func (s Signal) IsZero() bool {
	return len(s.terms) == 0 && s.offset.IsZero()
}

// Value returns the concrete value carried by the Signal during witness
// generation, or false during setup-only passes.
func (s Signal) Value() (fr.Element, bool) {
	return s.val, s.hasVal
}

// NbTerms returns the number of wire terms of the Signal.
func (s Signal) NbTerms() int {
	return len(s.terms)
}

// lc lowers the Signal to a backend linear combination; the constant offset
// rides on the ONE wire, which sorts first.
func (s Signal) lc() constraint.LinearCombination {
	if s.offset.IsZero() {
		return s.terms
	}
	res := make(constraint.LinearCombination, 0, len(s.terms)+1)
	res = append(res, constraint.Term{Wire: 0, Coeff: s.offset})
	return append(res, s.terms...)
}

// StructurallyEqual reports whether two Signals have identical shape:
// same terms, same coefficients, same offset. Values are not compared.
func (s Signal) StructurallyEqual(o Signal) bool {
	if len(s.terms) != len(o.terms) || !s.offset.Equal(&o.offset) {
		return false
	}
	for i := range s.terms {
		if s.terms[i].Wire != o.terms[i].Wire || !s.terms[i].Coeff.Equal(&o.terms[i].Coeff) {
			return false
		}
	}
	return true
}

// hashCode returns a collision-resistant identifier of the Signal's shape,
// used to deduplicate boolean assertions.
func (s Signal) hashCode() [16]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	var buf [8]byte
	for _, t := range s.terms {
		binary.LittleEndian.PutUint32(buf[:4], uint32(t.Wire))
		h.Write(buf[:4])
		b := t.Coeff.Bytes()
		h.Write(b[:])
	}
	ob := s.offset.Bytes()
	h.Write(ob[:])
	sum := h.Sum(nil)
	return [16]byte(sum[:16])
}
