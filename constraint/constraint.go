// Package constraint implements the constraint-system backend consumed by the
// signal engine: wire allocation, bilinear constraint recording, namespacing
// and witness storage for a rank-1 constraint system over the BN254 scalar
// field.
//
// The contract between the engine and the backend is deliberately narrow; the
// System interface is everything a gadget layer may ask of it.
package constraint

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

var (
	// ErrUnsatisfiedConstraint is returned by Enforce when the concrete
	// witness values of a constraint do not reconcile. It indicates invalid
	// input data or a construction bug, never a transient condition.
	ErrUnsatisfiedConstraint = errors.New("constraint is not satisfied")

	// ErrWireExhausted is returned when the wire counter overflows the wire
	// index space. It is fatal; callers propagate it without recovery.
	ErrWireExhausted = errors.New("wire index space exhausted")
)

// Wire is an opaque backend-owned wire index. Wire 0 is the reserved ONE wire,
// public and permanently assigned the value 1; constant offsets of linear
// combinations ride on it.
type Wire uint32

// Term is one (wire, coefficient) pair of a linear combination.
type Term struct {
	Wire  Wire
	Coeff fr.Element
}

// LinearCombination is an ordered list of terms, sorted by increasing wire id
// with at most one term per wire.
type LinearCombination []Term

// R1C is one bilinear constraint A·B = C. PathID indexes the namespace path
// the constraint was recorded under, for diagnostics.
type R1C struct {
	A, B, C LinearCombination
	PathID  int
}

// System is the narrow contract the signal engine and the gadget set consume.
//
// A System is mutably borrowed by exactly one gadget invocation at a time;
// nothing here is safe for concurrent use.
type System interface {
	// AllocateWire creates a new wire, optionally pre-seeded with a concrete
	// value during witness generation. It fails only on wire exhaustion.
	AllocateWire(value *fr.Element) (Wire, error)

	// Enforce records one bilinear constraint a·b = c. Recording never fails
	// structurally; when the system tracks witness values and the values of
	// a, b, c do not reconcile, it returns an error wrapping
	// ErrUnsatisfiedConstraint.
	Enforce(a, b, c LinearCombination) error

	// OpenNamespace pushes a nested scope used to tag constraints for
	// diagnostics. The returned closer releases the scope; callers defer it
	// so the scope is released on every exit path.
	OpenNamespace(name string) func()

	// ReadWitness returns the assigned value of a wire during witness
	// generation, or false during setup-only structural passes.
	ReadWitness(w Wire) (fr.Element, bool)
}
