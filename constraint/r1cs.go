package constraint

import (
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/sigil-zk/sigil/debug"
)

// R1CS is the reference backend: a monotonic wire counter, an append-only
// constraint log and, when witness tracking is on, the wire assignment store.
type R1CS struct {
	constraints []R1C

	values   []fr.Element
	assigned *bitset.BitSet
	public   []Wire

	// witness is true when the system tracks concrete values: wires may be
	// seeded at allocation and Enforce checks satisfiability.
	witness bool

	nsStack []string
	paths   []string
	pathIDs map[string]int
	curPath int
}

// NewR1CS returns a setup-only system: wires carry no values and Enforce only
// records.
func NewR1CS() *R1CS {
	return newR1CS(false)
}

// NewWitnessR1CS returns a system that tracks witness values: allocations may
// seed wires and every recorded constraint is checked against the assignment.
func NewWitnessR1CS() *R1CS {
	return newR1CS(true)
}

func newR1CS(witness bool) *R1CS {
	cs := &R1CS{
		assigned: bitset.New(64),
		witness:  witness,
		paths:    []string{""},
		pathIDs:  map[string]int{"": 0},
	}
	// wire 0 is the ONE wire
	one := fr.One()
	w, _ := cs.AllocateWire(&one)
	cs.MarkPublic(w)
	return cs
}

func (cs *R1CS) AllocateWire(value *fr.Element) (Wire, error) {
	if len(cs.values) > math.MaxUint32 {
		return 0, ErrWireExhausted
	}
	w := Wire(len(cs.values))
	if value != nil && cs.witness {
		cs.values = append(cs.values, *value)
		cs.assigned.Set(uint(w))
	} else {
		cs.values = append(cs.values, fr.Element{})
	}
	return w, nil
}

func (cs *R1CS) Enforce(a, b, c LinearCombination) error {
	cs.constraints = append(cs.constraints, R1C{A: a, B: b, C: c, PathID: cs.curPath})
	if !cs.witness {
		return nil
	}
	va, oka := cs.eval(a)
	vb, okb := cs.eval(b)
	vc, okc := cs.eval(c)
	if !(oka && okb && okc) {
		// a wire without assignment; satisfiability is reconciled later
		return nil
	}
	var ab fr.Element
	ab.Mul(&va, &vb)
	if !ab.Equal(&vc) {
		return fmt.Errorf("%w: %s ⋅ %s ≠ %s [%s]\n%s",
			ErrUnsatisfiedConstraint, va.String(), vb.String(), vc.String(), cs.paths[cs.curPath],
			debug.Stack())
	}
	return nil
}

func (cs *R1CS) OpenNamespace(name string) func() {
	cs.nsStack = append(cs.nsStack, name)
	cs.curPath = cs.internPath()
	return func() {
		cs.nsStack = cs.nsStack[:len(cs.nsStack)-1]
		cs.curPath = cs.internPath()
	}
}

func (cs *R1CS) internPath() int {
	p := ""
	for i, s := range cs.nsStack {
		if i > 0 {
			p += "/"
		}
		p += s
	}
	if id, ok := cs.pathIDs[p]; ok {
		return id
	}
	id := len(cs.paths)
	cs.paths = append(cs.paths, p)
	cs.pathIDs[p] = id
	return id
}

func (cs *R1CS) ReadWitness(w Wire) (fr.Element, bool) {
	if !cs.witness || !cs.assigned.Test(uint(w)) {
		return fr.Element{}, false
	}
	return cs.values[w], true
}

// MarkPublic flags a wire as a public input of the system.
func (cs *R1CS) MarkPublic(w Wire) {
	cs.public = append(cs.public, w)
}

// eval computes the concrete value of a linear combination; ok is false if any
// referenced wire has no assignment.
func (cs *R1CS) eval(lc LinearCombination) (fr.Element, bool) {
	var res, tmp fr.Element
	for _, t := range lc {
		if !cs.assigned.Test(uint(t.Wire)) {
			return fr.Element{}, false
		}
		tmp.Mul(&t.Coeff, &cs.values[t.Wire])
		res.Add(&res, &tmp)
	}
	return res, true
}

// IsWitness reports whether the system tracks witness values.
func (cs *R1CS) IsWitness() bool { return cs.witness }

// NbConstraints returns the number of recorded constraints.
func (cs *R1CS) NbConstraints() int { return len(cs.constraints) }

// NbWires returns the number of allocated wires, the ONE wire included.
func (cs *R1CS) NbWires() int { return len(cs.values) }

// NbPublic returns the number of public wires, the ONE wire included.
func (cs *R1CS) NbPublic() int { return len(cs.public) }

// Constraint returns the i-th recorded constraint and the namespace path it
// was recorded under.
func (cs *R1CS) Constraint(i int) (R1C, string) {
	c := cs.constraints[i]
	return c, cs.paths[c.PathID]
}
