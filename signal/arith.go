package signal

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/sigil-zk/sigil/constraint"
)

// ErrDivisionByZero is returned when the divisor is the structural additive
// identity; it is detected from Signal shape alone, before any constraint is
// recorded.
var ErrDivisionByZero = errors.New("division by the structural zero signal")

// Add returns i1 + i2 + ... in. It merges sorted term lists in time linear in
// their combined size and never allocates a wire.
func (b *Builder) Add(i1, i2 Signal, in ...Signal) Signal {
	res := add(i1, i2, false)
	for _, v := range in {
		res = add(res, v, false)
	}
	return res
}

// Sub returns i1 - i2 - ... in; like Add it never allocates.
func (b *Builder) Sub(i1, i2 Signal, in ...Signal) Signal {
	res := add(i1, i2, true)
	for _, v := range in {
		res = add(res, v, true)
	}
	return res
}

// Neg returns -i.
func (b *Builder) Neg(i Signal) Signal {
	return add(Zero(), i, true)
}

// add merges the two sorted term lists, combining coefficients for equal
// wires and dropping terms whose combined coefficient is zero.
func add(a, o Signal, sub bool) Signal {
	var res Signal
	res.terms = make(constraint.LinearCombination, 0, len(a.terms)+len(o.terms))

	i, j := 0, 0
	for i < len(a.terms) && j < len(o.terms) {
		switch {
		case a.terms[i].Wire < o.terms[j].Wire:
			res.terms = append(res.terms, a.terms[i])
			i++
		case a.terms[i].Wire > o.terms[j].Wire:
			t := o.terms[j]
			if sub {
				t.Coeff.Neg(&t.Coeff)
			}
			res.terms = append(res.terms, t)
			j++
		default:
			t := a.terms[i]
			if sub {
				t.Coeff.Sub(&t.Coeff, &o.terms[j].Coeff)
			} else {
				t.Coeff.Add(&t.Coeff, &o.terms[j].Coeff)
			}
			if !t.Coeff.IsZero() {
				res.terms = append(res.terms, t)
			}
			i++
			j++
		}
	}
	res.terms = append(res.terms, a.terms[i:]...)
	for ; j < len(o.terms); j++ {
		t := o.terms[j]
		if sub {
			t.Coeff.Neg(&t.Coeff)
		}
		res.terms = append(res.terms, t)
	}

	if sub {
		res.offset.Sub(&a.offset, &o.offset)
	} else {
		res.offset.Add(&a.offset, &o.offset)
	}

	if a.hasVal && o.hasVal {
		if sub {
			res.val.Sub(&a.val, &o.val)
		} else {
			res.val.Add(&a.val, &o.val)
		}
		res.hasVal = true
	}
	return res
}

// MulConstant scales every coefficient and the offset by the compile-time
// known constant c; it never allocates.
func (b *Builder) MulConstant(i Signal, c fr.Element) Signal {
	if c.IsZero() {
		return Zero()
	}
	var res Signal
	res.terms = make(constraint.LinearCombination, len(i.terms))
	for k, t := range i.terms {
		res.terms[k].Wire = t.Wire
		res.terms[k].Coeff.Mul(&t.Coeff, &c)
	}
	res.offset.Mul(&i.offset, &c)
	if i.hasVal {
		res.val.Mul(&i.val, &c)
		res.hasVal = true
	}
	return res
}

// Mul returns i1 * i2 * ... in.
//
// This is the layer's central cost rule. If either operand is the structural
// zero the result is immediately the structural zero, whatever the shape of
// the other operand. If either operand is a constant it is distributed over
// the other's terms. Only when both operands carry at least one wire is a new
// wire allocated, with the single bilinear constraint lhs·rhs = wire.
func (b *Builder) Mul(i1, i2 Signal, in ...Signal) (Signal, error) {
	res, err := b.mul(i1, i2)
	if err != nil {
		return Signal{}, err
	}
	for _, v := range in {
		res, err = b.mul(res, v)
		if err != nil {
			return Signal{}, err
		}
	}
	return res, nil
}

func (b *Builder) mul(i1, i2 Signal) (Signal, error) {
	// deliberate short-circuit: the structural zero annihilates any operand,
	// simplifiable or not, without allocation
	if i1.IsZero() || i2.IsZero() {
		return Zero(), nil
	}
	if c, ok := i1.AsConstant(); ok {
		return b.MulConstant(i2, c), nil
	}
	if c, ok := i2.AsConstant(); ok {
		return b.MulConstant(i1, c), nil
	}

	// both operands carry unconstrained wires: one wire, one constraint
	var seed *fr.Element
	if i1.hasVal && i2.hasVal {
		var v fr.Element
		v.Mul(&i1.val, &i2.val)
		seed = &v
	}
	res, err := b.Alloc(seed)
	if err != nil {
		return Signal{}, err
	}
	if err := b.sys.Enforce(i1.lc(), i2.lc(), res.lc()); err != nil {
		return Signal{}, err
	}
	return res, nil
}

// Inverse returns 1/i. It fails with ErrDivisionByZero if i is the structural
// zero; otherwise it allocates an auxiliary witness-inverse wire and enforces
// i·inverse = 1.
func (b *Builder) Inverse(i Signal) (Signal, error) {
	if c, ok := i.AsConstant(); ok {
		if c.IsZero() {
			return Signal{}, ErrDivisionByZero
		}
		c.Inverse(&c)
		return NewConstant(c), nil
	}

	var seed *fr.Element
	if i.hasVal {
		var v fr.Element
		v.Inverse(&i.val) // zero maps to zero; the constraint catches it
		seed = &v
	}
	res, err := b.Alloc(seed)
	if err != nil {
		return Signal{}, err
	}
	if err := b.sys.Enforce(i.lc(), res.lc(), One().lc()); err != nil {
		return Signal{}, err
	}
	return res, nil
}

// Div returns i1/i2, enforcing i2 ≠ 0 through the witness-inverse wire.
func (b *Builder) Div(i1, i2 Signal) (Signal, error) {
	inv, err := b.Inverse(i2)
	if err != nil {
		return Signal{}, err
	}
	return b.Mul(i1, inv)
}

// DivUnchecked returns i1/i2 with a single constraint i2·res = i1. It does
// not enforce i2 ≠ 0: when both witness values are zero the result is the
// witness's choice (zero here). Gadget internals use it where the divisor is
// known nonzero by construction.
func (b *Builder) DivUnchecked(i1, i2 Signal) (Signal, error) {
	if i2.IsZero() {
		return Signal{}, ErrDivisionByZero
	}
	if c, ok := i2.AsConstant(); ok {
		c.Inverse(&c)
		return b.MulConstant(i1, c), nil
	}

	var seed *fr.Element
	if i1.hasVal && i2.hasVal {
		var v fr.Element
		if i2.val.IsZero() {
			v.SetZero()
		} else {
			v.Inverse(&i2.val)
			v.Mul(&v, &i1.val)
		}
		seed = &v
	}
	res, err := b.Alloc(seed)
	if err != nil {
		return Signal{}, err
	}
	if err := b.sys.Enforce(i2.lc(), res.lc(), i1.lc()); err != nil {
		return Signal{}, err
	}
	return res, nil
}
