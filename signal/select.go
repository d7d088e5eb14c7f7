package signal

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Select returns i1 when s = 1 and i2 when s = 0, for a cost of exactly one
// multiplication: first = s·(i1-i2), result = first + i2. The selector is
// boolean-asserted here; callers that already asserted it pay nothing extra.
func (b *Builder) Select(s, i1, i2 Signal) (Signal, error) {
	if err := b.AssertIsBoolean(s); err != nil {
		return Signal{}, err
	}

	if c, ok := s.AsConstant(); ok {
		if c.IsOne() {
			return i1, nil
		}
		return i2, nil
	}

	delta := b.Sub(i1, i2)
	first, err := b.Mul(s, delta)
	if err != nil {
		return Signal{}, err
	}
	return b.Add(first, i2), nil
}

// Lookup2 performs a two-bit lookup between c0, c1, c2, c3 keyed by bits b0
// (low) and b1 (high): it returns c0 for (0,0), c1 for (1,0), c2 for (0,1)
// and c3 for (1,1).
//
// res = c0 + (c1-c0)·b0 + (c2-c0)·b1 + (c3-c2-c1+c0)·b0·b1, so with a
// constant table the only multiplication is the shared b0·b1 product, which
// the caller may pass in to amortize across lookups.
func (b *Builder) Lookup2(b0, b1 Signal, c0, c1, c2, c3 Signal) (Signal, error) {
	if err := b.AssertIsBoolean(b0); err != nil {
		return Signal{}, err
	}
	if err := b.AssertIsBoolean(b1); err != nil {
		return Signal{}, err
	}
	prod, err := b.Mul(b0, b1)
	if err != nil {
		return Signal{}, err
	}
	return b.lookup2(b0, b1, prod, c0, c1, c2, c3)
}

// lookup2 is Lookup2 with the b0·b1 product supplied by the caller.
func (b *Builder) lookup2(b0, b1, prod Signal, c0, c1, c2, c3 Signal) (Signal, error) {
	t1, err := b.Mul(b.Sub(c1, c0), b0)
	if err != nil {
		return Signal{}, err
	}
	t2, err := b.Mul(b.Sub(c2, c0), b1)
	if err != nil {
		return Signal{}, err
	}
	t3, err := b.Mul(b.Add(b.Sub(c3, c2), b.Sub(c0, c1)), prod)
	if err != nil {
		return Signal{}, err
	}
	return b.Add(c0, t1, t2, t3), nil
}

// IsZero returns 1 when i = 0 and 0 otherwise, using a witness-seeded
// indicator m with the three-constraint encoding
//
//	i·m = 0, m·(1-m) = 0, (m+i)·inv = 1.
func (b *Builder) IsZero(i Signal) (Signal, error) {
	if c, ok := i.AsConstant(); ok {
		if c.IsZero() {
			return One(), nil
		}
		return Zero(), nil
	}

	var seed *fr.Element
	if i.hasVal {
		var v fr.Element
		if i.val.IsZero() {
			v.SetOne()
		}
		seed = &v
	}
	m, err := b.Alloc(seed)
	if err != nil {
		return Signal{}, err
	}
	// m = 0 whenever i ≠ 0
	if err := b.sys.Enforce(i.lc(), m.lc(), Zero().lc()); err != nil {
		return Signal{}, err
	}
	if err := b.AssertIsBoolean(m); err != nil {
		return Signal{}, err
	}
	// m = 1 whenever i = 0
	if _, err := b.Inverse(b.Add(m, i)); err != nil {
		return Signal{}, err
	}
	return m, nil
}
