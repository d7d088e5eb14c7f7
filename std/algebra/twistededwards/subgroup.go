package twistededwards

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
)

// AssertInSubgroup proves that p lies in the prime-order subgroup and
// returns a certified copy. The witness supplies W = [cofactor⁻¹ mod order]·p
// computed natively; the circuit checks that W is on the curve and that
// [cofactor]·W recovers p through log2(cofactor) doublings. The cost is a
// small constant independent of the curve order.
func (c *Curve) AssertInSubgroup(p Point) (Point, error) {
	api := c.api

	var wx, wy *fr.Element
	if api.IsWitness() {
		px, _ := p.X.Value()
		py, _ := p.Y.Value()

		var pn, wn twistededwards.PointAffine
		pn.X = px
		pn.Y = py
		k := new(big.Int).ModInverse(&c.params.Cofactor, &c.params.Order)
		wn.ScalarMultiplication(&pn, k)
		wx, wy = &wn.X, &wn.Y
	}

	x, err := api.Alloc(wx)
	if err != nil {
		return Point{}, err
	}
	y, err := api.Alloc(wy)
	if err != nil {
		return Point{}, err
	}
	w := Point{X: x, Y: y}
	if err := c.AssertIsOnCurve(w); err != nil {
		return Point{}, err
	}

	for i := 0; i < c.params.Cofactor.BitLen()-1; i++ {
		w, err = c.Double(w)
		if err != nil {
			return Point{}, err
		}
	}
	if err := c.AssertIsEqual(w, p); err != nil {
		return Point{}, err
	}

	p.certified = true
	return p, nil
}
