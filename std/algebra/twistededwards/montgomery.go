package twistededwards

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/sigil-zk/sigil/signal"
)

// montPoint is an affine point in the Montgomery form of the curve,
// mB·v² = u³ + mA·u² + u. The scalar-multiplication ladders run in this form
// because the chord-and-tangent formulas cost fewer constraints than the
// Edwards ones.
type montPoint struct {
	U, V signal.Signal
}

// montSeed is the point (0, 0), the element of order two. Ladders start the
// accumulator here so that intermediate sums stay in the nontrivial coset and
// the chord formula never degenerates.
func montSeed() montPoint {
	return montPoint{U: signal.Zero(), V: signal.Zero()}
}

// edwardsToMont maps (x, y) to (u, v) = ((1+y)/(1-y), (1+y)/((1-y)·x)).
// The map is undefined at the identity and at (0, -1).
func (c *Curve) edwardsToMont(p Point) (montPoint, error) {
	api := c.api
	one := signal.One()

	u, err := api.DivUnchecked(api.Add(one, p.Y), api.Sub(one, p.Y))
	if err != nil {
		return montPoint{}, err
	}
	v, err := api.DivUnchecked(u, p.X)
	if err != nil {
		return montPoint{}, err
	}
	return montPoint{U: u, V: v}, nil
}

// montToEdwards maps (u, v) back to (x, y) = (u/v, (u-1)/(u+1)).
func (c *Curve) montToEdwards(p montPoint) (Point, error) {
	api := c.api
	one := signal.One()

	x, err := api.DivUnchecked(p.U, p.V)
	if err != nil {
		return Point{}, err
	}
	y, err := api.DivUnchecked(api.Sub(p.U, one), api.Add(p.U, one))
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

// montAdd returns p1 + p2 by the chord formula. The caller guarantees
// p1.U != p2.U; the ladders maintain this by keeping the accumulator in the
// coset of the order-two point.
//
//	λ  = (v2 - v1) / (u2 - u1)
//	u3 = mB·λ² - mA - u1 - u2
//	v3 = λ·(u1 - u3) - v1
func (c *Curve) montAdd(p1, p2 montPoint) (montPoint, error) {
	api := c.api

	lambda, err := api.DivUnchecked(api.Sub(p2.V, p1.V), api.Sub(p2.U, p1.U))
	if err != nil {
		return montPoint{}, err
	}
	ll, err := api.Mul(lambda, lambda)
	if err != nil {
		return montPoint{}, err
	}

	u3 := api.Sub(api.MulConstant(ll, c.params.MontB), signal.NewConstant(c.params.MontA), p1.U, p2.U)
	v3, err := api.Mul(lambda, api.Sub(p1.U, u3))
	if err != nil {
		return montPoint{}, err
	}
	return montPoint{U: u3, V: api.Sub(v3, p1.V)}, nil
}

// montDouble returns 2p by the tangent formula. Undefined at v = 0, which the
// ladders avoid by only doubling points of the prime subgroup.
//
//	λ  = (3u² + 2·mA·u + 1) / (2·mB·v)
//	u3 = mB·λ² - mA - 2u
//	v3 = λ·(u - u3) - v
func (c *Curve) montDouble(p montPoint) (montPoint, error) {
	api := c.api

	uu, err := api.Mul(p.U, p.U)
	if err != nil {
		return montPoint{}, err
	}

	var three, twoA, twoB fr.Element
	three.SetUint64(3)
	twoA.Double(&c.params.MontA)
	twoB.Double(&c.params.MontB)

	num := api.Add(api.MulConstant(uu, three), api.MulConstant(p.U, twoA), signal.One())
	lambda, err := api.DivUnchecked(num, api.MulConstant(p.V, twoB))
	if err != nil {
		return montPoint{}, err
	}
	ll, err := api.Mul(lambda, lambda)
	if err != nil {
		return montPoint{}, err
	}

	u3 := api.Sub(api.MulConstant(ll, c.params.MontB), signal.NewConstant(c.params.MontA), p.U, p.U)
	v3, err := api.Mul(lambda, api.Sub(p.U, u3))
	if err != nil {
		return montPoint{}, err
	}
	return montPoint{U: u3, V: api.Sub(v3, p.V)}, nil
}
