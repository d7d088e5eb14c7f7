package twistededwards

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"

	"github.com/sigil-zk/sigil/signal"
)

// Point is an affine point of the companion curve inside the circuit. The
// certified flag records that the point has been proven to lie in the prime
// subgroup; it is set by AssertInSubgroup and propagated by the group
// operations.
type Point struct {
	X, Y signal.Signal

	certified bool
}

// NewPoint wraps two signals as an uncertified point. The coordinates are not
// checked; call AssertIsOnCurve or AssertInSubgroup as needed.
func NewPoint(x, y signal.Signal) Point {
	return Point{X: x, Y: y}
}

// NewConstantPoint wraps a native affine point as a constant circuit point.
// Constant points are trusted to be subgroup members.
func NewConstantPoint(p *twistededwards.PointAffine) Point {
	return Point{
		X:         signal.NewConstant(p.X),
		Y:         signal.NewConstant(p.Y),
		certified: true,
	}
}

// Identity returns the neutral element (0, 1) as a constant point.
func Identity() Point {
	one := fr.One()
	return Point{X: signal.Zero(), Y: signal.NewConstant(one), certified: true}
}

// Certified reports whether the point carries a subgroup certificate.
func (p Point) Certified() bool { return p.certified }

// Neg returns (-p.X, p.Y). Negation preserves subgroup membership.
func (c *Curve) Neg(p Point) Point {
	return Point{X: c.api.Neg(p.X), Y: p.Y, certified: p.certified}
}

// Add returns p1 + p2 using the unified Edwards formulas.
//
//	x3 = (x1y2 + x2y1) / (1 + d·x1x2y1y2)
//	y3 = (y1y2 - a·x1x2) / (1 - d·x1x2y1y2)
func (c *Curve) Add(p1, p2 Point) (Point, error) {
	api := c.api

	// u = (y1 - a·x1)·(x2 + y2)
	u1 := api.Sub(p1.Y, api.MulConstant(p1.X, c.params.A))
	u, err := api.Mul(u1, api.Add(p2.X, p2.Y))
	if err != nil {
		return Point{}, err
	}

	v0, err := api.Mul(p2.Y, p1.X)
	if err != nil {
		return Point{}, err
	}
	v1, err := api.Mul(p2.X, p1.Y)
	if err != nil {
		return Point{}, err
	}
	v2, err := api.Mul(api.MulConstant(v0, c.params.D), v1)
	if err != nil {
		return Point{}, err
	}

	one := signal.One()
	x, err := api.DivUnchecked(api.Add(v0, v1), api.Add(one, v2))
	if err != nil {
		return Point{}, err
	}
	// u - v1 + a·v0 = y1y2 - a·x1x2
	num := api.Add(api.Sub(u, v1), api.MulConstant(v0, c.params.A))
	y, err := api.DivUnchecked(num, api.Sub(one, v2))
	if err != nil {
		return Point{}, err
	}

	return Point{X: x, Y: y, certified: p1.certified && p2.certified}, nil
}

// AddConstant returns p + q where q is a native constant point. One operand
// being constant makes the cross products linear, saving three
// multiplications over Add.
func (c *Curve) AddConstant(p Point, q *twistededwards.PointAffine) (Point, error) {
	api := c.api

	var sum fr.Element
	sum.Add(&q.X, &q.Y)

	// (y1 - a·x1)·(qx + qy) is linear in p
	u := api.MulConstant(api.Sub(p.Y, api.MulConstant(p.X, c.params.A)), sum)
	v0 := api.MulConstant(p.X, q.Y)
	v1 := api.MulConstant(p.Y, q.X)
	v2, err := api.Mul(api.MulConstant(v0, c.params.D), v1)
	if err != nil {
		return Point{}, err
	}

	one := signal.One()
	x, err := api.DivUnchecked(api.Add(v0, v1), api.Add(one, v2))
	if err != nil {
		return Point{}, err
	}
	num := api.Add(api.Sub(u, v1), api.MulConstant(v0, c.params.A))
	y, err := api.DivUnchecked(num, api.Sub(one, v2))
	if err != nil {
		return Point{}, err
	}

	return Point{X: x, Y: y, certified: p.certified}, nil
}

// Double returns 2p. Doubling specializes the unified formulas and saves one
// multiplication.
func (c *Curve) Double(p Point) (Point, error) {
	api := c.api

	u, err := api.Mul(p.X, p.Y)
	if err != nil {
		return Point{}, err
	}
	v, err := api.Mul(p.X, p.X)
	if err != nil {
		return Point{}, err
	}
	w, err := api.Mul(p.Y, p.Y)
	if err != nil {
		return Point{}, err
	}

	av := api.MulConstant(v, c.params.A)
	two := signal.NewConstantUint64(2)

	x, err := api.DivUnchecked(api.Add(u, u), api.Add(w, av))
	if err != nil {
		return Point{}, err
	}
	y, err := api.DivUnchecked(api.Sub(w, av), api.Sub(two, w, av))
	if err != nil {
		return Point{}, err
	}

	return Point{X: x, Y: y, certified: p.certified}, nil
}

// AssertIsOnCurve constrains a·x² + y² == 1 + d·x²·y².
func (c *Curve) AssertIsOnCurve(p Point) error {
	api := c.api

	xx, err := api.Mul(p.X, p.X)
	if err != nil {
		return err
	}
	yy, err := api.Mul(p.Y, p.Y)
	if err != nil {
		return err
	}
	dxxyy, err := api.Mul(api.MulConstant(xx, c.params.D), yy)
	if err != nil {
		return err
	}

	lhs := api.Add(api.MulConstant(xx, c.params.A), yy)
	rhs := api.Add(signal.One(), dxxyy)
	return api.AssertIsEqual(lhs, rhs)
}

// AssertIsEqual constrains both coordinates of p1 and p2 to match.
func (c *Curve) AssertIsEqual(p1, p2 Point) error {
	if err := c.api.AssertIsEqual(p1.X, p2.X); err != nil {
		return err
	}
	return c.api.AssertIsEqual(p1.Y, p2.Y)
}

// Select returns p1 when b is 1 and p2 when b is 0.
func (c *Curve) Select(b signal.Signal, p1, p2 Point) (Point, error) {
	x, err := c.api.Select(b, p1.X, p2.X)
	if err != nil {
		return Point{}, err
	}
	y, err := c.api.Select(b, p1.Y, p2.Y)
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y, certified: p1.certified && p2.certified}, nil
}
