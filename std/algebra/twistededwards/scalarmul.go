package twistededwards

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"

	"github.com/sigil-zk/sigil/signal"
)

// scalarBits is the width of the scalar decomposition. Scalars are field
// elements and are consumed modulo the field characteristic.
const scalarBits = fr.Bits

// ScalarMulFixedBase returns [scalar]·base for a base point known at compile
// time. The scalar is decomposed into 2-bit windows; each window selects one
// of four precomputed Montgomery points from a constant table and folds it
// into the accumulator with a chord addition, roughly two constraints per
// scalar bit.
//
// Table entries for window w hold (d+1)·4^w·base for digits d in 0..3. The
// +1 offset keeps every entry off the identity so the table is expressible
// in affine Montgomery coordinates; the accumulated surplus of one base
// multiple per window is removed by a single constant Edwards addition at
// the end. The accumulator is seeded with the order-two point (0, 0), which
// keeps every chord well defined, and the seed is cancelled for free on the
// way back to Edwards form.
func (c *Curve) ScalarMulFixedBase(scalar signal.Signal, base *twistededwards.PointAffine) (Point, error) {
	api := c.api
	windows := (scalarBits + 1) / 2

	bits, err := api.ToBinary(scalar, 2*windows)
	if err != nil {
		return Point{}, err
	}

	// native precompute of the window tables and the offset sum
	var step, offset, entry twistededwards.PointAffine
	step.Set(base)
	offset.X.SetZero()
	offset.Y.SetOne()
	acc := montSeed()
	for w := 0; w < windows; w++ {
		var uTbl, vTbl [4]fr.Element
		entry.Set(&step)
		for d := 0; d < 4; d++ {
			uTbl[d], vTbl[d] = nativeEdwardsToMont(&entry)
			if d < 3 {
				entry.Add(&entry, &step)
			}
		}
		offset.Add(&offset, &step)
		step.Double(&step).Double(&step)

		b0, b1 := bits[2*w], bits[2*w+1]
		prod, err := api.Mul(b0, b1)
		if err != nil {
			return Point{}, err
		}
		t := montPoint{
			U: lookupConstant(api, b0, b1, prod, uTbl),
			V: lookupConstant(api, b0, b1, prod, vTbl),
		}
		acc, err = c.montAdd(acc, t)
		if err != nil {
			return Point{}, err
		}
	}

	res, err := c.montToEdwards(acc)
	if err != nil {
		return Point{}, err
	}
	// the accumulator carries the order-two seed; adding (0, -1) in Edwards
	// form negates both coordinates, so negating removes it
	res.X = api.Neg(res.X)
	res.Y = api.Neg(res.Y)

	offset.Neg(&offset)
	res, err = c.AddConstant(res, &offset)
	if err != nil {
		return Point{}, err
	}
	res.certified = true
	return res, nil
}

// ScalarMulVarBase returns [scalar]·p for a point only known at witness time.
// A bit-serial Montgomery ladder: one chord addition, two selects and one
// doubling per scalar bit, roughly nine constraints per bit. The base should
// be a certified subgroup point; the chord additions rely on the running
// multiple and the accumulator living in distinct cosets of the order-two
// point.
func (c *Curve) ScalarMulVarBase(scalar signal.Signal, p Point) (Point, error) {
	api := c.api

	bits, err := api.ToBinary(scalar, scalarBits)
	if err != nil {
		return Point{}, err
	}
	base, err := c.edwardsToMont(p)
	if err != nil {
		return Point{}, err
	}

	acc := montSeed()
	for i, bit := range bits {
		sum, err := c.montAdd(acc, base)
		if err != nil {
			return Point{}, err
		}
		u, err := api.Select(bit, sum.U, acc.U)
		if err != nil {
			return Point{}, err
		}
		v, err := api.Select(bit, sum.V, acc.V)
		if err != nil {
			return Point{}, err
		}
		acc = montPoint{U: u, V: v}

		if i != len(bits)-1 {
			base, err = c.montDouble(base)
			if err != nil {
				return Point{}, err
			}
		}
	}

	res, err := c.montToEdwards(acc)
	if err != nil {
		return Point{}, err
	}
	res.X = api.Neg(res.X)
	res.Y = api.Neg(res.Y)
	res.certified = p.certified
	return res, nil
}

// lookupConstant evaluates a four-entry constant table at index b1·2+b0.
// With constant entries the interpolation is linear in the bits and their
// product, so no constraints are added.
func lookupConstant(api *signal.Builder, b0, b1, prod signal.Signal, tbl [4]fr.Element) signal.Signal {
	var d1, d2, d3 fr.Element
	d1.Sub(&tbl[1], &tbl[0])
	d2.Sub(&tbl[2], &tbl[0])
	d3.Sub(&tbl[3], &tbl[2])
	d3.Sub(&d3, &d1)
	return api.Add(
		signal.NewConstant(tbl[0]),
		api.MulConstant(b0, d1),
		api.MulConstant(b1, d2),
		api.MulConstant(prod, d3),
	)
}

// nativeEdwardsToMont converts a native affine Edwards point to Montgomery
// coordinates, u = (1+y)/(1-y) and v = u/x. The caller guarantees the point
// is neither the identity nor (0, -1).
func nativeEdwardsToMont(p *twistededwards.PointAffine) (u, v fr.Element) {
	var one, num, den fr.Element
	one.SetOne()
	num.Add(&one, &p.Y)
	den.Sub(&one, &p.Y)
	den.Inverse(&den)
	u.Mul(&num, &den)
	var xInv fr.Element
	xInv.Inverse(&p.X)
	v.Mul(&u, &xInv)
	return u, v
}
