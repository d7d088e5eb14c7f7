package twistededwards

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"
	"github.com/stretchr/testify/require"

	"github.com/sigil-zk/sigil/constraint"
	"github.com/sigil-zk/sigil/signal"
)

func witnessCurve(t *testing.T) (*Curve, *constraint.R1CS) {
	t.Helper()
	sys := constraint.NewWitnessR1CS()
	return NewCurve(signal.NewBuilder(sys)), sys
}

func randomNativePoint(t *testing.T) twistededwards.PointAffine {
	t.Helper()
	params := GetCurveParams()
	s, err := rand.Int(rand.Reader, &params.Order)
	require.NoError(t, err)
	var p twistededwards.PointAffine
	p.ScalarMultiplication(&params.Base, s)
	return p
}

func allocPoint(t *testing.T, c *Curve, p *twistededwards.PointAffine) Point {
	t.Helper()
	x, err := c.API().Alloc(&p.X)
	require.NoError(t, err)
	y, err := c.API().Alloc(&p.Y)
	require.NoError(t, err)
	return NewPoint(x, y)
}

func requirePointValue(t *testing.T, p Point, want *twistededwards.PointAffine) {
	t.Helper()
	x, ok := p.X.Value()
	require.True(t, ok)
	y, ok := p.Y.Value()
	require.True(t, ok)
	require.True(t, x.Equal(&want.X), "x: got %s want %s", x.String(), want.X.String())
	require.True(t, y.Equal(&want.Y), "y: got %s want %s", y.String(), want.Y.String())
}

func TestCurveParams(t *testing.T) {
	params := GetCurveParams()

	// mB·v² = u³ + mA·u² + u must hold for the image of the base point
	u, v := nativeEdwardsToMont(&params.Base)
	var lhs, rhs, uu fr.Element
	lhs.Mul(&v, &v).Mul(&lhs, &params.MontB)
	uu.Mul(&u, &u)
	rhs.Mul(&uu, &u)
	var t2 fr.Element
	t2.Mul(&uu, &params.MontA)
	rhs.Add(&rhs, &t2).Add(&rhs, &u)
	require.True(t, lhs.Equal(&rhs))
}

func TestAddMatchesNative(t *testing.T) {
	c, _ := witnessCurve(t)
	p1 := randomNativePoint(t)
	p2 := randomNativePoint(t)

	sum, err := c.Add(allocPoint(t, c, &p1), allocPoint(t, c, &p2))
	require.NoError(t, err)

	var want twistededwards.PointAffine
	want.Add(&p1, &p2)
	requirePointValue(t, sum, &want)
}

func TestAddConstantMatchesNative(t *testing.T) {
	c, sys := witnessCurve(t)
	p1 := randomNativePoint(t)
	p2 := randomNativePoint(t)

	sum, err := c.AddConstant(allocPoint(t, c, &p1), &p2)
	require.NoError(t, err)

	var want twistededwards.PointAffine
	want.Add(&p1, &p2)
	requirePointValue(t, sum, &want)
	// one multiplication and two divisions
	require.Equal(t, 3, sys.NbConstraints())
}

func TestDoubleMatchesNative(t *testing.T) {
	c, _ := witnessCurve(t)
	p := randomNativePoint(t)

	d, err := c.Double(allocPoint(t, c, &p))
	require.NoError(t, err)

	var want twistededwards.PointAffine
	want.Double(&p)
	requirePointValue(t, d, &want)
}

func TestAssertIsOnCurve(t *testing.T) {
	c, _ := witnessCurve(t)
	p := randomNativePoint(t)
	require.NoError(t, c.AssertIsOnCurve(allocPoint(t, c, &p)))

	// perturbed x must be rejected
	c2, _ := witnessCurve(t)
	var bad twistededwards.PointAffine
	bad.Set(&p)
	bad.X.Add(&bad.X, &bad.Y)
	err := c2.AssertIsOnCurve(allocPoint(t, c2, &bad))
	require.ErrorIs(t, err, constraint.ErrUnsatisfiedConstraint)
}

func TestScalarMulFixedBase(t *testing.T) {
	params := GetCurveParams()
	s, err := rand.Int(rand.Reader, &params.Order)
	require.NoError(t, err)

	c, sys := witnessCurve(t)
	var sElem fr.Element
	sElem.SetBigInt(s)
	scalar, err := c.API().Alloc(&sElem)
	require.NoError(t, err)

	res, err := c.ScalarMulFixedBase(scalar, &params.Base)
	require.NoError(t, err)
	require.True(t, res.Certified())

	var want twistededwards.PointAffine
	want.ScalarMultiplication(&params.Base, s)
	requirePointValue(t, res, &want)

	// windowed ladder stays around two constraints per scalar bit
	require.Less(t, sys.NbConstraints(), 3*scalarBits+32)
}

func TestScalarMulFixedBaseEdgeScalars(t *testing.T) {
	params := GetCurveParams()
	for _, tc := range []struct {
		name   string
		scalar uint64
	}{
		{"zero", 0},
		{"one", 1},
		{"two", 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := witnessCurve(t)
			var sElem fr.Element
			sElem.SetUint64(tc.scalar)
			scalar, err := c.API().Alloc(&sElem)
			require.NoError(t, err)

			res, err := c.ScalarMulFixedBase(scalar, &params.Base)
			require.NoError(t, err)

			var want twistededwards.PointAffine
			want.ScalarMultiplication(&params.Base, new(big.Int).SetUint64(tc.scalar))
			requirePointValue(t, res, &want)
		})
	}
}

func TestScalarMulVarBase(t *testing.T) {
	params := GetCurveParams()
	p := randomNativePoint(t)
	s, err := rand.Int(rand.Reader, &params.Order)
	require.NoError(t, err)

	c, sys := witnessCurve(t)
	base, err := c.AssertInSubgroup(allocPoint(t, c, &p))
	require.NoError(t, err)

	var sElem fr.Element
	sElem.SetBigInt(s)
	scalar, err := c.API().Alloc(&sElem)
	require.NoError(t, err)

	res, err := c.ScalarMulVarBase(scalar, base)
	require.NoError(t, err)
	require.True(t, res.Certified())

	var want twistededwards.PointAffine
	want.ScalarMultiplication(&p, s)
	requirePointValue(t, res, &want)

	require.Less(t, sys.NbConstraints(), 11*scalarBits)
}

func TestScalarMulVarBaseZero(t *testing.T) {
	p := randomNativePoint(t)

	c, _ := witnessCurve(t)
	var zero fr.Element
	scalar, err := c.API().Alloc(&zero)
	require.NoError(t, err)

	res, err := c.ScalarMulVarBase(scalar, allocPoint(t, c, &p))
	require.NoError(t, err)

	var identity twistededwards.PointAffine
	identity.X.SetZero()
	identity.Y.SetOne()
	requirePointValue(t, res, &identity)
}

func TestAssertInSubgroup(t *testing.T) {
	c, sysBefore := witnessCurve(t)
	p := randomNativePoint(t)

	cp, err := c.AssertInSubgroup(allocPoint(t, c, &p))
	require.NoError(t, err)
	require.True(t, cp.Certified())
	// certification cost is a small constant
	require.Less(t, sysBefore.NbConstraints(), 32)
}

func TestAssertInSubgroupRejectsOffCurve(t *testing.T) {
	c, _ := witnessCurve(t)
	p := randomNativePoint(t)
	p.X.Add(&p.X, &p.Y) // off curve

	_, err := c.AssertInSubgroup(allocPoint(t, c, &p))
	require.ErrorIs(t, err, constraint.ErrUnsatisfiedConstraint)
}

func TestAssertInSubgroupRejectsSmallOrderPoint(t *testing.T) {
	c, _ := witnessCurve(t)

	// (0, -1) satisfies the curve equation but has order two, so the
	// cofactor-multiple check cannot reconcile it with any subgroup witness
	var p twistededwards.PointAffine
	p.X.SetZero()
	p.Y.SetOne()
	p.Y.Neg(&p.Y)

	_, err := c.AssertInSubgroup(allocPoint(t, c, &p))
	require.ErrorIs(t, err, constraint.ErrUnsatisfiedConstraint)
}

func TestNegAndIdentity(t *testing.T) {
	c, _ := witnessCurve(t)
	p := randomNativePoint(t)

	cp := allocPoint(t, c, &p)
	sum, err := c.Add(cp, c.Neg(cp))
	require.NoError(t, err)

	var identity twistededwards.PointAffine
	identity.X.SetZero()
	identity.Y.SetOne()
	requirePointValue(t, sum, &identity)
}
