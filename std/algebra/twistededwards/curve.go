// Package twistededwards provides the in-circuit point arithmetic of the
// BN254 companion twisted Edwards curve (Baby Jubjub): addition, doubling,
// fixed-base and variable-base scalar multiplication, and subgroup
// certification.
package twistededwards

import (
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"

	"github.com/sigil-zk/sigil/signal"
)

// CurveParams holds the static curve configuration: the Edwards coefficients,
// the derived Montgomery form used by the scalar-multiplication ladders, the
// cofactor and the prime subgroup order.
type CurveParams struct {
	A, D fr.Element // a·x² + y² = 1 + d·x²·y²

	// Montgomery form mB·v² = u³ + mA·u² + u, birationally equivalent:
	// mA = 2(a+d)/(a-d), mB = 4/(a-d)
	MontA, MontB fr.Element

	Cofactor big.Int
	Order    big.Int
	Base     twistededwards.PointAffine
}

var (
	curveParams     *CurveParams
	curveParamsOnce sync.Once
)

// GetCurveParams returns the parameters of the BN254 companion curve,
// derived once from gnark-crypto.
func GetCurveParams() *CurveParams {
	curveParamsOnce.Do(func() {
		ed := twistededwards.GetEdwardsCurve()
		p := &CurveParams{
			A:    ed.A,
			D:    ed.D,
			Base: ed.Base,
		}
		ed.Cofactor.BigInt(&p.Cofactor)
		p.Order.Set(&ed.Order)

		var aMinusD, aPlusD, tmp fr.Element
		aMinusD.Sub(&ed.A, &ed.D)
		aPlusD.Add(&ed.A, &ed.D)
		tmp.Inverse(&aMinusD)
		p.MontA.Double(&aPlusD).Mul(&p.MontA, &tmp)
		p.MontB.SetUint64(4)
		p.MontB.Mul(&p.MontB, &tmp)

		curveParams = p
	})
	return curveParams
}

// Curve carries the builder handle and the static parameters through gadget
// calls.
type Curve struct {
	api    *signal.Builder
	params *CurveParams
}

// NewCurve returns the curve gadget bound to the given builder.
func NewCurve(api *signal.Builder) *Curve {
	return &Curve{api: api, params: GetCurveParams()}
}

// Params returns the static curve parameters.
func (c *Curve) Params() *CurveParams { return c.params }

// API returns the underlying builder.
func (c *Curve) API() *signal.Builder { return c.api }
