// Package eddsa verifies Poseidon-challenge EdDSA signatures in-circuit.
package eddsa

import (
	"github.com/sigil-zk/sigil/signal"
	"github.com/sigil-zk/sigil/std/algebra/twistededwards"
	"github.com/sigil-zk/sigil/std/hash/poseidon2"
)

// PublicKey is the signer's point inside the circuit.
type PublicKey struct {
	A twistededwards.Point
}

// Signature is the pair (R, S) inside the circuit.
type Signature struct {
	R twistededwards.Point
	S signal.Signal
}

// Verify constrains sig to be a valid signature on msg under pub:
// [S]·B == R + [c]·A with c the Poseidon2 challenge over (R, A, msg).
// The constraint shape does not depend on the witness; an invalid signature
// surfaces as an unsatisfied constraint at witness time. The public key is
// certified into the prime subgroup unless it already carries a certificate;
// R only needs to be on the curve for the equation to be meaningful.
func Verify(curve *twistededwards.Curve, h *poseidon2.Permutation, sig Signature, msg signal.Signal, pub PublicKey) error {
	a := pub.A
	if !a.Certified() {
		var err error
		a, err = curve.AssertInSubgroup(a)
		if err != nil {
			return err
		}
	}
	if err := curve.AssertIsOnCurve(sig.R); err != nil {
		return err
	}

	c, err := h.Hash(sig.R.X, sig.R.Y, a.X, a.Y, msg)
	if err != nil {
		return err
	}

	sb, err := curve.ScalarMulFixedBase(sig.S, &curve.Params().Base)
	if err != nil {
		return err
	}
	ca, err := curve.ScalarMulVarBase(c, a)
	if err != nil {
		return err
	}
	rhs, err := curve.Add(sig.R, ca)
	if err != nil {
		return err
	}
	return curve.AssertIsEqual(sb, rhs)
}
