// Package eddsa implements EdDSA over the BN254 companion curve with a
// Poseidon2 challenge, the native counterpart of the in-circuit verifier.
// The challenge binds (R, A, msg) through the same chained absorb the
// circuit computes, so signatures produced here satisfy the gadget.
package eddsa

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"

	"github.com/sigil-zk/sigil/hash/poseidon2"
)

var ErrInvalidScalar = errors.New("eddsa: scalar outside the subgroup order")

// PublicKey is a point of the prime-order subgroup.
type PublicKey struct {
	A twistededwards.PointAffine
}

// PrivateKey holds the signing scalar and the derived public key.
type PrivateKey struct {
	PublicKey PublicKey

	scalar big.Int
}

// Signature is the pair (R, S) with R a curve point and S a scalar below the
// subgroup order.
type Signature struct {
	R twistededwards.PointAffine
	S fr.Element
}

// GenerateKey samples a private scalar below the subgroup order from r and
// derives the public key.
func GenerateKey(r io.Reader) (*PrivateKey, error) {
	if r == nil {
		r = rand.Reader
	}
	params := twistededwards.GetEdwardsCurve()
	s, err := rand.Int(r, &params.Order)
	if err != nil {
		return nil, err
	}

	var sk PrivateKey
	sk.scalar.Set(s)
	sk.PublicKey.A.ScalarMultiplication(&params.Base, s)
	return &sk, nil
}

// Sign produces a deterministic signature over a single field element. The
// nonce is derived from the signing scalar and the message through the same
// Poseidon2 compression the challenge uses.
func (sk *PrivateKey) Sign(msg fr.Element) (Signature, error) {
	params := twistededwards.GetEdwardsCurve()

	var skElem fr.Element
	skElem.SetBigInt(&sk.scalar)
	nonce := poseidon2.Hash(skElem, msg)
	k := new(big.Int)
	nonce.BigInt(k)
	k.Mod(k, &params.Order)

	var sig Signature
	sig.R.ScalarMultiplication(&params.Base, k)

	c := challenge(&sig.R, &sk.PublicKey.A, msg)

	// S = k + c·s mod order; S stays below the order, hence below the field
	s := new(big.Int).Mul(c, &sk.scalar)
	s.Add(s, k)
	s.Mod(s, &params.Order)
	sig.S.SetBigInt(s)
	return sig, nil
}

// Verify checks [S]·B == R + [c]·A.
func (pk *PublicKey) Verify(sig Signature, msg fr.Element) bool {
	params := twistededwards.GetEdwardsCurve()
	if !sig.R.IsOnCurve() {
		return false
	}
	var sInt big.Int
	sig.S.BigInt(&sInt)
	if sInt.Cmp(&params.Order) >= 0 {
		return false
	}

	c := challenge(&sig.R, &pk.A, msg)

	var lhs, ca, rhs twistededwards.PointAffine
	lhs.ScalarMultiplication(&params.Base, &sInt)
	ca.ScalarMultiplication(&pk.A, c)
	rhs.Add(&sig.R, &ca)
	return lhs.Equal(&rhs)
}

// challenge absorbs (R, A, msg) and returns the digest as an integer. The
// in-circuit verifier consumes the same digest as a scalar; scalar
// multiplication reduces it modulo the subgroup order on both sides.
func challenge(r *twistededwards.PointAffine, a *twistededwards.PointAffine, msg fr.Element) *big.Int {
	digest := poseidon2.Hash(r.X, r.Y, a.X, a.Y, msg)
	return digest.BigInt(new(big.Int))
}
