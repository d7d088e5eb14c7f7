package signal

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ErrInvalidBitCount is returned for non-positive decomposition widths.
var ErrInvalidBitCount = errors.New("invalid number of bits")

// ToBinary unpacks i into n boolean-asserted bit Signals, little-endian.
// The bits are witness-seeded wires tied back to i by a single linear
// repacking equality, so an out-of-range witness fails at witness time.
func (b *Builder) ToBinary(i Signal, n int) ([]Signal, error) {
	if n <= 0 {
		return nil, ErrInvalidBitCount
	}

	var vi *big.Int
	if i.hasVal {
		vi = i.val.BigInt(new(big.Int))
	}

	bits := make([]Signal, n)
	for k := 0; k < n; k++ {
		var seed *fr.Element
		if vi != nil {
			var e fr.Element
			e.SetUint64(uint64(vi.Bit(k)))
			seed = &e
		}
		s, err := b.Alloc(seed)
		if err != nil {
			return nil, err
		}
		if err := b.AssertIsBoolean(s); err != nil {
			return nil, err
		}
		bits[k] = s
	}

	if err := b.AssertIsEqual(b.FromBinaryUnsafe(bits...), i); err != nil {
		return nil, err
	}
	return bits, nil
}

// FromBinary packs bits, little-endian, into a single Signal, asserting each
// bit boolean first.
func (b *Builder) FromBinary(bits ...Signal) (Signal, error) {
	for _, bit := range bits {
		if err := b.AssertIsBoolean(bit); err != nil {
			return Signal{}, err
		}
	}
	return b.FromBinaryUnsafe(bits...), nil
}

// FromBinaryUnsafe packs bits without boolean assertions; purely linear.
func (b *Builder) FromBinaryUnsafe(bits ...Signal) Signal {
	var c fr.Element
	c.SetOne()
	res := Zero()
	for _, bit := range bits {
		res = b.Add(res, b.MulConstant(bit, c))
		c.Double(&c)
	}
	return res
}
