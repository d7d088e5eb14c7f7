// Package poseidon2 implements the in-circuit Poseidon2 permutation over the
// BN254 scalar field, with the compression and chained-absorb modes used by
// the Merkle and signature gadgets. Round constants come from gnark-crypto,
// so circuit and native evaluations agree.
package poseidon2

import (
	"errors"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	poseidonbn254 "github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"

	"github.com/sigil-zk/sigil/signal"
)

const (
	width           = 3
	nbFullRounds    = 8
	nbPartialRounds = 56
)

var ErrInvalidSizeBuffer = errors.New("the size of the input should match the size of the hash buffer")

var roundKeys = sync.OnceValue(func() [][]fr.Element {
	return poseidonbn254.NewParameters(width, nbFullRounds, nbPartialRounds).RoundKeys
})

// Permutation is the Poseidon2 permutation bound to a builder. The matrix
// multiplications and round-key additions are linear and cost nothing; only
// the x⁵ S-box adds constraints, three multiplications per evaluation.
type Permutation struct {
	api  *signal.Builder
	keys [][]fr.Element
}

// NewPermutation returns the width-3 BN254 permutation.
func NewPermutation(api *signal.Builder) *Permutation {
	return &Permutation{api: api, keys: roundKeys()}
}

// sBox replaces state[i] with state[i]⁵.
func (h *Permutation) sBox(i int, state []signal.Signal) error {
	x := state[i]
	x2, err := h.api.Mul(x, x)
	if err != nil {
		return err
	}
	x4, err := h.api.Mul(x2, x2)
	if err != nil {
		return err
	}
	state[i], err = h.api.Mul(x4, x)
	return err
}

// matMulExternalInPlace multiplies the state by circ(2, 1, 1).
func (h *Permutation) matMulExternalInPlace(state []signal.Signal) {
	sum := h.api.Add(state[0], state[1], state[2])
	state[0] = h.api.Add(state[0], sum)
	state[1] = h.api.Add(state[1], sum)
	state[2] = h.api.Add(state[2], sum)
}

// matMulInternalInPlace multiplies the state by [[2,1,1],[1,2,1],[1,1,3]].
func (h *Permutation) matMulInternalInPlace(state []signal.Signal) {
	var two fr.Element
	two.SetUint64(2)
	sum := h.api.Add(state[0], state[1], state[2])
	state[0] = h.api.Add(state[0], sum)
	state[1] = h.api.Add(state[1], sum)
	state[2] = h.api.Add(h.api.MulConstant(state[2], two), sum)
}

func (h *Permutation) addRoundKeyInPlace(round int, state []signal.Signal) {
	for i := range h.keys[round] {
		state[i] = h.api.Add(state[i], signal.NewConstant(h.keys[round][i]))
	}
}

// Permutation applies the permutation to state in place.
func (h *Permutation) Permutation(state []signal.Signal) error {
	if len(state) != width {
		return ErrInvalidSizeBuffer
	}

	h.matMulExternalInPlace(state)

	rf := nbFullRounds / 2
	for i := 0; i < rf; i++ {
		h.addRoundKeyInPlace(i, state)
		for j := 0; j < width; j++ {
			if err := h.sBox(j, state); err != nil {
				return err
			}
		}
		h.matMulExternalInPlace(state)
	}
	for i := rf; i < rf+nbPartialRounds; i++ {
		h.addRoundKeyInPlace(i, state)
		if err := h.sBox(0, state); err != nil {
			return err
		}
		h.matMulInternalInPlace(state)
	}
	for i := rf + nbPartialRounds; i < nbFullRounds+nbPartialRounds; i++ {
		h.addRoundKeyInPlace(i, state)
		for j := 0; j < width; j++ {
			if err := h.sBox(j, state); err != nil {
				return err
			}
		}
		h.matMulExternalInPlace(state)
	}
	return nil
}

// Compress absorbs two elements into a fresh state and returns the first
// lane: the 2-to-1 compression used for Merkle tree nodes.
func (h *Permutation) Compress(left, right signal.Signal) (signal.Signal, error) {
	state := []signal.Signal{left, right, signal.Zero()}
	if err := h.Permutation(state); err != nil {
		return signal.Signal{}, err
	}
	return state[0], nil
}

// Hash folds any number of elements through the compression function,
// h = Compress(...Compress(Compress(in0, in1), in2)..., inN). Matches the
// native chained absorb.
func (h *Permutation) Hash(first signal.Signal, rest ...signal.Signal) (signal.Signal, error) {
	acc := first
	var err error
	for _, in := range rest {
		acc, err = h.Compress(acc, in)
		if err != nil {
			return signal.Signal{}, err
		}
	}
	return acc, nil
}
