// Package poseidon2 provides native Poseidon2 compression over the BN254
// scalar field, mirroring the in-circuit gadget so provers and verifiers can
// compute the same digests outside a circuit.
package poseidon2

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	poseidonbn254 "github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
)

const (
	width           = 3
	nbFullRounds    = 8
	nbPartialRounds = 56
)

var permutation = sync.OnceValue(func() *poseidonbn254.Permutation {
	return poseidonbn254.NewPermutation(width, nbFullRounds, nbPartialRounds)
})

// Compress absorbs two elements into a fresh state and returns the first
// lane of the permuted state.
func Compress(left, right fr.Element) fr.Element {
	state := []fr.Element{left, right, {}}
	if err := permutation().Permutation(state); err != nil {
		// the state width is fixed at compile time
		panic(err)
	}
	return state[0]
}

// Hash folds any number of elements through Compress, left to right.
func Hash(first fr.Element, rest ...fr.Element) fr.Element {
	acc := first
	for _, in := range rest {
		acc = Compress(acc, in)
	}
	return acc
}
