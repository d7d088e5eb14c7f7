// Package merkle verifies Merkle membership proofs in-circuit, with tree
// nodes compressed by Poseidon2.
package merkle

import (
	"errors"

	"github.com/sigil-zk/sigil/signal"
	"github.com/sigil-zk/sigil/std/hash/poseidon2"
)

// ErrLengthMismatch is returned when the sibling and direction slices
// disagree in length. It is a structural error: no constraints have been
// recorded when it is returned.
var ErrLengthMismatch = errors.New("merkle: one sibling and one direction bit per level")

// RootFromPath recomputes the root committed by a Merkle path. directions[i]
// is a boolean signal: 0 when the running node is the left child at level i,
// 1 when it is the right child. Each level costs one Select plus one
// compression; the other operand slot is recovered algebraically as
// (running + sibling) - left.
func RootFromPath(api *signal.Builder, h *poseidon2.Permutation, leaf signal.Signal, siblings, directions []signal.Signal) (signal.Signal, error) {
	if len(siblings) != len(directions) {
		return signal.Signal{}, ErrLengthMismatch
	}

	running := leaf
	for i := range siblings {
		left, err := api.Select(directions[i], siblings[i], running)
		if err != nil {
			return signal.Signal{}, err
		}
		right := api.Sub(api.Add(running, siblings[i]), left)
		running, err = h.Compress(left, right)
		if err != nil {
			return signal.Signal{}, err
		}
	}
	return running, nil
}

// VerifyProof recomputes the root from the path and constrains it to equal
// root.
func VerifyProof(api *signal.Builder, h *poseidon2.Permutation, root, leaf signal.Signal, siblings, directions []signal.Signal) error {
	computed, err := RootFromPath(api, h, leaf, siblings, directions)
	if err != nil {
		return err
	}
	return api.AssertIsEqual(computed, root)
}
