// Package sigil is a circuit-construction layer for zero-knowledge proof
// systems: it lowers compositions of reusable gadgets (Merkle proofs, EdDSA
// signature checks, Poseidon2 hashing, twisted Edwards arithmetic) into a
// rank-1 constraint system suitable for a Groth16-style prover over BN254.
//
// The algebraic core is the signal package: lazily-allocating linear
// combinations over circuit wires, where every multiplication that cannot be
// folded away costs exactly one constraint. Gadgets under std/ are built on
// that rule and optimize their constraint count locally.
package sigil

import (
	"github.com/blang/semver/v4"
)

var Version = semver.MustParse("0.1.0")
