package merkle

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/sigil-zk/sigil/constraint"
	native "github.com/sigil-zk/sigil/hash/poseidon2"
	"github.com/sigil-zk/sigil/signal"
	"github.com/sigil-zk/sigil/std/hash/poseidon2"
)

func witnessAPI(t *testing.T) (*signal.Builder, *constraint.R1CS) {
	t.Helper()
	sys := constraint.NewWitnessR1CS()
	return signal.NewBuilder(sys), sys
}

func alloc(t *testing.T, api *signal.Builder, v uint64) signal.Signal {
	t.Helper()
	var e fr.Element
	e.SetUint64(v)
	s, err := api.Alloc(&e)
	require.NoError(t, err)
	return s
}

func TestRootFromPath(t *testing.T) {
	api, _ := witnessAPI(t)
	h := poseidon2.NewPermutation(api)

	// leaf 5 with siblings [3, 7]: left child at the bottom level, right
	// child above, so root = H(7, H(5, 3))
	leaf := alloc(t, api, 5)
	siblings := []signal.Signal{alloc(t, api, 3), alloc(t, api, 7)}
	directions := []signal.Signal{alloc(t, api, 0), alloc(t, api, 1)}

	root, err := RootFromPath(api, h, leaf, siblings, directions)
	require.NoError(t, err)

	var l, s0, s1 fr.Element
	l.SetUint64(5)
	s0.SetUint64(3)
	s1.SetUint64(7)
	want := native.Compress(s1, native.Compress(l, s0))

	got, ok := root.Value()
	require.True(t, ok)
	require.True(t, got.Equal(&want), "got %s want %s", got.String(), want.String())
}

func TestRootFromPathLengthMismatch(t *testing.T) {
	api, sys := witnessAPI(t)
	h := poseidon2.NewPermutation(api)

	leaf := alloc(t, api, 1)
	siblings := []signal.Signal{alloc(t, api, 2)}
	before := sys.NbConstraints()

	_, err := RootFromPath(api, h, leaf, siblings, nil)
	require.ErrorIs(t, err, ErrLengthMismatch)
	// structural failure records nothing
	require.Equal(t, before, sys.NbConstraints())
}

func TestVerifyProof(t *testing.T) {
	api, _ := witnessAPI(t)
	h := poseidon2.NewPermutation(api)

	leaf := alloc(t, api, 5)
	siblings := []signal.Signal{alloc(t, api, 3), alloc(t, api, 7)}
	directions := []signal.Signal{alloc(t, api, 0), alloc(t, api, 1)}

	var l, s0, s1 fr.Element
	l.SetUint64(5)
	s0.SetUint64(3)
	s1.SetUint64(7)
	rootNative := native.Compress(s1, native.Compress(l, s0))
	root, err := api.Alloc(&rootNative)
	require.NoError(t, err)

	require.NoError(t, VerifyProof(api, h, root, leaf, siblings, directions))
}

func TestVerifyProofRejectsWrongRoot(t *testing.T) {
	api, _ := witnessAPI(t)
	h := poseidon2.NewPermutation(api)

	leaf := alloc(t, api, 5)
	siblings := []signal.Signal{alloc(t, api, 3), alloc(t, api, 7)}
	directions := []signal.Signal{alloc(t, api, 0), alloc(t, api, 1)}

	err := VerifyProof(api, h, alloc(t, api, 42), leaf, siblings, directions)
	require.ErrorIs(t, err, constraint.ErrUnsatisfiedConstraint)
}

func TestRootFromPathNonBooleanDirection(t *testing.T) {
	api, _ := witnessAPI(t)
	h := poseidon2.NewPermutation(api)

	leaf := alloc(t, api, 5)
	siblings := []signal.Signal{alloc(t, api, 3)}
	directions := []signal.Signal{alloc(t, api, 2)}

	_, err := RootFromPath(api, h, leaf, siblings, directions)
	require.ErrorIs(t, err, constraint.ErrUnsatisfiedConstraint)
}

func TestRootFromPathCostPerLevel(t *testing.T) {
	api, sys := witnessAPI(t)
	h := poseidon2.NewPermutation(api)

	const depth = 8
	leaf := alloc(t, api, 1)
	siblings := make([]signal.Signal, depth)
	directions := make([]signal.Signal, depth)
	for i := range siblings {
		siblings[i] = alloc(t, api, uint64(i+2))
		directions[i] = alloc(t, api, uint64(i%2))
	}
	before := sys.NbConstraints()

	_, err := RootFromPath(api, h, leaf, siblings, directions)
	require.NoError(t, err)

	// per level: one boolean assertion, one select, one compression
	perLevel := 1 + 1 + 3*(8*3+56)
	require.Equal(t, depth*perLevel, sys.NbConstraints()-before)
}
