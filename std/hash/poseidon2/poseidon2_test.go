package poseidon2

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/sigil-zk/sigil/constraint"
	native "github.com/sigil-zk/sigil/hash/poseidon2"
	"github.com/sigil-zk/sigil/signal"
)

func witnessAPI(t *testing.T) (*signal.Builder, *constraint.R1CS) {
	t.Helper()
	sys := constraint.NewWitnessR1CS()
	return signal.NewBuilder(sys), sys
}

func randomElements(t *testing.T, n int) []fr.Element {
	t.Helper()
	out := make([]fr.Element, n)
	for i := range out {
		_, err := out[i].SetRandom()
		require.NoError(t, err)
	}
	return out
}

func TestCompressMatchesNative(t *testing.T) {
	api, sys := witnessAPI(t)
	in := randomElements(t, 2)

	a, err := api.Alloc(&in[0])
	require.NoError(t, err)
	b, err := api.Alloc(&in[1])
	require.NoError(t, err)

	digest, err := NewPermutation(api).Compress(a, b)
	require.NoError(t, err)

	want := native.Compress(in[0], in[1])
	got, ok := digest.Value()
	require.True(t, ok)
	require.True(t, got.Equal(&want), "got %s want %s", got.String(), want.String())

	// three multiplications per S-box, full rounds touch all three lanes
	require.Equal(t, 3*(nbFullRounds*width+nbPartialRounds), sys.NbConstraints())
}

func TestPermutationRejectsWrongWidth(t *testing.T) {
	api, _ := witnessAPI(t)
	state := []signal.Signal{signal.Zero(), signal.One()}
	require.ErrorIs(t, NewPermutation(api).Permutation(state), ErrInvalidSizeBuffer)
}

func TestHashMatchesNative(t *testing.T) {
	api, _ := witnessAPI(t)
	in := randomElements(t, 5)

	sigs := make([]signal.Signal, len(in))
	for i := range in {
		var err error
		sigs[i], err = api.Alloc(&in[i])
		require.NoError(t, err)
	}

	digest, err := NewPermutation(api).Hash(sigs[0], sigs[1:]...)
	require.NoError(t, err)

	want := native.Hash(in[0], in[1:]...)
	got, ok := digest.Value()
	require.True(t, ok)
	require.True(t, got.Equal(&want))
}

func TestCompressConstantInputsStayConstant(t *testing.T) {
	api, sys := witnessAPI(t)

	digest, err := NewPermutation(api).Compress(signal.One(), signal.Zero())
	require.NoError(t, err)

	// a fully constant state folds without allocating anything
	require.Equal(t, signal.Constant, digest.Kind())
	require.Equal(t, 0, sys.NbConstraints())

	one := fr.One()
	var zero fr.Element
	want := native.Compress(one, zero)
	got, ok := digest.AsConstant()
	require.True(t, ok)
	require.True(t, got.Equal(&want))
}
