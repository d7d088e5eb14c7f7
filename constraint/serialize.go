package constraint

import (
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"
	"github.com/blang/semver/v4"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/fxamacker/cbor/v2"

	"github.com/sigil-zk/sigil/logger"
)

// serialization format version; bumped on layout changes.
var serializationVersion = semver.MustParse("1.0.0")

// snapshot is the serialized form of an R1CS. Witness values are not part of
// it: a constraint system is a shape, the witness belongs to one instance.
type snapshot struct {
	Version     string
	NbWires     uint64
	Public      []Wire
	Paths       []string
	Constraints []R1C
}

// WriteTo serializes the constraint system (shape only, no witness values).
func (cs *R1CS) WriteTo(w io.Writer) (int64, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return 0, err
	}
	data, err := enc.Marshal(snapshot{
		Version:     serializationVersion.String(),
		NbWires:     uint64(len(cs.values)),
		Public:      cs.public,
		Paths:       cs.paths,
		Constraints: cs.constraints,
	})
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom deserializes a constraint system previously written with WriteTo.
// The result is a setup-only system.
func (cs *R1CS) ReadFrom(r io.Reader) (int64, error) {
	counting := &countingReader{r: r}
	var s snapshot
	if err := cbor.NewDecoder(counting).Decode(&s); err != nil {
		return counting.n, err
	}

	objectVersion, err := semver.Parse(s.Version)
	if err != nil {
		return counting.n, fmt.Errorf("when parsing serialization version: %w", err)
	}
	if objectVersion.Major != serializationVersion.Major {
		return counting.n, fmt.Errorf("incompatible serialization version %s (want %s)", objectVersion, serializationVersion)
	}
	if objectVersion.Compare(serializationVersion) != 0 {
		log := logger.Logger()
		log.Warn().Str("binary", serializationVersion.String()).Str("object", objectVersion.String()).Msg("serialization version mismatch with constraint system")
	}

	cs.constraints = s.Constraints
	cs.values = make([]fr.Element, s.NbWires)
	cs.assigned = bitset.New(uint(s.NbWires))
	cs.public = s.Public
	cs.paths = s.Paths
	cs.pathIDs = make(map[string]int, len(s.Paths))
	for i, p := range s.Paths {
		cs.pathIDs[p] = i
	}
	cs.witness = false
	return counting.n, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
