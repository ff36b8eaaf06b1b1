package umbral

import (
	"github.com/umbral-go/umbral-pre/internal/curve"
	"github.com/umbral-go/umbral-pre/internal/hashing"
)

// CapsuleSize is the fixed wire length of a serialized Capsule:
// E(33) || V(33) || s(32).
const CapsuleSize = 2*curve.PointSize + curve.ScalarSize

// Capsule is the public key-encapsulation header (E, V, s); it carries no
// payload. It is produced once by Encrypt and is immutable and freely
// shareable thereafter (spec.md §3).
type Capsule struct {
	E curve.Point
	V curve.Point
	s curve.Scalar
}

func hashCapsulePoints(e, v curve.Point) curve.Scalar {
	return hashing.NewScalarDigest([]byte("CAPSULE_POINTS")).ChainPoint(e).ChainPoint(v).Finalize()
}

// Verify checks the capsule's correctness invariant: G*s == V + E*H(E,V).
// Proxies call this before re-encrypting (spec.md §4.9); callers may also
// call it directly after deserializing a capsule received over the wire.
func (c *Capsule) Verify() bool {
	h := hashCapsulePoints(c.E, c.V)
	lhs := curve.MulGenerator(c.s)
	rhs := c.V.Add(c.E.Mul(h))
	return lhs.Equal(rhs)
}

// ToBytes serializes the capsule to its fixed 98-byte form.
func (c *Capsule) ToBytes() [CapsuleSize]byte {
	var out [CapsuleSize]byte
	eb := c.E.Bytes()
	vb := c.V.Bytes()
	sb := c.s.Bytes()
	off := 0
	off += copy(out[off:], eb[:])
	off += copy(out[off:], vb[:])
	copy(out[off:], sb[:])
	return out
}

// CapsuleFromBytes deserializes a Capsule from its 98-byte wire form.
func CapsuleFromBytes(b [CapsuleSize]byte) (*Capsule, error) {
	var eb, vb [curve.PointSize]byte
	var sb [curve.ScalarSize]byte
	off := 0
	off += copy(eb[:], b[off:off+curve.PointSize])
	off += copy(vb[:], b[off:off+curve.PointSize])
	copy(sb[:], b[off:off+curve.ScalarSize])

	e, err := curve.PointFromBytes(eb)
	if err != nil {
		return nil, &ConstructionError{Entity: "Capsule", Reason: "invalid E point"}
	}
	v, err := curve.PointFromBytes(vb)
	if err != nil {
		return nil, &ConstructionError{Entity: "Capsule", Reason: "invalid V point"}
	}
	s, err := curve.ScalarFromBytes(sb)
	if err != nil {
		return nil, &ConstructionError{Entity: "Capsule", Reason: "scalar s out of range"}
	}
	return &Capsule{E: e, V: v, s: s}, nil
}

// encapsulate runs the KEM step of spec.md §4.5: sample r, u; build the
// capsule (E, V, s); and compute the shared DH point whose compressed
// encoding feeds DEM key derivation.
func encapsulate(alicePK *PublicKey) (*Capsule, curve.Point, error) {
	r, err := curve.RandomNonZeroScalar()
	if err != nil {
		return nil, curve.Point{}, err
	}
	u, err := curve.RandomNonZeroScalar()
	if err != nil {
		return nil, curve.Point{}, err
	}

	e := curve.MulGenerator(r)
	v := curve.MulGenerator(u)
	h := hashCapsulePoints(e, v)
	s := u.Add(r.Mul(h))

	sharedPoint := alicePK.point.Mul(r.Add(u))

	return &Capsule{E: e, V: v, s: s}, sharedPoint, nil
}

// decapsulateOriginal recomputes the KEM shared point from the owning
// secret key: S = (E + V) * alice_sk (spec.md §4.6).
func decapsulateOriginal(aliceSK *SecretKey, c *Capsule) curve.Point {
	return c.E.Add(c.V).Mul(aliceSK.scalar)
}
