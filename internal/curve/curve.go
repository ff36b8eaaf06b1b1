// Package curve is an adapter to the ECC backend.
//
// secp256k1 is the canonical binding for this module (see spec.md §3): all
// scalars are 32-byte big-endian field elements reduced mod the group
// order, and all points are 33-byte SEC1-compressed group elements. The
// rest of the module never reaches past this package into
// github.com/decred/dcrd/dcrec/secp256k1/v4 directly, so the backend could
// be swapped for any other prime-order curve with the same sizes by
// coordinated peers.
package curve

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ScalarSize is the fixed wire length of a Scalar.
const ScalarSize = 32

// PointSize is the fixed wire length of a compressed Point.
const PointSize = 33

// ErrConstruction is returned when a byte array does not decode to a valid
// Scalar or Point.
var ErrConstruction = errors.New("curve: invalid encoding")

// Scalar is a field element of the secp256k1 scalar field, in [0, q).
type Scalar struct {
	s secp256k1.ModNScalar
}

// Point is a secp256k1 group element in Jacobian form, normalized to affine
// on every operation that needs it (serialization, equality).
type Point struct {
	p secp256k1.JacobianPoint
}

// ZeroScalar returns the additive identity of the scalar field.
func ZeroScalar() Scalar {
	var s Scalar
	s.s.SetInt(0)
	return s
}

// OneScalar returns the multiplicative identity of the scalar field.
func OneScalar() Scalar {
	var s Scalar
	s.s.SetInt(1)
	return s
}

// RandomNonZeroScalar samples uniformly from [1, q) in near-constant time:
// it rejects the (negligibly probable) zero or out-of-range (>= q) sample
// and resamples, but never branches on the *value* of an accepted sample.
func RandomNonZeroScalar() (Scalar, error) {
	var buf [ScalarSize]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return Scalar{}, err
		}
		var s Scalar
		overflow := s.s.SetBytes(&buf)
		if overflow != 0 {
			continue
		}
		if s.s.IsZero() {
			continue
		}
		return s, nil
	}
}

// IsZero reports whether s is the additive identity.
func (s Scalar) IsZero() bool {
	return s.s.IsZero()
}

// Add returns s + other mod q.
func (s Scalar) Add(other Scalar) Scalar {
	var r Scalar
	r.s.Add2(&s.s, &other.s)
	return r
}

// Sub returns s - other mod q.
func (s Scalar) Sub(other Scalar) Scalar {
	var neg secp256k1.ModNScalar
	neg.Set(&other.s)
	neg.Negate()
	var r Scalar
	r.s.Add2(&s.s, &neg)
	return r
}

// Mul returns s * other mod q.
func (s Scalar) Mul(other Scalar) Scalar {
	var r Scalar
	r.s.Mul2(&s.s, &other.s)
	return r
}

// Invert returns the multiplicative inverse of s. The caller must ensure s
// is nonzero; inverting zero returns zero. Uses the backend's
// InverseNonConst, which is variable-time; decred exposes no constant-time
// inversion.
func (s Scalar) Invert() Scalar {
	var r Scalar
	r.s.Set(&s.s)
	r.s.InverseNonConst()
	return r
}

// Equal reports whether two scalars are the same field element. Prefer this
// over ad hoc byte comparison of partially-derived values.
func (s Scalar) Equal(other Scalar) bool {
	return s.s.Equals(&other.s)
}

// Bytes serializes s to its fixed 32-byte big-endian form. This never fails.
func (s Scalar) Bytes() [ScalarSize]byte {
	return s.s.Bytes()
}

// ScalarFromBytes deserializes a 32-byte big-endian buffer into a Scalar,
// rejecting values that are not strictly less than the group order q.
func ScalarFromBytes(b [ScalarSize]byte) (Scalar, error) {
	var s Scalar
	if overflow := s.s.SetBytes(&b); overflow != 0 {
		return Scalar{}, ErrConstruction
	}
	return s, nil
}

// ScalarFromWideBytes reduces an oversized (e.g. 32-byte hash digest) buffer
// mod q, as used by the hashing layer's from-digest mapping. Unlike
// ScalarFromBytes it never fails: reduction is exactly the point.
func ScalarFromWideBytes(b []byte) Scalar {
	var s Scalar
	s.s.SetByteSlice(b)
	return s
}

// Generator returns the distinguished base point G of the group.
func Generator() Point {
	var p Point
	one := OneScalar()
	secp256k1.ScalarBaseMultNonConst(&one.s, &p.p)
	return p
}

// Identity returns the group identity (point at infinity). It is never
// written to the wire by this module: every entity's deserializer rejects
// it (spec.md §3/§4.1).
func Identity() Point {
	var p Point
	p.p.X.SetInt(0)
	p.p.Y.SetInt(0)
	p.p.Z.SetInt(0)
	return p
}

// IsIdentity reports whether p is the point at infinity.
func (p Point) IsIdentity() bool {
	return p.p.Z.IsZero()
}

// Add returns p + other.
func (p Point) Add(other Point) Point {
	var r Point
	secp256k1.AddNonConst(&p.p, &other.p, &r.p)
	return r
}

// Mul returns p * s. This delegates to the backend's ScalarMultNonConst,
// which is variable-base and explicitly variable-time; decred's secp256k1
// package has no constant-time variable-base multiply. Call sites that pass
// a secret scalar (e.g. a private key or share index) for s inherit that
// timing variability; there is no constant-time alternative available from
// this backend today.
func (p Point) Mul(s Scalar) Point {
	var r Point
	secp256k1.ScalarMultNonConst(&s.s, &p.p, &r.p)
	return r
}

// MulGenerator returns G * s, i.e. the public key matching secret scalar s.
// Uses ScalarBaseMultNonConst, also variable-time; same caveat as Mul.
func MulGenerator(s Scalar) Point {
	var r Point
	secp256k1.ScalarBaseMultNonConst(&s.s, &r.p)
	return r
}

// Equal reports whether two points represent the same group element.
func (p Point) Equal(other Point) bool {
	a := p.p
	b := other.p
	a.ToAffine()
	b.ToAffine()
	return a.X.Equals(&b.X) && a.Y.Equals(&b.Y) && a.Z.Equals(&b.Z)
}

// Bytes serializes p to its fixed 33-byte SEC1-compressed form. This never
// fails for a valid, non-identity point.
func (p Point) Bytes() [PointSize]byte {
	aff := p.p
	aff.ToAffine()
	pub := secp256k1.NewPublicKey(&aff.X, &aff.Y)
	var out [PointSize]byte
	copy(out[:], pub.SerializeCompressed())
	return out
}

// PointFromBytes deserializes the 33-byte SEC1-compressed form, rejecting
// malformed encodings and the identity (which this module never accepts as
// a valid Point per spec.md §3).
func PointFromBytes(b [PointSize]byte) (Point, error) {
	pub, err := secp256k1.ParsePubKey(b[:])
	if err != nil {
		return Point{}, ErrConstruction
	}
	var p Point
	pub.AsJacobian(&p.p)
	if p.IsIdentity() {
		return Point{}, ErrConstruction
	}
	return p, nil
}

// HashToPoint derives a curve point deterministically from a domain seed,
// used once at package initialization to compute the shared generator U
// (spec.md §4, "parameters"). It is a guess-and-increment construction in
// the spirit of the try-and-increment schemes used elsewhere in the pack
// (see other_examples' Elligator/hash-to-point commentary): hash the seed,
// attempt to decode it as a compressed point, and increment a counter
// appended to the seed until decoding succeeds. This runs once at init
// time over public, fixed input, so its variable running time carries no
// secret-dependent side channel.
func HashToPoint(seed []byte) Point {
	counter := byte(0)
	for {
		digest := sha256Sum(append(append([]byte{}, seed...), counter))
		for _, prefix := range [2]byte{0x02, 0x03} {
			var candidate [PointSize]byte
			candidate[0] = prefix
			copy(candidate[1:], digest)
			if p, err := PointFromBytes(candidate); err == nil {
				return p
			}
		}
		counter++
	}
}

func sha256Sum(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}
