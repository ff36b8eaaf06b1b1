package umbral

import (
	"crypto/hmac"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/umbral-go/umbral-pre/internal/curve"
	"github.com/umbral-go/umbral-pre/internal/hashing"
)

// SecretKey is a nonzero scalar private key.
type SecretKey struct {
	scalar curve.Scalar
}

// RandomSecretKey generates a new SecretKey from the system RNG.
func RandomSecretKey() (*SecretKey, error) {
	s, err := curve.RandomNonZeroScalar()
	if err != nil {
		return nil, err
	}
	return &SecretKey{scalar: s}, nil
}

// PublicKey returns the public key matching sk: G * sk.
func (sk *SecretKey) PublicKey() *PublicKey {
	return &PublicKey{point: curve.MulGenerator(sk.scalar)}
}

// ToBytes serializes sk to its 32-byte canonical form.
func (sk *SecretKey) ToBytes() [curve.ScalarSize]byte {
	return sk.scalar.Bytes()
}

// SecretKeyFromBytes deserializes a SecretKey, rejecting the zero scalar
// and any value not strictly less than the group order.
func SecretKeyFromBytes(b [curve.ScalarSize]byte) (*SecretKey, error) {
	s, err := curve.ScalarFromBytes(b)
	if err != nil {
		return nil, &ConstructionError{Entity: "SecretKey", Reason: "scalar out of range"}
	}
	if s.IsZero() {
		return nil, &ConstructionError{Entity: "SecretKey", Reason: "scalar is zero"}
	}
	return &SecretKey{scalar: s}, nil
}

// PublicKey is a non-identity curve point, G * sk for some secret sk.
type PublicKey struct {
	point curve.Point
}

// PublicKeyFromSecretKey returns G * sk.
func PublicKeyFromSecretKey(sk *SecretKey) *PublicKey {
	return sk.PublicKey()
}

// ToBytes serializes pk to its 33-byte compressed form.
func (pk *PublicKey) ToBytes() [curve.PointSize]byte {
	return pk.point.Bytes()
}

// PublicKeyFromBytes deserializes a PublicKey, rejecting malformed
// encodings and the identity point.
func PublicKeyFromBytes(b [curve.PointSize]byte) (*PublicKey, error) {
	p, err := curve.PointFromBytes(b)
	if err != nil {
		return nil, &ConstructionError{Entity: "PublicKey", Reason: "invalid point encoding"}
	}
	return &PublicKey{point: p}, nil
}

// Signature is an ECDSA (r, s) signature pair over the secp256k1 group
// used throughout this module, serialized as r || s (32 bytes each).
type Signature struct {
	r, s curve.Scalar
}

// SignatureSize is the fixed wire length of a Signature.
const SignatureSize = 2 * curve.ScalarSize

// ToBytes serializes the signature to its 64-byte r || s form.
func (sig *Signature) ToBytes() [SignatureSize]byte {
	var out [SignatureSize]byte
	rb := sig.r.Bytes()
	sb := sig.s.Bytes()
	copy(out[:curve.ScalarSize], rb[:])
	copy(out[curve.ScalarSize:], sb[:])
	return out
}

// SignatureFromBytes deserializes a 64-byte r || s buffer.
func SignatureFromBytes(b [SignatureSize]byte) (*Signature, error) {
	var rb, sb [curve.ScalarSize]byte
	copy(rb[:], b[:curve.ScalarSize])
	copy(sb[:], b[curve.ScalarSize:])
	r, err := curve.ScalarFromBytes(rb)
	if err != nil {
		return nil, &ConstructionError{Entity: "Signature", Reason: "r out of range"}
	}
	s, err := curve.ScalarFromBytes(sb)
	if err != nil {
		return nil, &ConstructionError{Entity: "Signature", Reason: "s out of range"}
	}
	return &Signature{r: r, s: s}, nil
}

// Verify checks an ECDSA signature over message against the public key pk.
func (sig *Signature) Verify(pk *PublicKey, message []byte) bool {
	return ecdsaVerify(pk.point, sig.r, sig.s, message)
}

// Signer owns a secret key and produces deterministic ECDSA signatures
// with it. Keeping signing behind a dedicated type (rather than a bare
// method on SecretKey) mirrors spec.md §4: the delegator signs kfrags with
// a signing identity that is conceptually distinct from any encryption key
// it might also hold.
type Signer struct {
	sk *SecretKey
}

// NewSigner wraps sk as a Signer.
func NewSigner(sk *SecretKey) *Signer {
	return &Signer{sk: sk}
}

// VerifyingKey returns the public key that verifies this signer's
// signatures.
func (s *Signer) VerifyingKey() *PublicKey {
	return s.sk.PublicKey()
}

// Sign produces a deterministic ECDSA signature over SHA-256(message).
func (s *Signer) Sign(message []byte) *Signature {
	digest := hashing.NewSignatureDigest().Write(message).Finalize()
	r, sVal := ecdsaSign(s.sk.scalar, digest)
	return &Signature{r: r, s: sVal}
}

// ecdsaSign implements deterministic (RFC 6979-style) ECDSA signing over
// the secp256k1 group used by internal/curve. The nonce k is derived from
// the secret scalar and the message digest via HMAC-SHA256 rather than
// sampled, so repeated calls with the same key and message are
// reproducible -- matching spec.md §4.3's "deterministic ECDSA signature".
func ecdsaSign(sk curve.Scalar, digest [32]byte) (r, s curve.Scalar) {
	for counter := 0; ; counter++ {
		k := deterministicNonce(sk, digest, counter)
		if k.IsZero() {
			continue
		}
		R := curve.MulGenerator(k)
		rBytes := R.Bytes()
		var rScalarBytes [32]byte
		copy(rScalarBytes[:], rBytes[1:])
		rCandidate, err := curve.ScalarFromBytes(rScalarBytes)
		if err != nil || rCandidate.IsZero() {
			continue
		}

		e := curve.ScalarFromWideBytes(digest[:])
		sCandidate := k.Invert().Mul(e.Add(rCandidate.Mul(sk)))
		if sCandidate.IsZero() {
			continue
		}
		return rCandidate, sCandidate
	}
}

// deterministicNonce derives a candidate ECDSA nonce from the secret
// scalar, the message digest, and a resample counter via HMAC-SHA256,
// following the shape (not the full RFC 6979 bit-counter machinery) of
// the deterministic-k construction.
func deterministicNonce(sk curve.Scalar, digest [32]byte, counter int) curve.Scalar {
	skBytes := sk.Bytes()
	mac := hmac.New(sha256.New, skBytes[:])
	mac.Write(digest[:])
	mac.Write([]byte{byte(counter)})
	sum := mac.Sum(nil)
	return curve.ScalarFromWideBytes(sum)
}

func ecdsaVerify(pk curve.Point, r, s curve.Scalar, message []byte) bool {
	if r.IsZero() || s.IsZero() {
		return false
	}
	digest := hashing.NewSignatureDigest().Write(message).Finalize()
	e := curve.ScalarFromWideBytes(digest[:])

	sInv := s.Invert()
	u1 := e.Mul(sInv)
	u2 := r.Mul(sInv)

	point := curve.MulGenerator(u1).Add(pk.Mul(u2))
	if point.IsIdentity() {
		return false
	}
	xBytes := point.Bytes()
	var rCandidateBytes [32]byte
	copy(rCandidateBytes[:], xBytes[1:])
	rCandidate, err := curve.ScalarFromBytes(rCandidateBytes)
	if err != nil {
		return false
	}
	return rCandidate.Equal(r)
}

// SecretKeyFactory deterministically derives secret keys from a master
// seed plus a label, via HKDF-Extract-then-Expand (spec.md §4.3).
type SecretKeyFactory struct {
	seed [32]byte
}

// NewSecretKeyFactory creates a factory from a 32-byte seed, typically
// sourced from an RNG once and then persisted by the caller.
func NewSecretKeyFactory(seed [32]byte) *SecretKeyFactory {
	return &SecretKeyFactory{seed: seed}
}

// RandomSecretKeyFactory generates a new factory with a fresh random seed.
func RandomSecretKeyFactory(rng io.Reader) (*SecretKeyFactory, error) {
	var seed [32]byte
	if _, err := io.ReadFull(rng, seed[:]); err != nil {
		return nil, &SecretKeyFactoryError{Reason: err.Error()}
	}
	return &SecretKeyFactory{seed: seed}, nil
}

// MakeKey derives a nonzero secret key for label deterministically via
// HKDF-SHA256 (Extract-then-Expand) over (seed, label), resampling only on
// the statistically improbable zero or out-of-range output by varying the
// HKDF "info" suffix.
func (f *SecretKeyFactory) MakeKey(label []byte) (*SecretKey, error) {
	for counter := byte(0); ; counter++ {
		info := append(append([]byte{}, label...), counter)
		reader := hkdf.New(sha256.New, f.seed[:], nil, info)

		var buf [32]byte
		if _, err := io.ReadFull(reader, buf[:]); err != nil {
			return nil, &SecretKeyFactoryError{Reason: err.Error()}
		}
		s, err := curve.ScalarFromBytes(buf)
		if err != nil || s.IsZero() {
			if counter == 255 {
				return nil, &SecretKeyFactoryError{Reason: "exhausted HKDF expand counter without a valid scalar"}
			}
			continue
		}
		return &SecretKey{scalar: s}, nil
	}
}
