// Package hashing provides the two domain-separated digest wrappers shared
// by every scalar-producing or signature-producing operation in this
// module. Every ScalarDigest absorbs its domain separation tag (DST) first,
// as required by spec.md §4.2: changing the DST must change every derived
// scalar, even over identical field data.
package hashing

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"

	"github.com/umbral-go/umbral-pre/internal/curve"
)

// ScalarDigest absorbs tagged, length-unambiguous field data and reduces
// the result to a scalar via the standard from-digest mapping (SHA-256,
// matching the 32-byte scalar field size per spec.md §3).
type ScalarDigest struct {
	h hash.Hash
}

// NewScalarDigest starts a new digest, absorbing the DST as a
// length-prefixed byte string first, ahead of any caller-supplied field.
func NewScalarDigest(dst []byte) *ScalarDigest {
	d := &ScalarDigest{h: sha256.New()}
	d.chainLengthPrefixed(dst)
	return d
}

// ChainBytes absorbs a raw byte slice in its canonical (already-serialized)
// form.
func (d *ScalarDigest) ChainBytes(b []byte) *ScalarDigest {
	d.h.Write(b)
	return d
}

// ChainScalar absorbs the canonical 32-byte encoding of a scalar.
func (d *ScalarDigest) ChainScalar(s curve.Scalar) *ScalarDigest {
	b := s.Bytes()
	d.h.Write(b[:])
	return d
}

// ChainPoint absorbs the canonical 33-byte compressed encoding of a point.
func (d *ScalarDigest) ChainPoint(p curve.Point) *ScalarDigest {
	b := p.Bytes()
	d.h.Write(b[:])
	return d
}

// ChainPoints absorbs several points in argument order.
func (d *ScalarDigest) ChainPoints(ps ...curve.Point) *ScalarDigest {
	for _, p := range ps {
		d.ChainPoint(p)
	}
	return d
}

// ChainBool absorbs a boolean as a single 0x00/0x01 byte.
func (d *ScalarDigest) ChainBool(b bool) *ScalarDigest {
	if b {
		d.h.Write([]byte{0x01})
	} else {
		d.h.Write([]byte{0x00})
	}
	return d
}

func (d *ScalarDigest) chainLengthPrefixed(b []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
	d.h.Write(lenBuf[:])
	d.h.Write(b)
}

// Finalize reduces the accumulated digest modulo the scalar field order,
// producing the resulting field scalar. The digest cannot be reused after
// this call.
func (d *ScalarDigest) Finalize() curve.Scalar {
	sum := d.h.Sum(nil)
	return curve.ScalarFromWideBytes(sum)
}

// SignatureDigest produces the message bytes ECDSA signs over: plain
// SHA-256 of the absorbed content, with no DST (the DST discipline in
// spec.md §4.2 governs scalar-producing digests; ECDSA's own `(r, s)`
// construction binds the signed message directly).
type SignatureDigest struct {
	h hash.Hash
}

// NewSignatureDigest starts a new signature-message digest.
func NewSignatureDigest() *SignatureDigest {
	return &SignatureDigest{h: sha256.New()}
}

// Write absorbs raw bytes into the signature digest.
func (d *SignatureDigest) Write(b []byte) *SignatureDigest {
	d.h.Write(b)
	return d
}

// Finalize returns the 32-byte SHA-256 digest of the absorbed message.
func (d *SignatureDigest) Finalize() [32]byte {
	var out [32]byte
	copy(out[:], d.h.Sum(nil))
	return out
}
