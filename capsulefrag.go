package umbral

import (
	"encoding/binary"

	"github.com/umbral-go/umbral-pre/internal/curve"
	"github.com/umbral-go/umbral-pre/internal/hashing"
)

// capsuleFragProof is the Chaum-Pedersen-style two-point equality-of-
// discrete-log proof binding a CapsuleFrag to the capsule, the kfrag
// commitment, and optional per-reencryption metadata (spec.md §4.9).
type capsuleFragProof struct {
	e2, v2, u1, u2 curve.Point
	z              curve.Scalar
	metadata       []byte // nil means "no metadata"
}

// CapsuleFrag is a re-encryption output produced by a proxy from a
// Capsule and a VerifiedKeyFrag.
type CapsuleFrag struct {
	e1, v1    curve.Point
	kfragID   KeyFragID
	precursor curve.Point
	proof     capsuleFragProof
}

// VerifiedCapsuleFrag wraps a CapsuleFrag after it has passed
// CapsuleFrag.Verify. Only verified cfrags enter DecryptReencrypted.
type VerifiedCapsuleFrag struct {
	inner *CapsuleFrag
}

// CapsuleFrag downgrades back to the unverified form, e.g. for
// serialization.
func (v *VerifiedCapsuleFrag) CapsuleFrag() *CapsuleFrag {
	return v.inner
}

func hashCfragVerification(e, e1, e2, v, v1, v2, u, u1, u2 curve.Point, metadata []byte) curve.Scalar {
	d := hashing.NewScalarDigest([]byte("CFRAG_VERIFICATION")).
		ChainPoints(e, e1, e2, v, v1, v2, u, u1, u2)
	if metadata != nil {
		d = d.ChainBytes(metadata)
	}
	return d.Finalize()
}

// Reencrypt transforms capsule into a capsule fragment using a verified
// kfrag, as a semi-trusted proxy would (spec.md §4.9). It first checks the
// capsule's own correctness equation and fails with ReencryptionError if
// that does not hold.
func Reencrypt(capsule *Capsule, vkf *VerifiedKeyFrag, metadata []byte) (*VerifiedCapsuleFrag, error) {
	if !capsule.Verify() {
		return nil, &ReencryptionError{Reason: "capsule correctness check failed"}
	}

	kf := vkf.inner
	e1 := capsule.E.Mul(kf.key)
	v1 := capsule.V.Mul(kf.key)

	t, err := curve.RandomNonZeroScalar()
	if err != nil {
		return nil, err
	}

	e2 := capsule.E.Mul(t)
	v2 := capsule.V.Mul(t)
	u1 := kf.commitment
	u2 := ParamU().Mul(t)

	h := hashCfragVerification(capsule.E, e1, e2, capsule.V, v1, v2, ParamU(), u1, u2, metadata)
	z := t.Add(h.Mul(kf.key))

	cf := &CapsuleFrag{
		e1:        e1,
		v1:        v1,
		kfragID:   kf.id,
		precursor: kf.precursor,
		proof: capsuleFragProof{
			e2: e2, v2: v2, u1: u1, u2: u2, z: z,
			metadata: metadata,
		},
	}
	return &VerifiedCapsuleFrag{inner: cf}, nil
}

// Verify checks only the three Chaum-Pedersen equations of spec.md §4.10
// steps 1-4: it does not bind the cfrag to verifyingPK/delegatingPK/
// receivingPK (those parameters are accepted for call-site symmetry with
// VerifyWithKeyFragSignature but are unused here). A caller that needs the
// identity binding -- confirming this cfrag descends from a kfrag the named
// delegator actually issued to the named recipient -- must call
// VerifyWithKeyFragSignature instead. metadata must match whatever
// Reencrypt was called with; a mismatch fails verification (spec.md §8,
// "Metadata binding").
func (cf *CapsuleFrag) Verify(
	capsule *Capsule,
	verifyingPK *PublicKey,
	delegatingPK *PublicKey,
	receivingPK *PublicKey,
	metadata []byte,
) (*VerifiedCapsuleFrag, error) {
	h := hashCfragVerification(
		capsule.E, cf.e1, cf.proof.e2,
		capsule.V, cf.v1, cf.proof.v2,
		ParamU(), cf.proof.u1, cf.proof.u2,
		metadata,
	)

	ez := capsule.E.Mul(cf.proof.z)
	if !ez.Equal(cf.proof.e2.Add(cf.e1.Mul(h))) {
		return nil, &CapsuleFragVerificationError{Reason: "E-side equality-of-discrete-log check failed"}
	}
	vz := capsule.V.Mul(cf.proof.z)
	if !vz.Equal(cf.proof.v2.Add(cf.v1.Mul(h))) {
		return nil, &CapsuleFragVerificationError{Reason: "V-side equality-of-discrete-log check failed"}
	}
	uz := ParamU().Mul(cf.proof.z)
	if !uz.Equal(cf.proof.u2.Add(cf.proof.u1.Mul(h))) {
		return nil, &CapsuleFragVerificationError{Reason: "commitment equality-of-discrete-log check failed"}
	}

	return &VerifiedCapsuleFrag{inner: cf}, nil
}

// VerifyWithKeyFragSignature is Verify plus the independent check of
// spec.md §4.10 step 5: that the originating kfrag's signature_for_bob
// verifies over (kfragID, commitment, precursor, delegatingPK, receivingPK).
// Bob performs this full check; a proxy re-verifying its own output before
// forwarding a cfrag may use Verify alone if it already trusts the kfrag.
func (cf *CapsuleFrag) VerifyWithKeyFragSignature(
	capsule *Capsule,
	verifyingPK *PublicKey,
	delegatingPK *PublicKey,
	receivingPK *PublicKey,
	kfragSignatureForBob *Signature,
	metadata []byte,
) (*VerifiedCapsuleFrag, error) {
	verified, err := cf.Verify(capsule, verifyingPK, delegatingPK, receivingPK, metadata)
	if err != nil {
		return nil, err
	}

	msgBob := kfragSignatureMessage(cf.kfragID, cf.proof.u1, cf.precursor, delegatingPK, receivingPK)
	if !kfragSignatureForBob.Verify(verifyingPK, msgBob) {
		return nil, &CapsuleFragVerificationError{Reason: "kfrag signature_for_bob did not verify"}
	}
	return verified, nil
}

// capsuleFragFixedSize is the length of everything in a serialized
// CapsuleFrag except the variable-length metadata tail.
const capsuleFragFixedSize = 2*curve.PointSize + // e1, v1
	KeyFragIDSize +
	curve.PointSize + // precursor
	4*curve.PointSize + // e2, v2, u1, u2
	curve.ScalarSize + // z
	1 // metadata_present

// ToBytes serializes the cfrag: e1 || v1 || kfrag_id || precursor ||
// e2 || v2 || u1 || u2 || z || metadata_present || [metadata_len ||
// metadata] (spec.md §6).
func (cf *CapsuleFrag) ToBytes() []byte {
	size := capsuleFragFixedSize
	if cf.proof.metadata != nil {
		size += 4 + len(cf.proof.metadata)
	}
	out := make([]byte, size)
	off := 0

	e1b := cf.e1.Bytes()
	off += copy(out[off:], e1b[:])
	v1b := cf.v1.Bytes()
	off += copy(out[off:], v1b[:])
	off += copy(out[off:], cf.kfragID[:])
	pb := cf.precursor.Bytes()
	off += copy(out[off:], pb[:])

	e2b := cf.proof.e2.Bytes()
	off += copy(out[off:], e2b[:])
	v2b := cf.proof.v2.Bytes()
	off += copy(out[off:], v2b[:])
	u1b := cf.proof.u1.Bytes()
	off += copy(out[off:], u1b[:])
	u2b := cf.proof.u2.Bytes()
	off += copy(out[off:], u2b[:])
	zb := cf.proof.z.Bytes()
	off += copy(out[off:], zb[:])

	if cf.proof.metadata == nil {
		out[off] = 0x00
		return out
	}
	out[off] = 0x01
	off++
	binary.BigEndian.PutUint32(out[off:off+4], uint32(len(cf.proof.metadata)))
	off += 4
	copy(out[off:], cf.proof.metadata)
	return out
}

// CapsuleFragFromBytes deserializes a CapsuleFrag from its wire form.
func CapsuleFragFromBytes(b []byte) (*CapsuleFrag, error) {
	if len(b) < capsuleFragFixedSize {
		return nil, &ConstructionError{Entity: "CapsuleFrag", Reason: "truncated buffer"}
	}
	off := 0

	readPoint := func(name string) (curve.Point, error) {
		var arr [curve.PointSize]byte
		copy(arr[:], b[off:off+curve.PointSize])
		off += curve.PointSize
		p, err := curve.PointFromBytes(arr)
		if err != nil {
			return curve.Point{}, &ConstructionError{Entity: "CapsuleFrag", Reason: "invalid " + name + " point"}
		}
		return p, nil
	}

	e1, err := readPoint("e1")
	if err != nil {
		return nil, err
	}
	v1, err := readPoint("v1")
	if err != nil {
		return nil, err
	}

	var kfragID KeyFragID
	copy(kfragID[:], b[off:off+KeyFragIDSize])
	off += KeyFragIDSize

	precursor, err := readPoint("precursor")
	if err != nil {
		return nil, err
	}
	e2, err := readPoint("e2")
	if err != nil {
		return nil, err
	}
	v2, err := readPoint("v2")
	if err != nil {
		return nil, err
	}
	u1, err := readPoint("u1")
	if err != nil {
		return nil, err
	}
	u2, err := readPoint("u2")
	if err != nil {
		return nil, err
	}

	var zBytes [curve.ScalarSize]byte
	copy(zBytes[:], b[off:off+curve.ScalarSize])
	off += curve.ScalarSize
	z, err := curve.ScalarFromBytes(zBytes)
	if err != nil {
		return nil, &ConstructionError{Entity: "CapsuleFrag", Reason: "scalar z out of range"}
	}

	present := b[off]
	off++
	var metadata []byte
	switch present {
	case 0x00:
		metadata = nil
	case 0x01:
		if len(b) < off+4 {
			return nil, &ConstructionError{Entity: "CapsuleFrag", Reason: "truncated metadata length"}
		}
		metaLen := binary.BigEndian.Uint32(b[off : off+4])
		off += 4
		if uint32(len(b)-off) != metaLen {
			return nil, &ConstructionError{Entity: "CapsuleFrag", Reason: "metadata length mismatch"}
		}
		metadata = append([]byte{}, b[off:]...)
	default:
		return nil, &ConstructionError{Entity: "CapsuleFrag", Reason: "metadata_present byte is not 0x00/0x01"}
	}

	return &CapsuleFrag{
		e1: e1, v1: v1,
		kfragID:   kfragID,
		precursor: precursor,
		proof: capsuleFragProof{
			e2: e2, v2: v2, u1: u1, u2: u2, z: z,
			metadata: metadata,
		},
	}, nil
}
