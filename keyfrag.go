package umbral

import (
	"crypto/rand"

	"github.com/umbral-go/umbral-pre/internal/curve"
	"github.com/umbral-go/umbral-pre/internal/hashing"
)

// KeyFragIDSize is the fixed length of a KeyFragID.
const KeyFragIDSize = 32

// KeyFragID uniquely identifies a kfrag within one delegation.
type KeyFragID [KeyFragIDSize]byte

// KeyFragSize is the fixed wire length of a serialized KeyFrag:
// id(32) || key(32) || precursor(33) || commitment(33) || sig_for_proxy(64) || sig_for_bob(64).
const KeyFragSize = KeyFragIDSize + curve.ScalarSize + 2*curve.PointSize + 2*SignatureSize

// KeyFrag is an unverified re-encryption key fragment, as received over
// the wire or freshly minted by GenerateKeyFrags. Only VerifiedKeyFrag
// values may be passed to Reencrypt (spec.md §3, §4.12).
type KeyFrag struct {
	id          KeyFragID
	key         curve.Scalar
	precursor   curve.Point
	commitment  curve.Point
	sigForProxy *Signature
	sigForBob   *Signature
}

// VerifiedKeyFrag wraps a KeyFrag after it has passed KeyFrag.Verify (or
// was produced locally by GenerateKeyFrags, which wraps the kfrags it has
// just signed without re-running Verify on them). Its constructors are private to this package, encoding the
// verification obligation in the type system per spec.md §9.
type VerifiedKeyFrag struct {
	inner *KeyFrag
}

// KeyFrag downgrades back to the unverified form, e.g. for serialization.
func (v *VerifiedKeyFrag) KeyFrag() *KeyFrag {
	return v.inner
}

// sharedSecretScalar derives the blinding scalar d that ties a kfrag
// polynomial's constant term to the delegating secret key: f(0) = sk * d^-1.
// Both the delegator (who knows xs, the ephemeral scalar behind precursor)
// and the receiver (who knows their own secret key instead) can compute the
// same dh = receivingPoint * xs = precursor * receivingSK, so this digest
// only ever needs the three points, never the scalar each side lacks.
func sharedSecretScalar(precursor, receivingPoint, dh curve.Point) curve.Scalar {
	return hashing.NewScalarDigest([]byte("SHARED_SECRET")).
		ChainPoint(precursor).ChainPoint(receivingPoint).ChainPoint(dh).Finalize()
}

// shareIndexScalar derives the Shamir x-coordinate a given kfrag id
// occupies on the delegation polynomial, identically computable by
// whoever reconstructs the secret from a threshold of cfrags.
func shareIndexScalar(precursor, receivingPoint, dh curve.Point, id KeyFragID) curve.Scalar {
	return hashing.NewScalarDigest([]byte("POLYNOMIAL_ARG")).
		ChainPoint(precursor).ChainPoint(receivingPoint).ChainPoint(dh).ChainBytes(id[:]).Finalize()
}

func kfragSignatureMessage(id KeyFragID, commitment, precursor curve.Point, delegatingPK, receivingPK *PublicKey) []byte {
	var buf []byte
	buf = append(buf, id[:]...)
	cb := commitment.Bytes()
	buf = append(buf, cb[:]...)
	pb := precursor.Bytes()
	buf = append(buf, pb[:]...)

	if delegatingPK != nil {
		buf = append(buf, 0x01)
		db := delegatingPK.ToBytes()
		buf = append(buf, db[:]...)
	} else {
		buf = append(buf, 0x00)
	}

	if receivingPK != nil {
		buf = append(buf, 0x01)
		rb := receivingPK.ToBytes()
		buf = append(buf, rb[:]...)
	} else {
		buf = append(buf, 0x00)
	}

	return buf
}

// GenerateKeyFrags Shamir-splits a scalar derived from delegatingSK over a
// polynomial rooted at a delegation precursor, producing shares
// verified kfrags for n proxies, any threshold of which allow
// reconstruction (spec.md §4.7).
func GenerateKeyFrags(
	delegatingSK *SecretKey,
	receivingPK *PublicKey,
	signer *Signer,
	threshold, shares int,
	signDelegatingKey, signReceivingKey bool,
) ([]*VerifiedKeyFrag, error) {
	if threshold < 1 || threshold > shares || shares > 255 {
		return nil, &ConstructionError{Entity: "KeyFrag", Reason: "threshold and shares out of range"}
	}

	xs, err := curve.RandomNonZeroScalar()
	if err != nil {
		return nil, err
	}
	precursor := curve.MulGenerator(xs)

	dh := receivingPK.point.Mul(xs)
	d := sharedSecretScalar(precursor, receivingPK.point, dh)

	f0 := delegatingSK.scalar.Mul(d.Invert())

	coeffs := make([]curve.Scalar, threshold)
	coeffs[0] = f0
	for i := 1; i < threshold; i++ {
		c, err := curve.RandomNonZeroScalar()
		if err != nil {
			return nil, err
		}
		coeffs[i] = c
	}

	delegatingPK := delegatingSK.PublicKey()

	kfrags := make([]*VerifiedKeyFrag, 0, shares)
	for i := 0; i < shares; i++ {
		var id KeyFragID
		if _, err := rand.Read(id[:]); err != nil {
			return nil, err
		}

		shareIndex := shareIndexScalar(precursor, receivingPK.point, dh, id)

		rk := evalPolynomialHorner(coeffs, shareIndex)
		commitment := ParamU().Mul(rk)

		var proxyDelegating, proxyReceiving *PublicKey
		if signDelegatingKey {
			proxyDelegating = delegatingPK
		}
		if signReceivingKey {
			proxyReceiving = receivingPK
		}

		msgProxy := kfragSignatureMessage(id, commitment, precursor, proxyDelegating, proxyReceiving)
		msgBob := kfragSignatureMessage(id, commitment, precursor, delegatingPK, receivingPK)

		kf := &KeyFrag{
			id:          id,
			key:         rk,
			precursor:   precursor,
			commitment:  commitment,
			sigForProxy: signer.Sign(msgProxy),
			sigForBob:   signer.Sign(msgBob),
		}
		kfrags = append(kfrags, &VerifiedKeyFrag{inner: kf})
	}

	return kfrags, nil
}

// evalPolynomialHorner evaluates f(x) = coeffs[0] + coeffs[1]*x + ... by
// Horner's method. coeffs must be non-empty.
func evalPolynomialHorner(coeffs []curve.Scalar, x curve.Scalar) curve.Scalar {
	result := coeffs[len(coeffs)-1]
	for i := len(coeffs) - 2; i >= 0; i-- {
		result = result.Mul(x).Add(coeffs[i])
	}
	return result
}

// Verify first checks that the stored commitment equals U * key, then
// recomputes the proxy-facing signed message using whichever identities
// the caller supplies and checks it against sigForProxy. Either failure --
// a commitment mismatch, or a bad signature (including one caused by
// omitting an identity the kfrag was actually minted with) -- surfaces as
// the single flat KeyFragVerificationError. Point decoding failures are
// reported earlier, by KeyFragFromBytes, as a ConstructionError.
func (kf *KeyFrag) Verify(verifyingPK *PublicKey, delegatingPK, receivingPK *PublicKey) (*VerifiedKeyFrag, error) {
	if !ParamU().Mul(kf.key).Equal(kf.commitment) {
		return nil, &KeyFragVerificationError{Reason: "commitment does not match U * key"}
	}

	msg := kfragSignatureMessage(kf.id, kf.commitment, kf.precursor, delegatingPK, receivingPK)
	if !kf.sigForProxy.Verify(verifyingPK, msg) {
		return nil, &KeyFragVerificationError{Reason: "signature_for_proxy did not verify"}
	}
	return &VerifiedKeyFrag{inner: kf}, nil
}

// ToBytes serializes the kfrag to its fixed 258-byte wire form.
func (kf *KeyFrag) ToBytes() [KeyFragSize]byte {
	var out [KeyFragSize]byte
	off := 0
	off += copy(out[off:], kf.id[:])
	kb := kf.key.Bytes()
	off += copy(out[off:], kb[:])
	pb := kf.precursor.Bytes()
	off += copy(out[off:], pb[:])
	cb := kf.commitment.Bytes()
	off += copy(out[off:], cb[:])
	spb := kf.sigForProxy.ToBytes()
	off += copy(out[off:], spb[:])
	sbb := kf.sigForBob.ToBytes()
	copy(out[off:], sbb[:])
	return out
}

// KeyFragFromBytes deserializes a KeyFrag from its 258-byte wire form.
func KeyFragFromBytes(b [KeyFragSize]byte) (*KeyFrag, error) {
	off := 0

	var id KeyFragID
	off += copy(id[:], b[off:off+KeyFragIDSize])

	var keyBytes [curve.ScalarSize]byte
	off += copy(keyBytes[:], b[off:off+curve.ScalarSize])
	key, err := curve.ScalarFromBytes(keyBytes)
	if err != nil {
		return nil, &ConstructionError{Entity: "KeyFrag", Reason: "key scalar out of range"}
	}

	var precursorBytes [curve.PointSize]byte
	off += copy(precursorBytes[:], b[off:off+curve.PointSize])
	precursor, err := curve.PointFromBytes(precursorBytes)
	if err != nil {
		return nil, &ConstructionError{Entity: "KeyFrag", Reason: "invalid precursor point"}
	}

	var commitmentBytes [curve.PointSize]byte
	off += copy(commitmentBytes[:], b[off:off+curve.PointSize])
	commitment, err := curve.PointFromBytes(commitmentBytes)
	if err != nil {
		return nil, &ConstructionError{Entity: "KeyFrag", Reason: "invalid commitment point"}
	}

	var sigProxyBytes [SignatureSize]byte
	off += copy(sigProxyBytes[:], b[off:off+SignatureSize])
	sigProxy, err := SignatureFromBytes(sigProxyBytes)
	if err != nil {
		return nil, &ConstructionError{Entity: "KeyFrag", Reason: "invalid signature_for_proxy"}
	}

	var sigBobBytes [SignatureSize]byte
	copy(sigBobBytes[:], b[off:off+SignatureSize])
	sigBob, err := SignatureFromBytes(sigBobBytes)
	if err != nil {
		return nil, &ConstructionError{Entity: "KeyFrag", Reason: "invalid signature_for_bob"}
	}

	return &KeyFrag{
		id:          id,
		key:         key,
		precursor:   precursor,
		commitment:  commitment,
		sigForProxy: sigProxy,
		sigForBob:   sigBob,
	}, nil
}
