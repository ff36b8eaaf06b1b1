package umbral

import (
	"github.com/umbral-go/umbral-pre/internal/curve"
	"github.com/umbral-go/umbral-pre/internal/dem"
)

// Encrypt creates a Capsule and a DEM ciphertext under alicePK. The
// resulting pair is everything Alice needs to store, or later delegate
// access to, the plaintext (spec.md §4.5).
func Encrypt(alicePK *PublicKey, plaintext []byte) (*Capsule, []byte, error) {
	capsule, sharedPoint, err := encapsulate(alicePK)
	if err != nil {
		return nil, nil, err
	}

	sb := sharedPoint.Bytes()
	key := dem.KeyFromSharedSecret(sb[:])
	capsuleBytes := capsule.ToBytes()
	ciphertext, err := dem.Encrypt(key, plaintext, capsuleBytes[:])
	if err != nil {
		return nil, nil, &EncryptionError{Reason: err.Error()}
	}

	return capsule, ciphertext, nil
}

// DecryptOriginal recovers plaintext using Alice's own secret key, with no
// delegation involved (spec.md §4.6).
func DecryptOriginal(aliceSK *SecretKey, capsule *Capsule, ciphertext []byte) ([]byte, error) {
	sharedPoint := decapsulateOriginal(aliceSK, capsule)
	sb := sharedPoint.Bytes()
	key := dem.KeyFromSharedSecret(sb[:])

	capsuleBytes := capsule.ToBytes()
	plaintext, err := dem.Decrypt(key, ciphertext, capsuleBytes[:])
	if err != nil {
		return nil, &DecryptionError{Reason: err.Error()}
	}
	return plaintext, nil
}

// lagrangeCoefficient computes the Lagrange basis coefficient for index
// xi against the full set of share indices xs, evaluated at 0 -- the
// standard secret-sharing reconstruction weight (spec.md §4.11).
func lagrangeCoefficient(xi curve.Scalar, xs []curve.Scalar) curve.Scalar {
	num := curve.OneScalar()
	den := curve.OneScalar()
	for _, xj := range xs {
		if xj.Equal(xi) {
			continue
		}
		num = num.Mul(xj)
		den = den.Mul(xj.Sub(xi))
	}
	return num.Mul(den.Invert())
}

// DecryptReencrypted reconstructs the shared secret from a threshold of
// verified cfrags and opens the ciphertext for Bob (spec.md §4.11). All
// cfrags must share the same precursor; an empty fragment set, mismatched
// precursors, and duplicate share indices are rejected before the Lagrange
// combination runs.
// alicePK is accepted for interface symmetry with kfrag/cfrag verification
// (Bob already holds it from the delegation handshake); the reconstruction
// arithmetic itself only needs bobSK and the cfrags.
func DecryptReencrypted(
	bobSK *SecretKey,
	alicePK *PublicKey,
	capsule *Capsule,
	cfrags []*VerifiedCapsuleFrag,
	ciphertext []byte,
) ([]byte, error) {
	if len(cfrags) == 0 {
		return nil, &OpenReencryptedError{Kind: NoCapsuleFrags}
	}

	precursor := cfrags[0].inner.precursor
	for _, vcf := range cfrags[1:] {
		if !vcf.inner.precursor.Equal(precursor) {
			return nil, &OpenReencryptedError{Kind: MismatchedFragments}
		}
	}

	bobPK := bobSK.PublicKey()
	dh := precursor.Mul(bobSK.scalar)

	xs := make([]curve.Scalar, len(cfrags))
	seen := make(map[[curve.ScalarSize]byte]bool, len(cfrags))
	for i, vcf := range cfrags {
		xi := shareIndexScalar(precursor, bobPK.point, dh, vcf.inner.kfragID)
		b := xi.Bytes()
		if seen[b] {
			return nil, &OpenReencryptedError{Kind: RepeatingFragments}
		}
		seen[b] = true
		xs[i] = xi
	}

	eAcc := curve.Identity()
	vAcc := curve.Identity()
	for i, vcf := range cfrags {
		lambda := lagrangeCoefficient(xs[i], xs)
		eAcc = eAcc.Add(vcf.inner.e1.Mul(lambda))
		vAcc = vAcc.Add(vcf.inner.v1.Mul(lambda))
	}

	d := sharedSecretScalar(precursor, bobPK.point, dh)
	sharedPoint := eAcc.Add(vAcc).Mul(d)

	sb := sharedPoint.Bytes()
	key := dem.KeyFromSharedSecret(sb[:])
	capsuleBytes := capsule.ToBytes()
	plaintext, err := dem.Decrypt(key, ciphertext, capsuleBytes[:])
	if err != nil {
		return nil, &OpenReencryptedError{Kind: ValidationFailed}
	}
	return plaintext, nil
}
