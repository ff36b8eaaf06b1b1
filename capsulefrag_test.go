package umbral

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/umbral-go/umbral-pre/internal/curve"
)

func setupDelegation(t *testing.T, threshold, shares int) (*SecretKey, *PublicKey, *SecretKey, *PublicKey, *Signer, []*VerifiedKeyFrag) {
	t.Helper()
	aliceSK, err := RandomSecretKey()
	require.NoError(t, err)
	alicePK := aliceSK.PublicKey()

	bobSK, err := RandomSecretKey()
	require.NoError(t, err)
	bobPK := bobSK.PublicKey()

	signingSK, err := RandomSecretKey()
	require.NoError(t, err)
	signer := NewSigner(signingSK)

	kfrags, err := GenerateKeyFrags(aliceSK, bobPK, signer, threshold, shares, true, true)
	require.NoError(t, err)

	return aliceSK, alicePK, bobSK, bobPK, signer, kfrags
}

func TestReencryptAndVerifyRoundTrip(t *testing.T) {
	aliceSK, alicePK, _, bobPK, signer, kfrags := setupDelegation(t, 2, 3)

	capsule, sharedPoint, err := encapsulate(alicePK)
	require.NoError(t, err)
	_ = decapsulateOriginal(aliceSK, capsule)
	_ = sharedPoint

	metadata := []byte("context-0")
	vcf, err := Reencrypt(capsule, kfrags[0], metadata)
	require.NoError(t, err)

	verifyingPK := signer.VerifyingKey()
	cf := vcf.CapsuleFrag()
	_, err = cf.VerifyWithKeyFragSignature(
		capsule, verifyingPK, alicePK, bobPK, kfrags[0].KeyFrag().sigForBob, metadata,
	)
	require.NoError(t, err)
}

func TestReencryptRejectsBadMetadata(t *testing.T) {
	_, alicePK, _, bobPK, signer, kfrags := setupDelegation(t, 2, 3)

	capsule, _, err := encapsulate(alicePK)
	require.NoError(t, err)

	vcf, err := Reencrypt(capsule, kfrags[0], []byte("correct"))
	require.NoError(t, err)

	cf := vcf.CapsuleFrag()
	_, err = cf.VerifyWithKeyFragSignature(
		capsule, signer.VerifyingKey(), alicePK, bobPK, kfrags[0].KeyFrag().sigForBob, []byte("wrong"),
	)
	require.Error(t, err)
}

func TestReencryptRejectsTamperedCfrag(t *testing.T) {
	_, alicePK, _, bobPK, signer, kfrags := setupDelegation(t, 2, 3)

	capsule, _, err := encapsulate(alicePK)
	require.NoError(t, err)

	vcf, err := Reencrypt(capsule, kfrags[0], nil)
	require.NoError(t, err)

	cf := vcf.CapsuleFrag()
	tampered := *cf
	tampered.proof.z = tampered.proof.z.Add(curve.OneScalar())

	_, err = tampered.VerifyWithKeyFragSignature(
		capsule, signer.VerifyingKey(), alicePK, bobPK, kfrags[0].KeyFrag().sigForBob, nil,
	)
	require.Error(t, err)
}

func TestReencryptRejectsForgedCapsule(t *testing.T) {
	_, alicePK, _, _, _, kfrags := setupDelegation(t, 2, 3)

	capsule, _, err := encapsulate(alicePK)
	require.NoError(t, err)
	capsule.s = capsule.s.Add(curve.OneScalar())

	_, err = Reencrypt(capsule, kfrags[0], nil)
	require.Error(t, err)
}

func TestCapsuleFragSerializationRoundTrip(t *testing.T) {
	_, alicePK, _, _, _, kfrags := setupDelegation(t, 2, 3)

	capsule, _, err := encapsulate(alicePK)
	require.NoError(t, err)

	vcf, err := Reencrypt(capsule, kfrags[0], []byte("metadata here"))
	require.NoError(t, err)

	raw := vcf.CapsuleFrag().ToBytes()
	back, err := CapsuleFragFromBytes(raw)
	require.NoError(t, err)
	require.Equal(t, raw, back.ToBytes())
}

func TestCapsuleFragSerializationRoundTripNoMetadata(t *testing.T) {
	_, alicePK, _, _, _, kfrags := setupDelegation(t, 2, 3)

	capsule, _, err := encapsulate(alicePK)
	require.NoError(t, err)

	vcf, err := Reencrypt(capsule, kfrags[0], nil)
	require.NoError(t, err)

	raw := vcf.CapsuleFrag().ToBytes()
	back, err := CapsuleFragFromBytes(raw)
	require.NoError(t, err)
	require.Equal(t, raw, back.ToBytes())
}

func TestCapsuleFragFromBytesRejectsTruncated(t *testing.T) {
	_, err := CapsuleFragFromBytes([]byte{0x01, 0x02, 0x03})
	require.Error(t, err)
}
