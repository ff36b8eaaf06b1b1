package umbral

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReencryptBatchOutputDecrypts(t *testing.T) {
	a := newActors(t)
	plaintext := []byte("peace at dawn")

	capsule, ciphertext, err := Encrypt(a.alicePK, plaintext)
	require.NoError(t, err)

	kfrags, err := GenerateKeyFrags(a.aliceSK, a.bobPK, a.signer, 2, 3, true, true)
	require.NoError(t, err)

	cfrags, err := ReencryptBatch(capsule, kfrags, nil)
	require.NoError(t, err)
	require.Len(t, cfrags, 3)

	recovered, err := DecryptReencrypted(a.bobSK, a.alicePK, capsule, cfrags[:2], ciphertext)
	require.NoError(t, err)
	require.Equal(t, plaintext, recovered)
}

func TestVerifyKeyFragBatchAllSucceed(t *testing.T) {
	a := newActors(t)
	kfrags, err := GenerateKeyFrags(a.aliceSK, a.bobPK, a.signer, 2, 3, true, true)
	require.NoError(t, err)

	plain := make([]*KeyFrag, len(kfrags))
	for i, vkf := range kfrags {
		plain[i] = vkf.KeyFrag()
	}

	verified, err := VerifyKeyFragBatch(plain, a.signer.VerifyingKey(), a.alicePK, a.bobPK)
	require.NoError(t, err)
	require.Len(t, verified, len(plain))
}

func TestVerifyKeyFragBatchPropagatesFailure(t *testing.T) {
	a := newActors(t)
	kfrags, err := GenerateKeyFrags(a.aliceSK, a.bobPK, a.signer, 2, 3, true, true)
	require.NoError(t, err)

	plain := make([]*KeyFrag, len(kfrags))
	for i, vkf := range kfrags {
		plain[i] = vkf.KeyFrag()
	}

	otherSK, err := RandomSecretKey()
	require.NoError(t, err)

	_, err = VerifyKeyFragBatch(plain, otherSK.PublicKey(), a.alicePK, a.bobPK)
	require.Error(t, err)
}

func TestVerifyCapsuleFragBatchAllSucceed(t *testing.T) {
	a := newActors(t)
	plaintext := []byte("peace at dawn")

	capsule, _, err := Encrypt(a.alicePK, plaintext)
	require.NoError(t, err)

	kfrags, err := GenerateKeyFrags(a.aliceSK, a.bobPK, a.signer, 2, 3, true, true)
	require.NoError(t, err)

	cfrags, err := ReencryptBatch(capsule, kfrags, nil)
	require.NoError(t, err)

	plain := make([]*CapsuleFrag, len(cfrags))
	for i, vcf := range cfrags {
		plain[i] = vcf.CapsuleFrag()
	}

	verified, err := VerifyCapsuleFragBatch(capsule, plain, a.signer.VerifyingKey(), a.alicePK, a.bobPK, nil)
	require.NoError(t, err)
	require.Len(t, verified, len(plain))
}
