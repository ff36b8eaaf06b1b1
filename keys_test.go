package umbral

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecretKeyRoundTrip(t *testing.T) {
	sk, err := RandomSecretKey()
	require.NoError(t, err)

	back, err := SecretKeyFromBytes(sk.ToBytes())
	require.NoError(t, err)
	require.Equal(t, sk.ToBytes(), back.ToBytes())
}

func TestSecretKeyFromBytesRejectsZero(t *testing.T) {
	var zero [32]byte
	_, err := SecretKeyFromBytes(zero)
	require.Error(t, err)
	var ce *ConstructionError
	require.ErrorAs(t, err, &ce)
}

func TestPublicKeyRoundTrip(t *testing.T) {
	sk, err := RandomSecretKey()
	require.NoError(t, err)
	pk := sk.PublicKey()

	back, err := PublicKeyFromBytes(pk.ToBytes())
	require.NoError(t, err)
	require.Equal(t, pk.ToBytes(), back.ToBytes())
}

func TestSignAndVerify(t *testing.T) {
	sk, err := RandomSecretKey()
	require.NoError(t, err)
	signer := NewSigner(sk)

	msg := []byte("the quick brown fox")
	sig := signer.Sign(msg)
	require.True(t, sig.Verify(signer.VerifyingKey(), msg))
}

func TestSignIsDeterministic(t *testing.T) {
	sk, err := RandomSecretKey()
	require.NoError(t, err)
	signer := NewSigner(sk)

	msg := []byte("deterministic please")
	sig1 := signer.Sign(msg)
	sig2 := signer.Sign(msg)
	require.Equal(t, sig1.ToBytes(), sig2.ToBytes())
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	sk1, err := RandomSecretKey()
	require.NoError(t, err)
	sk2, err := RandomSecretKey()
	require.NoError(t, err)

	signer1 := NewSigner(sk1)
	msg := []byte("message")
	sig := signer1.Sign(msg)

	require.False(t, sig.Verify(sk2.PublicKey(), msg))
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	sk, err := RandomSecretKey()
	require.NoError(t, err)
	signer := NewSigner(sk)

	sig := signer.Sign([]byte("original"))
	require.False(t, sig.Verify(signer.VerifyingKey(), []byte("tampered")))
}

func TestSignatureRoundTrip(t *testing.T) {
	sk, err := RandomSecretKey()
	require.NoError(t, err)
	signer := NewSigner(sk)
	sig := signer.Sign([]byte("roundtrip"))

	back, err := SignatureFromBytes(sig.ToBytes())
	require.NoError(t, err)
	require.Equal(t, sig.ToBytes(), back.ToBytes())
}

func TestSecretKeyFactoryDeterministic(t *testing.T) {
	var seed [32]byte
	for i := range seed {
		seed[i] = byte(i)
	}
	f := NewSecretKeyFactory(seed)

	k1, err := f.MakeKey([]byte("alice"))
	require.NoError(t, err)
	k2, err := f.MakeKey([]byte("alice"))
	require.NoError(t, err)
	require.Equal(t, k1.ToBytes(), k2.ToBytes())

	k3, err := f.MakeKey([]byte("bob"))
	require.NoError(t, err)
	require.NotEqual(t, k1.ToBytes(), k3.ToBytes())
}
