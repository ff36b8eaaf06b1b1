package umbral

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/umbral-go/umbral-pre/internal/curve"
)

func TestCapsuleCorrectnessEquation(t *testing.T) {
	sk, err := RandomSecretKey()
	require.NoError(t, err)

	capsule, _, err := encapsulate(sk.PublicKey())
	require.NoError(t, err)
	require.True(t, capsule.Verify())
}

func TestCapsuleSerializationRoundTrip(t *testing.T) {
	sk, err := RandomSecretKey()
	require.NoError(t, err)

	capsule, _, err := encapsulate(sk.PublicKey())
	require.NoError(t, err)

	raw := capsule.ToBytes()
	back, err := CapsuleFromBytes(raw)
	require.NoError(t, err)
	require.Equal(t, raw, back.ToBytes())
	require.True(t, back.Verify())
}

func TestCapsuleVerifyRejectsTamperedS(t *testing.T) {
	sk, err := RandomSecretKey()
	require.NoError(t, err)

	capsule, _, err := encapsulate(sk.PublicKey())
	require.NoError(t, err)

	capsule.s = capsule.s.Add(curve.OneScalar())
	require.False(t, capsule.Verify())
}

func TestCapsuleFromBytesRejectsTamperedBytes(t *testing.T) {
	sk, err := RandomSecretKey()
	require.NoError(t, err)

	capsule, _, err := encapsulate(sk.PublicKey())
	require.NoError(t, err)

	raw := capsule.ToBytes()
	raw[0] ^= 0xFF // flip every bit of the compressed E point's prefix byte

	_, err = CapsuleFromBytes(raw)
	require.Error(t, err)
	var ce *ConstructionError
	require.ErrorAs(t, err, &ce)
}

func TestEncapsulateDecapsulateAgreeOnSharedPoint(t *testing.T) {
	sk, err := RandomSecretKey()
	require.NoError(t, err)

	capsule, sharedPoint, err := encapsulate(sk.PublicKey())
	require.NoError(t, err)

	recovered := decapsulateOriginal(sk, capsule)
	require.True(t, sharedPoint.Equal(recovered))
}
