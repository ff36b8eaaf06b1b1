package hashing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/umbral-go/umbral-pre/internal/curve"
)

func TestScalarDigestIsDeterministic(t *testing.T) {
	p := curve.Generator()

	a := NewScalarDigest([]byte("CAPSULE_POINTS")).ChainPoint(p).ChainPoint(p).Finalize()
	b := NewScalarDigest([]byte("CAPSULE_POINTS")).ChainPoint(p).ChainPoint(p).Finalize()
	require.True(t, a.Equal(b))
}

func TestScalarDigestDSTChangesOutput(t *testing.T) {
	p := curve.Generator()

	a := NewScalarDigest([]byte("CAPSULE_POINTS")).ChainPoint(p).Finalize()
	b := NewScalarDigest([]byte("SHARED_SECRET")).ChainPoint(p).Finalize()
	require.False(t, a.Equal(b))
}

func TestScalarDigestBoolAffectsOutput(t *testing.T) {
	a := NewScalarDigest([]byte("X")).ChainBool(true).Finalize()
	b := NewScalarDigest([]byte("X")).ChainBool(false).Finalize()
	require.False(t, a.Equal(b))
}

func TestSignatureDigestDeterministic(t *testing.T) {
	a := NewSignatureDigest().Write([]byte("hello")).Finalize()
	b := NewSignatureDigest().Write([]byte("hello")).Finalize()
	require.Equal(t, a, b)
}
