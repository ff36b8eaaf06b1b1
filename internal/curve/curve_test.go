package curve

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratorIsNotIdentity(t *testing.T) {
	g := Generator()
	require.False(t, g.IsIdentity())
}

func TestScalarRoundTrip(t *testing.T) {
	s, err := RandomNonZeroScalar()
	require.NoError(t, err)

	b := s.Bytes()
	back, err := ScalarFromBytes(b)
	require.NoError(t, err)
	require.True(t, s.Equal(back))
}

func TestScalarFromBytesRejectsOverflow(t *testing.T) {
	var max [ScalarSize]byte
	for i := range max {
		max[i] = 0xFF
	}
	_, err := ScalarFromBytes(max)
	require.ErrorIs(t, err, ErrConstruction)
}

func TestPointRoundTrip(t *testing.T) {
	s, err := RandomNonZeroScalar()
	require.NoError(t, err)
	p := MulGenerator(s)

	b := p.Bytes()
	back, err := PointFromBytes(b)
	require.NoError(t, err)
	require.True(t, p.Equal(back))
}

func TestPointFromBytesRejectsIdentity(t *testing.T) {
	var zero [PointSize]byte
	_, err := PointFromBytes(zero)
	require.Error(t, err)
}

func TestScalarArithmeticConsistency(t *testing.T) {
	a, err := RandomNonZeroScalar()
	require.NoError(t, err)
	b, err := RandomNonZeroScalar()
	require.NoError(t, err)

	sum := a.Add(b)
	diff := sum.Sub(b)
	require.True(t, diff.Equal(a))

	inv := a.Invert()
	require.True(t, a.Mul(inv).Equal(OneScalar()))
}

func TestMulDistributesOverGenerator(t *testing.T) {
	a, err := RandomNonZeroScalar()
	require.NoError(t, err)
	b, err := RandomNonZeroScalar()
	require.NoError(t, err)

	lhs := MulGenerator(a.Add(b))
	rhs := MulGenerator(a).Add(MulGenerator(b))
	require.True(t, lhs.Equal(rhs))
}

func TestHashToPointIsDeterministicAndStable(t *testing.T) {
	u1 := HashToPoint([]byte("U"))
	u2 := HashToPoint([]byte("U"))
	require.True(t, u1.Equal(u2))
	require.False(t, u1.Equal(Generator()))

	other := HashToPoint([]byte("V"))
	require.False(t, u1.Equal(other))
}
