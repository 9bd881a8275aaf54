package chaosgame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniform(t *testing.T) {
	u, err := NewUniform(0.25, 0.75)
	require.NoError(t, err)
	r := NewRuleRng()
	for i := 0; i < 1_000; i++ {
		v := u.Sample(r)
		require.GreaterOrEqual(t, v, 0.25)
		require.Less(t, v, 0.75)
	}
	_, err = NewUniform(1, 0)
	require.ErrorIs(t, err, ErrInvalidParam)
	_, err = NewUniform(math.NaN(), 0)
	require.ErrorIs(t, err, ErrInvalidParam)
}

func TestSkewNormalMean(t *testing.T) {
	s, err := NewSkewNormal(0.5, 0.1, 4)
	require.NoError(t, err)
	r := NewRuleRng()
	const n = 100_000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += s.Sample(r)
	}
	delta := 4 / math.Sqrt(17)
	want := 0.5 + 0.1*delta*math.Sqrt(2/math.Pi)
	assert.InDelta(t, want, sum/n, 2e-3)

	_, err = NewSkewNormal(0, 0, 1)
	require.ErrorIs(t, err, ErrInvalidParam)
	_, err = NewSkewNormal(0, -1, 1)
	require.ErrorIs(t, err, ErrInvalidParam)
}

func TestGeometric(t *testing.T) {
	g, err := NewGeometric(0.25)
	require.NoError(t, err)
	r := NewRuleRng()
	const n = 100_000
	sum := 0
	for i := 0; i < n; i++ {
		k := g.Sample(r)
		require.GreaterOrEqual(t, k, 0)
		sum += k
	}
	assert.InDelta(t, 3.0, Real(sum)/n, 0.06)

	one, err := NewGeometric(1)
	require.NoError(t, err)
	assert.Equal(t, 0, one.Sample(r))
	zero, err := NewGeometric(0)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt32, zero.Sample(r))

	_, err = NewGeometric(1.1)
	require.ErrorIs(t, err, ErrInvalidParam)
	_, err = NewGeometric(-0.1)
	require.ErrorIs(t, err, ErrInvalidParam)
}
