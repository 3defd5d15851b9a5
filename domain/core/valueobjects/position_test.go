package valueobjects

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPosition(t *testing.T) {
	p, err := NewPosition(400, 300)
	require.NoError(t, err)
	assert.Equal(t, 400.0, p.X())
	assert.Equal(t, 300.0, p.Y())
}

func TestNewPosition_RejectsNonFinite(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := NewPosition(bad, 0)
		assert.Error(t, err)
		_, err = NewPosition(0, bad)
		assert.Error(t, err)
	}
}

func TestPosition_DistanceTo(t *testing.T) {
	a, _ := NewPosition(0, 0)
	b, _ := NewPosition(3, 4)
	assert.Equal(t, 5.0, a.DistanceTo(b))
	assert.Equal(t, 5.0, b.DistanceTo(a))
	assert.Equal(t, 0.0, a.DistanceTo(a))
}

func TestPosition_Translate(t *testing.T) {
	p, _ := NewPosition(100, 200)

	moved, err := p.Translate(50, -50)
	require.NoError(t, err)
	assert.Equal(t, 150.0, moved.X())
	assert.Equal(t, 150.0, moved.Y())

	_, err = p.Translate(math.Inf(1), 0)
	assert.Error(t, err)
}

func TestPosition_Equals(t *testing.T) {
	a, _ := NewPosition(1, 2)
	b, _ := NewPosition(1+1e-12, 2)
	c, _ := NewPosition(1.1, 2)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestPosition_Midpoint(t *testing.T) {
	a, _ := NewPosition(0, 0)
	b, _ := NewPosition(10, 20)

	m := a.Midpoint(b)
	assert.Equal(t, 5.0, m.X())
	assert.Equal(t, 10.0, m.Y())
}
