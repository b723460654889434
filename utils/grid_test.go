package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid(t *testing.T) {
	g, err := NewGrid(-10, 10, 11)
	require.NoError(t, err)
	assert.Equal(t, 2., g.H)
	x := g.Nodes()
	assert.Equal(t, []float64{-10, -8, -6, -4, -2, 0, 2, 4, 6, 8, 10}, x)
	assert.Equal(t, g.X(5), x[5])

	_, err = NewGrid(0, 1, 1)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = NewGrid(1, 1, 5)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}
