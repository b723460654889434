package Advection1D

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gofdm/utils"
)

func TestDiscretize(t *testing.T) {
	c := NewAdvection(DefaultDomain(), DefaultShelf())
	{
		d, err := c.Discretize(11, 1, 5)
		require.NoError(t, err)
		assert.InDelta(t, 2., d.Grid.H, 1.e-14)
		assert.InDelta(t, 0.4, d.Dt, 1.e-14)
		assert.Equal(t, int(math.Ceil(1/d.Dt))+1, d.Layers)
	}
	{
		d, err := c.Discretize(101, 0.25, 5)
		require.NoError(t, err)
		assert.InDelta(t, 0.2, d.Grid.H, 1.e-14)
		assert.InDelta(t, 0.01, d.Dt, 1.e-14)
		T := d.Times(0)
		assert.Equal(t, 0., T[0])
		assert.True(t, T[len(T)-1] >= 1.-1.e-12)
	}
	// Negative speed uses |speed| for the time step
	{
		d, err := c.Discretize(11, 0.5, -5)
		require.NoError(t, err)
		assert.InDelta(t, 0.2, d.Dt, 1.e-14)
	}
}

func TestInvalidParameters(t *testing.T) {
	c := NewAdvection(DefaultDomain(), DefaultShelf())
	cases := []struct {
		name      string
		nodeCount int
		ratio     float64
		speed     float64
	}{
		{"zero speed", 11, 1, 0},
		{"one node", 1, 1, 5},
		{"zero ratio", 11, 0, 5},
		{"negative ratio", 11, -0.5, 5},
		{"wave leaves domain", 11, 1, 25},
		{"nan speed", 11, 1, math.NaN()},
		{"layer count overflows", 11, 1.e-300, 5},
		{"too many cells", 11, 1.e-12, 5},
		{"time step underflows", 11, 1.e-320, 5},
		{"too many nodes", MaxCells, 1, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Solve(tc.nodeCount, tc.ratio, tc.speed)
			assert.True(t, errors.Is(err, utils.ErrInvalidParameter), "got %v", err)
			_, err = c.Exact(tc.nodeCount, tc.ratio, tc.speed)
			assert.True(t, errors.Is(err, utils.ErrInvalidParameter), "got %v", err)
		})
	}
}

func TestDiscretizeCellLimit(t *testing.T) {
	c := NewAdvection(DefaultDomain(), DefaultShelf())
	for _, r := range []float64{1.e-300, 1.e-12} {
		d, err := c.Discretize(11, r, 5)
		assert.True(t, errors.Is(err, utils.ErrInvalidParameter), "ratio %v: got %v", r, err)
		assert.Zero(t, d.Layers)
	}
	// h = 2, t = 2e-6: 500001 layers of 11 nodes fits
	d, err := c.Discretize(11, 5.e-6, 5)
	require.NoError(t, err)
	assert.Equal(t, 500001, d.Layers)
	assert.LessOrEqual(t, d.Layers*11, MaxCells)
}

func TestInitialLayerMatchesExact(t *testing.T) {
	c := NewAdvection(DefaultDomain(), DefaultShelf())
	for _, N := range []int{2, 11, 101} {
		for _, r := range []float64{0.25, 0.5, 1, 1.25} {
			for _, a := range []float64{5, 1, -5} {
				U, err := c.Solve(N, r, a)
				require.NoError(t, err)
				UE, err := c.Exact(N, r, a)
				require.NoError(t, err)
				require.Equal(t, U.Layers(), UE.Layers())
				assert.Equal(t, UE.Layer(0), U.Layer(0), "N=%d r=%v a=%v", N, r, a)
			}
		}
	}
}

func TestUnitRatioIsExactTranslation(t *testing.T) {
	c := NewAdvection(DefaultDomain(), DefaultShelf())
	for _, N := range []int{11, 101} {
		for _, a := range []float64{5, -5} {
			U, err := c.Solve(N, 1, a)
			require.NoError(t, err)
			UE, err := c.Exact(N, 1, a)
			require.NoError(t, err)
			for ti := 0; ti < U.Layers(); ti++ {
				assert.InDeltaSlice(t, UE.Layer(ti), U.Layer(ti), 1.e-9, "N=%d a=%v layer=%d", N, a, ti)
			}
			assert.InDelta(t, 0., MaxError(U, UE), 1.e-9)
		}
	}
}

func TestMonotoneForStableRatios(t *testing.T) {
	var (
		c     = NewAdvection(DefaultDomain(), DefaultShelf())
		shelf = c.Shelf
		tol   = 1.e-12
	)
	for _, N := range []int{11, 101} {
		for _, r := range []float64{0.25, 0.5, 1} {
			U, err := c.Solve(N, r, 5)
			require.NoError(t, err)
			for ti := 0; ti < U.Layers(); ti++ {
				row := U.Layer(ti)
				for xi := 1; xi < len(row); xi++ {
					require.LessOrEqual(t, row[xi], row[xi-1]+tol, "N=%d r=%v layer=%d node=%d", N, r, ti, xi)
				}
			}
			assert.LessOrEqual(t, U.U.Max(), shelf.High+tol)
			assert.GreaterOrEqual(t, U.U.Min(), shelf.Low-tol)
		}
	}
	// Left moving shelf is non-increasing as well, it only moves the other way
	{
		U, err := c.Solve(101, 0.5, -5)
		require.NoError(t, err)
		row := U.Layer(U.Layers() - 1)
		for xi := 1; xi < len(row); xi++ {
			require.LessOrEqual(t, row[xi], row[xi-1]+tol)
		}
	}
}

func TestUnstableRatioOvershoots(t *testing.T) {
	var (
		c     = NewAdvection(DefaultDomain(), DefaultShelf())
		shelf = c.Shelf
	)
	for _, N := range []int{11, 101} {
		U, err := c.Solve(N, 1.25, 5)
		require.NoError(t, err)
		assert.Greater(t, U.U.Max(), shelf.High+1.e-6)
		// The first update past the jump already rises above its left neighbour
		row := U.Layer(1)
		var increasing bool
		for xi := 1; xi < len(row); xi++ {
			if row[xi] > row[xi-1]+1.e-12 {
				increasing = true
			}
		}
		assert.True(t, increasing)
	}
}

func TestFieldIsFrozen(t *testing.T) {
	c := NewAdvection(DefaultDomain(), DefaultShelf())
	U, err := c.Solve(11, 0.5, 5)
	require.NoError(t, err)
	assert.True(t, U.U.IsReadOnly())
	assert.Panics(t, func() { U.U.Set(0, 0, 0) })
}

func TestL1ErrorDecreasesWithResolution(t *testing.T) {
	var (
		c    = NewAdvection(DefaultDomain(), DefaultShelf())
		prev = math.Inf(1)
	)
	for _, N := range []int{51, 201, 801} {
		U, err := c.Solve(N, 0.5, 5)
		require.NoError(t, err)
		UE, err := c.Exact(N, 0.5, 5)
		require.NoError(t, err)
		e := L1Error(U, UE)
		assert.Less(t, e, prev, "N=%d", N)
		prev = e
	}
}
