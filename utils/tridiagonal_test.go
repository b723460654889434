package utils

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// poisson returns the Dirichlet system for u'' = -2 on n nodes over [0, 1].
func poisson(n int) *Tridiagonal {
	var (
		A, C, B, D = make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
		h          = 1 / float64(n-1)
	)
	C[0], C[n-1] = 1, 1
	for i := 1; i < n-1; i++ {
		A[i], C[i], B[i], D[i] = 1, -2, 1, -2*h*h
	}
	T, err := NewTridiagonal(A, C, B, D)
	if err != nil {
		panic(err)
	}
	return T
}

func TestTridiagonalSolve(t *testing.T) {
	// Small hand checked system
	{
		/*
			⎡ 2 -1  0⎤     ⎡1⎤
			⎢-1  2 -1⎥ x = ⎢0⎥  ->  x = [1, 1, 1]
			⎣ 0 -1  2⎦     ⎣1⎦
		*/
		T, err := NewTridiagonal(
			[]float64{0, -1, -1},
			[]float64{2, 2, 2},
			[]float64{-1, -1, 0},
			[]float64{1, 0, 1},
		)
		require.NoError(t, err)
		x, err := T.Solve()
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{1, 1, 1}, x, 1.e-14)
	}
	// Single unknown
	{
		T, err := NewTridiagonal([]float64{0}, []float64{4}, []float64{0}, []float64{2})
		require.NoError(t, err)
		x, err := T.Solve()
		require.NoError(t, err)
		assert.Equal(t, []float64{0.5}, x)
	}
	// Random diagonally dominant systems against a dense LU solve
	{
		rng := rand.New(rand.NewSource(1))
		for _, n := range []int{2, 5, 40} {
			A, C, B, D := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
			for i := 0; i < n; i++ {
				if i > 0 {
					A[i] = rng.Float64()*2 - 1
				}
				if i < n-1 {
					B[i] = rng.Float64()*2 - 1
				}
				C[i] = 3 + rng.Float64()
				D[i] = rng.Float64()*10 - 5
			}
			T, err := NewTridiagonal(A, C, B, D)
			require.NoError(t, err)
			x, err := T.Solve()
			require.NoError(t, err)

			var (
				lu mat.LU
				xd mat.VecDense
			)
			lu.Factorize(T.Dense())
			require.NoError(t, lu.SolveVecTo(&xd, false, mat.NewVecDense(n, D)))
			assert.InDeltaSlice(t, xd.RawVector().Data, x, 1.e-10, "n=%d", n)
			assert.Less(t, T.Residual(x), 1.e-12)
		}
	}
}

func TestTridiagonalEliminate(t *testing.T) {
	// For the Poisson rows alpha[i] = (i-1)/i
	T := poisson(11)
	alpha, beta, err := T.Eliminate()
	require.NoError(t, err)
	require.Len(t, alpha, 11)
	require.Len(t, beta, 11)
	assert.Equal(t, 0., alpha[0])
	assert.Equal(t, 0., beta[0])
	for i := 1; i < 11; i++ {
		assert.InDelta(t, float64(i-1)/float64(i), alpha[i], 1.e-14, "i=%d", i)
	}
}

func TestTridiagonalDegenerate(t *testing.T) {
	// Zero leading pivot from a dense matrix
	{
		M := mat.NewDense(3, 3, []float64{
			0, 1, 0,
			1, -2, 1,
			0, 1, 1,
		})
		T, err := NewTridiagonalFromDense(M, []float64{0, 1, 0})
		require.NoError(t, err)
		x, err := T.Solve()
		assert.True(t, errors.Is(err, ErrDegenerateSystem), "got %v", err)
		assert.Nil(t, x)
	}
	// Pivot vanishing inside the forward sweep
	{
		T, err := NewTridiagonalFromDense(mat.NewDense(3, 3, []float64{
			1, 1, 0,
			1, 1, 1,
			0, 1, 1,
		}), []float64{1, 2, 3})
		require.NoError(t, err)
		alpha, beta, err := T.Eliminate()
		assert.True(t, errors.Is(err, ErrDegenerateSystem))
		assert.Nil(t, alpha)
		assert.Nil(t, beta)
		x, err := T.Solve()
		assert.True(t, errors.Is(err, ErrDegenerateSystem))
		assert.Nil(t, x)
	}
	// Singular final substitution
	{
		T, err := NewTridiagonal([]float64{0, 1}, []float64{1, 1}, []float64{1, 0}, []float64{1, 1})
		require.NoError(t, err)
		_, _, err = T.Eliminate()
		require.NoError(t, err)
		x, err := T.Solve()
		assert.True(t, errors.Is(err, ErrDegenerateSystem))
		assert.Nil(t, x)
	}
}

func TestTridiagonalInvalid(t *testing.T) {
	var err error
	_, err = NewTridiagonal(nil, nil, nil, nil)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = NewTridiagonal([]float64{0, 1}, []float64{1, 1}, []float64{0}, []float64{1, 1})
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = NewTridiagonal([]float64{1, 1}, []float64{1, 1}, []float64{0, 0}, []float64{1, 1})
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = NewTridiagonal([]float64{0, 1}, []float64{1, 1}, []float64{0, 1}, []float64{1, 1})
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	// Entry outside the band
	_, err = NewTridiagonalFromDense(mat.NewDense(3, 3, []float64{
		1, 0, 5,
		0, 1, 0,
		0, 0, 1,
	}), []float64{1, 1, 1})
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = NewTridiagonalFromDense(mat.NewDense(2, 3, nil), []float64{1, 1})
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = NewTridiagonalFromDense(mat.NewDense(2, 2, []float64{1, 0, 0, 1}), []float64{1})
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestTridiagonalSparse(t *testing.T) {
	var (
		n = 21
		T = poisson(n)
	)
	S := T.Sparse()
	nr, nc := S.Dims()
	assert.Equal(t, n, nr)
	assert.Equal(t, n, nc)
	assert.Equal(t, 2+3*(n-2), S.NNZ())
	D := T.Dense()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			assert.Equal(t, D.At(i, j), S.At(i, j), "(%d,%d)", i, j)
		}
	}
	x, err := T.Solve()
	require.NoError(t, err)
	assert.Less(t, T.Residual(x), 1.e-12)
	// Round trip through the dense form
	T2, err := NewTridiagonalFromDense(D, T.D)
	require.NoError(t, err)
	assert.Equal(t, T.A, T2.A)
	assert.Equal(t, T.C, T2.C)
	assert.Equal(t, T.B, T2.B)
}
