package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Tridiagonal holds the system
//
//	A[i]*x[i-1] + C[i]*x[i] + B[i]*x[i+1] = D[i],  i = 0..N
//
// A is the sub diagonal, C the diagonal and B the super diagonal. The boundary
// rows carry no coupling outside the matrix: A[0] = 0 and B[N] = 0.
type Tridiagonal struct {
	A, C, B, D []float64
}

func NewTridiagonal(A, C, B, D []float64) (T *Tridiagonal, err error) {
	T = &Tridiagonal{A: A, C: C, B: B, D: D}
	if err = T.check(); err != nil {
		T = nil
	}
	return
}

// NewTridiagonalFromDense extracts the three bands of a square matrix M. Any
// nonzero entry outside the bands is rejected.
func NewTridiagonalFromDense(M mat.Matrix, D []float64) (T *Tridiagonal, err error) {
	var (
		nr, nc = M.Dims()
	)
	if nr != nc {
		err = fmt.Errorf("%w: matrix is %dx%d, must be square", ErrInvalidParameter, nr, nc)
		return
	}
	if len(D) != nr {
		err = fmt.Errorf("%w: rhs length %d does not match matrix order %d", ErrInvalidParameter, len(D), nr)
		return
	}
	A, C, B := make([]float64, nr), make([]float64, nr), make([]float64, nr)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			val := M.At(i, j)
			switch j - i {
			case -1:
				A[i] = val
			case 0:
				C[i] = val
			case 1:
				B[i] = val
			default:
				if val != 0 {
					err = fmt.Errorf("%w: entry (%d,%d) = %v lies outside the tridiagonal band",
						ErrInvalidParameter, i, j, val)
					return
				}
			}
		}
	}
	rhs := make([]float64, nr)
	copy(rhs, D)
	return NewTridiagonal(A, C, B, rhs)
}

func (T *Tridiagonal) check() (err error) {
	var (
		n = len(T.C)
	)
	if n == 0 {
		return fmt.Errorf("%w: empty tridiagonal system", ErrInvalidParameter)
	}
	if len(T.A) != n || len(T.B) != n || len(T.D) != n {
		return fmt.Errorf("%w: band lengths differ: len(A)=%d, len(C)=%d, len(B)=%d, len(D)=%d",
			ErrInvalidParameter, len(T.A), n, len(T.B), len(T.D))
	}
	if T.A[0] != 0 {
		return fmt.Errorf("%w: A[0] = %v, first row has no sub diagonal", ErrInvalidParameter, T.A[0])
	}
	if T.B[n-1] != 0 {
		return fmt.Errorf("%w: B[%d] = %v, last row has no super diagonal", ErrInvalidParameter, n-1, T.B[n-1])
	}
	return
}

// Order returns N+1, the number of unknowns.
func (T *Tridiagonal) Order() int { return len(T.C) }

// Eliminate runs the forward sweep and returns the elimination coefficients.
// alpha[0] and beta[0] are zero; entry i relates x[i-1] to x[i]:
//
//	x[i-1] = alpha[i]*x[i] + beta[i]
func (T *Tridiagonal) Eliminate() (alpha, beta []float64, err error) {
	var (
		n = T.Order()
	)
	if err = T.check(); err != nil {
		return
	}
	alpha, beta = make([]float64, n), make([]float64, n)
	for i := 1; i < n; i++ {
		div := T.A[i-1]*alpha[i-1] + T.C[i-1]
		if div == 0 {
			alpha, beta = nil, nil
			err = fmt.Errorf("%w: zero pivot eliminating row %d", ErrDegenerateSystem, i-1)
			return
		}
		alpha[i] = -T.B[i-1] / div
		beta[i] = (T.D[i-1] - T.A[i-1]*beta[i-1]) / div
	}
	return
}

// Solve applies the Thomas algorithm. There is no pivoting, so the system must
// be one for which no elimination divisor vanishes; when one does the solve
// stops and no vector is returned.
func (T *Tridiagonal) Solve() (x []float64, err error) {
	var (
		alpha, beta []float64
		n           = T.Order()
		N           = n - 1
	)
	if alpha, beta, err = T.Eliminate(); err != nil {
		return
	}
	den := T.C[N] + T.A[N]*alpha[N]
	if den == 0 {
		err = fmt.Errorf("%w: zero pivot substituting row %d", ErrDegenerateSystem, N)
		return
	}
	x = make([]float64, n)
	x[N] = (T.D[N] - T.A[N]*beta[N]) / den
	for i := N - 1; i >= 0; i-- {
		x[i] = alpha[i+1]*x[i+1] + beta[i+1]
	}
	return
}

// Dense expands the system matrix, meant for small cross checks.
func (T *Tridiagonal) Dense() (R Matrix) {
	var (
		n = T.Order()
	)
	R = NewMatrix(n, n)
	for i := 0; i < n; i++ {
		if i > 0 {
			R.Set(i, i-1, T.A[i])
		}
		R.Set(i, i, T.C[i])
		if i < n-1 {
			R.Set(i, i+1, T.B[i])
		}
	}
	return
}

// Sparse assembles the system matrix in compressed sparse row form.
func (T *Tridiagonal) Sparse() CSR {
	var (
		n = T.Order()
		M = NewDOK(n, n, "tridiagonal")
	)
	for i := 0; i < n; i++ {
		if i > 0 && T.A[i] != 0 {
			M.Set(i, i-1, T.A[i])
		}
		if T.C[i] != 0 {
			M.Set(i, i, T.C[i])
		}
		if i < n-1 && T.B[i] != 0 {
			M.Set(i, i+1, T.B[i])
		}
	}
	return M.ToCSR()
}

// Residual returns max|M*x - D|.
func (T *Tridiagonal) Residual(x []float64) (r float64) {
	var (
		Mx = T.Sparse().MulVec(x)
	)
	for i, val := range Mx {
		r = math.Max(r, math.Abs(val-T.D[i]))
	}
	return
}
