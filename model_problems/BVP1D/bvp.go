package BVP1D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gofdm/utils"
)

/*
	u'' = f(x) on [0, 1], u(0) = Y0, u(1) = Y1

Central differences on NodeCount equally spaced nodes give the tridiagonal rows
	u[j-1] - 2u[j] + u[j+1] = h^2 f(x[j])
so A = 1, C = -2, B = 1 in the interior. The reference problem has f = -2.
*/
type Config struct {
	Y0, Y1    float64
	NodeCount int
	// Forcing is f(x); nil means the reference constant -2.
	Forcing func(x float64) float64
	// ExactSolution overrides the closed form used by Exact; nil means the
	// quadratic solution of the reference problem.
	ExactSolution func(x float64) float64
}

func DefaultConfig() Config {
	return Config{Y0: 0, Y1: 0, NodeCount: 1001}
}

func (cfg Config) forcing(x float64) float64 {
	if cfg.Forcing != nil {
		return cfg.Forcing(x)
	}
	return -2
}

func (cfg Config) Grid() (utils.Grid, error) {
	return utils.NewGrid(0, 1, cfg.NodeCount)
}

// NewSystem assembles the finite difference system with Dirichlet rows at
// both ends.
func NewSystem(cfg Config) (T *utils.Tridiagonal, err error) {
	var (
		g utils.Grid
	)
	if g, err = cfg.Grid(); err != nil {
		return
	}
	var (
		n          = g.N
		N          = n - 1
		h2         = g.H * g.H
		A, C, B, D = make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	)
	C[0], D[0] = 1, cfg.Y0
	C[N], D[N] = 1, cfg.Y1
	for j := 1; j < N; j++ {
		A[j], C[j], B[j] = 1, -2, 1
		D[j] = h2 * cfg.forcing(g.X(j))
	}
	return utils.NewTridiagonal(A, C, B, D)
}

// Solve assembles the system and runs the Thomas algorithm on it.
func Solve(cfg Config) (u []float64, err error) {
	var (
		T *utils.Tridiagonal
	)
	if T, err = NewSystem(cfg); err != nil {
		return
	}
	if u, err = T.Solve(); err != nil {
		err = fmt.Errorf("solving BVP with %d nodes: %w", cfg.NodeCount, err)
	}
	return
}

// Quadratic is the closed form solution of u'' = -2 with u(0) = y0, u(1) = y1.
func Quadratic(y0, y1 float64) func(x float64) float64 {
	return func(x float64) float64 {
		return -x*x + (y1-y0+1)*x + y0
	}
}

// Exact samples the closed form solution at every node.
func Exact(cfg Config) (u []float64, err error) {
	var (
		g     utils.Grid
		exact = cfg.ExactSolution
	)
	if g, err = cfg.Grid(); err != nil {
		return
	}
	if exact == nil {
		exact = Quadratic(cfg.Y0, cfg.Y1)
	}
	u = g.Nodes()
	for i, x := range u {
		u[i] = exact(x)
	}
	return
}

// MaxError is max|approx - exact|.
func MaxError(approx, exact []float64) float64 {
	return floats.Distance(approx, exact, math.Inf(1))
}

// Sine is a manufactured problem with a nonzero truncation error:
// u = sin(pi x) + linear interpolation of the boundary values.
func Sine(y0, y1 float64, nodeCount int) Config {
	return Config{
		Y0:        y0,
		Y1:        y1,
		NodeCount: nodeCount,
		Forcing: func(x float64) float64 {
			return -math.Pi * math.Pi * math.Sin(math.Pi*x)
		},
		ExactSolution: func(x float64) float64 {
			return math.Sin(math.Pi*x) + y0 + (y1-y0)*x
		},
	}
}
