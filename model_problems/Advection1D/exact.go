package Advection1D

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gofdm/utils"
)

// Exact samples the traveling shelf u(x, t) = v(x - speed*t) on the same nodes
// and layers Solve uses for the same arguments.
func (c *Advection) Exact(nodeCount int, ratio, speed float64) (f Field, err error) {
	var (
		d Discretization
	)
	if d, err = c.Discretize(nodeCount, ratio, speed); err != nil {
		return
	}
	f = Field{
		X: d.Grid.Nodes(),
		T: d.Times(c.Domain.TMin),
		U: utils.NewMatrix(d.Layers, nodeCount),
	}
	for ti, t := range f.T {
		row := f.U.Row(ti)
		for xi, x := range f.X {
			row[xi] = c.Shelf.V(x - speed*t)
		}
	}
	f.U.SetReadOnly("UExact")
	return
}

// L1Error returns h * sum|approx - exact| on the last layer, the discrete L1
// norm used for convergence studies of discontinuous solutions.
func L1Error(approx, exact Field) float64 {
	var (
		n   = approx.Layers() - 1
		a   = approx.Layer(n)
		e   = exact.Layer(n)
		h   = approx.X[1] - approx.X[0]
		abs = make([]float64, len(a))
	)
	floats.SubTo(abs, a, e)
	for i, val := range abs {
		abs[i] = math.Abs(val)
	}
	return h * floats.Sum(abs)
}

// MaxError returns the largest pointwise difference over every layer.
func MaxError(approx, exact Field) float64 {
	return floats.Distance(approx.U.RawMatrix().Data, exact.U.RawMatrix().Data, math.Inf(1))
}
