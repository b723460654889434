package Advection1D

import (
	"fmt"
	"math"

	"github.com/notargets/gofdm/utils"
)

// Domain is the space-time window the shelf is advected over.
type Domain struct {
	XMin, XMax float64
	TMin, TMax float64
}

func DefaultDomain() Domain {
	return Domain{XMin: -10, XMax: 10, TMin: 0, TMax: 1}
}

// Shelf is the step initial condition: High left of the jump, Low right of it.
// Points within Eps to the right of zero count as left of the jump.
type Shelf struct {
	High, Low, Eps float64
}

func DefaultShelf() Shelf {
	return Shelf{High: 3, Low: 1, Eps: 1.e-9}
}

func (s Shelf) V(x float64) float64 {
	if x < s.Eps {
		return s.High
	}
	return s.Low
}

// Field is a solution sampled at every time layer (rows) and node (columns).
type Field struct {
	X, T []float64
	U    utils.Matrix
}

// Layers returns the number of time layers.
func (f Field) Layers() int {
	nr, _ := f.U.Dims()
	return nr
}

// Layer returns row ti of the field.
func (f Field) Layer(ti int) []float64 { return f.U.Row(ti) }

type Advection struct {
	Domain Domain
	Shelf  Shelf
}

func NewAdvection(dom Domain, shelf Shelf) *Advection {
	return &Advection{
		Domain: dom,
		Shelf:  shelf,
	}
}

// Discretization derives the space grid, time step and layer count for a run.
type Discretization struct {
	Grid   utils.Grid
	Dt     float64
	Layers int
	Ratio  float64
	Speed  float64
}

// Times returns the time of every layer.
func (d Discretization) Times(tMin float64) (T []float64) {
	T = make([]float64, d.Layers)
	for ti := range T {
		T[ti] = tMin + float64(ti)*d.Dt
	}
	return
}

// MaxCells bounds layers*nodes of a solution field, 2 GiB of float64.
const MaxCells = 1 << 28

// Discretize validates the inputs and derives h, the time step t = ratio*h/|speed|
// and the layer count ceil((TMax-TMin)/t) + 1. A ratio above 1 is accepted, the
// scheme is then unstable.
func (c *Advection) Discretize(nodeCount int, ratio, speed float64) (d Discretization, err error) {
	var (
		dom  = c.Domain
		span = dom.TMax - dom.TMin
	)
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		err = fmt.Errorf("%w: stability ratio must be positive, got %v", utils.ErrInvalidParameter, ratio)
		return
	}
	if speed == 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		err = fmt.Errorf("%w: wave speed must be finite and nonzero, got %v", utils.ErrInvalidParameter, speed)
		return
	}
	if !(span > 0) {
		err = fmt.Errorf("%w: time window [%v, %v] is empty", utils.ErrInvalidParameter, dom.TMin, dom.TMax)
		return
	}
	// The upstream boundary is held at the inflow state, valid only while the
	// wave travels no further than the domain width.
	if math.Abs(speed)*span > dom.XMax-dom.XMin {
		err = fmt.Errorf("%w: |speed|*(TMax-TMin) = %v exceeds the domain width %v",
			utils.ErrInvalidParameter, math.Abs(speed)*span, dom.XMax-dom.XMin)
		return
	}
	if d.Grid, err = utils.NewGrid(dom.XMin, dom.XMax, nodeCount); err != nil {
		return
	}
	d.Ratio, d.Speed = ratio, speed
	d.Dt = ratio * d.Grid.H / math.Abs(speed)
	layers := math.Ceil(span/d.Dt) + 1
	if math.IsInf(layers, 0) || math.IsNaN(layers) || layers*float64(nodeCount) > MaxCells {
		err = fmt.Errorf("%w: ratio %v gives %v time layers of %d nodes, above the limit of %d cells",
			utils.ErrInvalidParameter, ratio, layers, nodeCount, MaxCells)
		return
	}
	d.Layers = int(layers)
	return
}

// Solve advances the shelf with the first order upwind (Godunov) scheme
//
//	u[ti][xi] = u[ti-1][xi] - r*(u[ti-1][xi] - u[ti-1][xi-1])
//
// for speed > 0, with the leftmost node held at High. For speed < 0 the stencil
// uses the right neighbour and the rightmost node is held at Low.
func (c *Advection) Solve(nodeCount int, ratio, speed float64) (f Field, err error) {
	var (
		d     Discretization
		shelf = c.Shelf
	)
	if d, err = c.Discretize(nodeCount, ratio, speed); err != nil {
		return
	}
	f = Field{
		X: d.Grid.Nodes(),
		T: d.Times(c.Domain.TMin),
		U: utils.NewMatrix(d.Layers, nodeCount),
	}
	u0 := f.U.Row(0)
	for xi, x := range f.X {
		u0[xi] = shelf.V(x)
	}
	last := nodeCount - 1
	for ti := 1; ti < d.Layers; ti++ {
		prev, cur := f.U.Row(ti-1), f.U.Row(ti)
		if speed > 0 {
			cur[0] = shelf.V(c.Domain.XMin)
			for xi := 1; xi <= last; xi++ {
				cur[xi] = prev[xi] - ratio*(prev[xi]-prev[xi-1])
			}
		} else {
			cur[last] = shelf.V(c.Domain.XMax)
			for xi := 0; xi < last; xi++ {
				cur[xi] = prev[xi] - ratio*(prev[xi]-prev[xi+1])
			}
		}
	}
	f.U.SetReadOnly("U")
	return
}
