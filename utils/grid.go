package utils

import "fmt"

// Grid is a set of N equally spaced nodes covering [Min, Max], both ends included.
type Grid struct {
	Min, Max float64
	N        int
	H        float64
}

func NewGrid(min, max float64, N int) (g Grid, err error) {
	if N < 2 {
		err = fmt.Errorf("%w: grid needs at least 2 nodes, got %d", ErrInvalidParameter, N)
		return
	}
	if !(max > min) {
		err = fmt.Errorf("%w: grid bounds [%v, %v] are empty", ErrInvalidParameter, min, max)
		return
	}
	g = Grid{
		Min: min,
		Max: max,
		N:   N,
		H:   (max - min) / float64(N-1),
	}
	return
}

// X returns the coordinate of node i.
func (g Grid) X(i int) float64 { return g.Min + float64(i)*g.H }

// Nodes returns every node coordinate, computed the same way as X.
func (g Grid) Nodes() (x []float64) {
	x = make([]float64, g.N)
	for i := range x {
		x[i] = g.X(i)
	}
	return
}
