/*
Package stream implements lazy, restartable (input, target) data streams
feeding training and evaluation loops.
*/
package stream

import (
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

// ErrShape reports a sample whose input or target dimensions disagree
// with the rest of the stream or with the model.
var ErrShape = xerrors.New("incompatible shape")

/*
Pair is a single (input, target) example.
*/
type Pair struct {
	Input  []float64
	Target []float64
}

/*
Iter is a lazy pass over pairs. Next returns io.EOF at the end of a
finite sequence.
*/
type Iter interface {
	Next() (Pair, error)
}

/*
Seq is a restartable sequence of pairs; every Iter call starts a fresh pass.
*/
type Seq interface {
	Iter() Iter
}

/*
Batch is a fixed-size group of pairs in matrix form, one row per example.
*/
type Batch struct {
	X *mat.Dense
	Y *mat.Dense
}

// Len returns the number of examples in the batch.
func (b Batch) Len() int {
	if b.X == nil {
		return 0
	}
	r, _ := b.X.Dims()
	return r
}

/*
Cursor is a lazy pass over batches. Next returns io.EOF at the end of a
finite stream; infinite streams never return it.
*/
type Cursor interface {
	Next() (Batch, error)
}

/*
Stream is a restartable sequence of batches; every Batches call starts a
fresh pass. Batches are consumed in the order the stream produces them.
*/
type Stream interface {
	Batches() Cursor
}

/*
Limits is the half-open interval [Lo, Hi) each independent-variable
component is drawn from.
*/
type Limits struct {
	Lo, Hi float64
}

/*
Transform maps a raw independent-variable vector to another vector.
*/
type Transform func(x []float64) []float64

// Identity is the no-op Transform.
func Identity(x []float64) []float64 { return x }

// Scalar lifts a scalar-valued function into a Transform.
func Scalar(f func(x []float64) float64) Transform {
	return func(x []float64) []float64 { return []float64{f(x)} }
}
