package stream

import (
	"io"

	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

/*
Batched groups consecutive pairs of seq into batches of n examples each.
Example dimensions are fixed by the first pair of a pass; any later pair
disagreeing with them fails with ErrShape. A trailing group smaller than
n is dropped, so a caller wanting every pair keeps the pair count a
multiple of n. n < 1 yields an empty stream.
*/
func Batched(seq Seq, n int) Stream {
	return batched{seq, n}
}

type batched struct {
	seq Seq
	n   int
}

func (b batched) Batches() Cursor {
	if b.n < 1 {
		return emptyCursor{}
	}
	return &batchCursor{it: b.seq.Iter(), n: b.n}
}

type emptyCursor struct{}

func (emptyCursor) Next() (Batch, error) { return Batch{}, io.EOF }

type batchCursor struct {
	it     Iter
	n      int
	xd, yd int
}

func (c *batchCursor) Next() (Batch, error) {
	var xs, ys []float64
	for i := 0; i < c.n; i++ {
		p, err := c.it.Next()
		if err != nil {
			if err == io.EOF {
				return Batch{}, io.EOF
			}
			return Batch{}, err
		}
		if c.xd == 0 {
			if len(p.Input) == 0 || len(p.Target) == 0 {
				return Batch{}, xerrors.Errorf("first sample has empty dims: %w", ErrShape)
			}
			c.xd, c.yd = len(p.Input), len(p.Target)
			xs = make([]float64, 0, c.n*c.xd)
			ys = make([]float64, 0, c.n*c.yd)
		}
		if len(p.Input) != c.xd || len(p.Target) != c.yd {
			return Batch{}, xerrors.Errorf(
				"sample dims (%d,%d) disagree with stream dims (%d,%d): %w",
				len(p.Input), len(p.Target), c.xd, c.yd, ErrShape)
		}
		xs = append(xs, p.Input...)
		ys = append(ys, p.Target...)
	}
	return Batch{
		X: mat.NewDense(c.n, c.xd, xs),
		Y: mat.NewDense(c.n, c.yd, ys),
	}, nil
}
