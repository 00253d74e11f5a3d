package stream_test

import (
	"io"
	"testing"

	"golang.org/x/xerrors"
	"gotest.tools/assert"

	"go-ml.dev/pkg/seqtask/stream"
)

type sliceSeq []stream.Pair

func (s sliceSeq) Iter() stream.Iter { return &sliceIter{s: s} }

type sliceIter struct {
	s []stream.Pair
	i int
}

func (it *sliceIter) Next() (stream.Pair, error) {
	if it.i >= len(it.s) {
		return stream.Pair{}, io.EOF
	}
	p := it.s[it.i]
	it.i++
	return p, nil
}

func pairs(n int) sliceSeq {
	s := make(sliceSeq, n)
	for i := range s {
		x := float64(i)
		s[i] = stream.Pair{Input: []float64{x}, Target: []float64{2*x + 1}}
	}
	return s
}

func Test_Batched(t *testing.T) {
	cur := stream.Batched(pairs(10), 4).Batches()
	for k := 0; k < 2; k++ {
		b, err := cur.Next()
		assert.NilError(t, err)
		assert.Equal(t, b.Len(), 4)
		r, c := b.X.Dims()
		assert.Equal(t, r, 4)
		assert.Equal(t, c, 1)
		r, c = b.Y.Dims()
		assert.Equal(t, r, 4)
		assert.Equal(t, c, 1)
		for i := 0; i < 4; i++ {
			x := float64(k*4 + i)
			assert.Equal(t, b.X.At(i, 0), x)
			assert.Equal(t, b.Y.At(i, 0), 2*x+1)
		}
	}
	// the trailing partial group of 2 is dropped
	_, err := cur.Next()
	assert.Equal(t, err, io.EOF)
}

func Test_BatchedRestart(t *testing.T) {
	s := stream.Batched(pairs(8), 4)
	a, err := s.Batches().Next()
	assert.NilError(t, err)
	b, err := s.Batches().Next()
	assert.NilError(t, err)
	assert.DeepEqual(t, a.X.RawMatrix().Data, b.X.RawMatrix().Data)
}

func Test_BatchedZeroSize(t *testing.T) {
	_, err := stream.Batched(pairs(10), 0).Batches().Next()
	assert.Equal(t, err, io.EOF)
}

func Test_BatchedShapeMismatch(t *testing.T) {
	s := sliceSeq{
		{Input: []float64{1}, Target: []float64{1}},
		{Input: []float64{1, 2}, Target: []float64{1}},
	}
	_, err := stream.Batched(s, 2).Batches().Next()
	assert.Assert(t, xerrors.Is(err, stream.ErrShape), "got %v", err)
}

func Test_BatchedEmptyDims(t *testing.T) {
	s := sliceSeq{{Input: nil, Target: []float64{1}}}
	_, err := stream.Batched(s, 1).Batches().Next()
	assert.Assert(t, xerrors.Is(err, stream.ErrShape), "got %v", err)
}
