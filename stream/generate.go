package stream

import (
	"io"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

/*
Generator draws (input, target) pairs on demand: every component of the
independent-variable vector is sampled uniformly from Limits, Target maps
the raw vector to the training target and Transform to the model input.
No randomness is consumed until a pass is pulled.
*/
type Generator struct {
	Independents int         // dimensionality of the sampled vector
	Limits       Limits      // draw interval, half-open
	Transform    Transform   // raw vector to model input, Identity if nil
	Target       Transform   // raw vector to target
	Src          rand.Source // caller-seeded randomness
}

/*
Take returns a restartable sequence of at most max pairs. Every pass
draws fresh samples from the generator's source, it is not a replay of
the previous one.
*/
func (g Generator) Take(max int) Seq {
	return take{g, max}
}

type take struct {
	g   Generator
	max int
}

func (t take) Iter() Iter {
	u := distuv.Uniform{Min: t.g.Limits.Lo, Max: t.g.Limits.Hi, Src: t.g.Src}
	return &genIter{g: t.g, u: u, left: t.max}
}

type genIter struct {
	g    Generator
	u    distuv.Uniform
	left int
}

func (it *genIter) Next() (Pair, error) {
	if it.left <= 0 {
		return Pair{}, io.EOF
	}
	it.left--
	x := make([]float64, it.g.Independents)
	for i := range x {
		x[i] = it.u.Rand()
	}
	tf := it.g.Transform
	if tf == nil {
		tf = Identity
	}
	return Pair{Input: tf(x), Target: it.g.Target(x)}, nil
}
