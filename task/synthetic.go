package task

import (
	"time"

	"golang.org/x/exp/rand"
	"golang.org/x/xerrors"

	"go-ml.dev/pkg/seqtask/model"
	"go-ml.dev/pkg/seqtask/stream"
)

/*
SyntheticConfig describes a function-approximation task whose data is
drawn on demand from a ground-truth function instead of a stored
dataset. Optional fields and their defaults:

	Limits     zero value means (-1, 1)
	Transform  nil means stream.Identity
	Src        nil means a time-seeded source
	BatchSize  0 is kept as is and yields empty streams

Reproducibility requires injecting a seeded Src; the task never reseeds
on its own.
*/
type SyntheticConfig struct {
	Name     string
	Model    model.Model
	BaseLoss model.Metric

	Independents int              // dimensionality of the sampled vector
	Limits       stream.Limits    // draw interval, half-open
	Transform    stream.Transform // raw vector to model input
	Target       stream.Transform // raw vector to target, required

	TrainingBatches   int
	ValidationBatches int
	BatchSize         int // generated samples grouped per batch

	Src rand.Source
}

/*
NewSynthetic builds a function-approximation task. It lazily samples
TrainingBatches*BatchSize training pairs and ValidationBatches*BatchSize
validation pairs from the same distribution as two independent draws,
groups them into BatchSize-row batches, repeats each finite sequence
indefinitely so extra epochs revisit the same data, and hands the
streams to New.
*/
func NewSynthetic(c SyntheticConfig) (*Task, error) {
	if c.Independents < 1 {
		return nil, xerrors.Errorf("synthetic task %q needs at least one independent variable: %w",
			c.Name, ErrConfiguration)
	}
	if c.Target == nil {
		return nil, xerrors.Errorf("synthetic task %q has no target function: %w", c.Name, ErrConfiguration)
	}
	if c.BatchSize < 0 || c.TrainingBatches < 0 || c.ValidationBatches < 0 {
		return nil, xerrors.Errorf("synthetic task %q has negative stream counts: %w", c.Name, ErrConfiguration)
	}
	lim := c.Limits
	if lim == (stream.Limits{}) {
		lim = stream.Limits{Lo: -1, Hi: 1}
	}
	if lim.Lo >= lim.Hi {
		return nil, xerrors.Errorf("synthetic task %q has empty domain [%v, %v): %w",
			c.Name, lim.Lo, lim.Hi, ErrConfiguration)
	}
	src := c.Src
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	g := stream.Generator{
		Independents: c.Independents,
		Limits:       lim,
		Transform:    c.Transform,
		Target:       c.Target,
		Src:          src,
	}
	training := stream.Repeat(stream.Batched(g.Take(c.TrainingBatches*c.BatchSize), c.BatchSize))
	var validation stream.Stream
	vb := 0
	if c.ValidationBatches > 0 && c.BatchSize > 0 {
		validation = stream.Repeat(stream.Batched(g.Take(c.ValidationBatches*c.BatchSize), c.BatchSize))
		vb = c.ValidationBatches
	}
	return New(Config{
		Name:              c.Name,
		Model:             c.Model,
		BaseLoss:          c.BaseLoss,
		Training:          training,
		TrainingBatches:   c.TrainingBatches,
		Validation:        validation,
		ValidationBatches: vb,
	})
}
