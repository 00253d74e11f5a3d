package model

import (
	"fmt"
	"io"
	"reflect"

	"go-ml.dev/pkg/seqtask/fu"
	"go-ml.dev/pkg/seqtask/stream"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
)

// ErrOutOfData reports a stream that supplied fewer batches than the
// declared per-epoch count.
var ErrOutOfData = xerrors.New("out of data")

/*
BatchLearner is the gradient-level collaborator: a trainable function
approximator exposing one optimization step and batch prediction. The
harness owns everything else (epoch accounting, metrics, callbacks).
*/
type BatchLearner interface {
	// Step runs one optimizer update on the batch against the active loss.
	Step(b stream.Batch, loss Loss) error
	// Predict maps a batch of inputs, one row per example, to outputs.
	Predict(x *mat.Dense) *mat.Dense
	InputDim() int
	OutputDim() int
}

/*
Harness implements Model on top of a BatchLearner. Compile swaps the
active loss and metric set only: learner weights and any optimizer state
(momentum and the like) are left untouched, so state persists across
recompilation unless the learner itself resets it.
*/
type Harness struct {
	Learner BatchLearner
	Verbose interface{} // print function func(string)

	loss    Metric
	metrics []Metric
}

func (h *Harness) Compile(c CompileConfig) error {
	if h.Learner == nil {
		return zorros.Errorf("harness has no learner")
	}
	if c.Loss.Fn == nil {
		return zorros.Errorf("compile requires a loss")
	}
	h.loss = c.Loss
	h.metrics = c.Metrics
	return nil
}

/*
Fit runs the configured number of epochs over one training cursor, each
epoch consuming exactly StepsPerEpoch batches. A stream running dry
mid-epoch fails with ErrOutOfData rather than silently reusing stale
batches. Validation, when present, opens a fresh cursor every epoch.
*/
func (h *Harness) Fit(c FitConfig) (*History, error) {
	if h.loss.Fn == nil {
		return nil, zorros.Errorf("model is not compiled")
	}
	hist := NewHistory()
	if c.Epochs < 1 {
		zlog.Warning("fit requested with no epochs")
		return hist, nil
	}
	if c.Training == nil {
		return nil, zorros.Errorf("fit requires a training stream")
	}
	cur := c.Training.Batches()
	for epoch := 0; epoch < c.Epochs; epoch++ {
		logs, err := h.trainEpoch(cur, c.StepsPerEpoch)
		if err != nil {
			return hist, err
		}
		if c.Validation != nil {
			vm, err := h.pass(c.Validation.Batches(), c.ValidationSteps)
			if err != nil {
				return hist, err
			}
			for k, v := range vm {
				logs["val_"+k] = v
			}
		}
		hist.Append(logs)
		h.verbose(epoch, logs)
		for _, cb := range c.Callbacks {
			if err := cb.OnEpochEnd(epoch, logs); err != nil {
				if xerrors.Is(err, ErrStopTraining) {
					return hist, nil
				}
				return hist, err
			}
		}
	}
	return hist, nil
}

/*
Evaluate runs a single steps-batch pass over s with a fresh cursor and
no weight updates. A nil stream evaluates to an empty mapping.
*/
func (h *Harness) Evaluate(s stream.Stream, steps int) (map[string]float64, error) {
	if h.loss.Fn == nil {
		return nil, zorros.Errorf("model is not compiled")
	}
	if s == nil {
		return map[string]float64{}, nil
	}
	return h.pass(s.Batches(), steps)
}

func (h *Harness) trainEpoch(cur stream.Cursor, steps int) (map[string]float64, error) {
	acc := map[string][]float64{}
	for i := 0; i < steps; i++ {
		b, err := h.next(cur, i, steps)
		if err != nil {
			return nil, err
		}
		p := h.Learner.Predict(b.X)
		h.record(acc, b, p)
		if err = h.Learner.Step(b, h.loss.Fn); err != nil {
			return nil, err
		}
	}
	return h.mean(acc), nil
}

func (h *Harness) pass(cur stream.Cursor, steps int) (map[string]float64, error) {
	acc := map[string][]float64{}
	for i := 0; i < steps; i++ {
		b, err := h.next(cur, i, steps)
		if err != nil {
			return nil, err
		}
		h.record(acc, b, h.Learner.Predict(b.X))
	}
	return h.mean(acc), nil
}

func (h *Harness) next(cur stream.Cursor, i, steps int) (stream.Batch, error) {
	b, err := cur.Next()
	if err == io.EOF {
		return b, xerrors.Errorf("pass needs %d batches, stream ended at %d: %w", steps, i, ErrOutOfData)
	}
	if err != nil {
		return b, err
	}
	_, xc := b.X.Dims()
	_, yc := b.Y.Dims()
	if xc != h.Learner.InputDim() || yc != h.Learner.OutputDim() {
		return b, xerrors.Errorf("batch dims (%d,%d) disagree with model dims (%d,%d): %w",
			xc, yc, h.Learner.InputDim(), h.Learner.OutputDim(), stream.ErrShape)
	}
	return b, nil
}

func (h *Harness) record(acc map[string][]float64, b stream.Batch, p *mat.Dense) {
	acc["loss"] = append(acc["loss"], h.loss.Fn(b.Y, p))
	for _, m := range h.metrics {
		acc[m.Name] = append(acc[m.Name], m.Fn(b.Y, p))
	}
}

func (h *Harness) mean(acc map[string][]float64) map[string]float64 {
	logs := make(map[string]float64, len(acc))
	for k, v := range acc {
		logs[k] = fu.Mean(v)
	}
	return logs
}

func (h *Harness) verbose(epoch int, logs map[string]float64) {
	if h.Verbose == nil {
		return
	}
	s := fmt.Sprintf("[%3d] loss: %.5f", epoch, logs["loss"])
	if v, ok := logs["val_loss"]; ok {
		s = fmt.Sprintf("%v/%.5f", s, v)
	}
	vf := reflect.ValueOf(h.Verbose)
	vf.Call([]reflect.Value{reflect.ValueOf(s)})
}
