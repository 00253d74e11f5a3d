/*
Package task bundles a model, its objective and its data streams into
named units of work a sequential-learning driver can iterate over.
*/
package task

import (
	"go-ml.dev/pkg/seqtask/model"
	"go-ml.dev/pkg/seqtask/stream"
	"go-ml.dev/pkg/zorros"
	"golang.org/x/xerrors"
)

// ErrConfiguration reports an invalid task configuration at construction.
var ErrConfiguration = xerrors.New("invalid task configuration")

/*
Config enumerates every Task field explicitly; optional fields document
their defaults.
*/
type Config struct {
	Name     string       // identifier used in logs and reports only
	Model    model.Model  // externally-owned trainable collaborator
	BaseLoss model.Metric // always-reported comparison objective

	Training        stream.Stream // per-epoch training batches
	TrainingBatches int           // batches constituting one epoch

	// Validation is optional; nil means the task has no held-out data
	// and Evaluate returns an empty mapping.
	Validation        stream.Stream
	ValidationBatches int
}

/*
Task is a single unit of a sequential-learning experiment: a model, the
objective it currently trains against, and the streams it trains and
evaluates on. The training batch count must match the true finite-epoch
length of the training stream; that is the caller's contract.
*/
type Task struct {
	Config

	// CurrentLoss drives gradient computation; BaseLoss stays reported
	// as a metric no matter how many times the active loss is swapped.
	CurrentLoss model.Loss
}

/*
New builds the task and compiles its model with the base loss.
*/
func New(c Config) (*Task, error) {
	if c.Model == nil {
		return nil, xerrors.Errorf("task %q has no model: %w", c.Name, ErrConfiguration)
	}
	if c.BaseLoss.Fn == nil {
		return nil, xerrors.Errorf("task %q has no base loss: %w", c.Name, ErrConfiguration)
	}
	if c.TrainingBatches < 0 || c.ValidationBatches < 0 {
		return nil, xerrors.Errorf("task %q has negative batch counts: %w", c.Name, ErrConfiguration)
	}
	if c.Training == nil && c.TrainingBatches > 0 {
		return nil, xerrors.Errorf("task %q declares %d training batches without a stream: %w",
			c.Name, c.TrainingBatches, ErrConfiguration)
	}
	t := &Task{Config: c}
	if err := t.Compile(c.BaseLoss.Fn); err != nil {
		return nil, err
	}
	return t, nil
}

/*
Compile rebuilds the model's trainable objective as loss, keeping its
weights. The base loss stays tracked as a metric so evaluation remains
comparable after later swaps, e.g. to base-plus-regularizer composites.
Optimizer state continuity across recompilation is the model
collaborator's documented choice; the default harness preserves it.
*/
func (t *Task) Compile(loss model.Loss) error {
	t.CurrentLoss = loss
	return t.Model.Compile(model.CompileConfig{
		Optimizer: model.DefaultOptimizer,
		Loss:      model.Metric{Name: "loss", Fn: loss},
		Metrics:   []model.Metric{t.BaseLoss},
	})
}

/*
Train runs epochs full passes over the training stream, TrainingBatches
batches each, forwarding callbacks to the model collaborator untouched.
A stream that runs dry mid-epoch surfaces model.ErrOutOfData.
*/
func (t *Task) Train(epochs int, callbacks []model.Callback) (*model.History, error) {
	return t.Model.Fit(model.FitConfig{
		Training:        t.Training,
		Epochs:          epochs,
		StepsPerEpoch:   t.TrainingBatches,
		Validation:      t.Validation,
		ValidationSteps: t.ValidationBatches,
		Callbacks:       callbacks,
	})
}

/*
LuckyTrain trains and throws any occurred errors as a panic
*/
func (t *Task) LuckyTrain(epochs int, callbacks []model.Callback) *model.History {
	h, err := t.Train(epochs, callbacks)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return h
}

/*
Evaluate runs one full ValidationBatches pass over the validation stream
and returns the metric values, the always-tracked base loss included. It
never consumes from the training stream. A task with no validation data
returns an empty mapping with no error.
*/
func (t *Task) Evaluate() (map[string]float64, error) {
	if t.Validation == nil {
		return map[string]float64{}, nil
	}
	return t.Model.Evaluate(t.Validation, t.ValidationBatches)
}
