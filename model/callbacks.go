package model

import (
	"golang.org/x/xerrors"

	"go-ml.dev/pkg/seqtask/fu"
)

// ErrStopTraining is returned by a callback to end training early with
// no error; Fit stops after the current epoch and returns the history
// collected so far.
var ErrStopTraining = xerrors.New("stop training")

/*
Callback hooks into the training lifecycle. logs holds the epoch's
metric values, validation metrics under the "val_" prefix. A non-nil
result aborts training; ErrStopTraining aborts it successfully.
*/
type Callback interface {
	OnEpochEnd(epoch int, logs map[string]float64) error
}

const DefaultPatience = 3

/*
EarlyStopping ends training when the monitored metric has not improved
within the last Patience epochs.
*/
type EarlyStopping struct {
	Monitor  string // metric to watch, "loss" if empty
	Patience int    // epochs without improvement tolerated, DefaultPatience if 0
	history  []float64
}

func (e *EarlyStopping) OnEpochEnd(epoch int, logs map[string]float64) error {
	monitor := fu.Fnzs(e.Monitor, "loss")
	v, ok := logs[monitor]
	if !ok {
		return nil
	}
	e.history = append(e.history, v)
	patience := fu.Fnzi(e.Patience, DefaultPatience)
	if len(e.history) > patience && fu.Indmind(e.history[len(e.history)-patience:]) == 0 {
		return ErrStopTraining
	}
	return nil
}
