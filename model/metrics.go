package model

import (
	"encoding/csv"
	"sort"
	"strconv"

	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/seqtask/fu"
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
)

/*
Loss is any scalar objective of (target, prediction) batches, averaged
over the batch rows.
*/
type Loss func(y, p *mat.Dense) float64

/*
Metric is a named loss reported in histories and evaluations.
*/
type Metric struct {
	Name string
	Fn   Loss
}

// Mse is the mean squared error over all batch elements.
func Mse(y, p *mat.Dense) float64 {
	return fu.Mse(y.RawMatrix().Data, p.RawMatrix().Data)
}

// Mae is the mean absolute error over all batch elements.
func Mae(y, p *mat.Dense) float64 {
	return fu.Mae(y.RawMatrix().Data, p.RawMatrix().Data)
}

/*
WithPenalty composes a base loss with an additive penalty term computed
outside the (target, prediction) pair, e.g. a parameter-importance
regularizer accumulated from earlier tasks of a sequence.
*/
func WithPenalty(base Loss, penalty func() float64) Loss {
	return func(y, p *mat.Dense) float64 {
		return base(y, p) + penalty()
	}
}

/*
History is the per-epoch record of every tracked metric.
*/
type History struct {
	Epochs  int
	Metrics map[string][]float64
}

func NewHistory() *History {
	return &History{Metrics: map[string][]float64{}}
}

// Append records one epoch of metric values.
func (h *History) Append(logs map[string]float64) {
	for k, v := range logs {
		h.Metrics[k] = append(h.Metrics[k], v)
	}
	h.Epochs++
}

// Last returns the most recent value of the named metric.
func (h *History) Last(name string) float64 {
	m := h.Metrics[name]
	if len(m) == 0 {
		return 0
	}
	return m[len(m)-1]
}

/*
Save writes the history as CSV, one row per epoch, columns sorted by
metric name.
*/
func (h *History) Save(out iokit.Output) error {
	names := make([]string, 0, len(h.Metrics))
	for k := range h.Metrics {
		names = append(names, k)
	}
	sort.Strings(names)
	wh, err := out.Create()
	if err != nil {
		return zorros.Trace(err)
	}
	defer wh.End()
	w := csv.NewWriter(wh)
	if err = w.Write(names); err != nil {
		return zorros.Trace(err)
	}
	for i := 0; i < h.Epochs; i++ {
		row := make([]string, len(names))
		for j, n := range names {
			if col := h.Metrics[n]; i < len(col) {
				row[j] = strconv.FormatFloat(col[i], 'g', -1, 64)
			}
		}
		if err = w.Write(row); err != nil {
			return zorros.Trace(err)
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return zorros.Trace(err)
	}
	return wh.Commit()
}
