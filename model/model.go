package model

import (
	"path/filepath"

	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/seqtask/stream"
)

// DefaultOptimizer is the fixed adaptive-gradient algorithm models are
// compiled with.
const DefaultOptimizer = "adam"

/*
CompileConfig rebuilds a model's trainable objective. Loss drives
gradient computation; Metrics are evaluated and reported alongside it on
every epoch and evaluation pass.
*/
type CompileConfig struct {
	Optimizer string   // DefaultOptimizer if empty
	Loss      Metric   // the active training objective
	Metrics   []Metric // always-reported metrics
	Eager     bool     // disable graph-style caching in backends that have it
}

/*
FitConfig describes one training run over a stream.
*/
type FitConfig struct {
	Training      stream.Stream
	Epochs        int
	StepsPerEpoch int // batches constituting one epoch

	// Validation is optional; when present every epoch ends with a
	// ValidationSteps-batch held-out pass reported under "val_" keys.
	Validation      stream.Stream
	ValidationSteps int

	Callbacks []Callback
}

/*
Model is the trainable collaborator of a task: Compile swaps the
objective keeping the weights, Fit runs epochs over a stream, Evaluate
runs a single metrics pass.
*/
type Model interface {
	Compile(CompileConfig) error
	Fit(FitConfig) (*History, error)
	Evaluate(s stream.Stream, steps int) (map[string]float64, error)
}

/*
Path returns the cache file path to store reports and histories
*/
func Path(s string) string {
	if filepath.IsAbs(s) {
		return s
	}
	return iokit.CacheFile(filepath.Join("go-ml", "Reports", s))
}
