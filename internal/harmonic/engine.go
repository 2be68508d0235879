package harmonic

import (
	"context"
	"fmt"
	"sort"

	"github.com/agbru/harmcalc/internal/progress"
)

// Engine computes both directed harmonic sums in one precision class.
type Engine interface {
	// Name returns the human-readable engine name (e.g. "Single precision (float32)").
	Name() string
	// Label returns the short label used in the result block ("Float", "Double").
	Label() string
	// Bits returns the accumulator width: 32 or 64.
	Bits() int
	// Sum accumulates the first terms harmonic terms in ascending and then
	// descending order, sending progress updates tagged with engineIndex to
	// progressChan (which may be nil). It honors ctx cancellation.
	Sum(ctx context.Context, progressChan chan<- progress.Update, engineIndex int, terms uint64) (Report, error)
}

// EngineFactory creates and enumerates summation engines by key.
type EngineFactory interface {
	// Get returns the engine registered under the given key.
	Get(key string) (Engine, error)
	// List returns the registered keys in sorted order.
	List() []string
	// GetAll returns all registered engines, ordered by sorted key.
	GetAll() []Engine
}

// halfCallbacks splits a progress channel into two callbacks covering
// [0, 0.5] for the forward pass and [0.5, 1.0] for the backward pass.
func halfCallbacks(progressChan chan<- progress.Update, engineIndex int) (fwd, bwd progress.Callback) {
	cb := progress.ChannelCallback(progressChan, engineIndex)
	if cb == nil {
		return nil, nil
	}
	fwd = func(v float64) { cb(v / 2) }
	bwd = func(v float64) { cb(0.5 + v/2) }
	return fwd, bwd
}

// SingleEngine accumulates in float32, the reduced precision class of the
// demonstration.
type SingleEngine struct{}

// Name returns the engine name.
func (SingleEngine) Name() string { return "Single precision (float32)" }

// Label returns "Float", the label of the binary32 lines in the result block.
func (SingleEngine) Label() string { return "Float" }

// Bits returns 32.
func (SingleEngine) Bits() int { return 32 }

// Sum runs the two float32 kernels and computes the difference in float32.
func (e SingleEngine) Sum(ctx context.Context, progressChan chan<- progress.Update, engineIndex int, terms uint64) (Report, error) {
	fwdCb, bwdCb := halfCallbacks(progressChan, engineIndex)

	fwd, err := SumSingle(ctx, terms, Ascending, fwdCb)
	if err != nil {
		return Report{}, err
	}
	bwd, err := SumSingle(ctx, terms, Descending, bwdCb)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Terms:      terms,
		Forward:    float64(fwd),
		Backward:   float64(bwd),
		Difference: float64(fwd - bwd),
		Bits:       32,
	}, nil
}

// DoubleEngine accumulates in float64, the extended precision class.
type DoubleEngine struct{}

// Name returns the engine name.
func (DoubleEngine) Name() string { return "Double precision (float64)" }

// Label returns "Double", the label of the binary64 lines in the result block.
func (DoubleEngine) Label() string { return "Double" }

// Bits returns 64.
func (DoubleEngine) Bits() int { return 64 }

// Sum runs the two float64 kernels.
func (e DoubleEngine) Sum(ctx context.Context, progressChan chan<- progress.Update, engineIndex int, terms uint64) (Report, error) {
	fwdCb, bwdCb := halfCallbacks(progressChan, engineIndex)

	fwd, err := SumDouble(ctx, terms, Ascending, fwdCb)
	if err != nil {
		return Report{}, err
	}
	bwd, err := SumDouble(ctx, terms, Descending, bwdCb)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Terms:      terms,
		Forward:    fwd,
		Backward:   bwd,
		Difference: fwd - bwd,
		Bits:       64,
	}, nil
}

// defaultFactory is the standard engine registry.
type defaultFactory struct {
	engines map[string]Engine
}

// NewDefaultFactory returns a factory holding the two precision-class
// engines under the keys "single" and "double".
func NewDefaultFactory() EngineFactory {
	return &defaultFactory{
		engines: map[string]Engine{
			"single": SingleEngine{},
			"double": DoubleEngine{},
		},
	}
}

// Get returns the engine registered under key.
func (f *defaultFactory) Get(key string) (Engine, error) {
	engine, ok := f.engines[key]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q (available: %v)", key, f.List())
	}
	return engine, nil
}

// List returns the registered keys in sorted order.
func (f *defaultFactory) List() []string {
	keys := make([]string, 0, len(f.engines))
	for k := range f.engines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetAll returns all registered engines, ordered by sorted key.
func (f *defaultFactory) GetAll() []Engine {
	keys := f.List()
	engines := make([]Engine, 0, len(keys))
	for _, k := range keys {
		engines = append(engines, f.engines[k])
	}
	return engines
}
