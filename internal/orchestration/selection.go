package orchestration

import (
	"github.com/agbru/harmcalc/internal/harmonic"
)

// GetEnginesToRun determines which engines should be executed for the given
// algorithm selection. "all" returns every registered engine in sorted key
// order for consistent, reproducible behavior; any other value selects a
// single engine by key. Unknown keys return nil.
func GetEnginesToRun(algo string, factory harmonic.EngineFactory) []harmonic.Engine {
	if algo == "all" {
		return factory.GetAll()
	}
	if engine, err := factory.Get(algo); err == nil {
		return []harmonic.Engine{engine}
	}
	return nil
}
