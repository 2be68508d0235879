// Package progress defines the progress reporting types shared between the
// summation engines and the presentation layers (CLI spinner, TUI bridge).
package progress

// Update carries a single progress report from a running engine.
type Update struct {
	// EngineIndex identifies the engine that produced this update
	// (index into the slice passed to the orchestrator).
	EngineIndex int
	// Value is the normalized progress, from 0.0 to 1.0.
	Value float64
}

// Callback receives normalized progress values (0.0 to 1.0) from a kernel.
// A nil Callback disables reporting.
type Callback func(value float64)

// ReportInterval is the number of terms accumulated between two progress
// reports. Reporting on every term would dominate the cost of the loop for
// large term counts.
const ReportInterval = 1 << 16

// ChannelCallback returns a Callback that forwards updates to ch without
// blocking. Updates are dropped when the channel is full; progress is
// advisory and the engines must never stall on a slow consumer.
func ChannelCallback(ch chan<- Update, engineIndex int) Callback {
	if ch == nil {
		return nil
	}
	return func(value float64) {
		select {
		case ch <- Update{EngineIndex: engineIndex, Value: value}:
		default:
		}
	}
}
