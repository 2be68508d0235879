package orchestration

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	apperrors "github.com/agbru/harmcalc/internal/errors"
	"github.com/agbru/harmcalc/internal/harmonic"
	"github.com/agbru/harmcalc/internal/progress"
)

// fakeEngine lets tests control the outcome of a summation run without
// paying for a real kernel.
type fakeEngine struct {
	name   string
	label  string
	bits   int
	report harmonic.Report
	err    error
	delay  time.Duration
}

func (f *fakeEngine) Name() string  { return f.name }
func (f *fakeEngine) Label() string { return f.label }
func (f *fakeEngine) Bits() int     { return f.bits }

func (f *fakeEngine) Sum(ctx context.Context, progressChan chan<- progress.Update, engineIndex int, terms uint64) (harmonic.Report, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return harmonic.Report{}, ctx.Err()
		}
	}
	select {
	case progressChan <- progress.Update{EngineIndex: engineIndex, Value: 1.0}:
	default:
	}
	return f.report, f.err
}

func TestExecuteSummations_RealEngines(t *testing.T) {
	factory := harmonic.NewDefaultFactory()
	engines := factory.GetAll()

	results := ExecuteSummations(context.Background(), engines, 100, NullProgressReporter{}, io.Discard)

	if len(results) != len(engines) {
		t.Fatalf("got %d results, want %d", len(results), len(engines))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("engine %q: unexpected error: %v", res.Name, res.Err)
		}
		if res.Report.Terms != 100 {
			t.Errorf("engine %q: Terms = %d, want 100", res.Name, res.Report.Terms)
		}
		if res.Report.Forward == 0 || res.Report.Backward == 0 {
			t.Errorf("engine %q: zero sums in report %+v", res.Name, res.Report)
		}
	}
}

func TestExecuteSummations_PartialFailure(t *testing.T) {
	boom := errors.New("kernel exploded")
	engines := []harmonic.Engine{
		&fakeEngine{name: "ok", label: "OK", bits: 64, report: harmonic.Report{Terms: 10, Forward: 2.9289682539682538, Backward: 2.9289682539682538, Bits: 64}},
		&fakeEngine{name: "broken", label: "KO", bits: 64, err: boom},
	}

	results := ExecuteSummations(context.Background(), engines, 10, NullProgressReporter{}, io.Discard)

	if results[0].Err != nil {
		t.Errorf("healthy engine reported error: %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Fatal("broken engine reported no error")
	}
	var sumErr apperrors.SummationError
	if !errors.As(results[1].Err, &sumErr) {
		t.Fatalf("error %v is not a SummationError", results[1].Err)
	}
	if sumErr.Engine != "broken" {
		t.Errorf("SummationError.Engine = %q, want %q", sumErr.Engine, "broken")
	}
	if !errors.Is(results[1].Err, boom) {
		t.Error("SummationError does not unwrap to the engine failure")
	}
}

func TestExecuteSummations_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	factory := harmonic.NewDefaultFactory()
	// Large enough that every kernel hits a cancellation checkpoint.
	results := ExecuteSummations(ctx, factory.GetAll(), 50_000_000, NullProgressReporter{}, io.Discard)

	for _, res := range results {
		if res.Err == nil {
			t.Errorf("engine %q completed despite canceled context", res.Name)
			continue
		}
		if !apperrors.IsContextError(errors.Unwrap(res.Err)) {
			t.Errorf("engine %q: error %v does not stem from context cancellation", res.Name, res.Err)
		}
	}
}

func TestExecuteSummations_ReporterReceivesUpdates(t *testing.T) {
	var mu sync.Mutex
	var seen []progress.Update

	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, progressChan <-chan progress.Update, _ int, _ io.Writer) {
		defer wg.Done()
		for u := range progressChan {
			mu.Lock()
			seen = append(seen, u)
			mu.Unlock()
		}
	})

	engines := []harmonic.Engine{
		&fakeEngine{name: "a", label: "A", bits: 32},
		&fakeEngine{name: "b", label: "B", bits: 64},
	}
	ExecuteSummations(context.Background(), engines, 10, reporter, io.Discard)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 {
		t.Fatalf("reporter saw %d updates, want 2", len(seen))
	}
	indices := map[int]bool{}
	for _, u := range seen {
		indices[u.EngineIndex] = true
		if u.Value != 1.0 {
			t.Errorf("update value = %v, want 1.0", u.Value)
		}
	}
	if !indices[0] || !indices[1] {
		t.Errorf("updates missing an engine index: %v", indices)
	}
}

func TestProgressAggregator(t *testing.T) {
	agg := NewProgressAggregator(2)

	if avg := agg.CalculateAverage(); avg != 0 {
		t.Errorf("initial average = %v, want 0", avg)
	}

	agg.Update(progress.Update{EngineIndex: 0, Value: 1.0})
	if avg := agg.CalculateAverage(); avg != 0.5 {
		t.Errorf("average after one engine done = %v, want 0.5", avg)
	}

	avg := agg.Update(progress.Update{EngineIndex: 1, Value: 0.5})
	if avg != 0.75 {
		t.Errorf("average = %v, want 0.75", avg)
	}

	// Out-of-range indices must not panic or skew the average.
	agg.Update(progress.Update{EngineIndex: 7, Value: 1.0})
	if avg := agg.CalculateAverage(); avg != 0.75 {
		t.Errorf("average after stray index = %v, want 0.75", avg)
	}
}
