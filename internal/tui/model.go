// Package tui implements an interactive bubbletea explorer for the harmonic
// summations. It re-runs the engines as the user scales the term count and
// charts how the order sensitivity of the float32 sum evolves.
package tui

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/harmcalc/internal/config"
	apperrors "github.com/agbru/harmcalc/internal/errors"
	"github.com/agbru/harmcalc/internal/format"
	"github.com/agbru/harmcalc/internal/harmonic"
	"github.com/agbru/harmcalc/internal/metrics"
	"github.com/agbru/harmcalc/internal/orchestration"
	"github.com/agbru/harmcalc/internal/sysmon"
)

// historyCapacity bounds the number of plotted runs and CPU samples.
const historyCapacity = 60

// Messages exchanged between the bridge goroutines and the model.
type (
	// ProgressMsg carries the aggregated progress of the running engines.
	ProgressMsg struct{ Average float64 }
	// ProgressDoneMsg signals that the progress channel closed.
	ProgressDoneMsg struct{}
	// RunCompleteMsg delivers the results of one summation run.
	RunCompleteMsg struct {
		Results    []orchestration.SummationResult
		Terms      uint64
		Generation uint64
	}
	// SysStatsMsg carries a system resource sample.
	SysStatsMsg struct{ CPUPercent, MemPercent float64 }
	// TickMsg drives periodic redraws and system sampling.
	TickMsg time.Time
	// ContextCancelledMsg reports cancellation of the parent context.
	ContextCancelledMsg struct{ Generation uint64 }
)

// Model is the root bubbletea model for the explorer.
type Model struct {
	factory harmonic.EngineFactory
	config  config.AppConfig
	version string
	keymap  KeyMap
	help    help.Model

	parentCtx context.Context
	ctx       context.Context
	cancel    context.CancelFunc
	ref       *programRef

	terms      uint64
	generation uint64
	running    bool
	progress   float64
	// tracker measures terms/s for the in-flight run; the bridge feeds it
	// from the progress channel and viewHeader polls it between frames.
	tracker *metrics.ThroughputTracker
	results    []orchestration.SummationResult
	runErr     error
	exitCode   int

	// diffHistory holds |float32 difference| in ulps of the forward sum,
	// one sample per completed run.
	diffHistory *RingBuffer
	cpuHistory  *RingBuffer
	sys         sysmon.Stats

	startTime time.Time
	endTime   time.Time
	width     int
	height    int
}

// NewModel creates a new explorer model.
func NewModel(parentCtx context.Context, factory harmonic.EngineFactory, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	h := help.New()
	h.Styles.ShortKey = footerKeyStyle
	h.Styles.ShortDesc = footerDescStyle
	h.Styles.FullKey = footerKeyStyle
	h.Styles.FullDesc = footerDescStyle
	return Model{
		factory:     factory,
		config:      cfg,
		version:     version,
		keymap:      DefaultKeyMap(),
		help:        h,
		parentCtx:   parentCtx,
		ctx:         ctx,
		cancel:      cancel,
		ref:         &programRef{},
		terms:       cfg.Terms,
		tracker:     metrics.NewThroughputTracker(cfg.Terms),
		running:     true,
		exitCode:    apperrors.ExitSuccess,
		diffHistory: NewRingBuffer(historyCapacity),
		cpuHistory:  NewRingBuffer(historyCapacity),
		startTime:   time.Now(),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startRunCmd(m.ref, m.ctx, m.factory, m.config, m.terms, m.generation, m.tracker),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ProgressMsg:
		m.progress = msg.Average
		return m, nil

	case ProgressDoneMsg:
		m.progress = 1.0
		return m, nil

	case RunCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // stale result from a superseded run
		}
		m.running = false
		m.endTime = time.Now()
		m.results = msg.Results
		m.runErr = firstRunError(msg.Results)
		if m.runErr != nil {
			m.exitCode = apperrors.HandleSummationError(m.runErr, m.endTime.Sub(m.startTime), io.Discard, plainColors{})
		} else {
			m.exitCode = apperrors.ExitSuccess
			if ulps, ok := float32DifferenceUlps(msg.Results); ok {
				m.diffHistory.Push(ulps)
			}
		}
		return m, nil

	case SysStatsMsg:
		m.sys = sysmon.Stats{CPUPercent: msg.CPUPercent, MemPercent: msg.MemPercent}
		m.cpuHistory.Push(msg.CPUPercent)
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Rerun):
		return m.restart(m.terms)

	case key.Matches(msg, m.keymap.TermsUp):
		next := m.terms * 10
		if next > harmonic.MaxTerms || next < m.terms {
			return m, nil
		}
		return m.restart(next)

	case key.Matches(msg, m.keymap.TermsDown):
		next := m.terms / 10
		if next < harmonic.MinTerms {
			return m, nil
		}
		return m.restart(next)

	case key.Matches(msg, m.keymap.Details):
		m.config.Details = !m.config.Details
		return m, nil
	}

	return m, nil
}

// restart cancels the in-flight run and launches a new one over terms.
func (m Model) restart(terms uint64) (tea.Model, tea.Cmd) {
	m.cancel()
	m.generation++
	ctx, cancel := context.WithCancel(m.parentCtx)
	m.ctx = ctx
	m.cancel = cancel

	m.terms = terms
	m.tracker = metrics.NewThroughputTracker(terms)
	m.running = true
	m.progress = 0
	m.results = nil
	m.runErr = nil
	m.startTime = time.Now()
	m.endTime = time.Time{}

	return m, tea.Batch(
		startRunCmd(m.ref, m.ctx, m.factory, m.config, m.terms, m.generation, m.tracker),
		watchContextCmd(m.ctx, m.generation),
	)
}

// View renders the explorer.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	sections := []string{
		m.viewHeader(),
		m.viewResults(),
		m.viewChart(),
		m.help.View(m.keymap),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHeader() string {
	title := titleStyle.Render("Harmonic Explorer")
	if m.version != "" && m.version != "dev" {
		title += versionStyle.Render(" " + m.version)
	}

	var elapsed time.Duration
	if !m.endTime.IsZero() {
		elapsed = m.endTime.Sub(m.startTime)
	} else {
		elapsed = time.Since(m.startTime)
	}

	var status string
	switch {
	case m.runErr != nil:
		status = statusErrorStyle.Render("FAILED")
	case m.running:
		status = statusRunStyle.Render(fmt.Sprintf("RUNNING %3.0f%%", m.progress*100))
	default:
		status = statusIdleStyle.Render("DONE")
	}

	info := fmt.Sprintf(" | n=%s | %s | %s",
		format.FormatTerms(m.terms),
		elapsedStyle.Render(format.FormatExecutionDuration(elapsed)),
		status)
	if m.running {
		if rate := m.tracker.Rate(); rate >= 1 {
			info += fmt.Sprintf(" | %s terms/s", format.FormatTerms(uint64(rate)))
		}
	}
	info += fmt.Sprintf(" | CPU %.0f%% MEM %.0f%%", m.sys.CPUPercent, m.sys.MemPercent)

	return title + versionStyle.Render(info)
}

func (m Model) viewResults() string {
	var b strings.Builder

	if m.runErr != nil {
		b.WriteString(errorStyle.Render(m.runErr.Error()))
		return panelStyle.Width(m.panelWidth()).Render(b.String())
	}
	if m.results == nil {
		b.WriteString(labelStyle.Render("Summing..."))
		return panelStyle.Width(m.panelWidth()).Render(b.String())
	}

	ordered := byAscendingBits(m.results)
	for _, res := range ordered {
		b.WriteString(fmt.Sprintf("%s forward: %s, %s backward: %s\n",
			res.Label, valueStyle.Render(res.Report.FormatForward()),
			res.Label, valueStyle.Render(res.Report.FormatBackward())))
	}
	for i, res := range ordered {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s difference: %s",
			res.Label, diffStyle.Render(res.Report.FormatDifference())))
	}

	if m.config.Details {
		fwd := harmonic.SumDoubleKahan(m.terms, harmonic.Ascending)
		b.WriteString(fmt.Sprintf("\n%s %s",
			labelStyle.Render("Kahan double forward:"),
			valueStyle.Render(format.FormatAccumulator(fwd, 64))))
	}

	return panelStyle.Width(m.panelWidth()).Render(b.String())
}

func (m Model) viewChart() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("float32 order gap (ulps) across runs"))
	b.WriteString("\n")
	if m.diffHistory.Len() == 0 {
		b.WriteString(labelStyle.Render("no completed runs yet"))
	} else {
		b.WriteString(sparklineStyle.Render(RenderSparkline(normalizeToPercent(m.diffHistory.Slice()))))
		b.WriteString(fmt.Sprintf("  %s", diffStyle.Render(fmt.Sprintf("%.1f ulps", m.diffHistory.Last()))))
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("cpu "))
	b.WriteString(cpuStyle.Render(RenderSparkline(m.cpuHistory.Slice())))
	return panelStyle.Width(m.panelWidth()).Render(b.String())
}

func (m Model) panelWidth() int {
	w := m.width - 2
	if w < 20 {
		w = 20
	}
	return w
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, factory harmonic.EngineFactory, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, factory, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startRunCmd returns a tea.Cmd that launches one summation run.
func startRunCmd(ref *programRef, ctx context.Context, factory harmonic.EngineFactory, cfg config.AppConfig, terms uint64, gen uint64, tracker *metrics.ThroughputTracker) tea.Cmd {
	return func() tea.Msg {
		engines := orchestration.GetEnginesToRun(cfg.Algo, factory)
		reporter := &TUIProgressReporter{ref: ref, tracker: tracker}
		results := orchestration.ExecuteSummations(ctx, engines, terms, reporter, io.Discard)
		return RunCompleteMsg{Results: results, Terms: terms, Generation: gen}
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory stats.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Generation: gen}
	}
}

// firstRunError returns the first engine error in results, if any.
func firstRunError(results []orchestration.SummationResult) error {
	for _, res := range results {
		if res.Err != nil {
			return res.Err
		}
	}
	return nil
}

// byAscendingBits returns results ordered float32 first.
func byAscendingBits(results []orchestration.SummationResult) []orchestration.SummationResult {
	ordered := make([]orchestration.SummationResult, len(results))
	copy(ordered, results)
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if ordered[j].Report.Bits < ordered[i].Report.Bits {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}
	return ordered
}

// float32DifferenceUlps expresses the float32 engine's order gap in ulps of
// its forward sum. Returns false if no float32 result is present.
func float32DifferenceUlps(results []orchestration.SummationResult) (float64, bool) {
	for _, res := range results {
		if res.Err == nil && res.Report.Bits == 32 {
			ulp := ulp32(float32(res.Report.Forward))
			if ulp == 0 {
				return 0, false
			}
			return math.Abs(res.Report.Difference) / ulp, true
		}
	}
	return 0, false
}

// ulp32 returns the unit in the last place of a float32 value as a float64.
func ulp32(v float32) float64 {
	if v == 0 || math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return 0
	}
	next := math.Nextafter32(v, float32(math.Inf(1)))
	return math.Abs(float64(next) - float64(v))
}

// plainColors is a no-op ColorProvider for exit-code mapping inside the TUI,
// where the diagnostic text is discarded.
type plainColors struct{}

func (plainColors) Red() string    { return "" }
func (plainColors) Yellow() string { return "" }
func (plainColors) Reset() string  { return "" }
