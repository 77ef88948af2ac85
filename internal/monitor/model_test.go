package monitor

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/xmdash/internal/dashboard"
	dtesting "github.com/rileyhilliard/xmdash/internal/dashboard/testing"
	"github.com/rileyhilliard/xmdash/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "http://127.0.0.1:8080/1/summary"

var testNow = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

// timerRecorder stands in for tea.Tick so tests decide when timers fire.
type timerRecorder struct {
	pending []func(time.Time) tea.Msg
}

func (r *timerRecorder) tick(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	r.pending = append(r.pending, fn)
	return nil
}

// take removes the recorded timers and returns their messages.
func (r *timerRecorder) take() []tea.Msg {
	fns := r.pending
	r.pending = nil
	msgs := make([]tea.Msg, 0, len(fns))
	for _, fn := range fns {
		msgs = append(msgs, fn(testNow))
	}
	return msgs
}

// refreshes counts recorded refresh timers without firing them.
func (r *timerRecorder) refreshes() int {
	var n int
	for _, fn := range r.pending {
		if _, ok := fn(testNow).(refreshMsg); ok {
			n++
		}
	}
	return n
}

type testModel struct {
	t       *testing.T
	m       Model
	timers  *timerRecorder
	store   *dtesting.FakeStore
	fetcher *dtesting.FakeFetcher
}

func newTestModel(t *testing.T, configured bool, results ...dtesting.FetchResult) *testModel {
	t.Helper()
	store := dtesting.NewFakeStore()
	if configured {
		store.Put(storage.KeyEndpoint, testURL)
	}
	fetcher := dtesting.NewFakeFetcher(results...)

	m := NewModel(Options{
		Store:   store,
		Fetcher: fetcher,
		Clock:   func() time.Time { return testNow },
	})
	t.Cleanup(m.Close)

	timers := &timerRecorder{}
	m.loop.tick = timers.tick

	return &testModel{t: t, m: m, timers: timers, store: store, fetcher: fetcher}
}

// collect runs cmd and flattens batches into the messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// start starts the session and runs the first poll.
func (tm *testModel) start() {
	tm.m.session.Start()
	tm.run(tm.m.loop.drain())
}

// send delivers msg and runs every background task it queues.
func (tm *testModel) send(msg tea.Msg) tea.Cmd {
	next, cmd := tm.m.Update(msg)
	tm.m = next.(Model)
	var rest []tea.Cmd
	for _, out := range collect(cmd) {
		if _, ok := out.(applyMsg); ok {
			tm.send(out)
			continue
		}
		rest = append(rest, func() tea.Msg { return out })
	}
	return tea.Batch(rest...)
}

func (tm *testModel) run(cmd tea.Cmd) {
	for _, msg := range collect(cmd) {
		tm.send(msg)
	}
}

// key sends a key press.
func (tm *testModel) key(k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	return tm.send(msg)
}

// settle fires one-shot timers until none are left. Refresh timers stay
// recorded but are not fired.
func (tm *testModel) settle() {
	for i := 0; i < 100; i++ {
		fns := tm.timers.pending
		tm.timers.pending = nil

		var fired bool
		var kept []func(time.Time) tea.Msg
		for _, fn := range fns {
			msg := fn(testNow)
			if _, ok := msg.(refreshMsg); ok {
				kept = append(kept, fn)
				continue
			}
			fired = true
			tm.send(msg)
		}
		tm.timers.pending = append(tm.timers.pending, kept...)
		if !fired {
			return
		}
	}
	tm.t.Fatal("timers did not settle")
}

func samplePayload() map[string]any {
	return map[string]any{
		"worker_id": "proxy-1",
		"version":   "6.22.0",
		"kind":      "proxy",
		"algo":      "rx/0",
		"uptime":    3600.0,
		"hashrate": map[string]any{
			"total": []any{1234.5, 1200.0, 1100.0, 1000.0, 900.0, 800.0},
		},
		"miners":  map[string]any{"now": 8.0, "max": 10.0},
		"workers": 5.0,
		"upstreams": map[string]any{
			"active": 2.0, "sleep": 1.0, "error": 0.0, "total": 3.0, "ratio": 4.0,
		},
		"results": map[string]any{
			"accepted": 80.0, "rejected": 20.0, "invalid": 1.0, "expired": 2.0,
			"latency": 45.0, "hashes_total": 123456789.0, "avg_time": 12.0,
		},
		"resources": map[string]any{
			"memory": map[string]any{"total": 4.0 * (1 << 30), "free": 1.0 * (1 << 30)},
		},
		"connection": map[string]any{"total": 1500.0},
	}
}

func reply(data map[string]any) dtesting.FetchResult {
	return dtesting.FetchResult{Data: data}
}

func TestNewModel(t *testing.T) {
	tm := newTestModel(t, true)
	m := tm.m

	assert.Equal(t, ViewLoading, m.Surface().Mode())
	assert.False(t, m.quitting)
	assert.False(t, m.showHelp)
	assert.False(t, m.viewportReady)
	assert.Equal(t, 0, tm.fetcher.CallCount(), "nothing is fetched before Init")
	assert.Equal(t, dashboard.StateUnconfigured, m.Session().State(), "no poll has run yet")
}

func TestModel_Init(t *testing.T) {
	tm := newTestModel(t, true, reply(samplePayload()))

	cmd := tm.m.Init()
	require.NotNil(t, cmd)
	assert.Equal(t, dashboard.StateFetching, tm.m.Session().State())
	assert.Len(t, tm.timers.pending, 1, "refresh timer armed")
}

func TestModel_FirstPollShowsDashboard(t *testing.T) {
	tm := newTestModel(t, true, reply(samplePayload()))
	tm.start()

	s := tm.m.Surface()
	require.Equal(t, ViewDashboard, s.Mode())
	assert.Equal(t, "Online", s.Text(dashboard.FieldStatus))
	assert.Equal(t, dashboard.ClassStatusOnline, s.Class(dashboard.FieldStatus))
	assert.Equal(t, []string{testURL}, tm.fetcher.Calls)
	assert.Nil(t, s.chart, "chart is drawn after the layout settles")

	tm.settle()
	require.NotNil(t, s.chart)
	assert.Equal(t, dashboard.FieldCanvas, s.chart.canvas)
	assert.Equal(t, "1.23 MH/s", s.Text(dashboard.FieldHashrate))
}

func TestModel_RefreshTimer(t *testing.T) {
	tm := newTestModel(t, true, reply(samplePayload()))
	tm.start()
	tm.settle()
	require.Equal(t, 1, tm.fetcher.CallCount())
	require.Len(t, tm.timers.pending, 1, "settling keeps only the refresh timer")

	msgs := tm.timers.take()
	require.Len(t, msgs, 1)
	tm.send(msgs[0])

	assert.Equal(t, 2, tm.fetcher.CallCount())
	assert.Equal(t, 1, tm.timers.refreshes(), "refresh timer re-armed")

	tm.settle()
	assert.Equal(t, 1, tm.timers.refreshes(), "chart redraw does not add refresh timers")
}

func TestModel_FetchFailureShowsError(t *testing.T) {
	tm := newTestModel(t, true, dtesting.FetchResult{Err: errors.New("connection refused")})
	tm.start()

	assert.Equal(t, ViewError, tm.m.Surface().Mode())
	assert.Contains(t, tm.m.Surface().errMsg, "Failed to fetch data")
	assert.Equal(t, "Offline", tm.m.Surface().Text(dashboard.FieldStatus))
}

func TestModel_UnconfiguredOpensForm(t *testing.T) {
	tm := newTestModel(t, false)
	tm.start()

	s := tm.m.Surface()
	assert.Equal(t, ViewConfig, s.Mode())
	assert.False(t, s.form.CanCancel)
	assert.True(t, s.input.Focused())
	assert.Equal(t, 0, tm.fetcher.CallCount())
}

func TestModel_WindowSize(t *testing.T) {
	tm := newTestModel(t, true, reply(samplePayload()))
	tm.start()

	tm.send(tea.WindowSizeMsg{Width: 140, Height: 40})

	assert.True(t, tm.m.viewportReady)
	assert.Equal(t, 140, tm.m.bodyViewport.Width)
	assert.Equal(t, 40-headerHeight-footerHeight, tm.m.bodyViewport.Height)
	assert.Equal(t, LayoutWide, tm.m.LayoutMode())

	tm.send(tea.WindowSizeMsg{Width: 60, Height: 2})
	assert.Equal(t, 1, tm.m.bodyViewport.Height, "viewport keeps at least one line")
	assert.Equal(t, LayoutNarrow, tm.m.LayoutMode())
}

func TestModel_LayoutMode(t *testing.T) {
	tests := []struct {
		width    int
		expected LayoutMode
	}{
		{width: 0, expected: LayoutStandard},
		{width: 60, expected: LayoutNarrow},
		{width: 89, expected: LayoutNarrow},
		{width: 90, expected: LayoutStandard},
		{width: 129, expected: LayoutStandard},
		{width: 130, expected: LayoutWide},
		{width: 200, expected: LayoutWide},
	}

	for _, tt := range tests {
		m := Model{width: tt.width}
		assert.Equal(t, tt.expected, m.LayoutMode(), "width %d", tt.width)
	}
}

func TestModel_View_Quitting(t *testing.T) {
	m := Model{quitting: true}
	assert.Equal(t, "", m.View())
}

func TestModel_CloseCancelsRequests(t *testing.T) {
	tm := newTestModel(t, true, reply(samplePayload()))
	tm.m.session.Start()
	cmd := tm.m.loop.drain()

	tm.m.Close()
	tm.run(cmd)

	assert.NotEqual(t, ViewDashboard, tm.m.Surface().Mode(), "results after shutdown are dropped")
}

func TestTeaLoop_Handle(t *testing.T) {
	timers := &timerRecorder{}
	l := &teaLoop{tick: timers.tick}

	var calls []string
	l.After(time.Second, func() { calls = append(calls, "after") })
	l.Every(time.Second, func() { calls = append(calls, "old") })
	l.Every(2*time.Second, func() { calls = append(calls, "every") })

	msgs := timers.take()
	require.Len(t, msgs, 3)
	for _, msg := range msgs {
		assert.True(t, l.handle(msg))
	}
	assert.Equal(t, []string{"after", "every"}, calls, "replaced timer is dropped")
	assert.Len(t, timers.pending, 1, "live refresh timer re-armed")

	assert.False(t, l.handle("unrelated"))
}

func TestTeaLoop_Go(t *testing.T) {
	l := newTeaLoop()

	var applied bool
	l.Go(func() func() {
		return func() { applied = true }
	})

	cmd := l.drain()
	require.NotNil(t, cmd)
	assert.Nil(t, l.drain(), "drain empties the queue")

	msg := cmd()
	assert.False(t, applied, "apply runs on the loop, not in the task")
	assert.True(t, l.handle(msg))
	assert.True(t, applied)
}

func TestTeaLoop_Drain(t *testing.T) {
	l := &teaLoop{tick: (&timerRecorder{}).tick}
	assert.Nil(t, l.drain())

	l.Go(func() func() { return nil })
	l.Go(func() func() { return nil })
	msgs := collect(l.drain())
	assert.Len(t, msgs, 2)
}
