package monitor

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/xmdash/internal/dashboard"
	"github.com/rileyhilliard/xmdash/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardModel(t *testing.T) *testModel {
	t.Helper()
	tm := newTestModel(t, true, reply(samplePayload()))
	tm.start()
	tm.settle()
	require.Equal(t, ViewDashboard, tm.m.Surface().Mode())
	require.NotNil(t, tm.m.Surface().chart)
	return tm
}

func isQuit(cmd tea.Cmd) bool {
	for _, msg := range collect(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func TestKeys_Quit(t *testing.T) {
	for _, k := range []string{KeyQuit, KeyQuitAlt} {
		t.Run(k, func(t *testing.T) {
			tm := dashboardModel(t)
			cmd := tm.key(k)
			assert.True(t, isQuit(cmd))
			assert.True(t, tm.m.quitting)
			assert.Equal(t, "", tm.m.View())
		})
	}
}

func TestKeys_QuitAltWorksInForm(t *testing.T) {
	tm := newTestModel(t, false)
	tm.start()
	require.Equal(t, ViewConfig, tm.m.Surface().Mode())

	assert.False(t, isQuit(tm.key(KeyQuit)), "q is typed into the form")
	assert.Equal(t, "q", tm.m.Surface().input.Value())

	assert.True(t, isQuit(tm.key(KeyQuitAlt)))
}

func TestKeys_Refresh(t *testing.T) {
	tm := dashboardModel(t)
	tm.key(KeyRefresh)
	assert.Equal(t, 2, tm.fetcher.CallCount())
}

func TestKeys_ConfigureAndCancel(t *testing.T) {
	tm := dashboardModel(t)

	tm.key(KeyConfigure)
	s := tm.m.Surface()
	require.Equal(t, ViewConfig, s.Mode())
	assert.True(t, s.form.CanCancel)
	assert.Equal(t, testURL, s.input.Value(), "form is prefilled")

	tm.key(KeyCollapse)
	assert.NotEqual(t, ViewConfig, s.Mode())
	assert.False(t, tm.m.Session().Editing())
}

func TestKeys_SaveRejectsBadURL(t *testing.T) {
	tm := newTestModel(t, false)
	tm.start()

	tm.key(KeySubmit)
	s := tm.m.Surface()
	assert.Equal(t, ViewConfig, s.Mode())
	assert.Equal(t, dashboard.MsgEmptyURL, s.alert)

	tm.key("x")
	assert.Empty(t, s.alert, "typing clears the alert")

	tm.key(KeySubmit)
	assert.Equal(t, dashboard.MsgInvalidURL, s.alert)

	tm.key(KeyCollapse)
	assert.Equal(t, ViewConfig, s.Mode(), "first-run form cannot be cancelled")
}

func TestKeys_SaveValidURL(t *testing.T) {
	tm := newTestModel(t, false, reply(samplePayload()))
	tm.start()

	tm.key(testURL)
	tm.key(KeySubmit)

	stored, ok := tm.store.Value(storage.KeyEndpoint)
	assert.True(t, ok)
	assert.Equal(t, testURL, stored)
	assert.Equal(t, []string{testURL}, tm.fetcher.Calls)
	assert.Equal(t, ViewDashboard, tm.m.Surface().Mode())
}

func TestKeys_TimeRange(t *testing.T) {
	tests := []struct {
		key      string
		expected dashboard.TimeRange
		control  dashboard.FieldID
	}{
		{key: "1", expected: dashboard.TimeRange(time.Minute), control: dashboard.FieldRange1m},
		{key: "2", expected: dashboard.TimeRange(5 * time.Minute), control: dashboard.FieldRange5m},
		{key: "3", expected: dashboard.TimeRange(time.Hour), control: dashboard.FieldRange1h},
		{key: "4", expected: dashboard.TimeRange(24 * time.Hour), control: dashboard.FieldRange1d},
		{key: "5", expected: dashboard.RangeLifetime, control: dashboard.FieldRangeAll},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			tm := dashboardModel(t)
			if tt.key == "5" {
				tm.key("1")
			}
			tm.key(tt.key)
			assert.Equal(t, tt.expected, tm.m.Session().ChartState().Range)
			assert.Equal(t, dashboard.ClassRangeActive, tm.m.Surface().Class(tt.control))
		})
	}
}

func TestKeys_ToggleSeries(t *testing.T) {
	tm := dashboardModel(t)

	tm.key(KeyToggleHash)
	state := tm.m.Session().ChartState()
	assert.False(t, state.HashrateVisible)
	assert.True(t, state.MinersVisible)

	chart := tm.m.Surface().chart
	require.NotNil(t, chart)
	for _, s := range chart.data.Series {
		assert.Equal(t, s.ID != dashboard.SeriesHashrate, s.Visible, "series %s", s.ID)
	}

	tm.key(KeyToggleMiners)
	tm.key(KeyToggleHash)
	state = tm.m.Session().ChartState()
	assert.True(t, state.HashrateVisible)
	assert.False(t, state.MinersVisible)
}

func TestKeys_ToggleSeriesWithoutChart(t *testing.T) {
	tm := newTestModel(t, true, reply(samplePayload()))
	tm.start()
	require.Nil(t, tm.m.Surface().chart)

	tm.key(KeyToggleMiners)
	assert.False(t, tm.m.Session().ChartState().MinersVisible)
}

func TestKeys_RefreshRate(t *testing.T) {
	tm := dashboardModel(t)
	require.Equal(t, dashboard.DefaultRefreshRate, tm.m.Session().RefreshRate())

	tm.key(KeySlower)
	assert.Equal(t, 30*time.Second, tm.m.Session().RefreshRate())
	assert.Equal(t, dashboard.ClassRefreshActive, tm.m.Surface().Class(dashboard.FieldRefresh30s))

	tm.key(KeyFaster)
	tm.key(KeyFaster)
	assert.Equal(t, 5*time.Second, tm.m.Session().RefreshRate())

	tm.key(KeyFaster)
	assert.Equal(t, 5*time.Second, tm.m.Session().RefreshRate(), "rate stops at the fastest option")

	stored, _ := tm.store.Value(storage.KeyRefreshRate)
	assert.Equal(t, "5000", stored)
}

func TestKeys_Help(t *testing.T) {
	tm := dashboardModel(t)

	tm.key(KeyToggleHelp)
	assert.True(t, tm.m.showHelp)
	assert.Contains(t, tm.m.View(), "Keyboard Shortcuts")

	tm.key(KeyCollapse)
	assert.False(t, tm.m.showHelp)

	tm.key(KeyToggleHelp)
	tm.key(KeyConfigure)
	assert.False(t, tm.m.showHelp, "opening the form closes help")
}

func TestKeys_Unhandled(t *testing.T) {
	tm := dashboardModel(t)
	handled, cmd := tm.m.HandleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	assert.False(t, handled)
	assert.Nil(t, cmd)
}
