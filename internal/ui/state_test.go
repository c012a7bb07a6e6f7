package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keywatch/internal/remedy"
	"keywatch/internal/shared"
)

func sampleResult() shared.ScanResult {
	return shared.ScanResult{
		Mode: shared.ModeAggressive,
		Findings: []shared.Finding{
			{Name: "python.exe", Pid: 300, Score: 100},
			{Name: "agent.exe", Pid: 301, Score: 80},
			{Name: "helper.exe", Pid: 302, Score: 55},
		},
	}
}

type killer struct {
	calls []int
	err   error
}

func (k *killer) kill(pid int) error {
	k.calls = append(k.calls, pid)
	return k.err
}

func newGate(k *killer) *remedy.Gate {
	return remedy.NewGate(k.kill, shared.DefaultConfig(), nil)
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestScanLifecycle(t *testing.T) {
	app := NewAppState()
	assert.Equal(t, StatusIdle, app.Status)

	require.True(t, app.BeginScan(shared.ModeAggressive))
	assert.False(t, app.BeginScan(shared.ModeBasic), "second scan while one is in flight")
	assert.Equal(t, shared.ModeAggressive, app.ScanMode)
	assert.Equal(t, StatusScanning, app.Status)

	app.ApplyProgress(40)
	app.ApplyProgress(20)
	assert.Equal(t, 40.0, app.Progress)

	app.FinishScan(sampleResult())
	assert.False(t, app.Scanning)
	assert.Equal(t, 100.0, app.Progress)
	assert.Equal(t, StatusFound, app.Status)
	assert.Equal(t, 0, app.SelectedIdx)
	assert.Equal(t, 300, app.SelectedPID)

	app.ApplyProgress(10)
	assert.Equal(t, 100.0, app.Progress, "late progress is ignored")

	require.True(t, app.BeginScan(shared.ModeBasic))
	assert.Nil(t, app.Result, "previous result is cleared, not merged")
	app.FinishScan(shared.ScanResult{})
	assert.Equal(t, StatusClean, app.Status)
	assert.Equal(t, -1, app.SelectedIdx)
	assert.Nil(t, app.Selected())
}

func TestMoveSelection(t *testing.T) {
	app := NewAppState()
	app.MoveSelection(1)
	assert.Equal(t, -1, app.SelectedIdx, "nothing to select")

	app.BeginScan(shared.ModeAggressive)
	app.FinishScan(sampleResult())

	app.MoveSelection(1)
	app.MoveSelection(1)
	app.MoveSelection(1)
	assert.Equal(t, 2, app.SelectedIdx)
	assert.Equal(t, 302, app.SelectedPID)

	app.MoveSelection(-5)
	assert.Equal(t, 0, app.SelectedIdx)
}

func TestEndTaskFlow(t *testing.T) {
	k := &killer{}
	gate := newGate(k)
	app := NewAppState()
	app.BeginScan(shared.ModeAggressive)
	app.FinishScan(sampleResult())
	app.MoveSelection(1)

	app.RequestEnd(gate)
	require.NotNil(t, app.Pending)
	assert.Equal(t, ViewConfirm, app.View)
	assert.Equal(t, 301, app.Pending.PID)
	assert.Empty(t, k.calls, "nothing killed before confirmation")

	app.ResolveEnd(gate, false)
	assert.Equal(t, ViewDashboard, app.View)
	assert.Empty(t, k.calls)
	assert.False(t, app.Ended[301])

	app.RequestEnd(gate)
	app.ResolveEnd(gate, true)
	assert.Equal(t, []int{301}, k.calls)
	assert.True(t, app.Ended[301])
	assert.Contains(t, app.LastError, "Ended PID 301")

	app.RequestEnd(gate)
	assert.Nil(t, app.Pending, "ended findings cannot be ended again")
	assert.Equal(t, "Task already ended", app.LastError)
}

func TestEndTaskFailureIsShownDistinctly(t *testing.T) {
	k := &killer{err: errors.New("access denied")}
	gate := newGate(k)
	app := NewAppState()
	app.BeginScan(shared.ModeAggressive)
	app.FinishScan(sampleResult())

	app.RequestEnd(gate)
	app.ResolveEnd(gate, true)

	assert.False(t, app.Ended[300])
	assert.Equal(t, "Failed: Could not terminate PID 300: access denied", app.LastError)
}

func TestHandleKey(t *testing.T) {
	k := &killer{}
	gate := newGate(k)
	app := NewAppState()

	var started []shared.DetectionMode
	start := func(m shared.DetectionMode) {
		if app.BeginScan(m) {
			started = append(started, m)
		}
	}

	assert.False(t, handleKey(app, key('a'), gate, start))
	assert.False(t, handleKey(app, key('b'), gate, start), "ignored while scanning")
	assert.Equal(t, []shared.DetectionMode{shared.ModeAggressive}, started)

	app.FinishScan(sampleResult())

	handleKey(app, tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), gate, start)
	handleKey(app, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), gate, start)
	assert.Equal(t, ViewInspect, app.View)
	assert.Equal(t, 301, app.InspectPID)

	handleKey(app, key('k'), gate, start)
	assert.Equal(t, ViewConfirm, app.View)
	handleKey(app, key('x'), gate, start)
	assert.Equal(t, ViewConfirm, app.View, "only y or n leave the dialog")
	handleKey(app, key('y'), gate, start)
	assert.Equal(t, ViewInspect, app.View)
	assert.Equal(t, []int{301}, k.calls)

	handleKey(app, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), gate, start)
	assert.Equal(t, ViewDashboard, app.View)

	handleKey(app, key('?'), gate, start)
	assert.Equal(t, ViewAbout, app.View)
	handleKey(app, key('z'), gate, start)
	assert.Equal(t, ViewDashboard, app.View)

	assert.True(t, handleKey(app, key('q'), gate, start))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[..........]   0%", ProgressBar(17, 0))
	assert.Equal(t, "[#####.....]  50%", ProgressBar(17, 50))
	assert.Equal(t, "[##########] 100%", ProgressBar(17, 100))
	assert.Equal(t, "[##########] 100%", ProgressBar(17, 250))
	assert.Equal(t, "42%", ProgressBar(4, 42))
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "-"},
		{42 * time.Second, "42s"},
		{5*time.Minute + 3*time.Second, "5m03s"},
		{2*time.Hour + 5*time.Minute, "2h05m"},
		{50 * time.Hour, "2d2h"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUptime(tt.d))
	}
}

func TestTruncateToWidth(t *testing.T) {
	assert.Equal(t, "abc", TruncateToWidth("abc", 5))
	assert.Equal(t, "ab...", TruncateToWidth("abcdefgh", 5))
	assert.Equal(t, "ab", TruncateToWidth("abcdefgh", 2))
}
