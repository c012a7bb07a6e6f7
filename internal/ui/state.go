package ui

import (
	"github.com/gdamore/tcell/v2"

	"keywatch/internal/remedy"
	"keywatch/internal/shared"
)

type View int

const (
	ViewDashboard View = iota
	ViewInspect
	ViewConfirm
	ViewAbout
)

const (
	StatusIdle     = "Idle"
	StatusScanning = "Scanning..."
	StatusFound    = "Suspicious behavior detected"
	StatusClean    = "No high-risk behavior detected"
	EmptyResult    = "No processes exceeded detection threshold."
)

// AppState is owned by the UI loop. The scan goroutine never touches it;
// it only sends messages that the loop applies.
type AppState struct {
	Screen tcell.Screen

	Status    string
	LastError string

	Scanning bool
	ScanMode shared.DetectionMode
	Progress float64
	Result   *shared.ScanResult

	View        View
	returnView  View
	SelectedIdx int
	SelectedPID int
	InspectPID  int

	Pending *remedy.Request
	Ended   map[int]bool
}

func NewAppState() *AppState {
	return &AppState{
		Status:      StatusIdle,
		SelectedIdx: -1,
		Ended:       make(map[int]bool),
	}
}

func (app *AppState) Findings() []shared.Finding {
	if app.Result == nil {
		return nil
	}
	return app.Result.Findings
}

// BeginScan clears the previous result and marks a scan in flight. It
// returns false while another scan is still running.
func (app *AppState) BeginScan(mode shared.DetectionMode) bool {
	if app.Scanning {
		return false
	}
	app.Scanning = true
	app.ScanMode = mode
	app.Progress = 0
	app.Result = nil
	app.Ended = make(map[int]bool)
	app.Pending = nil
	app.SelectedIdx = -1
	app.SelectedPID = 0
	app.LastError = ""
	app.Status = StatusScanning
	app.View = ViewDashboard
	return true
}

func (app *AppState) ApplyProgress(p float64) {
	if !app.Scanning || p < app.Progress {
		return
	}
	if p > 100 {
		p = 100
	}
	app.Progress = p
}

func (app *AppState) FinishScan(res shared.ScanResult) {
	app.Scanning = false
	app.Progress = 100
	app.Result = &res

	if len(res.Findings) == 0 {
		app.Status = StatusClean
		app.SelectedIdx = -1
		app.SelectedPID = 0
		return
	}
	app.Status = StatusFound
	app.SelectedIdx = 0
	app.SelectedPID = res.Findings[0].Pid
}

func (app *AppState) MoveSelection(delta int) {
	fs := app.Findings()
	if len(fs) == 0 {
		return
	}
	idx := app.SelectedIdx + delta
	if idx < 0 {
		idx = 0
	}
	if idx > len(fs)-1 {
		idx = len(fs) - 1
	}
	app.SelectedIdx = idx
	app.SelectedPID = fs[idx].Pid
}

func (app *AppState) FindIndexByPID(pid int) int {
	for i, f := range app.Findings() {
		if f.Pid == pid {
			return i
		}
	}
	return -1
}

// Selected returns the finding under the cursor, or the inspected one.
func (app *AppState) Selected() *shared.Finding {
	pid := app.SelectedPID
	if app.View == ViewInspect {
		pid = app.InspectPID
	}
	idx := app.FindIndexByPID(pid)
	if idx < 0 {
		return nil
	}
	return &app.Result.Findings[idx]
}

// RequestEnd arms the gate for the selected finding and switches to the
// confirmation dialog.
func (app *AppState) RequestEnd(gate *remedy.Gate) {
	f := app.Selected()
	if f == nil {
		app.LastError = "Process no longer present"
		return
	}
	if app.Ended[f.Pid] {
		app.LastError = "Task already ended"
		return
	}
	req := gate.Arm(f.Pid, f.Name)
	app.Pending = &req
	app.returnView = app.View
	app.View = ViewConfirm
}

// ResolveEnd finishes the confirmation dialog. Only an explicit yes kills.
func (app *AppState) ResolveEnd(gate *remedy.Gate, confirmed bool) {
	if app.Pending == nil {
		app.View = app.returnView
		return
	}
	req := *app.Pending
	app.Pending = nil
	app.View = app.returnView

	if !confirmed {
		gate.Cancel(req)
		app.LastError = ""
		return
	}

	out := gate.Confirm(req)
	if out.OK {
		app.Ended[out.PID] = true
		app.LastError = out.Reason
		return
	}
	app.LastError = "Failed: " + out.Reason
}

func (app *AppState) ShowAbout() {
	if app.View == ViewConfirm || app.View == ViewAbout {
		return
	}
	app.returnView = app.View
	app.View = ViewAbout
}

func (app *AppState) CloseAbout() {
	app.View = app.returnView
}

/* ---------- helpers ---------- */

func PutString(s tcell.Screen, x, y int, text string) {
	PutStyled(s, x, y, text, tcell.StyleDefault)
}

func PutStyled(s tcell.Screen, x, y int, text string, style tcell.Style) {
	i := 0
	for _, r := range text {
		s.SetContent(x+i, y, r, nil, style)
		i++
	}
}

func TruncateToWidth(s string, w int) string {
	if w <= 0 || len(s) <= w {
		return s
	}
	if w <= 3 {
		return s[:w]
	}
	return s[:w-3] + "..."
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
