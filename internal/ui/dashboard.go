package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"keywatch/internal/shared"
)

var (
	styleTitle  = tcell.StyleDefault.Bold(true)
	styleWarn   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleEnded  = tcell.StyleDefault.Foreground(tcell.ColorGray).StrikeThrough(true)
	styleSelect = tcell.StyleDefault.Reverse(true)
)

func DrawDashboard(app *AppState) {
	s := app.Screen
	s.Clear()

	w, h := s.Size()
	nowUTC := time.Now().UTC()

	PutStyled(s, 0, 0, "Keylogger Detection Tool", styleTitle)
	PutString(s, MaxInt(w-24, 26), 0, nowUTC.Format("2006-01-02 15:04:05 UTC"))

	controls := styleDim
	if !app.Scanning {
		controls = tcell.StyleDefault
	}
	PutStyled(s, 0, 2, TruncateToWidth("[b] Basic Scan                     "+shared.ModeBasic.Description(), w), controls)
	PutStyled(s, 0, 3, TruncateToWidth("[a] Aggressive Scan (Recommended)  "+shared.ModeAggressive.Description(), w), controls)

	PutString(s, 0, 5, ProgressBar(MinInt(w, 80), app.Progress))

	status := "Status: " + app.Status
	if app.Scanning {
		status = fmt.Sprintf("Status: %s (%s)", app.Status, app.ScanMode)
	}
	statusStyle := tcell.StyleDefault
	if app.Status == StatusFound {
		statusStyle = styleWarn
	}
	PutStyled(s, 0, 6, TruncateToWidth(status, w), statusStyle)

	if app.LastError != "" {
		PutString(s, 0, 7, TruncateToWidth(app.LastError, w))
	}

	if h >= 1 {
		PutStyled(s, 0, h-1,
			TruncateToWidth("b basic | a aggressive | UP/DOWN select | ENTER inspect | k end task | ? about | q quit", w),
			styleDim)
	}

	y := 9
	if app.Result == nil {
		return
	}

	fs := app.Result.Findings
	if len(fs) == 0 {
		PutString(s, 2, y, EmptyResult)
		return
	}

	PutString(s, 0, y, TruncateToWidth(fmt.Sprintf(
		"%d finding(s), %d processes scored, %d unreadable, %s mode",
		len(fs), app.Result.Scanned, app.Result.Skipped, app.Result.Mode), w))
	y += 2

	for i, f := range fs {
		if y >= h-2 {
			PutStyled(s, 2, y, fmt.Sprintf("... %d more", len(fs)-i), styleDim)
			break
		}

		arrow := " "
		style := tcell.StyleDefault
		if i == app.SelectedIdx {
			arrow = ">"
			style = styleSelect
		}
		line := fmt.Sprintf("%s %s | PID %d | Risk %d%%", arrow, shared.TrimName(f.Name, 28), f.Pid, f.Score)
		if app.Ended[f.Pid] {
			line += "  [Task Ended]"
			if i != app.SelectedIdx {
				style = styleEnded
			}
		}
		PutStyled(s, 0, y, TruncateToWidth(line, w), style)
		y++

		for _, r := range f.Reasons {
			if y >= h-2 {
				break
			}
			PutString(s, 4, y, TruncateToWidth("* "+r, w-4))
			y++
		}
	}
}

// ProgressBar renders pct as a fixed-width text bar including the numeric
// percentage.
func ProgressBar(width int, pct float64) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	label := fmt.Sprintf(" %3.0f%%", pct)
	inner := width - 2 - len(label)
	if inner < 1 {
		return strings.TrimSpace(label)
	}
	filled := int(pct / 100 * float64(inner))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", inner-filled) + "]" + label
}

func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
