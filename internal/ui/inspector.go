package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

func DrawInspector(app *AppState) {
	s := app.Screen
	s.Clear()

	w, h := s.Size()

	f := app.Selected()
	if f == nil {
		PutString(s, 0, 2, "Process no longer present. Press ESC.")
		return
	}

	y := 1
	title := fmt.Sprintf(" %s (PID %d) ", f.Name, f.Pid)
	sep := strings.Repeat("─", MinInt(len(title), w))

	PutString(s, 0, y, sep)
	y++
	PutStyled(s, 0, y, TruncateToWidth(title, w), styleTitle)
	y++
	PutString(s, 0, y, sep)
	y += 2

	risk := fmt.Sprintf("Risk:  %d%%", f.Score)
	if app.Ended[f.Pid] {
		risk += "  (Task Ended)"
	}
	PutString(s, 0, y, risk)
	y += 2

	PutString(s, 0, y, "Reasons:")
	y++
	if len(f.Reasons) == 0 {
		PutString(s, 2, y, "(none)")
		y++
	}
	for _, r := range f.Reasons {
		PutString(s, 2, y, TruncateToWidth("* "+r, w-2))
		y++
	}
	y++

	feat := f.Features
	PutString(s, 0, y, "Observed:")
	y++

	window := "none (hidden)"
	if feat.Visible {
		window = "visible"
	}
	PutString(s, 2, y, "Window:  "+window)
	y++
	PutString(s, 2, y, fmt.Sprintf("Threads: %d", feat.Threads))
	y++
	PutString(s, 2, y, "Uptime:  "+FormatUptime(feat.Uptime))
	y++
	started := "(unknown)"
	if !feat.StartedAt.IsZero() {
		started = humanize.Time(feat.StartedAt)
	}
	PutString(s, 2, y, "Started: "+started)
	y++
	PutString(s, 2, y, fmt.Sprintf("CPU:     %.1f%% of one core", feat.CPU*100))

	if app.LastError != "" && h >= 2 {
		PutString(s, 0, h-2, TruncateToWidth("Status: "+app.LastError, w))
	}

	PutStyled(s, 0, h-1, "ESC return | k end task | q quit", styleDim)
}

// FormatUptime renders d as compact h/m/s, e.g. "2h05m" or "42s".
func FormatUptime(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	secs := int64(d / time.Second)
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	mins := secs / 60
	secs = secs % 60
	if mins < 60 {
		return fmt.Sprintf("%dm%02ds", mins, secs)
	}
	hours := mins / 60
	mins = mins % 60
	if hours < 24 {
		return fmt.Sprintf("%dh%02dm", hours, mins)
	}
	days := hours / 24
	hours = hours % 24
	return fmt.Sprintf("%dd%dh", days, hours)
}
