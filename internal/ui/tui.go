package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"keywatch/internal/remedy"
	"keywatch/internal/shared"
)

// scanMsg carries either a progress value or, last, the final result from
// the scan goroutine to the UI loop.
type scanMsg struct {
	progress float64
	result   *shared.ScanResult
}

// Run owns the terminal until the user quits or ctx is cancelled.
func Run(ctx context.Context, app *AppState, scanner shared.Scanner, gate *remedy.Gate) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	return loop(ctx, app, s, scanner, gate)
}

func loop(ctx context.Context, app *AppState, s tcell.Screen, scanner shared.Scanner, gate *remedy.Gate) error {
	app.Screen = s
	app.View = ViewDashboard

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	scanCh := make(chan scanMsg, 64)
	send := func(m scanMsg) {
		select {
		case scanCh <- m:
		case <-ctx.Done():
		}
	}
	startScan := func(mode shared.DetectionMode) {
		if !app.BeginScan(mode) {
			return
		}
		go func() {
			res := scanner.Scan(ctx, mode, func(p float64) {
				send(scanMsg{progress: p})
			})
			send(scanMsg{result: &res})
		}()
	}

	for {
		draw(app)
		s.Show()

		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch tev := ev.(type) {
			case *tcell.EventResize:
				s.Sync()
			case *tcell.EventKey:
				if quit := handleKey(app, tev, gate, startScan); quit {
					return nil
				}
			}

		case m := <-scanCh:
			if m.result != nil {
				app.FinishScan(*m.result)
				break
			}
			app.ApplyProgress(m.progress)
		}
	}
}

func draw(app *AppState) {
	switch app.View {
	case ViewInspect:
		DrawInspector(app)
	case ViewConfirm:
		if app.returnView == ViewInspect {
			DrawInspector(app)
		} else {
			DrawDashboard(app)
		}
		DrawConfirm(app)
	case ViewAbout:
		DrawDashboard(app)
		DrawAbout(app)
	default:
		DrawDashboard(app)
	}
}

// handleKey applies one key press and reports whether the app should quit.
func handleKey(app *AppState, ev *tcell.EventKey, gate *remedy.Gate, startScan func(shared.DetectionMode)) bool {
	switch app.View {
	case ViewConfirm:
		switch {
		case ev.Rune() == 'y' || ev.Rune() == 'Y':
			app.ResolveEnd(gate, true)
		case ev.Rune() == 'n' || ev.Rune() == 'N' || ev.Key() == tcell.KeyEscape:
			app.ResolveEnd(gate, false)
		}
		return false

	case ViewAbout:
		app.CloseAbout()
		return false

	case ViewInspect:
		switch {
		case ev.Key() == tcell.KeyEscape:
			app.View = ViewDashboard
		case ev.Rune() == 'k' || ev.Rune() == 'K':
			app.RequestEnd(gate)
		case ev.Rune() == '?':
			app.ShowAbout()
		case ev.Rune() == 'q':
			return true
		}
		return false
	}

	switch ev.Key() {
	case tcell.KeyUp:
		app.MoveSelection(-1)
	case tcell.KeyDown:
		app.MoveSelection(1)
	case tcell.KeyEnter:
		if f := app.Selected(); f != nil {
			app.InspectPID = f.Pid
			app.View = ViewInspect
		}
	case tcell.KeyCtrlC:
		return true
	}

	switch ev.Rune() {
	case 'b', 'B':
		startScan(shared.ModeBasic)
	case 'a', 'A':
		startScan(shared.ModeAggressive)
	case 'k', 'K':
		if !app.Scanning {
			app.RequestEnd(gate)
		}
	case '?':
		app.ShowAbout()
	case 'q':
		return true
	}
	return false
}
