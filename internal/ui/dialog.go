package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

const aboutText = `Keylogger Detection Tool

Created for testing and educational purposes.
Analyzes running processes and assigns risk scores.
Higher scores indicate more suspicious behavior.
Use responsibly.`

var styleBox = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)

// drawBox paints a centered box over the current frame.
func drawBox(s tcell.Screen, lines []string) {
	w, h := s.Size()

	bw := 0
	for _, l := range lines {
		bw = MaxInt(bw, len(l))
	}
	bw = MinInt(bw+4, w)
	bh := MinInt(len(lines)+2, h)
	x0 := MaxInt((w-bw)/2, 0)
	y0 := MaxInt((h-bh)/2, 0)

	for y := y0; y < y0+bh; y++ {
		for x := x0; x < x0+bw; x++ {
			s.SetContent(x, y, ' ', nil, styleBox)
		}
	}
	for i, l := range lines {
		if i+1 >= bh {
			break
		}
		PutStyled(s, x0+2, y0+1+i, TruncateToWidth(l, bw-4), styleBox)
	}
}

func DrawConfirm(app *AppState) {
	if app.Pending == nil {
		return
	}
	lines := []string{
		"Confirm End Task",
		"",
	}
	lines = append(lines, strings.SplitAfter(app.Pending.Prompt(), "? ")...)
	lines = append(lines, "", "[y] Yes, I understand    [n] No")
	drawBox(app.Screen, lines)
}

func DrawAbout(app *AppState) {
	lines := strings.Split(aboutText, "\n")
	lines = append(lines, "", "press any key")
	drawBox(app.Screen, lines)
}
