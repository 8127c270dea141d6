package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arkanoid/internal/arkanoid"
	"github.com/vovakirdan/arkanoid/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// ballFrames are the decorative ball sprites, one per animation frame.
var ballFrames = []rune{'●', '◉', '○', '◉'}

const (
	minScreenW = 20
	minScreenH = 8
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// viewport maps world units onto a rectangle of screen cells.
type viewport struct {
	x0, y0 int
	w, h   int
	sx, sy float64
}

func newViewport(world arkanoid.World, x, y, w, h int) viewport {
	v := viewport{x0: x, y0: y, w: w, h: h}
	if world.Width > 0 {
		v.sx = float64(w) / world.Width
	}
	if world.Height > 0 {
		v.sy = float64(h) / world.Height
	}
	return v
}

// cells returns the cell rectangle covering r. Every visible entity gets at
// least one cell.
func (v viewport) cells(r core.Rect) (x, y, w, h int) {
	x = int(math.Round(r.X * v.sx))
	y = int(math.Round(r.Y * v.sy))
	w = max(int(math.Round(r.Right()*v.sx))-x, 1)
	h = max(int(math.Round(r.Bottom()*v.sy))-y, 1)

	x = core.Clamp(x, 0, v.w-1)
	y = core.Clamp(y, 0, v.h-1)
	w = min(w, v.w-x)
	h = min(h, v.h-y)
	return v.x0 + x, v.y0 + y, w, h
}

// point returns the cell containing the world point (x, y).
func (v viewport) point(x, y float64) (int, int) {
	cx := core.Clamp(int(x*v.sx), 0, v.w-1)
	cy := core.Clamp(int(y*v.sy), 0, v.h-1)
	return v.x0 + cx, v.y0 + cy
}

// drawSession renders a snapshot into s: a HUD on the first row and the
// scaled playfield inside a box below it. status is shown in the HUD.
func drawSession(s *core.Screen, snap *arkanoid.Snapshot, status string) {
	s.Clear()
	if s.Width() < minScreenW || s.Height() < minScreenH {
		s.DrawTextCentered(s.Height()/2, "terminal too small")
		return
	}

	drawHUD(s, snap, status)

	boxY := 1
	boxW, boxH := s.Width(), s.Height()-boxY
	s.DrawBox(0, boxY, boxW, boxH, core.ColorGray)
	v := newViewport(snap.World, 1, boxY+1, boxW-2, boxH-2)

	for _, b := range snap.Blocks {
		if !b.Active {
			continue
		}
		x, y, w, h := v.cells(b.Rect)
		if w >= 3 {
			w-- // gap between neighbours
		}
		s.FillRect(x, y, w, h, '█', core.RowColor(b.Row))
	}

	px, py, pw, _ := v.cells(snap.Paddle)
	s.FillRect(px, py, pw, 1, '▀', core.ColorCyan)

	cx, cy := snap.Ball.Center()
	bx, by := v.point(cx, cy)
	s.SetColored(bx, by, ballFrames[snap.BallFrame%len(ballFrames)], core.ColorWhite)

	if snap.Holding && snap.Phase == arkanoid.PhasePlaying {
		s.DrawTextCentered(v.y0+v.h*2/3, "SPACE to launch")
	}
}

func drawHUD(s *core.Screen, snap *arkanoid.Snapshot, status string) {
	s.DrawTextColored(1, 0, "ARKANOID", core.ColorYellow)

	score := fmt.Sprintf("Score %d/%d", snap.Score, snap.Total)
	s.DrawText(s.Width()-len(score)-1, 0, score)

	if status != "" {
		s.DrawTextCentered(0, status)
	}
}

// drawOverlay draws a centered box containing lines.
func drawOverlay(s *core.Screen, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, lipgloss.Width(l))
	}
	width += 4
	height := len(lines) + 2

	x := (s.Width() - width) / 2
	y := (s.Height() - height) / 2
	s.FillRect(x, y, width, height, ' ', core.ColorDefault)
	s.DrawBox(x, y, width, height, core.ColorWhite)
	for i, l := range lines {
		s.DrawTextCentered(y+1+i, l)
	}
}

// endLines returns the overlay text for a finished session.
func endLines(snap *arkanoid.Snapshot) []string {
	title := "GAME OVER"
	if snap.Phase == arkanoid.PhaseWon {
		title = "YOU WIN!"
	}
	return []string{title, fmt.Sprintf("Score %d/%d", snap.Score, snap.Total)}
}

// centerText centers text horizontally within the given width.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
