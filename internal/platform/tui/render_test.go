package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/arkanoid/internal/arkanoid"
	"github.com/vovakirdan/arkanoid/internal/core"
)

func TestViewportCells(t *testing.T) {
	world := arkanoid.World{Width: 640, Height: 360}
	v := newViewport(world, 1, 2, 64, 36)

	tests := []struct {
		name       string
		rect       core.Rect
		x, y, w, h int
	}{
		{"block", core.NewRect(60, 30, 60, 20), 7, 5, 6, 2},
		{"tiny entity keeps one cell", core.NewRect(0, 0, 1, 1), 1, 2, 1, 1},
		{"outside is clamped", core.NewRect(700, 400, 20, 20), 64, 37, 1, 1},
		{"whole world", core.NewRect(0, 0, 640, 360), 1, 2, 64, 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := v.cells(tt.rect)
			if x != tt.x || y != tt.y || w != tt.w || h != tt.h {
				t.Errorf("cells(%+v) = (%d, %d, %d, %d), expected (%d, %d, %d, %d)",
					tt.rect, x, y, w, h, tt.x, tt.y, tt.w, tt.h)
			}
		})
	}
}

func TestViewportPoint(t *testing.T) {
	v := newViewport(arkanoid.World{Width: 640, Height: 360}, 1, 2, 64, 36)

	if x, y := v.point(0, 0); x != 1 || y != 2 {
		t.Errorf("point(0, 0) = (%d, %d), expected (1, 2)", x, y)
	}
	if x, y := v.point(639.9, 359.9); x != 64 || y != 37 {
		t.Errorf("point at far corner = (%d, %d), expected (64, 37)", x, y)
	}
}

func TestViewportEmptyWorld(t *testing.T) {
	v := newViewport(arkanoid.World{}, 0, 0, 10, 10)
	if x, y := v.point(50, 50); x != 0 || y != 0 {
		t.Errorf("empty world should map everything to the origin, got (%d, %d)", x, y)
	}
}

func countRune(s *core.Screen, r rune) int {
	n := 0
	for y := range s.Height() {
		n += strings.Count(s.Row(y), string(r))
	}
	return n
}

func TestDrawSession(t *testing.T) {
	session := arkanoid.NewSession(arkanoid.DefaultConfig(), 1, nil)
	snap := session.Snapshot()

	s := core.NewScreen(80, 20)
	drawSession(s, &snap, "")

	if !strings.Contains(s.Row(0), "ARKANOID") || !strings.Contains(s.Row(0), "Score 0/32") {
		t.Errorf("HUD row = %q", s.Row(0))
	}
	if s.Get(0, 1) != '┌' || s.Get(79, 19) != '┘' {
		t.Error("playfield should be boxed below the HUD")
	}
	if countRune(s, '█') == 0 {
		t.Error("active blocks should be drawn")
	}
	if countRune(s, '▀') == 0 {
		t.Error("paddle should be drawn")
	}
	if countRune(s, ballFrames[0]) != 1 {
		t.Error("ball should be drawn exactly once")
	}
	if !strings.Contains(s.String(), "SPACE to launch") {
		t.Error("docked ball should show the launch hint")
	}
}

func TestDrawSessionSkipsInactiveBlocks(t *testing.T) {
	session := arkanoid.NewSession(arkanoid.DefaultConfig(), 1, nil)
	snap := session.Snapshot()
	full := core.NewScreen(80, 20)
	drawSession(full, &snap, "")

	for i := range snap.Blocks {
		snap.Blocks[i].Active = false
	}
	empty := core.NewScreen(80, 20)
	drawSession(empty, &snap, "")

	if countRune(empty, '█') != 0 {
		t.Errorf("inactive blocks should not be drawn, found %d cells", countRune(empty, '█'))
	}
	if countRune(full, '█') == 0 {
		t.Error("sanity: full grid should draw blocks")
	}
}

func TestDrawSessionBallFrame(t *testing.T) {
	session := arkanoid.NewSession(arkanoid.DefaultConfig(), 1, nil)
	session.AdvanceAnimation()
	snap := session.Snapshot()

	s := core.NewScreen(80, 20)
	drawSession(s, &snap, "")
	if countRune(s, ballFrames[1]) != 1 {
		t.Errorf("ball glyph should follow the animation frame %d", snap.BallFrame)
	}
}

func TestDrawSessionTooSmall(t *testing.T) {
	session := arkanoid.NewSession(arkanoid.DefaultConfig(), 1, nil)
	snap := session.Snapshot()

	s := core.NewScreen(19, 10)
	drawSession(s, &snap, "")
	if !strings.Contains(s.String(), "terminal too small") {
		t.Errorf("small screen should show a notice, got:\n%s", s.String())
	}
}

func TestEndLines(t *testing.T) {
	tests := []struct {
		phase arkanoid.Phase
		title string
	}{
		{arkanoid.PhaseWon, "YOU WIN!"},
		{arkanoid.PhaseLost, "GAME OVER"},
	}

	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			snap := arkanoid.Snapshot{Phase: tt.phase, Score: 7, Total: 32}
			lines := endLines(&snap)
			if len(lines) != 2 || lines[0] != tt.title || lines[1] != "Score 7/32" {
				t.Errorf("endLines = %q", lines)
			}
		})
	}
}

func TestDrawOverlay(t *testing.T) {
	s := core.NewScreen(40, 10)
	s.FillRect(0, 0, 40, 10, '#', core.ColorDefault)
	drawOverlay(s, "GAME OVER", "Score 1/2")

	out := s.String()
	if !strings.Contains(out, "GAME OVER") || !strings.Contains(out, "Score 1/2") {
		t.Errorf("overlay text missing:\n%s", out)
	}
	if countRune(s, '┌') != 1 {
		t.Error("overlay should be boxed")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.DrawTextColored(2, 0, "cd", core.ColorRed)
	s.DrawText(0, 1, "ef")

	out := RenderScreen(s)
	if strings.Count(out, "\n") != 1 {
		t.Errorf("RenderScreen should emit one line per row, got %q", out)
	}
	for _, want := range []string{"ab", "cd", "ef"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen output %q should contain %q", out, want)
		}
	}
}
