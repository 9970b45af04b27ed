package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/space-defender/internal/core"
	"github.com/vovakirdan/space-defender/internal/engine"
)

// Visual characters for rendering
const (
	ShipChar       = '='
	ShipNoseChar   = '^'
	HazardChar     = 'O'
	HazardEdgeL    = '('
	HazardEdgeR    = ')'
	ProjectileChar = '|'
	BreachChar     = '─'
)

// hudRows is the number of screen rows above the field.
const hudRows = 1

// HUD carries frame-loop values that are not part of the simulation.
type HUD struct {
	FPS       float64
	HighScore int
}

// projection maps field coordinates onto the screen area below the HUD.
type projection struct {
	field  core.Rect
	scaleX float64
	scaleY float64
}

// FieldRect returns the screen area the field is drawn into.
func FieldRect(s *core.Screen) core.Rect {
	return core.NewRect(0, hudRows, s.Width(), max(s.Height()-hudRows, 0))
}

func newProjection(s *core.Screen, snap engine.Snapshot) projection {
	field := FieldRect(s)
	p := projection{field: field}
	if snap.Width > 0 {
		p.scaleX = float64(field.W) / snap.Width
	}
	if snap.Height > 0 {
		p.scaleY = float64(field.H) / snap.Height
	}
	return p
}

// cell returns the screen cell for a field point. ok is false for points
// outside the drawn field, such as hazards that have not descended into view yet.
func (p projection) cell(x, y float64) (cx, cy int, ok bool) {
	cx = core.Clamp(int(math.Floor(x*p.scaleX)), 0, max(p.field.W-1, 0))
	cy = p.field.Y + int(math.Floor(y*p.scaleY))
	if !p.field.Contains(cx, cy) {
		return 0, 0, false
	}
	return cx, cy, true
}

// span converts a field length to a cell count along x.
func (p projection) span(l float64) int {
	return int(math.Round(l * p.scaleX))
}

// DrawSnapshot renders one snapshot into the screen buffer: HUD line, breach
// line, hazards, projectiles, ship and the end-of-round overlay.
func DrawSnapshot(s *core.Screen, snap engine.Snapshot, hud HUD) {
	s.Clear()
	if s.Width() == 0 || s.Height() == 0 {
		return
	}

	drawHUD(s, snap, hud)

	p := newProjection(s, snap)
	if p.field.H == 0 {
		return
	}

	if _, by, ok := p.cell(0, snap.BreachY); ok {
		s.DrawHLine(0, by, s.Width(), BreachChar, core.ColorGray)
	}

	for _, h := range snap.Hazards {
		if !h.Alive {
			continue
		}
		cx, cy, ok := p.cell(h.X, h.Y)
		if !ok {
			continue
		}
		if r := p.span(h.Radius); r > 0 {
			s.SetCell(cx-r, cy, HazardEdgeL, core.ColorOrange)
			s.SetCell(cx+r, cy, HazardEdgeR, core.ColorOrange)
		}
		s.SetCell(cx, cy, HazardChar, core.ColorOrange)
	}

	for _, pr := range snap.Projectiles {
		if !pr.Active {
			continue
		}
		if cx, cy, ok := p.cell(pr.X, pr.Y); ok {
			s.SetCell(cx, cy, ProjectileChar, core.ColorYellow)
		}
	}

	if cx, cy, ok := p.cell(snap.Player.X, snap.Player.Y); ok {
		hw := max(p.span(snap.Player.HalfWidth), 1)
		s.DrawHLine(cx-hw, cy, 2*hw+1, ShipChar, core.ColorCyan)
		s.SetCell(cx, cy, ShipNoseChar, core.ColorBrightWhite)
	}

	if snap.Terminal() {
		drawOverlay(s, snap)
	}
}

func drawHUD(s *core.Screen, snap engine.Snapshot, hud HUD) {
	left := fmt.Sprintf("SCORE %d/%d  ROUND %d", snap.Score, snap.Target, snap.Round)
	s.DrawTextColor(1, 0, left, core.ColorBrightWhite)
	end := 1 + len(left)
	if hud.HighScore > 0 {
		best := fmt.Sprintf("  BEST %d", hud.HighScore)
		s.DrawText(end, 0, best)
		end += len(best)
	}

	// FPS is dropped rather than drawn over the score on narrow screens.
	right := fmt.Sprintf("FPS %.0f", hud.FPS)
	x := s.Width() - len(right) - 1
	if x > end {
		s.DrawTextColor(x, 0, right, core.ColorGray)
	}
}

// FrameText draws snap onto a fresh width x height screen and returns it as
// uncolored lines with trailing blanks trimmed.
func FrameText(snap engine.Snapshot, hud HUD, width, height int) []string {
	s := core.NewScreen(width, height)
	DrawSnapshot(s, snap, hud)

	lines := make([]string, s.Height())
	for y := range lines {
		lines[y] = strings.TrimRight(s.Row(y), " ")
	}
	return lines
}

// drawOverlay draws the end-of-round message box centered on the field.
func drawOverlay(s *core.Screen, snap engine.Snapshot) {
	title, color := "GAME OVER", core.ColorRed
	if snap.State() == engine.RoundWon {
		title, color = "YOU WON!", core.ColorGreen
	}
	lines := []string{
		title,
		fmt.Sprintf("Score: %d", snap.Score),
		"Press R to restart, Q to quit",
	}

	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	box := core.NewRect((s.Width()-width)/2-2, (s.Height()-len(lines))/2-1, width+4, len(lines)+2)
	s.DrawRect(core.NewRect(box.X+1, box.Y+1, box.W-2, box.H-2), ' ')
	s.DrawBox(box, color)

	s.DrawTextCentered(box.Y+1, lines[0], color)
	for i, l := range lines[1:] {
		s.DrawTextCentered(box.Y+2+i, l, core.ColorWhite)
	}
}
