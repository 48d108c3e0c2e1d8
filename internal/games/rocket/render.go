package rocket

import (
	"fmt"
	"math"

	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/games/rocket/sim"
)

// Minimum screen that still fits the HUD and the overlays.
const (
	minScreenW = 30
	minScreenH = 8
)

// shipGlyphs are indexed by heading octant, starting east and turning clockwise.
var shipGlyphs = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// ShipGlyph returns the arrow closest to the heading.
func ShipGlyph(heading float64) rune {
	octant := int(math.Round(core.NormalizeAngle(heading)/(math.Pi/4))) % 8
	return shipGlyphs[octant]
}

func particleCell(p sim.ParticleView) (rune, core.Color) {
	color := core.ColorEmber
	switch {
	case p.Trail:
		color = core.ColorThrust
	case p.Size > 2.5:
		color = core.ColorSpark
	}
	switch {
	case p.Size > 3:
		return '*', color
	case p.Size > 1.5:
		return '+', color
	default:
		return '.', color
	}
}

// Render draws the last snapshot. The screen is pre-cleared by the caller.
func (g *Game) Render(dst *core.Screen) {
	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorAlert)
		return
	}
	dst.Clear()

	snap := g.snap
	for _, p := range snap.Particles {
		r, c := particleCell(p)
		g.plot(dst, p, r, c)
	}
	for _, b := range snap.Bullets {
		g.plot(dst, b, '•', core.ColorBullet)
	}
	for _, e := range snap.Enemies {
		color := core.ColorDrifter
		if e.Chase {
			color = core.ColorChaser
		}
		g.plot(dst, e, 'O', color)
	}
	g.plot(dst, snap.Player, ShipGlyph(snap.Player.Heading), core.ColorShip)

	g.drawHUD(dst)

	switch {
	case snap.GameOver:
		g.drawOverlay(dst, "GAME OVER", fmt.Sprintf("Score: %d", snap.Score), "R restart   Q quit")
	case g.paused:
		g.drawOverlay(dst, "PAUSED", "", "P resume   Q quit")
	}
}

// plot maps an arena position to a screen cell below the HUD.
func (g *Game) plot(dst *core.Screen, p core.Position, r rune, c core.Color) {
	x, y := p.Position()
	col := int(x / g.cfg.Arena.CellWidth)
	row := hudRows + int(y/g.cfg.Arena.CellHeight)
	dst.SetColor(col, row, r, c)
}

func (g *Game) drawHUD(dst *core.Screen) {
	snap := g.snap
	left := fmt.Sprintf(" %s  Score: %d", g.Title(), snap.Score)
	right := fmt.Sprintf("Lvl %3.0f%%  Enemies %d ", snap.Level*100, len(snap.Enemies))
	dst.FillRect(core.NewRect(0, 0, dst.Width(), hudRows), ' ', core.ColorHUD)
	dst.DrawTextColor(0, 0, left, core.ColorHUD)
	dst.DrawTextColor(dst.Width()-len(right), 0, right, core.ColorDim)
}

func (g *Game) drawOverlay(dst *core.Screen, title, line, hint string) {
	const boxW, boxH = 26, 6
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorDim)
	dst.DrawTextCentered(box.Y+1, title, core.ColorAlert)
	if line != "" {
		dst.DrawTextCentered(box.Y+2, line, core.ColorHUD)
	}
	dst.DrawTextCentered(box.Y+4, hint, core.ColorDim)
}
