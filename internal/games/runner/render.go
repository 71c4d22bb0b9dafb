package runner

import (
	"fmt"
	"math"

	"github.com/krackeddevs/sprint-runner/internal/core"
)

// Display characters
const (
	GroundChar   = '═'
	PlayerChar   = '█'
	ObstacleChar = '▓'
	PickupChar   = '◆'
)

// blinkFrames is the half period of the blinking prompt, in frames.
const blinkFrames = 30

// viewport maps world units onto screen cells. Row 0 is reserved for the HUD.
type viewport struct {
	scaleX, scaleY float64
	top            int
}

func newViewport(dst *core.Screen, worldW, worldH float64) viewport {
	rows := dst.Height() - 1
	return viewport{
		scaleX: float64(dst.Width()) / worldW,
		scaleY: float64(rows) / worldH,
		top:    1,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.scaleX))
}

func (v viewport) row(y float64) int {
	return v.top + int(math.Floor(y*v.scaleY))
}

// rect converts a world box to the cells it covers; every visible body is at
// least one cell wide and tall.
func (v viewport) rect(b core.Box) core.Rect {
	x0, y0 := v.col(b.X), v.row(b.Y)
	x1, y1 := v.col(b.Right()), v.row(b.Bottom())
	return core.NewRect(x0, y0, core.Max(1, x1-x0), core.Max(1, y1-y0))
}

// Render draws the field, the HUD and any overlay.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	if s.game == nil {
		return
	}

	w := s.cfg.World
	vp := newViewport(dst, w.Width, w.Height)

	groundColor := core.ColorGreen
	if s.flash > 0 {
		groundColor = core.ColorBrightGreen
	}
	dst.DrawHLine(0, vp.row(w.GroundY()), dst.Width(), GroundChar, groundColor)

	for _, o := range s.game.Obstacles() {
		dst.DrawRect(vp.rect(o.Body.Bounds()), ObstacleChar, core.ColorRed)
	}

	sc := s.cfg.Spawn
	for _, p := range s.game.Pickups() {
		b := p.Body.Bounds().Translate(0, p.FloatOffset(sc.FloatAmplitude, sc.FloatHalfPeriodMs))
		dst.DrawRect(vp.rect(b), PickupChar, core.ColorCyan)
	}

	st := s.game.State()
	playerColor := core.ColorSkin
	if st.IsGameOver() {
		playerColor = core.ColorRed
	}
	if pb := s.world.Player(); pb != nil {
		dst.DrawRect(vp.rect(pb.Bounds()), PlayerChar, playerColor)
	}

	for _, p := range s.popups {
		rise := popupRise * p.ageMs / popupLifeMs
		dst.DrawText(vp.col(p.x), vp.row(p.y-rise), p.text, core.ColorYellow)
	}

	s.drawHUD(dst, st)

	switch {
	case s.game.ShowStartPrompt():
		if (s.frame/blinkFrames)%2 == 0 {
			dst.DrawTextCentered(dst.Height()/2, "PRESS SPACE TO START", core.ColorWhite)
		}
	case s.paused:
		drawCenteredBox(dst, core.ColorCyan, "PAUSED", "", "Press P to resume")
	case st.IsGameOver():
		s.drawBurnout(dst)
	}
}

func (s *Session) drawHUD(dst *core.Screen, st GameState) {
	day := fmt.Sprintf("DAY %d OF SPRINT", st.SprintDay)
	score := fmt.Sprintf("SCORE: %d", st.Score)
	shipped := fmt.Sprintf("SHIPPED: %d", st.FeaturesShipped)

	dst.DrawText(1, 0, day, core.ColorCyan)
	dst.DrawTextCentered(0, score, core.ColorGreen)
	dst.DrawText(dst.Width()-len(shipped)-1, 0, shipped, core.ColorYellow)
}

func (s *Session) drawBurnout(dst *core.Screen) {
	sum := s.game.Summary()
	drawCenteredBox(dst, core.ColorBrightRed,
		"BURNOUT!",
		"Hit by: "+sum.Cause,
		fmt.Sprintf("You survived %d days", sum.DaysSurvived),
		fmt.Sprintf("and shipped %d features", sum.FeaturesShipped),
		"",
		fmt.Sprintf("FINAL SCORE: %d", sum.FinalScore),
		"Press R to restart",
	)
}

// drawCenteredBox draws a framed message box; the first line is the title.
func drawCenteredBox(dst *core.Screen, c core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = core.Max(width, len([]rune(l)))
	}

	boxW := width + 4
	boxH := len(lines) + 2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	for i, l := range lines {
		color := core.ColorWhite
		if i == 0 {
			color = c
		}
		x := box.X + (boxW-len([]rune(l)))/2
		dst.DrawText(x, box.Y+1+i, l, color)
	}
}
