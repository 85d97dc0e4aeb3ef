package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/stride/config"
)

// PanelWidth is the tuning panel width, used by callers to anchor it.
const PanelWidth int32 = 260

const panelHeight int32 = 700

// Action is what a panel frame asks of the host.
type Action struct {
	// TuningChanged reports that a slider moved and cc holds new values.
	TuningChanged bool
	// Preset names the preset button clicked this frame, or empty.
	Preset string
	// TogglePause requests a pause flip.
	TogglePause bool
	// SpeedDelta adjusts steps per update by -1, 0 or +1.
	SpeedDelta int
}

// TuningPanel binds raygui sliders to the character config so the
// controller can be retuned while the demo runs. Draw reports slider edits
// and button clicks so the caller can push them onto the live controller.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	visible  bool
}

// NewTuningPanel creates a tuning panel anchored at the given position.
func NewTuningPanel(x, y int32) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// Toggle switches panel visibility.
func (p *TuningPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Visible returns whether the panel is shown.
func (p *TuningPanel) Visible() bool {
	return p.visible
}

// Draw renders the panel, writes slider edits back into cc, and reports
// what the host should do in response.
func (p *TuningPanel) Draw(cc *config.CharacterConfig, paused bool) Action {
	var act Action
	if !p.visible {
		return act
	}

	r := p.renderer
	padding := float32(r.Theme.Padding)
	x := float32(p.x) + padding
	y := float32(p.y) + padding
	innerWidth := float32(PanelWidth) - padding*2

	r.DrawPanel(p.x, p.y, PanelWidth, panelHeight)

	rl.DrawText("Character Tuning", int32(x), int32(y), 20, rl.White)
	y += 28

	section := func(title string) {
		y = float32(r.DrawSectionHeader(int32(x), int32(y), title)) + 2
	}

	section("Preset")
	half := (innerWidth - 8) / 2
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 22}, "Character") {
		act.Preset = "character"
	}
	if gui.Button(rl.Rectangle{X: x + half + 8, Y: y, Width: half, Height: 22}, "Starship") {
		act.Preset = "starship"
	}
	y += 30

	section("Sim")
	third := (innerWidth - 16) / 3
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: third, Height: 22}, toggleText(paused, "Resume", "Pause")) {
		act.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + third + 8, Y: y, Width: third, Height: 22}, "< Slower") {
		act.SpeedDelta = -1
	}
	if gui.Button(rl.Rectangle{X: x + (third+8)*2, Y: y, Width: third, Height: 22}, "Faster >") {
		act.SpeedDelta = 1
	}
	y += 30

	changed := false

	section("Float")
	changed = p.bind(x, &y, "Ride height", "%.2f", &cc.Float.Distance, 0.4, 2.0) || changed
	changed = p.bind(x, &y, "Spring strength", "%.0f", &cc.Float.Strength, 0, 400) || changed
	changed = p.bind(x, &y, "Damping ratio", "%.2f", &cc.Float.Damping, 0, 1.5) || changed

	section("Movement")
	changed = p.bind(x, &y, "Acceleration", "%.0f", &cc.Movement.Acceleration, 0, 300) || changed
	changed = p.bind(x, &y, "Max speed", "%.1f", &cc.Movement.MaxSpeed, 1, 20) || changed
	changed = p.bind(x, &y, "Max force", "%.1f", &cc.Movement.MaxForce, 0, 40) || changed

	section("Jump")
	changed = p.bind(x, &y, "Initial force", "%.1f", &cc.Jump.InitialForce, 0, 30) || changed
	changed = p.bind(x, &y, "Duration", "%.2f", &cc.Jump.Duration, 0, 1) || changed
	changed = p.bind(x, &y, "Coyote time", "%.2f", &cc.Jump.CoyoteTime, 0, 0.5) || changed
	changed = p.bind(x, &y, "Buffer time", "%.2f", &cc.Jump.BufferTime, 0, 0.5) || changed

	section("Upright")
	changed = p.bind(x, &y, "Spring strength", "%.0f", &cc.Upright.Strength, 0, 40) || changed
	changed = p.bind(x, &y, "Damping ratio", "%.2f", &cc.Upright.Damping, 0, 1.5) || changed

	act.TuningChanged = changed
	return act
}

// bind draws one labelled slider row bound to a config field and reports
// whether the slider moved.
func (p *TuningPanel) bind(x float32, y *float32, label, format string, field *float64, minVal, maxVal float32) bool {
	r := p.renderer

	rl.DrawText(label, int32(x), int32(*y), r.Theme.HeaderFontSize, r.Theme.LabelColor)
	*y += 16

	value := float32(*field)
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(PanelWidth) - 90, Height: 16},
		"", "",
		value, minVal, maxVal,
	)
	rl.DrawText(fmt.Sprintf(format, next), int32(x+float32(PanelWidth)-80), int32(*y+1), r.Theme.HeaderFontSize, r.Theme.ValueColor)
	*y += 24

	if next != value {
		*field = float64(next)
		return true
	}
	return false
}

func toggleText(on bool, whenOn, whenOff string) string {
	if on {
		return whenOn
	}
	return whenOff
}
