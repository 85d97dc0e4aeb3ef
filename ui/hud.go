package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title          string
	Tick           int32
	FPS            int32
	Speed          float32
	VerticalSpeed  float32
	MaxSpeed       float32
	Grounded       bool
	Jumping        bool
	JumpsLeft      int
	CastDistance   float32
	Preset         string
	Paused         bool
	StepsPerUpdate int
	ScreenWidth    int32
	ScreenHeight   int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	// Title
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	// Simulation info
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Step: %dx | FPS: %d | Preset: %s", data.Tick, data.StepsPerUpdate, data.FPS, data.Preset),
		10, 35, 16, rl.LightGray,
	)

	// Velocity
	rl.DrawText(
		fmt.Sprintf("Speed: %.2f / %.1f m/s | Vertical: %+.2f m/s", data.Speed, data.MaxSpeed, data.VerticalSpeed),
		10, 55, 16, rl.LightGray,
	)
	if data.MaxSpeed > 0 {
		h.renderer.DrawBar(10, 75, "Speed", data.Speed/data.MaxSpeed, 220)
	}

	// Ground contact
	groundText := "Airborne"
	groundColor := rl.SkyBlue
	if data.Grounded {
		groundText = fmt.Sprintf("Grounded (cast %.2f)", data.CastDistance)
		groundColor = rl.Green
	} else if data.CastDistance >= 0 {
		groundText = fmt.Sprintf("Airborne (cast %.2f)", data.CastDistance)
	}
	rl.DrawText(groundText, 10, 95, 16, groundColor)

	// Jump state
	jumpText := fmt.Sprintf("Jumps left: %d", data.JumpsLeft)
	jumpColor := rl.LightGray
	if data.Jumping {
		jumpText = fmt.Sprintf("Jumping | Jumps left: %d", data.JumpsLeft)
		jumpColor = rl.Gold
	}
	rl.DrawText(jumpText, 10, 115, 16, jumpColor)

	// Status
	if data.Paused {
		rl.DrawText("PAUSED", 10, 135, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
