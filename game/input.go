package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/stride/components"
)

// handleInput polls raylib and rebuilds the pending player intent plus the
// sim control toggles.
func (g *Game) handleInput() {
	if g.camera == nil {
		return
	}

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.respawnPlayer()
	}

	if rl.IsKeyPressed(rl.KeyF1) {
		g.debugDraw = !g.debugDraw
	}

	if rl.IsKeyPressed(rl.KeyTab) && g.panel != nil {
		g.panel.Toggle()
	}

	g.pendingInput = g.movementInput()

	g.handleCameraInput()
}

// movementInput maps WASD onto the ground plane relative to the camera.
func (g *Game) movementInput() components.PlayerInput {
	var in components.PlayerInput

	var move mgl32.Vec3
	if rl.IsKeyDown(rl.KeyW) {
		move = move.Add(g.camera.FlatForward())
	}
	if rl.IsKeyDown(rl.KeyS) {
		move = move.Sub(g.camera.FlatForward())
	}
	if rl.IsKeyDown(rl.KeyD) {
		move = move.Add(g.camera.FlatRight())
	}
	if rl.IsKeyDown(rl.KeyA) {
		move = move.Sub(g.camera.FlatRight())
	}
	if move.LenSqr() > 0 {
		move = move.Normalize()
	}

	in.Movement = move
	in.Jumping = rl.IsKeyDown(rl.KeySpace)
	return in
}

// handleCameraInput orbits with the right mouse button, zooms with the
// wheel, and recenters with Home.
func (g *Game) handleCameraInput() {
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		g.camera.Orbit(-delta.X*0.005, delta.Y*0.005)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.Dolly(1 - wheel*0.1)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		cfg := g.config()
		g.camera.Reset(
			g.playerBody().Position,
			float32(cfg.Camera.Distance),
			float32(cfg.Camera.Pitch),
			float32(cfg.Camera.Yaw),
		)
	}
}

// updateCamera smooths the camera toward the player once per frame.
func (g *Game) updateCamera() {
	if g.camera == nil {
		return
	}
	g.camera.Follow(g.playerBody().Position, rl.GetFrameTime())
}
