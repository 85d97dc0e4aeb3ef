package game

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/stride/physics"
	"github.com/pthm-cable/stride/ui"
)

// Scene palette.
var (
	colorBackground = rl.Color{R: 24, G: 26, B: 31, A: 255}
	colorFloor      = rl.Color{R: 52, G: 56, B: 62, A: 255}
	colorRamp       = rl.Color{R: 96, G: 106, B: 120, A: 255}
	colorPlatform   = rl.Color{R: 198, G: 160, B: 82, A: 255}
	colorCrate      = rl.Color{R: 150, G: 118, B: 86, A: 255}
	colorPlayer     = rl.Color{R: 92, G: 160, B: 228, A: 255}
	colorPlayerAir  = rl.Color{R: 160, G: 120, B: 220, A: 255}
	colorWire       = rl.Color{R: 18, G: 20, B: 24, A: 255}
)

// Draw renders one frame: the 3D scene pass, optional controller debug
// geometry, then the HUD and tuning panel.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	cam := rl.Camera3D{
		Position:   rlVec(g.camera.Position()),
		Target:     rlVec(g.camera.Target),
		Up:         rl.Vector3{Y: 1},
		Fovy:       g.camera.FOV,
		Projection: rl.CameraPerspective,
	}

	rl.BeginMode3D(cam)
	g.drawScene()
	if g.debugDraw {
		g.drawControllerDebug()
	}
	rl.EndMode3D()

	g.drawUI()

	rl.EndDrawing()
}

// drawScene renders every physics body by shape. Body order is insertion
// order, so the floor draws before everything that sits on it.
func (g *Game) drawScene() {
	playerID := uint64(0)
	if pb := g.playerBody(); pb != nil {
		playerID = pb.ID
	}

	for _, body := range g.physics.Bodies() {
		switch body.Shape.Kind {
		case physics.ShapePlane:
			rl.DrawPlane(rlVec(body.Position), rl.Vector2{X: 60, Y: 60}, colorFloor)
			rl.DrawGrid(30, 2)

		case physics.ShapeSphere:
			color := colorCrate
			if body.ID == playerID {
				color = g.playerColor()
			}
			rl.DrawSphere(rlVec(body.Position), body.Shape.Radius, color)
			rl.DrawSphereWires(rlVec(body.Position), body.Shape.Radius, 8, 8, colorWire)

		case physics.ShapeBox:
			drawBox(body, boxColor(body))
		}
	}
}

func boxColor(body *physics.Body) rl.Color {
	switch body.Kind {
	case physics.Kinematic:
		return colorPlatform
	case physics.Dynamic:
		return colorCrate
	default:
		return colorRamp
	}
}

// drawBox renders a box body, using the matrix stack for rotated bodies so
// ramps draw at their actual incline.
func drawBox(body *physics.Body, color rl.Color) {
	size := rlVec(body.Shape.HalfExtents.Mul(2))
	axis, angle := axisAngle(body.Rotation)
	if angle == 0 {
		rl.DrawCubeV(rlVec(body.Position), size, color)
		rl.DrawCubeWiresV(rlVec(body.Position), size, colorWire)
		return
	}

	rl.PushMatrix()
	rl.Translatef(body.Position.X(), body.Position.Y(), body.Position.Z())
	rl.Rotatef(angle, axis.X(), axis.Y(), axis.Z())
	rl.DrawCubeV(rl.Vector3{}, size, color)
	rl.DrawCubeWiresV(rl.Vector3{}, size, colorWire)
	rl.PopMatrix()
}

// drawControllerDebug renders the ground probe, the contact, and the
// velocity of every character.
func (g *Game) drawControllerDebug() {
	query := g.characterFilter.Query()
	for query.Next() {
		_, ref, char, _ := query.Get()
		body := g.physics.Body(ref.ID)
		if body == nil {
			continue
		}
		ctrl := &char.Controller
		up := ctrl.Gravity.UpVector
		pos := body.Position

		castEnd := pos.Sub(up.Mul(ctrl.Caster.CastLength))
		rl.DrawLine3D(rlVec(pos), rlVec(castEnd), rl.Yellow)

		if ctrl.Cast.HasCurrent {
			hit := ctrl.Cast.Current
			pointColor := rl.Orange
			if hit.Stable {
				pointColor = rl.Green
			}
			rl.DrawSphere(rlVec(hit.Point), 0.06, pointColor)
			rl.DrawLine3D(rlVec(hit.Point), rlVec(hit.Point.Add(hit.Normal.Mul(0.5))), pointColor)
		}

		rl.DrawLine3D(rlVec(pos), rlVec(pos.Add(body.Velocity.Mul(0.25))), rl.SkyBlue)
	}
}

func (g *Game) playerColor() rl.Color {
	char := g.characterMap.Get(g.player)
	if char == nil {
		return colorPlayer
	}
	ctrl := &char.Controller
	if ctrl.Jump.JumpTimer > 0 {
		return rl.Gold
	}
	if !ctrl.Cast.Grounded {
		return colorPlayerAir
	}
	return colorPlayer
}

// drawUI draws the HUD, the controls line, and the tuning panel. Slider
// changes are pushed straight onto the player's controller so retuning takes
// effect on the next tick.
func (g *Game) drawUI() {
	cfg := g.config()
	char := g.characterMap.Get(g.player)
	ctrl := &char.Controller

	castDistance := float32(-1)
	if ctrl.Cast.HasCurrent {
		castDistance = ctrl.Cast.Current.Distance
	}

	var velocity mgl32.Vec3
	if body := g.playerBody(); body != nil {
		velocity = body.Velocity
	}

	g.hud.Draw(ui.HUDData{
		Title:          "Stride",
		Tick:           g.tick,
		FPS:            rl.GetFPS(),
		Speed:          planarSpeed(velocity, ctrl.Gravity.UpVector),
		VerticalSpeed:  velocity.Dot(ctrl.Gravity.UpVector),
		MaxSpeed:       ctrl.Movement.MaxSpeed,
		Grounded:       ctrl.Cast.Grounded,
		Jumping:        ctrl.Jump.JumpTimer > 0,
		JumpsLeft:      ctrl.Jump.RemainingJumps,
		CastDistance:   castDistance,
		Preset:         cfg.Character.Preset,
		Paused:         g.paused,
		StepsPerUpdate: g.stepsPerUpdate,
		ScreenWidth:    int32(cfg.Screen.Width),
		ScreenHeight:   int32(cfg.Screen.Height),
	})

	if g.panel.Visible() {
		act := g.panel.Draw(&cfg.Character, g.paused)
		if act.TuningChanged && cfg.Character.Preset != "starship" {
			applyTuning(ctrl, &cfg.Character)
		}
		if act.Preset != "" && act.Preset != cfg.Character.Preset {
			cfg.Character.Preset = act.Preset
			g.applyPreset(cfg)
		}
		if act.TogglePause {
			g.paused = !g.paused
		}
		if act.SpeedDelta != 0 {
			g.stepsPerUpdate += act.SpeedDelta
			if g.stepsPerUpdate < 1 {
				g.stepsPerUpdate = 1
			}
			if g.stepsPerUpdate > 10 {
				g.stepsPerUpdate = 10
			}
		}
	}

	g.hud.DrawControls(int32(cfg.Screen.Width), int32(cfg.Screen.Height),
		"WASD: Move | SPACE: Jump | RMB: Orbit | Wheel: Zoom | P: Pause | < >: Speed | R: Respawn | F1: Debug | TAB: Tuning")
}

func rlVec(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// axisAngle converts a rotation quaternion to an axis and an angle in
// degrees. Near-identity rotations report a zero angle.
func axisAngle(q mgl32.Quat) (mgl32.Vec3, float32) {
	w := clamp32(q.W, -1, 1)
	angle := 2 * math32.Acos(w)
	s := math32.Sqrt(1 - w*w)
	if s < 1e-4 || angle < 1e-4 {
		return mgl32.Vec3{0, 1, 0}, 0
	}
	return q.V.Mul(1 / s), angle / deg
}
