package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/stride/components"
	"github.com/pthm-cable/stride/config"
	"github.com/pthm-cable/stride/controller"
	"github.com/pthm-cable/stride/physics"
)

// buildScene populates the physics world and ECS with the configured scene.
func (g *Game) buildScene(cfg *config.Config) {
	switch cfg.Scene.Name {
	case "flat":
		g.addFloor()
	default:
		g.buildPlayground(cfg)
	}
}

// buildPlayground sets up the default test course: a flat floor, a walkable
// ramp, a ramp past the slope limit, a shuttling platform, and loose crates.
func (g *Game) buildPlayground(cfg *config.Config) {
	g.addFloor()

	// Walkable ramp, just inside the 45 degree default limit. Rotated about
	// Z so walking +X goes uphill.
	g.addRamp(mgl32.Vec3{8, 1.9, 0}, 30*deg)

	// Steep ramp past the limit; the controller slips back down it.
	g.addRamp(mgl32.Vec3{-8, 3.3, 0}, -60*deg)

	g.spawnPlatform(cfg)
	g.spawnCrates(cfg)
}

func (g *Game) addFloor() uint64 {
	floor := physics.NewBody(physics.Static, physics.Plane(mgl32.Vec3{0, 1, 0}))
	return g.physics.AddBody(floor)
}

// addRamp places a static box tilted about the Z axis. Positive angles rise
// toward +X.
func (g *Game) addRamp(pos mgl32.Vec3, angle float32) uint64 {
	ramp := physics.NewBody(physics.Static, physics.Box(mgl32.Vec3{4, 0.25, 3}))
	ramp.Position = pos
	ramp.Rotation = mgl32.QuatRotate(angle, mgl32.Vec3{0, 0, 1})
	return g.physics.AddBody(ramp)
}

// spawnPlatform adds the kinematic platform shuttling between two waypoints.
func (g *Game) spawnPlatform(cfg *config.Config) ecs.Entity {
	body := physics.NewBody(physics.Kinematic, physics.Box(mgl32.Vec3{1.5, 0.2, 1.5}))
	body.Position = mgl32.Vec3{4, 1.2, 8}
	id := g.physics.AddBody(body)

	transform := components.Transform{Position: body.Position, Rotation: body.Rotation}
	ref := components.RigidBodyRef{ID: id}
	path := components.PlatformPath{
		Points: []mgl32.Vec3{
			{4, 1.2, 8},
			{-4, 1.2, 8},
		},
		Speed: float32(cfg.Scene.PlatformSpeed),
	}
	return g.platformMapper.NewEntity(&transform, &ref, &path)
}

// spawnCrates drops dynamic boxes in a loose row. They stay off the ramps
// because the backend does not resolve box-box contacts.
func (g *Game) spawnCrates(cfg *config.Config) {
	for i := 0; i < cfg.Scene.CrateCount; i++ {
		jitter := (g.rng.Float32() - 0.5) * 0.8
		pos := mgl32.Vec3{float32(i)*2.5 - 2.5, 0.6, -6 + jitter}
		g.spawnCrate(pos)
	}
}

func (g *Game) spawnCrate(pos mgl32.Vec3) ecs.Entity {
	body := physics.NewBody(physics.Dynamic, physics.Box(mgl32.Vec3{0.4, 0.4, 0.4}))
	body.Position = pos
	body.Mass = 4
	body.Friction = 0.6
	id := g.physics.AddBody(body)

	transform := components.Transform{Position: body.Position, Rotation: body.Rotation}
	ref := components.RigidBodyRef{ID: id}
	prop := components.Prop{}
	return g.propMapper.NewEntity(&transform, &ref, &prop)
}

// spawnCharacter creates a controlled body at pos with the configured
// tuning. The body is a sphere matching the ground probe radius, with world
// gravity disabled because the controller applies its own.
func (g *Game) spawnCharacter(cfg *config.Config, pos mgl32.Vec3) ecs.Entity {
	body := physics.NewBody(physics.Dynamic, physics.Sphere(float32(cfg.Character.Caster.Radius)))
	body.Position = pos
	body.Mass = float32(cfg.Character.Mass)
	body.GravityScale = 0
	id := g.physics.AddBody(body)

	ctrl := controllerFromConfig(cfg)
	ctrl.Body = id

	transform := components.Transform{Position: body.Position, Rotation: body.Rotation}
	ref := components.RigidBodyRef{ID: id}
	char := components.Character{Controller: ctrl}
	input := components.PlayerInput{}
	return g.characterMapper.NewEntity(&transform, &ref, &char, &input)
}

// controllerFromConfig builds a controller from the selected preset plus the
// YAML tuning. The tuning sections mirror the walking preset; the starship
// preset flies with its stock constants.
func controllerFromConfig(cfg *config.Config) controller.Controller {
	if cfg.Character.Preset == "starship" {
		return controller.Starship()
	}

	ctrl := controller.Character()
	ctrl.Gravity.Strength = cfg.Derived.Gravity32
	applyTuning(&ctrl, &cfg.Character)
	return ctrl
}

// applyPreset rebuilds the player's controller from the configured preset,
// keeping the body binding.
func (g *Game) applyPreset(cfg *config.Config) {
	char := g.characterMap.Get(g.player)
	id := char.Controller.Body
	ctrl := controllerFromConfig(cfg)
	ctrl.Body = id
	char.Controller = ctrl
}

// applyTuning copies the YAML tuning sections over a controller in place,
// leaving runtime state alone so the panel can retune mid-flight.
func applyTuning(ctrl *controller.Controller, cc *config.CharacterConfig) {
	ctrl.Float.Distance = float32(cc.Float.Distance)
	ctrl.Float.MinOffset = float32(cc.Float.MinOffset)
	ctrl.Float.MaxOffset = float32(cc.Float.MaxOffset)
	ctrl.Float.Spring.Strength = float32(cc.Float.Strength)
	ctrl.Float.Spring.Damping = float32(cc.Float.Damping)

	ctrl.Movement.Acceleration = controller.FlatStrength(float32(cc.Movement.Acceleration))
	ctrl.Movement.MaxSpeed = float32(cc.Movement.MaxSpeed)
	ctrl.Movement.MaxForce = float32(cc.Movement.MaxForce)

	ctrl.Jump.InitialForce = float32(cc.Jump.InitialForce)
	ctrl.Jump.Force = float32(cc.Jump.SustainForce)
	ctrl.Jump.StopForce = float32(cc.Jump.StopForce)
	ctrl.Jump.Decay = decayFromName(cc.Jump.Decay)
	ctrl.Jump.JumpDuration = float32(cc.Jump.Duration)
	ctrl.Jump.CooldownDuration = float32(cc.Jump.Cooldown)
	ctrl.Jump.CoyoteDuration = float32(cc.Jump.CoyoteTime)
	ctrl.Jump.BufferDuration = float32(cc.Jump.BufferTime)
	ctrl.Jump.SkipGroundCheckDuration = float32(cc.Jump.SkipGroundCheck)
	if cc.Jump.Jumps > 0 {
		ctrl.Jump.Jumps = cc.Jump.Jumps
		if ctrl.Jump.RemainingJumps > cc.Jump.Jumps {
			ctrl.Jump.RemainingJumps = cc.Jump.Jumps
		}
	}
	ctrl.Jump.FirstJumpGrounded = cc.Jump.FirstJumpGrounded

	ctrl.Upright.Spring.Strength = float32(cc.Upright.Strength)
	ctrl.Upright.Spring.Damping = float32(cc.Upright.Damping)

	ctrl.Caster.CastLength = float32(cc.Caster.Length)
	ctrl.Caster.CastRadius = float32(cc.Caster.Radius)
	ctrl.Caster.MaxGroundAngle = float32(cc.Caster.MaxGroundAngle) * deg
}

// decayFromName maps the YAML decay names onto the jump decay enum.
func decayFromName(name string) controller.JumpDecay {
	switch name {
	case "linear":
		return controller.DecayLinear
	case "sqrt":
		return controller.DecaySqrt
	default:
		return controller.DecayConstant
	}
}
