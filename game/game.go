// Package game wires the controller core, the physics backend, and the ECS
// into a runnable demo: scene construction, the fixed-step simulation loop,
// input mapping, rendering, and telemetry output.
package game

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/stride/camera"
	"github.com/pthm-cable/stride/components"
	"github.com/pthm-cable/stride/config"
	"github.com/pthm-cable/stride/physics"
	"github.com/pthm-cable/stride/telemetry"
	"github.com/pthm-cable/stride/ui"
)

// InputScript drives the player in headless runs: it is called once per
// tick and its result replaces keyboard input.
type InputScript func(tick int32, dt float32) components.PlayerInput

// Options configures a game instance at construction.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	StepsPerUpdate int

	// Config overrides the global config when set. The tuner passes copies
	// here so concurrent evaluations never share tuning state.
	Config *config.Config

	// Script replaces keyboard input in headless runs.
	Script InputScript

	// StatsCallback receives window stats as they flush.
	StatsCallback func(stats telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	world   ecs.World
	physics *physics.World
	rng     *rand.Rand
	rngSeed int64

	characterMapper *ecs.Map4[components.Transform, components.RigidBodyRef, components.Character, components.PlayerInput]
	platformMapper  *ecs.Map3[components.Transform, components.RigidBodyRef, components.PlatformPath]
	propMapper      *ecs.Map3[components.Transform, components.RigidBodyRef, components.Prop]

	characterFilter *ecs.Filter4[components.Transform, components.RigidBodyRef, components.Character, components.PlayerInput]
	platformFilter  *ecs.Filter3[components.Transform, components.RigidBodyRef, components.PlatformPath]
	syncFilter      *ecs.Filter2[components.Transform, components.RigidBodyRef]

	transformMap *ecs.Map1[components.Transform]
	bodyRefMap   *ecs.Map1[components.RigidBodyRef]
	characterMap *ecs.Map1[components.Character]
	inputMap     *ecs.Map1[components.PlayerInput]

	// player is the controlled character; tests may spawn more.
	player     ecs.Entity
	spawnPoint mgl32.Vec3

	camera *camera.Camera
	panel  *ui.TuningPanel
	hud    *ui.HUD

	recorder      *telemetry.Recorder
	outputManager *telemetry.OutputManager
	perfCollector *telemetry.PerfCollector
	statsCallback func(telemetry.WindowStats)
	logStats      bool

	parallel *parallelState

	// cfg overrides the global config when non-nil.
	cfg *config.Config

	script       InputScript
	pendingInput components.PlayerInput

	headless       bool
	debugDraw      bool
	paused         bool
	stepsPerUpdate int
	tick           int32
}

// NewGameWithOptions creates a game instance, builds the configured scene,
// and spawns the player.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	world := ecs.NewWorld()

	g := &Game{
		world:          world,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		rngSeed:        opts.Seed,
		headless:       opts.Headless,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		script:         opts.Script,
		cfg:            opts.Config,
		stepsPerUpdate: opts.StepsPerUpdate,
	}
	if g.stepsPerUpdate < 1 {
		g.stepsPerUpdate = 1
	}

	g.characterMapper = ecs.NewMap4[components.Transform, components.RigidBodyRef, components.Character, components.PlayerInput](&g.world)
	g.platformMapper = ecs.NewMap3[components.Transform, components.RigidBodyRef, components.PlatformPath](&g.world)
	g.propMapper = ecs.NewMap3[components.Transform, components.RigidBodyRef, components.Prop](&g.world)

	g.characterFilter = ecs.NewFilter4[components.Transform, components.RigidBodyRef, components.Character, components.PlayerInput](&g.world)
	g.platformFilter = ecs.NewFilter3[components.Transform, components.RigidBodyRef, components.PlatformPath](&g.world)
	g.syncFilter = ecs.NewFilter2[components.Transform, components.RigidBodyRef](&g.world)

	g.transformMap = ecs.NewMap1[components.Transform](&g.world)
	g.bodyRefMap = ecs.NewMap1[components.RigidBodyRef](&g.world)
	g.characterMap = ecs.NewMap1[components.Character](&g.world)
	g.inputMap = ecs.NewMap1[components.PlayerInput](&g.world)

	g.physics = physics.NewWorld(mgl32.Vec3{0, cfg.Derived.Gravity32, 0})
	g.buildScene(cfg)
	g.spawnPoint = mgl32.Vec3{0, float32(cfg.Character.SpawnHeight), 0}
	g.player = g.spawnCharacter(cfg, g.spawnPoint)

	// Stats window in ticks; StatsWindowSec falls back to config.
	windowSec := opts.StatsWindowSec
	if windowSec <= 0 {
		windowSec = cfg.Telemetry.StatsWindow
	}
	g.recorder = telemetry.NewRecorder(int32(windowSec * cfg.Physics.TPS))
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			logOutputDirError(opts.OutputDir, err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				logOutputDirError(opts.OutputDir, err)
			}
		}
	}

	g.parallel = newParallelState()

	if !opts.Headless {
		g.camera = camera.New(
			float32(cfg.Camera.Distance),
			float32(cfg.Camera.Pitch),
			float32(cfg.Camera.Yaw),
			float32(cfg.Camera.FOV),
			float32(cfg.Camera.Smoothing),
		)
		g.camera.Target = g.spawnPoint
		g.panel = ui.NewTuningPanel(int32(cfg.Screen.Width)-ui.PanelWidth-10, 10)
		g.hud = ui.NewHUD()
	}

	g.logSceneSummary(cfg)

	return g
}

// config returns the active configuration for this instance.
func (g *Game) config() *config.Config {
	if g.cfg != nil {
		return g.cfg
	}
	return config.Cfg()
}

// Update advances the simulation from the render loop: poll input, run the
// configured number of fixed steps, then smooth the camera toward the
// player.
func (g *Game) Update() {
	g.handleInput()

	if !g.paused {
		for i := 0; i < g.stepsPerUpdate; i++ {
			g.simulationStep()
		}
	}
	g.perfCollector.RecordFrame()

	g.updateCamera()
}

// UpdateHeadless advances the simulation without any raylib calls.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// playerBody resolves the player's physics body.
func (g *Game) playerBody() *physics.Body {
	ref := g.bodyRefMap.Get(g.player)
	return g.physics.Body(ref.ID)
}

// PlayerPosition returns the player body's position.
func (g *Game) PlayerPosition() mgl32.Vec3 {
	return g.playerBody().Position
}

// PlayerVelocity returns the player body's velocity.
func (g *Game) PlayerVelocity() mgl32.Vec3 {
	return g.playerBody().Velocity
}

// PlayerGrounded reports whether the player rests on stable ground within
// the float window.
func (g *Game) PlayerGrounded() bool {
	char := g.characterMap.Get(g.player)
	return char.Controller.Cast.Grounded
}

// SetPlayerInput overrides the player's input for the next ticks. Scripted
// and keyboard input replace it each tick when present.
func (g *Game) SetPlayerInput(in components.PlayerInput) {
	g.pendingInput = in
}

// respawnPlayer returns the player to the spawn point with cleared state.
func (g *Game) respawnPlayer() {
	body := g.playerBody()
	body.Position = g.spawnPoint
	body.Velocity = mgl32.Vec3{}
	body.AngularVelocity = mgl32.Vec3{}
	body.Rotation = mgl32.QuatIdent()

	char := g.characterMap.Get(g.player)
	char.Controller.ResetState()

	logRespawn(g.tick, g.spawnPoint)
}

// Unload stops workers and closes telemetry outputs. Safe to call more
// than once.
func (g *Game) Unload() {
	g.stopParallelWorkers()
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			logOutputDirError(g.outputManager.Dir(), err)
		}
		g.outputManager = nil
	}
}
