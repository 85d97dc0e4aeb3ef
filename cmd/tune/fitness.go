package main

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/stride/components"
	"github.com/pthm-cable/stride/config"
	"github.com/pthm-cable/stride/game"
	"github.com/pthm-cable/stride/telemetry"
)

// courseSeconds is the length of the scripted exercise course: settle, a
// full-speed run, a hard stop, a jump, and a return run.
const courseSeconds = 12.0

// exerciseScript drives the player through the fixed course.
func exerciseScript(tps float64) game.InputScript {
	sec := func(s float64) int32 { return int32(s * tps) }
	walkStart, walkEnd := sec(2), sec(6)
	jumpStart, jumpEnd := sec(8), sec(8.3)
	backStart := sec(9)

	return func(tick int32, dt float32) components.PlayerInput {
		switch {
		case tick < walkStart:
			return components.PlayerInput{}
		case tick < walkEnd:
			return components.PlayerInput{Movement: mgl32.Vec3{1, 0, 0}}
		case tick < jumpStart:
			return components.PlayerInput{}
		case tick < jumpEnd:
			return components.PlayerInput{Jumping: true}
		case tick < backStart:
			return components.PlayerInput{}
		default:
			return components.PlayerInput{Movement: mgl32.Vec3{-1, 0, 0}}
		}
	}
}

// FitnessEvaluator runs scripted headless simulations and scores how well
// the controller holds its targets through the course.
type FitnessEvaluator struct {
	params     *ParamVector
	seeds      []int64
	baseConfig *config.Config
	maxSpeed   float64

	mu        sync.Mutex
	lastScore float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		seeds:      seeds,
		baseConfig: baseCfg,
		maxSpeed:   baseCfg.Character.Movement.MaxSpeed,
	}
}

// LastScore returns the score from the most recent evaluation.
func (fe *FitnessEvaluator) LastScore() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastScore
}

// runResult holds the stats collected from a single simulation run.
type runResult struct {
	windowStats []telemetry.WindowStats
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negated course score scaled to -100..0.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	scores := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			scores[idx] = fe.computeScore(result.windowStats)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for _, s := range scores {
		total += s
	}
	mean := total / float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastScore = mean
	fe.mu.Unlock()

	return -100 * mean
}

// runSimulation executes one scripted headless run and collects its window
// stats.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	// The course runs on flat ground so every score component is geometry
	// independent.
	cfg.Scene.Name = "flat"

	result := &runResult{}

	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: 1,
		StepsPerUpdate: 1,
		Config:         cfg,
		Script:         exerciseScript(cfg.Physics.TPS),
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})

	courseTicks := int32(courseSeconds * cfg.Physics.TPS)
	for g.Tick() < courseTicks {
		g.UpdateHeadless()
	}
	g.Unload()

	return result
}

// copyConfig copies the base config. The config is a plain value struct, so
// assignment is a deep copy.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	c := *fe.baseConfig
	return &c
}

// Score component weights and targets.
const (
	weightHeight = 0.20
	weightTrack  = 0.25
	weightCalm   = 0.20
	weightStop   = 0.10
	weightJump   = 0.15
	weightTilt   = 0.10

	targetRideHeight = 0.8
	targetJumpApex   = 6.4
)

// Course window layout at one-second stats windows: window 1 is the settled
// hover, 3-5 are the full-speed run, 7 is the hard stop, 8 holds the jump
// apex, 10-11 are the return run.
func (fe *FitnessEvaluator) computeScore(windows []telemetry.WindowStats) float64 {
	if len(windows) < 12 {
		return 0
	}

	// A controller that never grounds scores nothing.
	settle := windows[1]
	if settle.GroundedPct < 50 {
		return 0
	}

	heightScore := gauss(settle.HeightMean-targetRideHeight, 0.1)

	var trackSum float64
	for _, w := range windows[3:6] {
		trackSum += gauss(w.SpeedMean-fe.maxSpeed, 2.0)
	}
	trackScore := trackSum / 3

	// Suspension jitter over every window where the body should be riding
	// the spring.
	calmWindows := [...]int{1, 3, 4, 5, 7}
	var calmSum float64
	for _, i := range calmWindows {
		calmSum += gauss(windows[i].FloatForceStd, 15)
	}
	calmScore := calmSum / float64(len(calmWindows))

	stopScore := gauss(windows[7].SpeedMean, 1.0)
	jumpScore := gauss(windows[8].HeightMax-targetJumpApex, 1.5)

	var tiltSum float64
	for _, w := range windows[1:] {
		tiltSum += gauss(w.TiltMaxDeg, 10)
	}
	tiltScore := tiltSum / float64(len(windows)-1)

	score := weightHeight*heightScore +
		weightTrack*trackScore +
		weightCalm*calmScore +
		weightStop*stopScore +
		weightJump*jumpScore +
		weightTilt*tiltScore

	return clamp01(score)
}

// gauss scores an error against a tolerance scale, 1 at zero error.
func gauss(err, scale float64) float64 {
	return math.Exp(-(err * err) / (scale * scale))
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
