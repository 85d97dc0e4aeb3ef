package game

import (
	"github.com/pthm-cable/stride/telemetry"
)

// simulationStep runs a single fixed tick: apply input, drive platforms,
// tick every controller, integrate physics, mirror body poses into the ECS,
// and sample telemetry.
func (g *Game) simulationStep() {
	cfg := g.config()
	dt := cfg.Derived.DT32

	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.applyPlayerInput(dt)

	g.perfCollector.StartPhase(telemetry.PhasePlatforms)
	g.drivePlatforms(dt)

	g.perfCollector.StartPhase(telemetry.PhaseController)
	g.tickControllers(dt)

	g.perfCollector.StartPhase(telemetry.PhasePhysics)
	g.physics.Step(dt)

	g.perfCollector.StartPhase(telemetry.PhaseSync)
	g.syncTransforms()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.sampleTick()
	g.tick++
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// applyPlayerInput writes this tick's intent into the player entity. A
// script wins over whatever input the render loop collected.
func (g *Game) applyPlayerInput(dt float32) {
	in := g.pendingInput
	if g.script != nil {
		in = g.script(g.tick, dt)
	}
	*g.inputMap.Get(g.player) = in
}

// drivePlatforms steers kinematic platform bodies along their waypoint
// loops by velocity, so riders see the platform's motion in point-velocity
// queries.
func (g *Game) drivePlatforms(dt float32) {
	query := g.platformFilter.Query()
	for query.Next() {
		_, ref, path := query.Get()
		if len(path.Points) == 0 || path.Speed <= 0 {
			continue
		}

		body := g.physics.Body(ref.ID)
		target := path.Points[path.Target]
		toTarget := target.Sub(body.Position)
		dist := toTarget.Len()

		if dist <= path.Speed*dt {
			// Arrive exactly this tick, then head for the next waypoint.
			if dt > 0 {
				body.Velocity = toTarget.Mul(1 / dt)
			}
			path.Target = (path.Target + 1) % len(path.Points)
			continue
		}
		body.Velocity = toTarget.Mul(path.Speed / dist)
	}
}

// syncTransforms mirrors physics poses into Transform components for
// rendering and the camera.
func (g *Game) syncTransforms() {
	query := g.syncFilter.Query()
	for query.Next() {
		transform, ref := query.Get()
		body := g.physics.Body(ref.ID)
		transform.Position = body.Position
		transform.Rotation = body.Rotation
	}
}
