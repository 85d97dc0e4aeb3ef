package game

import (
	"log/slog"

	"github.com/pthm-cable/stride/telemetry"
)

// sampleTick records one telemetry sample of the player body and its
// controller accumulators.
func (g *Game) sampleTick() {
	char := g.characterMap.Get(g.player)
	ctrl := &char.Controller
	body := g.playerBody()
	cfg := g.config()

	up := ctrl.Gravity.UpVector

	castDistance := float32(-1)
	if ctrl.Cast.HasCurrent {
		castDistance = ctrl.Cast.Current.Distance
	}

	rec := telemetry.TickRecord{
		Tick:    g.tick,
		SimTime: float64(g.tick) / cfg.Physics.TPS,

		PosX: body.Position.X(),
		PosY: body.Position.Y(),
		PosZ: body.Position.Z(),
		VelX: body.Velocity.X(),
		VelY: body.Velocity.Y(),
		VelZ: body.Velocity.Z(),

		Speed: planarSpeed(body.Velocity, up),

		Grounded:     ctrl.Cast.Grounded,
		Jumping:      ctrl.Jump.JumpTimer > 0,
		CastDistance: castDistance,

		FloatForce:    ctrl.FloatForce.Linear.Dot(up),
		MovementForce: ctrl.MovementForce.Linear.Len(),
		JumpForce:     ctrl.JumpForce.Linear.Dot(up),
		UprightTorque: ctrl.UprightForce.Angular.Len(),
		TiltDeg:       tiltDegrees(body.Rotation, up),
	}

	g.recorder.Record(rec)

	if g.outputManager != nil {
		if err := g.outputManager.WriteTick(rec); err != nil {
			slog.Error("failed to write tick record", "error", err)
		}
	}
}

// flushTelemetry emits window stats when the current window is complete.
func (g *Game) flushTelemetry() {
	if !g.recorder.ShouldFlush(g.tick) {
		return
	}

	cfg := g.config()
	stats := g.recorder.Flush(g.tick, 1.0/cfg.Physics.TPS)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
