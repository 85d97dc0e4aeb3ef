package game

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/stride/config"
)

// logSceneSummary reports what buildScene and spawnCharacter produced.
func (g *Game) logSceneSummary(cfg *config.Config) {
	slog.Info("scene ready",
		"scene", cfg.Scene.Name,
		"bodies", len(g.physics.Bodies()),
		"preset", cfg.Character.Preset,
		"tps", cfg.Physics.TPS,
		"seed", g.rngSeed,
	)
}

func logRespawn(tick int32, point mgl32.Vec3) {
	slog.Info("respawn",
		"tick", tick,
		"x", point.X(),
		"y", point.Y(),
		"z", point.Z(),
	)
}

func logOutputDirError(dir string, err error) {
	slog.Error("telemetry output failed", "dir", dir, "error", err)
}
