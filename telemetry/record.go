// Package telemetry collects per-tick samples of the controlled body and
// aggregates them into window statistics for logging, CSV export, and the
// offline tuner's fitness function.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// TickRecord is one fixed-step sample of the controlled body, flattened for
// CSV export.
type TickRecord struct {
	Tick    int32   `csv:"tick"`
	SimTime float64 `csv:"sim_time"`

	PosX float32 `csv:"pos_x"`
	PosY float32 `csv:"pos_y"`
	PosZ float32 `csv:"pos_z"`
	VelX float32 `csv:"vel_x"`
	VelY float32 `csv:"vel_y"`
	VelZ float32 `csv:"vel_z"`

	// Speed is the velocity magnitude across the movement plane.
	Speed float32 `csv:"speed"`

	Grounded     bool    `csv:"grounded"`
	Jumping      bool    `csv:"jumping"`
	CastDistance float32 `csv:"cast_distance"`

	FloatForce    float32 `csv:"float_force"`
	MovementForce float32 `csv:"movement_force"`
	JumpForce     float32 `csv:"jump_force"`
	UprightTorque float32 `csv:"upright_torque"`
	TiltDeg       float32 `csv:"tilt_deg"`
}

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	SpeedMean float64 `csv:"speed_mean"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	HeightMean float64 `csv:"height_mean"`
	HeightMin  float64 `csv:"height_min"`
	HeightMax  float64 `csv:"height_max"`

	// GroundedPct is the fraction of window ticks with stable ground under
	// the caster, in percent.
	GroundedPct float64 `csv:"grounded_pct"`

	// FloatForceStd measures suspension jitter. A well damped spring holds
	// this low while crossing geometry.
	FloatForceStd float64 `csv:"float_force_std"`

	TiltMeanDeg float64 `csv:"tilt_mean_deg"`
	TiltMaxDeg  float64 `csv:"tilt_max_deg"`

	// JumpStarts counts rising edges of the jump hold during the window.
	JumpStarts int `csv:"jump_starts"`
}

// Recorder accumulates tick records and flushes window statistics every
// windowTicks ticks.
type Recorder struct {
	windowTicks int32
	windowStart int32
	records     []TickRecord
}

// NewRecorder creates a recorder that aggregates over windowTicks ticks.
func NewRecorder(windowTicks int32) *Recorder {
	if windowTicks < 1 {
		windowTicks = 300
	}
	return &Recorder{
		windowTicks: windowTicks,
		records:     make([]TickRecord, 0, windowTicks),
	}
}

// Record appends one tick sample to the current window.
func (r *Recorder) Record(rec TickRecord) {
	r.records = append(r.records, rec)
}

// ShouldFlush reports whether the current window is complete.
func (r *Recorder) ShouldFlush(tick int32) bool {
	return tick-r.windowStart >= r.windowTicks
}

// Flush computes statistics over the buffered window and starts a new one.
func (r *Recorder) Flush(tick int32, dt float64) WindowStats {
	ws := Summarize(r.records)
	ws.WindowStartTick = r.windowStart
	ws.WindowEndTick = tick
	ws.SimTimeSec = float64(tick) * dt

	r.windowStart = tick
	r.records = r.records[:0]
	return ws
}

// Summarize computes window statistics from a slice of tick records.
func Summarize(records []TickRecord) WindowStats {
	ws := WindowStats{}
	n := len(records)
	if n == 0 {
		return ws
	}

	speeds := make([]float64, n)
	heights := make([]float64, n)
	floats := make([]float64, n)
	tilts := make([]float64, n)
	grounded := 0
	prevJumping := false

	for i, rec := range records {
		speeds[i] = float64(rec.Speed)
		heights[i] = float64(rec.PosY)
		floats[i] = float64(rec.FloatForce)
		tilts[i] = float64(rec.TiltDeg)
		if rec.Grounded {
			grounded++
		}
		if rec.Jumping && !prevJumping {
			ws.JumpStarts++
		}
		prevJumping = rec.Jumping
	}

	sort.Float64s(speeds)
	ws.SpeedMean = stat.Mean(speeds, nil)
	ws.SpeedP50 = stat.Quantile(0.5, stat.Empirical, speeds, nil)
	ws.SpeedP90 = stat.Quantile(0.9, stat.Empirical, speeds, nil)
	ws.SpeedMax = speeds[n-1]

	sort.Float64s(heights)
	ws.HeightMean = stat.Mean(heights, nil)
	ws.HeightMin = heights[0]
	ws.HeightMax = heights[n-1]

	ws.GroundedPct = float64(grounded) / float64(n) * 100
	ws.FloatForceStd = stat.StdDev(floats, nil)

	ws.TiltMeanDeg = stat.Mean(tilts, nil)
	sort.Float64s(tilts)
	ws.TiltMaxDeg = tilts[n-1]

	return ws
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"speed_mean", s.SpeedMean,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"speed_max", s.SpeedMax,
		"height_mean", s.HeightMean,
		"height_min", s.HeightMin,
		"height_max", s.HeightMax,
		"grounded_pct", s.GroundedPct,
		"float_force_std", s.FloatForceStd,
		"tilt_mean_deg", s.TiltMeanDeg,
		"tilt_max_deg", s.TiltMaxDeg,
		"jump_starts", s.JumpStarts,
	)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Float64("height_mean", s.HeightMean),
		slog.Float64("height_min", s.HeightMin),
		slog.Float64("height_max", s.HeightMax),
		slog.Float64("grounded_pct", s.GroundedPct),
		slog.Float64("float_force_std", s.FloatForceStd),
		slog.Float64("tilt_mean_deg", s.TiltMeanDeg),
		slog.Float64("tilt_max_deg", s.TiltMaxDeg),
		slog.Int("jump_starts", s.JumpStarts),
	)
}
