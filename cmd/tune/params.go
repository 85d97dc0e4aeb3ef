// Package main provides CMA-ES tuning for the character controller's force
// constants.
package main

import (
	"github.com/pthm-cable/stride/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters. Goal speed
// and the feel timers (coyote, buffer) are locked: the tuner shapes how the
// controller reaches its targets, not what the targets are.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Float suspension
			{Name: "float_strength", Path: "character.float.strength", Min: 40, Max: 400, Default: 100},
			{Name: "float_damping", Path: "character.float.damping", Min: 0.3, Max: 1.5, Default: 0.8},
			{Name: "float_distance", Path: "character.float.distance", Min: 0.45, Max: 0.9, Default: 0.55},
			// Movement (max_speed locked at the config value)
			{Name: "move_acceleration", Path: "character.movement.acceleration", Min: 20, Max: 200, Default: 50},
			{Name: "move_max_force", Path: "character.movement.max_force", Min: 4, Max: 30, Default: 10},
			// Jump (coyote_time and buffer_time locked)
			{Name: "jump_initial_force", Path: "character.jump.initial_force", Min: 8, Max: 25, Default: 15},
			{Name: "jump_duration", Path: "character.jump.duration", Min: 0.2, Max: 0.8, Default: 0.5},
			// Upright spring
			{Name: "upright_strength", Path: "character.upright.strength", Min: 3, Max: 40, Default: 10},
			{Name: "upright_damping", Path: "character.upright.damping", Min: 0.2, Max: 1.5, Default: 0.5},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	// Order must match Specs order
	i := 0

	cfg.Character.Float.Strength = clamped[i]
	i++
	cfg.Character.Float.Damping = clamped[i]
	i++
	cfg.Character.Float.Distance = clamped[i]
	i++

	cfg.Character.Movement.Acceleration = clamped[i]
	i++
	cfg.Character.Movement.MaxForce = clamped[i]
	i++

	cfg.Character.Jump.InitialForce = clamped[i]
	i++
	cfg.Character.Jump.Duration = clamped[i]
	i++

	cfg.Character.Upright.Strength = clamped[i]
	i++
	cfg.Character.Upright.Damping = clamped[i]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Character.Float.Strength,
		cfg.Character.Float.Damping,
		cfg.Character.Float.Distance,
		cfg.Character.Movement.Acceleration,
		cfg.Character.Movement.MaxForce,
		cfg.Character.Jump.InitialForce,
		cfg.Character.Jump.Duration,
		cfg.Character.Upright.Strength,
		cfg.Character.Upright.Damping,
	}
}
