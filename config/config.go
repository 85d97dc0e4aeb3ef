// Package config provides configuration loading and access for the demo.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all demo configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Scene     SceneConfig     `yaml:"scene"`
	Camera    CameraConfig    `yaml:"camera"`
	Character CharacterConfig `yaml:"character"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds fixed-step simulation parameters.
type PhysicsConfig struct {
	TPS     float64 `yaml:"tps"`     // simulation ticks per second
	Gravity float64 `yaml:"gravity"` // world gravity along -Y, applied to uncontrolled bodies
}

// SceneConfig selects and tunes the demo scene.
type SceneConfig struct {
	Name          string  `yaml:"name"`           // playground or flat
	PlatformSpeed float64 `yaml:"platform_speed"` // moving platform travel speed
	CrateCount    int     `yaml:"crate_count"`    // dynamic crates dropped into the playground
}

// CameraConfig holds the orbit camera tuning.
type CameraConfig struct {
	Distance  float64 `yaml:"distance"`
	Pitch     float64 `yaml:"pitch"` // degrees above the horizon
	Yaw       float64 `yaml:"yaw"`   // initial orbit angle in degrees
	FOV       float64 `yaml:"fov"`
	Smoothing float64 `yaml:"smoothing"` // follow responsiveness, higher snaps harder
}

// CharacterConfig holds the controller tuning for the player body. Fields
// mirror the controller package so tuned values round-trip through YAML.
type CharacterConfig struct {
	Preset      string  `yaml:"preset"` // character or starship
	Mass        float64 `yaml:"mass"`
	SpawnHeight float64 `yaml:"spawn_height"`

	Float    FloatConfig    `yaml:"float"`
	Movement MovementConfig `yaml:"movement"`
	Jump     JumpConfig     `yaml:"jump"`
	Upright  UprightConfig  `yaml:"upright"`
	Caster   CasterConfig   `yaml:"caster"`
}

// FloatConfig holds the ride-height suspension tuning.
type FloatConfig struct {
	Distance  float64 `yaml:"distance"`
	MinOffset float64 `yaml:"min_offset"`
	MaxOffset float64 `yaml:"max_offset"`
	Strength  float64 `yaml:"strength"`
	Damping   float64 `yaml:"damping"`
}

// MovementConfig holds the goal-velocity movement tuning.
type MovementConfig struct {
	Acceleration float64 `yaml:"acceleration"`
	MaxSpeed     float64 `yaml:"max_speed"`
	MaxForce     float64 `yaml:"max_force"`
}

// JumpConfig holds the jump state machine tuning.
type JumpConfig struct {
	InitialForce      float64 `yaml:"initial_force"`
	SustainForce      float64 `yaml:"sustain_force"`
	StopForce         float64 `yaml:"stop_force"`
	Decay             string  `yaml:"decay"` // constant, linear or sqrt
	Duration          float64 `yaml:"duration"`
	Cooldown          float64 `yaml:"cooldown"`
	CoyoteTime        float64 `yaml:"coyote_time"`
	BufferTime        float64 `yaml:"buffer_time"`
	SkipGroundCheck   float64 `yaml:"skip_ground_check"`
	Jumps             int     `yaml:"jumps"`
	FirstJumpGrounded bool    `yaml:"first_jump_grounded"`
}

// UprightConfig holds the orientation spring tuning.
type UprightConfig struct {
	Strength float64 `yaml:"strength"`
	Damping  float64 `yaml:"damping"`
}

// CasterConfig holds the ground probe tuning.
type CasterConfig struct {
	Length         float64 `yaml:"length"`
	Radius         float64 `yaml:"radius"`
	MaxGroundAngle float64 `yaml:"max_ground_angle"` // degrees
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds between logged summaries
	PerfWindow  int     `yaml:"perf_window"`  // ticks averaged for perf stats
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32 // 1 / Physics.TPS as float32
	Gravity32 float32 // Physics.Gravity as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Physics.TPS <= 0 {
		c.Physics.TPS = 60
	}
	c.Derived.DT32 = float32(1.0 / c.Physics.TPS)
	c.Derived.Gravity32 = float32(c.Physics.Gravity)

	if c.Character.Preset == "" {
		c.Character.Preset = "character"
	}
	if c.Character.Mass <= 0 {
		c.Character.Mass = 1
	}
	if c.Scene.Name == "" {
		c.Scene.Name = "playground"
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
