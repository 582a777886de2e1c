// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig       `yaml:"screen"`
	World       WorldConfig        `yaml:"world"`
	Habitats    []HabitatConfig    `yaml:"habitats"`
	AnimalTypes []AnimalTypeConfig `yaml:"animal_types"`
	Animal      AnimalConfig       `yaml:"animal"`
	Poacher     PoacherConfig      `yaml:"poacher"`
	Dart        DartConfig         `yaml:"dart"`
	Economy     EconomyConfig      `yaml:"economy"`
	Spawn       SpawnConfig        `yaml:"spawn"`
	Session     SessionConfig      `yaml:"session"`
	Player      PlayerConfig       `yaml:"player"`
	Telemetry   TelemetryConfig    `yaml:"telemetry"`
	Server      ServerConfig       `yaml:"server"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds play-field dimensions and time stepping.
type WorldConfig struct {
	HalfExtent        float64 `yaml:"half_extent"`         // Play boundary is the square [-h, h]
	ReferenceTickRate float64 `yaml:"reference_tick_rate"` // Ticks/sec that per-tick speeds are expressed against
	MaxFrameDelta     float64 `yaml:"max_frame_delta"`     // Clamp on a single wall-clock delta (seconds)
	DT                float64 `yaml:"dt"`                  // Fixed step for headless runs
}

// HabitatConfig describes one habitat zone.
type HabitatConfig struct {
	Name   string     `yaml:"name"`
	Center [2]float64 `yaml:"center"`
	Color  [3]float32 `yaml:"color"`
}

// AnimalTypeConfig describes one animal created at session start.
type AnimalTypeConfig struct {
	Name    string  `yaml:"name"`
	Size    float64 `yaml:"size"`
	Habitat string  `yaml:"habitat"`
}

// AnimalConfig holds animal behaviour tuning.
type AnimalConfig struct {
	SpawnSpread       float64    `yaml:"spawn_spread"`  // Uniform offset from habitat center
	Height            float64    `yaml:"height"`        // Constant z
	InitialHealth     float64    `yaml:"initial_health"`
	InitialHappiness  float64    `yaml:"initial_happiness"`
	HungerRateMin     float64    `yaml:"hunger_rate_min"`
	HungerRateMax     float64    `yaml:"hunger_rate_max"`
	WanderSpeed       float64    `yaml:"wander_speed"`  // Units per reference tick
	SeekSpeed         float64    `yaml:"seek_speed"`    // Units per reference tick
	ReturnSpeed       float64    `yaml:"return_speed"`  // Units per reference tick
	WanderInterval    float64    `yaml:"wander_interval"`
	HomeRadius        float64    `yaml:"home_radius"`   // Beyond this, walk back to center
	HungryThreshold   float64    `yaml:"hungry_threshold"`
	FeedingOffset     [2]float64 `yaml:"feeding_offset"` // Feeding point relative to habitat center
	EatRange          float64    `yaml:"eat_range"`
	MealInterval      float64    `yaml:"meal_interval"`
	MealHappiness     float64    `yaml:"meal_happiness"`
	MealHealth        float64    `yaml:"meal_health"`
	DecayInterval     float64    `yaml:"decay_interval"`
	HappinessDecay    float64    `yaml:"happiness_decay"`
	MiserableBelow    float64    `yaml:"miserable_below"`    // Health decay x MiserableFactor
	UnhappyBelow      float64    `yaml:"unhappy_below"`      // Health decay x UnhappyFactor
	MiserableFactor   float64    `yaml:"miserable_factor"`
	UnhappyFactor     float64    `yaml:"unhappy_factor"`
	HungerWarningMean float64    `yaml:"hunger_warning_mean"` // Mean happiness that raises the HUD warning
}

// PoacherConfig holds poacher AI tuning.
type PoacherConfig struct {
	Speed         float64 `yaml:"speed"` // Units per second
	Height        float64 `yaml:"height"`
	SteerInterval float64 `yaml:"steer_interval"`
	Jitter        float64 `yaml:"jitter"`
	CaptureRange  float64 `yaml:"capture_range"`
}

// DartConfig holds projectile tuning.
type DartConfig struct {
	Speed        float64 `yaml:"speed"` // Units per reference tick
	Lifetime     float64 `yaml:"lifetime"`
	HitRadius    float64 `yaml:"hit_radius"`
	Cooldown     float64 `yaml:"cooldown"`
	MuzzleOffset float64 `yaml:"muzzle_offset"` // Distance ahead of the player
	MuzzleHeight float64 `yaml:"muzzle_height"` // Added to the player z
}

// EconomyConfig holds currency and score parameters.
type EconomyConfig struct {
	InitialCurrency    int     `yaml:"initial_currency"`
	InitialFood        int     `yaml:"initial_food"`
	FeedCost           int     `yaml:"feed_cost"`
	FoodPerFeed        int     `yaml:"food_per_feed"`
	FeedRange          float64 `yaml:"feed_range"`
	Income             int     `yaml:"income"`
	IncomeInterval     float64 `yaml:"income_interval"`
	InterceptionReward int     `yaml:"interception_reward"`
}

// SpawnConfig holds poacher spawn scheduling.
type SpawnConfig struct {
	InitialInterval float64 `yaml:"initial_interval"`
	MinInterval     float64 `yaml:"min_interval"`
	RampSeconds     float64 `yaml:"ramp_seconds"` // Interval shrinks by 1s per this many seconds of game time
}

// SessionConfig holds game-over handling.
type SessionConfig struct {
	RestartDelay float64 `yaml:"restart_delay"`
}

// PlayerConfig holds the player avatar parameters.
type PlayerConfig struct {
	Start            [3]float64 `yaml:"start"`
	MoveStep         float64    `yaml:"move_step"`
	TurnStep         float64    `yaml:"turn_step"` // Degrees
	InteractionRange float64    `yaml:"interaction_range"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	BookmarkHistorySize int     `yaml:"bookmark_history_size"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	HappinessCrashDrop  float64 `yaml:"happiness_crash_drop"` // Mean happiness drop that triggers a bookmark
	PoachingWaveCount   int     `yaml:"poaching_wave_count"`  // Captures per window that trigger a bookmark
}

// ServerConfig holds the spectator feed settings.
type ServerConfig struct {
	BroadcastHz float64 `yaml:"broadcast_hz"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	HabitatIndex map[string]int // Name -> habitat id
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
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file.
		// Lists (habitats, animal_types) are replaced wholesale.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.HabitatIndex = make(map[string]int, len(c.Habitats))
	for i, h := range c.Habitats {
		c.Derived.HabitatIndex[h.Name] = i
	}
}

// Validate reports the first inconsistency found in the configuration.
func (c *Config) Validate() error {
	if len(c.Habitats) == 0 {
		return fmt.Errorf("no habitats configured")
	}
	if len(c.Derived.HabitatIndex) != len(c.Habitats) {
		return fmt.Errorf("duplicate habitat names")
	}
	for _, t := range c.AnimalTypes {
		if _, ok := c.Derived.HabitatIndex[t.Habitat]; !ok {
			return fmt.Errorf("animal type %q: unknown habitat %q", t.Name, t.Habitat)
		}
	}
	if c.Animal.HungerRateMin > c.Animal.HungerRateMax {
		return fmt.Errorf("animal: hunger_rate_min %.3f exceeds hunger_rate_max %.3f",
			c.Animal.HungerRateMin, c.Animal.HungerRateMax)
	}

	positive := []struct {
		name  string
		value float64
	}{
		{"world.half_extent", c.World.HalfExtent},
		{"world.reference_tick_rate", c.World.ReferenceTickRate},
		{"world.dt", c.World.DT},
		{"animal.wander_interval", c.Animal.WanderInterval},
		{"animal.meal_interval", c.Animal.MealInterval},
		{"animal.decay_interval", c.Animal.DecayInterval},
		{"poacher.steer_interval", c.Poacher.SteerInterval},
		{"dart.lifetime", c.Dart.Lifetime},
		{"economy.income_interval", c.Economy.IncomeInterval},
		{"spawn.min_interval", c.Spawn.MinInterval},
		{"spawn.ramp_seconds", c.Spawn.RampSeconds},
		{"telemetry.stats_window", c.Telemetry.StatsWindow},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", p.name, p.value)
		}
	}
	return nil
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
