package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

//go:embed config.schema.json
var configSchema []byte

const configSchemaURL = "config.schema.json"

type Config struct {
	// Run
	Population int     `json:"population" yaml:"population"`
	Strategy   string  `json:"strategy" yaml:"strategy"`
	Workers    int     `json:"workers" yaml:"workers"` // 0 means GOMAXPROCS
	Seed       uint64  `json:"seed" yaml:"seed"`
	DeltaTime  float64 `json:"deltaTime" yaml:"deltaTime"` // seconds per tick

	// Speeds
	InitialSpeed float64 `json:"initialSpeed" yaml:"initialSpeed"`
	MinSpeed     float64 `json:"minSpeed" yaml:"minSpeed"`
	MaxSpeed     float64 `json:"maxSpeed" yaml:"maxSpeed"`

	// Perception
	MinNeighborDistance float64 `json:"minNeighborDistance" yaml:"minNeighborDistance"`
	NeighborFOV         float64 `json:"neighborFov" yaml:"neighborFov"` // degrees

	// Rule weights
	WallWeight              float64 `json:"wallWeight" yaml:"wallWeight"`
	AlignmentWeight         float64 `json:"alignmentWeight" yaml:"alignmentWeight"`
	CohesionWeight          float64 `json:"cohesionWeight" yaml:"cohesionWeight"`
	SeparationWeight        float64 `json:"separationWeight" yaml:"separationWeight"`
	TargetAttractionWeight  float64 `json:"targetAttractionWeight" yaml:"targetAttractionWeight"`
	ObstacleRejectionWeight float64 `json:"obstacleRejectionWeight" yaml:"obstacleRejectionWeight"`

	// Environment
	Volume    VolumeConfig     `json:"volume" yaml:"volume"`
	Targets   []TargetConfig   `json:"targets" yaml:"targets"`
	Obstacles []ObstacleConfig `json:"obstacles" yaml:"obstacles"`
}

type VolumeConfig struct {
	Center             geometry.Vector3D `json:"center" yaml:"center"`
	Size               float64           `json:"size" yaml:"size"`                             // cube edge length
	EdgeEffectDistance float64           `json:"edgeEffectDistance" yaml:"edgeEffectDistance"` // walls start pushing closer than this
}

type TargetConfig struct {
	Position         geometry.Vector3D `json:"position" yaml:"position"`
	CoreRadius       float64           `json:"coreRadius" yaml:"coreRadius"`
	AttractionRadius float64           `json:"attractionRadius" yaml:"attractionRadius"`
}

// ObstacleConfig describes an obstacle and, when it has checkpoints, the
// patrol moving it between ticks.
type ObstacleConfig struct {
	Position        geometry.Vector3D   `json:"position" yaml:"position"`
	Radius          float64             `json:"radius" yaml:"radius"`
	Checkpoints     []geometry.Vector3D `json:"checkpoints,omitempty" yaml:"checkpoints,omitempty"`
	Speed           float64             `json:"speed,omitempty" yaml:"speed,omitempty"`
	ReachedDistance float64             `json:"reachedDistance,omitempty" yaml:"reachedDistance,omitempty"`
}

func DefaultConfig() *Config {
	p := behavior.DefaultParameters()
	return &Config{
		Population: 100,
		Strategy:   StrategyParallel,
		Workers:    0,
		Seed:       1,
		DeltaTime:  1.0 / 60,

		InitialSpeed:            p.InitialSpeed,
		MinSpeed:                p.MinSpeed,
		MaxSpeed:                p.MaxSpeed,
		MinNeighborDistance:     p.MinNeighborDistance,
		NeighborFOV:             p.NeighborFOV,
		WallWeight:              p.WallWeight,
		AlignmentWeight:         p.AlignmentWeight,
		CohesionWeight:          p.CohesionWeight,
		SeparationWeight:        p.SeparationWeight,
		TargetAttractionWeight:  p.TargetAttractionWeight,
		ObstacleRejectionWeight: p.ObstacleRejectionWeight,

		Volume: VolumeConfig{
			Center:             geometry.Zero,
			Size:               10,
			EdgeEffectDistance: p.EdgeEffectDistance,
		},
		Targets: []TargetConfig{
			{Position: geometry.Vector3D{X: -2, Y: 1}, CoreRadius: 0.5, AttractionRadius: 3},
		},
		Obstacles: []ObstacleConfig{
			{
				Position: geometry.Vector3D{Z: -3},
				Radius:   0.5,
				Checkpoints: []geometry.Vector3D{
					{X: 3}, {Z: 3}, {X: -3}, {Z: -3},
				},
				Speed:           2,
				ReachedDistance: 0.5,
			},
		},
	}
}

// LoadConfig loads configuration from a JSON or YAML file (chosen by extension)
// and validates it against the embedded schema. Fields missing from the file
// keep their DefaultConfig value.
func LoadConfig(configFile string) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(b, filepath.Ext(configFile))
}

// ParseConfig decodes, validates and checks a configuration document.
// format is a file extension: ".json", ".yaml" or ".yml".
func ParseConfig(data []byte, format string) (*Config, error) {
	// 1. Normalize to JSON
	switch strings.ToLower(format) {
	case ".json":
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode config yaml: %w", err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert config yaml: %w", err)
		}
		data = b
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	// 2. Validate against the schema
	sch, err := compileConfigSchema()
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 3. Unmarshal over the defaults
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func compileConfigSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(configSchemaURL, bytes.NewReader(configSchema)); err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	sch, err := c.Compile(configSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return sch, nil
}

// Validate checks what the schema cannot express: cross field constraints and
// the invariants of the environment objects.
func (c *Config) Validate() error {
	if c.Population < 0 {
		return fmt.Errorf("%w: %d", ErrNegativePopulation, c.Population)
	}
	if _, err := NewStrategy(c.Strategy, c.Workers); err != nil {
		return err
	}
	if !(c.DeltaTime > 0) {
		return fmt.Errorf("deltaTime must be positive, got %v", c.DeltaTime)
	}
	if err := c.Parameters().Validate(); err != nil {
		return err
	}
	if _, err := c.Environment(); err != nil {
		return err
	}
	if _, err := c.Patrols(nil); err != nil {
		return err
	}
	return nil
}

// Parameters extracts the physics constants.
func (c *Config) Parameters() behavior.Parameters {
	return behavior.Parameters{
		InitialSpeed:            c.InitialSpeed,
		MinSpeed:                c.MinSpeed,
		MaxSpeed:                c.MaxSpeed,
		MinNeighborDistance:     c.MinNeighborDistance,
		NeighborFOV:             c.NeighborFOV,
		EdgeEffectDistance:      c.Volume.EdgeEffectDistance,
		WallWeight:              c.WallWeight,
		AlignmentWeight:         c.AlignmentWeight,
		CohesionWeight:          c.CohesionWeight,
		SeparationWeight:        c.SeparationWeight,
		TargetAttractionWeight:  c.TargetAttractionWeight,
		ObstacleRejectionWeight: c.ObstacleRejectionWeight,
	}
}

// Environment builds the targets, obstacles and volume.
func (c *Config) Environment() (behavior.Environment, error) {
	vol, err := behavior.NewVolume(c.Volume.Center, c.Volume.Size, c.Volume.EdgeEffectDistance)
	if err != nil {
		return behavior.Environment{}, err
	}
	env := behavior.Environment{
		Targets:   make([]behavior.Target, 0, len(c.Targets)),
		Obstacles: make([]behavior.Obstacle, 0, len(c.Obstacles)),
		Volume:    vol,
	}
	for i, t := range c.Targets {
		target, err := behavior.NewTarget(t.Position, t.CoreRadius, t.AttractionRadius)
		if err != nil {
			return behavior.Environment{}, fmt.Errorf("target %d: %w", i, err)
		}
		env.Targets = append(env.Targets, target)
	}
	for i, o := range c.Obstacles {
		obstacle, err := behavior.NewObstacle(o.Position, o.Radius)
		if err != nil {
			return behavior.Environment{}, fmt.Errorf("obstacle %d: %w", i, err)
		}
		env.Obstacles = append(env.Obstacles, obstacle)
	}
	return env, nil
}

// Patrols returns one patrol per obstacle that declares checkpoints.
// rng picks the next checkpoint; nil uses a source seeded from Seed.
func (c *Config) Patrols(rng Rand) ([]*Patrol, error) {
	if rng == nil {
		rng = newRand(c.Seed)
	}
	var patrols []*Patrol
	for i, o := range c.Obstacles {
		if len(o.Checkpoints) == 0 {
			continue
		}
		p, err := NewPatrol(i, o.Checkpoints, o.Speed, o.ReachedDistance, rng)
		if err != nil {
			return nil, fmt.Errorf("obstacle %d: %w", i, err)
		}
		patrols = append(patrols, p)
	}
	return patrols, nil
}
