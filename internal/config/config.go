package config

import (
	"fmt"
	"strings"

	"github.com/ecopia-map/geo_reprojector/internal/reproject"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "REPROJECT"

// Config holds the defaults of the command line tool. Flags override them.
type Config struct {
	Transform TransformConfig `mapstructure:"transform"`
	Pool      PoolConfig      `mapstructure:"pool"`
	Output    OutputConfig    `mapstructure:"output"`
	Log       LogConfig       `mapstructure:"log"`
}

type TransformConfig struct {
	Source            string  `mapstructure:"source"`
	Target            string  `mapstructure:"target"`
	Engine            string  `mapstructure:"engine"`
	FailureMode       string  `mapstructure:"failure_mode"`
	Workers           int     `mapstructure:"workers"`
	SimplifyTolerance float64 `mapstructure:"simplify_tolerance"`
	Precision         int     `mapstructure:"precision"`
}

type PoolConfig struct {
	Mode            string `mapstructure:"mode"`
	InitialCapacity int    `mapstructure:"initial_capacity"`
}

type OutputConfig struct {
	Format      string `mapstructure:"format"`
	MetricsFile string `mapstructure:"metrics_file"`
}

type LogConfig struct {
	Silent    bool `mapstructure:"silent"`
	Timestamp bool `mapstructure:"timestamp"`
}

// Load reads configuration from an optional file, a .env file and environment variables.
// When configFile is empty "reprojector.yaml" is looked up in the working directory and in
// ./configs, and a missing file is not an error.
func Load(configFile string) (*Config, error) {
	// variables already set in the environment win over .env
	_ = godotenv.Load(".env")

	v := viper.New()

	// Defaults
	v.SetDefault("transform.source", "EPSG:4326")
	v.SetDefault("transform.target", "EPSG:3857")
	v.SetDefault("transform.engine", string(reproject.EngineProj4))
	v.SetDefault("transform.failure_mode", string(reproject.FailFast))
	v.SetDefault("transform.workers", 1)
	v.SetDefault("transform.simplify_tolerance", 0.0)
	v.SetDefault("transform.precision", -1)
	v.SetDefault("pool.mode", string(reproject.PoolPerCall))
	v.SetDefault("pool.initial_capacity", 64)
	v.SetDefault("output.format", string(reproject.OutputGeoJSON))
	v.SetDefault("output.metrics_file", "")
	v.SetDefault("log.silent", false)
	v.SetDefault("log.timestamp", false)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("reprojector")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		_ = v.ReadInConfig() // OK if missing
	}

	// Environment variables: REPROJECT_TRANSFORM_TARGET → transform.target
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Transform.Source) == "" {
		errs = append(errs, "transform.source is required")
	}
	if strings.TrimSpace(c.Transform.Target) == "" {
		errs = append(errs, "transform.target is required")
	}
	if reproject.ParseEngine(c.Transform.Engine) == "" {
		errs = append(errs, fmt.Sprintf("transform.engine must be PROJ4 or BUILTIN, got %q", c.Transform.Engine))
	}
	if reproject.ParseFailureMode(c.Transform.FailureMode) == "" {
		errs = append(errs, fmt.Sprintf("transform.failure_mode must be FAIL_FAST or PARTIAL, got %q", c.Transform.FailureMode))
	}
	if c.Transform.Workers < 1 {
		errs = append(errs, fmt.Sprintf("transform.workers must be at least 1, got %d", c.Transform.Workers))
	}
	if c.Transform.SimplifyTolerance < 0 {
		errs = append(errs, "transform.simplify_tolerance cannot be negative")
	}
	if reproject.ParsePoolMode(c.Pool.Mode) == "" {
		errs = append(errs, fmt.Sprintf("pool.mode must be shared, per-call or off, got %q", c.Pool.Mode))
	}
	if c.Pool.InitialCapacity < 0 {
		errs = append(errs, "pool.initial_capacity cannot be negative")
	}
	if reproject.ParseOutputFormat(c.Output.Format) == "" {
		errs = append(errs, fmt.Sprintf("output.format must be GEOJSON or WKT, got %q", c.Output.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Builds pipeline options from the configuration. The command specific part is left empty.
func (c *Config) ReprojectOptions() *reproject.ReprojectOptions {
	return &reproject.ReprojectOptions{
		Source:              c.Transform.Source,
		Target:              c.Transform.Target,
		Engine:              reproject.ParseEngine(c.Transform.Engine),
		FailureMode:         reproject.ParseFailureMode(c.Transform.FailureMode),
		Workers:             c.Transform.Workers,
		PoolMode:            reproject.ParsePoolMode(c.Pool.Mode),
		PoolInitialCapacity: c.Pool.InitialCapacity,
		SimplifyTolerance:   c.Transform.SimplifyTolerance,
		Precision:           c.Transform.Precision,
	}
}
