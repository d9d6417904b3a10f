// Package config loads application configuration from config.yaml and the
// environment and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/route-cli/internal/geo"
)

// Config holds the full application configuration.
type Config struct {
	Overpass  OverpassConfig  `yaml:"overpass" mapstructure:"overpass"`
	Nominatim NominatimConfig `yaml:"nominatim" mapstructure:"nominatim"`
	Routing   RoutingConfig   `yaml:"routing" mapstructure:"routing"`
	Mapper    MapperConfig    `yaml:"mapper" mapstructure:"mapper"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// OverpassConfig configures the Overpass API client.
type OverpassConfig struct {
	BaseURL   string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent string  `yaml:"user_agent" mapstructure:"user_agent"`
	RateRPS   float64 `yaml:"rate_rps" mapstructure:"rate_rps"`
}

// NominatimConfig configures the Nominatim search client.
type NominatimConfig struct {
	BaseURL   string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent string  `yaml:"user_agent" mapstructure:"user_agent"`
	RateRPS   float64 `yaml:"rate_rps" mapstructure:"rate_rps"`
}

// RoutingConfig configures graph weighting and the A* heuristic.
type RoutingConfig struct {
	// RoadSpeeds maps highway categories to average speeds in km/h,
	// accounting for traffic, lights and acceleration.
	RoadSpeeds map[string]float64 `yaml:"road_speeds" mapstructure:"road_speeds"`

	// IntersectionDelay is the flat per-segment delay in minutes.
	IntersectionDelay float64 `yaml:"intersection_delay" mapstructure:"intersection_delay"`

	// HeuristicSpeed is the assumed speed (km/h) of the A* straight-line
	// estimate. Zero means "use the fastest configured road speed", which
	// keeps the heuristic admissible.
	HeuristicSpeed float64 `yaml:"heuristic_speed" mapstructure:"heuristic_speed"`
}

// MapperConfig configures the nearest-node worker pool.
type MapperConfig struct {
	MaxWorkers int `yaml:"max_workers" mapstructure:"max_workers"`
}

// CacheConfig configures the Overpass response cache.
type CacheConfig struct {
	Path     string `yaml:"path" mapstructure:"path"`
	TTLHours int    `yaml:"ttl_hours" mapstructure:"ttl_hours"`
}

// ServerConfig configures the HTTP routing server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// PresetRegion is a named query region offered in the interactive planner.
type PresetRegion struct {
	Name string
	Box  geo.BoundingBox
}

// PresetRegions are the built-in quick-select regions.
var PresetRegions = []PresetRegion{
	{"Al Khobar (Full City)", geo.BoundingBox{South: 26.17, West: 50.13, North: 26.38, East: 50.28}},
	{"Dammam (Full City)", geo.BoundingBox{South: 26.35, West: 49.95, North: 26.55, East: 50.15}},
	{"Dhahran (Full City)", geo.BoundingBox{South: 26.24, West: 50.08, North: 26.35, East: 50.18}},
	{"Eastern Province Coast", geo.BoundingBox{South: 26.15, West: 50.05, North: 26.55, East: 50.30}},
	{"Riyadh (Full City)", geo.BoundingBox{South: 24.55, West: 46.55, North: 24.90, East: 46.90}},
	{"Jeddah (Full City)", geo.BoundingBox{South: 21.40, West: 39.10, North: 21.75, East: 39.30}},
	{"Khobar Corniche (Small)", geo.BoundingBox{South: 26.27, West: 50.20, North: 26.31, East: 50.24}},
	{"Dammam Downtown (Small)", geo.BoundingBox{South: 26.41, West: 50.07, North: 26.45, East: 50.12}},
	{"Riyadh Center (Small)", geo.BoundingBox{South: 24.68, West: 46.64, North: 24.74, East: 46.72}},
}

// defaultRoadSpeeds mirrors realistic urban averages per highway category.
var defaultRoadSpeeds = map[string]float64{
	"motorway":      85,
	"trunk":         70,
	"primary":       45,
	"secondary":     35,
	"tertiary":      30,
	"residential":   20,
	"service":       15,
	"unclassified":  25,
	"living_street": 10,
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ROUTECLI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("overpass.base_url", "https://overpass-api.de/api/interpreter")
	v.SetDefault("overpass.user_agent", "route-cli/1.0 (contact: ops@sellsadvisors.com)")
	v.SetDefault("overpass.rate_rps", 1.0)
	v.SetDefault("nominatim.base_url", "https://nominatim.openstreetmap.org/search")
	v.SetDefault("nominatim.user_agent", "route-cli/1.0 (contact: ops@sellsadvisors.com)")
	v.SetDefault("nominatim.rate_rps", 1.0)
	v.SetDefault("routing.road_speeds", defaultRoadSpeeds)
	v.SetDefault("routing.intersection_delay", 0.15)
	v.SetDefault("routing.heuristic_speed", 0.0)
	v.SetDefault("mapper.max_workers", 8)
	v.SetDefault("cache.path", "route-cache.db")
	v.SetDefault("cache.ttl_hours", 24)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
