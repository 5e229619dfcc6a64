package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/limaJavier/sessiontable/pkg/sat"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env         string
	MetricsFile string

	Log    LogConfig
	Engine EngineConfig
	Model  ModelConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// EngineConfig selects the solving engine and where the external solvers live
type EngineConfig struct {
	Name       string
	TimeBudget time.Duration
	Paths      sat.Paths
}

// ModelConfig tunes constraint-model construction
type ModelConfig struct {
	Workers  int
	Precheck bool
}

// pathKeys maps each external engine to the key holding its executable path
var pathKeys = map[string]string{
	"kissat":        "KISSAT_PATH",
	"cadical":       "CADICAL_PATH",
	"minisat":       "MINISAT_PATH",
	"cryptominisat": "CRYPTOMINISAT_PATH",
	"glucosesimp":   "GLUCOSE_SIMP_PATH",
	"slime":         "SLIME_PATH",
	"ortoolsat":     "ORTOOLSAT_PATH",
}

// Load reads the configuration from the environment, an optional .env file and, if configFile is not empty, that file.
// Environment variables take precedence over both files.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigFile(".env")
		v.SetConfigType("env")
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Only the default .env file is optional
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if configFile != "" || !missing {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.MetricsFile = v.GetString("METRICS_FILE")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Engine = EngineConfig{
		Name:       strings.ToLower(v.GetString("ENGINE")),
		TimeBudget: parseDuration(v.GetString("TIME_BUDGET"), 60*time.Second),
		Paths:      make(sat.Paths),
	}
	for engine, key := range pathKeys {
		if path := v.GetString(key); path != "" {
			cfg.Engine.Paths[engine] = path
		}
	}

	cfg.Model = ModelConfig{
		Workers:  v.GetInt("WORKERS"),
		Precheck: v.GetBool("PRECHECK"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("METRICS_FILE", "")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("ENGINE", "gini")
	v.SetDefault("TIME_BUDGET", "60s")

	v.SetDefault("WORKERS", 0)
	v.SetDefault("PRECHECK", true)

	for _, key := range pathKeys {
		v.SetDefault(key, "")
	}
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
