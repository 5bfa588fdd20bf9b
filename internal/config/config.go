package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/annel0/dungeon-gen/internal/logging"
	"github.com/annel0/dungeon-gen/internal/pipeline"
	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	Server     ServerConfig     `yaml:"server"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Log        LogConfig        `yaml:"log"`
}

// GenerationConfig параметры генерации по умолчанию
type GenerationConfig struct {
	Type                  string   `yaml:"type"`
	Width                 int      `yaml:"width"`
	Height                int      `yaml:"height"`
	PropChance            *float64 `yaml:"prop_chance"`
	EnemyChance           *float64 `yaml:"enemy_chance"`
	Seed                  int64    `yaml:"seed"`
	PreloadedLevel        string   `yaml:"preloaded_level"`
	RepeatDoorConnections *bool    `yaml:"repeat_door_connections"`
	MaxWalkerTicks        int      `yaml:"max_walker_ticks"`
}

type ServerConfig struct {
	RESTPort int `yaml:"rest_port"`
	// MaxLevelSize ограничивает размер уровня в запросах API
	MaxLevelSize int `yaml:"max_level_size"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Dir    string `yaml:"dir"`
}

// Default конфигурация без файла
func Default() *Config {
	return &Config{}
}

// Params переводит секцию generation в параметры конвейера.
// Незаданные поля берутся из pipeline.DefaultParams.
func (g GenerationConfig) Params() (pipeline.Params, error) {
	p := pipeline.DefaultParams()
	if g.Type != "" {
		t, err := pipeline.ParseLevelType(g.Type)
		if err != nil {
			return p, err
		}
		p.Type = t
	}
	if g.Width != 0 {
		p.Width = g.Width
	}
	if g.Height != 0 {
		p.Height = g.Height
	}
	if g.PropChance != nil {
		p.PropChance = *g.PropChance
	}
	if g.EnemyChance != nil {
		p.EnemyChance = *g.EnemyChance
	}
	if g.RepeatDoorConnections != nil {
		p.RepeatDoorConnections = *g.RepeatDoorConnections
	}
	p.Seed = g.Seed
	p.PreloadedLevel = g.PreloadedLevel
	p.MaxWalkerTicks = g.MaxWalkerTicks
	return p, p.Validate()
}

// GetRESTPort возвращает REST API порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "LEVELGEN_REST_PORT", 8088)
}

// GetMaxLevelSize максимальная сторона уровня для API
func (s *ServerConfig) GetMaxLevelSize() int {
	if s.MaxLevelSize > 0 {
		return s.MaxLevelSize
	}
	return 512
}

// GetServiceName имя сервиса для телеметрии
func (t *TelemetryConfig) GetServiceName() string {
	if t.ServiceName != "" {
		return t.ServiceName
	}
	return "levelgen"
}

// LoggingOptions настройки для logging.InitDefaultLogger
func (l LogConfig) LoggingOptions() logging.Options {
	return logging.Options{Level: l.Level, Format: l.Format, Dir: l.Dir}
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV LEVELGEN_CONFIG, иначе
// возвращает конфигурацию по умолчанию.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("LEVELGEN_CONFIG")
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
