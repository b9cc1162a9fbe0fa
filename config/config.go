package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del dashboard.
type Config struct {
	Dashboard DashboardConfig `yaml:"dashboard"`
	Storage   StorageConfig   `yaml:"storage"`
	HTTP      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
}

// DashboardConfig controla ventanas, TTLs y el intervalo de refresco.
type DashboardConfig struct {
	RefreshSeconds        int `yaml:"refresh_seconds"`
	TradeLimit            int `yaml:"trade_limit"`
	SentimentLimit        int `yaml:"sentiment_limit"`
	TradesTTLSeconds      int `yaml:"trades_ttl_seconds"`
	PerformanceTTLSeconds int `yaml:"performance_ttl_seconds"`
	SentimentTTLSeconds   int `yaml:"sentiment_ttl_seconds"`
}

// StorageConfig apunta a la base que escribe el bot.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite del bot
}

// HTTPConfig controla la API JSON. Addr vacío deshabilita el server.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si
// existe. Las variables de entorno sobreescriben las keys correspondientes.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// RefreshInterval devuelve el intervalo de refresco como time.Duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Dashboard.RefreshSeconds) * time.Second
}

// TradesTTL devuelve el TTL de la ventana de trades.
func (c *Config) TradesTTL() time.Duration {
	return time.Duration(c.Dashboard.TradesTTLSeconds) * time.Second
}

// PerformanceTTL devuelve el TTL de los agregados por agente.
func (c *Config) PerformanceTTL() time.Duration {
	return time.Duration(c.Dashboard.PerformanceTTLSeconds) * time.Second
}

// SentimentTTL devuelve el TTL de la ventana de sentimiento.
func (c *Config) SentimentTTL() time.Duration {
	return time.Duration(c.Dashboard.SentimentTTLSeconds) * time.Second
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están
// presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("DASHBOARD_DB"); v != "" {
		cfg.Storage.DSN = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
// Los TTLs y el intervalo replican lo observado en producción.
func setDefaults(cfg *Config) {
	if cfg.Dashboard.RefreshSeconds <= 0 {
		cfg.Dashboard.RefreshSeconds = 10
	}
	if cfg.Dashboard.TradeLimit <= 0 {
		cfg.Dashboard.TradeLimit = 100
	}
	if cfg.Dashboard.SentimentLimit <= 0 {
		cfg.Dashboard.SentimentLimit = 50
	}
	if cfg.Dashboard.TradesTTLSeconds <= 0 {
		cfg.Dashboard.TradesTTLSeconds = 10
	}
	if cfg.Dashboard.PerformanceTTLSeconds <= 0 {
		cfg.Dashboard.PerformanceTTLSeconds = 60
	}
	if cfg.Dashboard.SentimentTTLSeconds <= 0 {
		cfg.Dashboard.SentimentTTLSeconds = 300
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "trading_history.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
