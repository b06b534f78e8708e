package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa de la aplicación.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Account AccountConfig `yaml:"account"`
	Storage StorageConfig `yaml:"storage"`
	Insight InsightConfig `yaml:"insight"`
	Log     LogConfig     `yaml:"log"`
}

// CatalogConfig controla de dónde se carga el catálogo de mercados.
type CatalogConfig struct {
	Path string `yaml:"path"` // vacío → catálogo embebido de demostración
}

// AccountConfig es la plantilla de la cuenta demo sembrada en el sign-in.
type AccountConfig struct {
	SessionKey     string  `yaml:"session_key"`
	Name           string  `yaml:"name"`
	Email          string  `yaml:"email"`
	InitialBalance float64 `yaml:"initial_balance"` // en R$
}

// StorageConfig controla dónde se persisten las cuentas.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// InsightConfig controla el analista Gemini.
type InsightConfig struct {
	Model  string `yaml:"model"`
	APIKey string `yaml:"-"` // solo por entorno, nunca del YAML
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si
// existe. Si el path está vacío o el archivo no existe, usa los defaults.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están
// presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Insight.APIKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Account.SessionKey == "" {
		cfg.Account.SessionKey = "futuro_user"
	}
	if cfg.Account.Name == "" {
		cfg.Account.Name = "Visitante Futuro"
	}
	if cfg.Account.Email == "" {
		cfg.Account.Email = "visitante@gmail.com"
	}
	if cfg.Account.InitialBalance <= 0 {
		cfg.Account.InitialBalance = 50000.00
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "futuro.db"
	}
	if cfg.Insight.Model == "" {
		cfg.Insight.Model = "gemini-2.5-flash"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
