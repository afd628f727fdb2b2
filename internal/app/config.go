package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	_ "github.com/joho/godotenv/autoload"

	"github.com/sandeepkv93/taskcal/internal/calendar"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

var ErrInvalidConfig = errors.New("app: invalid config")

type Config struct {
	Env         string `env:"TASKCAL_ENV" env-default:"prod"`
	DataDir     string `env:"TASKCAL_DATA_DIR"`
	Storage     string `env:"TASKCAL_STORAGE" env-default:"file"`
	LogFile     string `env:"TASKCAL_LOG_FILE"`
	DefaultView string `env:"TASKCAL_DEFAULT_VIEW" env-default:"month"`
	AltScreen   bool   `env:"TASKCAL_ALT_SCREEN" env-default:"true"`
}

// ReadConfig reads TASKCAL_* variables, including any set by a .env file in
// the working directory, and fills the path defaults.
func ReadConfig() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("app: read env: %w", err)
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("app: resolve data dir: %w", err)
		}
		cfg.DataDir = filepath.Join(base, "taskcal")
	}
	if strings.TrimSpace(cfg.LogFile) == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "taskcal.log")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		return fmt.Errorf("%w: unknown env %q", ErrInvalidConfig, c.Env)
	}
	switch c.Storage {
	case StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("%w: unknown storage %q", ErrInvalidConfig, c.Storage)
	}
	if _, err := calendar.ParseMode(c.DefaultView); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) View() calendar.Mode {
	mode, err := calendar.ParseMode(c.DefaultView)
	if err != nil {
		return calendar.ModeMonth
	}
	return mode
}
