package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

const (
	DefaultDestDir = "./output"
	DefaultSaveAs  = "csv"
)

type Config struct {
	DestDir  string
	SaveAs   string
	DbDsn    string
	TgToken  string
	TgChatID int64
}

var (
	config  *Config
	once    sync.Once
	EnvFile = ".env"
)

// GetConfig возвращает singleton экземпляр конфигурации
func GetConfig() *Config {
	once.Do(func() {
		config = Load(EnvFile)
	})
	return config
}

// Load reads the env file (if present) and the process environment.
// A missing file is not an error: every value has a usable default.
func Load(envFile string) *Config {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			log.Printf("config: cannot load %s: %v", envFile, err)
		}
	}

	cfg := &Config{
		DestDir: getEnv("DEST_DIR", DefaultDestDir),
		SaveAs:  getEnv("SAVE_AS", DefaultSaveAs),
		DbDsn:   os.Getenv("DB_DSN"),
		TgToken: os.Getenv("TG_TOKEN"),
	}
	if raw := os.Getenv("TG_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Printf("config: ignoring TG_CHAT_ID %q: %v", raw, err)
		} else {
			cfg.TgChatID = id
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
