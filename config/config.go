package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	DbDsn      string
	TgToken    string
	TgChatID   int64
	OutDir     string
	PeriodUnit string
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the singleton configuration, loading .env once.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file, using environment variables")
		}

		chatID, _ := strconv.ParseInt(os.Getenv("TG_CHAT_ID"), 10, 64)
		config = &Config{
			DbDsn:      os.Getenv("DB_DSN"),
			TgToken:    os.Getenv("TG_TOKEN"),
			TgChatID:   chatID,
			OutDir:     os.Getenv("OUT_DIR"),
			PeriodUnit: os.Getenv("PERIOD_UNIT"),
		}
		if config.OutDir == "" {
			config.OutDir = "reports"
		}
		if config.PeriodUnit == "" {
			config.PeriodUnit = "month"
		}
	})
	return config
}
