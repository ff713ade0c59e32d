package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port     string
	Timezone string
	DBPath   string

	LLMEndpoint string
	LLMAPIKey   string
	LLMModel    string

	EmbEndpoint string
	EmbAPIKey   string
	EmbModel    string

	FarmOSEndpoint string
	FarmOSToken    string

	TimingCSV      string
	TransplantXLSX string

	RequireAuth bool
}

func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:           get("PORT", "8080"),
		Timezone:       get("TZ", "Europe/Amsterdam"),
		DBPath:         get("DB_PATH", "soilsync.db"),
		LLMEndpoint:    get("LLM_ENDPOINT", ""),
		LLMAPIKey:      get("LLM_API_KEY", ""),
		LLMModel:       get("LLM_MODEL", "gpt-4o-mini"),
		EmbEndpoint:    get("EMB_ENDPOINT", ""),
		EmbAPIKey:      get("EMB_API_KEY", ""),
		EmbModel:       get("EMB_MODEL", "text-embedding-3-small"),
		FarmOSEndpoint: get("FARMOS_ENDPOINT", ""),
		FarmOSToken:    get("FARMOS_TOKEN", ""),
		TimingCSV:      get("TIMING_CSV", ""),
		TransplantXLSX: get("TRANSPLANT_XLSX", ""),
		RequireAuth:    get("REQUIRE_AUTH", "false") == "true",
	}
	log.Printf("[cfg] port=%s db=%s llm=%v farmos=%v", cfg.Port, cfg.DBPath, cfg.LLMEndpoint != "", cfg.FarmOSEndpoint != "")
	return cfg
}
