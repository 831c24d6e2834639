package config

import (
	"log"
	"os"
	"strconv"

	"github.com/freaksearch/freaksearch/src/api/data"
	"gorm.io/gorm"
)

type Config struct {
	Port      string
	MySQLDSN  string
	RedisURL  string
	JWTSecret string

	// Optional provider credentials. Empty values are a valid runtime
	// state: the pipeline degrades instead of failing startup.
	GoogleAPIKey   string
	SearchEngineID string
	GeminiAPIKey   string
	GeminiModel    string

	SearchResultLimit int
	UploadDir         string
	ChatRateSeconds   int
	WebDir            string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// setting reads from the settings table cache first, then falls back
// to the environment.
func setting(name, envKey, def string) string {
	if v := data.GetSetting(name); v != "" {
		return v
	}
	return getenv(envKey, def)
}

// Load builds the process configuration from the settings table and
// the environment. Settings win over env so credentials can be rotated
// without a redeploy.
func Load(db *gorm.DB) Config {
	if err := data.LoadSettings(db); err != nil {
		log.Printf("Failed to load settings: %v", err)
	}

	resultLimit, _ := strconv.Atoi(setting("search_result_limit", "SEARCH_RESULT_LIMIT", "3"))
	rateSeconds, _ := strconv.Atoi(setting("chat_rate_seconds", "CHAT_RATE_SECONDS", "3"))

	return Config{
		Port:              getenv("PORT", "8080"),
		MySQLDSN:          getenv("MYSQL_DSN", "freaksearch:freaksearch@tcp(localhost:3306)/freaksearch?parseTime=true"),
		RedisURL:          getenv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:         getenv("JWT_SECRET", "dev-secret-change-me"),
		GoogleAPIKey:      setting("google_api_key", "GOOGLE_API_KEY", ""),
		SearchEngineID:    setting("search_engine_id", "SEARCH_ENGINE_ID", ""),
		GeminiAPIKey:      setting("gemini_api_key", "GEMINI_API_KEY", ""),
		GeminiModel:       setting("gemini_model", "GEMINI_MODEL", "gemini-1.5-flash-latest"),
		SearchResultLimit: resultLimit,
		UploadDir:         getenv("UPLOAD_DIR", "./uploads"),
		ChatRateSeconds:   rateSeconds,
		WebDir:            getenv("WEB_DIR", "./web"),
	}
}
