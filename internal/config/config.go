package config

import (
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/cinegate/cinegate/internal/domain"
)

type Config struct {
	Addr     string
	Settings domain.Settings
}

// Default reads the environment (a .env file is loaded if present) and
// fills anything unset with the built-in defaults.
func Default() Config {
	defaults := domain.DefaultSettings()
	return Config{
		Addr: envOr("CINEGATE_ADDR", "127.0.0.1:8080"),
		Settings: domain.Settings{
			ContentListURL:   os.Getenv("CINEGATE_CONTENT_LIST_URL"),
			ContentCreateURL: os.Getenv("CINEGATE_CONTENT_CREATE_URL"),
			GeminiAPIKey:     os.Getenv("CINEGATE_GEMINI_API_KEY"),
			GeminiModel:      envOr("CINEGATE_GEMINI_MODEL", defaults.GeminiModel),
			OpenAIAPIKey:     os.Getenv("CINEGATE_OPENAI_API_KEY"),
			PosterModel:      envOr("CINEGATE_POSTER_MODEL", defaults.PosterModel),
			PosterSize:       envOr("CINEGATE_POSTER_SIZE", defaults.PosterSize),
			GigaChatSecrets:  splitList(os.Getenv("CINEGATE_GIGACHAT_SECRETS")),
			GigaChatScope:    envOr("CINEGATE_GIGACHAT_SCOPE", defaults.GigaChatScope),
		},
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
