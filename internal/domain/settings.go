package domain

type Settings struct {
	// Remote content store functions.
	ContentListURL   string `json:"contentListUrl"`
	ContentCreateURL string `json:"contentCreateUrl"`

	// AI search (Gemini).
	GeminiAPIKey string `json:"geminiApiKey"`
	GeminiModel  string `json:"geminiModel"`

	// Poster generation (OpenAI images).
	OpenAIAPIKey string `json:"openaiApiKey"`
	PosterModel  string `json:"posterModel"`
	PosterSize   string `json:"posterSize"`

	// GigaChat credential diagnostic.
	GigaChatSecrets []string `json:"gigachatSecrets"`
	GigaChatScope   string   `json:"gigachatScope"`
}

func DefaultSettings() Settings {
	return Settings{
		GeminiModel:   "gemini-1.5-flash",
		PosterModel:   "dall-e-3",
		PosterSize:    "1024x1024",
		GigaChatScope: "GIGACHAT_API_PERS",
	}
}
