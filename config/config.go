package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	FrontendURL string
	// AI provider credentials. The factory tries providers in priority order;
	// at least one key must be set for the process to start.
	GroqAPIKey   string
	GeminiAPIKey string
	// AI model selection
	GroqTranscriptionModel string
	GroqChatModel          string
	GeminiModel            string
	GeminiFallbackModel    string
	// Audio extraction settings (passed to ffmpeg as-is, hence strings)
	AudioSampleRate string
	AudioChannels   string
	// MongoDB settings
	MongoHost         string
	MongoPort         string
	MongoUsername     string
	MongoPassword     string
	MongoDatabase     string
	MongoAuthDatabase string
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "9000"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		GroqAPIKey:   getEnv("GROQ_API_KEY", ""),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),

		GroqTranscriptionModel: getEnv("GROQ_TRANSCRIPTION_MODEL", "whisper-large-v3"),
		GroqChatModel:          getEnv("GROQ_CHAT_MODEL", "llama-3.1-8b-instant"),
		GeminiModel:            getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiFallbackModel:    getEnv("GEMINI_FALLBACK_MODEL", "gemini-pro"),

		AudioSampleRate: getEnv("AUDIO_SAMPLE_RATE", "16000"),
		AudioChannels:   getEnv("AUDIO_CHANNELS", "1"),

		MongoHost:         getEnv("MONGODB_HOST", "localhost"),
		MongoPort:         getEnv("MONGODB_PORT", "27017"),
		MongoUsername:     getEnv("MONGODB_USERNAME", ""),
		MongoPassword:     getEnv("MONGODB_PASSWORD", ""),
		MongoDatabase:     getEnv("MONGODB_DATABASE", "video_profile_extractor"),
		MongoAuthDatabase: getEnv("MONGODB_AUTH_DATABASE", "admin"),
	}

	if cfg.GroqAPIKey == "" && cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("at least one AI provider API key must be set (GROQ_API_KEY or GEMINI_API_KEY)")
	}

	return cfg, nil
}

// MongoURI builds the connection string. Credentials are included only when
// both username and password are present (local development runs without auth).
func (c *Config) MongoURI() string {
	if c.MongoUsername != "" && c.MongoPassword != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=%s",
			c.MongoUsername, c.MongoPassword, c.MongoHost, c.MongoPort, c.MongoDatabase, c.MongoAuthDatabase)
	}
	return fmt.Sprintf("mongodb://%s:%s/", c.MongoHost, c.MongoPort)
}

// RedactedMongoURI is MongoURI with the password masked, safe for logs.
func (c *Config) RedactedMongoURI() string {
	if c.MongoPassword == "" {
		return c.MongoURI()
	}
	return strings.Replace(c.MongoURI(), ":"+c.MongoPassword+"@", ":****@", 1)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
