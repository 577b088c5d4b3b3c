package provider

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video-profile-extractor/config"
	"video-profile-extractor/internal/domain"
	"video-profile-extractor/internal/repository/mongodb"
	"video-profile-extractor/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func testConfig(groqKey, geminiKey string) *config.Config {
	return &config.Config{
		GroqAPIKey:             groqKey,
		GeminiAPIKey:           geminiKey,
		GroqTranscriptionModel: "whisper-large-v3",
		GroqChatModel:          "llama-3.1-8b-instant",
		GeminiModel:            "gemini-2.0-flash",
		GeminiFallbackModel:    "gemini-pro",
	}
}

func TestProviderFactory(t *testing.T) {
	prompts := mongodb.NewPromptRepository(nil)

	t.Run("Should pick Groq when both credentials are present", func(t *testing.T) {
		p, err := NewFromConfig(context.Background(), testConfig("gsk_test", "AItest"), prompts)
		require.NoError(t, err)
		assert.Equal(t, "groq", p.Name())
	})

	t.Run("Should fall back to Gemini when Groq credential is absent", func(t *testing.T) {
		p, err := NewFromConfig(context.Background(), testConfig("", "AItest"), prompts)
		require.NoError(t, err)
		assert.Equal(t, "gemini", p.Name())
	})

	t.Run("Should fail with configuration error when no credential is present", func(t *testing.T) {
		_, err := NewFromConfig(context.Background(), testConfig("", ""), prompts)
		assert.ErrorIs(t, err, domain.ErrNoProvider)
	})
}
