package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"video-profile-extractor/config"
	"video-profile-extractor/internal/domain"
	"video-profile-extractor/pkg/logger"
)

// GeminiProvider is the priority-2 provider. Gemini has no dedicated
// transcription endpoint; audio goes to the multimodal generate endpoint as
// inline bytes next to the instruction. Generation runs against the primary
// model with one retry on the documented fallback model.
type GeminiProvider struct {
	client        *genai.Client
	model         string
	fallbackModel string
	prompts       domain.PromptRepository
}

func NewGeminiProvider(ctx context.Context, cfg *config.Config, prompts domain.PromptRepository) (*GeminiProvider, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiProvider{
		client:        client,
		model:         cfg.GeminiModel,
		fallbackModel: cfg.GeminiFallbackModel,
		prompts:       prompts,
	}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) TranscribeAudio(ctx context.Context, audioPath string) (string, error) {
	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("%w: read audio: %v", domain.ErrTranscription, err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText("Transcribe this audio in Spanish. Provide only the speech transcription, without additional comments or special formatting."),
			genai.NewPartFromBytes(audio, "audio/wav"),
		}, genai.RoleUser),
	}

	text, err := p.generate(ctx, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.1),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranscription, err)
	}

	transcript := strings.TrimSpace(text)
	if transcript == "" {
		return domain.UnableToTranscribe, nil
	}
	return transcript, nil
}

func (p *GeminiProvider) ExtractProfile(ctx context.Context, text string) (*domain.ProfileData, error) {
	prompt, err := p.prompts.GetPromptWithVariables(ctx, domain.PromptProfileExtraction, map[string]string{
		"text": text,
	})
	if err != nil {
		return nil, err
	}

	response, err := p.generateText(ctx, prompt, 0.1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	return parseProfile(response)
}

func (p *GeminiProvider) GenerateCVProfile(ctx context.Context, transcription string, profile *domain.ProfileData) (string, error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("%w: marshal profile: %v", domain.ErrGeneration, err)
	}
	prompt, err := p.prompts.GetPromptWithVariables(ctx, domain.PromptCVGeneration, map[string]string{
		"transcription": transcription,
		"profile_data":  string(profileJSON),
	})
	if err != nil {
		return "", err
	}

	response, err := p.generateText(ctx, prompt, 0.3)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	return strings.TrimSpace(response), nil
}

func (p *GeminiProvider) GenerateTechnicalTest(ctx context.Context, profile *domain.ProfileData) (string, error) {
	prompt, err := p.prompts.GetPromptWithVariables(ctx, domain.PromptTechnicalTestGeneration, map[string]string{
		"profession":   profile.Profession,
		"technologies": profile.Technologies,
		"experience":   profile.Experience,
		"education":    profile.Education,
	})
	if err != nil {
		return "", err
	}

	response, err := p.generateText(ctx, prompt, 0.3)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	return strings.TrimSpace(response), nil
}

func (p *GeminiProvider) generateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	return p.generate(ctx, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	})
}

// generate calls the primary model and falls back once to the configured
// fallback model, covering primary identifiers that stop being served.
func (p *GeminiProvider) generate(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil && p.fallbackModel != "" && p.fallbackModel != p.model {
		logger.Log.Warn("Primary Gemini model failed, retrying with fallback",
			"model", p.model, "fallback", p.fallbackModel, "error", err)
		result, err = p.client.Models.GenerateContent(ctx, p.fallbackModel, contents, cfg)
	}
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}
