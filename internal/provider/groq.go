package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"video-profile-extractor/config"
	"video-profile-extractor/internal/domain"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider is the priority-1 provider: Whisper for transcription, chat
// completions for generation. The Groq API is OpenAI-compatible, so requests
// are plain JSON over net/http with hand-rolled body structs.
type GroqProvider struct {
	baseURL            string
	apiKey             string
	transcriptionModel string
	chatModel          string
	prompts            domain.PromptRepository
	httpClient         *http.Client
}

func NewGroqProvider(cfg *config.Config, prompts domain.PromptRepository) (*GroqProvider, error) {
	if cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is not set")
	}
	return &GroqProvider{
		baseURL:            groqBaseURL,
		apiKey:             cfg.GroqAPIKey,
		transcriptionModel: cfg.GroqTranscriptionModel,
		chatModel:          cfg.GroqChatModel,
		prompts:            prompts,
		httpClient:         &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (p *GroqProvider) Name() string { return "groq" }

// TranscribeAudio uploads the WAV file to the Whisper transcription endpoint.
// With response_format=text the body is the raw transcript.
func (p *GroqProvider) TranscribeAudio(ctx context.Context, audioPath string) (string, error) {
	audio, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("%w: open audio: %v", domain.ErrTranscription, err)
	}
	defer audio.Close()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranscription, err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("%w: read audio: %v", domain.ErrTranscription, err)
	}
	_ = form.WriteField("model", p.transcriptionModel)
	_ = form.WriteField("language", "es")
	_ = form.WriteField("response_format", "text")
	_ = form.WriteField("prompt", "Transcribe this audio in Spanish. It's a personal or professional presentation.")
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranscription, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranscription, err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranscription, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", domain.ErrTranscription, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: groq returned HTTP %d: %s", domain.ErrTranscription, resp.StatusCode, string(respBytes))
	}

	transcript := strings.TrimSpace(string(respBytes))
	if transcript == "" {
		return domain.UnableToTranscribe, nil
	}
	return transcript, nil
}

func (p *GroqProvider) ExtractProfile(ctx context.Context, text string) (*domain.ProfileData, error) {
	prompt, err := p.prompts.GetPromptWithVariables(ctx, domain.PromptProfileExtraction, map[string]string{
		"text": text,
	})
	if err != nil {
		return nil, err
	}

	response, err := p.chat(ctx,
		"You are an assistant that extracts professional profile information from transcribed texts. Always respond with valid JSON only.",
		prompt, 0.1, 1000)
	if err != nil {
		return nil, err
	}
	return parseProfile(response)
}

func (p *GroqProvider) GenerateCVProfile(ctx context.Context, transcription string, profile *domain.ProfileData) (string, error) {
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

	response, err := p.chat(ctx,
		"You are an assistant specialized in creating professional CV profiles. Generate persuasive and professional texts in Spanish.",
		prompt, 0.3, 1500)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

func (p *GroqProvider) GenerateTechnicalTest(ctx context.Context, profile *domain.ProfileData) (string, error) {
	prompt, err := p.prompts.GetPromptWithVariables(ctx, domain.PromptTechnicalTestGeneration, map[string]string{
		"profession":   profile.Profession,
		"technologies": profile.Technologies,
		"experience":   profile.Experience,
		"education":    profile.Education,
	})
	if err != nil {
		return "", err
	}

	response, err := p.chat(ctx,
		"You are a senior talent assessment specialist. Design rigorous, fair competency evaluations.",
		prompt, 0.3, 2000)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

// chatRequest mirrors the OpenAI-compatible /chat/completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse mirrors the relevant fields of the response.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (p *GroqProvider) chat(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	reqBody := chatRequest{
		Model: p.chatModel,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", domain.ErrGeneration, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", domain.ErrGeneration, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: groq returned HTTP %d: %s", domain.ErrGeneration, resp.StatusCode, string(respBytes))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", fmt.Errorf("%w: parse response: %v", domain.ErrGeneration, err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("%w: groq error (%s): %s", domain.ErrGeneration, chatResp.Error.Type, chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: groq returned no choices", domain.ErrGeneration)
	}
	return chatResp.Choices[0].Message.Content, nil
}
