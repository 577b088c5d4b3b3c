package usecase_test

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"video-profile-extractor/internal/domain"
	"video-profile-extractor/internal/usecase"
	"video-profile-extractor/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// Mock collaborators

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) ProcessVideo(ctx context.Context, src io.Reader, filename string) (string, string, error) {
	args := m.Called(ctx, src, filename)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockExtractor) Cleanup(videoPath, audioPath string) {
	m.Called(videoPath, audioPath)
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) TranscribeAudio(ctx context.Context, audioPath string) (string, error) {
	args := m.Called(ctx, audioPath)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) ExtractProfile(ctx context.Context, text string) (*domain.ProfileData, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfileData), args.Error(1)
}

func (m *MockProvider) GenerateCVProfile(ctx context.Context, transcription string, profile *domain.ProfileData) (string, error) {
	args := m.Called(ctx, transcription, profile)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) GenerateTechnicalTest(ctx context.Context, profile *domain.ProfileData) (string, error) {
	args := m.Called(ctx, profile)
	return args.String(0), args.Error(1)
}

type MockPromptRepo struct {
	mock.Mock
}

func (m *MockPromptRepo) GetPrompt(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockPromptRepo) GetPromptWithVariables(ctx context.Context, name string, vars map[string]string) (string, error) {
	args := m.Called(ctx, name, vars)
	return args.String(0), args.Error(1)
}

func (m *MockPromptRepo) UpdatePrompt(ctx context.Context, name, template string) error {
	return m.Called(ctx, name, template).Error(0)
}

func (m *MockPromptRepo) ListPrompts(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func sampleProfile() *domain.ProfileData {
	return &domain.ProfileData{
		Name:         "Ana García",
		Profession:   "Data Scientist",
		Experience:   "5 years in fintech",
		Education:    domain.NotSpecified,
		Technologies: "Python, SQL",
		Languages:    "Spanish - Native",
		Achievements: domain.NotSpecified,
		SoftSkills:   "Leadership",
	}
}

func TestProcessVideo(t *testing.T) {
	ctx := context.Background()
	validate := validator.New()

	t.Run("Should run the full pipeline and clean up exactly once", func(t *testing.T) {
		extractor := new(MockExtractor)
		provider := new(MockProvider)
		profile := sampleProfile()

		extractor.On("ProcessVideo", ctx, mock.Anything, "video.mp4").Return("/tmp/v.mp4", "/tmp/v.wav", nil)
		extractor.On("Cleanup", "/tmp/v.mp4", "/tmp/v.wav").Return().Once()
		provider.On("TranscribeAudio", ctx, "/tmp/v.wav").Return("hola, soy Ana", nil)
		provider.On("ExtractProfile", ctx, "hola, soy Ana").Return(profile, nil)
		provider.On("GenerateCVProfile", ctx, "hola, soy Ana", profile).Return("Perfil profesional...", nil)

		uc := usecase.NewVideoUsecase(extractor, provider, validate)
		result, err := uc.ProcessVideo(ctx, strings.NewReader("data"), "video.mp4")

		require.NoError(t, err)
		assert.Equal(t, "Perfil profesional...", result.CVProfile)
		assert.Equal(t, profile, result.ProfileData)
		extractor.AssertExpectations(t)
		provider.AssertExpectations(t)
	})

	t.Run("Should keep going on the sentinel when transcription comes back empty-handed", func(t *testing.T) {
		extractor := new(MockExtractor)
		provider := new(MockProvider)
		profile := sampleProfile()

		extractor.On("ProcessVideo", ctx, mock.Anything, "silent.mp4").Return("/tmp/s.mp4", "/tmp/s.wav", nil)
		extractor.On("Cleanup", "/tmp/s.mp4", "/tmp/s.wav").Return().Once()
		// The provider returns the sentinel, not an error, for empty vendor output.
		provider.On("TranscribeAudio", ctx, "/tmp/s.wav").Return(domain.UnableToTranscribe, nil)
		provider.On("ExtractProfile", ctx, domain.UnableToTranscribe).Return(profile, nil)
		provider.On("GenerateCVProfile", ctx, domain.UnableToTranscribe, profile).Return("Perfil...", nil)

		uc := usecase.NewVideoUsecase(extractor, provider, validate)
		result, err := uc.ProcessVideo(ctx, strings.NewReader("data"), "silent.mp4")

		require.NoError(t, err)
		assert.Equal(t, "Perfil...", result.CVProfile)
		provider.AssertCalled(t, "ExtractProfile", ctx, domain.UnableToTranscribe)
	})

	t.Run("Should surface extraction failure and still clean up", func(t *testing.T) {
		extractor := new(MockExtractor)
		provider := new(MockProvider)

		extractor.On("ProcessVideo", ctx, mock.Anything, "broken.mp4").
			Return("/tmp/b.mp4", "", domain.ErrExtraction)
		extractor.On("Cleanup", "/tmp/b.mp4", "").Return().Once()

		uc := usecase.NewVideoUsecase(extractor, provider, validate)
		_, err := uc.ProcessVideo(ctx, strings.NewReader("data"), "broken.mp4")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "extract audio")
		extractor.AssertExpectations(t)
		provider.AssertNotCalled(t, "TranscribeAudio", mock.Anything, mock.Anything)
	})

	t.Run("Should surface transcription failure and still clean up", func(t *testing.T) {
		extractor := new(MockExtractor)
		provider := new(MockProvider)

		extractor.On("ProcessVideo", ctx, mock.Anything, "video.mp4").Return("/tmp/v.mp4", "/tmp/v.wav", nil)
		extractor.On("Cleanup", "/tmp/v.mp4", "/tmp/v.wav").Return().Once()
		provider.On("TranscribeAudio", ctx, "/tmp/v.wav").
			Return("", errors.New("vendor exploded"))

		uc := usecase.NewVideoUsecase(extractor, provider, validate)
		_, err := uc.ProcessVideo(ctx, strings.NewReader("data"), "video.mp4")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "vendor exploded")
		extractor.AssertExpectations(t)
	})
}

func TestGenerateTechnicalTest(t *testing.T) {
	ctx := context.Background()
	validate := validator.New()

	t.Run("Should generate a test for a valid profile", func(t *testing.T) {
		provider := new(MockProvider)
		profile := sampleProfile()
		provider.On("GenerateTechnicalTest", ctx, profile).Return("Sección 1...", nil)

		uc := usecase.NewVideoUsecase(new(MockExtractor), provider, validate)
		test, err := uc.GenerateTechnicalTest(ctx, profile)

		require.NoError(t, err)
		assert.Equal(t, "Sección 1...", test)
	})

	t.Run("Should reject a profile missing required fields", func(t *testing.T) {
		provider := new(MockProvider)

		uc := usecase.NewVideoUsecase(new(MockExtractor), provider, validate)
		_, err := uc.GenerateTechnicalTest(ctx, &domain.ProfileData{})

		assert.Error(t, err)
		provider.AssertNotCalled(t, "GenerateTechnicalTest", mock.Anything, mock.Anything)
	})
}

func TestPromptUsecase(t *testing.T) {
	ctx := context.Background()
	validate := validator.New()

	t.Run("Should update an existing prompt", func(t *testing.T) {
		repo := new(MockPromptRepo)
		repo.On("GetPrompt", ctx, "cv_generation").Return("old", nil)
		repo.On("UpdatePrompt", ctx, "cv_generation", "new {transcription} {profile_data}").Return(nil)

		uc := usecase.NewPromptUsecase(repo, validate)
		err := uc.Update(ctx, "cv_generation", &domain.UpdatePromptRequest{Template: "new {transcription} {profile_data}"})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Should reject an empty template", func(t *testing.T) {
		repo := new(MockPromptRepo)

		uc := usecase.NewPromptUsecase(repo, validate)
		err := uc.Update(ctx, "cv_generation", &domain.UpdatePromptRequest{})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "UpdatePrompt", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should map unknown prompt to not found", func(t *testing.T) {
		repo := new(MockPromptRepo)
		repo.On("GetPrompt", ctx, "nope").Return("", domain.ErrPromptNotFound)

		uc := usecase.NewPromptUsecase(repo, validate)
		err := uc.Update(ctx, "nope", &domain.UpdatePromptRequest{Template: "x"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("Should refuse updates while the store is unreachable", func(t *testing.T) {
		repo := new(MockPromptRepo)
		repo.On("GetPrompt", ctx, "cv_generation").Return("old", nil)
		repo.On("UpdatePrompt", ctx, "cv_generation", "x").Return(domain.ErrStoreUnavailable)

		uc := usecase.NewPromptUsecase(repo, validate)
		err := uc.Update(ctx, "cv_generation", &domain.UpdatePromptRequest{Template: "x"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unavailable")
	})
}
