package usecase

import (
	"context"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"video-profile-extractor/internal/domain"
	"video-profile-extractor/pkg/apperror"
	"video-profile-extractor/pkg/logger"
)

type videoUsecase struct {
	extractor domain.MediaExtractor
	provider  domain.AIProvider
	validate  *validator.Validate
}

func NewVideoUsecase(extractor domain.MediaExtractor, provider domain.AIProvider, validate *validator.Validate) domain.VideoUsecase {
	return &videoUsecase{
		extractor: extractor,
		provider:  provider,
		validate:  validate,
	}
}

// ProcessVideo runs the full sequential pipeline: extraction, transcription,
// profile extraction, CV generation. Scratch artifacts are cleaned up exactly
// once whatever the outcome.
func (u *videoUsecase) ProcessVideo(ctx context.Context, src io.Reader, filename string) (*domain.VideoProfileResult, error) {
	videoPath, audioPath, err := u.extractor.ProcessVideo(ctx, src, filename)
	defer u.extractor.Cleanup(videoPath, audioPath)
	if err != nil {
		return nil, apperror.UnprocessableEntity("Failed to extract audio from video", err)
	}

	transcription, err := u.provider.TranscribeAudio(ctx, audioPath)
	if err != nil {
		return nil, apperror.New(http.StatusBadGateway, "Transcription failed: "+err.Error(), err)
	}
	logger.Log.Debug("Audio transcribed", "provider", u.provider.Name(), "chars", len(transcription))

	profile, err := u.provider.ExtractProfile(ctx, transcription)
	if err != nil {
		return nil, apperror.New(http.StatusBadGateway, "Profile extraction failed: "+err.Error(), err)
	}

	cvProfile, err := u.provider.GenerateCVProfile(ctx, transcription, profile)
	if err != nil {
		return nil, apperror.New(http.StatusBadGateway, "CV generation failed: "+err.Error(), err)
	}

	return &domain.VideoProfileResult{
		CVProfile:   cvProfile,
		ProfileData: profile,
	}, nil
}

func (u *videoUsecase) GenerateTechnicalTest(ctx context.Context, profile *domain.ProfileData) (string, error) {
	if err := u.validate.Struct(profile); err != nil {
		return "", apperror.BadRequest(err.Error())
	}

	test, err := u.provider.GenerateTechnicalTest(ctx, profile)
	if err != nil {
		return "", apperror.New(http.StatusBadGateway, "Technical test generation failed: "+err.Error(), err)
	}
	return test, nil
}
