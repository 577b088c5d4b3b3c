package domain

import (
	"context"
	"io"
)

// NotSpecified is the sentinel value providers return for fields that are
// absent from the transcription and cannot be inferred.
const NotSpecified = "Not specified"

// UnableToTranscribe is returned as the transcript when the speech-to-text
// vendor produces an empty result. It is a value, not an error: the pipeline
// keeps going with it.
const UnableToTranscribe = "Unable to transcribe audio."

// ProfileData is the structured profile extracted from a video transcription.
// All fields are free-form natural language; missing information carries the
// NotSpecified sentinel instead of being omitted. It lives for one request only.
type ProfileData struct {
	Name         string `json:"name" validate:"required"`
	Profession   string `json:"profession" validate:"required"`
	Experience   string `json:"experience"`
	Education    string `json:"education"`
	Technologies string `json:"technologies"`
	Languages    string `json:"languages"`
	Achievements string `json:"achievements"`
	SoftSkills   string `json:"soft_skills"`
}

// VideoProfileResult is the response of the full pipeline.
type VideoProfileResult struct {
	CVProfile   string       `json:"cv_profile"`
	ProfileData *ProfileData `json:"profile_data"`
}

// AIProvider is the capability contract every vendor integration implements.
// Exactly one provider is constructed at startup and shared for the process
// lifetime; implementations must be safe for concurrent use.
type AIProvider interface {
	// Name identifies the vendor (for logs).
	Name() string
	// TranscribeAudio transcribes a mono PCM WAV file. An empty vendor result
	// yields the UnableToTranscribe sentinel with a nil error.
	TranscribeAudio(ctx context.Context, audioPath string) (string, error)
	// ExtractProfile turns a transcription into structured profile data.
	ExtractProfile(ctx context.Context, text string) (*ProfileData, error)
	// GenerateCVProfile writes the narrative CV paragraph from the transcript
	// and the extracted profile. Raw trimmed text, no parsing.
	GenerateCVProfile(ctx context.Context, transcription string, profile *ProfileData) (string, error)
	// GenerateTechnicalTest builds a competency test tailored to the profile.
	GenerateTechnicalTest(ctx context.Context, profile *ProfileData) (string, error)
}

// MediaExtractor turns an uploaded video stream into a scratch video file and
// a derived audio file, and disposes of both afterwards.
type MediaExtractor interface {
	ProcessVideo(ctx context.Context, src io.Reader, filename string) (videoPath, audioPath string, err error)
	// Cleanup is best-effort: failures are logged, never returned, and calling
	// it with paths that no longer exist is safe.
	Cleanup(videoPath, audioPath string)
}

type VideoUsecase interface {
	ProcessVideo(ctx context.Context, src io.Reader, filename string) (*VideoProfileResult, error)
	GenerateTechnicalTest(ctx context.Context, profile *ProfileData) (string, error)
}
