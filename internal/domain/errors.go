package domain

import "errors"

// Error taxonomy. Per-request failures wrap one of these sentinels so callers
// can classify with errors.Is while the message keeps the vendor detail.
var (
	// ErrNoProvider is fatal at startup: no AI provider could be constructed.
	ErrNoProvider = errors.New("no AI provider available, check your API keys")

	// ErrExtraction: the media tool failed to produce an audio track.
	ErrExtraction = errors.New("audio extraction failed")

	// ErrTranscription: the speech-to-text vendor call errored.
	ErrTranscription = errors.New("transcription failed")

	// ErrProfileParse: no valid JSON object in the model response.
	ErrProfileParse = errors.New("no valid JSON found in model response")

	// ErrGeneration: a text-generation vendor call errored.
	ErrGeneration = errors.New("text generation failed")

	// ErrPromptNotFound: a prompt name with no template in the store nor in
	// the built-in defaults.
	ErrPromptNotFound = errors.New("prompt template not found")

	// ErrTemplateRender: a declared variable without a substitution, or a
	// substitution for a placeholder the template does not declare.
	ErrTemplateRender = errors.New("prompt template rendering failed")

	// ErrStoreUnavailable: the document store cannot be reached. Reads degrade
	// to defaults; writes surface this error.
	ErrStoreUnavailable = errors.New("prompt store unavailable")
)
