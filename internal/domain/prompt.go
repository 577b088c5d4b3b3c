package domain

import "context"

// Prompt template names. The set is fixed; templates are seeded at first
// startup and only ever mutated through UpdatePrompt.
const (
	PromptProfileExtraction       = "profile_extraction"
	PromptCVGeneration            = "cv_generation"
	PromptTechnicalTestGeneration = "technical_test_generation"
)

// PromptTemplate is the canonical text of one named prompt with its declared
// placeholder variables. Every {identifier} token in Template must appear in
// Variables; rendering fails otherwise.
type PromptTemplate struct {
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description" bson:"description"`
	Template    string   `json:"template" bson:"template"`
	Variables   []string `json:"variables" bson:"variables"`
}

// PromptRepository serves prompt templates from a document store through a
// process-wide cache, degrading to built-in defaults when the store is
// unreachable.
type PromptRepository interface {
	GetPrompt(ctx context.Context, name string) (string, error)
	// GetPromptWithVariables renders the template with the given
	// substitutions. ErrPromptNotFound if no template exists anywhere,
	// ErrTemplateRender on a missing or undeclared variable.
	GetPromptWithVariables(ctx context.Context, name string, vars map[string]string) (string, error)
	// UpdatePrompt upserts the template text and evicts the cache entry.
	// Fails when the store is unreachable; the cache is left untouched.
	UpdatePrompt(ctx context.Context, name, template string) error
	ListPrompts(ctx context.Context) ([]string, error)
}

type UpdatePromptRequest struct {
	Template string `json:"template" validate:"required,min=1"`
}

type PromptUsecase interface {
	List(ctx context.Context) ([]string, error)
	Get(ctx context.Context, name string) (*PromptView, error)
	Update(ctx context.Context, name string, req *UpdatePromptRequest) error
}

// PromptView is the read shape returned by the prompts API.
type PromptView struct {
	Name     string `json:"name"`
	Template string `json:"template"`
}
