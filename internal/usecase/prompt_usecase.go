package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"video-profile-extractor/internal/domain"
	"video-profile-extractor/pkg/apperror"
)

type promptUsecase struct {
	repo     domain.PromptRepository
	validate *validator.Validate
}

func NewPromptUsecase(repo domain.PromptRepository, validate *validator.Validate) domain.PromptUsecase {
	return &promptUsecase{
		repo:     repo,
		validate: validate,
	}
}

func (u *promptUsecase) List(ctx context.Context) ([]string, error) {
	return u.repo.ListPrompts(ctx)
}

func (u *promptUsecase) Get(ctx context.Context, name string) (*domain.PromptView, error) {
	template, err := u.repo.GetPrompt(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrPromptNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Prompt %q not found", name))
		}
		return nil, err
	}
	return &domain.PromptView{Name: name, Template: template}, nil
}

func (u *promptUsecase) Update(ctx context.Context, name string, req *domain.UpdatePromptRequest) error {
	if err := u.validate.Struct(req); err != nil {
		return apperror.BadRequest(err.Error())
	}

	// Only the fixed prompt set is editable; updates never create new names.
	if _, err := u.repo.GetPrompt(ctx, name); err != nil {
		if errors.Is(err, domain.ErrPromptNotFound) {
			return apperror.NotFound(fmt.Sprintf("Prompt %q not found", name))
		}
		return err
	}

	if err := u.repo.UpdatePrompt(ctx, name, req.Template); err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return apperror.ServiceUnavailable("Prompt store is unavailable, update rejected", err)
		}
		return err
	}
	return nil
}
