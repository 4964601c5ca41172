package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"cat-exhibition/internal/domain"
	"cat-exhibition/internal/repository"
)

const (
	maxBreedNameLength        = 128
	maxBreedDescriptionLength = 512
)

// BreedService manages the breed catalog.
type BreedService interface {
	Create(ctx context.Context, name, description string) (*domain.Breed, error)
	Get(ctx context.Context, id int64) (*domain.Breed, error)
	List(ctx context.Context) ([]domain.Breed, error)
}

type breedService struct {
	breeds repository.BreedRepository
}

func NewBreedService(breeds repository.BreedRepository) BreedService {
	return &breedService{breeds: breeds}
}

func (s *breedService) Create(ctx context.Context, name, description string) (*domain.Breed, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	if name == "" {
		return nil, invalid("breed name is required")
	}
	if utf8.RuneCountInString(name) > maxBreedNameLength {
		return nil, invalid("breed name must be at most %d characters", maxBreedNameLength)
	}
	if utf8.RuneCountInString(description) > maxBreedDescriptionLength {
		return nil, invalid("breed description must be at most %d characters", maxBreedDescriptionLength)
	}

	breed := &domain.Breed{Name: name, Description: description}
	if _, err := s.breeds.Create(ctx, breed); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, invalid("breed %q already exists", name)
		}
		return nil, err
	}
	return breed, nil
}

func (s *breedService) Get(ctx context.Context, id int64) (*domain.Breed, error) {
	return s.breeds.Get(ctx, id)
}

func (s *breedService) List(ctx context.Context) ([]domain.Breed, error) {
	return s.breeds.List(ctx)
}
