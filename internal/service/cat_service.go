package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"cat-exhibition/internal/domain"
	"cat-exhibition/internal/repository"
	"cat-exhibition/internal/storage"
)

const (
	maxCatNameLength        = 64
	maxCatColorLength       = 64
	maxCatDescriptionLength = 512
)

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// CatInput carries the owner-editable fields of a cat.
type CatInput struct {
	Name        string
	Color       string
	Description string
	AgeMonths   int
	BreedID     int64
}

// CatPatch is a partial CatInput; nil fields are left untouched.
type CatPatch struct {
	Name        *string
	Color       *string
	Description *string
	AgeMonths   *int
	BreedID     *int64
}

// Photo is an uploaded image waiting to be stored.
type Photo struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

// CatService manages the cat registry.
type CatService interface {
	Create(ctx context.Context, ownerID int64, in CatInput) (*domain.Cat, error)
	Get(ctx context.Context, id int64) (*domain.Cat, error)
	List(ctx context.Context, breedID int64) ([]domain.Cat, error)
	Update(ctx context.Context, actorID, id int64, in CatInput) (*domain.Cat, error)
	Patch(ctx context.Context, actorID, id int64, patch CatPatch) (*domain.Cat, error)
	Delete(ctx context.Context, actorID, id int64) error
	// CheckOwner reports ErrNotFound or ErrForbidden before a mutation body is parsed.
	CheckOwner(ctx context.Context, actorID, id int64) error
	SetPhoto(ctx context.Context, actorID, id int64, photo Photo) (*domain.Cat, error)
	PhotoURL(ctx context.Context, id int64) (string, error)
}

// CatServiceConfig holds the optional photo storage settings.
type CatServiceConfig struct {
	Storage        storage.Service
	KeyPrefix      string
	PresignExpires time.Duration
	MaxPhotoBytes  int64
	Logger         logrus.FieldLogger
}

type catService struct {
	cats   repository.CatRepository
	breeds repository.BreedRepository
	cfg    CatServiceConfig
}

func NewCatService(cats repository.CatRepository, breeds repository.BreedRepository, cfg CatServiceConfig) CatService {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.PresignExpires <= 0 {
		cfg.PresignExpires = 15 * time.Minute
	}
	if cfg.MaxPhotoBytes <= 0 {
		cfg.MaxPhotoBytes = 5 << 20
	}
	cfg.KeyPrefix = strings.Trim(cfg.KeyPrefix, "/")
	return &catService{
		cats:   cats,
		breeds: breeds,
		cfg:    cfg,
	}
}

func (s *catService) Create(ctx context.Context, ownerID int64, in CatInput) (*domain.Cat, error) {
	in = normalizeCatInput(in)
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	cat := &domain.Cat{
		Name:        in.Name,
		Color:       in.Color,
		Description: in.Description,
		AgeMonths:   in.AgeMonths,
		BreedID:     in.BreedID,
		OwnerID:     ownerID,
	}
	if _, err := s.cats.Create(ctx, cat); err != nil {
		if errors.Is(err, repository.ErrReference) {
			return nil, invalid("breed or owner does not exist")
		}
		return nil, err
	}
	return s.cats.Get(ctx, cat.ID)
}

func (s *catService) Get(ctx context.Context, id int64) (*domain.Cat, error) {
	return s.cats.Get(ctx, id)
}

func (s *catService) List(ctx context.Context, breedID int64) ([]domain.Cat, error) {
	return s.cats.List(ctx, repository.CatFilter{BreedID: breedID})
}

func (s *catService) Update(ctx context.Context, actorID, id int64, in CatInput) (*domain.Cat, error) {
	cat, err := s.owned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	in = normalizeCatInput(in)
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}
	return s.save(ctx, cat, in)
}

func (s *catService) Patch(ctx context.Context, actorID, id int64, patch CatPatch) (*domain.Cat, error) {
	cat, err := s.owned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	in := CatInput{
		Name:        cat.Name,
		Color:       cat.Color,
		Description: cat.Description,
		AgeMonths:   cat.AgeMonths,
		BreedID:     cat.BreedID,
	}
	if patch.Name != nil {
		in.Name = *patch.Name
	}
	if patch.Color != nil {
		in.Color = *patch.Color
	}
	if patch.Description != nil {
		in.Description = *patch.Description
	}
	if patch.AgeMonths != nil {
		in.AgeMonths = *patch.AgeMonths
	}
	if patch.BreedID != nil {
		in.BreedID = *patch.BreedID
	}

	in = normalizeCatInput(in)
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}
	return s.save(ctx, cat, in)
}

func (s *catService) save(ctx context.Context, cat *domain.Cat, in CatInput) (*domain.Cat, error) {
	cat.Name = in.Name
	cat.Color = in.Color
	cat.Description = in.Description
	cat.AgeMonths = in.AgeMonths
	cat.BreedID = in.BreedID

	if err := s.cats.Update(ctx, cat); err != nil {
		if errors.Is(err, repository.ErrReference) {
			return nil, invalid("breed %d does not exist", in.BreedID)
		}
		return nil, err
	}
	return s.cats.Get(ctx, cat.ID)
}

func (s *catService) Delete(ctx context.Context, actorID, id int64) error {
	cat, err := s.owned(ctx, actorID, id)
	if err != nil {
		return err
	}
	if err := s.cats.Delete(ctx, id); err != nil {
		return err
	}

	if cat.PhotoKey != "" && s.cfg.Storage != nil {
		if err := s.cfg.Storage.DeletePrefix(ctx, s.photoPrefix(id)); err != nil {
			s.cfg.Logger.WithError(err).WithField("cat_id", id).Warn("delete cat photos")
		}
	}
	return nil
}

func (s *catService) SetPhoto(ctx context.Context, actorID, id int64, photo Photo) (*domain.Cat, error) {
	if s.cfg.Storage == nil {
		return nil, ErrStorageDisabled
	}
	cat, err := s.owned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	ext, ok := photoExtensions[photo.ContentType]
	if !ok {
		return nil, invalid("unsupported photo content type %q", photo.ContentType)
	}
	if photo.Size <= 0 || photo.Size > s.cfg.MaxPhotoBytes {
		return nil, invalid("photo must be between 1 and %d bytes", s.cfg.MaxPhotoBytes)
	}

	key := path.Join(s.photoPrefix(id), uuid.NewString()+ext)
	if err := s.cfg.Storage.Upload(ctx, key, io.LimitReader(photo.Body, s.cfg.MaxPhotoBytes), photo.ContentType); err != nil {
		return nil, fmt.Errorf("store photo: %w", err)
	}
	if err := s.cats.SetPhoto(ctx, id, key); err != nil {
		return nil, err
	}

	if cat.PhotoKey != "" && cat.PhotoKey != key {
		if err := s.cfg.Storage.Delete(ctx, cat.PhotoKey); err != nil {
			s.cfg.Logger.WithError(err).WithField("key", cat.PhotoKey).Warn("delete replaced photo")
		}
	}
	return s.cats.Get(ctx, id)
}

func (s *catService) PhotoURL(ctx context.Context, id int64) (string, error) {
	if s.cfg.Storage == nil {
		return "", ErrStorageDisabled
	}
	cat, err := s.cats.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if cat.PhotoKey == "" {
		return "", fmt.Errorf("cat %d has no photo: %w", id, ErrNotFound)
	}
	return s.cfg.Storage.PresignGet(ctx, cat.PhotoKey, s.cfg.PresignExpires)
}

func (s *catService) photoPrefix(id int64) string {
	return path.Join(s.cfg.KeyPrefix, "cats", fmt.Sprint(id)) + "/"
}

func (s *catService) CheckOwner(ctx context.Context, actorID, id int64) error {
	_, err := s.owned(ctx, actorID, id)
	return err
}

// owned loads a cat and checks that actorID may modify it.
func (s *catService) owned(ctx context.Context, actorID, id int64) (*domain.Cat, error) {
	cat, err := s.cats.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cat.OwnedBy(actorID) {
		return nil, ErrForbidden
	}
	return cat, nil
}

func (s *catService) validate(ctx context.Context, in CatInput) error {
	switch {
	case in.Name == "":
		return invalid("name is required")
	case utf8.RuneCountInString(in.Name) > maxCatNameLength:
		return invalid("name must be at most %d characters", maxCatNameLength)
	case in.Color == "":
		return invalid("color is required")
	case utf8.RuneCountInString(in.Color) > maxCatColorLength:
		return invalid("color must be at most %d characters", maxCatColorLength)
	case in.Description == "":
		return invalid("description is required")
	case utf8.RuneCountInString(in.Description) > maxCatDescriptionLength:
		return invalid("description must be at most %d characters", maxCatDescriptionLength)
	case in.AgeMonths < 0:
		return invalid("age must not be negative")
	case in.BreedID <= 0:
		return invalid("breed is required")
	}

	if _, err := s.breeds.Get(ctx, in.BreedID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalid("breed %d does not exist", in.BreedID)
		}
		return err
	}
	return nil
}

func normalizeCatInput(in CatInput) CatInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Color = strings.TrimSpace(in.Color)
	in.Description = strings.TrimSpace(in.Description)
	return in
}
