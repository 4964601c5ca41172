package repository

import (
	"context"

	"cat-exhibition/internal/domain"
)

// BreedRepository exposes the breed catalog.
type BreedRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, breed *domain.Breed) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Breed, error)
	List(ctx context.Context) ([]domain.Breed, error)
}

// CatFilter narrows List results. Zero values mean no filtering.
type CatFilter struct {
	BreedID int64
	OwnerID int64
}

// CatRepository exposes persistence operations for Cat aggregates.
type CatRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, cat *domain.Cat) (int64, error)
	Update(ctx context.Context, cat *domain.Cat) error
	SetPhoto(ctx context.Context, id int64, key string) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Cat, error)
	List(ctx context.Context, filter CatFilter) ([]domain.Cat, error)
}

// VoteRepository is the vote ledger.
type VoteRepository interface {
	Init(ctx context.Context) error
	// Record inserts the vote and applies it to the cat's tallies in a single
	// transaction, returning the updated cat.
	Record(ctx context.Context, vote *domain.Vote) (*domain.Cat, error)
	ListByCat(ctx context.Context, catID int64) ([]domain.Vote, error)
	// RecomputeRatings rebuilds every cat's tallies from the ledger and
	// returns the number of cats whose cached values changed.
	RecomputeRatings(ctx context.Context) (int64, error)
}

// TokenRepository tracks revoked refresh tokens.
type TokenRepository interface {
	Init(ctx context.Context) error
	Revoke(ctx context.Context, token domain.RevokedToken) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	PurgeExpired(ctx context.Context) (int64, error)
}
