package service

import (
	"context"
	"errors"

	"cat-exhibition/internal/domain"
	"cat-exhibition/internal/repository"
)

// VoteService records marks and keeps cat ratings in step with the vote ledger.
type VoteService interface {
	Vote(ctx context.Context, userID, catID int64, value int) (*domain.Cat, error)
	ListByCat(ctx context.Context, catID int64) ([]domain.Vote, error)
	Reconcile(ctx context.Context) (int64, error)
}

type voteService struct {
	votes repository.VoteRepository
	cats  repository.CatRepository
}

func NewVoteService(votes repository.VoteRepository, cats repository.CatRepository) VoteService {
	return &voteService{
		votes: votes,
		cats:  cats,
	}
}

func (s *voteService) Vote(ctx context.Context, userID, catID int64, value int) (*domain.Cat, error) {
	if !domain.ValidVoteValue(value) {
		return nil, invalid("value must be between %d and %d", domain.MinVoteValue, domain.MaxVoteValue)
	}

	cat, err := s.votes.Record(ctx, &domain.Vote{
		UserID: userID,
		CatID:  catID,
		Value:  value,
	})
	switch {
	case err == nil:
		return cat, nil
	case errors.Is(err, repository.ErrConflict):
		return nil, ErrAlreadyVoted
	case errors.Is(err, repository.ErrReference):
		return nil, invalid("unknown voter")
	default:
		return nil, err
	}
}

func (s *voteService) ListByCat(ctx context.Context, catID int64) ([]domain.Vote, error) {
	if _, err := s.cats.Get(ctx, catID); err != nil {
		return nil, err
	}
	return s.votes.ListByCat(ctx, catID)
}

// Reconcile rebuilds cached tallies from the ledger.
func (s *voteService) Reconcile(ctx context.Context) (int64, error) {
	return s.votes.RecomputeRatings(ctx)
}
