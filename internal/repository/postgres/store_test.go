package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"cat-exhibition/internal/domain"
	"cat-exhibition/internal/repository"
)

// newTestStore connects to CATSHOW_TEST_POSTGRES_DSN and wipes all tables.
func newTestStore(t *testing.T) *repository.Store {
	t.Helper()

	dsn := os.Getenv("CATSHOW_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("CATSHOW_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()

	db, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := NewStore(ctx, db)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	if _, err := db.ExecContext(ctx, `TRUNCATE votes, cats, breeds, users, revoked_tokens RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return store
}

func TestVoteRecordAndConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := &domain.User{Username: "alice", PasswordHash: "x"}
	bob := &domain.User{Username: "bob", PasswordHash: "x"}
	for _, u := range []*domain.User{alice, bob} {
		if _, err := s.Users.Create(ctx, u); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}
	if _, err := s.Users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "y"}); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	breed := &domain.Breed{Name: "Siberian"}
	if _, err := s.Breeds.Create(ctx, breed); err != nil {
		t.Fatalf("create breed: %v", err)
	}
	cat := &domain.Cat{Name: "Mark", Color: "black", Description: "young", AgeMonths: 10, BreedID: breed.ID, OwnerID: alice.ID}
	if _, err := s.Cats.Create(ctx, cat); err != nil {
		t.Fatalf("create cat: %v", err)
	}

	if _, err := s.Votes.Record(ctx, &domain.Vote{UserID: alice.ID, CatID: cat.ID, Value: 4}); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	updated, err := s.Votes.Record(ctx, &domain.Vote{UserID: bob.ID, CatID: cat.ID, Value: 2})
	if err != nil {
		t.Fatalf("second vote: %v", err)
	}
	if updated.Rating != 3 || updated.TotalVotes != 2 {
		t.Fatalf("unexpected tallies %+v", updated)
	}

	if _, err := s.Votes.Record(ctx, &domain.Vote{UserID: bob.ID, CatID: cat.ID, Value: 5}); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := s.Votes.Record(ctx, &domain.Vote{UserID: bob.ID, CatID: cat.ID + 100, Value: 5}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	n, err := s.Votes.RecomputeRatings(ctx)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no drift, got %d", n)
	}
}
