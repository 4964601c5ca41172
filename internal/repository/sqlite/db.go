package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"cat-exhibition/internal/repository"
)

// Open opens (or creates) a sqlite database at the given path and ensures directories exist.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// a single connection serializes writers, which also serializes the
	// read-modify-write of a cat's rating inside Record.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	return db, nil
}

// NewStore builds all repositories on db and creates their tables.
func NewStore(ctx context.Context, db *sql.DB) (*repository.Store, error) {
	s := &repository.Store{
		Users:  NewUserRepository(db),
		Breeds: NewBreedRepository(db),
		Cats:   NewCatRepository(db),
		Votes:  NewVoteRepository(db),
		Tokens: NewTokenRepository(db),
	}
	if err := s.Init(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// castErr replaces driver errors with repository sentinels.
func castErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique constraint"):
		return fmt.Errorf("%w: %v", repository.ErrConflict, err)
	case strings.Contains(msg, "foreign key constraint"):
		return fmt.Errorf("%w: %v", repository.ErrReference, err)
	}
	return err
}
