package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"cat-exhibition/internal/domain"
	"cat-exhibition/internal/repository"
)

const createBreedsTable = `
CREATE TABLE IF NOT EXISTS breeds (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(128) NOT NULL UNIQUE,
	description VARCHAR(512) NOT NULL DEFAULT ''
)`

type BreedRepository struct {
	db *sql.DB
}

func NewBreedRepository(db *sql.DB) repository.BreedRepository {
	return &BreedRepository{db: db}
}

func (r *BreedRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createBreedsTable); err != nil {
		return fmt.Errorf("create breeds table: %w", err)
	}
	return nil
}

func (r *BreedRepository) Create(ctx context.Context, breed *domain.Breed) (int64, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO breeds (name, description)
		VALUES ($1, $2)
		RETURNING id
	`, breed.Name, breed.Description).Scan(&breed.ID)
	if err != nil {
		return 0, fmt.Errorf("insert breed: %w", castErr(err))
	}
	return breed.ID, nil
}

func (r *BreedRepository) Get(ctx context.Context, id int64) (*domain.Breed, error) {
	var b domain.Breed
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description FROM breeds WHERE id = $1
	`, id).Scan(&b.ID, &b.Name, &b.Description)
	if err != nil {
		return nil, fmt.Errorf("get breed %d: %w", id, castErr(err))
	}
	return &b, nil
}

func (r *BreedRepository) List(ctx context.Context) ([]domain.Breed, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description FROM breeds ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list breeds: %w", err)
	}
	defer rows.Close()

	breeds := make([]domain.Breed, 0)
	for rows.Next() {
		var b domain.Breed
		if err := rows.Scan(&b.ID, &b.Name, &b.Description); err != nil {
			return nil, fmt.Errorf("scan breed: %w", err)
		}
		breeds = append(breeds, b)
	}
	return breeds, rows.Err()
}
