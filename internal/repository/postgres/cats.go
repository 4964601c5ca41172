package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"cat-exhibition/internal/domain"
	"cat-exhibition/internal/repository"
)

const createCatsTable = `
CREATE TABLE IF NOT EXISTS cats (
	id BIGSERIAL PRIMARY KEY,
	name VARCHAR(64) NOT NULL,
	color VARCHAR(64) NOT NULL,
	description VARCHAR(512) NOT NULL,
	age INTEGER NOT NULL CHECK (age >= 0),
	breed_id BIGINT NOT NULL REFERENCES breeds(id) ON DELETE CASCADE,
	owner_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	rating DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_votes BIGINT NOT NULL DEFAULT 0,
	total_marks BIGINT NOT NULL DEFAULT 0,
	photo_key TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

const createCatsBreedIndex = `CREATE INDEX IF NOT EXISTS idx_cats_breed ON cats (breed_id)`

const selectCat = `
	SELECT c.id, c.name, c.color, c.description, c.age, c.breed_id, c.owner_id,
		c.rating, c.total_votes, c.total_marks, c.photo_key, c.created_at, c.updated_at,
		b.name, b.description, u.username
	FROM cats c
	JOIN breeds b ON b.id = c.breed_id
	JOIN users u ON u.id = c.owner_id
`

type CatRepository struct {
	db *sql.DB
}

func NewCatRepository(db *sql.DB) repository.CatRepository {
	return &CatRepository{db: db}
}

func (r *CatRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCatsTable); err != nil {
		return fmt.Errorf("create cats table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createCatsBreedIndex); err != nil {
		return fmt.Errorf("create cats index: %w", err)
	}
	return nil
}

func (r *CatRepository) Create(ctx context.Context, cat *domain.Cat) (int64, error) {
	now := time.Now().UTC()
	cat.CreatedAt = now
	cat.UpdatedAt = now

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cats (name, color, description, age, breed_id, owner_id, rating, total_votes, total_marks, photo_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`,
		cat.Name, cat.Color, cat.Description, cat.AgeMonths, cat.BreedID, cat.OwnerID,
		cat.Rating, cat.TotalVotes, cat.TotalMarks, cat.PhotoKey, cat.CreatedAt, cat.UpdatedAt,
	).Scan(&cat.ID)
	if err != nil {
		return 0, fmt.Errorf("insert cat: %w", castErr(err))
	}
	return cat.ID, nil
}

func (r *CatRepository) Update(ctx context.Context, cat *domain.Cat) error {
	cat.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE cats
		SET name = $2, color = $3, description = $4, age = $5, breed_id = $6, updated_at = $7
		WHERE id = $1
	`, cat.ID, cat.Name, cat.Color, cat.Description, cat.AgeMonths, cat.BreedID, cat.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update cat %d: %w", cat.ID, castErr(err))
	}
	return expectOneRow(res, "update cat", cat.ID)
}

func (r *CatRepository) SetPhoto(ctx context.Context, id int64, key string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cats SET photo_key = $2, updated_at = $3 WHERE id = $1
	`, id, key, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set cat photo %d: %w", id, err)
	}
	return expectOneRow(res, "set cat photo", id)
}

func (r *CatRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cats WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cat %d: %w", id, err)
	}
	return expectOneRow(res, "delete cat", id)
}

func (r *CatRepository) Get(ctx context.Context, id int64) (*domain.Cat, error) {
	return getCat(ctx, r.db, id, false)
}

func (r *CatRepository) List(ctx context.Context, filter repository.CatFilter) ([]domain.Cat, error) {
	var (
		where []string
		args  []any
	)
	if filter.BreedID > 0 {
		args = append(args, filter.BreedID)
		where = append(where, fmt.Sprintf("c.breed_id = $%d", len(args)))
	}
	if filter.OwnerID > 0 {
		args = append(args, filter.OwnerID)
		where = append(where, fmt.Sprintf("c.owner_id = $%d", len(args)))
	}

	query := selectCat
	if len(where) > 0 {
		query += "WHERE " + strings.Join(where, " AND ") + "\n"
	}
	query += "ORDER BY c.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cats: %w", err)
	}
	defer rows.Close()

	cats := make([]domain.Cat, 0)
	for rows.Next() {
		cat, err := scanCat(rows)
		if err != nil {
			return nil, err
		}
		cats = append(cats, *cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cats: %w", err)
	}
	return cats, nil
}

// getCat loads one cat; forUpdate locks the cat row until the surrounding transaction ends.
func getCat(ctx context.Context, q queryer, id int64, forUpdate bool) (*domain.Cat, error) {
	query := selectCat + "WHERE c.id = $1"
	if forUpdate {
		query += " FOR UPDATE OF c"
	}
	cat, err := scanCat(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get cat %d: %w", id, err)
	}
	return cat, nil
}

func scanCat(row interface {
	Scan(dest ...any) error
}) (*domain.Cat, error) {
	var (
		cat   domain.Cat
		breed domain.Breed
		owner domain.User
	)
	if err := row.Scan(
		&cat.ID, &cat.Name, &cat.Color, &cat.Description, &cat.AgeMonths, &cat.BreedID, &cat.OwnerID,
		&cat.Rating, &cat.TotalVotes, &cat.TotalMarks, &cat.PhotoKey, &cat.CreatedAt, &cat.UpdatedAt,
		&breed.Name, &breed.Description, &owner.Username,
	); err != nil {
		return nil, fmt.Errorf("scan cat: %w", castErr(err))
	}
	breed.ID = cat.BreedID
	owner.ID = cat.OwnerID
	cat.Breed = &breed
	cat.Owner = &owner
	return &cat, nil
}
