package sqlite

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
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	color TEXT NOT NULL,
	description TEXT NOT NULL,
	age INTEGER NOT NULL CHECK (age >= 0),
	breed_id INTEGER NOT NULL REFERENCES breeds(id) ON DELETE CASCADE,
	owner_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	rating REAL NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cats_breed ON cats (breed_id);
`

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
	if err := r.ensureCatColumns(ctx); err != nil {
		return err
	}
	return nil
}

// ensureCatColumns upgrades databases created before vote tallies and photos existed.
func (r *CatRepository) ensureCatColumns(ctx context.Context) error {
	rows, err := r.db.QueryContext(ctx, `PRAGMA table_info(cats)`)
	if err != nil {
		return fmt.Errorf("describe cats table: %w", err)
	}

	columns := map[string]struct{}{}
	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notnull   int
			dfltValue any
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			rows.Close()
			return fmt.Errorf("scan pragma table info: %w", err)
		}
		columns[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterate pragma table info: %w", err)
	}
	rows.Close()

	addColumn := func(name, statement string) error {
		if _, exists := columns[name]; exists {
			return nil
		}
		if _, err := r.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("add column %s: %w", name, err)
		}
		return nil
	}

	if err := addColumn("total_votes", `ALTER TABLE cats ADD COLUMN total_votes INTEGER NOT NULL DEFAULT 0`); err != nil {
		return err
	}
	if err := addColumn("total_marks", `ALTER TABLE cats ADD COLUMN total_marks INTEGER NOT NULL DEFAULT 0`); err != nil {
		return err
	}
	if err := addColumn("photo_key", `ALTER TABLE cats ADD COLUMN photo_key TEXT NOT NULL DEFAULT ''`); err != nil {
		return err
	}
	return nil
}

func (r *CatRepository) Create(ctx context.Context, cat *domain.Cat) (int64, error) {
	now := time.Now().UTC()
	cat.CreatedAt = now
	cat.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cats (name, color, description, age, breed_id, owner_id, rating, total_votes, total_marks, photo_key, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cat.Name,
		cat.Color,
		cat.Description,
		cat.AgeMonths,
		cat.BreedID,
		cat.OwnerID,
		cat.Rating,
		cat.TotalVotes,
		cat.TotalMarks,
		cat.PhotoKey,
		cat.CreatedAt,
		cat.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert cat: %w", castErr(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("cat last insert id: %w", err)
	}
	cat.ID = id
	return id, nil
}

// Update writes the owner-editable fields. Tallies are only changed through the vote ledger.
func (r *CatRepository) Update(ctx context.Context, cat *domain.Cat) error {
	cat.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE cats
SET name = ?, color = ?, description = ?, age = ?, breed_id = ?, updated_at = ?
WHERE id = ?`,
		cat.Name,
		cat.Color,
		cat.Description,
		cat.AgeMonths,
		cat.BreedID,
		cat.UpdatedAt,
		cat.ID,
	)
	if err != nil {
		return fmt.Errorf("update cat %d: %w", cat.ID, castErr(err))
	}
	return expectOneRow(res, "update cat", cat.ID)
}

func (r *CatRepository) SetPhoto(ctx context.Context, id int64, key string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE cats SET photo_key = ?, updated_at = ? WHERE id = ?`,
		key,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("set cat photo %d: %w", id, err)
	}
	return expectOneRow(res, "set cat photo", id)
}

func (r *CatRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cats WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete cat %d: %w", id, err)
	}
	return expectOneRow(res, "delete cat", id)
}

func (r *CatRepository) Get(ctx context.Context, id int64) (*domain.Cat, error) {
	return getCat(ctx, r.db, id)
}

func (r *CatRepository) List(ctx context.Context, filter repository.CatFilter) ([]domain.Cat, error) {
	var (
		where []string
		args  []any
	)
	if filter.BreedID > 0 {
		where = append(where, "c.breed_id = ?")
		args = append(args, filter.BreedID)
	}
	if filter.OwnerID > 0 {
		where = append(where, "c.owner_id = ?")
		args = append(args, filter.OwnerID)
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

func getCat(ctx context.Context, q queryer, id int64) (*domain.Cat, error) {
	cat, err := scanCat(q.QueryRowContext(ctx, selectCat+"WHERE c.id = ?", id))
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
		&cat.ID,
		&cat.Name,
		&cat.Color,
		&cat.Description,
		&cat.AgeMonths,
		&cat.BreedID,
		&cat.OwnerID,
		&cat.Rating,
		&cat.TotalVotes,
		&cat.TotalMarks,
		&cat.PhotoKey,
		&cat.CreatedAt,
		&cat.UpdatedAt,
		&breed.Name,
		&breed.Description,
		&owner.Username,
	); err != nil {
		return nil, fmt.Errorf("scan cat: %w", castErr(err))
	}
	breed.ID = cat.BreedID
	owner.ID = cat.OwnerID
	cat.Breed = &breed
	cat.Owner = &owner
	return &cat, nil
}

func expectOneRow(res sql.Result, op string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d rows affected: %w", op, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", op, id, repository.ErrNotFound)
	}
	return nil
}
