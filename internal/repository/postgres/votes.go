package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cat-exhibition/internal/domain"
	"cat-exhibition/internal/repository"
)

const createVotesTable = `
CREATE TABLE IF NOT EXISTS votes (
	id BIGSERIAL PRIMARY KEY,
	value SMALLINT NOT NULL CHECK (value BETWEEN 0 AND 5),
	user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	cat_id BIGINT NOT NULL REFERENCES cats(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (user_id, cat_id)
)`

const createVotesCatIndex = `CREATE INDEX IF NOT EXISTS idx_votes_cat ON votes (cat_id)`

type VoteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) repository.VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createVotesTable); err != nil {
		return fmt.Errorf("create votes table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createVotesCatIndex); err != nil {
		return fmt.Errorf("create votes index: %w", err)
	}
	return nil
}

// Record locks the cat row, so concurrent votes for the same cat apply one after another.
func (r *VoteRepository) Record(ctx context.Context, vote *domain.Vote) (*domain.Cat, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin vote tx: %w", err)
	}
	defer tx.Rollback()

	cat, err := getCat(ctx, tx, vote.CatID, true)
	if err != nil {
		return nil, err
	}

	vote.CreatedAt = time.Now().UTC()
	err = tx.QueryRowContext(ctx, `
		INSERT INTO votes (value, user_id, cat_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, vote.Value, vote.UserID, vote.CatID, vote.CreatedAt).Scan(&vote.ID)
	if err != nil {
		return nil, fmt.Errorf("insert vote: %w", castErr(err))
	}

	cat.ApplyVote(vote.Value)
	cat.UpdatedAt = vote.CreatedAt
	if _, err := tx.ExecContext(ctx, `
		UPDATE cats
		SET rating = $2, total_votes = $3, total_marks = $4, updated_at = $5
		WHERE id = $1
	`, cat.ID, cat.Rating, cat.TotalVotes, cat.TotalMarks, cat.UpdatedAt); err != nil {
		return nil, fmt.Errorf("update cat rating: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit vote: %w", err)
	}
	return cat, nil
}

func (r *VoteRepository) ListByCat(ctx context.Context, catID int64) ([]domain.Vote, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, value, user_id, cat_id, created_at
		FROM votes
		WHERE cat_id = $1
		ORDER BY id
	`, catID)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	defer rows.Close()

	votes := make([]domain.Vote, 0)
	for rows.Next() {
		var v domain.Vote
		if err := rows.Scan(&v.ID, &v.Value, &v.UserID, &v.CatID, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}

func (r *VoteRepository) RecomputeRatings(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		WITH tally AS (
			SELECT c.id AS cat_id, COUNT(v.id) AS votes, COALESCE(SUM(v.value), 0) AS marks
			FROM cats c
			LEFT JOIN votes v ON v.cat_id = c.id
			GROUP BY c.id
		)
		UPDATE cats
		SET total_votes = tally.votes,
			total_marks = tally.marks,
			rating = CASE WHEN tally.votes > 0 THEN tally.marks::float8 / tally.votes ELSE 0 END,
			updated_at = $1
		FROM tally
		WHERE tally.cat_id = cats.id
			AND (tally.votes <> cats.total_votes
				OR tally.marks <> cats.total_marks
				OR cats.rating <> CASE WHEN tally.votes > 0 THEN tally.marks::float8 / tally.votes ELSE 0 END)
	`, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("recompute ratings: %w", err)
	}
	return res.RowsAffected()
}
