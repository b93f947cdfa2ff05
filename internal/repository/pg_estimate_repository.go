package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/northridge/backend/internal/model"
)

// PgEstimateRepository is the PostgreSQL implementation of EstimateRepository.
// State and result are stored as JSONB.
type PgEstimateRepository struct {
	pool *pgxpool.Pool
}

// NewPgEstimateRepository creates a PgEstimateRepository backed by the given pool.
func NewPgEstimateRepository(pool *pgxpool.Pool) *PgEstimateRepository {
	return &PgEstimateRepository{pool: pool}
}

var _ EstimateRepository = (*PgEstimateRepository)(nil)

// MaxListLimit caps ListRecent.
const MaxListLimit = 100

func (r *PgEstimateRepository) Save(ctx context.Context, est *model.SavedEstimate) error {
	state, result, err := encodeEstimate(est)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO estimates (id, project_type, zip_code, total, state, result)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		est.ID, string(est.Result.ProjectType), est.State.ZipCode, est.Result.Total, state, result,
	).Scan(&est.CreatedAt)
}

func (r *PgEstimateRepository) GetByID(ctx context.Context, id string) (*model.SavedEstimate, error) {
	var (
		est           model.SavedEstimate
		state, result []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id::text, state, result, created_at FROM estimates WHERE id = $1`,
		id,
	).Scan(&est.ID, &state, &result, &est.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := decodeEstimate(&est, state, result); err != nil {
		return nil, err
	}
	return &est, nil
}

func (r *PgEstimateRepository) ListRecent(ctx context.Context, limit int) ([]*model.SavedEstimate, error) {
	limit = clampLimit(limit)
	rows, err := r.pool.Query(ctx,
		`SELECT id::text, state, result, created_at FROM estimates
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.SavedEstimate
	for rows.Next() {
		var (
			est           model.SavedEstimate
			state, result []byte
		)
		if err := rows.Scan(&est.ID, &state, &result, &est.CreatedAt); err != nil {
			return nil, err
		}
		if err := decodeEstimate(&est, state, result); err != nil {
			return nil, err
		}
		out = append(out, &est)
	}
	return out, rows.Err()
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func encodeEstimate(est *model.SavedEstimate) (state, result []byte, err error) {
	state, err = json.Marshal(est.State)
	if err != nil {
		return nil, nil, fmt.Errorf("encode state: %w", err)
	}
	result, err = json.Marshal(est.Result)
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return state, result, nil
}

func decodeEstimate(est *model.SavedEstimate, state, result []byte) error {
	if err := json.Unmarshal(state, &est.State); err != nil {
		return fmt.Errorf("decode state for %s: %w", est.ID, err)
	}
	if err := json.Unmarshal(result, &est.Result); err != nil {
		return fmt.Errorf("decode result for %s: %w", est.ID, err)
	}
	return nil
}
