package pending

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"statusgate/internal/status/models"
	"statusgate/pkg/domain"
	"statusgate/pkg/platform/sentinel"
)

// PostgresStore persists pending requests keyed by subject.
type PostgresStore struct {
	pool        *pgxpool.Pool
	findQuery   string
	saveQuery   string
	deleteQuery string
}

func NewPostgresStore(pool *pgxpool.Pool, table string) *PostgresStore {
	t := pgx.Identifier{table}.Sanitize()
	return &PostgresStore{
		pool:      pool,
		findQuery: fmt.Sprintf(`SELECT token, request_id, expires_at FROM %s WHERE subject_id = $1`, t),
		saveQuery: fmt.Sprintf(`
			INSERT INTO %s (subject_id, token, request_id, expires_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (subject_id) DO UPDATE SET
				token = EXCLUDED.token,
				request_id = EXCLUDED.request_id,
				expires_at = EXCLUDED.expires_at`, t),
		deleteQuery: fmt.Sprintf(`DELETE FROM %s WHERE subject_id = $1`, t),
	}
}

func (s *PostgresStore) Find(ctx context.Context, id domain.SubjectID) (*models.PendingRequest, error) {
	req := models.PendingRequest{SubjectID: id}
	err := s.pool.QueryRow(ctx, s.findQuery, id.String()).Scan(&req.Token, &req.RequestID, &req.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find pending request: %w", err)
	}
	return &req, nil
}

func (s *PostgresStore) Save(ctx context.Context, request *models.PendingRequest) error {
	if request == nil {
		return nil
	}
	_, err := s.pool.Exec(ctx, s.saveQuery,
		request.SubjectID.String(),
		request.Token,
		request.RequestID,
		request.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("save pending request: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id domain.SubjectID) error {
	if _, err := s.pool.Exec(ctx, s.deleteQuery, id.String()); err != nil {
		return fmt.Errorf("delete pending request: %w", err)
	}
	return nil
}
