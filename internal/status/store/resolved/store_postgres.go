package resolved

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

// PostgresStore persists resolved statuses in a single keyed table.
type PostgresStore struct {
	pool *pgxpool.Pool

	findQuery   string
	saveQuery   string
	deleteQuery string
	listQuery   string
}

func NewPostgresStore(pool *pgxpool.Pool, table string) *PostgresStore {
	t := pgx.Identifier{table}.Sanitize()
	return &PostgresStore{
		pool: pool,
		findQuery: fmt.Sprintf(`
			SELECT subject_id, message, classification, color_code, expires_at
			FROM %s WHERE subject_id = $1`, t),
		saveQuery: fmt.Sprintf(`
			INSERT INTO %s (subject_id, message, classification, color_code, expires_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (subject_id) DO UPDATE SET
				message = EXCLUDED.message,
				classification = EXCLUDED.classification,
				color_code = EXCLUDED.color_code,
				expires_at = EXCLUDED.expires_at`, t),
		deleteQuery: fmt.Sprintf(`DELETE FROM %s WHERE subject_id = $1`, t),
		listQuery: fmt.Sprintf(`
			SELECT subject_id, message, classification, color_code, expires_at
			FROM %s ORDER BY subject_id`, t),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.ResolvedStatus, error) {
	var (
		rec            models.ResolvedStatus
		subject        string
		classification string
	)
	if err := row.Scan(&subject, &rec.Message, &classification, &rec.ColorCode, &rec.ExpiresAt); err != nil {
		return nil, err
	}
	rec.SubjectID = domain.SubjectID(subject)
	rec.Classification = models.Classification(classification)
	return &rec, nil
}

func (s *PostgresStore) Find(ctx context.Context, id domain.SubjectID) (*models.ResolvedStatus, error) {
	rec, err := scanRecord(s.pool.QueryRow(ctx, s.findQuery, id.String()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find resolved status: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) Save(ctx context.Context, record *models.ResolvedStatus) error {
	if record == nil {
		return nil
	}
	_, err := s.pool.Exec(ctx, s.saveQuery,
		record.SubjectID.String(),
		record.Message,
		string(record.Classification),
		record.ColorCode,
		record.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("save resolved status: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id domain.SubjectID) error {
	if _, err := s.pool.Exec(ctx, s.deleteQuery, id.String()); err != nil {
		return fmt.Errorf("delete resolved status: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.ResolvedStatus, error) {
	rows, err := s.pool.Query(ctx, s.listQuery)
	if err != nil {
		return nil, fmt.Errorf("list resolved statuses: %w", err)
	}
	defer rows.Close()

	var out []models.ResolvedStatus
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resolved status: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list resolved statuses: %w", err)
	}
	return out, nil
}
