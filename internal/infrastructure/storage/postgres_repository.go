package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"NewsVerifier/internal/domain"
	"NewsVerifier/internal/ports"
)

// PostgresRepository persists completed credibility checks.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.CheckRepository = (*PostgresRepository)(nil)

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveCheck upserts one check outcome keyed by source URL (direct text
// checks have no URL and are always inserted fresh).
func (r *PostgresRepository) SaveCheck(ctx context.Context, record domain.CheckRecord) error {
	if r.db == nil {
		return nil
	}

	query := r.builder.
		Insert("check_history").
		Columns("source", "url", "title", "verdict", "corroboration", "checked_at").
		Values(string(record.Source), record.URL, record.Title,
			record.Verdict.String(), string(record.Corroboration), record.CheckedAt)

	if record.URL != "" {
		query = query.Suffix(`ON CONFLICT (url) DO UPDATE
			SET verdict = EXCLUDED.verdict,
			    corroboration = EXCLUDED.corroboration,
			    checked_at = EXCLUDED.checked_at`)
	}

	if _, err := query.RunWith(r.db).ExecContext(ctx); err != nil {
		return fmt.Errorf("upsert check: %w", err)
	}
	return nil
}

// RecentChecks returns the latest check outcomes, newest first.
func (r *PostgresRepository) RecentChecks(ctx context.Context, limit int) ([]domain.CheckRecord, error) {
	if r.db == nil {
		return nil, nil
	}

	rows, err := r.builder.
		Select("source", "url", "title", "verdict", "corroboration", "checked_at").
		From("check_history").
		OrderBy("checked_at DESC").
		Limit(uint64(limit)).
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query checks: %w", err)
	}
	defer rows.Close()

	var records []domain.CheckRecord
	for rows.Next() {
		var (
			rec     domain.CheckRecord
			source  string
			verdict string
			corrob  string
		)
		if err := rows.Scan(&source, &rec.URL, &rec.Title, &verdict, &corrob, &rec.CheckedAt); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		rec.Source = domain.SourceType(source)
		rec.Corroboration = domain.CorroborationLevel(corrob)
		if verdict == domain.VerdictReal.String() {
			rec.Verdict = domain.VerdictReal
		} else {
			rec.Verdict = domain.VerdictFake
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return records, nil
}
