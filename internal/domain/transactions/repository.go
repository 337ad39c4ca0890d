package transactions

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
)

// DB is the subset of pgxpool.Pool the repository needs. pgxmock satisfies
// it too, which keeps repository tests off a live database.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository persists transaction records in PostgreSQL.
type Repository struct {
	db DB
}

// NewRepository creates a transaction repository.
func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

const insertQuery = `
	INSERT INTO transactions (id, txn_date, amount, description, merchant, category, payment_mode, source_app, fingerprint)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (fingerprint) DO NOTHING`

// SaveBatch inserts records, silently skipping any whose fingerprint already
// exists. Returns the number actually inserted. Re-uploading the same
// statement is therefore a no-op beyond the first call.
func (r *Repository) SaveBatch(ctx context.Context, records []Record) (int, error) {
	inserted := 0
	for _, rec := range records {
		tag, err := r.db.Exec(ctx, insertQuery,
			rec.ID,
			rec.Date,
			rec.Amount,
			rec.Description,
			rec.Merchant,
			rec.Category,
			rec.PaymentMode,
			rec.SourceApp,
			rec.Fingerprint,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert transaction: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// ListBetween returns transactions dated in [from, to], newest first.
func (r *Repository) ListBetween(ctx context.Context, from, to time.Time) ([]Record, error) {
	query := `
		SELECT id, txn_date, amount, description, merchant, category, payment_mode, source_app, fingerprint, created_at
		FROM transactions
		WHERE txn_date >= $1 AND txn_date <= $2
		ORDER BY txn_date DESC, created_at DESC`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID,
			&rec.Date,
			&rec.Amount,
			&rec.Description,
			&rec.Merchant,
			&rec.Category,
			&rec.PaymentMode,
			&rec.SourceApp,
			&rec.Fingerprint,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CategoryTotal is the spend aggregate for one category in a period.
type CategoryTotal struct {
	Category extraction.Category `json:"category"`
	Total    string              `json:"total"`
	Count    int                 `json:"count"`
}

// SumByCategory aggregates outflows (negative amounts) per category in
// [from, to]. Totals come back as positive decimal strings.
func (r *Repository) SumByCategory(ctx context.Context, from, to time.Time) ([]CategoryTotal, error) {
	query := `
		SELECT category, COALESCE(SUM(-amount), 0)::text, COUNT(*)
		FROM transactions
		WHERE txn_date >= $1 AND txn_date <= $2 AND amount < 0
		GROUP BY category
		ORDER BY SUM(-amount) DESC`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total, &ct.Count); err != nil {
			return nil, fmt.Errorf("failed to scan aggregate: %w", err)
		}
		totals = append(totals, ct)
	}
	return totals, rows.Err()
}
