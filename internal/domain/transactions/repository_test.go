package transactions

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
)

func TestRepository_SaveBatch(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	recs := []Record{
		FromNormalized(tx("Swiggy", "-250", 13)),
		FromNormalized(tx("Uber", "-180", 14)),
	}

	mock.ExpectExec(`INSERT INTO transactions`).
		WithArgs(recs[0].ID, recs[0].Date, recs[0].Amount, recs[0].Description,
			recs[0].Merchant, recs[0].Category, recs[0].PaymentMode,
			recs[0].SourceApp, recs[0].Fingerprint).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	// The second record collides with an earlier upload: ON CONFLICT DO
	// NOTHING reports zero rows affected.
	mock.ExpectExec(`INSERT INTO transactions`).
		WithArgs(recs[1].ID, recs[1].Date, recs[1].Amount, recs[1].Description,
			recs[1].Merchant, recs[1].Category, recs[1].PaymentMode,
			recs[1].SourceApp, recs[1].Fingerprint).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	repo := NewRepository(mock)
	inserted, err := repo.SaveBatch(context.Background(), recs)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SaveBatch_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rec := FromNormalized(tx("Swiggy", "-250", 13))
	mock.ExpectExec(`INSERT INTO transactions`).
		WithArgs(rec.ID, rec.Date, rec.Amount, rec.Description, rec.Merchant,
			rec.Category, rec.PaymentMode, rec.SourceApp, rec.Fingerprint).
		WillReturnError(errors.New("connection refused"))

	repo := NewRepository(mock)
	inserted, err := repo.SaveBatch(context.Background(), []Record{rec})
	assert.Error(t, err)
	assert.Zero(t, inserted)
}

func TestRepository_ListBetween(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	rec := FromNormalized(tx("Swiggy", "-250", 13))
	now := time.Now()

	mock.ExpectQuery(`SELECT id, txn_date, amount`).
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "txn_date", "amount", "description", "merchant",
			"category", "payment_mode", "source_app", "fingerprint", "created_at",
		}).AddRow(
			rec.ID, rec.Date, rec.Amount, rec.Description, rec.Merchant,
			rec.Category, rec.PaymentMode, rec.SourceApp, rec.Fingerprint, now,
		))

	repo := NewRepository(mock)
	records, err := repo.ListBetween(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Swiggy", records[0].Merchant)
	assert.True(t, records[0].Amount.Equal(decimal.NewFromInt(-250)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SumByCategory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT category, COALESCE`).
		WithArgs(from, to).
		WillReturnRows(pgxmock.NewRows([]string{"category", "total", "count"}).
			AddRow(extraction.CategoryFood, "430.00", 2).
			AddRow(extraction.CategoryTravel, "180.00", 1))

	repo := NewRepository(mock)
	totals, err := repo.SumByCategory(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, extraction.CategoryFood, totals[0].Category)
	assert.Equal(t, "430.00", totals[0].Total)
	assert.Equal(t, 2, totals[0].Count)
}

func TestService_StoreResult(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	result := extraction.NewResult()
	result.Transactions = []extraction.NormalizedTransaction{
		tx("Swiggy", "-250", 13),
		tx("swiggy", "-250", 13), // in-batch duplicate
		tx("Uber", "-180", 14),
	}

	// Only the two distinct fingerprints reach the database.
	anyRow := []any{
		pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		pgxmock.AnyArg(),
	}
	mock.ExpectExec(`INSERT INTO transactions`).
		WithArgs(anyRow...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO transactions`).
		WithArgs(anyRow...).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	svc := NewService(NewRepository(mock), slog.New(slog.DiscardHandler))
	summary, err := svc.StoreResult(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)
	// One in-batch duplicate plus one cross-upload collision.
	assert.Equal(t, 2, summary.Duplicates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_StoreResult_Empty(t *testing.T) {
	svc := NewService(NewRepository(nil), slog.New(slog.DiscardHandler))
	summary, err := svc.StoreResult(context.Background(), extraction.NewResult())
	require.NoError(t, err)
	assert.Zero(t, summary.Inserted)
	assert.Zero(t, summary.Duplicates)
}
