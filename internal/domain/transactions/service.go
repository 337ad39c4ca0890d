package transactions

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
)

// Service stores extraction output, collapsing duplicates before and at the
// database.
type Service struct {
	repo   *Repository
	logger *slog.Logger
}

// NewService creates a transactions service.
func NewService(repo *Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// StoreSummary reports what StoreResult did with one extraction result.
type StoreSummary struct {
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
}

// StoreResult persists the transactions of one extraction result. Duplicates
// within the result and against prior uploads are counted, not errors.
func (s *Service) StoreResult(ctx context.Context, result *extraction.ExtractionResult) (StoreSummary, error) {
	var summary StoreSummary
	if result == nil || len(result.Transactions) == 0 {
		return summary, nil
	}

	deduped := Deduplicate(result.Transactions)
	summary.Duplicates = len(result.Transactions) - len(deduped)

	records := make([]Record, 0, len(deduped))
	for _, t := range deduped {
		records = append(records, FromNormalized(t))
	}

	inserted, err := s.repo.SaveBatch(ctx, records)
	if err != nil {
		return summary, fmt.Errorf("failed to store extraction result: %w", err)
	}
	summary.Inserted = inserted
	summary.Duplicates += len(records) - inserted

	s.logger.Info("extraction result stored",
		"inserted", summary.Inserted,
		"duplicates", summary.Duplicates,
	)
	return summary, nil
}
