// Package transactions persists normalized statement entries and collapses
// duplicates, both within one upload and across repeated uploads of the same
// statement.
package transactions

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
)

// Record is a stored transaction. Fingerprint is the dedup key; two records
// with the same fingerprint are the same real-world transaction.
type Record struct {
	ID          uuid.UUID              `json:"id"`
	Date        time.Time              `json:"date"`
	Amount      decimal.Decimal        `json:"amount"`
	Description string                 `json:"description"`
	Merchant    string                 `json:"merchant"`
	Category    extraction.Category    `json:"category"`
	PaymentMode extraction.PaymentMode `json:"payment_mode"`
	SourceApp   string                 `json:"source_app,omitempty"`
	Fingerprint string                 `json:"-"`
	CreatedAt   time.Time              `json:"created_at"`
}

// Fingerprint derives the dedup key for a normalized transaction: merchant
// (case-folded), signed amount, calendar date, and payment mode. Description
// is deliberately excluded; the same payment shows up with different
// narrations in app exports and bank exports.
func Fingerprint(t extraction.NormalizedTransaction) string {
	key := fmt.Sprintf("%s|%s|%s|%s",
		strings.ToLower(strings.TrimSpace(t.Merchant)),
		t.Amount.String(),
		t.DateISO(),
		t.PaymentMode,
	)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// FromNormalized converts a pipeline transaction into a storable record with
// a fresh ID and computed fingerprint.
func FromNormalized(t extraction.NormalizedTransaction) Record {
	return Record{
		ID:          uuid.New(),
		Date:        t.Date,
		Amount:      t.Amount,
		Description: t.Description,
		Merchant:    t.Merchant,
		Category:    t.Category,
		PaymentMode: t.PaymentMode,
		SourceApp:   t.SourceApp,
		Fingerprint: Fingerprint(t),
	}
}

// Deduplicate drops transactions whose dedup key was already seen, keeping
// the first occurrence and preserving order. It is a pure function; the
// database unique index enforces the same rule across uploads.
func Deduplicate(txs []extraction.NormalizedTransaction) []extraction.NormalizedTransaction {
	if len(txs) <= 1 {
		return txs
	}
	seen := make(map[string]struct{}, len(txs))
	out := txs[:0:0]
	for _, t := range txs {
		key := Fingerprint(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
