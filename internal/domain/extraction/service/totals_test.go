package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
)

func TestTotalsFor(t *testing.T) {
	amounts := func(values ...string) []extraction.NormalizedTransaction {
		txs := make([]extraction.NormalizedTransaction, len(values))
		for i, v := range values {
			txs[i] = extraction.NormalizedTransaction{Amount: decimal.RequireFromString(v)}
		}
		return txs
	}

	tests := []struct {
		name string
		txs  []extraction.NormalizedTransaction
		want Totals
	}{
		{
			name: "mixed inflow and outflow",
			txs:  amounts("-250.00", "1000.00"),
			want: Totals{Outflow: "₹250.00", Inflow: "₹1,000.00", Net: "₹750.00"},
		},
		{
			name: "net negative keeps its sign",
			txs:  amounts("-250.00", "-95.50", "100.00"),
			want: Totals{Outflow: "₹345.50", Inflow: "₹100.00", Net: "-₹245.50"},
		},
		{
			name: "no transactions",
			txs:  nil,
			want: Totals{Outflow: "₹0.00", Inflow: "₹0.00", Net: "₹0.00"},
		},
		{
			name: "paise survive aggregation",
			txs:  amounts("-0.01", "-0.02"),
			want: Totals{Outflow: "₹0.03", Inflow: "₹0.00", Net: "-₹0.03"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalsFor(tt.txs))
		})
	}
}
