package service

import (
	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
	"github.com/sudhakarans/expense-exterminator/pkg/money"
)

// Totals aggregates one file's transactions into rupee-formatted figures.
type Totals struct {
	Outflow string `json:"outflow"`
	Inflow  string `json:"inflow"`
	Net     string `json:"net"`
}

// TotalsFor sums signed amounts in integer paise and renders them for
// display. Outflow is reported as a magnitude; net keeps its sign.
func TotalsFor(txs []extraction.NormalizedTransaction) Totals {
	outflow := money.Zero()
	inflow := money.Zero()
	for _, t := range txs {
		amt := money.FromDecimal(t.Amount)
		if amt.IsOutflow() {
			outflow = outflow.Add(amt.Abs())
		} else {
			inflow = inflow.Add(amt)
		}
	}
	return Totals{
		Outflow: outflow.Display(),
		Inflow:  inflow.Display(),
		Net:     inflow.Sub(outflow).Display(),
	}
}
