package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
)

func TestMerchantFromDescription(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want string
	}{
		{"paid to prefix", "Paid to Ramesh Kumar", "Ramesh Kumar"},
		{"received from prefix", "Received from ACME Corp", "Acme Corp"},
		{"upi bank narration", "UPI/512233445566/SWIGGY/swiggy@ybl", "Swiggy"},
		{"neft narration with ifsc", "NEFT/HDFC0001234/RAMESH KUMAR", "Ramesh Kumar"},
		{"imps narration without name", "IMPS-4412-raju@okicici", extraction.UnknownMerchant},
		{"trailing reference stripped", "Swiggy Order 443312", "Swiggy Order"},
		{"plain name passes through", "Blinkit", "Blinkit"},
		{"multiline narration", "SIMHADRI\nSUPER MARKET", "Simhadri Super Market"},
		{"empty", "", extraction.UnknownMerchant},
		{"digits only", "443312", extraction.UnknownMerchant},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MerchantFromDescription(tc.desc))
		})
	}
}
