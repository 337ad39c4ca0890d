package money

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

// StatementGenerator produces realistic Indian payment-statement test data.
// Seeded generators are reproducible, which keeps benchmark inputs stable.
type StatementGenerator struct {
	faker *gofakeit.Faker
}

// NewStatementGenerator creates a generator with the given seed.
func NewStatementGenerator(seed int64) *StatementGenerator {
	return &StatementGenerator{faker: gofakeit.New(seed)}
}

var upiMerchants = []string{
	"Swiggy", "Zomato", "Blinkit", "Zepto", "BigBasket", "DMart",
	"Uber", "Ola", "Rapido", "IRCTC", "RedBus",
	"Amazon Pay", "Flipkart", "Myntra", "Ajio",
	"Airtel", "Jio", "Tata Power", "BESCOM",
	"BookMyShow", "Netflix", "Hotstar", "Spotify",
	"Apollo Pharmacy", "Practo", "Cult Fit",
	"Sharma Tea Stall", "Simhadri Super Market", "Reliance Fresh",
}

var upiHandles = []string{"okaxis", "ybl", "okicici", "oksbi", "paytm", "ibl"}

// Merchant returns a random Indian merchant name.
func (g *StatementGenerator) Merchant() string {
	return upiMerchants[g.faker.Number(0, len(upiMerchants)-1)]
}

// VPA returns a random UPI virtual payment address for the merchant.
func (g *StatementGenerator) VPA(merchant string) string {
	id := strings.ToLower(strings.ReplaceAll(merchant, " ", ""))
	handle := upiHandles[g.faker.Number(0, len(upiHandles)-1)]
	return id + "@" + handle
}

// Amount returns a random signed rupee amount; roughly four spends per
// credit, which is what personal statements look like.
func (g *StatementGenerator) Amount() decimal.Decimal {
	var rupees float64
	if g.faker.Number(0, 4) == 0 {
		rupees = g.faker.Float64Range(100, 50000)
	} else {
		rupees = -g.faker.Float64Range(10, 2500)
	}
	return decimal.NewFromFloat(rupees).Round(2)
}

// Date returns a random date inside the trailing year from ref.
func (g *StatementGenerator) Date(ref time.Time) time.Time {
	d := g.faker.DateRange(ref.AddDate(-1, 0, 0), ref)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// BankNarration returns a bank-export style description, e.g.
// "UPI/512233445566/SWIGGY/swiggy@ybl".
func (g *StatementGenerator) BankNarration(merchant string) string {
	return fmt.Sprintf("UPI/%d/%s/%s",
		g.faker.Number(100000000000, 999999999999),
		strings.ToUpper(merchant),
		g.VPA(merchant),
	)
}

// CSVStatement renders n data rows under a standard bank-export header.
// Useful for parser benchmarks and bulk tests.
func (g *StatementGenerator) CSVStatement(n int, ref time.Time) []byte {
	var b strings.Builder
	b.WriteString("Date,Description,Amount\n")
	for i := 0; i < n; i++ {
		merchant := g.Merchant()
		fmt.Fprintf(&b, "%s,%s,%s\n",
			g.Date(ref).Format("02/01/2006"),
			g.BankNarration(merchant),
			g.Amount().StringFixed(2),
		)
	}
	return []byte(b.String())
}

// PhonePeStatement renders n transaction lines in the PhonePe PDF text
// layout.
func (g *StatementGenerator) PhonePeStatement(n int, ref time.Time) string {
	var b strings.Builder
	b.WriteString("Transaction Statement\n")
	for i := 0; i < n; i++ {
		merchant := g.Merchant()
		amount := g.Amount()
		action, direction := "Paid to", "DEBIT"
		if amount.IsPositive() {
			action, direction = "Received from", "CREDIT"
		}
		fmt.Fprintf(&b, "%s %s %s %s ₹%s\n",
			g.Date(ref).Format("Jan 02, 2006"),
			action, merchant, direction,
			amount.Abs().StringFixed(2),
		)
	}
	return b.String()
}
