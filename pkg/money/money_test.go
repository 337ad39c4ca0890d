package money

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDecimal(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantPaise int64
	}{
		{"whole rupees", "250", 25000},
		{"rupees and paise", "1234.56", 123456},
		{"negative outflow", "-250.50", -25050},
		{"sub-paise rounds half away from zero", "0.005", 1},
		{"zero", "0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := FromDecimal(decimal.RequireFromString(tt.in))
			assert.Equal(t, tt.wantPaise, a.Paise())
		})
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	for _, s := range []string{"-1234.56", "0.01", "99999.99", "-0.01"} {
		d := decimal.RequireFromString(s)
		assert.True(t, FromDecimal(d).Decimal().Equal(d), s)
	}
}

func TestArithmetic(t *testing.T) {
	a := FromDecimal(decimal.RequireFromString("-250.00"))
	b := FromDecimal(decimal.RequireFromString("1000.00"))

	assert.Equal(t, int64(75000), a.Add(b).Paise())
	assert.Equal(t, int64(-125000), a.Sub(b).Paise())
	assert.Equal(t, int64(25000), a.Abs().Paise())
	assert.Equal(t, int64(25000), a.Negate().Paise())
	assert.True(t, a.IsOutflow())
	assert.False(t, b.IsOutflow())
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 0, a.Compare(a))
}

func TestZeroValueIsUsable(t *testing.T) {
	var a INR
	assert.True(t, a.IsZero())
	assert.Equal(t, int64(500), a.Add(FromPaise(500)).Paise())
	assert.Equal(t, "0.00", a.String())
}

func TestSplit(t *testing.T) {
	t.Run("remainder goes to first parts", func(t *testing.T) {
		parts, err := FromPaise(100).Split(3)
		require.NoError(t, err)
		require.Len(t, parts, 3)
		assert.Equal(t, int64(34), parts[0].Paise())
		assert.Equal(t, int64(33), parts[1].Paise())
		assert.Equal(t, int64(33), parts[2].Paise())

		total := Zero()
		for _, p := range parts {
			total = total.Add(p)
		}
		assert.Equal(t, int64(100), total.Paise())
	})

	t.Run("invalid count", func(t *testing.T) {
		_, err := FromPaise(100).Split(0)
		assert.Error(t, err)
	})
}

func TestJSONRoundTrip(t *testing.T) {
	a := FromDecimal(decimal.RequireFromString("-1234.56"))

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"paise":-123456`)

	var back INR
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, a.Paise(), back.Paise())
}

func TestStatementGenerator_Reproducible(t *testing.T) {
	ref := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	first := NewStatementGenerator(42).CSVStatement(25, ref)
	second := NewStatementGenerator(42).CSVStatement(25, ref)
	assert.Equal(t, first, second)

	lines := 0
	for _, b := range first {
		if b == '\n' {
			lines++
		}
	}
	assert.Equal(t, 26, lines) // header + 25 rows
}

func TestStatementGenerator_PhonePeShape(t *testing.T) {
	ref := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	text := NewStatementGenerator(7).PhonePeStatement(10, ref)
	assert.Contains(t, text, "₹")
	assert.Regexp(t, `(Paid to|Received from)`, text)
	assert.Regexp(t, `(DEBIT|CREDIT)`, text)
}
