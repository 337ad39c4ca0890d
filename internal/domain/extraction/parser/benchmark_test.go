package parser

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sudhakarans/expense-exterminator/pkg/money"
)

func BenchmarkParseCSV(b *testing.B) {
	ref := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	gen := money.NewStatementGenerator(42)

	for _, size := range []int{100, 1000, 10000} {
		data := gen.CSVStatement(size, ref)

		b.Run(fmt.Sprintf("%d_rows", size), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for i := 0; i < b.N; i++ {
				res, err := ParseCSV(data)
				require.NoError(b, err)
				if len(res.Rows) == 0 {
					b.Fatal("no rows parsed")
				}
			}
		})
	}
}
