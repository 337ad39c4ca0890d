// Command extract runs local statement files through the extraction pipeline
// and prints the normalized transactions and diagnostics as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/pdftext"
	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/service"
)

func main() {
	year := flag.Int("year", 0, "reference year for year-less statement dates (0 = current)")
	ocrLang := flag.String("ocr-lang", "eng", "tesseract language for scanned statements")
	pretty := flag.Bool("pretty", false, "indent JSON output")
	verbose := flag.Bool("v", false, "log progress to stderr")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: extract [flags] <statement-file>...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	svc := service.New(service.Config{ReferenceYear: *year}, logger, pdftext.New(logger, *ocrLang))

	inputs := make([]extraction.RawInput, 0, flag.NArg())
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "extract: %v\n", err)
			os.Exit(1)
		}
		inputs = append(inputs, extraction.RawInput{
			Data:     data,
			Filename: filepath.Base(path),
		})
	}

	results := svc.ProcessBatch(context.Background(), inputs)

	type fileOutput struct {
		Filename string                       `json:"filename"`
		Result   *extraction.ExtractionResult `json:"result"`
		Totals   service.Totals               `json:"totals"`
	}
	out := make([]fileOutput, len(results))
	failed := false
	for i, res := range results {
		out[i] = fileOutput{
			Filename: inputs[i].Filename,
			Result:   res,
			Totals:   service.TotalsFor(res.Transactions),
		}
		if len(res.Errors) > 0 {
			failed = true
		}
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "extract: %v\n", err)
		os.Exit(1)
	}
	if failed {
		os.Exit(1)
	}
}
