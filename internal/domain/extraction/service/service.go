// Package service orchestrates statement extraction: it routes each uploaded
// file to a format strategy, normalizes the recovered rows, and runs batches
// under a bounded worker pool. Per-file failures become diagnostics on the
// result, never errors; a bad statement must not take down a batch.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/sudhakarans/expense-exterminator/internal/domain/categorization"
	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/normalizer"
	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/parser"
	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/pattern"
	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/pdftext"
)

const tracerName = "extraction.service"

// Defaults for batch processing.
const (
	defaultFileTimeout  = 30 * time.Second
	defaultBatchWorkers = 4
)

// TextExtractor recovers plain text from PDF bytes.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (*pdftext.Result, error)
}

// Config tunes the extraction service.
type Config struct {
	// FileTimeout bounds the processing of one file inside a batch.
	FileTimeout time.Duration
	// BatchWorkers caps concurrent files in ProcessBatch.
	BatchWorkers int
	// ReferenceYear resolves year-less statement dates; zero means the
	// current year.
	ReferenceYear int
}

func (c Config) withDefaults() Config {
	if c.FileTimeout <= 0 {
		c.FileTimeout = defaultFileTimeout
	}
	if c.BatchWorkers <= 0 {
		c.BatchWorkers = defaultBatchWorkers
	}
	return c
}

// Service is the extraction pipeline front door.
type Service struct {
	cfg         Config
	logger      *slog.Logger
	registry    *pattern.Registry
	categorizer *categorization.Engine
	pdf         TextExtractor
	tracer      trace.Tracer
}

// New wires the pipeline. pdf may be nil in deployments without PDF support;
// PDF inputs then fail with a diagnostic instead of a crash.
func New(cfg Config, logger *slog.Logger, pdf TextExtractor) *Service {
	return &Service{
		cfg:         cfg.withDefaults(),
		logger:      logger,
		registry:    pattern.NewRegistry(),
		categorizer: categorization.NewEngine(),
		pdf:         pdf,
		tracer:      otel.Tracer(tracerName),
	}
}

// ProcessFile extracts transactions from one statement file. It never
// returns an error: every failure mode, including panics from malformed
// input, lands in the result's diagnostics.
func (s *Service) ProcessFile(ctx context.Context, input extraction.RawInput) (result *extraction.ExtractionResult) {
	ctx, span := s.tracer.Start(ctx, "ProcessFile")
	defer span.End()

	start := time.Now()
	format := Classify(input)
	result = extraction.NewResult()

	defer func() {
		if r := recover(); r != nil {
			result = extraction.NewResult()
			result.AddError(-1, fmt.Sprintf("internal failure processing %q: %v", input.Filename, r))
			s.logger.Error("panic recovered during extraction", "file", input.Filename, "panic", r)
		}

		outcome := "ok"
		if len(result.Errors) > 0 {
			outcome = "error"
		}
		filesProcessed.WithLabelValues(string(format), outcome).Inc()
		transactionsExtracted.Add(float64(len(result.Transactions)))
		fileDuration.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())

		s.logger.Info("file processed",
			"file", input.Filename,
			"format", format,
			"transactions", len(result.Transactions),
			"errors", len(result.Errors),
			"warnings", len(result.Warnings),
			"duration", time.Since(start),
		)
	}()

	if len(input.Data) == 0 {
		result.AddError(-1, "empty file")
		return result
	}

	switch format {
	case FormatCSV:
		s.processTable(result, input, parser.ParseCSV)
	case FormatXLSX:
		s.processTable(result, input, parser.ParseXLSX)
	case FormatPDF:
		s.processPDF(ctx, result, input)
	default:
		result.AddError(-1, fmt.Sprintf("unsupported file type: %q", input.Filename))
	}
	return result
}

// ProcessBatch runs every input through ProcessFile under a bounded worker
// pool and returns one result per input, in submission order. Each file gets
// its own timeout; canceling ctx stops unstarted files but lets in-flight
// ones finish their own deadline.
func (s *Service) ProcessBatch(ctx context.Context, inputs []extraction.RawInput) []*extraction.ExtractionResult {
	ctx, span := s.tracer.Start(ctx, "ProcessBatch")
	defer span.End()

	results := make([]*extraction.ExtractionResult, len(inputs))
	if len(inputs) == 0 {
		return results
	}

	workers := s.cfg.BatchWorkers
	if workers > len(inputs) {
		workers = len(inputs)
	}

	type job struct {
		idx   int
		input extraction.RawInput
	}
	jobs := make(chan job)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				fileCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.FileTimeout)
				results[j.idx] = s.ProcessFile(fileCtx, j.input)
				cancel()
			}
		}()
	}

dispatch:
	for i, input := range inputs {
		select {
		case jobs <- job{idx: i, input: input}:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)

	// Each dispatched slot is written by exactly one worker; in-flight files
	// run out their own deadline even after cancel. The never-dispatched
	// slots are stamped only after every worker has exited, so no slot is
	// ever written twice.
	wg.Wait()

	for i := range results {
		if results[i] == nil {
			results[i] = extraction.NewResult()
			results[i].AddError(-1, "batch canceled before file was processed")
		}
	}
	return results
}

// processTable runs a tabular extractor and normalizes its rows.
func (s *Service) processTable(result *extraction.ExtractionResult, input extraction.RawInput, extract func([]byte) (*parser.TableResult, error)) {
	table, err := extract(input.Data)
	if err != nil {
		result.AddError(-1, fmt.Sprintf("cannot read %q: %v", input.Filename, err))
		return
	}
	result.Warnings = append(result.Warnings, table.Warnings...)

	sourceApp := AppHint(input.Filename)
	for _, row := range table.Rows {
		merchant := normalizer.MerchantFromDescription(row.Description)
		result.Transactions = append(result.Transactions, extraction.NormalizedTransaction{
			Date:        row.Date,
			Amount:      row.Amount,
			Description: row.Description,
			Merchant:    merchant,
			Category:    s.resolveCategory(row.RawCategory, row.Description, merchant),
			PaymentMode: extraction.PaymentModeUPI,
			SourceApp:   sourceApp,
		})
	}
}

// processPDF recovers text and runs the pattern registry over it.
func (s *Service) processPDF(ctx context.Context, result *extraction.ExtractionResult, input extraction.RawInput) {
	if s.pdf == nil {
		result.AddError(-1, "pdf support is not enabled")
		return
	}

	text, err := s.pdf.Extract(ctx, input.Data)
	if err != nil {
		if errors.Is(err, pdftext.ErrNoText) {
			// A scanned page OCR cannot read is an expected degraded path.
			result.AddWarning(-1, fmt.Sprintf("no text recoverable from %q", input.Filename))
			return
		}
		result.AddError(-1, fmt.Sprintf("cannot read %q: %v", input.Filename, err))
		return
	}
	if text.UsedOCR {
		ocrFallbacks.Inc()
		result.AddWarning(-1, "text recovered via ocr; amounts and dates may be degraded")
		if text.Truncated {
			result.AddWarning(-1, "statement longer than the ocr page cap; trailing pages skipped")
		}
	}

	hint := AppHint(input.Filename)
	matches, template := s.registry.Extract(text.Text, hint, pattern.Options{
		ReferenceYear: s.cfg.ReferenceYear,
	})
	if len(matches) == 0 {
		result.AddWarning(-1, fmt.Sprintf("no recognizable transactions in %q", input.Filename))
		return
	}

	for i, m := range matches {
		if m.Note != "" {
			result.AddWarning(i, fmt.Sprintf("transaction %d: %s", i+1, m.Note))
		}
		merchant := normalizer.MerchantFromDescription(m.Merchant)
		result.Transactions = append(result.Transactions, extraction.NormalizedTransaction{
			Date:        m.Date,
			Amount:      m.Signed(),
			Description: m.Merchant,
			Merchant:    merchant,
			Category:    s.resolveCategory("", m.Merchant, merchant),
			PaymentMode: extraction.PaymentModeUPI,
			// The grammar that matched, not the filename hint: a statement
			// renamed after another app still reports its real source.
			SourceApp: template,
		})
	}
}

// resolveCategory honors an explicit category column when it names a known
// category and falls back to keyword categorization otherwise. The result is
// always a member of the fixed enum.
func (s *Service) resolveCategory(raw, description, merchant string) extraction.Category {
	if raw != "" {
		for _, cat := range []extraction.Category{
			extraction.CategoryFood, extraction.CategoryTravel,
			extraction.CategoryShopping, extraction.CategoryBills,
			extraction.CategoryEntertainment, extraction.CategoryHealth,
			extraction.CategoryEducation, extraction.CategoryInvestment,
			extraction.CategoryMiscellaneous,
		} {
			if strings.EqualFold(raw, string(cat)) {
				return cat
			}
		}
	}
	return s.categorizer.Categorize(description, merchant)
}
