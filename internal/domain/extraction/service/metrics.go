package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	filesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "extraction",
		Name:      "files_processed_total",
		Help:      "Statement files processed, by detected format and outcome.",
	}, []string{"format", "outcome"})

	transactionsExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "extraction",
		Name:      "transactions_extracted_total",
		Help:      "Normalized transactions produced across all files.",
	})

	fileDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "extraction",
		Name:      "file_duration_seconds",
		Help:      "Wall time spent processing one statement file.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
	}, []string{"format"})

	ocrFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "extraction",
		Name:      "ocr_fallbacks_total",
		Help:      "PDFs whose text had to be recovered via OCR.",
	})
)
