// Package handler exposes the extraction pipeline over HTTP: a multipart
// upload endpoint that runs statements through the pipeline and returns
// normalized transactions plus diagnostics as JSON.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction"
	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/service"
	"github.com/sudhakarans/expense-exterminator/internal/domain/transactions"
)

// ExtractHandler serves statement uploads.
type ExtractHandler struct {
	svc            *service.Service
	store          *transactions.Service
	logger         *slog.Logger
	maxUploadBytes int64
}

// NewExtractHandler creates the upload handler. store may be nil for
// stateless deployments; results are then returned without persisting.
func NewExtractHandler(svc *service.Service, store *transactions.Service, logger *slog.Logger, maxUploadBytes int64) *ExtractHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 25 << 20
	}
	return &ExtractHandler{
		svc:            svc,
		store:          store,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// FileResult pairs one uploaded file with its extraction outcome.
type FileResult struct {
	Filename string                       `json:"filename"`
	Result   *extraction.ExtractionResult `json:"result"`
	Totals   service.Totals               `json:"totals"`
	Stored   *transactions.StoreSummary   `json:"stored,omitempty"`
}

// ExtractResponse is the upload endpoint's body.
type ExtractResponse struct {
	Files []FileResult `json:"files"`
}

// Routes registers the handler's endpoints on mux.
func (h *ExtractHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/extract", h.Extract)
	mux.HandleFunc("GET /healthz", h.Health)
}

// Extract accepts one or more statement files in the multipart "files" field
// (the legacy "file" field is accepted too) and runs them as one batch.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
			return
		}
		h.writeError(w, http.StatusBadRequest, "request is not valid multipart form data")
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.logger.Warn("failed to clean up multipart temp files", "error", err)
		}
	}()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		files = r.MultipartForm.File["file"]
	}
	if len(files) == 0 {
		h.writeError(w, http.StatusBadRequest, "no files in upload; use the \"files\" form field")
		return
	}

	inputs := make([]extraction.RawInput, 0, len(files))
	for _, fh := range files {
		data, err := readUpload(fh)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "cannot read uploaded file "+fh.Filename)
			return
		}
		inputs = append(inputs, extraction.RawInput{
			Data:      data,
			Filename:  fh.Filename,
			MediaType: fh.Header.Get("Content-Type"),
		})
	}

	results := h.svc.ProcessBatch(r.Context(), inputs)

	resp := ExtractResponse{Files: make([]FileResult, len(results))}
	for i, res := range results {
		fr := FileResult{
			Filename: inputs[i].Filename,
			Result:   res,
			Totals:   service.TotalsFor(res.Transactions),
		}
		if h.store != nil {
			summary, err := h.store.StoreResult(r.Context(), res)
			if err != nil {
				// Extraction succeeded; report the persistence failure
				// without discarding the output.
				res.AddWarning(-1, "results could not be persisted")
				h.logger.Error("failed to store extraction result",
					"file", inputs[i].Filename, "error", err)
			} else {
				fr.Stored = &summary
			}
		}
		resp.Files[i] = fr
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// Health reports liveness.
func (h *ExtractHandler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *ExtractHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *ExtractHandler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
