// Package e2etest runs statement uploads through the full HTTP surface: the
// multipart handler, the batch orchestrator, format routing, parsing, and
// normalization, asserting on the JSON the daemon would return.
package e2etest

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/handler"
	"github.com/sudhakarans/expense-exterminator/internal/domain/extraction/service"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	svc := service.New(service.Config{ReferenceYear: 2025}, logger, nil)
	mux := http.NewServeMux()
	handler.NewExtractHandler(svc, nil, logger, 0).Routes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func upload(t *testing.T, url string, files map[string][]byte) handler.ExtractResponse {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for name, data := range files {
		part, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	resp, err := http.Post(url+"/v1/extract", mw.FormDataContentType(), body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out handler.ExtractResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func bankExportCSV() []byte {
	return []byte("HDFC Bank Statement\n" +
		"Account: XXXX1234\n" +
		"\n" +
		"Txn Date,Narration,Debit,Credit\n" +
		"13/02/2025,UPI/512233445566/SWIGGY/swiggy@ybl,250.00,\n" +
		"14/02/2025,NEFT SALARY CREDIT,,50000.00\n")
}

func passbookXLSX(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	rows := [][]any{
		{"Date", "Description", "Amount", "Category"},
		{"15/02/2025", "Paid to Apollo Pharmacy", "-432.10", "Health"},
		{"16/02/2025", "Received from Anil Verma", "500.00", ""},
	}
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, val))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestUploadFlow_MixedBatch(t *testing.T) {
	srv := newServer(t)

	out := upload(t, srv.URL, map[string][]byte{
		"hdfc_statement.csv": bankExportCSV(),
		"passbook.xlsx":      passbookXLSX(t),
		"holiday_photo.bin":  {0x00, 0x01, 0x02, 0x03},
	})
	require.Len(t, out.Files, 3)

	byName := map[string]handler.FileResult{}
	for _, f := range out.Files {
		byName[f.Filename] = f
	}

	csvRes := byName["hdfc_statement.csv"].Result
	require.Len(t, csvRes.Transactions, 2)
	assert.Empty(t, csvRes.Errors)
	assert.Equal(t, "Swiggy", csvRes.Transactions[0].Merchant)
	assert.Equal(t, "-250", csvRes.Transactions[0].Amount.String())
	assert.Equal(t, "2025-02-13", csvRes.Transactions[0].DateISO())
	assert.Equal(t, "50000", csvRes.Transactions[1].Amount.String())
	assert.Equal(t, service.Totals{
		Outflow: "₹250.00",
		Inflow:  "₹50,000.00",
		Net:     "₹49,750.00",
	}, byName["hdfc_statement.csv"].Totals)

	xlsxRes := byName["passbook.xlsx"].Result
	require.Len(t, xlsxRes.Transactions, 2)
	assert.Equal(t, "Apollo Pharmacy", xlsxRes.Transactions[0].Merchant)
	assert.Equal(t, "Health", string(xlsxRes.Transactions[0].Category))

	// The junk file fails alone with an Error diagnostic; the batch is fine.
	binRes := byName["holiday_photo.bin"].Result
	assert.Empty(t, binRes.Transactions)
	assert.NotEmpty(t, binRes.Errors)
}

func TestUploadFlow_Idempotent(t *testing.T) {
	srv := newServer(t)
	files := map[string][]byte{"hdfc_statement.csv": bankExportCSV()}

	first := upload(t, srv.URL, files)
	second := upload(t, srv.URL, files)
	assert.Equal(t, first, second)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
