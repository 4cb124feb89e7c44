package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasad/rfp-pilot/internal/extraction"
	"github.com/prasad/rfp-pilot/internal/jobs"
	"github.com/prasad/rfp-pilot/internal/matching"
	"github.com/prasad/rfp-pilot/internal/pipeline"
	"github.com/prasad/rfp-pilot/internal/pricing"
	"github.com/prasad/rfp-pilot/internal/scanner"
	"github.com/prasad/rfp-pilot/internal/types"
)

// stubSearcher returns one strong candidate for every query.
type stubSearcher struct{}

func (stubSearcher) Search(_ context.Context, _ string, _ int) ([]types.SearchResult, error) {
	return []types.SearchResult{{
		SKU:      "CABLE-HV-001",
		Name:     "11kV XLPE Power Cable 3C x 300sqmm",
		Category: types.CategoryCable,
		Price:    4500,
		SpecsRaw: `{"voltage": "11kV", "insulation": "XLPE"}`,
		Distance: 0.1,
	}}, nil
}

func newTestServer(store jobs.Store) *Server {
	runner := pipeline.NewRunner(
		extraction.NewFixedSource(),
		matching.New(stubSearcher{}),
		pricing.New(pricing.DefaultRateCard()),
		store,
	)
	return New(Config{
		Port:    0,
		Runner:  runner,
		Jobs:    store,
		Scanner: scanner.New(nil),
	})
}

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUpload_AcceptsAndCompletes(t *testing.T) {
	store := jobs.NewMemoryStore()
	srv := newTestServer(store)

	body, contentType := multipartBody(t, "tender.pdf", []byte("Simulated PDF Content"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rfp/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	srv.handleUpload(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var status types.ProcessingStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "queued", status.Status)
	assert.Equal(t, 0, status.Progress)
	require.NotEmpty(t, status.JobID)

	// Background processing finishes the job
	assert.Eventually(t, func() bool {
		job, err := store.Get(status.JobID)
		return err == nil && job.Status == jobs.StatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	job, err := store.Get(status.JobID)
	require.NoError(t, err)
	assert.Equal(t, 100, job.Progress)
	require.NotNil(t, job.Result)
	assert.Len(t, job.Result.LineItems, 3)
}

func TestUpload_RejectsUnsupportedExtension(t *testing.T) {
	srv := newTestServer(jobs.NewMemoryStore())

	body, contentType := multipartBody(t, "tender.docx", []byte("content"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rfp/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	srv.handleUpload(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatus_UnknownJob(t *testing.T) {
	srv := newTestServer(jobs.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rfp/nope/status", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()

	srv.handleStatus(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatus_QueuedJob(t *testing.T) {
	store := jobs.NewMemoryStore()
	require.NoError(t, store.Create(&jobs.Job{ID: "job-1", Status: jobs.StatusQueued}))
	srv := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rfp/job-1/status", nil)
	req.SetPathValue("id", "job-1")
	rec := httptest.NewRecorder()

	srv.handleStatus(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var status types.ProcessingStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "queued", status.Status)
	assert.Equal(t, 0, status.Progress)
}

func TestResult_StillProcessing(t *testing.T) {
	store := jobs.NewMemoryStore()
	require.NoError(t, store.Create(&jobs.Job{ID: "job-1", Status: jobs.StatusProcessing, Progress: 50}))
	srv := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rfp/job-1/result", nil)
	req.SetPathValue("id", "job-1")
	rec := httptest.NewRecorder()

	srv.handleResult(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "still processing")
	assert.Contains(t, rec.Body.String(), "50")
}

func TestResult_FailedJob(t *testing.T) {
	store := jobs.NewMemoryStore()
	require.NoError(t, store.Create(&jobs.Job{ID: "job-1", Status: jobs.StatusFailed, Message: "boom"}))
	srv := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rfp/job-1/result", nil)
	req.SetPathValue("id", "job-1")
	rec := httptest.NewRecorder()

	srv.handleResult(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "boom")
}

func TestResult_CompletedJob(t *testing.T) {
	store := jobs.NewMemoryStore()
	require.NoError(t, store.Create(&jobs.Job{
		ID:     "job-1",
		Status: jobs.StatusCompleted,
		Result: &types.QuoteResult{TechnicalSummary: "AI Analyzed 1 line items from RFP."},
	}))
	srv := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rfp/job-1/result", nil)
	req.SetPathValue("id", "job-1")
	rec := httptest.NewRecorder()

	srv.handleResult(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var result types.QuoteResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "AI Analyzed 1 line items from RFP.", result.TechnicalSummary)
}

func TestOpportunities_ReturnsBareReport(t *testing.T) {
	portal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer portal.Close()

	store := jobs.NewMemoryStore()
	srv := newTestServer(store)
	srv.scanner = scanner.New([]string{portal.URL})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales/opportunities", nil)
	rec := httptest.NewRecorder()

	srv.handleOpportunities(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// The report itself, not the scan wrapper
	var report types.ScanReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, len(report.Opportunities), report.OpportunitiesFound)
	assert.NotEmpty(t, report.Opportunities)
	assert.NotContains(t, rec.Body.String(), `"message"`)
}

func TestScan_WrapsReport(t *testing.T) {
	portal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer portal.Close()

	srv := newTestServer(jobs.NewMemoryStore())
	srv.scanner = scanner.New([]string{portal.URL})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales/scan", nil)
	rec := httptest.NewRecorder()

	srv.handleScan(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.ScanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Scanning completed successfully", resp.Message)
	assert.Equal(t, resp.Opportunities.OpportunitiesFound, resp.FoundOpportunities)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(jobs.NewMemoryStore())

	rec := httptest.NewRecorder()
	srv.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
