package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/prasad/rfp-pilot/internal/jobs"
	"github.com/prasad/rfp-pilot/internal/types"
)

// maxUploadBytes caps the accepted document size.
const maxUploadBytes = 20 << 20 // 20 MiB

// handleUpload accepts an RFP document, registers a job, and starts
// processing in the background.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if !strings.HasSuffix(header.Filename, ".pdf") && !strings.HasSuffix(header.Filename, ".txt") {
		s.errorResponse(w, http.StatusBadRequest, "Only PDF and text files are allowed")
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to read upload: "+err.Error())
		return
	}

	jobID := uuid.New().String()
	if err := s.jobs.Create(&jobs.Job{
		ID:       jobID,
		Filename: header.Filename,
		Status:   jobs.StatusQueued,
	}); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create job: "+err.Error())
		return
	}

	log.Printf("Accepted RFP %s as job %s (%d bytes)", header.Filename, jobID, len(content))

	// One processing goroutine per job; the registry supports concurrent
	// status reads while it runs.
	go s.runner.Process(context.Background(), jobID, content)

	s.jsonResponse(w, http.StatusOK, types.ProcessingStatus{
		JobID:    jobID,
		Status:   string(jobs.StatusQueued),
		Progress: 0,
		Message:  "RFP uploaded and processing started",
	})
}

// handleStatus returns the current job state. Always well-formed for a
// known id, whatever the job's state.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	job, ok := s.lookupJob(w, r)
	if !ok {
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ProcessingStatus{
		JobID:    job.ID,
		Status:   string(job.Status),
		Progress: job.Progress,
	})
}

// handleResult returns the final quote for a completed job.
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	job, ok := s.lookupJob(w, r)
	if !ok {
		return
	}

	switch job.Status {
	case jobs.StatusFailed:
		s.errorResponse(w, http.StatusInternalServerError, "Job Failed: "+job.Message)
	case jobs.StatusCompleted:
		s.jsonResponse(w, http.StatusOK, job.Result)
	default:
		s.errorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Job still processing (Status: %s). Progress: %d%%", job.Status, job.Progress))
	}
}

// handleScan runs a tender scan and returns the report.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	report, err := s.scanner.Scan(r.Context(), s.now())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Scan failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ScanResponse{
		Message:            "Scanning completed successfully",
		FoundOpportunities: report.OpportunitiesFound,
		Opportunities:      *report,
	})
}

// handleOpportunities returns the current scan report without the scan
// wrapper message.
func (s *Server) handleOpportunities(w http.ResponseWriter, r *http.Request) {
	report, err := s.scanner.Scan(r.Context(), s.now())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Scan failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, report)
}

// lookupJob resolves the path id to a job, writing the error response on
// failure.
func (s *Server) lookupJob(w http.ResponseWriter, r *http.Request) (jobs.Job, bool) {
	id := r.PathValue("id")
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, "Job ID is required")
		return jobs.Job{}, false
	}

	job, err := s.jobs.Get(id)
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return jobs.Job{}, false
	}
	return job, true
}
