package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/gaps"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/server/middleware"
	"github.com/jonathan/resume-matcher/internal/types"
)

// multipartMemory is how much of an upload is held in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

// Multipart form fields accepted by /analyze and /analyze/stream.
const (
	fieldResume         = "resume"
	fieldResumeText     = "resume_text"
	fieldJob            = "job"
	fieldJobDescription = "job_description"
	fieldTargetRole     = "target_role"
	fieldLabel          = "label"
	fieldProfile        = "profile"
)

// handleAnalyze scores one resume against one job description.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeAnalyzeRequest(w, r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	analysis, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleAnalyzeStream runs one analysis and reports each step as a
// Server-Sent Event, followed by a "result" or "error" event.
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeAnalyzeRequest(w, r)
	if err == nil {
		err = precheck(&req)
	}
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	logger := s.logger.With(zap.String("request_id", middleware.GetRequestID(r.Context())))
	logger.Debug("starting streaming analysis")

	ctx := pipeline.WithProgress(r.Context(), func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent(EventStep, event); err != nil {
			logger.Debug("failed to write SSE event", zap.Error(err))
		}
	})

	analysis, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		status := HTTPStatus(err)
		logger.Warn("streaming analysis failed", zap.Int("status", status), zap.Error(err))
		if writeErr := sse.WriteError(status, errorMessage(err, status)); writeErr != nil {
			logger.Debug("failed to write SSE error", zap.Error(writeErr))
		}
		return
	}

	if err := sse.WriteEvent(EventResult, analysis); err != nil {
		logger.Debug("failed to write SSE result", zap.Error(err))
	}
}

// handleRank scores a batch of resumes against one job description.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req types.RankRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, err)
		return
	}

	resp, err := s.analyzer.AnalyzeBatch(r.Context(), req.Requests())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleRoleGaps compares a skill list with a role template and returns the
// gap report and roadmap.
func (s *Server) handleRoleGaps(w http.ResponseWriter, r *http.Request) {
	var req types.RoleGapRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, err)
		return
	}

	resp, err := s.analyzer.RoleGaps(req.Skills, req.TargetRole)
	if err != nil {
		var roleErr *gaps.RoleNotFoundError
		if errors.As(err, &roleErr) {
			s.jsonResponse(w, http.StatusNotFound, gaps.ErrorPayload(roleErr))
			return
		}
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleRoles lists the role templates.
func (s *Server) handleRoles(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string][]string{"roles": s.analyzer.Roles()})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func metricsHandler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// decodeJSON reads a size-capped JSON body into v.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return badRequest("invalid request body", err)
	}
	if dec.More() {
		return badRequest("invalid request body", errors.New("unexpected data after JSON object"))
	}
	return nil
}

// decodeAnalyzeRequest accepts a JSON AnalyzeRequest or a multipart form
// with the resume (and optionally the job) as uploaded documents.
func (s *Server) decodeAnalyzeRequest(w http.ResponseWriter, r *http.Request) (types.AnalyzeRequest, error) {
	var req types.AnalyzeRequest

	mediaType := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return req, &RequestError{Status: http.StatusUnsupportedMediaType, Message: "invalid Content-Type", Cause: err}
		}
		mediaType = parsed
	}

	switch mediaType {
	case "application/json":
		err := s.decodeJSON(w, r, &req)
		return req, err
	case "multipart/form-data":
		return s.decodeMultipart(w, r)
	default:
		return req, &RequestError{
			Status:  http.StatusUnsupportedMediaType,
			Message: fmt.Sprintf("unsupported Content-Type %q", mediaType),
		}
	}
}

func (s *Server) decodeMultipart(w http.ResponseWriter, r *http.Request) (types.AnalyzeRequest, error) {
	var req types.AnalyzeRequest

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return req, badRequest("invalid multipart form", err)
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	resume, ok, err := readUpload(r, fieldResume)
	if err != nil {
		return req, err
	}
	if !ok {
		resume = r.FormValue(fieldResumeText)
	}
	job, ok, err := readUpload(r, fieldJob)
	if err != nil {
		return req, err
	}
	if !ok {
		job = r.FormValue(fieldJobDescription)
	}

	req.ResumeText = resume
	req.JobDescription = job
	req.TargetRole = strings.TrimSpace(r.FormValue(fieldTargetRole))
	req.Label = r.FormValue(fieldLabel)

	if raw := r.FormValue(fieldProfile); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Profile); err != nil {
			return req, badRequest("invalid profile JSON", err)
		}
	}
	if req.Label == "" {
		if fh := firstFile(r, fieldResume); fh != "" {
			req.Label = fh
		}
	}
	return req, nil
}

// readUpload extracts text from an uploaded document. ok is false when the
// field carries no file.
func readUpload(r *http.Request, field string) (text string, ok bool, err error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", false, nil
	}
	if err != nil {
		return "", false, badRequest(fmt.Sprintf("invalid %s upload", field), err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", false, badRequest(fmt.Sprintf("failed to read %s upload", field), err)
	}
	text, _, err = ingestion.ExtractBytes(header.Filename, data)
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

func firstFile(r *http.Request, field string) string {
	if r.MultipartForm == nil {
		return ""
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return ""
	}
	return files[0].Filename
}

// precheck rejects requests the pipeline would refuse, so a stream is only
// opened for requests that can run.
func precheck(req *types.AnalyzeRequest) error {
	if strings.TrimSpace(req.JobDescription) == "" {
		return &pipeline.InputError{Field: "job_description", Message: "must not be empty"}
	}
	return req.Validate()
}
