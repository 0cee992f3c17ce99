package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/nao1215/clausediff/internal/extract"
	"github.com/nao1215/clausediff/internal/report"
	"github.com/nao1215/clausediff/internal/staging"
)

// Report formats accepted in the "format" form field.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Multipart field names.
const (
	fieldMaster = "master"
	fieldTest   = "test"
	fieldFormat = "format"
)

// multipartMemory is the part of a form kept in memory before spilling
// to temporary files.
const multipartMemory = 8 << 20

var errUnknownFormat = errors.New("unknown report format")

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: s.version})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	// Two uploads at the cap plus room for the multipart envelope.
	r.Body = http.MaxBytesReader(w, r.Body, 2*s.store.MaxSize()+1<<20)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		s.writeError(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck // temporary multipart files

	format := r.FormValue(fieldFormat)
	if format == "" {
		format = FormatJSON
	}
	if _, ok := contentTypes[format]; !ok {
		s.writeError(w, r, fmt.Errorf("%w: %q", errUnknownFormat, format))
		return
	}

	if n, err := s.store.Purge(s.maxAge); err != nil {
		s.logger.Warn("failed to purge staged uploads", "removed", n, "error", err)
	}

	masterPath, err := s.stage(r, fieldMaster)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer s.unstage(masterPath)

	testPath, err := s.stage(r, fieldTest)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer s.unstage(testPath)

	cmp, err := s.comparer.CompareFiles(r.Context(), masterPath, testPath)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rep := cmp.Report
	rep.MasterFile = staging.OriginalName(masterPath)
	rep.TestFile = staging.OriginalName(testPath)

	var buf bytes.Buffer
	if _, err := s.newWriter(format, &buf).Write(rep); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// stage copies one multipart file into the staging store.
func (s *Server) stage(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", &missingFieldError{field: field, err: err}
	}
	defer file.Close() //nolint:errcheck // multipart part

	return s.save(header, file)
}

func (s *Server) save(header *multipart.FileHeader, file multipart.File) (string, error) {
	if header.Size > s.store.MaxSize() {
		return "", fmt.Errorf("%w: %s is %d bytes", staging.ErrOversizedInput, header.Filename, header.Size)
	}
	return s.store.Save(header.Filename, file)
}

func (s *Server) unstage(path string) {
	if err := s.store.Remove(path); err != nil {
		s.logger.Warn("failed to remove staged upload", "path", path, "error", err)
	}
}

var contentTypes = map[string]string{
	FormatJSON:     "application/json; charset=utf-8",
	FormatMarkdown: "text/markdown; charset=utf-8",
	FormatHTML:     "text/html; charset=utf-8",
}

func (s *Server) newWriter(format string, buf *bytes.Buffer) report.Writer {
	switch format {
	case FormatMarkdown:
		return report.NewMarkdownWriter(buf)
	case FormatHTML:
		return report.NewHTMLWriter(buf)
	default:
		return report.NewFullJSONWriter(buf, s.version)
	}
}

type missingFieldError struct {
	field string
	err   error
}

func (e *missingFieldError) Error() string {
	return fmt.Sprintf("missing upload %q: %v", e.field, e.err)
}

func (e *missingFieldError) Unwrap() error {
	return e.err
}

// statusFor maps an error to the response status.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	var missing *missingFieldError
	switch {
	case errors.As(err, &maxBytes), errors.Is(err, staging.ErrOversizedInput):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, extract.ErrExtraction):
		return http.StatusUnprocessableEntity
	case errors.As(err, &missing),
		errors.Is(err, errUnknownFormat),
		errors.Is(err, staging.ErrInvalidName),
		errors.Is(err, http.ErrNotMultipart),
		errors.Is(err, http.ErrMissingBoundary),
		errors.Is(err, multipart.ErrMessageTooLarge):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	reqID := middleware.GetReqID(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("comparison failed", "error", err, "request_id", reqID)
	} else {
		s.logger.Info("request rejected", "status", status, "error", err, "request_id", reqID)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: reqID})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypes[FormatJSON])
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", "error", err)
	}
}

