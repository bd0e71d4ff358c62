package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/confcheck"
	"github.com/aretw0/confcheck/internal/logging"
	"github.com/aretw0/confcheck/internal/sanitize"
	"github.com/aretw0/confcheck/pkg/domain"
	"github.com/aretw0/confcheck/pkg/ports"
	"github.com/aretw0/confcheck/pkg/report"
	"github.com/aretw0/confcheck/pkg/schema"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MaxBodyBytes bounds the size of a request body.
const MaxBodyBytes = 1 << 20

// Checker defines the operations the HTTP API exposes.
type Checker interface {
	CheckText(ctx context.Context, configText, schemaText string) (*report.Report, error)
	Check(ctx context.Context, configName, schemaName string) (*report.Report, error)
	Get(ctx context.Context, configName, key string) (string, bool, error)
	LoadSchema(ctx context.Context, name string) (*schema.Schema, error)
	Source() ports.Source
}

// Ensure the library checker satisfies the interface.
var _ Checker = (*confcheck.Checker)(nil)

// ValidateRequest is the body of POST /validate.
type ValidateRequest struct {
	Config string `json:"config"`
	Schema string `json:"schema"`
}

// CheckRequest is the body of POST /check; both fields are document names.
type CheckRequest struct {
	Config string `json:"config"`
	Schema string `json:"schema"`
}

// ErrorResponse is returned for every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Line  int    `json:"line,omitempty"`
}

// LookupResponse is the body of GET /lookup.
type LookupResponse struct {
	Config string `json:"config"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// SchemaResponse is the body of GET /schema.
type SchemaResponse struct {
	Name   string         `json:"name"`
	Schema *schema.Schema `json:"schema"`
}

// Server serves the checker over HTTP.
type Server struct {
	Checker Checker
	Logger  *slog.Logger
}

// HandlerOption configures NewHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	logger  *slog.Logger
	metrics http.Handler
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(c *handlerConfig) {
		c.logger = logger
	}
}

// WithMetricsHandler mounts h at GET /metrics (e.g. promhttp.HandlerFor).
func WithMetricsHandler(h http.Handler) HandlerOption {
	return func(c *handlerConfig) {
		c.metrics = h
	}
}

// NewHandler creates a new HTTP handler for the checker.
func NewHandler(checker Checker, opts ...HandlerOption) http.Handler {
	cfg := &handlerConfig{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cfg)
	}

	server := &Server{Checker: checker, Logger: cfg.logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/validate", server.Validate)
	r.Post("/check", server.Check)
	r.Get("/documents", server.ListDocuments)
	r.Get("/lookup", server.Lookup)
	r.Get("/schema", server.GetSchema)
	r.Get("/healthz", server.GetHealth)
	r.Get("/info", server.GetInfo)
	if cfg.metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Validate handles POST /validate with inline document texts.
// Documents carrying control characters other than newline, tab and carriage
// return are rejected with 400 rather than rewritten.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	if !s.decode(w, r, &body) {
		return
	}

	docs, err := sanitize.Documents(body.Config, body.Schema)
	if err != nil {
		s.Logger.Warn("Document rejected", "error", err)
		s.writeError(w, err)
		return
	}

	rep, err := s.Checker.CheckText(r.Context(), docs[0], docs[1])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

// Check handles POST /check with document names resolved by the source.
func (s *Server) Check(w http.ResponseWriter, r *http.Request) {
	var body CheckRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.Config == "" || body.Schema == "" {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "config and schema names are required"})
		return
	}

	rep, err := s.Checker.Check(r.Context(), body.Config, body.Schema)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

// ListDocuments handles GET /documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	src := s.Checker.Source()
	if src == nil {
		s.writeError(w, confcheck.ErrNoSource)
		return
	}

	names, err := src.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"documents": names})
}

// Lookup handles GET /lookup?config=<name>&key=<key>.
func (s *Server) Lookup(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("config")
	key := r.URL.Query().Get("key")
	if name == "" {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "config is required"})
		return
	}

	value, ok, err := s.Checker.Get(r.Context(), name, key)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !ok {
		s.writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "key not found", Kind: "missing_key"})
		return
	}
	s.writeJSON(w, http.StatusOK, LookupResponse{Config: name, Key: key, Value: value})
}

// GetSchema handles GET /schema?name=<name> and returns the parsed key types.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "name is required"})
		return
	}

	sch, err := s.Checker.LoadSchema(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, SchemaResponse{Name: name, Schema: sch})
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "confcheck-http",
		"version": confcheck.Version,
	})
}

// -- Helpers --

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.Logger.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrInvalidLine), errors.Is(err, domain.ErrInvalidType):
		status = http.StatusUnprocessableEntity
		resp.Kind = domain.ParseErrorKind(err)
		resp.Line, _ = domain.ParseErrorLine(err)
	case errors.Is(err, domain.ErrDocumentNotFound):
		status = http.StatusNotFound
		resp.Kind = "not_found"
	case errors.Is(err, sanitize.ErrDocumentTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, sanitize.ErrInvalidUTF8), errors.Is(err, sanitize.ErrControlCharacter):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidDocumentName):
		status = http.StatusBadRequest
		resp.Kind = "invalid_name"
	case errors.Is(err, confcheck.ErrNoSource):
		status = http.StatusNotImplemented
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		s.Logger.Error("Request failed", "error", err)
	}
	s.writeJSON(w, status, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("Response encode failed", "error", err)
	}
}
