package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"tooldir/internal/auth"
	"tooldir/internal/domain"
	"tooldir/internal/metrics"
	"tooldir/internal/repository"
	"tooldir/internal/service"
)

const (
	maxBodyBytes   = 1 << 20
	maxImportBytes = 32 << 20
)

// Handler serves the directory API
type Handler struct {
	repos   *repository.Repositories
	db      *service.DatabaseService
	auth    *auth.Authenticator
	events  http.Handler
	metrics *metrics.Metrics
	log     *zap.Logger
	origins []string
	now     func() time.Time
}

// Config holds the dependencies of a Handler. Events and Metrics are
// optional; their routes are not registered when nil.
type Config struct {
	Repos       *repository.Repositories
	Database    *service.DatabaseService
	Auth        *auth.Authenticator
	Events      http.Handler
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
	CORSOrigins []string
}

// New creates a new handler
func New(cfg Config) *Handler {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		repos:   cfg.Repos,
		db:      cfg.Database,
		auth:    cfg.Auth,
		events:  cfg.Events,
		metrics: cfg.Metrics,
		log:     log,
		origins: cfg.CORSOrigins,
		now:     time.Now,
	}
}

// Routes returns the API with its middleware applied
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	h.registerContent(mux)
	h.registerCommunity(mux)
	h.registerMakers(mux)
	h.registerDatabase(mux)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})
	if h.events != nil {
		mux.Handle("GET /events", h.events)
	}
	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics.Handler())
	}

	return Chain(mux,
		Recover(h.log),
		CORS(h.origins),
		Logger(h.log),
		Instrument(h.metrics),
	)
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	// The status line is already out; an encoding error cannot be reported
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, error, details string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: error, Details: details}, statusCode)
}

// fail maps err onto a status code and writes it. what describes the
// operation, e.g. "create tool".
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, what string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, ErrorResponse{Error: "Invalid input", Details: verr.Error(), Fields: verr.Fields}, http.StatusBadRequest)
	case errors.Is(err, repository.ErrAuthCodeInvalid),
		errors.Is(err, repository.ErrUsernameTaken):
		writeError(w, "Failed to "+what, err.Error(), http.StatusConflict)
	case errors.Is(err, repository.ErrMakerNotFound),
		errors.Is(err, repository.ErrProjectNotFound):
		writeError(w, "Not found", err.Error(), http.StatusNotFound)
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		writeError(w, "Unauthorized", err.Error(), http.StatusUnauthorized)
	default:
		h.log.Error("request failed",
			zap.String("operation", what),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeError(w, "Failed to "+what, err.Error(), http.StatusInternalServerError)
	}
}

func notFound(w http.ResponseWriter, what string) {
	writeError(w, "Not found", what+" not found", http.StatusNotFound)
}

// decode reads a JSON body into v and validates it. It writes the error
// response and returns false when the body is unusable.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	return decodeJSON(w, r, v) && h.valid(w, r, v)
}

// decodeJSON reads a JSON body into v without validating it
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, "Invalid request body", "request body is empty", http.StatusBadRequest)
			return false
		}
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) valid(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := domain.Validate(v); err != nil {
		h.fail(w, r, "validate input", err)
		return false
	}
	return true
}

// getByID returns a handler that writes the record named by the {id} path
// value, or 404
func getByID[T any](h *Handler, what string, get func(r *http.Request, id string) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := get(r, r.PathValue("id"))
		if err != nil {
			h.fail(w, r, "get "+what, err)
			return
		}
		if item == nil {
			notFound(w, what)
			return
		}
		writeJSON(w, item, http.StatusOK)
	}
}

// result writes item with status, or 404 when item is nil
func result[T any](h *Handler, w http.ResponseWriter, r *http.Request, what string, item *T, err error, status int) {
	if err != nil {
		h.fail(w, r, what, err)
		return
	}
	if item == nil {
		notFound(w, "record")
		return
	}
	writeJSON(w, item, status)
}

// noContent writes 204 when ok, 404 otherwise
func (h *Handler) noContent(w http.ResponseWriter, r *http.Request, what string, ok bool, err error) {
	if err != nil {
		h.fail(w, r, what, err)
		return
	}
	if !ok {
		notFound(w, "record")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
