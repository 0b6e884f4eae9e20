package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/w-h-a/recall"
	"github.com/w-h-a/recall/recorder"
	"github.com/w-h-a/recall/server"
)

// Service is the slice of the orchestrator the HTTP layer needs. Tests plug in
// a double here instead of a wired pipeline.
type Service interface {
	Query(ctx context.Context, owner string, question string, topK int) (*recall.Result, error)
	Ingest(ctx context.Context, owner string, category string, text string, sourceRef string) (string, error)
	Forget(ctx context.Context, id string) (bool, error)
	History(ctx context.Context, owner string, limit int) ([]recorder.Turn, error)
}

type queryRequest struct {
	Owner    string `json:"owner,omitempty"`
	Question string `json:"question"`
	TopK     int    `json:"top_k,omitempty"`
}

type ingestRequest struct {
	Owner     string `json:"owner,omitempty"`
	Category  string `json:"category"`
	Text      string `json:"text"`
	SourceRef string `json:"source_ref,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
}

type httpServer struct {
	options server.Options
	service Service
	router  *mux.Router
}

func (s *httpServer) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err, "")
		return
	}

	if len(strings.TrimSpace(req.Question)) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("question is required"), "")
		return
	}

	result, err := s.service.Query(r.Context(), req.Owner, req.Question, req.TopK)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *httpServer) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err, "")
		return
	}

	id, err := s.service.Ingest(r.Context(), req.Owner, req.Category, req.Text, req.SourceRef)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *httpServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	deleted, err := s.service.Forget(r.Context(), id)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

func (s *httpServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	owner := mux.Vars(r)["owner"]

	limit := 0
	if raw := r.URL.Query().Get("limit"); len(raw) > 0 {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, errors.New("limit must be a non-negative integer"), "")
			return
		}
		limit = parsed
	}

	turns, err := s.service.History(r.Context(), owner, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err, "")
		return
	}

	if turns == nil {
		turns = []recorder.Turn{}
	}

	writeJSON(w, http.StatusOK, map[string][]recorder.Turn{"turns": turns})
}

func (s *httpServer) Handler() http.Handler {
	var handler http.Handler = s.router

	if ms, ok := MiddlewareFrom(s.options.Context); ok {
		for i := len(ms) - 1; i >= 0; i-- {
			handler = ms[i](handler)
		}
	}

	return handler
}

func (s *httpServer) Run() error {
	slog.InfoContext(s.options.Context, "http server listening", "address", s.options.Address)
	return http.ListenAndServe(s.options.Address, s.Handler())
}

// writeFailure maps pipeline failures onto distinct user-visible categories:
// stage failures come back as 502 with the stage attached, anything else is
// treated as caller input.
func writeFailure(w http.ResponseWriter, err error) {
	var f *recall.Failure
	if errors.As(err, &f) {
		writeError(w, http.StatusBadGateway, f.Err, string(f.Stage))
		return
	}

	writeError(w, http.StatusBadRequest, err, "")
}

func writeError(w http.ResponseWriter, status int, err error, stage string) {
	writeJSON(w, status, errorResponse{Error: err.Error(), Stage: stage})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func NewServer(service Service, opts ...server.Option) server.Server {
	options := server.NewOptions(opts...)

	s := &httpServer{
		options: options,
		service: service,
	}

	router := mux.NewRouter()
	router.HandleFunc("/v1/query", s.handleQuery).Methods(http.MethodPost)
	router.HandleFunc("/v1/embeddings", s.handleIngest).Methods(http.MethodPost)
	router.HandleFunc("/v1/embeddings/{id}", s.handleDelete).Methods(http.MethodDelete)
	router.HandleFunc("/v1/history/{owner}", s.handleHistory).Methods(http.MethodGet)

	s.router = router

	return s
}
