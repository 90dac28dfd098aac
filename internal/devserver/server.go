package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"itens-cli/internal/model"

	"github.com/charmbracelet/log"
)

const maxPageSize = 100

type Server struct {
	store  *Store
	logger *log.Logger
}

func NewServer(store *Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{store: store, logger: logger}
}

// Handler returns the /itens routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /itens", s.handleList)
	mux.HandleFunc("POST /itens", s.handleCreate)
	mux.HandleFunc("PUT /itens/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /itens/{id}", s.handleDelete)
	return s.logRequests(mux)
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := s.store.List(r.Context(), q)
	if err != nil {
		s.logger.Error("list failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	it, err := s.store.Create(r.Context(), in)
	if err != nil {
		s.logger.Error("create failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := decodeInput(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	it, err := s.store.Update(r.Context(), id, in)
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		s.logger.Error("update failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(w, http.StatusOK, it)
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	err = s.store.Delete(r.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		s.logger.Error("delete failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseListQuery(r *http.Request) (model.ListQuery, error) {
	v := r.URL.Query()
	q := model.ListQuery{
		Page:          1,
		PageSize:      10,
		SortField:     model.SortByID,
		SortDirection: model.Asc,
		Search:        strings.TrimSpace(v.Get("busca")),
	}
	if s := v.Get("pagina"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return q, fmt.Errorf("invalid pagina: %q", s)
		}
		q.Page = n
	}
	if s := v.Get("por_pagina"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxPageSize {
			return q, fmt.Errorf("invalid por_pagina: %q", s)
		}
		q.PageSize = n
	}
	if s := v.Get("ordenar_por"); s != "" {
		f, err := model.ParseSortField(s)
		if err != nil {
			return q, err
		}
		q.SortField = f
	}
	if s := v.Get("ordem"); s != "" {
		d, err := model.ParseSortDirection(s)
		if err != nil {
			return q, err
		}
		q.SortDirection = d
	}
	return q, nil
}

func decodeInput(w http.ResponseWriter, r *http.Request) (model.ItemInput, error) {
	var in model.ItemInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return in, fmt.Errorf("invalid body: %w", err)
	}
	if strings.TrimSpace(in.Name) == "" {
		return in, errors.New("nome is required")
	}
	if math.IsNaN(in.Price) || math.IsInf(in.Price, 0) {
		return in, errors.New("preco must be a finite number")
	}
	return in, nil
}

func pathID(r *http.Request) (int, error) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %q", raw)
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"erro": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"request_id", r.Header.Get("X-Request-Id"),
			"dur", time.Since(start).Round(time.Microsecond),
		)
	})
}
