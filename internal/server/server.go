// Package server exposes the solver over HTTP.
//
// Routes:
//
//	GET  /api/v1/algorithms           registered algorithms, optionally filtered by ?jobs=&machines=
//	POST /api/v1/solve                run one algorithm on a matrix
//	GET  /api/v1/version              build information
//
// Errors are returned as {"code": ..., "message": ...}. Input the solvers
// reject is a 400; a search that stopped on a limit or found nothing is a 422.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/flowshop/pkg/bnb"
	"github.com/matzehuels/flowshop/pkg/buildinfo"
	"github.com/matzehuels/flowshop/pkg/errors"
	"github.com/matzehuels/flowshop/pkg/flowshop"
	"github.com/matzehuels/flowshop/pkg/heuristics"
	"github.com/matzehuels/flowshop/pkg/solver"
)

// maxBodyBytes caps a solve request body.
const maxBodyBytes = 1 << 20

const shutdownTimeout = 5 * time.Second

// Server handles API requests with a shared runner.
type Server struct {
	runner   *solver.Runner
	logger   *log.Logger
	defaults solver.Options
	router   chi.Router
}

// New creates a server. defaults fills limits a request leaves unset.
func New(runner *solver.Runner, logger *log.Logger, defaults solver.Options) *Server {
	s := &Server{runner: runner, logger: logger, defaults: defaults}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/algorithms", s.handleAlgorithms)
		r.Post("/solve", s.handleSolve)
		r.Get("/version", s.handleVersion)
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}

// SolveRequest is the body of POST /api/v1/solve.
type SolveRequest struct {
	Algorithm   string          `json:"algorithm"`
	Matrix      flowshop.Matrix `json:"matrix"`
	TimeLimitMS int64           `json:"time_limit_ms,omitempty"`
	NodeLimit   int             `json:"node_limit,omitempty"`
	BestEffort  *bool           `json:"best_effort,omitempty"`
}

// SolveResponse is the body of a successful solve.
type SolveResponse struct {
	ID         string                 `json:"id"`
	Algorithm  string                 `json:"algorithm"`
	Result     *flowshop.Result       `json:"result"`
	Stats      *bnb.Stats             `json:"stats,omitempty"`
	Candidates *heuristics.Candidates `json:"candidates,omitempty"`
	BestEffort bool                   `json:"best_effort,omitempty"`
	Cached     bool                   `json:"cached,omitempty"`
	Report     string                 `json:"report"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	ID      string `json:"id,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`

	// Set when a limit stopped a search that already had an incumbent.
	BestSequence []int `json:"best_sequence,omitempty"`
	BestMakespan int   `json:"best_makespan,omitempty"`
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("jobs") == "" && q.Get("machines") == "" {
		writeData(w, s.logger, http.StatusOK, solver.Algorithms())
		return
	}

	jobs, err1 := strconv.Atoi(q.Get("jobs"))
	machines, err2 := strconv.Atoi(q.Get("machines"))
	if err1 != nil || err2 != nil || jobs < 1 || machines < 1 {
		s.writeError(w, "", errors.Validation(errors.ErrCodeInvalidInput,
			"jobs and machines must both be positive integers"))
		return
	}
	writeData(w, s.logger, http.StatusOK, solver.Applicable(jobs, machines))
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()

	var req SolveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, id, errors.Validation(errors.ErrCodeInvalidFormat, "decode request: %v", err))
		return
	}
	if req.TimeLimitMS < 0 || req.NodeLimit < 0 {
		s.writeError(w, id, errors.Validation(errors.ErrCodeInvalidInput, "limits must not be negative"))
		return
	}
	if req.Algorithm == "" {
		req.Algorithm = solver.AlgJohnson
	}

	opts := s.defaults
	if req.TimeLimitMS > 0 {
		opts.TimeLimit = time.Duration(req.TimeLimitMS) * time.Millisecond
	}
	if req.NodeLimit > 0 {
		opts.NodeLimit = req.NodeLimit
	}
	if req.BestEffort != nil {
		opts.BestEffort = *req.BestEffort
	}

	out, err := s.runner.Run(r.Context(), req.Algorithm, req.Matrix, opts)
	if err != nil {
		s.writeError(w, id, err)
		return
	}

	writeData(w, s.logger, http.StatusOK, SolveResponse{
		ID:         id,
		Algorithm:  out.Algorithm,
		Result:     out.Result,
		Stats:      out.Stats,
		Candidates: out.Candidates,
		BestEffort: out.BestEffort,
		Cached:     out.Cached,
		Report:     out.Report(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeData(w, s.logger, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
	})
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeLimitExceeded), errors.Is(err, errors.ErrCodeNoSolution):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errors.ErrCodeInvalidInput), errors.Is(err, errors.ErrCodeInvalidAlgorithm),
		errors.Is(err, errors.ErrCodeInvalidFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, id string, err error) {
	status := statusFor(err)
	body := ErrorResponse{ID: id, Code: string(errors.GetCode(err)), Message: errors.UserMessage(err)}
	if body.Code == "" {
		body.Code = string(errors.ErrCodeInternal)
	}

	var le *errors.LimitExceededError
	if stderrors.As(err, &le) && le.HasIncumbent() {
		body.BestSequence = le.BestSequence
		body.BestMakespan = le.BestMakespan
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", "id", id, "err", err)
	} else {
		s.logger.Debug("Request rejected", "id", id, "code", body.Code, "msg", body.Message)
	}
	writeData(w, s.logger, status, body)
}

func writeData(w http.ResponseWriter, logger *log.Logger, status int, data any) {
	js, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		logger.Error("Invalid JSON data", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		logger.Debug("Write response", "err", err)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("HTTP", "method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "elapsed", time.Since(start).Round(time.Microsecond))
	})
}
