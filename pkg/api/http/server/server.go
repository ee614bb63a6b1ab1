// server package serves the jobgate API over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/voidshard/jobgate/pkg/api"
	"github.com/voidshard/jobgate/pkg/api/http/common"
	"github.com/voidshard/jobgate/pkg/structs"
)

const (
	wait = 30 * time.Second

	defaultMaxBodyBytes = 1 << 20
)

type Server struct {
	addr       string
	debug      bool
	maxBody    int64
	log        *slog.Logger
	svc        api.API
	exit       chan os.Signal
	httpserver *http.Server
}

// NewServer returns a server that will listen on addr once ServeForever is called.
func NewServer(addr string, debug bool, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		addr:    addr,
		debug:   debug,
		maxBody: defaultMaxBodyBytes,
		log:     log.With("component", "http"),
		exit:    make(chan os.Signal, 1),
	}
}

// Handler returns the routes of the API, served by svc.
func (s *Server) Handler(svc api.API) http.Handler {
	s.svc = svc

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(s.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(s.NotAllowed)

	router.HandleFunc(common.API_HEALTH, s.onlyGet(s.Health))
	router.HandleFunc(common.API_AUTHENTICATE, s.onlyGet(s.Authenticate))
	router.HandleFunc(common.API_JOBS+"/{id}", s.Job).Methods(http.MethodGet)
	router.HandleFunc(common.API_MODELS+"/{resource}", s.Model).Methods(http.MethodGet)
	router.HandleFunc(common.API_SUBMIT+"{resource:[A-Za-z0-9_-]+}", s.Submit).Methods(http.MethodPost)

	mws := []mux.MiddlewareFunc{recoverMiddleware(s.log)}
	if s.debug {
		s.log.Debug("debug enabled, adding per-request logging middleware")
		mws = append(mws, loggingMiddleware(s.log))
	}
	mws = append(mws, credentialMiddleware)
	router.Use(chain(mws...))

	return router
}

func (s *Server) ServeForever(svc api.API) error {
	s.httpserver = &http.Server{
		Handler:      s.Handler(svc),
		Addr:         s.addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.httpserver.Addr)
		if err := s.httpserver.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()

	signal.Notify(s.exit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.exit)

	select {
	case err := <-errs:
		return err
	case <-s.exit:
	}

	s.log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	return s.httpserver.Shutdown(ctx)
}

func (s *Server) Close() error {
	s.exit <- os.Interrupt
	return nil
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, &common.HealthResponse{OK: true})
}

func (s *Server) Authenticate(w http.ResponseWriter, r *http.Request) {
	err := s.svc.Authenticate(r.Context(), credential(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, &common.MessageResponse{Message: common.MSG_VALID_KEY})
}

// Submit admits a job for the resource named in the path.
func (s *Server) Submit(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r, s.maxBody)
	if err != nil {
		return
	}

	ack, err := s.svc.Admit(r.Context(), &structs.AdmissionRequest{
		Resource:   mux.Vars(r)["resource"],
		Credential: credential(r.Context()),
		Payload:    body,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJson(w, http.StatusAccepted, ack)
}

func (s *Server) Job(w http.ResponseWriter, r *http.Request) {
	handle, err := s.svc.Job(r.Context(), credential(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, handle)
}

// Model returns the OpenAPI definitions of a resource's request schema.
func (s *Server) Model(w http.ResponseWriter, r *http.Request) {
	set, err := s.svc.Model(r.Context(), mux.Vars(r)["resource"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJson(w, http.StatusOK, set.OpenAPI())
}

func (s *Server) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusNotFound, &common.ErrorResponse{Error: common.MSG_NOT_FOUND})
}

func (s *Server) NotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusMethodNotAllowed, &common.ErrorResponse{Error: common.MSG_NOT_ALLOWED})
}

// onlyGet wraps routes that also match the submit route's path, so that other methods
// on them are refused rather than submitted.
func (s *Server) onlyGet(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			s.NotAllowed(w, r)
			return
		}
		fn(w, r)
	}
}
