package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vango-dev/formkit/pkg/features/form"
	"github.com/vango-dev/formkit/pkg/vdom"
)

// Form is a form the server can host.
type Form struct {
	// Name is the URL segment and the controller name.
	Name string

	// Title is the page title.
	Title string

	// View renders the form. It runs inside a render with the session's
	// controller provided.
	View func(c *form.Controller) *vdom.VNode
}

func (f Form) component(c *form.Controller) func() *vdom.VNode {
	return func() *vdom.VNode {
		form.Provide(c)
		return f.View(c)
	}
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithObserver attaches o to every session controller.
func WithObserver(o form.Observer) Option {
	return func(s *Server) {
		s.observer = o
	}
}

// WithOnFinish sets the submit callback factory. It is called once per
// session with the form name.
func WithOnFinish(fn func(formName string) func(context.Context, form.Values) error) Option {
	return func(s *Server) {
		s.onFinish = fn
	}
}

// WithGatherer serves g at Config.MetricsPath.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// Server hosts forms.
type Server struct {
	config   *Config
	logger   *slog.Logger
	observer form.Observer
	onFinish func(string) func(context.Context, form.Values) error
	gatherer prometheus.Gatherer
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	forms    map[string]Form
	sessions map[string]*Session

	baseCtx    context.Context
	cancelBase context.CancelFunc
	httpServer *http.Server
}

// New creates a server. A nil config uses DefaultConfig.
func New(config *Config, opts ...Option) *Server {
	config = config.withDefaults()

	baseCtx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config: config,
		logger: slog.Default(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		forms:      make(map[string]Form),
		sessions:   make(map[string]*Session),
		baseCtx:    baseCtx,
		cancelBase: cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "server")
	return s
}

// Register adds f. Registering a name again replaces the form for new
// sessions.
func (s *Server) Register(f Form) {
	s.mu.Lock()
	s.forms[f.Name] = f
	s.mu.Unlock()
}

// Lookup returns the form named name.
func (s *Server) Lookup(name string) (Form, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.forms[name]
	return f, ok
}

// Forms returns the registered forms sorted by name.
func (s *Server) Forms() []Form {
	s.mu.RLock()
	out := make([]Form, 0, len(s.forms))
	for _, f := range s.forms {
		out = append(out, f)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Handler returns the HTTP handler with all routes mounted.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Mount("/", srv.Handler())
//	http.ListenAndServe(":3000", r)
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/forms/{form}", s.handlePage)
	r.Get("/ws/{form}", s.handleWebSocket)
	r.Get("/healthz", s.handleHealth)
	if s.gatherer != nil {
		r.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.writePage(w, http.StatusOK, indexPage(s.Forms()))
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	f, ok := s.Lookup(chi.URLParam(r, "form"))
	if !ok {
		s.notFound(w, chi.URLParam(r, "form"))
		return
	}

	sess := newSession(r.Context(), "ssr", f, nil, nil, s.logger)
	defer sess.Close()

	msg, err := sess.Render()
	if err != nil {
		s.logger.Error("render failed", "form", f.Name, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	s.writePage(w, http.StatusOK, formPage(f, msg.HTML))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	f, ok := s.Lookup(chi.URLParam(r, "form"))
	if !ok {
		s.notFound(w, chi.URLParam(r, "form"))
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	var onFinish func(context.Context, form.Values) error
	if s.onFinish != nil {
		onFinish = s.onFinish(f.Name)
	}

	sess := newSession(s.baseCtx, newSessionID(), f, s.observer, onFinish, s.logger)
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	sess.logger.Info("session started", "remote", r.RemoteAddr)

	sess.serve(s.baseCtx, conn, s.config)

	s.mu.Lock()
	delete(s.sessions, sess.ID)
	s.mu.Unlock()
	sess.logger.Info("session ended")
}

func (s *Server) notFound(w http.ResponseWriter, name string) {
	msg := errorMessage("P004", fmt.Sprintf("%q", name))
	http.Error(w, msg.Code+": "+msg.Message, http.StatusNotFound)
}

func (s *Server) writePage(w http.ResponseWriter, status int, page *vdom.VNode) {
	html, err := renderPage(page)
	if err != nil {
		s.logger.Error("page render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprint(w, html)
}

// Run listens on Config.Address and blocks until ctx is done, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes live sessions and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.cancelBase()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

func newSessionID() string {
	return uuid.NewString()
}
