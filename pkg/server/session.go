package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/formkit/pkg/features/form"
	"github.com/vango-dev/formkit/pkg/middleware"
	"github.com/vango-dev/formkit/pkg/render"
	"github.com/vango-dev/formkit/pkg/vango"
	"github.com/vango-dev/formkit/pkg/vdom"
)

// Session is one live form: a controller, the owner of its render and
// the handler registry of the last render.
//
// A Session is driven by one goroutine at a time. Handle and Render are
// serialized by an internal mutex.
type Session struct {
	ID   string
	Form Form

	ctrl     *form.Controller
	owner    *vango.Owner
	renderer *render.Renderer
	logger   *slog.Logger
	cancel   context.CancelFunc

	mu      sync.Mutex
	seq     uint64
	outcome string
	closed  bool
}

// newSession builds the controller for f and renders it once.
func newSession(ctx context.Context, id string, f Form, obs form.Observer, onFinish func(context.Context, form.Values) error, logger *slog.Logger) *Session {
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		ID:       id,
		Form:     f,
		owner:    vango.NewOwner(nil),
		renderer: render.NewRenderer(render.RendererConfig{}),
		logger:   logger.With("session", id, "form", f.Name),
		cancel:   cancel,
	}

	opts := []form.Option{
		form.WithName(f.Name),
		form.WithLogger(s.logger),
		form.WithContext(ctx),
		form.WithObserver(middleware.Chain(outcomeRecorder{s}, obs)),
	}
	if onFinish != nil {
		opts = append(opts, form.WithOnFinish(onFinish))
	}
	s.ctrl = form.New(opts...)
	return s
}

// Controller returns the session's controller.
func (s *Session) Controller() *form.Controller { return s.ctrl }

// Render renders the form and returns a render message.
func (s *Session) Render() (ServerMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderLocked()
}

func (s *Session) renderLocked() (ServerMessage, error) {
	tree := vango.Render(s.owner, s.Form.component(s.ctrl))

	s.renderer.Reset()
	html, err := s.renderer.RenderToString(tree)
	if err != nil {
		return ServerMessage{}, err
	}

	s.seq++
	msg := ServerMessage{
		Type:    MessageRender,
		Seq:     s.seq,
		HTML:    html,
		Errors:  s.ctrl.Errors(),
		Valid:   s.ctrl.IsValid(),
		Outcome: s.outcome,
	}
	s.outcome = ""
	return msg, nil
}

// Handle applies one client message and returns the reply. Protocol
// errors are returned as MessageError replies, not as errors.
func (s *Session) Handle(m ClientMessage) (reply ServerMessage, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ServerMessage{}, fmt.Errorf("server: session %s is closed", s.ID)
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("event handler panic", "panic", r, "stack", string(debug.Stack()))
			reply, err = s.errorLocked("P005", fmt.Sprint(r)), nil
		}
	}()

	switch m.Type {
	case EventInput, EventChange, EventBlur, EventSubmit, EventReset:
		handler := s.renderer.Handler(m.HID, "on"+m.Type)
		if handler == nil {
			return s.errorLocked("P003", fmt.Sprintf("no %s handler for %q", m.Type, m.HID)), nil
		}
		if err := vdom.Dispatch(handler, vdom.NewEvent(m.Type, m.Value)); err != nil {
			s.logger.Warn("event handler failed", "event", m.Type, "hid", m.HID, "error", err)
		}

	case EventSet:
		s.ctrl.SetFieldsValue(m.Values)

	default:
		return s.errorLocked("P002", fmt.Sprintf("%q", m.Type)), nil
	}

	return s.renderLocked()
}

func (s *Session) errorLocked(code, detail string) ServerMessage {
	s.seq++
	msg := errorMessage(code, detail)
	msg.Seq = s.seq
	return msg
}

// Close disposes the render owner, which unmounts every field, and
// cancels the controller context. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.owner.Dispose()
}

// serve runs the read loop on conn until the client goes away, the
// session idles out or ctx is done.
func (s *Session) serve(ctx context.Context, conn *websocket.Conn, cfg *Config) {
	defer s.Close()
	defer conn.Close()

	conn.SetReadLimit(cfg.MaxMessageSize)

	stop := context.AfterFunc(ctx, func() {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
	})
	defer stop()

	first, err := s.Render()
	if err != nil {
		s.logger.Error("initial render failed", "error", err)
		return
	}
	if err := s.write(conn, first, cfg); err != nil {
		return
	}

	for {
		conn.SetReadDeadline(time.Now().Add(cfg.SessionIdleTimeout))

		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		var m ClientMessage
		var reply ServerMessage
		if err := json.Unmarshal(data, &m); err != nil {
			s.mu.Lock()
			reply = s.errorLocked("P001", err.Error())
			s.mu.Unlock()
		} else {
			reply, err = s.Handle(m)
			if err != nil {
				s.logger.Error("event failed", "event", m.Type, "error", err)
				return
			}
		}

		if err := s.write(conn, reply, cfg); err != nil {
			return
		}
	}
}

func (s *Session) write(conn *websocket.Conn, msg ServerMessage, cfg *Config) error {
	conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
	if err := conn.WriteJSON(msg); err != nil {
		s.logger.Warn("write failed", "error", err)
		return err
	}
	return nil
}

// outcomeRecorder keeps the last submission outcome for the next reply.
type outcomeRecorder struct {
	s *Session
}

func (o outcomeRecorder) FieldRegistered(string, string, int)   {}
func (o outcomeRecorder) FieldUnregistered(string, string)      {}
func (o outcomeRecorder) FieldValidated(string, string, string) {}

func (o outcomeRecorder) SubmitStarted(ctx context.Context, _ string) context.Context {
	return ctx
}

// SubmitFinished runs inside Handle, which holds the session lock.
func (o outcomeRecorder) SubmitFinished(_ context.Context, _ string, r form.SubmitResult) {
	o.s.outcome = r.Outcome()
}
