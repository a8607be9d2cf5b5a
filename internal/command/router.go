// Package command routes inbound text to registered handlers. The
// first whitespace-delimited token names the command; the remainder is
// handed to the handler untouched.
package command

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
)

// retryReply is the catch-all answer when a handler fails in a way it
// did not convert to user-facing text itself.
const retryReply = "❌ 查询失败，请稍后重试"

// Messenger is the reply surface a handler answers through. Operations
// report success as a boolean; delivery problems never surface as
// errors here.
type Messenger interface {
	UserID() string
	SendText(ctx context.Context, content string) bool
	SendImage(ctx context.Context, data []byte) bool
	SendImageFromPath(ctx context.Context, path string) bool
	Recall(ctx context.Context) bool
}

// HandlerFunc runs one command. args is the text after the command
// token, verbatim. A returned error means the handler hit something it
// could not turn into a reply; the router answers with a generic retry
// message.
type HandlerFunc func(ctx context.Context, m Messenger, args string) error

// Registration pairs a command name with its handler and the
// description shown in help listings.
type Registration struct {
	Name        string
	Description string
	Handler     HandlerFunc
}

// Router holds the command registry. Registration happens during
// startup; Dispatch may then be called concurrently.
type Router struct {
	log      *slog.Logger
	handlers map[string]Registration
	order    []string
}

func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		log:      logger.With(slog.String("component", "command")),
		handlers: make(map[string]Registration),
	}
}

// Register binds a command name to a handler. Names are matched
// case-sensitively; registering the same name twice is a bug.
func (r *Router) Register(name, description string, h HandlerFunc) error {
	if name == "" {
		return fmt.Errorf("command name is required")
	}
	if h == nil {
		return fmt.Errorf("command %q has no handler", name)
	}
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("command %q already registered", name)
	}
	r.handlers[name] = Registration{Name: name, Description: description, Handler: h}
	r.order = append(r.order, name)
	return nil
}

// List returns every registration in registration order.
func (r *Router) List() []Registration {
	out := make([]Registration, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.handlers[name])
	}
	return out
}

// Dispatch matches content against the registry and runs the handler.
// It reports whether a handler ran; unknown commands are ignored here
// so other layers can decide on any fallback UX.
func (r *Router) Dispatch(ctx context.Context, m Messenger, content string) (handled bool) {
	name, args := Split(content)
	if name == "" {
		return false
	}
	reg, ok := r.handlers[name]
	if !ok {
		r.log.Debug("unknown command", slog.String("command", name))
		return false
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("command panicked",
				slog.String("command", name),
				slog.Any("panic", rec))
			m.SendText(ctx, retryReply)
			handled = true
		}
	}()

	if err := reg.Handler(ctx, m, args); err != nil {
		r.log.Error("command failed",
			slog.String("command", name),
			slog.String("user", m.UserID()),
			slog.Any("error", err))
		m.SendText(ctx, retryReply)
	}
	return true
}

// Split breaks a line into the command token and the remainder. The
// separator is the first whitespace run; the remainder keeps any
// further internal whitespace as-is.
func Split(content string) (name, args string) {
	rest := strings.TrimLeftFunc(content, unicode.IsSpace)
	if rest == "" {
		return "", ""
	}
	if idx := strings.IndexFunc(rest, unicode.IsSpace); idx >= 0 {
		return rest[:idx], strings.TrimLeftFunc(rest[idx:], unicode.IsSpace)
	}
	return rest, ""
}
