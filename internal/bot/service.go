package bot

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/arcbothq/arcbot/internal/command"
	"github.com/arcbothq/arcbot/internal/delivery"
	"github.com/arcbothq/arcbot/internal/qq"
	"github.com/arcbothq/arcbot/internal/qq/gateway"
)

// mentionPattern matches <@id> and <@!id> user mentions, which channel
// messages carry in front of the command text.
var mentionPattern = regexp.MustCompile(`<@!?\d+>`)

// Service turns gateway events into command dispatches. For every
// inbound message it builds the delivery facade matching the message's
// origin and hands both to the router.
type Service struct {
	factory *delivery.Factory
	router  *command.Router
	log     *slog.Logger
}

// NewService creates the bot service.
func NewService(factory *delivery.Factory, router *command.Router, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		factory: factory,
		router:  router,
		log:     logger.With(slog.String("component", "bot")),
	}
}

// Attach registers the service callbacks on a gateway.
func (s *Service) Attach(gw *gateway.Gateway) {
	gw.OnReady(s.HandleReady)
	gw.OnMessage(s.HandleMessage)
}

// HandleReady logs the bot identity once a session is established.
func (s *Service) HandleReady(user qq.User) {
	s.log.Info("bot online",
		slog.String("bot_id", user.ID),
		slog.String("username", user.Username))
}

// HandleMessage dispatches one inbound message. Dispatch runs detached
// so a slow upload does not stall the gateway read loop.
func (s *Service) HandleMessage(event string, msg qq.Message) {
	go s.handle(context.Background(), event, msg)
}

func (s *Service) handle(ctx context.Context, event string, msg qq.Message) {
	if event == gateway.EventDirectMessage {
		// Direct payloads reuse the channel envelope. The channel id
		// they carry must not route replies to the channel strategy.
		msg.ChannelID = ""
	}

	content := normalizeContent(msg.Content)
	if content == "" {
		return
	}

	m, err := s.factory.ForMessage(msg)
	if err != nil {
		s.log.Warn("message not routable",
			slog.String("event", event),
			slog.String("message_id", msg.ID),
			slog.Any("error", err))
		return
	}
	s.router.Dispatch(ctx, m, content)
}

// normalizeContent strips bot mentions and the leading slash, leaving
// the bare command line.
func normalizeContent(content string) string {
	content = mentionPattern.ReplaceAllString(content, "")
	content = strings.TrimSpace(content)
	return strings.TrimPrefix(content, "/")
}
