package delivery

import (
	"context"
	"log/slog"

	"github.com/arcbothq/arcbot/internal/media"
)

// Facade is the reply surface handed to command handlers. Every
// operation funnels failures into a boolean: handlers never see
// platform errors, they see "did the send land".
type Facade struct {
	strategy Strategy
	log      *slog.Logger
}

func newFacade(strategy Strategy, logger *slog.Logger) *Facade {
	return &Facade{
		strategy: strategy,
		log:      logger.With(slog.String("strategy", string(strategy.Kind()))),
	}
}

// Kind reports which strategy answers this message.
func (f *Facade) Kind() Kind {
	return f.strategy.Kind()
}

// UserID returns the sender identifier of the message being answered.
func (f *Facade) UserID() string {
	return f.strategy.UserID()
}

// SendText delivers a text reply.
func (f *Facade) SendText(ctx context.Context, content string) bool {
	if err := f.strategy.SendText(ctx, content); err != nil {
		f.log.Warn("text send failed", slog.Any("error", err))
		return false
	}
	return true
}

// SendImage normalizes image bytes into a platform-accepted format and
// delivers them. Normalization is best effort: bytes that cannot be
// decoded are sent as-is.
func (f *Facade) SendImage(ctx context.Context, data []byte) bool {
	normalized, err := media.EnsureFormat(data)
	if err != nil {
		f.log.Warn("image normalization skipped", slog.Any("error", err))
	}
	if err := f.strategy.SendImageBytes(ctx, normalized); err != nil {
		f.log.Warn("image send failed", slog.Any("error", err))
		return false
	}
	return true
}

// SendImageFromPath delivers the image file at path, uploading it
// first on surfaces that require a hosted URL.
func (f *Facade) SendImageFromPath(ctx context.Context, path string) bool {
	if err := f.strategy.SendImageFromPath(ctx, path); err != nil {
		f.log.Warn("image send failed",
			slog.String("path", path),
			slog.Any("error", err))
		return false
	}
	return true
}

// Recall deletes the message this facade is bound to.
func (f *Facade) Recall(ctx context.Context) bool {
	if err := f.strategy.Recall(ctx); err != nil {
		f.log.Warn("recall failed", slog.Any("error", err))
		return false
	}
	return true
}
