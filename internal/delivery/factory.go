package delivery

import (
	"log/slog"

	"github.com/arcbothq/arcbot/internal/qq"
)

// Factory builds per-message facades over the shared platform client
// and uploader.
type Factory struct {
	api      API
	uploader Uploader
	log      *slog.Logger
}

func NewFactory(api API, uploader Uploader, logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{
		api:      api,
		uploader: uploader,
		log:      logger.With(slog.String("component", "delivery")),
	}
}

// ForMessage selects the strategy for msg and wraps it in a facade.
// Messages no strategy can answer yield ErrNoStrategy; there is no
// facade with a missing strategy.
func (f *Factory) ForMessage(msg qq.Message) (*Facade, error) {
	kind, err := Select(msg)
	if err != nil {
		return nil, err
	}

	var strategy Strategy
	switch kind {
	case KindGroup:
		strategy = &groupStrategy{api: f.api, uploader: f.uploader, msg: msg}
	case KindChannel:
		strategy = &channelStrategy{api: f.api, uploader: f.uploader, msg: msg}
	case KindDirect:
		strategy = &directStrategy{api: f.api, msg: msg}
	}
	return newFacade(strategy, f.log), nil
}
