package delivery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arcbothq/arcbot/internal/qq"
)

// directStrategy answers direct messages. Direct chats accept inline
// binary media, so images are sent as raw bytes with no upload
// indirection.
type directStrategy struct {
	api API
	msg qq.Message
}

func (s *directStrategy) Kind() Kind {
	return KindDirect
}

func (s *directStrategy) UserID() string {
	return s.msg.SenderID()
}

func (s *directStrategy) SendText(ctx context.Context, content string) error {
	return s.api.SendDirectText(ctx, s.msg.GuildID, content, s.msg.ID)
}

func (s *directStrategy) SendImageBytes(ctx context.Context, data []byte) error {
	return s.api.SendDirectImage(ctx, s.msg.GuildID, data, s.msg.ID)
}

func (s *directStrategy) SendImageFromPath(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileMissing, filepath.Clean(path))
		}
		return err
	}
	return s.api.SendDirectImage(ctx, s.msg.GuildID, data, s.msg.ID)
}

func (s *directStrategy) Recall(ctx context.Context) error {
	return s.api.RecallDirectMessage(ctx, s.msg.GuildID, s.msg.ID)
}
