package delivery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arcbothq/arcbot/internal/qq"
)

// channelStrategy answers guild channel messages. The platform fetches
// channel images by URL, so local files are uploaded first.
type channelStrategy struct {
	api      API
	uploader Uploader
	msg      qq.Message
}

func (s *channelStrategy) Kind() Kind {
	return KindChannel
}

func (s *channelStrategy) UserID() string {
	return s.msg.SenderID()
}

func (s *channelStrategy) SendText(ctx context.Context, content string) error {
	return s.api.SendChannelText(ctx, s.msg.ChannelID, content, s.msg.ID)
}

func (s *channelStrategy) SendImageBytes(ctx context.Context, data []byte) error {
	url, err := s.uploader.FromBytes(ctx, data, ".png")
	if err != nil {
		return err
	}
	return s.api.SendChannelImage(ctx, s.msg.ChannelID, url, s.msg.ID)
}

func (s *channelStrategy) SendImageFromPath(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrFileMissing, filepath.Clean(path))
	}
	url, err := s.uploader.FromPath(ctx, path)
	if err != nil {
		return err
	}
	return s.api.SendChannelImage(ctx, s.msg.ChannelID, url, s.msg.ID)
}

func (s *channelStrategy) Recall(ctx context.Context) error {
	return s.api.RecallChannelMessage(ctx, s.msg.ChannelID, s.msg.ID)
}
