package delivery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arcbothq/arcbot/internal/qq"
)

// groupStrategy answers group chat messages. Group sends cannot carry
// inline bytes, so images go local file -> hosted URL -> platform media
// storage -> media message.
type groupStrategy struct {
	api      API
	uploader Uploader
	msg      qq.Message
}

func (s *groupStrategy) Kind() Kind {
	return KindGroup
}

func (s *groupStrategy) UserID() string {
	return s.msg.SenderID()
}

func (s *groupStrategy) SendText(ctx context.Context, content string) error {
	return s.api.SendGroupText(ctx, s.msg.GroupOpenID, content, s.msg.ID)
}

func (s *groupStrategy) SendImageBytes(ctx context.Context, data []byte) error {
	url, err := s.uploader.FromBytes(ctx, data, ".png")
	if err != nil {
		return err
	}
	return s.sendHosted(ctx, url)
}

func (s *groupStrategy) SendImageFromPath(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrFileMissing, filepath.Clean(path))
	}
	url, err := s.uploader.FromPath(ctx, path)
	if err != nil {
		return err
	}
	return s.sendHosted(ctx, url)
}

func (s *groupStrategy) sendHosted(ctx context.Context, url string) error {
	file, err := s.api.UploadGroupImage(ctx, s.msg.GroupOpenID, url)
	if err != nil {
		return err
	}
	return s.api.SendGroupMedia(ctx, s.msg.GroupOpenID, file, s.msg.ID)
}

func (s *groupStrategy) Recall(ctx context.Context) error {
	return s.api.RecallGroupMessage(ctx, s.msg.GroupOpenID, s.msg.ID)
}
