// Package delivery sends replies back to the surface a message came
// from. Each surface has its own strategy: group and channel sends
// reference images by hosted URL, direct sends push raw bytes. The
// strategy for a message is selected once, from its addressing fields
// alone, and stays fixed for the whole handling.
package delivery

import (
	"context"

	"github.com/arcbothq/arcbot/internal/qq"
)

// Kind names one of the closed set of delivery strategies.
type Kind string

const (
	KindGroup   Kind = "group"
	KindChannel Kind = "channel"
	KindDirect  Kind = "direct"
)

// API is the slice of the platform client the strategies call.
type API interface {
	SendGroupText(ctx context.Context, groupOpenID, content, msgID string) error
	UploadGroupImage(ctx context.Context, groupOpenID, imageURL string) (*qq.GroupFile, error)
	SendGroupMedia(ctx context.Context, groupOpenID string, file *qq.GroupFile, msgID string) error
	RecallGroupMessage(ctx context.Context, groupOpenID, messageID string) error

	SendChannelText(ctx context.Context, channelID, content, msgID string) error
	SendChannelImage(ctx context.Context, channelID, imageURL, msgID string) error
	RecallChannelMessage(ctx context.Context, channelID, messageID string) error

	SendDirectText(ctx context.Context, guildID, content, msgID string) error
	SendDirectImage(ctx context.Context, guildID string, image []byte, msgID string) error
	RecallDirectMessage(ctx context.Context, guildID, messageID string) error
}

// Uploader converts local images into hosted URLs for the surfaces
// that cannot take inline bytes.
type Uploader interface {
	FromPath(ctx context.Context, path string) (string, error)
	FromBytes(ctx context.Context, data []byte, extHint string) (string, error)
}

// Strategy is one surface's send/recall capability set, bound to a
// single inbound message.
type Strategy interface {
	Kind() Kind
	UserID() string
	SendText(ctx context.Context, content string) error
	SendImageBytes(ctx context.Context, data []byte) error
	SendImageFromPath(ctx context.Context, path string) error
	Recall(ctx context.Context) error
}

// Select classifies a message by its addressing fields: a group open id
// selects the group strategy, otherwise a channel id selects the
// channel strategy, otherwise a guild id selects the direct strategy.
// A message carrying none of the three cannot be answered.
func Select(msg qq.Message) (Kind, error) {
	switch {
	case msg.GroupOpenID != "":
		return KindGroup, nil
	case msg.ChannelID != "":
		return KindChannel, nil
	case msg.GuildID != "":
		return KindDirect, nil
	default:
		return "", ErrNoStrategy
	}
}
