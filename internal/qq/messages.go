package qq

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
)

// SendGroupText posts a plain text reply into a group chat. msgID binds
// the send to the inbound message as a passive reply.
func (c *Client) SendGroupText(ctx context.Context, groupOpenID, content, msgID string) error {
	path := "/v2/groups/" + url.PathEscape(groupOpenID) + "/messages"
	return c.doJSON(ctx, http.MethodPost, path, GroupMessageRequest{
		Content: content,
		MsgType: MsgTypeText,
		MsgID:   msgID,
	}, nil)
}

// UploadGroupImage asks the platform to fetch imageURL into the group's
// media storage and returns the handle a media send references.
func (c *Client) UploadGroupImage(ctx context.Context, groupOpenID, imageURL string) (*GroupFile, error) {
	path := "/v2/groups/" + url.PathEscape(groupOpenID) + "/files"
	var out GroupFile
	err := c.doJSON(ctx, http.MethodPost, path, GroupFileRequest{
		FileType:   FileTypeImage,
		URL:        imageURL,
		SrvSendMsg: false,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.FileInfo == "" {
		return nil, fmt.Errorf("%w: upload response missing file_info", ErrAPIRequest)
	}
	return &out, nil
}

// SendGroupMedia posts previously uploaded media into a group chat.
// The platform requires non-empty content on media sends, hence the
// single space.
func (c *Client) SendGroupMedia(ctx context.Context, groupOpenID string, file *GroupFile, msgID string) error {
	path := "/v2/groups/" + url.PathEscape(groupOpenID) + "/messages"
	return c.doJSON(ctx, http.MethodPost, path, GroupMessageRequest{
		Content: " ",
		MsgType: MsgTypeMedia,
		Media:   &MediaRef{FileInfo: file.FileInfo},
		MsgID:   msgID,
	}, nil)
}

// SendChannelText posts a text reply into a guild channel.
func (c *Client) SendChannelText(ctx context.Context, channelID, content, msgID string) error {
	path := "/channels/" + url.PathEscape(channelID) + "/messages"
	return c.doJSON(ctx, http.MethodPost, path, ChannelMessageRequest{
		Content: content,
		MsgID:   msgID,
	}, nil)
}

// SendChannelImage posts an image into a guild channel by URL; the
// platform fetches the image server side.
func (c *Client) SendChannelImage(ctx context.Context, channelID, imageURL, msgID string) error {
	path := "/channels/" + url.PathEscape(channelID) + "/messages"
	return c.doJSON(ctx, http.MethodPost, path, ChannelMessageRequest{
		Image: imageURL,
		MsgID: msgID,
	}, nil)
}

// SendDirectText posts a text reply into an existing direct message
// session, addressed by the session's guild id.
func (c *Client) SendDirectText(ctx context.Context, guildID, content, msgID string) error {
	path := "/dms/" + url.PathEscape(guildID) + "/messages"
	return c.doJSON(ctx, http.MethodPost, path, DirectMessageRequest{
		Content: content,
		MsgID:   msgID,
	}, nil)
}

// SendDirectImage posts raw image bytes into a direct message session
// as a multipart upload. Direct chats are the one surface that accepts
// inline binary media, so no hosting URL is involved.
func (c *Client) SendDirectImage(ctx context.Context, guildID string, image []byte, msgID string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if msgID != "" {
		if err := w.WriteField("msg_id", msgID); err != nil {
			return fmt.Errorf("%w: build form: %v", ErrAPIRequest, err)
		}
	}
	fw, err := w.CreateFormFile("file_image", "image.png")
	if err != nil {
		return fmt.Errorf("%w: build form: %v", ErrAPIRequest, err)
	}
	if _, err := fw.Write(image); err != nil {
		return fmt.Errorf("%w: build form: %v", ErrAPIRequest, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: build form: %v", ErrAPIRequest, err)
	}

	path := "/dms/" + url.PathEscape(guildID) + "/messages"
	return c.do(ctx, http.MethodPost, path, w.FormDataContentType(), &buf, nil)
}

// RecallGroupMessage deletes a previously sent group message.
func (c *Client) RecallGroupMessage(ctx context.Context, groupOpenID, messageID string) error {
	path := "/v2/groups/" + url.PathEscape(groupOpenID) + "/messages/" + url.PathEscape(messageID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// RecallChannelMessage deletes a previously sent channel message.
func (c *Client) RecallChannelMessage(ctx context.Context, channelID, messageID string) error {
	path := "/channels/" + url.PathEscape(channelID) + "/messages/" + url.PathEscape(messageID) + "?hidetip=true"
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// RecallDirectMessage deletes a previously sent direct message.
func (c *Client) RecallDirectMessage(ctx context.Context, guildID, messageID string) error {
	path := "/dms/" + url.PathEscape(guildID) + "/messages/" + url.PathEscape(messageID) + "?hidetip=true"
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}
