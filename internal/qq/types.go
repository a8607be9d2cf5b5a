package qq

// Message types accepted by the open platform send endpoints.
const (
	MsgTypeText     = 0
	MsgTypeMarkdown = 2
	MsgTypeArk      = 3
	MsgTypeEmbed    = 4
	MsgTypeMedia    = 7
)

// File types for the rich media upload endpoint.
const (
	FileTypeImage = 1
	FileTypeVideo = 2
	FileTypeAudio = 3
)

// Author identifies the sender of an inbound message. Guild surfaces
// fill ID; group chats use the member open id instead.
type Author struct {
	ID           string `json:"id"`
	MemberOpenID string `json:"member_openid"`
	UserOpenID   string `json:"user_openid"`
	Username     string `json:"username"`
	Bot          bool   `json:"bot"`
}

// Message is the inbound envelope shared by the group, channel and
// direct message events. Which addressing fields are populated depends
// on the surface the message arrived from, and downstream delivery
// selection keys off exactly that.
type Message struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	ChannelID   string `json:"channel_id"`
	GuildID     string `json:"guild_id"`
	GroupOpenID string `json:"group_openid"`
	Author      Author `json:"author"`
	Timestamp   string `json:"timestamp"`
}

// SenderID returns the best available sender identifier for the
// message's surface.
func (m Message) SenderID() string {
	if m.Author.ID != "" {
		return m.Author.ID
	}
	if m.Author.MemberOpenID != "" {
		return m.Author.MemberOpenID
	}
	return m.Author.UserOpenID
}

// User is the bot's own identity as reported by the gateway.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bot      bool   `json:"bot"`
}

// MediaRef references an uploaded rich media file in a send request.
type MediaRef struct {
	FileInfo string `json:"file_info"`
}

// GroupMessageRequest is the body for group message sends.
type GroupMessageRequest struct {
	Content string    `json:"content"`
	MsgType int       `json:"msg_type"`
	Media   *MediaRef `json:"media,omitempty"`
	MsgID   string    `json:"msg_id,omitempty"`
}

// GroupFileRequest asks the platform to fetch a URL into group media
// storage. SrvSendMsg false means the upload itself does not post a
// message; the returned file info is referenced by a later send.
type GroupFileRequest struct {
	FileType   int    `json:"file_type"`
	URL        string `json:"url"`
	SrvSendMsg bool   `json:"srv_send_msg"`
}

// GroupFile is the platform's handle for uploaded group media.
type GroupFile struct {
	FileUUID string `json:"file_uuid"`
	FileInfo string `json:"file_info"`
	TTL      int    `json:"ttl"`
}

// ChannelMessageRequest is the body for guild channel sends. Image is a
// plain URL; the platform fetches it server side.
type ChannelMessageRequest struct {
	Content string `json:"content,omitempty"`
	Image   string `json:"image,omitempty"`
	MsgID   string `json:"msg_id,omitempty"`
}

// DirectMessageRequest is the JSON body for direct message text sends.
// Image bytes go through the multipart form path instead.
type DirectMessageRequest struct {
	Content string `json:"content,omitempty"`
	MsgID   string `json:"msg_id,omitempty"`
}
