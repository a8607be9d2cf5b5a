package gateway

import "encoding/json"

// Gateway opcodes.
const (
	opDispatch       = 0
	opHeartbeat      = 1
	opIdentify       = 2
	opResume         = 6
	opReconnect      = 7
	opInvalidSession = 9
	opHello          = 10
	opHeartbeatACK   = 11
)

// Intent bits select which event families the session subscribes to.
const (
	IntentPublicGuildMessages = 1 << 30
	IntentDirectMessage       = 1 << 12
	IntentPublicMessages      = 1 << 25
)

// DefaultIntents subscribes to the three message surfaces the bot
// serves: channel at-messages, guild direct messages and group
// at-messages.
func DefaultIntents() int {
	return IntentPublicGuildMessages | IntentDirectMessage | IntentPublicMessages
}

// Dispatch event types.
const (
	EventReady          = "READY"
	EventResumed        = "RESUMED"
	EventGroupAtMessage = "GROUP_AT_MESSAGE_CREATE"
	EventAtMessage      = "AT_MESSAGE_CREATE"
	EventDirectMessage  = "DIRECT_MESSAGE_CREATE"
)

// payload is the frame shape shared by every gateway message.
type payload struct {
	Op   int             `json:"op"`
	Seq  int64           `json:"s,omitempty"`
	Type string          `json:"t,omitempty"`
	Data json.RawMessage `json:"d,omitempty"`
}

type outPayload struct {
	Op   int `json:"op"`
	Data any `json:"d"`
}

type helloData struct {
	HeartbeatInterval int `json:"heartbeat_interval"`
}

type identifyData struct {
	Token      string            `json:"token"`
	Intents    int               `json:"intents"`
	Shard      []int             `json:"shard"`
	Properties map[string]string `json:"properties"`
}

type resumeData struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Seq       int64  `json:"seq"`
}

type readyData struct {
	Version   int    `json:"version"`
	SessionID string `json:"session_id"`
	User      struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Bot      bool   `json:"bot"`
	} `json:"user"`
}
