// Package gateway maintains the websocket session that feeds the bot
// its inbound message events. It identifies with the configured
// intents, answers heartbeats, resumes after drops, and hands decoded
// message events to a single registered handler.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/arcbothq/arcbot/internal/qq"
)

const (
	handshakeTimeout = 10 * time.Second
	writeTimeout     = 10 * time.Second
	initialReadWait  = 60 * time.Second
	initialBackoff   = time.Second
	maxBackoff       = 60 * time.Second
)

// API is the slice of the platform client the gateway needs: where to
// connect and what credential to identify with.
type API interface {
	Gateway(ctx context.Context) (string, error)
	AccessToken(ctx context.Context) (string, error)
}

// MessageHandler receives one decoded message event. event is the
// dispatch type (EventGroupAtMessage, EventAtMessage, EventDirectMessage).
type MessageHandler func(event string, msg qq.Message)

// ReadyHandler receives the bot identity once a session becomes ready.
type ReadyHandler func(user qq.User)

type Gateway struct {
	api     API
	intents int
	log     *slog.Logger

	onMessage MessageHandler
	onReady   ReadyHandler

	writeMu   sync.Mutex
	lastSeq   atomic.Int64
	online    atomic.Bool
	sessionID string
}

func New(client API, intents int, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	if intents == 0 {
		intents = DefaultIntents()
	}
	return &Gateway{
		api:     client,
		intents: intents,
		log:     logger.With(slog.String("component", "gateway")),
	}
}

// OnMessage registers the message event handler. Must be called before
// Run.
func (g *Gateway) OnMessage(h MessageHandler) {
	g.onMessage = h
}

// OnReady registers the ready handler. Must be called before Run.
func (g *Gateway) OnReady(h ReadyHandler) {
	g.onReady = h
}

// Online reports whether the current session has reached ready and has
// not dropped since.
func (g *Gateway) Online() bool {
	return g.online.Load()
}

// Run connects and keeps the session alive until ctx is canceled,
// reconnecting with exponential backoff after every drop. A session
// that reaches ready resets the backoff.
func (g *Gateway) Run(ctx context.Context) error {
	backoff := initialBackoff
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		ready, err := g.runSession(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if ready {
			backoff = initialBackoff
		}
		g.log.Warn("gateway session ended",
			slog.Any("error", err),
			slog.Duration("retry_in", backoff))

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		if backoff < maxBackoff {
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}
	}
}

// runSession drives one websocket connection from dial to drop. It
// reports whether the session reached ready.
func (g *Gateway) runSession(ctx context.Context) (bool, error) {
	defer g.online.Store(false)

	wsURL, err := g.api.Gateway(ctx)
	if err != nil {
		return false, err
	}

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return false, fmt.Errorf("dial gateway: %w", err)
	}
	defer conn.Close()

	// Closing the connection is the only way to unblock a pending read
	// when ctx is canceled.
	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "shutdown"),
				time.Now().Add(2*time.Second))
			_ = conn.Close()
		case <-stop:
		}
	}()
	defer close(stop)

	hbStop := make(chan struct{})
	defer close(hbStop)
	heartbeatStarted := false

	ready := false
	readWait := initialReadWait

	for {
		_ = conn.SetReadDeadline(time.Now().Add(readWait))
		_, data, err := conn.ReadMessage()
		if err != nil {
			return ready, err
		}

		var p payload
		if err := json.Unmarshal(data, &p); err != nil {
			g.log.Warn("undecodable gateway payload", slog.Any("error", err))
			continue
		}
		if p.Seq > 0 {
			g.lastSeq.Store(p.Seq)
		}

		switch p.Op {
		case opHello:
			var hello helloData
			_ = json.Unmarshal(p.Data, &hello)
			interval := time.Duration(hello.HeartbeatInterval) * time.Millisecond
			if interval <= 0 {
				interval = 45 * time.Second
			}
			readWait = interval + 30*time.Second

			if err := g.identifyOrResume(ctx, conn); err != nil {
				return ready, err
			}
			if !heartbeatStarted {
				heartbeatStarted = true
				go g.heartbeatLoop(conn, interval, hbStop)
			}

		case opHeartbeatACK:
			// Liveness is enforced by the read deadline.

		case opHeartbeat:
			// Server requested an immediate heartbeat.
			if err := g.sendHeartbeat(conn); err != nil {
				return ready, err
			}

		case opReconnect:
			return ready, errors.New("server requested reconnect")

		case opInvalidSession:
			g.sessionID = ""
			return ready, errors.New("session invalidated")

		case opDispatch:
			if g.handleDispatch(p) {
				ready = true
			}
		}
	}
}

func (g *Gateway) identifyOrResume(ctx context.Context, conn *websocket.Conn) error {
	token, err := g.api.AccessToken(ctx)
	if err != nil {
		return err
	}
	botToken := "QQBot " + token

	if g.sessionID != "" {
		g.log.Info("resuming gateway session", slog.String("session_id", g.sessionID))
		return g.send(conn, outPayload{Op: opResume, Data: resumeData{
			Token:     botToken,
			SessionID: g.sessionID,
			Seq:       g.lastSeq.Load(),
		}})
	}

	g.log.Info("identifying gateway session", slog.Int("intents", g.intents))
	return g.send(conn, outPayload{Op: opIdentify, Data: identifyData{
		Token:      botToken,
		Intents:    g.intents,
		Shard:      []int{0, 1},
		Properties: map[string]string{},
	}})
}

// handleDispatch routes one dispatch event and reports whether it was
// a session-established event.
func (g *Gateway) handleDispatch(p payload) bool {
	switch p.Type {
	case EventReady:
		var ready readyData
		if err := json.Unmarshal(p.Data, &ready); err != nil {
			g.log.Warn("undecodable ready payload", slog.Any("error", err))
			return false
		}
		g.sessionID = ready.SessionID
		g.online.Store(true)
		g.log.Info("gateway ready",
			slog.String("session_id", ready.SessionID),
			slog.String("bot_id", ready.User.ID),
			slog.String("bot_username", ready.User.Username))
		if g.onReady != nil {
			g.onReady(qq.User{
				ID:       ready.User.ID,
				Username: ready.User.Username,
				Bot:      ready.User.Bot,
			})
		}
		return true

	case EventResumed:
		g.online.Store(true)
		g.log.Info("gateway session resumed", slog.String("session_id", g.sessionID))
		return true

	case EventGroupAtMessage, EventAtMessage, EventDirectMessage:
		var msg qq.Message
		if err := json.Unmarshal(p.Data, &msg); err != nil {
			g.log.Warn("undecodable message event",
				slog.String("event", p.Type),
				slog.Any("error", err))
			return false
		}
		if g.onMessage != nil {
			g.onMessage(p.Type, msg)
		}
		return false

	default:
		g.log.Debug("ignoring gateway event", slog.String("event", p.Type))
		return false
	}
}

func (g *Gateway) heartbeatLoop(conn *websocket.Conn, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := g.sendHeartbeat(conn); err != nil {
				g.log.Warn("heartbeat failed", slog.Any("error", err))
				return
			}
		}
	}
}

func (g *Gateway) sendHeartbeat(conn *websocket.Conn) error {
	var seq any
	if s := g.lastSeq.Load(); s > 0 {
		seq = s
	}
	return g.send(conn, outPayload{Op: opHeartbeat, Data: seq})
}

func (g *Gateway) send(conn *websocket.Conn, v any) error {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(v)
}
