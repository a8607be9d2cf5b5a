package qq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/arcbothq/arcbot/internal/config"
)

const defaultTokenURL = "https://bots.qq.com/app/getAppAccessToken"

// refreshMargin renews the token this long before it actually expires,
// so in-flight requests never race the expiry.
const refreshMargin = 60 * time.Second

type tokenRequest struct {
	AppID        string `json:"appId"`
	ClientSecret string `json:"clientSecret"`
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   json.Number `json:"expires_in"`
}

// TokenSource issues and caches the app access token. Token is safe for
// concurrent use; at most one refresh runs at a time.
type TokenSource struct {
	appID      string
	secret     string
	endpoint   string
	httpClient *http.Client
	log        *slog.Logger

	mu     sync.Mutex
	token  string
	expiry time.Time
}

func NewTokenSource(cfg config.QQConfig, logger *slog.Logger) *TokenSource {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultAPITimeoutSec) * time.Second
	}
	return &TokenSource{
		appID:      cfg.AppID,
		secret:     cfg.AppSecret,
		endpoint:   defaultTokenURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With(slog.String("component", "qq.token")),
	}
}

// Token returns a valid access token, refreshing it when the cached one
// is missing or close to expiry.
func (t *TokenSource) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token != "" && time.Until(t.expiry) > refreshMargin {
		return t.token, nil
	}
	if err := t.refreshLocked(ctx); err != nil {
		return "", err
	}
	return t.token, nil
}

func (t *TokenSource) refreshLocked(ctx context.Context) error {
	body, err := json.Marshal(tokenRequest{AppID: t.appID, ClientSecret: t.secret})
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", ErrTokenRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrTokenRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTokenRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrTokenRequest, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d: %s", ErrTokenRequest, resp.StatusCode, data)
	}

	var out tokenResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrTokenRequest, err)
	}
	if out.AccessToken == "" {
		return fmt.Errorf("%w: response missing access_token", ErrTokenRequest)
	}

	seconds, err := out.ExpiresIn.Int64()
	if err != nil || seconds <= 0 {
		seconds = 7200
	}

	t.token = out.AccessToken
	t.expiry = time.Now().Add(time.Duration(seconds) * time.Second)
	t.log.Debug("access token refreshed", slog.Int64("expires_in", seconds))
	return nil
}
