// Package qq speaks to the QQ open platform: access token issuance,
// the REST message endpoints, and the gateway bootstrap. Callers hold
// one Client per bot app; it is safe for concurrent use.
package qq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/arcbothq/arcbot/internal/config"
)

type tokenProvider interface {
	Token(ctx context.Context) (string, error)
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Client struct {
	base       string
	appID      string
	tokens     tokenProvider
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(cfg config.QQConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultAPITimeoutSec) * time.Second
	}
	return &Client{
		base:       cfg.BaseURL(),
		appID:      cfg.AppID,
		tokens:     NewTokenSource(cfg, logger),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With(slog.String("component", "qq")),
	}
}

// Gateway returns the websocket URL the bot should connect to.
func (c *Client) Gateway(ctx context.Context) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/gateway", nil, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", fmt.Errorf("%w: gateway response missing url", ErrAPIRequest)
	}
	return out.URL, nil
}

// AccessToken exposes the current token for the gateway identify
// handshake, which authenticates with the same credential as REST.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	return c.tokens.Token(ctx)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode body: %v", ErrAPIRequest, err)
		}
		reader = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, "application/json", reader, out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrAPIRequest, err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "QQBot "+token)
	req.Header.Set("X-Union-Appid", c.appID)
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrAPIRequest, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrAPIRequest, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%w: %s %s: status %d code %d: %s",
				ErrAPIRequest, method, path, resp.StatusCode, apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("%w: %s %s: status %d", ErrAPIRequest, method, path, resp.StatusCode)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrAPIRequest, err)
		}
	}
	return nil
}
