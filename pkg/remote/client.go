package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"amana-travel/pkg/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 8 << 20

// Client talks to the agency package API. Every failure comes back as a
// *utils.AppError so callers never see raw HTTP status codes.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(config utils.RemoteConfig, log *zap.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With(zap.String("client", "remote")),
	}
}

// Get decodes GET path?query into out. token may be empty.
func (c *Client) Get(ctx context.Context, path string, query url.Values, token string, out any) error {
	return c.do(ctx, http.MethodGet, path, query, token, nil, out)
}

// Post sends body as JSON and decodes the reply into out (nil to discard).
func (c *Client) Post(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, token, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return utils.NewInternalError(fmt.Errorf("encode %s %s body: %w", method, path, err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return utils.NewInternalError(fmt.Errorf("build %s %s request: %w", method, path, err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("Remote request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return utils.NewNetworkError(fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return utils.NewNetworkError(fmt.Errorf("read %s %s response: %w", method, path, err))
	}

	c.log.Debug("Remote request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err := decodeBody(raw, out); err != nil {
		return utils.NewRemoteError("Unexpected response from the booking server",
			fmt.Errorf("decode %s %s response: %w", method, path, err))
	}
	return nil
}

type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// decodeBody accepts both {success, message, data} envelopes and bare bodies.
func decodeBody(raw []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(raw, out)
}

func statusError(status int, raw []byte) error {
	var env envelope
	_ = json.Unmarshal(raw, &env)

	message := strings.TrimSpace(env.Message)
	if message == "" {
		message = http.StatusText(status)
	}

	cause := fmt.Errorf("remote status %d", status)

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &utils.AppError{Kind: utils.KindUnauthenticated, Message: message, Err: cause}
	case http.StatusNotFound:
		return &utils.AppError{Kind: utils.KindNotFound, Message: message, Err: cause}
	default:
		return utils.NewRemoteError(message, cause)
	}
}
