// Package idp queries the identity provider's OIDC userinfo endpoint,
// resolving opaque access tokens into principals when local token
// verification is not possible.
package idp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/drinktab/drinktab/internal/domain/model"
)

// ErrTokenRejected indicates the identity provider refused the credential.
var ErrTokenRejected = errors.New("token rejected by identity provider")

// Client resolves bearer tokens against the userinfo endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// userinfo mirrors the JSON payload of the OIDC userinfo endpoint.
type userinfo struct {
	Subject           string   `json:"sub"`
	PreferredUsername string   `json:"preferred_username"`
	Groups            []string `json:"groups"`
}

// NewClient creates a userinfo client with a default timeout.
func NewClient(endpoint string, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse userinfo url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("userinfo url must be absolute")
	}
	return &Client{
		endpoint: parsed.String(),
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Resolve exchanges the bearer token for the identity behind it.
func (c *Client) Resolve(ctx context.Context, token string) (*model.Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data userinfo
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		name := data.PreferredUsername
		if name == "" {
			name = data.Subject
		}
		if name == "" {
			return nil, ErrTokenRejected
		}
		return &model.Principal{Name: name, Groups: data.Groups}, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrTokenRejected
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("userinfo request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("userinfo error: %s", resp.Status)
	}
}
