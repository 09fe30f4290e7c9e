package authplatform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	pkgHTTP "renov-srv/pkg/http"
)

type implAuthPlatform struct {
	client pkgHTTP.IClient
	config Config
}

type sessionResponse struct {
	OpenID     string `json:"openid"`
	UnionID    string `json:"unionid"`
	SessionKey string `json:"session_key"`
	ErrCode    int    `json:"errcode"`
	ErrMsg     string `json:"errmsg"`
}

// ExchangeCode swaps a one-time login code for the platform session.
func (a *implAuthPlatform) ExchangeCode(ctx context.Context, code string) (*Session, error) {
	if code == "" {
		return nil, fmt.Errorf("authplatform: code is required")
	}

	q := url.Values{}
	q.Set("appid", a.config.AppID)
	q.Set("secret", a.config.Secret)
	q.Set("js_code", code)
	q.Set("grant_type", "authorization_code")

	body, status, err := a.client.Get(ctx, a.config.BaseURL+"/sns/jscode2session?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("authplatform: exchange request failed: %w", err)
	}
	if status >= 400 {
		return nil, fmt.Errorf("authplatform: exchange returned %d", status)
	}

	var resp sessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("authplatform: decode response: %w", err)
	}
	if resp.ErrCode != 0 {
		return nil, fmt.Errorf("authplatform: exchange rejected: %d %s", resp.ErrCode, resp.ErrMsg)
	}
	if resp.OpenID == "" || resp.SessionKey == "" {
		return nil, fmt.Errorf("authplatform: exchange response incomplete")
	}

	return &Session{
		OpenID:     resp.OpenID,
		UnionID:    resp.UnionID,
		SessionKey: resp.SessionKey,
	}, nil
}
