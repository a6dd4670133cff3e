package livechat

import (
	"net/http"
)

const (
	DefaultAPIURL   = "https://api.livechatinc.com/v3.5/agent/action/list_archives"
	DefaultPageSize = 100
)

type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient builds an archive client. The policy timeout is applied to the
// given http.Client so every page fetch is bounded.
func NewClient(cfg Config, httpClient http.Client) Client {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Policy.Timeout > 0 {
		httpClient.Timeout = cfg.Policy.Timeout
	}

	return Client{
		config:     cfg,
		httpClient: &httpClient,
	}
}

func (c *Client) PageSize() int {
	return c.config.PageSize
}
