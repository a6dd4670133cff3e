package livechat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ArchiveLister is the single remote operation the pager depends on.
type ArchiveLister interface {
	ListArchives(ctx context.Context, creds Credentials, req ListArchivesRequest) (*ListArchivesResponse, error)
}

func (c *Client) ListArchives(ctx context.Context, creds Credentials, req ListArchivesRequest) (*ListArchivesResponse, error) {
	log.Debug().
		Str("from", req.Filters.From).
		Str("to", req.Filters.To).
		Str("page_id", req.PageID).
		Msg("Listing archived chats")

	respBody, err := c.sendRequest(ctx, creds, req)
	if err != nil {
		return nil, err
	}

	var response ListArchivesResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &response, nil
}
