package livechat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

func (c *Client) sendRequest(ctx context.Context, creds Credentials, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := c.doWithRetries(ctx, creds, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if !c.isSuccessStatusCode(resp.StatusCode) {
		return nil, &FetchError{Status: resp.StatusCode, Body: string(responseBody)}
	}

	return responseBody, nil
}

func (c *Client) doWithRetries(ctx context.Context, creds Credentials, payload []byte) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.config.Policy.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Warn().
				Err(lastErr).
				Int("attempt", attempt).
				Msg("Retrying archive request after transport error")

			select {
			case <-time.After(c.config.Policy.Backoff * time.Duration(attempt)):
			case <-ctx.Done():
				return nil, &TransportError{Err: ctx.Err()}
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.APIURL, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		c.setHeaders(req, creds)

		resp, err := c.httpClient.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	return nil, &TransportError{Err: lastErr}
}

func (c *Client) setHeaders(req *http.Request, creds Credentials) {
	req.Header.Set("Authorization", creds.AuthorizationHeader())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if region, ok := creds.Region(); ok {
		req.Header.Set("X-Region", region)
	}
}

func (c *Client) isSuccessStatusCode(statusCode int) bool {
	return statusCode == http.StatusOK
}
