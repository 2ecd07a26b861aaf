package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/credor-app/credor/internal/common"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerRequestID     = "X-Request-ID"
	headerUserAgent     = "User-Agent"
	contentTypeJSON     = "application/json"
	clientUserAgent     = "credor-cli/1.0.0"
)

// doRequest performs one JSON request/response round trip.
//
// A transport-level failure (no response obtained) is returned wrapped in
// common.ErrUnavailable so callers can tell it apart from a server
// rejection, which comes back as *Error.
func (c *Client) doRequest(ctx context.Context, method, path, token string, body, result any) error {
	reqURL := strings.TrimRight(c.baseURL, "/") + path

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(headerUserAgent, clientUserAgent)
	req.Header.Set(headerRequestID, uuid.NewString())
	if token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}
	if body != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}

	return c.send(req, result)
}

// doRaw posts an opaque payload (e.g. image bytes) with an explicit content
// type. Error semantics match doRequest.
func (c *Client) doRaw(ctx context.Context, method, path, token, contentType string, payload []byte, result any) error {
	reqURL := strings.TrimRight(c.baseURL, "/") + path

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(headerUserAgent, clientUserAgent)
	req.Header.Set(headerRequestID, uuid.NewString())
	req.Header.Set(headerContentType, contentType)
	if token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}

	return c.send(req, result)
}

func (c *Client) send(req *http.Request, result any) error {
	c.log.Debug(req.Context(), "api request", "method", req.Method, "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		return parseError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

func (c *Client) get(ctx context.Context, path, token string, result any) error {
	return c.doRequest(ctx, http.MethodGet, path, token, nil, result)
}

func (c *Client) post(ctx context.Context, path, token string, body, result any) error {
	return c.doRequest(ctx, http.MethodPost, path, token, body, result)
}

func (c *Client) put(ctx context.Context, path, token string, body, result any) error {
	return c.doRequest(ctx, http.MethodPut, path, token, body, result)
}
