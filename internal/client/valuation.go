package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"goodwill-valuation/internal/dto"
	"goodwill-valuation/pkg/httpclient"
)

// APIError is a non-2xx answer from the valuation API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("valuation api: %d %s", e.StatusCode, e.Message)
}

// ValuationClient talks to a running valuation API.
type ValuationClient struct {
	http     httpclient.HTTPClient
	basePath string
}

func NewValuationClient(http httpclient.HTTPClient) *ValuationClient {
	return &ValuationClient{
		http:     http,
		basePath: "/api/v1/valuations",
	}
}

func (c *ValuationClient) List(ctx context.Context) ([]dto.ValuationResponse, error) {
	var out []dto.ValuationResponse
	resp, err := c.http.Get(ctx, c.basePath, nil, nil, &out)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ValuationClient) Get(ctx context.Context, id string) (*dto.ValuationResponse, error) {
	var out dto.ValuationResponse
	resp, err := c.http.Get(ctx, c.itemPath(id), nil, nil, &out)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create posts a raw JSON body so fields pass through unchanged.
func (c *ValuationClient) Create(ctx context.Context, body json.RawMessage) (*dto.ValuationResponse, error) {
	var out dto.ValuationResponse
	resp, err := c.http.Post(ctx, c.basePath, []byte(body), jsonHeaders, &out)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ValuationClient) Update(ctx context.Context, id string, body json.RawMessage) (*dto.ValuationResponse, error) {
	var out dto.ValuationResponse
	resp, err := c.http.Patch(ctx, c.itemPath(id), []byte(body), jsonHeaders, &out)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ValuationClient) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	var out dto.MessageResponse
	resp, err := c.http.Delete(ctx, c.itemPath(id), nil, &out)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func (c *ValuationClient) itemPath(id string) string {
	return c.basePath + "/" + url.PathEscape(id)
}

func checkResponse(resp *httpclient.BaseResponse, err error) error {
	if err != nil {
		return err
	}
	if resp.IsSuccess() {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	var msg dto.MessageResponse
	if json.Unmarshal(resp.Body, &msg) == nil && msg.Message != "" {
		apiErr.Message = msg.Message
	} else {
		apiErr.Message = string(resp.Body)
	}
	return apiErr
}
