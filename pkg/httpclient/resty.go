package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

type RestyClient struct {
	client *resty.Client
}

func New(baseURL string, timeout time.Duration, bearerToken string) HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	if bearerToken != "" {
		client.SetAuthToken(bearerToken)
	}

	return &RestyClient{client: client}
}

// GET request with optional query params
func (rc *RestyClient) Get(ctx context.Context, endpoint string, queryParams map[string]string, headers map[string]string, result interface{}) (*BaseResponse, error) {
	req := rc.request(ctx, headers, result)

	if queryParams != nil {
		req.SetQueryParams(queryParams)
	}

	return toBaseResponse(req.Get(endpoint))
}

// POST request with body
func (rc *RestyClient) Post(ctx context.Context, endpoint string, body interface{}, headers map[string]string, result interface{}) (*BaseResponse, error) {
	return toBaseResponse(rc.request(ctx, headers, result).SetBody(body).Post(endpoint))
}

// PATCH request
func (rc *RestyClient) Patch(ctx context.Context, endpoint string, body interface{}, headers map[string]string, result interface{}) (*BaseResponse, error) {
	return toBaseResponse(rc.request(ctx, headers, result).SetBody(body).Patch(endpoint))
}

// DELETE request
func (rc *RestyClient) Delete(ctx context.Context, endpoint string, headers map[string]string, result interface{}) (*BaseResponse, error) {
	return toBaseResponse(rc.request(ctx, headers, result).Delete(endpoint))
}

// request builds a request that only decodes result on 2xx responses.
func (rc *RestyClient) request(ctx context.Context, headers map[string]string, result interface{}) *resty.Request {
	req := rc.client.R().SetContext(ctx)
	if result != nil {
		req.SetResult(result)
	}
	if headers != nil {
		req.SetHeaders(headers)
	}
	return req
}

func toBaseResponse(resp *resty.Response, err error) (*BaseResponse, error) {
	if err != nil {
		return nil, err
	}
	return &BaseResponse{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
		Headers:    resp.Header(),
	}, nil
}
