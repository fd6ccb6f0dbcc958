package httpclient

import (
	"context"
	"net/http"
)

// BaseResponse is returned for every completed exchange, whatever the status.
type BaseResponse struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

func (r *BaseResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

type HTTPClient interface {
	Get(ctx context.Context, endpoint string, queryParams map[string]string, headers map[string]string, result interface{}) (*BaseResponse, error)
	Post(ctx context.Context, endpoint string, body interface{}, headers map[string]string, result interface{}) (*BaseResponse, error)
	Patch(ctx context.Context, endpoint string, body interface{}, headers map[string]string, result interface{}) (*BaseResponse, error)
	Delete(ctx context.Context, endpoint string, headers map[string]string, result interface{}) (*BaseResponse, error)
}
