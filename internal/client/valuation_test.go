package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"goodwill-valuation/internal/dto"
	"goodwill-valuation/pkg/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *ValuationClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewValuationClient(httpclient.New(srv.URL, 5*time.Second, ""))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestValuationClient_List(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/valuations", r.URL.Path)
		writeJSON(w, http.StatusOK, []dto.ValuationResponse{{ID: "a", CompanyName: "Acme"}})
	})

	list, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Acme", list[0].CompanyName)
}

func TestValuationClient_Get(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       interface{}
		wantErr    bool
		wantStatus int
		wantMsg    string
	}{
		{
			name:   "found",
			status: http.StatusOK,
			body:   dto.ValuationResponse{ID: "abc", CompanyName: "Acme"},
		},
		{
			name:       "not found",
			status:     http.StatusNotFound,
			body:       dto.MessageResponse{Message: dto.MessageValuationNotFound},
			wantErr:    true,
			wantStatus: http.StatusNotFound,
			wantMsg:    dto.MessageValuationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/valuations/abc", r.URL.Path)
				writeJSON(w, tt.status, tt.body)
			})

			got, err := c.Get(context.Background(), "abc")
			if tt.wantErr {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
				assert.Equal(t, tt.wantMsg, apiErr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Acme", got.CompanyName)
		})
	}
}

func TestValuationClient_CreateAndUpdate(t *testing.T) {
	var gotMethods []string
	var gotBodies []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotMethods = append(gotMethods, r.Method)
		gotBodies = append(gotBodies, string(body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		status := http.StatusOK
		if r.Method == http.MethodPost {
			status = http.StatusCreated
		}
		writeJSON(w, status, dto.ValuationResponse{ID: "abc", CompanyName: "Acme", Notes: "n"})
	})
	ctx := context.Background()

	created, err := c.Create(ctx, json.RawMessage(`{"companyName":"Acme","valuationMethod":"원가법"}`))
	require.NoError(t, err)
	assert.Equal(t, "abc", created.ID)

	updated, err := c.Update(ctx, "abc", json.RawMessage(`{"notes":"n"}`))
	require.NoError(t, err)
	assert.Equal(t, "n", updated.Notes)

	assert.Equal(t, []string{http.MethodPost, http.MethodPatch}, gotMethods)
	assert.JSONEq(t, `{"companyName":"Acme","valuationMethod":"원가법"}`, gotBodies[0])
	assert.JSONEq(t, `{"notes":"n"}`, gotBodies[1])
}

func TestValuationClient_Delete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		writeJSON(w, http.StatusOK, dto.MessageResponse{Message: dto.MessageValuationDeleted})
	})

	msg, err := c.Delete(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, dto.MessageValuationDeleted, msg.Message)
}

func TestValuationClient_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := c.List(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream down", apiErr.Message)
}
