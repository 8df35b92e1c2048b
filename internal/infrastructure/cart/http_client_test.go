package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/stitch/internal/application/dto"
	apperrors "github.com/reglet-dev/stitch/internal/application/errors"
)

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient("ftp://shop.example.com")
	assert.Error(t, err)

	_, err = NewClient("://bad")
	assert.Error(t, err)
}

func TestClient_Add(t *testing.T) {
	var got dto.AddRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cart/add.js", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Contains(t, r.Header.Get("User-Agent"), "stitch/")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"abc","item_count":3,"items":[{"key":"9001:1","variant_id":"9001","quantity":1}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL + "/")
	require.NoError(t, err)

	snap, err := client.Add(context.Background(), dto.AddRequest{Items: []dto.CartItem{
		{VariantID: "9001", Quantity: 1},
		{VariantID: "40001", Quantity: 1, ParentLineKey: "9001:1"},
	}})

	require.NoError(t, err)
	assert.Equal(t, "abc", snap.Token)
	assert.Equal(t, 3, snap.ItemCount)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "9001:1", got.Items[1].ParentLineKey)
}

func TestClient_Change(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart/change.js", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "line-1", req["id"])

		_, _ = w.Write([]byte(`{"token":"abc"}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = client.Change(context.Background(), dto.ChangeRequest{Line: "line-1", Properties: map[string]string{"Embroidery Name": `"Ava"`}})
	require.NoError(t, err)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantDesc   string
		status     int
		wantStatus int
	}{
		{
			name:       "non-2xx with description",
			status:     http.StatusUnprocessableEntity,
			body:       `{"status":422,"message":"Cart Error","description":"All 1 Gold are in your cart."}`,
			wantStatus: 422,
			wantDesc:   "All 1 Gold are in your cart.",
		},
		{
			name:       "non-2xx without body",
			status:     http.StatusBadGateway,
			body:       ``,
			wantStatus: 502,
			wantDesc:   "Bad Gateway",
		},
		{
			name:       "2xx carrying an error payload",
			status:     http.StatusOK,
			body:       `{"status":422,"description":"variant sold out"}`,
			wantStatus: 422,
			wantDesc:   "variant sold out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client, err := NewClient(srv.URL)
			require.NoError(t, err)

			_, err = client.Add(context.Background(), dto.AddRequest{Items: []dto.CartItem{{VariantID: "1", Quantity: 1}}})

			var subErr *apperrors.CartSubmissionError
			require.ErrorAs(t, err, &subErr)
			assert.Equal(t, tt.wantStatus, subErr.Status)
			assert.Equal(t, tt.wantDesc, subErr.Description)
			assert.Equal(t, "add", subErr.Operation)
		})
	}
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = client.Change(context.Background(), dto.ChangeRequest{Line: "x"})

	var subErr *apperrors.CartSubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, http.StatusOK, subErr.Status)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, WithTimeout(20*time.Millisecond))
	require.NoError(t, err)

	_, err = client.Add(context.Background(), dto.AddRequest{Items: []dto.CartItem{{VariantID: "1", Quantity: 1}}})

	var subErr *apperrors.CartSubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Zero(t, subErr.Status)
}
