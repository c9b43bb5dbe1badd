package advisory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(endpoint string) *Client {
	return NewClient(Config{
		APIKey:   "test-key",
		Model:    "gemini-2.5-flash",
		Endpoint: endpoint,
	})
}

func TestCheckInteractions(t *testing.T) {
	var gotPath string
	var gotBody generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{
						{"text": "No major interactions between Napa and Seclo."},
					},
				}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	result := newTestClient(srv.URL).CheckInteractions(context.Background(), []string{"Napa 500mg", "Seclo 20mg"})

	assert.False(t, result.Unavailable)
	assert.Equal(t, "No major interactions between Napa and Seclo.", result.Text)
	assert.Equal(t, "/models/gemini-2.5-flash:generateContent", gotPath)

	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Contains(t, gotBody.Contents[0].Parts[0].Text, "Napa 500mg, Seclo 20mg")
}

func TestCheckInteractionsFewerThanTwoNames(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	result := client.CheckInteractions(context.Background(), []string{"Napa 500mg"})
	assert.False(t, result.Unavailable)
	assert.Equal(t, "Add at least two medicines to check for interactions.", result.Text)

	result = client.CheckInteractions(context.Background(), nil)
	assert.False(t, result.Unavailable)

	assert.False(t, called)
}

func TestCheckInteractionsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	result := newTestClient(srv.URL).CheckInteractions(context.Background(), []string{"A", "B"})

	assert.True(t, result.Unavailable)
	assert.Equal(t, FallbackMessage, result.Reason)
	assert.Empty(t, result.Text)
}

func TestCheckInteractionsUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	result := newTestClient(srv.URL).CheckInteractions(context.Background(), []string{"A", "B"})

	assert.True(t, result.Unavailable)
	assert.Equal(t, FallbackMessage, result.Reason)
}

func TestCheckInteractionsEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	result := newTestClient(srv.URL).CheckInteractions(context.Background(), []string{"A", "B"})

	assert.False(t, result.Unavailable)
	assert.Equal(t, "No analysis returned.", result.Text)
}
