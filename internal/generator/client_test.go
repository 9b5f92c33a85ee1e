package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sitesmith/sitesmith/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(apiURL string) *config.Config {
	return &config.Config{
		GLMAPIKey:         "test-key",
		GLMAPIURL:         apiURL,
		GLMModel:          "glm-5",
		GenMaxTokens:      1024,
		GenTimeoutSeconds: 5,
	}
}

func completionBody(content string) string {
	raw, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(raw)
}

func TestGenerateSuccess(t *testing.T) {
	var gotAuth string
	var gotReq map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(completionBody("```html\n<div>ok</div>\n```")))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	text, err := client.Generate(context.Background(), "build a site")
	require.NoError(t, err)
	assert.Equal(t, "```html\n<div>ok</div>\n```", text)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "glm-5", gotReq["model"])
	assert.Equal(t, false, gotReq["stream"])
}

func TestGenerateMissingCredential(t *testing.T) {
	cfg := testConfig("http://unused.invalid")
	cfg.GLMAPIKey = ""

	_, err := NewClient(cfg).Generate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrAuthConfigMissing)
}

func TestGenerateUpstreamRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	_, err := NewClient(testConfig(srv.URL)).Generate(context.Background(), "x")
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusTooManyRequests, upstream.Status)
	assert.Contains(t, upstream.Detail, "rate limited")
}

func TestGenerateEmptyCompletion(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no choices", `{"choices":[]}`},
		{"blank content", completionBody("   ")},
		{"not json", "<html>gateway error page</html>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(testConfig(srv.URL)).Generate(context.Background(), "x")
			assert.ErrorIs(t, err, ErrEmptyCompletion)
		})
	}
}

func TestGenerateNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	_, err := NewClient(testConfig(srv.URL)).Generate(context.Background(), "x")
	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}
