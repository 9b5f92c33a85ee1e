package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sitesmith/sitesmith/internal/config"
)

// Failure kinds, kept distinct so the caller can map each to its own
// user-visible outcome instead of one generic "AI failed" message.
var (
	// ErrAuthConfigMissing means no service credential is configured.
	// Fatal for the request; retrying cannot help.
	ErrAuthConfigMissing = errors.New("generation service credential is not configured")

	// ErrEmptyCompletion means the upstream answered 2xx but the
	// response carried no usable content field.
	ErrEmptyCompletion = errors.New("generation service returned an empty completion")
)

// UpstreamError is a non-success status from the generation service.
// Not retried automatically; the upstream status and detail are kept
// for the operator.
type UpstreamError struct {
	Status int
	Detail string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generation service rejected the request (status %d)", e.Status)
}

// NetworkError is a transport-level failure, including timeouts. Safe
// for the caller to retry once.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "generation service unreachable: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// TextGenerator is the capability the reconciler needs from a
// generation backend.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const systemPrompt = "You are an expert web designer and front-end developer. " +
	"You build complete, self-contained static websites. Respond with production-ready code."

// Client talks to the GLM chat-completions endpoint. It performs no
// retries itself: retrying a non-deterministic generation changes the
// artifact, so that decision stays with the caller.
type Client struct {
	apiKey     string
	apiURL     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:    cfg.GLMAPIKey,
		apiURL:    cfg.GLMAPIURL,
		model:     cfg.GLMModel,
		maxTokens: cfg.GenMaxTokens,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.GenTimeoutSeconds) * time.Second,
		},
	}
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrAuthConfigMissing
	}

	body, _ := json.Marshal(map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
		"max_tokens": c.maxTokens,
		"stream":     false,
	})

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{Status: resp.StatusCode, Detail: truncateDetail(string(respBody))}
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", ErrEmptyCompletion
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return out.Choices[0].Message.Content, nil
}

func truncateDetail(s string) string {
	const maxLen = 2000
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
