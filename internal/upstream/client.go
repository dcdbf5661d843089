// Package upstream is the HTTP client for the remote generation API. The
// three endpoints it talks to are opaque contracts; nothing here knows about
// conversations or selection state.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	app_errors "omnichat/backend/internal/errors"
)

// Client defines the interface for the remote API.
type Client interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
	StoreKeys(ctx context.Context, apiKey string) error
}

// GenerateRequest carries one prompt to /api/generate. APIKey is attached
// only for providers that are not the zero-configuration default; the
// upstream resolves the default provider's key itself.
type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	APIKey string `json:"apiKey,omitempty"`
}

// GenerateResponse is the success shape of /api/generate.
type GenerateResponse struct {
	Response string  `json:"response"`
	Cost     float64 `json:"cost"`
}

type httpClient struct {
	client *http.Client
	url    string
}

func NewClient(url string) Client {
	return &httpClient{
		client: &http.Client{},
		url:    url,
	}
}

func (c *httpClient) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/api/generate", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(resp)
	}

	var genResp GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}
	return &genResp, nil
}

func (c *httpClient) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("could not create multipart field: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("could not read file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("could not finalize multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/api/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", app_errors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errorFromResponse(resp)
	}

	// Depending on the integration point the extractor answers with either
	// {"text": ...} or {"response": ...}.
	var uploadResp struct {
		Text     string `json:"text"`
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", fmt.Errorf("could not decode response: %w", err)
	}
	if uploadResp.Text != "" {
		return uploadResp.Text, nil
	}
	return uploadResp.Response, nil
}

// StoreKeys submits the single key value under every provider field. The
// upstream contract takes one field per provider; the client reuses the same
// value for all of them, a known limitation carried over on purpose.
func (c *httpClient) StoreKeys(ctx context.Context, apiKey string) error {
	payload := map[string]string{
		"openai_api_key":     apiKey,
		"gemini_api_key":     apiKey,
		"claude_api_key":     apiKey,
		"perplexity_api_key": apiKey,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/api/store-keys", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", app_errors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errorFromResponse(resp)
	}
	// Response body is unused; only success matters.
	return nil
}

// errorFromResponse turns a non-200 answer into an upstream error, keeping
// the server-supplied message when the body carries one.
func errorFromResponse(resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(resp.Body)

	var errBody struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(bodyBytes, &errBody); err == nil {
		if errBody.Message != "" {
			return fmt.Errorf("%w: %s", app_errors.ErrUpstream, errBody.Message)
		}
		if errBody.Detail != "" {
			return fmt.Errorf("%w: %s", app_errors.ErrUpstream, errBody.Detail)
		}
	}
	return fmt.Errorf("%w: status %d", app_errors.ErrUpstream, resp.StatusCode)
}
