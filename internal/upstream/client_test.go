package upstream_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "omnichat/backend/internal/errors"
	"omnichat/backend/internal/upstream"
)

func TestClient_Generate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/generate", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "gpt-4o", body["model"])
			assert.Equal(t, "hello", body["prompt"])
			_, hasKey := body["apiKey"]
			assert.False(t, hasKey, "empty apiKey must be omitted from the payload")

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"response": "hi there", "cost": 0.0021}`))
		}))
		defer server.Close()

		client := upstream.NewClient(server.URL)
		resp, err := client.Generate(context.Background(), &upstream.GenerateRequest{Model: "gpt-4o", Prompt: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "hi there", resp.Response)
		assert.InDelta(t, 0.0021, resp.Cost, 1e-9)
	})

	t.Run("key attached when set", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "sk-test", body["apiKey"])
			_, _ = w.Write([]byte(`{"response": "ok"}`))
		}))
		defer server.Close()

		client := upstream.NewClient(server.URL)
		_, err := client.Generate(context.Background(), &upstream.GenerateRequest{
			Model: "claude-3-opus", Prompt: "hello", APIKey: "sk-test",
		})
		require.NoError(t, err)
	})

	t.Run("error body with message field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"message": "model overloaded"}`))
		}))
		defer server.Close()

		client := upstream.NewClient(server.URL)
		_, err := client.Generate(context.Background(), &upstream.GenerateRequest{Model: "gpt-4o", Prompt: "hello"})
		require.Error(t, err)
		assert.ErrorIs(t, err, app_errors.ErrUpstream)
		assert.Contains(t, err.Error(), "model overloaded")
	})

	t.Run("error body with detail field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"detail": "prompt is required"}`))
		}))
		defer server.Close()

		client := upstream.NewClient(server.URL)
		_, err := client.Generate(context.Background(), &upstream.GenerateRequest{Model: "gpt-4o", Prompt: "hello"})
		require.Error(t, err)
		assert.ErrorIs(t, err, app_errors.ErrUpstream)
		assert.Contains(t, err.Error(), "prompt is required")
	})

	t.Run("opaque error body falls back to status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := upstream.NewClient(server.URL)
		_, err := client.Generate(context.Background(), &upstream.GenerateRequest{Model: "gpt-4o", Prompt: "hello"})
		require.Error(t, err)
		assert.ErrorIs(t, err, app_errors.ErrUpstream)
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("connection failure", func(t *testing.T) {
		client := upstream.NewClient("http://127.0.0.1:1")
		_, err := client.Generate(context.Background(), &upstream.GenerateRequest{Model: "gpt-4o", Prompt: "hello"})
		require.Error(t, err)
		assert.ErrorIs(t, err, app_errors.ErrUpstream)
	})
}

func TestClient_Upload(t *testing.T) {
	t.Run("text field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/upload", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))

			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "notes.txt", header.Filename)

			content, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, "file body", string(content))

			_, _ = w.Write([]byte(`{"text": "extracted"}`))
		}))
		defer server.Close()

		client := upstream.NewClient(server.URL)
		text, err := client.Upload(context.Background(), "notes.txt", strings.NewReader("file body"))
		require.NoError(t, err)
		assert.Equal(t, "extracted", text)
	})

	t.Run("response field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"response": "summarized"}`))
		}))
		defer server.Close()

		client := upstream.NewClient(server.URL)
		text, err := client.Upload(context.Background(), "notes.txt", strings.NewReader("x"))
		require.NoError(t, err)
		assert.Equal(t, "summarized", text)
	})

	t.Run("extraction failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail": "unsupported file type"}`))
		}))
		defer server.Close()

		client := upstream.NewClient(server.URL)
		_, err := client.Upload(context.Background(), "image.xyz", strings.NewReader("x"))
		require.Error(t, err)
		assert.ErrorIs(t, err, app_errors.ErrUpstream)
		assert.Contains(t, err.Error(), "unsupported file type")
	})
}

func TestClient_StoreKeys(t *testing.T) {
	t.Run("same key under every provider field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/store-keys", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]string{
				"openai_api_key":     "sk-one",
				"gemini_api_key":     "sk-one",
				"claude_api_key":     "sk-one",
				"perplexity_api_key": "sk-one",
			}, body)

			_, _ = w.Write([]byte(`{"status": "ok"}`))
		}))
		defer server.Close()

		client := upstream.NewClient(server.URL)
		require.NoError(t, client.StoreKeys(context.Background(), "sk-one"))
	})

	t.Run("rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message": "invalid key"}`))
		}))
		defer server.Close()

		client := upstream.NewClient(server.URL)
		err := client.StoreKeys(context.Background(), "sk-bad")
		require.Error(t, err)
		assert.ErrorIs(t, err, app_errors.ErrUpstream)
		assert.Contains(t, err.Error(), "invalid key")
	})
}
