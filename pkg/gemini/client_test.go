package gemini_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mandilink/mandilink/pkg/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))

			var payload map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Stock up on onions before the weekend rush."}]}}]}`))
		}))
		defer server.Close()

		client := gemini.NewClientWithBaseURL("test-key", "gemini-2.0-flash", server.URL)

		// Act
		text, err := client.GenerateContent(t.Context(), "What should I stock this week?")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "Stock up on onions before the weekend rush.", text)
	})

	t.Run("Failure - Upstream Error Status", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := gemini.NewClientWithBaseURL("test-key", "gemini-2.0-flash", server.URL)

		// Act
		text, err := client.GenerateContent(t.Context(), "prompt")

		// Assert
		assert.Error(t, err)
		assert.Empty(t, text)
		assert.Contains(t, err.Error(), "status code: 429")
	})

	t.Run("Failure - No Candidates", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		}))
		defer server.Close()

		client := gemini.NewClientWithBaseURL("test-key", "gemini-2.0-flash", server.URL)

		// Act
		_, err := client.GenerateContent(t.Context(), "prompt")

		// Assert
		assert.Error(t, err)
	})
}
