package completion_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sm-social/chatcore/internal/adapters/completion"
	"github.com/sm-social/chatcore/internal/domain"
)

func TestOpenAIClientComplete(t *testing.T) {
	var gotBody struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Quiz night at The Font.  "}}]}`))
	}))
	defer srv.Close()

	client := completion.NewOpenAIClient("test-key", srv.URL+"/v1", "openai/gpt-3.5-turbo")

	reply, err := client.Complete(context.Background(), []domain.Turn{
		{Role: domain.RoleSystem, Content: "be helpful"},
		{Role: domain.RoleUser, Content: "what's on?"},
		{Role: domain.RoleAssistant, Content: "lots"},
		{Role: domain.RoleUser, Content: "tonight?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Quiz night at The Font.", reply, "reply is trimmed")

	assert.Equal(t, "openai/gpt-3.5-turbo", gotBody.Model)
	require.Len(t, gotBody.Messages, 4)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "user", gotBody.Messages[1].Role)
	assert.Equal(t, "assistant", gotBody.Messages[2].Role)
	assert.Equal(t, "user", gotBody.Messages[3].Role)
}

func TestOpenAIClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"nope"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := completion.NewOpenAIClient("test-key", srv.URL+"/v1", "m")

	_, err := client.Complete(context.Background(), []domain.Turn{
		{Role: domain.RoleUser, Content: "hi"},
	})
	assert.Error(t, err)
}
