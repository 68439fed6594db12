package openai

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dentalcare-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sseChunk(token string) string {
	return fmt.Sprintf(`data: {"choices":[{"delta":{"content":%q}}]}`+"\n\n", token)
}

func TestChatStreamAccumulatesTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, token := range []string{"Hel", "lo", " world"} {
			fmt.Fprint(w, sseChunk(token))
			flusher.Flush()
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(srv.URL, "test-key", "gpt-4o-mini")

	var tokens []string
	var cumulative []string
	got, err := provider.ChatStream(context.Background(),
		[]llm.Message{{Role: "user", Content: "hi"}},
		func(token, accumulated string) error {
			tokens = append(tokens, token)
			cumulative = append(cumulative, accumulated)
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, "Hello world", got)
	assert.Equal(t, []string{"Hel", "lo", " world"}, tokens)
	assert.Equal(t, []string{"Hel", "Hello", "Hello world"}, cumulative)
}

func TestChatStreamSkipsEmptyDeltas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		// Role-only preamble and an empty delta must not reach the handler.
		fmt.Fprint(w, `data: {"choices":[{"delta":{"role":"assistant"}}]}`+"\n\n")
		fmt.Fprint(w, sseChunk("ok"))
		fmt.Fprint(w, `data: {"choices":[{"delta":{"content":""}}]}`+"\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(srv.URL, "k", "m")

	calls := 0
	got, err := provider.ChatStream(context.Background(),
		[]llm.Message{{Role: "user", Content: "hi"}},
		func(token, accumulated string) error {
			calls++
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 1, calls)
}

func TestChatStreamMidStreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		fmt.Fprint(w, sseChunk("partial"))
		flusher.Flush()
		// Drop the connection mid-stream.
		panic(http.ErrAbortHandler)
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(srv.URL, "k", "m")

	callsAtFailure := 0
	_, err := provider.ChatStream(context.Background(),
		[]llm.Message{{Role: "user", Content: "hi"}},
		func(token, accumulated string) error {
			callsAtFailure++
			return nil
		})

	require.Error(t, err)
	// The one token delivered before the failure, and nothing after it.
	assert.Equal(t, 1, callsAtFailure)
}

func TestChatStreamProviderErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"Rate limit reached for requests","type":"requests"}}`)
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(srv.URL, "k", "m")

	_, err := provider.ChatStream(context.Background(),
		[]llm.Message{{Role: "user", Content: "hi"}}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Rate limit reached for requests")
}

func TestChatStreamRawErrorWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream exploded")
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(srv.URL, "k", "m")

	_, err := provider.ChatStream(context.Background(),
		[]llm.Message{{Role: "user", Content: "hi"}}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestChatStreamHandlerAbort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, token := range []string{"one", "two", "three"} {
			fmt.Fprint(w, sseChunk(token))
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(srv.URL, "k", "m")

	abort := fmt.Errorf("caller lost interest")
	calls := 0
	_, err := provider.ChatStream(context.Background(),
		[]llm.Message{{Role: "user", Content: "hi"}},
		func(token, accumulated string) error {
			calls++
			if calls == 2 {
				return abort
			}
			return nil
		})

	require.ErrorIs(t, err, abort)
	assert.Equal(t, 2, calls)
}

func TestChatStreamCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		fmt.Fprint(w, sseChunk("first"))
		flusher.Flush()
		<-release // hold the stream open
	}))
	defer srv.Close()
	defer close(release)

	provider := NewOpenAIProvider(srv.URL, "k", "m")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := provider.ChatStream(ctx,
			[]llm.Message{{Role: "user", Content: "hi"}},
			func(token, accumulated string) error { return nil })
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not release after cancellation")
	}
}

func TestChatNonStreaming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"hello"}}]}`)
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(srv.URL, "k", "m")
	got, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}
