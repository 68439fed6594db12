package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(max int) Option {
	return func(o *Options) {
		o.MaxTokens = max
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// StreamHandler receives each non-empty token together with the full response
// accumulated so far. Returning an error aborts the stream; the handler is
// never called again after an abort or a transport failure. Tokens arrive in
// delivery order, and the next chunk is not read until the handler returns.
type StreamHandler func(token string, accumulated string) error

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// ChatStream sends a chat history and streams the response token by
	// token through onToken, returning the full accumulated text. Cancelling
	// ctx stops token dispatch and releases the underlying connection. No
	// retries are attempted; a failed call aborts the whole turn.
	ChatStream(ctx context.Context, history []Message, onToken StreamHandler, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
