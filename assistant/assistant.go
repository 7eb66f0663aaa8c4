// Package assistant runs a conversational booking assistant on top of the
// dispatch registry.
//
// The assistant binds every registered tool to an LLM via native
// tool-calling and runs a bounded loop: call the model, execute any tool
// calls it requests through dispatch, feed the results back, and repeat
// until the model answers in plain text or the iteration limit is reached.
// All natural-language understanding lives in the model; this package only
// orchestrates structured calls.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/skywardair/skyward"
	"github.com/skywardair/skyward/dispatch"
	"github.com/tmc/langchaingo/llms"
)

// ErrMaxIterationsExceeded is returned when the model keeps requesting tool
// calls past the configured iteration limit.
var ErrMaxIterationsExceeded = errors.New("assistant: maximum iterations exceeded")

// DefaultMaxIterations bounds the tool-calling loop for a single message.
const DefaultMaxIterations = 10

// DefaultSystemPrompt is the booking assistant's default behavior prompt.
const DefaultSystemPrompt = `You are a helpful flight booking assistant. You can:
1. Search for flights between cities
2. Check flight availability
3. Book flights for passengers
4. Cancel existing bookings
5. View booking details

Always confirm important details before booking. Be clear about prices and
policies. Use tools to help users with their booking needs.`

// Model is the subset of langchaingo's llms.Model the assistant needs.
// Any llms.Model satisfies it; tests substitute a scripted fake.
type Model interface {
	GenerateContent(
		ctx context.Context,
		messages []llms.MessageContent,
		options ...llms.CallOption,
	) (*llms.ContentResponse, error)
}

// Assistant holds a conversation with a user and executes the model's tool
// calls against the booking engine. Not safe for concurrent use; one
// Assistant per conversation.
type Assistant struct {
	model         Model
	registry      *dispatch.Registry
	history       []llms.MessageContent
	tools         []llms.Tool
	systemPrompt  string
	maxIterations int
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithSystemPrompt overrides the default behavior prompt.
func WithSystemPrompt(prompt string) Option {
	return func(a *Assistant) {
		a.systemPrompt = prompt
	}
}

// WithMaxIterations overrides the tool-calling loop bound.
func WithMaxIterations(n int) Option {
	return func(a *Assistant) {
		a.maxIterations = n
	}
}

// New creates an Assistant over the given model and tool registry.
func New(model Model, registry *dispatch.Registry, opts ...Option) *Assistant {
	a := &Assistant{
		model:         model,
		registry:      registry,
		systemPrompt:  DefaultSystemPrompt,
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(a)
	}

	for _, meta := range registry.Metas() {
		a.tools = append(a.tools, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        meta.Name(),
				Description: meta.Description(),
				Parameters:  meta.Schema(),
			},
		})
	}

	return a
}

// History returns the conversation history accumulated so far.
func (a *Assistant) History() []llms.MessageContent {
	return a.history
}

// Reset clears the conversation history.
func (a *Assistant) Reset() {
	a.history = nil
}

// SendMessage sends one user message and runs the tool-calling loop until
// the model produces a plain answer. The answer text is returned; the full
// exchange (including tool calls and results) stays in the history for
// subsequent messages.
func (a *Assistant) SendMessage(ctx context.Context, text string) (string, error) {
	if len(a.history) == 0 {
		a.history = append(a.history,
			llms.TextParts(llms.ChatMessageTypeSystem, a.systemPrompt))
	}
	a.history = append(a.history,
		llms.TextParts(llms.ChatMessageTypeHuman, text))

	for iteration := 0; iteration < a.maxIterations; iteration++ {
		resp, err := a.model.GenerateContent(
			ctx, a.history, llms.WithTools(a.tools))
		if err != nil {
			return "", fmt.Errorf("assistant: model call failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("assistant: model returned no choices")
		}
		choice := resp.Choices[0]

		if len(choice.ToolCalls) == 0 {
			a.history = append(a.history,
				llms.TextParts(llms.ChatMessageTypeAI, choice.Content))
			return choice.Content, nil
		}

		// Record the model's tool-call request, then answer each call.
		assistantMsg := llms.MessageContent{Role: llms.ChatMessageTypeAI}
		for _, tc := range choice.ToolCalls {
			assistantMsg.Parts = append(assistantMsg.Parts, tc)
		}
		a.history = append(a.history, assistantMsg)

		for _, tc := range choice.ToolCalls {
			payload := a.executeToolCall(ctx, tc)
			var name string
			if tc.FunctionCall != nil {
				name = tc.FunctionCall.Name
			}
			a.history = append(a.history, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{
					llms.ToolCallResponse{
						ToolCallID: tc.ID,
						Name:       name,
						Content:    payload,
					},
				},
			})
		}
	}

	return "", ErrMaxIterationsExceeded
}

// executeToolCall runs one model-requested call through the dispatch
// registry and returns the JSON payload to hand back to the model. Bad
// arguments become error payloads, never loop aborts: the model gets a
// chance to correct itself.
func (a *Assistant) executeToolCall(ctx context.Context, tc llms.ToolCall) string {
	if tc.FunctionCall == nil {
		result := &dispatch.CallResult{
			Err: errors.New("malformed tool call: missing function"),
		}
		return result.Payload()
	}

	var args map[string]any
	if tc.FunctionCall.Arguments != "" {
		if err := json.Unmarshal([]byte(tc.FunctionCall.Arguments), &args); err != nil {
			result := &dispatch.CallResult{
				Name: tc.FunctionCall.Name,
				Err:  fmt.Errorf("invalid tool arguments: %w", err),
			}
			return result.Payload()
		}
	}

	result := a.registry.Call(ctx, &skyward.ToolCall{
		Name: tc.FunctionCall.Name,
		Args: args,
	})
	return result.Payload()
}
