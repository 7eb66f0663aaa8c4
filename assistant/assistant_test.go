package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/skywardair/skyward"
	"github.com/skywardair/skyward/dispatch"
)

// scriptedModel returns canned responses in order and records every request
// it receives.
type scriptedModel struct {
	responses []*llms.ContentResponse
	requests  [][]llms.MessageContent
	calls     int
}

func (m *scriptedModel) GenerateContent(
	ctx context.Context,
	messages []llms.MessageContent,
	options ...llms.CallOption,
) (*llms.ContentResponse, error) {
	m.requests = append(m.requests, messages)

	// Keep replaying the last response once the script runs out, so
	// iteration-limit tests can script a single looping response.
	idx := m.calls
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	m.calls++
	return m.responses[idx], nil
}

func textResponse(text string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: text}},
	}
}

func toolCallResponse(id, name, args string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{
			ToolCalls: []llms.ToolCall{{
				ID:   id,
				Type: "function",
				FunctionCall: &llms.FunctionCall{
					Name:      name,
					Arguments: args,
				},
			}},
		}},
	}
}

func newTestAssistant(
	t *testing.T,
	model Model,
	opts ...Option,
) (*Assistant, *skyward.Engine) {
	t.Helper()

	engine, err := skyward.NewEngine([]*skyward.Flight{
		{ID: "JL005", Origin: "NYC", Destination: "TYO", Price: 1200,
			Departure: "13:00", Arrival: "16:00+1", Seats: 23},
	})
	require.NoError(t, err)

	registry := dispatch.NewRegistry()
	engine.RegisterAllTools(registry)

	return New(model, registry, opts...), engine
}

func TestSendMessage_PlainAnswer(t *testing.T) {
	model := &scriptedModel{responses: []*llms.ContentResponse{
		textResponse("We fly NYC to Tokyo daily."),
	}}
	a, _ := newTestAssistant(t, model)

	answer, err := a.SendMessage(context.Background(), "Do you fly to Tokyo?")
	require.NoError(t, err)
	assert.Equal(t, "We fly NYC to Tokyo daily.", answer)

	// History: system, human, AI answer.
	history := a.History()
	require.Len(t, history, 3)
	assert.Equal(t, llms.ChatMessageTypeSystem, history[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, history[1].Role)
	assert.Equal(t, llms.ChatMessageTypeAI, history[2].Role)
}

func TestSendMessage_ToolCallFlow(t *testing.T) {
	model := &scriptedModel{responses: []*llms.ContentResponse{
		toolCallResponse("call-1", "book_flight",
			`{"flight_id": "JL005", "passengers": 2, "cabin_class": "business", "passenger_name": "Alice Chen", "passenger_email": "alice@example.com"}`),
		textResponse("Booked! Your reference is BK1000."),
	}}
	a, engine := newTestAssistant(t, model)

	answer, err := a.SendMessage(context.Background(),
		"Book JL005 for two in business, Alice Chen, alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Booked! Your reference is BK1000.", answer)

	// The tool call actually hit the engine.
	booking, err := engine.ViewBooking("BK1000")
	require.NoError(t, err)
	assert.Equal(t, 6000.0, booking.TotalPrice)

	// History: system, human, AI tool request, tool result, AI answer.
	history := a.History()
	require.Len(t, history, 5)
	assert.Equal(t, llms.ChatMessageTypeAI, history[2].Role)
	assert.Equal(t, llms.ChatMessageTypeTool, history[3].Role)

	// The tool result message carries the booking payload back.
	require.Len(t, history[3].Parts, 1)
	toolResp, ok := history[3].Parts[0].(llms.ToolCallResponse)
	require.True(t, ok)
	assert.Equal(t, "call-1", toolResp.ToolCallID)
	assert.Contains(t, toolResp.Content, "BK1000")

	// The second model request saw the tool result.
	require.Len(t, model.requests, 2)
	assert.Len(t, model.requests[1], 4)
}

func TestSendMessage_EngineErrorFedBack(t *testing.T) {
	model := &scriptedModel{responses: []*llms.ContentResponse{
		toolCallResponse("call-1", "book_flight",
			`{"flight_id": "JL005", "passengers": 50, "cabin_class": "economy", "passenger_name": "Bob", "passenger_email": "bob@example.com"}`),
		textResponse("Sorry, that flight cannot seat 50 passengers."),
	}}
	a, engine := newTestAssistant(t, model)

	answer, err := a.SendMessage(context.Background(), "Book 50 seats on JL005")
	require.NoError(t, err)
	assert.Contains(t, answer, "cannot seat 50")

	// The failure was relayed as a payload, not an abort, and nothing was
	// booked.
	history := a.History()
	toolResp := history[3].Parts[0].(llms.ToolCallResponse)
	assert.Contains(t, toolResp.Content, "error")
	assert.Zero(t, engine.Summary().TotalBookings)
}

func TestSendMessage_BadArgumentsFedBack(t *testing.T) {
	model := &scriptedModel{responses: []*llms.ContentResponse{
		toolCallResponse("call-1", "view_booking", `{not json`),
		textResponse("I could not read that booking reference."),
	}}
	a, _ := newTestAssistant(t, model)

	answer, err := a.SendMessage(context.Background(), "Show my booking")
	require.NoError(t, err)
	assert.Contains(t, answer, "could not read")

	toolResp := a.History()[3].Parts[0].(llms.ToolCallResponse)
	assert.Contains(t, toolResp.Content, "invalid tool arguments")
}

func TestSendMessage_NilFunctionCallFedBack(t *testing.T) {
	// A malformed model response can carry a tool call with no function
	// attached; it must come back as an error payload, not a panic.
	model := &scriptedModel{responses: []*llms.ContentResponse{
		{
			Choices: []*llms.ContentChoice{{
				ToolCalls: []llms.ToolCall{{
					ID:   "call-1",
					Type: "function",
				}},
			}},
		},
		textResponse("Something went wrong, let me try again."),
	}}
	a, _ := newTestAssistant(t, model)

	answer, err := a.SendMessage(context.Background(), "Book me a flight")
	require.NoError(t, err)
	assert.Contains(t, answer, "try again")

	toolResp := a.History()[3].Parts[0].(llms.ToolCallResponse)
	assert.Equal(t, "call-1", toolResp.ToolCallID)
	assert.Empty(t, toolResp.Name)
	assert.Contains(t, toolResp.Content, "malformed tool call")
}

func TestSendMessage_MaxIterations(t *testing.T) {
	// The model never stops asking for tools.
	model := &scriptedModel{responses: []*llms.ContentResponse{
		toolCallResponse("call-1", "booking_summary", `{}`),
	}}
	a, _ := newTestAssistant(t, model, WithMaxIterations(3))

	_, err := a.SendMessage(context.Background(), "Loop forever")
	assert.ErrorIs(t, err, ErrMaxIterationsExceeded)
	assert.Equal(t, 3, model.calls)
}

func TestSendMessage_SystemPromptOnlyOnce(t *testing.T) {
	model := &scriptedModel{responses: []*llms.ContentResponse{
		textResponse("First answer."),
		textResponse("Second answer."),
	}}
	a, _ := newTestAssistant(t, model, WithSystemPrompt("Be terse."))

	_, err := a.SendMessage(context.Background(), "Hello")
	require.NoError(t, err)
	_, err = a.SendMessage(context.Background(), "Hello again")
	require.NoError(t, err)

	var systemCount int
	for _, msg := range a.History() {
		if msg.Role == llms.ChatMessageTypeSystem {
			systemCount++
			text := msg.Parts[0].(llms.TextContent)
			assert.Equal(t, "Be terse.", text.Text)
		}
	}
	assert.Equal(t, 1, systemCount)
}

func TestReset(t *testing.T) {
	model := &scriptedModel{responses: []*llms.ContentResponse{
		textResponse("Answer."),
	}}
	a, _ := newTestAssistant(t, model)

	_, err := a.SendMessage(context.Background(), "Hello")
	require.NoError(t, err)
	require.NotEmpty(t, a.History())

	a.Reset()
	assert.Empty(t, a.History())
}

func TestNew_BuildsToolDefinitions(t *testing.T) {
	model := &scriptedModel{responses: []*llms.ContentResponse{
		textResponse("ok"),
	}}
	a, _ := newTestAssistant(t, model)

	require.Len(t, a.tools, 6)
	var names []string
	for _, tool := range a.tools {
		assert.Equal(t, "function", tool.Type)
		names = append(names, tool.Function.Name)
	}
	assert.True(t, strings.HasPrefix(a.systemPrompt,
		"You are a helpful flight booking assistant"))
	assert.Contains(t, names, "search_flights")
	assert.Contains(t, names, "booking_summary")
}
