package skyward

import "context"

// Tool is a single callable operation with typed input and output. The
// generic parameters give compile-time type safety when implementing tools;
// the dispatch package erases them with reflection when executing raw calls.
//
// Responsibility split:
//   - Tool: accept typed input, execute engine logic, return typed output
//   - dispatch.Registry: parse raw calls, validate args, call tools, format
//     output for the caller
//
// Tools focus on booking logic only; serialization is the dispatcher's job.
type Tool[I, O any] interface {
	// Name returns the tool's identifier used in tool calls.
	Name() string

	// Description returns a human-readable description for the dispatcher
	// (an LLM system prompt, typically).
	Description() string

	// ParameterSchema returns the JSON Schema for the tool's parameters.
	// Returns nil if the tool takes no parameters.
	ParameterSchema() map[string]any

	// Call executes the tool with the given typed input.
	Call(ctx context.Context, input I) (O, error)
}

// ToolCall is a parsed tool invocation supplied by a dispatcher.
type ToolCall struct {
	Name string
	Args map[string]any
}

// ToolFunc is a convenience type for creating tools from functions with
// typed input and output.
type ToolFunc[I, O any] struct {
	name        string
	description string
	schema      map[string]any
	fn          func(ctx context.Context, input I) (O, error)
}

// NewToolFunc creates a new ToolFunc with typed input and output.
func NewToolFunc[I, O any](
	name, description string,
	schema map[string]any,
	fn func(ctx context.Context, input I) (O, error),
) *ToolFunc[I, O] {
	return &ToolFunc[I, O]{
		name:        name,
		description: description,
		schema:      schema,
		fn:          fn,
	}
}

// Name returns the tool's identifier.
func (t *ToolFunc[I, O]) Name() string {
	return t.name
}

// Description returns a human-readable description of the tool.
func (t *ToolFunc[I, O]) Description() string {
	return t.description
}

// ParameterSchema returns the JSON Schema for the tool's parameters.
func (t *ToolFunc[I, O]) ParameterSchema() map[string]any {
	return t.schema
}

// Call executes the tool function with the given typed input.
func (t *ToolFunc[I, O]) Call(ctx context.Context, input I) (O, error) {
	return t.fn(ctx, input)
}
