// Package dispatch executes structured tool calls against the booking
// engine's tools.
//
// The Registry is the boundary contract for the excluded natural-language
// layer: whatever turns user text into a structured call (an LLM
// tool-calling loop, a scripted demo, a test) hands the Registry a parsed
// call or a raw JSON payload, and receives a structured success or error
// payload back. The Registry never panics on bad input; every failure is
// reported as a tagged result.
//
// # Call Format
//
// Raw calls use JSON:
//
//	{"tool": "search_flights", "args": {"origin": "NYC", "destination": "TYO", "departure_date": "2025-02-15"}}
//
// Multiple parallel calls use an array of the same objects.
//
// Arguments are validated against each tool's compiled JSON Schema before
// the tool runs.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skywardair/skyward"
	"github.com/skywardair/skyward/schema"
)

// Parse and execution errors.
var (
	ErrInvalidJSON     = errors.New("dispatch: invalid JSON in tool call")
	ErrMissingToolName = errors.New("dispatch: tool call missing 'tool' field")
	ErrUnknownTool     = errors.New("dispatch: unknown tool")
)

// CallResult is the outcome of executing a single tool call.
type CallResult struct {
	// Name of the tool that was called.
	Name string

	// Args is the typed input the tool was called with, nil if
	// transformation or validation failed.
	Args any

	// Output is the tool's typed output, nil on error.
	Output any

	// Err is the execution error, nil on success. Engine errors keep
	// their kind and context; use skyward.KindOf to branch on them.
	Err error

	// Duration is how long the tool call took.
	Duration time.Duration
}

// errorPayload is the wire shape of a failed call.
type errorPayload struct {
	Error any `json:"error"`
}

// Payload renders the result as a JSON document: the tool's output on
// success, or {"error": {...}} carrying the engine error's kind and context
// on failure. This is the exact text a dispatcher relays to its model or
// user.
func (r *CallResult) Payload() string {
	if r.Err != nil {
		var engineErr *skyward.Error
		var body any
		if errors.As(r.Err, &engineErr) {
			body = engineErr
		} else {
			body = map[string]string{"message": r.Err.Error()}
		}
		data, err := json.Marshal(errorPayload{Error: body})
		if err != nil {
			return `{"error":{"message":"failed to marshal error"}}`
		}
		return string(data)
	}

	data, err := json.Marshal(r.Output)
	if err != nil {
		return `{"error":{"message":"failed to marshal output"}}`
	}
	return string(data)
}

// Subscriber observes executed tool calls. Used by the CLI and loggers;
// subscribers must not mutate the result.
type Subscriber interface {
	OnToolCall(result *CallResult)
}

// Registry holds the engine's tools and executes calls against them.
// Register all tools before the first Execute; Registry is not safe for
// concurrent registration (execution is safe, the engine does its own
// locking).
type Registry struct {
	tools       []*ToolMeta
	toolMap     map[string]*ToolMeta
	schemaMap   map[string]*schema.Schema
	subscribers []Subscriber
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		toolMap:   make(map[string]*ToolMeta),
		schemaMap: make(map[string]*schema.Schema),
	}
}

// RegisterTool adds a tool to the registry and compiles its parameter
// schema for validation. The tool must implement skyward.Tool[I, O] for
// some I and O.
//
// Panics if the tool is invalid or a tool with the same name is already
// registered; registration errors are programmer errors.
func (r *Registry) RegisterTool(tool any) {
	meta, err := getToolMeta(tool)
	if err != nil {
		panic(fmt.Sprintf("dispatch: cannot register tool: %v", err))
	}
	if _, exists := r.toolMap[meta.Name()]; exists {
		panic(fmt.Sprintf("dispatch: tool %q already registered", meta.Name()))
	}

	r.tools = append(r.tools, meta)
	r.toolMap[meta.Name()] = meta

	if raw := meta.Schema(); raw != nil {
		compiled, err := schema.Compile(raw)
		if err != nil {
			panic(fmt.Sprintf(
				"dispatch: tool %q has invalid schema: %v", meta.Name(), err))
		}
		r.schemaMap[meta.Name()] = compiled
	}
}

// Subscribe adds a subscriber notified after every executed call.
func (r *Registry) Subscribe(s Subscriber) {
	r.subscribers = append(r.subscribers, s)
}

// Metas returns the registered tools' metadata in registration order.
func (r *Registry) Metas() []*ToolMeta {
	return r.tools
}

// Catalog returns the tool catalog with parameter schemas, suitable for an
// LLM system prompt.
func (r *Registry) Catalog() string {
	var sb strings.Builder
	sb.WriteString("Available tools:\n")

	for _, meta := range r.tools {
		fmt.Fprintf(&sb, "\n- %s: %s\n", meta.Name(), meta.Description())
		if raw := meta.Schema(); raw != nil {
			schemaJSON, err := json.MarshalIndent(raw, "  ", "  ")
			if err == nil {
				sb.WriteString("  Parameters: ")
				sb.Write(schemaJSON)
				sb.WriteString("\n")
			}
		}
	}

	return sb.String()
}

// Call executes a single parsed tool call: validate args against the tool's
// schema, transform them into the typed input, run the tool. The returned
// CallResult always has Name set; inspect Err for failures.
func (r *Registry) Call(ctx context.Context, call *skyward.ToolCall) *CallResult {
	result := &CallResult{Name: call.Name}

	meta, ok := r.toolMap[call.Name]
	if !ok {
		result.Err = fmt.Errorf("%w: %s", ErrUnknownTool, call.Name)
		r.notify(result)
		return result
	}

	if compiled, hasSchema := r.schemaMap[call.Name]; hasSchema {
		if err := compiled.Validate(call.Args); err != nil {
			result.Err = err
			r.notify(result)
			return result
		}
	}

	typedInput, err := transformArgs(meta, call.Args)
	if err != nil {
		result.Err = err
		r.notify(result)
		return result
	}
	result.Args = typedInput

	start := time.Now()
	output, err := callTool(ctx, meta, typedInput)
	result.Duration = time.Since(start)
	result.Output = output
	result.Err = err

	r.notify(result)
	return result
}

// Execute parses one or more tool calls from raw JSON content and executes
// them in order. A parse failure returns an error and executes nothing;
// per-call failures are reported in the corresponding CallResult.
func (r *Registry) Execute(ctx context.Context, content string) ([]*CallResult, error) {
	calls, err := parseCalls(content)
	if err != nil {
		return nil, err
	}

	results := make([]*CallResult, len(calls))
	for i, call := range calls {
		results[i] = r.Call(ctx, call)
	}
	return results, nil
}

func (r *Registry) notify(result *CallResult) {
	for _, s := range r.subscribers {
		s.OnToolCall(result)
	}
}

// parseCalls parses raw content as a single tool call object or an array of
// them.
func parseCalls(content string) ([]*skyward.ToolCall, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return []*skyward.ToolCall{}, nil
	}

	type rawCall struct {
		Tool string         `json:"tool"`
		Args map[string]any `json:"args"`
	}

	var calls []*skyward.ToolCall

	if strings.HasPrefix(content, "[") {
		var rawCalls []rawCall
		if err := json.Unmarshal([]byte(content), &rawCalls); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		for _, rc := range rawCalls {
			if rc.Tool == "" {
				return nil, ErrMissingToolName
			}
			calls = append(calls, &skyward.ToolCall{Name: rc.Tool, Args: rc.Args})
		}
		return calls, nil
	}

	var rc rawCall
	if err := json.Unmarshal([]byte(content), &rc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if rc.Tool == "" {
		return nil, ErrMissingToolName
	}
	return []*skyward.ToolCall{{Name: rc.Tool, Args: rc.Args}}, nil
}

// Compile-time check that Registry satisfies the engine's registration
// interface.
var _ skyward.ToolRegistry = (*Registry)(nil)
