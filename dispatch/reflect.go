package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

// ToolMeta holds metadata about a registered tool extracted via reflection.
type ToolMeta struct {
	name        string
	description string
	schema      map[string]any
	tool        any
	inputType   reflect.Type
}

// Name returns the tool's name.
func (m *ToolMeta) Name() string { return m.name }

// Description returns the tool's description.
func (m *ToolMeta) Description() string { return m.description }

// Schema returns the tool's parameter schema.
func (m *ToolMeta) Schema() map[string]any { return m.schema }

// Tool returns the actual tool.
func (m *ToolMeta) Tool() any { return m.tool }

// getToolMeta extracts metadata from a generic Tool[I, O] using reflection.
func getToolMeta(tool any) (*ToolMeta, error) {
	toolVal := reflect.ValueOf(tool)
	if !toolVal.IsValid() {
		return nil, errors.New("invalid tool value")
	}

	nameMethod := toolVal.MethodByName("Name")
	if !nameMethod.IsValid() {
		return nil, errors.New("tool does not have Name method")
	}
	name := nameMethod.Call(nil)[0].String()

	descMethod := toolVal.MethodByName("Description")
	if !descMethod.IsValid() {
		return nil, errors.New("tool does not have Description method")
	}
	description := descMethod.Call(nil)[0].String()

	schemaMethod := toolVal.MethodByName("ParameterSchema")
	if !schemaMethod.IsValid() {
		return nil, errors.New("tool does not have ParameterSchema method")
	}
	schemaResult := schemaMethod.Call(nil)[0]
	var rawSchema map[string]any
	if !schemaResult.IsNil() {
		rawSchema = schemaResult.Interface().(map[string]any)
	}

	callMethod := toolVal.MethodByName("Call")
	if !callMethod.IsValid() {
		return nil, errors.New("tool does not have Call method")
	}
	callType := callMethod.Type()
	if callType.NumIn() != 2 {
		return nil, fmt.Errorf(
			"Call method has unexpected signature: expected 2 params, got %d",
			callType.NumIn())
	}

	return &ToolMeta{
		name:        name,
		description: description,
		schema:      rawSchema,
		tool:        tool,
		inputType:   callType.In(1),
	}, nil
}

// transformArgs converts raw args (map[string]any) to the tool's typed
// input by round-tripping through JSON. The engine's tool inputs are flat
// structs of strings and integers, so no further coercion is needed.
func transformArgs(meta *ToolMeta, args map[string]any) (any, error) {
	inputType := meta.inputType

	var inputVal reflect.Value
	if inputType.Kind() == reflect.Ptr {
		inputVal = reflect.New(inputType.Elem())
	} else {
		inputVal = reflect.New(inputType)
	}

	if args == nil {
		args = map[string]any{}
	}
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal args: %w", err)
	}
	if err := json.Unmarshal(argsJSON, inputVal.Interface()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal args into input type: %w", err)
	}

	if inputType.Kind() == reflect.Ptr {
		return inputVal.Interface(), nil
	}
	return inputVal.Elem().Interface(), nil
}

// callTool invokes a generic Tool[I, O] with already-typed input and returns
// the type-erased output.
func callTool(ctx context.Context, meta *ToolMeta, typedInput any) (any, error) {
	callMethod := reflect.ValueOf(meta.tool).MethodByName("Call")

	results := callMethod.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(typedInput),
	})

	// Call returns (O, error).
	outVal, errVal := results[0], results[1]
	if !errVal.IsNil() {
		return nil, errVal.Interface().(error)
	}
	return outVal.Interface(), nil
}
