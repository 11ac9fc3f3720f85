package chat

import "context"

// ParamSpec describes one parameter of a tool declaration.
type ParamSpec struct {
	Type        string
	Description string
}

// ToolDeclaration describes a callable data query the model may request.
// Declarations are defined once at startup and never mutated.
type ToolDeclaration struct {
	Name        string
	Description string
	Params      map[string]ParamSpec
	Required    []string
}

// ToolCall is the model's request to invoke a declared tool.
type ToolCall struct {
	Name string
	Args map[string]any
}

// ToolReply is the result of a tools-enabled generation: either final text,
// a tool invocation request, or both.
type ToolReply struct {
	Text string
	Call *ToolCall
}

// Gateway is the single seam through which all generative-model calls pass.
// Implementations are best-effort external services; callers must absorb
// their failures.
type Gateway interface {
	// Generate produces a plain-text completion for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateWithTools produces a completion with the given tool
	// declarations attached and function calling enabled.
	GenerateWithTools(ctx context.Context, prompt string, decls []ToolDeclaration) (*ToolReply, error)

	// GenerateToolFollowup replays the original prompt, the model's tool-call
	// turn, and the executed tool's JSON result, and returns the final text.
	GenerateToolFollowup(ctx context.Context, prompt string, call ToolCall, resultJSON string) (string, error)
}
