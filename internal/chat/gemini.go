package chat

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiGateway implements Gateway on top of the Google Gemini API.
type GeminiGateway struct {
	client *genai.Client
	model  string
}

// NewGeminiGateway creates a gateway for the given API key and model name.
func NewGeminiGateway(ctx context.Context, apiKey, model string) (*GeminiGateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiGateway{client: client, model: model}, nil
}

// Generate produces a plain-text completion for the prompt.
func (g *GeminiGateway) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

// GenerateWithTools produces a completion with function calling enabled.
// If the model requests a tool invocation, the reply carries the call; the
// text may be empty in that case.
func (g *GeminiGateway) GenerateWithTools(ctx context.Context, prompt string, decls []ToolDeclaration) (*ToolReply, error) {
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{FunctionDeclarations: functionDeclarations(decls)}},
		ToolConfig: &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode: genai.FunctionCallingConfigModeAuto,
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("generate content with tools: %w", err)
	}

	reply := &ToolReply{Text: strings.TrimSpace(resp.Text())}
	if call := extractFunctionCall(resp); call != nil {
		reply.Call = &ToolCall{Name: call.Name, Args: call.Args}
	}

	if reply.Text == "" && reply.Call == nil {
		return nil, fmt.Errorf("empty response from model")
	}
	return reply, nil
}

// GenerateToolFollowup sends the original prompt, the model's tool-call turn,
// and the tool's JSON result back to the model for the final reply.
func (g *GeminiGateway) GenerateToolFollowup(ctx context.Context, prompt string, call ToolCall, resultJSON string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
		{
			Role: "model",
			Parts: []*genai.Part{{
				FunctionCall: &genai.FunctionCall{Name: call.Name, Args: call.Args},
			}},
		},
		{
			Role: "user",
			Parts: []*genai.Part{{
				FunctionResponse: &genai.FunctionResponse{
					Name:     call.Name,
					Response: map[string]any{"result": resultJSON},
				},
			}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate tool followup: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

// functionDeclarations maps tool declarations to the genai wire schema.
func functionDeclarations(decls []ToolDeclaration) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(decls))
	for _, d := range decls {
		properties := make(map[string]*genai.Schema, len(d.Params))
		for name, p := range d.Params {
			properties[name] = &genai.Schema{
				Type:        schemaType(p.Type),
				Description: p.Description,
			}
		}
		out = append(out, &genai.FunctionDeclaration{
			Name:        d.Name,
			Description: d.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   d.Required,
			},
		})
	}
	return out
}

func schemaType(t string) genai.Type {
	switch t {
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	default:
		return genai.TypeString
	}
}

// extractFunctionCall returns the first function call in the response, if any.
func extractFunctionCall(resp *genai.GenerateContentResponse) *genai.FunctionCall {
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.FunctionCall != nil {
				return part.FunctionCall
			}
		}
	}
	return nil
}
