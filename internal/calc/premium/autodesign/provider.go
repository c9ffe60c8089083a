package autodesign

import (
	"context"
	"fmt"

	"Ironforge/internal/calc/gate"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// Provider turns a prompt into a JSON document shaped like a gate suggestion.
type Provider interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// GeminiProvider asks a Gemini model for a suggestion in JSON mode with the
// suggestion schema attached.
type GeminiProvider struct {
	client *genai.Client
	Model  string
}

var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider returns ErrUnavailable when no key is configured.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, ErrUnavailable
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &GeminiProvider{client: client, Model: model}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, system, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
		Temperature:      genai.Ptr(float32(0.4)),
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	result, err := p.client.Models.GenerateContent(ctx, p.Model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	return result.Text(), nil
}

func enum[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func doorSchema() *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeObject,
		Description: "Inner pattern of one gate leaf.",
		Properties: map[string]*genai.Schema{
			"innerDesign": {
				Type:        genai.TypeString,
				Enum:        enum(gate.InnerDesigns),
				Description: "Fill pattern. Use sheet for privacy.",
			},
			"innerDesignSequence": {
				Type:        genai.TypeArray,
				Description: "1 to 3 bar steps repeated across the leaf.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"profileId": {Type: genai.TypeString, Description: "Bar profile id from the list."},
						"gap":       {Type: genai.TypeNumber, Description: "Gap after the bar in millimeters, usually 80 to 150."},
					},
					Required: []string{"profileId", "gap"},
				},
			},
		},
		Required: []string{"innerDesign", "innerDesignSequence"},
	}
}

func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"gateType": {
				Type: genai.TypeString,
				Enum: enum(gate.GateTypes),
			},
			"frameProfileId": {
				Type:        genai.TypeString,
				Description: "Outer frame profile id. Heavier sections for strong gates.",
			},
			"leftDoorWidth": {
				Type:        genai.TypeNumber,
				Description: "Left leaf width in millimeters, only for sliding-openable gates.",
			},
			"leftDoorDesign":  doorSchema(),
			"rightDoorDesign": doorSchema(),
		},
		Required: []string{"gateType", "frameProfileId", "leftDoorDesign", "rightDoorDesign"},
	}
}
