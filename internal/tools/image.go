package tools

import (
	"context"

	"github.com/simba1145141919810/ai-customer-bot-v3/internal/providers"
)

// SceneImageTool generates a product scene image (styling shots, mockups)
// from a free-text prompt.
type SceneImageTool struct {
	Images providers.ImageProvider
}

func (t *SceneImageTool) Name() string { return "generate_product_image" }

func (t *SceneImageTool) Description() string {
	return "Generate a product scene image, e.g. an outfit combination or an in-room mockup."
}

func (t *SceneImageTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt": map[string]any{
				"type":        "string",
				"description": "Description of the scene to generate",
			},
		},
		"required": []string{"prompt"},
	}
}

// Execute calls the image collaborator. Failure yields a failure-text Result
// with no media; it never escapes as an error.
func (t *SceneImageTool) Execute(ctx context.Context, args map[string]any) (Result, error) {
	prompt := stringArg(args, "prompt")
	if prompt == "" {
		return Result{Text: "Describe the scene you'd like and I'll generate it."}, nil
	}

	url, err := t.Images.GenerateImage(ctx, prompt)
	if err != nil {
		return Result{Text: "Image generation failed, please try again later."}, nil
	}
	return Result{
		Text:   "Here's the scene you asked for:",
		Images: []string{url},
	}, nil
}
