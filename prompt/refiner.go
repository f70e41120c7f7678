// Package prompt expands terse user prompts into richer image prompts
// before they are sent to an image provider.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultRefinerModel = "gemini-1.5-flash"

const refineInstruction = "Rewrite the following text as a single detailed prompt for an " +
	"image generation model. Describe the subject, style, lighting and composition. " +
	"Reply with the prompt only, no commentary.\n\n"

// Refiner rewrites a prompt into one better suited for image generation.
type Refiner interface {
	Refine(ctx context.Context, prompt string) (string, error)
}

// GeminiRefiner implements Refiner on top of the Google Gemini API.
type GeminiRefiner struct {
	modelName string
	client    *genai.Client
}

// NewGeminiRefiner creates a new Gemini-backed refiner
func NewGeminiRefiner(ctx context.Context) (*GeminiRefiner, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	modelName := os.Getenv("GEMINI_REFINER_MODEL")
	if modelName == "" {
		modelName = defaultRefinerModel
	}

	return &GeminiRefiner{
		modelName: modelName,
		client:    client,
	}, nil
}

// Refine rewrites the prompt with the configured Gemini model
func (r *GeminiRefiner) Refine(ctx context.Context, prompt string) (string, error) {
	model := r.client.GenerativeModel(r.modelName)

	resp, err := model.GenerateContent(ctx, genai.Text(refineInstruction+prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no content generated")
	}

	refined, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected content type in response")
	}

	result := strings.TrimSpace(string(refined))
	if result == "" {
		return "", errors.New("no content generated")
	}

	return result, nil
}

// Close closes the Gemini client
func (r *GeminiRefiner) Close() error {
	return r.client.Close()
}
