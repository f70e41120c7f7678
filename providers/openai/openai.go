package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/1broseidon/goimg/internal/imagefetch"
	"github.com/1broseidon/goimg/models"
)

const defaultModel = openai.CreateImageModelDallE3

// OpenAIProvider implements image generation against the OpenAI image API.
// The API returns a URL; the provider downloads the bytes and writes them to
// the output path, matching the contract of the other providers.
type OpenAIProvider struct {
	model      string
	client     *openai.Client
	httpClient *http.Client
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider() (*OpenAIProvider, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	model := os.Getenv("OPENAI_IMAGE_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &OpenAIProvider{
		model:  model,
		client: openai.NewClient(apiKey),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// GenerateImage generates an image for the prompt and saves it to
// input.OutputPath
func (p *OpenAIProvider) GenerateImage(ctx context.Context, input models.ImageGenerationInput) (*models.ImageGenerationResponse, error) {
	outputPath := input.OutputPath
	if outputPath == "" {
		outputPath = models.DefaultOutputPath
	}

	size := input.Size
	if size == "" {
		size = openai.CreateImageSize1024x1024
	}

	n := input.Number
	if n <= 0 {
		n = 1
	}

	req := openai.ImageRequest{
		Prompt:         input.Prompt,
		Size:           size,
		ResponseFormat: openai.CreateImageResponseFormatURL,
		N:              n,
		Model:          p.model,
	}

	resp, err := p.client.CreateImage(ctx, req)
	if err != nil {
		return nil, &models.TransportError{Err: err}
	}

	if len(resp.Data) == 0 {
		return nil, &models.NoURLFoundError{}
	}

	imageURL := resp.Data[0].URL

	if err := imagefetch.Download(ctx, p.httpClient, imageURL, outputPath); err != nil {
		var downloadErr *models.DownloadError
		if errors.As(err, &downloadErr) {
			return nil, err
		}
		return nil, &models.UnexpectedError{Err: err}
	}

	return &models.ImageGenerationResponse{
		Status:    models.StatusImageGenerated,
		URL:       imageURL,
		SavedPath: outputPath,
	}, nil
}

// Close closes the OpenAI provider (no-op in this case)
func (p *OpenAIProvider) Close() error {
	return nil
}
