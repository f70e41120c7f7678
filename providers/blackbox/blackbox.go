package blackbox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/1broseidon/goimg/internal/imagefetch"
	"github.com/1broseidon/goimg/internal/logging"
	"github.com/1broseidon/goimg/models"
)

// DefaultAPIURL is the Blackbox chat endpoint images are requested from.
const DefaultAPIURL = "https://www.blackbox.ai/api/chat"

// validationToken is an opaque value the upstream API requires in the
// request body. It is protocol data, not a secret.
const validationToken = "00f37b34-a166-4efb-bce5-1312d87f2f94"

const maxTokens = 1024

// BlackboxProvider implements image generation against the Blackbox API.
// The API has no image endpoint of its own; images are requested through
// the chat endpoint with imageGenerationMode set, and the response body
// carries the image URL wrapped in fixed framing bytes.
type BlackboxProvider struct {
	apiURL  string
	headers map[string]string
	client  *http.Client
	logger  logging.Logger
}

// Option is a function type for configuring the BlackboxProvider.
type Option func(*BlackboxProvider)

// WithEndpoint overrides the POST target for generation requests.
func WithEndpoint(url string) Option {
	return func(p *BlackboxProvider) {
		p.apiURL = url
	}
}

// WithHeaders overrides the outbound HTTP headers sent with the
// generation request.
func WithHeaders(headers map[string]string) Option {
	return func(p *BlackboxProvider) {
		p.headers = headers
	}
}

// WithHTTPClient sets the HTTP client used for both the generation
// request and the image download.
func WithHTTPClient(client *http.Client) Option {
	return func(p *BlackboxProvider) {
		p.client = client
	}
}

// WithLogger sets the logger used for the verbose URL echo.
func WithLogger(logger logging.Logger) Option {
	return func(p *BlackboxProvider) {
		p.logger = logger
	}
}

// NewBlackboxProvider creates a new Blackbox provider. The API requires no
// key; the default headers mimic a browser request so the service accepts it.
func NewBlackboxProvider(options ...Option) *BlackboxProvider {
	p := &BlackboxProvider{
		apiURL:  DefaultAPIURL,
		headers: defaultHeaders(),
		client:  &http.Client{},
		logger:  logging.NewDefaultLogger(),
	}

	for _, option := range options {
		option(p)
	}

	return p
}

func defaultHeaders() map[string]string {
	return map[string]string{
		"accept":             "*/*",
		"accept-language":    "en-US,en;q=0.7",
		"content-type":       "application/json",
		"origin":             "https://www.blackbox.ai",
		"priority":           "u=1, i",
		"referer":            "https://www.blackbox.ai/",
		"sec-ch-ua":          `"Brave";v="131", "Chromium";v="131", "Not_A Brand";v="24"`,
		"sec-ch-ua-mobile":   "?0",
		"sec-ch-ua-platform": `"Windows"`,
		"sec-fetch-dest":     "empty",
		"sec-fetch-mode":     "cors",
		"sec-fetch-site":     "same-origin",
		"sec-gpc":            "1",
		"user-agent":         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	}
}

type message struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Role    string `json:"role"`
}

// generateRequest mirrors the request body the Blackbox web client sends.
// Every field is part of the upstream protocol; the null/false values are
// required as-is.
type generateRequest struct {
	Messages              []message              `json:"messages"`
	ID                    string                 `json:"id"`
	PreviewToken          *string                `json:"previewToken"`
	UserID                *string                `json:"userId"`
	CodeModelMode         bool                   `json:"codeModelMode"`
	AgentMode             map[string]interface{} `json:"agentMode"`
	TrendingAgentMode     map[string]interface{} `json:"trendingAgentMode"`
	IsMicMode             bool                   `json:"isMicMode"`
	UserSystemPrompt      *string                `json:"userSystemPrompt"`
	MaxTokens             int                    `json:"maxTokens"`
	PlaygroundTopP        *float64               `json:"playgroundTopP"`
	PlaygroundTemperature *float64               `json:"playgroundTemperature"`
	IsChromeExt           bool                   `json:"isChromeExt"`
	GithubToken           string                 `json:"githubToken"`
	ClickedAnswer2        bool                   `json:"clickedAnswer2"`
	ClickedAnswer3        bool                   `json:"clickedAnswer3"`
	ClickedForceWebSearch bool                   `json:"clickedForceWebSearch"`
	VisitFromDelta        bool                   `json:"visitFromDelta"`
	MobileClient          bool                   `json:"mobileClient"`
	UserSelectedModel     *string                `json:"userSelectedModel"`
	Validated             string                 `json:"validated"`
	ImageGenerationMode   bool                   `json:"imageGenerationMode"`
	WebSearchModePrompt   bool                   `json:"webSearchModePrompt"`
	DeepSearchMode        bool                   `json:"deepSearchMode"`
}

func newGenerateRequest(prompt string) generateRequest {
	return generateRequest{
		Messages: []message{
			{ID: "", Content: prompt, Role: "user"},
		},
		ID:                  "",
		CodeModelMode:       true,
		AgentMode:           map[string]interface{}{},
		TrendingAgentMode:   map[string]interface{}{},
		MaxTokens:           maxTokens,
		GithubToken:         "",
		Validated:           validationToken,
		ImageGenerationMode: true,
	}
}

// GenerateImage generates an image for the prompt and saves it to
// input.OutputPath. The response body wraps the image URL in 4 leading and
// 1 trailing framing bytes; that exact slicing is an observed contract of
// the upstream service and must not be widened.
func (p *BlackboxProvider) GenerateImage(ctx context.Context, input models.ImageGenerationInput) (*models.ImageGenerationResponse, error) {
	outputPath := input.OutputPath
	if outputPath == "" {
		outputPath = models.DefaultOutputPath
	}

	imageURL, err := p.requestImageURL(ctx, input.Prompt)
	if err != nil {
		return nil, err
	}

	if input.Verbose {
		p.logger.Infof("Image URL: %s", imageURL)
	}

	if err := imagefetch.Download(ctx, p.client, imageURL, outputPath); err != nil {
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

func (p *BlackboxProvider) requestImageURL(ctx context.Context, prompt string) (string, error) {
	jsonBody, err := json.Marshal(newGenerateRequest(prompt))
	if err != nil {
		return "", &models.UnexpectedError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.apiURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", &models.UnexpectedError{Err: err}
	}

	for name, value := range p.headers {
		req.Header.Set(name, value)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &models.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &models.TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &models.TransportError{Err: fmt.Errorf("API request failed with status code: %d, body: %s", resp.StatusCode, string(body))}
	}

	imageURL := stripFraming(string(body))
	if imageURL == "" || !strings.HasPrefix(imageURL, "https://") {
		return "", &models.NoURLFoundError{}
	}

	return imageURL, nil
}

// stripFraming removes the fixed 4-byte prefix and 1-byte suffix the
// upstream service wraps around the URL in its raw response.
func stripFraming(body string) string {
	if len(body) < 5 {
		return ""
	}
	return body[4 : len(body)-1]
}

// Close closes the Blackbox provider (no-op in this case)
func (p *BlackboxProvider) Close() error {
	return nil
}
