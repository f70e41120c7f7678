package client

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/1broseidon/goimg/common"
	"github.com/1broseidon/goimg/internal/logging"
	"github.com/1broseidon/goimg/models"
	"github.com/1broseidon/goimg/prompt"
	"github.com/1broseidon/goimg/providers/blackbox"
	"github.com/1broseidon/goimg/providers/openai"
)

// Provider interface defines the methods that each provider must implement
type Provider interface {
	GenerateImage(ctx context.Context, input models.ImageGenerationInput) (*models.ImageGenerationResponse, error)
	Close() error
}

// Client represents the main goimg client
type Client struct {
	providers       map[string]Provider
	defaultProvider string
	refiner         prompt.Refiner
	logger          logging.Logger
	mu              sync.RWMutex
}

// NewClient creates a new goimg client without automatic provider registration
func NewClient(ctx context.Context, options ...ClientOption) (*Client, error) {
	c := &Client{
		providers: make(map[string]Provider),
		logger:    logging.NewDefaultLogger(),
	}

	// Set default log level to Disabled
	c.logger.SetLevel(common.DisabledLevel)

	// Apply options
	for _, option := range options {
		option(c)
	}

	c.logger.Info("Initializing goimg client")

	return c, nil
}

// RegisterProvider registers a new provider with the client
func (c *Client) RegisterProvider(name string, provider Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers[name] = provider
}

// setDefaultProviderIfEmpty sets the default provider if it hasn't been set yet
func (c *Client) setDefaultProviderIfEmpty(provider string) {
	if c.defaultProvider == "" {
		c.defaultProvider = provider
	}
}

// Close closes all provider clients
func (c *Client) Close() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var lastErr error
	for name, provider := range c.providers {
		if err := provider.Close(); err != nil {
			c.logger.Error("Error closing provider:", name, "error:", err)
			lastErr = err
		}
	}

	return lastErr
}

// GenerateImage generates an image using the provider named in the input,
// falling back to the default provider, and finally to Blackbox, which needs
// no configuration. The provider downloads the image and writes it to
// input.OutputPath; the response carries the status, the source URL and the
// saved path.
func (c *Client) GenerateImage(ctx context.Context, input models.ImageGenerationInput) (*models.ImageGenerationResponse, error) {
	providerName := c.resolveProviderName(input.Provider)

	c.mu.RLock()
	p, ok := c.providers[providerName]
	c.mu.RUnlock()

	if !ok {
		// Provider not initialized, attempt to initialize it
		if err := c.initializeProvider(providerName); err != nil {
			c.logger.Error("Failed to initialize provider:", providerName, "error:", err)
			return nil, fmt.Errorf("failed to initialize provider %s: %w", providerName, err)
		}

		c.mu.RLock()
		p, ok = c.providers[providerName]
		c.mu.RUnlock()

		if !ok {
			c.logger.Error("Provider initialization failed:", providerName)
			return nil, ErrUnsupportedProvider
		}
	}

	if input.Refine && c.refiner != nil {
		refined, err := c.refiner.Refine(ctx, input.Prompt)
		if err != nil {
			// Refinement is best-effort; fall back to the original prompt
			c.logger.Warn("Failed to refine prompt:", err)
		} else {
			c.logger.Debugf("Refined prompt: %s", refined)
			input.Prompt = refined
		}
	}

	c.logger.Debugf("Generating image with provider %s", providerName)
	resp, err := p.GenerateImage(ctx, input)
	if err != nil {
		c.logger.Error("Failed to generate image:", err)
		return nil, err
	}

	resp.Provider = providerName
	return resp, nil
}

func (c *Client) resolveProviderName(name string) string {
	if name != "" {
		return name
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.defaultProvider != "" {
		return c.defaultProvider
	}
	return "blackbox"
}

// initializeProvider initializes a specific provider
func (c *Client) initializeProvider(providerName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch providerName {
	case "blackbox":
		c.providers["blackbox"] = blackbox.NewBlackboxProvider(blackbox.WithLogger(c.logger))
		c.setDefaultProviderIfEmpty("blackbox")
		c.logger.Info("Registered Blackbox provider")
	case "openai":
		if openaiAPIKey := os.Getenv("OPENAI_API_KEY"); openaiAPIKey != "" {
			openaiProvider, err := openai.NewOpenAIProvider()
			if err != nil {
				return err
			}
			c.providers["openai"] = openaiProvider
			c.setDefaultProviderIfEmpty("openai")
			c.logger.Info("Registered OpenAI provider")
		} else {
			return fmt.Errorf("OPENAI_API_KEY not set")
		}
	default:
		return ErrUnsupportedProvider
	}

	return nil
}
