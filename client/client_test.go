package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/goimg/client"
	"github.com/1broseidon/goimg/models"
)

type mockProvider struct {
	generateImage func(ctx context.Context, input models.ImageGenerationInput) (*models.ImageGenerationResponse, error)
	closed        bool
}

func (m *mockProvider) GenerateImage(ctx context.Context, input models.ImageGenerationInput) (*models.ImageGenerationResponse, error) {
	return m.generateImage(ctx, input)
}

func (m *mockProvider) Close() error {
	m.closed = true
	return nil
}

type mockRefiner struct {
	refine func(ctx context.Context, prompt string) (string, error)
}

func (m *mockRefiner) Refine(ctx context.Context, prompt string) (string, error) {
	return m.refine(ctx, prompt)
}

func TestNewClient(t *testing.T) {
	c, err := client.NewClient(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.NoError(t, c.Close())
}

func TestGenerateImage_RegisteredProvider(t *testing.T) {
	c, err := client.NewClient(context.Background())
	require.NoError(t, err)

	mock := &mockProvider{
		generateImage: func(ctx context.Context, input models.ImageGenerationInput) (*models.ImageGenerationResponse, error) {
			assert.Equal(t, "a beautiful girl", input.Prompt)
			return &models.ImageGenerationResponse{
				Status:    models.StatusImageGenerated,
				URL:       "https://example.com/img.jpg",
				SavedPath: input.OutputPath,
			}, nil
		},
	}
	c.RegisterProvider("mock", mock)

	resp, err := c.GenerateImage(context.Background(), models.ImageGenerationInput{
		Prompt:     "a beautiful girl",
		OutputPath: "out.jpg",
		Provider:   "mock",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusImageGenerated, resp.Status)
	assert.Equal(t, "mock", resp.Provider)
	assert.Equal(t, "out.jpg", resp.SavedPath)
}

func TestGenerateImage_DefaultProvider(t *testing.T) {
	c, err := client.NewClient(context.Background(), client.WithDefaultProvider("mock"))
	require.NoError(t, err)

	called := false
	c.RegisterProvider("mock", &mockProvider{
		generateImage: func(ctx context.Context, input models.ImageGenerationInput) (*models.ImageGenerationResponse, error) {
			called = true
			return &models.ImageGenerationResponse{Status: models.StatusImageGenerated}, nil
		},
	})

	_, err = c.GenerateImage(context.Background(), models.ImageGenerationInput{Prompt: "anything"})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestGenerateImage_UnsupportedProvider(t *testing.T) {
	c, err := client.NewClient(context.Background())
	require.NoError(t, err)

	_, err = c.GenerateImage(context.Background(), models.ImageGenerationInput{
		Prompt:   "anything",
		Provider: "does-not-exist",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrUnsupportedProvider)
}

func TestGenerateImage_PromptRefiner(t *testing.T) {
	t.Run("refined prompt reaches the provider", func(t *testing.T) {
		refiner := &mockRefiner{
			refine: func(ctx context.Context, prompt string) (string, error) {
				return "a detailed painting of " + prompt, nil
			},
		}

		c, err := client.NewClient(context.Background(), client.WithPromptRefiner(refiner))
		require.NoError(t, err)

		var seenPrompt string
		c.RegisterProvider("mock", &mockProvider{
			generateImage: func(ctx context.Context, input models.ImageGenerationInput) (*models.ImageGenerationResponse, error) {
				seenPrompt = input.Prompt
				return &models.ImageGenerationResponse{Status: models.StatusImageGenerated}, nil
			},
		})

		_, err = c.GenerateImage(context.Background(), models.ImageGenerationInput{
			Prompt:   "a cat",
			Provider: "mock",
			Refine:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, "a detailed painting of a cat", seenPrompt)
	})

	t.Run("refiner failure falls back to the original prompt", func(t *testing.T) {
		refiner := &mockRefiner{
			refine: func(ctx context.Context, prompt string) (string, error) {
				return "", assert.AnError
			},
		}

		c, err := client.NewClient(context.Background(), client.WithPromptRefiner(refiner))
		require.NoError(t, err)

		var seenPrompt string
		c.RegisterProvider("mock", &mockProvider{
			generateImage: func(ctx context.Context, input models.ImageGenerationInput) (*models.ImageGenerationResponse, error) {
				seenPrompt = input.Prompt
				return &models.ImageGenerationResponse{Status: models.StatusImageGenerated}, nil
			},
		})

		_, err = c.GenerateImage(context.Background(), models.ImageGenerationInput{
			Prompt:   "a cat",
			Provider: "mock",
			Refine:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, "a cat", seenPrompt)
	})

	t.Run("refiner is skipped when the input does not ask for it", func(t *testing.T) {
		refiner := &mockRefiner{
			refine: func(ctx context.Context, prompt string) (string, error) {
				t.Fatal("refiner should not be called")
				return "", nil
			},
		}

		c, err := client.NewClient(context.Background(), client.WithPromptRefiner(refiner))
		require.NoError(t, err)

		c.RegisterProvider("mock", &mockProvider{
			generateImage: func(ctx context.Context, input models.ImageGenerationInput) (*models.ImageGenerationResponse, error) {
				return &models.ImageGenerationResponse{Status: models.StatusImageGenerated}, nil
			},
		})

		_, err = c.GenerateImage(context.Background(), models.ImageGenerationInput{
			Prompt:   "a cat",
			Provider: "mock",
		})
		require.NoError(t, err)
	})
}

func TestClose_ClosesProviders(t *testing.T) {
	c, err := client.NewClient(context.Background())
	require.NoError(t, err)

	mock := &mockProvider{}
	c.RegisterProvider("mock", mock)

	require.NoError(t, c.Close())
	assert.True(t, mock.closed)
}
