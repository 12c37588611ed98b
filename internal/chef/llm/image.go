package llm

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/shneydor/jeff-the-langgraph-chef/internal/chef/model"
	errx "github.com/shneydor/jeff-the-langgraph-chef/internal/core/error"
	logx "github.com/shneydor/jeff-the-langgraph-chef/pkg/logger"
)

// ImageClient is the opaque image collaborator: prompt in, raw image bytes
// out. A billing/quota failure is reported verbatim so the generation stage
// can trigger its demo fallback.
type ImageClient interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// GeminiImage generates images through Imagen on the shared genai client.
type GeminiImage struct {
	client      *genai.Client
	model       string
	aspectRatio string
	timeout     time.Duration
}

// NewGeminiImage constructs the image collaborator.
func NewGeminiImage(client *genai.Client, cfg model.ImageModelConfig, timeout time.Duration) *GeminiImage {
	return &GeminiImage{
		client:      client,
		model:       cfg.Model,
		aspectRatio: cfg.AspectRatio,
		timeout:     timeout,
	}
}

// Generate produces exactly one image for the prompt.
func (g *GeminiImage) Generate(ctx context.Context, prompt string) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	logx.Debug().Str("model", g.model).Msg("Generating image")
	resp, err := g.client.Models.GenerateImages(callCtx, g.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: "image/jpeg",
		AspectRatio:    g.aspectRatio,
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, errx.Timeout(err, "image generation timed out")
		}
		return nil, fmt.Errorf("image generation: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, fmt.Errorf("image generation: no images returned")
	}
	return resp.GeneratedImages[0].Image.ImageBytes, nil
}

// IsBillingError reports whether an upstream failure is the billing/quota
// condition that triggers the demo-image fallback instead of a hard failure.
func IsBillingError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "billed users") || strings.Contains(msg, "billing")
}

// DemoImagePNG synthesizes the placeholder image used on the billing
// fallback path: a tomato-red square with a pale center, deliberately
// unmistakable as a real render.
func DemoImagePNG() []byte {
	const size = 256
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	tomato := color.RGBA{R: 0xE5, G: 0x3B, B: 0x2C, A: 0xFF}
	pale := color.RGBA{R: 0xF6, G: 0xC9, B: 0xB8, A: 0xFF}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := x-size/2, y-size/2
			if dx*dx+dy*dy < (size/6)*(size/6) {
				img.Set(x, y, pale)
			} else {
				img.Set(x, y, tomato)
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		// A fixed-size in-memory encode cannot fail in practice.
		return nil
	}
	return buf.Bytes()
}
