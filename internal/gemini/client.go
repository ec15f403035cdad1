// Package gemini implements the product image analysis backend on top of
// Google's Gemini API.
package gemini

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"log/slog"
	"os"

	_ "golang.org/x/image/webp" // register WebP decoder
	"google.golang.org/genai"

	"github.com/edgard/halalbot/internal/config"
	"github.com/edgard/halalbot/internal/errs"
	"github.com/edgard/halalbot/internal/i18n"
)

// Client analyzes a product image and returns the model's free-text answer.
type Client interface {
	Analyze(ctx context.Context, imagePath string, lang i18n.Language) (string, error)
}

// contentGenerator is the subset of *genai.Models the client needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type sdkClient struct {
	models        contentGenerator
	log           *slog.Logger
	contentConfig *genai.GenerateContentConfig
	modelName     string
}

// NewClient creates a Gemini client using the API key and model from cfg.
func NewClient(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger) (Client, error) {
	if cfg.APIKey == "" {
		return nil, errs.NewConfigError("gemini API key is required", nil)
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errs.NewAnalysisBackendError("failed to create genai client", err)
	}

	c := newSDKClient(gi.Models, cfg, log)
	c.log.Info("Gemini client initialized successfully", "model", cfg.Model)
	return c, nil
}

func newSDKClient(models contentGenerator, cfg config.GeminiConfig, log *slog.Logger) *sdkClient {
	temperature := cfg.Temperature
	return &sdkClient{
		models: models,
		log:    log.With("component", "gemini_client"),
		contentConfig: &genai.GenerateContentConfig{
			Temperature: &temperature,
		},
		modelName: cfg.Model,
	}
}

// Analyze decodes the image at imagePath and asks the model for a report
// written in lang.
func (c *sdkClient) Analyze(ctx context.Context, imagePath string, lang i18n.Language) (string, error) {
	data, mimeType, err := loadImage(imagePath)
	if err != nil {
		c.log.WarnContext(ctx, "Image could not be decoded", "path", imagePath, "error", err)
		return "", err
	}

	prompt := fmt.Sprintf(AnalysisInstruction, i18n.Lookup(lang).Name)
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(data, mimeType),
		}, genai.RoleUser),
	}

	c.log.DebugContext(ctx, "Generating image analysis", "image_size", len(data), "mime_type", mimeType, "language", string(lang))

	resp, err := c.models.GenerateContent(ctx, c.modelName, contents, c.contentConfig)
	if err != nil {
		c.log.ErrorContext(ctx, "Gemini image analysis API call failed", "error", err)
		return "", errs.NewAnalysisBackendError("gemini image analysis failed", err)
	}

	return c.extractTextFromResponse(ctx, resp)
}

func (c *sdkClient) extractTextFromResponse(ctx context.Context, resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errs.NewAnalysisBackendError("gemini returned no response", nil)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		reasonMsg := fmt.Sprintf("%v", resp.PromptFeedback.BlockReason)
		if resp.PromptFeedback.BlockReasonMessage != "" {
			reasonMsg = resp.PromptFeedback.BlockReasonMessage
		}
		c.log.ErrorContext(ctx, "Gemini request blocked", "reason", reasonMsg)
		return "", errs.NewAnalysisBackendError("analysis blocked by safety filter: "+reasonMsg, nil)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		finishReason := "unknown"
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != genai.FinishReasonUnspecified {
			finishReason = fmt.Sprintf("%v", resp.Candidates[0].FinishReason)
		}
		c.log.WarnContext(ctx, "Gemini response missing candidates or content", "finish_reason", finishReason)
		return "", errs.NewAnalysisBackendError("analysis returned no content, finish reason: "+finishReason, nil)
	}

	text := resp.Text()
	if text == "" {
		return "", errs.NewAnalysisBackendError("analysis returned empty text", nil)
	}

	return text, nil
}

// loadImage reads and fully decodes the image, returning its bytes and MIME type.
func loadImage(path string) ([]byte, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", errs.NewImageDecodeError("failed to open image", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", errs.NewImageDecodeError("failed to read image", err)
	}

	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", errs.NewImageDecodeError("failed to decode image", err)
	}

	return data, "image/" + format, nil
}
