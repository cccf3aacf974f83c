/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package analysis classifies an uploaded image with an OpenAI-compatible
// vision model and infers related vitamin deficiencies.
package analysis

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/humaidq/vitascan/logging"
	"github.com/humaidq/vitascan/model"
)

// MinConfidence is the lowest detection confidence that yields a diagnosis.
const MinConfidence = 0.6

const (
	validateMaxTokens = 300
	detectMaxTokens   = 300
	vitaminMaxTokens  = 800
)

var logger = logging.Logger(logging.SourceAnalysis)

// Config holds the model endpoint configuration.
type Config struct {
	// URL is the OpenAI-compatible API root, e.g. https://openrouter.ai/api/v1.
	URL     string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// Client runs the analysis pipeline against a chat completions endpoint.
type Client struct {
	http  *resty.Client
	model string
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatChoice struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type validation struct {
	IsMedicalImage bool   `json:"is_medical_image"`
	Reason         string `json:"reason"`
}

type detection struct {
	DetectedDisease string  `json:"detected_disease"`
	ConfidenceScore float64 `json:"confidence_score"`
}

type vitaminInference struct {
	VitaminDeficiencies []model.VitaminFinding `json:"vitamin_deficiencies"`
}

// New creates a client. URL and Model are required.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.URL) == "" || strings.TrimSpace(cfg.Model) == "" {
		return nil, errConfigIncomplete
	}

	rc := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.URL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if cfg.APIKey != "" {
		rc.SetAuthToken(cfg.APIKey)
	}

	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}

	return &Client{http: rc, model: cfg.Model}, nil
}

// Analyze validates the image, detects a condition and infers vitamin
// deficiencies for it. Declined images yield *RejectedError.
func (c *Client) Analyze(ctx context.Context, image []byte, contentType string) (*model.AnalysisResult, error) {
	if len(image) == 0 {
		return nil, errEmptyImage
	}

	dataURI := imageDataURI(image, contentType)

	var v validation
	if err := c.complete(ctx, imageMessage(validatePrompt, dataURI), validateMaxTokens, &v); err != nil {
		return nil, fmt.Errorf("image validation failed: %w", err)
	}

	if !v.IsMedicalImage {
		logger.Info("Image rejected as not medical", "reason", v.Reason)
		return nil, &RejectedError{Message: NotMedicalImageMessage, Reason: v.Reason}
	}

	var d detection
	if err := c.complete(ctx, imageMessage(buildDetectPrompt(), dataURI), detectMaxTokens, &d); err != nil {
		return nil, fmt.Errorf("condition detection failed: %w", err)
	}

	if d.ConfidenceScore < MinConfidence {
		logger.Info("Detection below confidence threshold", "condition", d.DetectedDisease, "confidence", d.ConfidenceScore)
		return nil, &RejectedError{Message: LowConfidenceMessage}
	}

	var vi vitaminInference
	textMsg := chatMessage{Role: "user", Content: buildVitaminPrompt(d.DetectedDisease)}
	if err := c.complete(ctx, textMsg, vitaminMaxTokens, &vi); err != nil {
		return nil, fmt.Errorf("vitamin inference failed: %w", err)
	}

	if vi.VitaminDeficiencies == nil {
		vi.VitaminDeficiencies = []model.VitaminFinding{}
	}

	return &model.AnalysisResult{
		DetectedDisease:     d.DetectedDisease,
		ConfidenceScore:     d.ConfidenceScore,
		VitaminDeficiencies: vi.VitaminDeficiencies,
	}, nil
}

func (c *Client) complete(ctx context.Context, msg chatMessage, maxTokens int, out any) error {
	req := chatRequest{
		Model:     c.model,
		Messages:  []chatMessage{msg},
		MaxTokens: maxTokens,
	}

	var chatResp chatResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&chatResp).
		SetError(&chatResp).
		Post("/chat/completions")
	if err != nil {
		return fmt.Errorf("failed to call model: %w", err)
	}

	if chatResp.Error != nil {
		return fmt.Errorf("model error: %s", chatResp.Error.Message)
	}

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("model returned status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	if len(chatResp.Choices) == 0 {
		return errNoChoices
	}

	content := chatResp.Choices[0].Message.Content
	logger.Debug("Model reply", "chars", len(content))

	return decodeReply(content, out)
}

func imageMessage(prompt, dataURI string) chatMessage {
	return chatMessage{
		Role: "user",
		Content: []contentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &imageURL{URL: dataURI}},
		},
	}
}

func imageDataURI(image []byte, contentType string) string {
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}

	contentType = strings.TrimSpace(contentType)
	if !strings.HasPrefix(contentType, "image/") {
		contentType = http.DetectContentType(image)
		if !strings.HasPrefix(contentType, "image/") {
			contentType = "image/jpeg"
		}
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(image)
}

// decodeReply extracts the JSON object from a model reply, tolerating
// surrounding prose and markdown code fences.
func decodeReply(content string, out any) error {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")

	if start == -1 || end < start {
		return errNoJSONObject
	}

	if err := json.Unmarshal([]byte(content[start:end+1]), out); err != nil {
		return fmt.Errorf("failed to parse model reply: %w", err)
	}

	return nil
}
