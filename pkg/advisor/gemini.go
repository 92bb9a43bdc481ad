package advisor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/lenslab/go-lenscoach/internal/httpc"
)

// DefaultModel is the Gemini model used for frame critique.
const DefaultModel = "gemini-2.0-flash"

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

// Transport sends one multimodal prompt to a model and returns the raw
// text of its reply. jpeg may be nil for text-only prompts.
type Transport interface {
	Generate(ctx context.Context, prompt string, jpeg []byte) (string, error)
}

// Gemini calls the Gemini generateContent API with an inline JPEG.
type Gemini struct {
	apiKey string
	model  string
	client *http.Client
}

// NewGemini creates a Gemini transport. An empty model uses
// DefaultModel.
func NewGemini(apiKey, model string) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{apiKey: apiKey, model: model, client: httpc.Client}
}

var _ Transport = (*Gemini)(nil)

// geminiResponse is the response structure from the Gemini API.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// Generate implements Transport.
func (g *Gemini) Generate(ctx context.Context, prompt string, jpeg []byte) (string, error) {
	if g.apiKey == "" {
		return "", ErrNoAPIKey
	}

	parts := []map[string]interface{}{
		{"text": prompt},
	}
	if len(jpeg) > 0 {
		parts = append(parts, map[string]interface{}{
			"inline_data": map[string]string{
				"mime_type": "image/jpeg",
				"data":      base64.StdEncoding.EncodeToString(jpeg),
			},
		})
	}

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": parts},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     0.7,
			"topP":            0.95,
			"maxOutputTokens": 1000,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("advisor: marshal request: %w", err)
	}

	url := fmt.Sprintf(geminiEndpoint, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("advisor: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("advisor: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(raw, &errResp) == nil && errResp.Error.Message != "" {
			apiErr.Message = errResp.Error.Message
		} else {
			apiErr.Message = truncate(string(raw), 200)
		}
		return "", apiErr
	}

	var result geminiResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("advisor: decode response: %w", err)
	}
	if result.Error.Message != "" {
		return "", &APIError{StatusCode: result.Error.Code, Message: result.Error.Message}
	}
	if len(result.Candidates) > 0 && len(result.Candidates[0].Content.Parts) > 0 {
		return result.Candidates[0].Content.Parts[0].Text, nil
	}
	return "", ErrEmptyResponse
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
