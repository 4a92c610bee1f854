package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
	"github.com/aistudybuddy/study-buddy-api/internal/core/ports"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-1.5-flash"

	systemPrompt = "You are an intelligent AI Study Buddy, an educational assistant designed to help students learn effectively. " +
		"You provide clear, accurate, and helpful explanations on various academic topics. " +
		"Be encouraging, patient, and thorough in your responses."
)

// GeminiConfig configures a single credential slot for the hosted
// text-generation API.
type GeminiConfig struct {
	Name        string // slot name reported in errors and metrics
	APIKey      string
	Model       string  // defaults to gemini-1.5-flash
	BaseURL     string  // overridable for tests
	MaxTokens   int     // fixed generation config, 1000 by default
	Temperature float64 // fixed generation config, 0.7 by default
}

// GeminiProvider is one credential against the hosted completion API. Each
// Complete call is a single stateless request: no conversation history is
// carried between calls.
type GeminiProvider struct {
	cfg    GeminiConfig
	client *http.Client
}

// NewGeminiProvider builds a provider for one API credential.
func NewGeminiProvider(cfg GeminiConfig, client *http.Client) *GeminiProvider {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &GeminiProvider{cfg: cfg, client: client}
}

func (p *GeminiProvider) Name() string {
	return p.cfg.Name
}

// --- wire types ---

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
	Role  string         `json:"role,omitempty"`
}

type generateRequest struct {
	Contents          []generateContent `json:"contents"`
	SystemInstruction *generateContent  `json:"systemInstruction,omitempty"`
	GenerationConfig  struct {
		MaxOutputTokens int     `json:"maxOutputTokens"`
		Temperature     float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete issues one generateContent request. Any transport error, non-2xx
// status, or response without a text candidate is a failure.
func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (*ports.CompletionResult, error) {
	body := generateRequest{
		Contents:          []generateContent{{Parts: []generatePart{{Text: prompt}}, Role: "user"}},
		SystemInstruction: &generateContent{Parts: []generatePart{{Text: systemPrompt}}},
	}
	body.GenerationConfig.MaxOutputTokens = p.cfg.MaxTokens
	body.GenerationConfig.Temperature = p.cfg.Temperature

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", p.cfg.Name, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.cfg.BaseURL, p.cfg.Model, p.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", p.cfg.Name, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.cfg.Name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", p.cfg.Name, err)
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", p.cfg.Name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decoded.Error != nil {
			return nil, fmt.Errorf("%s: upstream status %d: %s", p.cfg.Name, resp.StatusCode, decoded.Error.Message)
		}
		return nil, fmt.Errorf("%s: upstream status %d", p.cfg.Name, resp.StatusCode)
	}

	text := candidateText(decoded)
	if text == "" {
		return nil, fmt.Errorf("%s: empty completion", p.cfg.Name)
	}

	return &ports.CompletionResult{
		Text:  text,
		Model: p.cfg.Model,
		Tokens: domain.TokenEstimate{
			Input:  estimateTokens(prompt),
			Output: estimateTokens(text),
		},
	}, nil
}

func candidateText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// estimateTokens approximates token usage from the word count. The upstream
// API does not bill through this service, so a rough estimate is enough.
func estimateTokens(text string) int {
	return int(float64(len(strings.Fields(text))) * 1.3)
}
