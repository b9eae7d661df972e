package quizgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"flutterlearn-service/internal/models"
)

// HTTPProvider generates questions through an OpenAI-compatible
// chat-completions endpoint.
type HTTPProvider struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
	Model   string
}

func NewHTTPProvider(baseURL, apiKey, model string) *HTTPProvider {
	return &HTTPProvider{
		Client: &http.Client{
			Timeout: 120 * time.Second, // generation can be slow
		},
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
	}
}

type chatCompletionRequest struct {
	Model       string                  `json:"model"`
	Messages    []chatCompletionMessage `json:"messages"`
	Stream      bool                    `json:"stream"`
	Temperature *float64                `json:"temperature,omitempty"`
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatCompletionMessage `json:"message"`
	} `json:"choices"`
}

func (p *HTTPProvider) Generate(ctx context.Context, req models.GenerationRequest) ([]RawQuestion, error) {
	temperature := 0.7
	payload := chatCompletionRequest{
		Model: p.Model,
		Messages: []chatCompletionMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildUserPrompt(req)},
		},
		Stream:      false,
		Temperature: &temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("generation service returned %d: %s", resp.StatusCode, string(raw))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("decoding completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("empty completion from generation service")
	}

	questions, err := ParseQuestionsJSON(completion.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	log.Printf("Generated %d candidate questions for module %s", len(questions), req.ModuleID)
	return questions, nil
}

// ParseQuestionsJSON decodes a model response into candidate questions,
// tolerating markdown code fences around the JSON array.
func ParseQuestionsJSON(content string) ([]RawQuestion, error) {
	clean := strings.TrimSpace(content)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.Trim(clean, "`")
	clean = strings.TrimSpace(clean)

	if clean == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var questions []RawQuestion
	if err := json.Unmarshal([]byte(clean), &questions); err != nil {
		// Some models wrap the array in an object.
		var wrapped struct {
			Questions []RawQuestion `json:"questions"`
		}
		if err2 := json.Unmarshal([]byte(clean), &wrapped); err2 == nil && len(wrapped.Questions) > 0 {
			return wrapped.Questions, nil
		}
		return nil, fmt.Errorf("decoding questions JSON: %w", err)
	}
	return questions, nil
}
