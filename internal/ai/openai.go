package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/egil10/nordnotat/internal/marketplace"
)

const (
	defaultBaseURL = "https://api.openai.com/v1/chat/completions"
	defaultModel   = "gpt-4o-mini"

	maxInputChars = 8000
	maxRetries    = 3
	initialDelay  = 1 * time.Second
)

// OpenAIClient generates document metadata with chat completions.
// Errors are returned to the caller, which substitutes deterministic
// fallbacks; this client never blocks an upload on its own.
// Implements marketplace.MetadataGenerator.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// OpenAIOption configures an OpenAIClient.
type OpenAIOption func(*OpenAIClient)

// WithBaseURL sets the completions endpoint.
func WithBaseURL(url string) OpenAIOption {
	return func(c *OpenAIClient) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithModel sets the model name.
func WithModel(model string) OpenAIOption {
	return func(c *OpenAIClient) {
		if model != "" {
			c.model = model
		}
	}
}

// NewOpenAIClient creates a metadata generator backed by the OpenAI
// chat completions API.
func NewOpenAIClient(apiKey string, opts ...OpenAIOption) *OpenAIClient {
	c := &OpenAIClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   defaultModel,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Summarize produces a 2-3 sentence summary.
func (c *OpenAIClient) Summarize(ctx context.Context, text string) (string, error) {
	content, err := c.complete(ctx, completion{
		system:    "You are a helpful assistant that creates concise summaries of academic documents. Summarize the key points in 2-3 sentences.",
		user:      "Summarize this document:\n\n" + truncate(text),
		maxTokens: 200,
	})
	if err != nil {
		return "", err
	}
	return content, nil
}

// Tags returns 5-10 topical tags.
func (c *OpenAIClient) Tags(ctx context.Context, text string) ([]string, error) {
	content, err := c.complete(ctx, completion{
		system:    `You are a helpful assistant that generates relevant tags for academic documents. Return a JSON object with a "tags" array of 5-10 strings.`,
		user:      "Generate tags for this document:\n\n" + truncate(text),
		maxTokens: 200,
		jsonMode:  true,
	})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Tags []string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	return parsed.Tags, nil
}

// CourseCodes detects university course codes mentioned in the text.
func (c *OpenAIClient) CourseCodes(ctx context.Context, text string) ([]string, error) {
	content, err := c.complete(ctx, completion{
		system:    `You are a helpful assistant that detects university course codes in text. Course codes are typically 2-4 letters followed by 4-5 numbers (e.g. STK1110, MAT1125). Return a JSON object with a "codes" array.`,
		user:      "Detect course codes in this text:\n\n" + truncate(text),
		maxTokens: 100,
		jsonMode:  true,
	})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Codes []string `json:"codes"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("decoding course codes: %w", err)
	}
	return parsed.Codes, nil
}

// Difficulty estimates document difficulty on a 1..5 scale.
func (c *OpenAIClient) Difficulty(ctx context.Context, text string) (int, error) {
	content, err := c.complete(ctx, completion{
		system:    `You are a helpful assistant that estimates the difficulty of academic documents on a scale of 1-5, where 1 is very easy and 5 is very difficult. Return a JSON object with a "difficulty" number.`,
		user:      "Estimate the difficulty of this document:\n\n" + truncate(text),
		maxTokens: 50,
		jsonMode:  true,
	})
	if err != nil {
		return 0, err
	}

	var parsed struct {
		Difficulty float64 `json:"difficulty"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return 0, fmt.Errorf("decoding difficulty: %w", err)
	}

	difficulty := int(math.Round(parsed.Difficulty))
	if difficulty < 1 {
		difficulty = 1
	}
	if difficulty > 5 {
		difficulty = 5
	}
	return difficulty, nil
}

// Flashcards generates 10-15 study cards from the text.
func (c *OpenAIClient) Flashcards(ctx context.Context, text string) ([]marketplace.Flashcard, error) {
	content, err := c.complete(ctx, completion{
		system:    `You are a helpful assistant that generates study flashcards from academic content. Return a JSON object with a "flashcards" array, where each flashcard has "front" and "back" properties.`,
		user:      "Generate 10-15 flashcards from this document:\n\n" + truncate(text),
		maxTokens: 2000,
		jsonMode:  true,
	})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Flashcards []struct {
			Front string `json:"front"`
			Back  string `json:"back"`
		} `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("decoding flashcards: %w", err)
	}

	cards := make([]marketplace.Flashcard, 0, len(parsed.Flashcards))
	for _, fc := range parsed.Flashcards {
		if fc.Front == "" && fc.Back == "" {
			continue
		}
		cards = append(cards, marketplace.Flashcard{Front: fc.Front, Back: fc.Back})
	}
	return cards, nil
}

type completion struct {
	system    string
	user      string
	maxTokens int
	jsonMode  bool
}

// complete sends one chat completion with retry and exponential
// backoff on rate limits and server errors.
func (c *OpenAIClient) complete(ctx context.Context, req completion) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("api key not set")
	}

	chatReq := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.system},
			{Role: "user", Content: req.user},
		},
		MaxTokens: req.maxTokens,
	}
	if req.jsonMode {
		chatReq.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(chatReq)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt))) * initialDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("creating request: %w", err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(httpReq)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("reading response: %w", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			var aerr apiError
			if json.Unmarshal(respBody, &aerr) == nil && aerr.Error.Message != "" {
				lastErr = fmt.Errorf("api error (%d): %s", resp.StatusCode, aerr.Error.Message)
			} else {
				lastErr = fmt.Errorf("api error (%d): %s", resp.StatusCode, string(respBody))
			}
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				continue
			}
			return "", lastErr
		}

		var chatResp chatResponse
		if err := json.Unmarshal(respBody, &chatResp); err != nil {
			return "", fmt.Errorf("decoding response: %w", err)
		}
		if len(chatResp.Choices) == 0 {
			return "", fmt.Errorf("no choices returned")
		}
		return chatResp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("max retries (%d) exceeded: %w", maxRetries, lastErr)
}

func truncate(text string) string {
	if len(text) > maxInputChars {
		return text[:maxInputChars]
	}
	return text
}
