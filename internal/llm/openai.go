package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/logger"
)

// OpenAIClient talks to any OpenAI-compatible chat-completions endpoint.
type OpenAIClient struct {
	endpoint string
	apiKey   string
	model    string
	timeout  time.Duration
	client   *http.Client
}

func NewOpenAIClient(endpoint, apiKey, model string, timeoutSeconds int) *OpenAIClient {
	return &OpenAIClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		timeout:  time.Duration(timeoutSeconds) * time.Second,
		client:   &http.Client{},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate implements Gateway. The call carries a fixed timeout; expiry and
// transport failures are wrapped as GatewayError.
func (c *OpenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []chatMessage{{Role: "system", Content: req.Instructions}}
	messages = append(messages, chatMessage{
		Role:    "system",
		Content: fmt.Sprintf("The current user's id is %d.", req.UserID),
	})
	for _, m := range req.History {
		role := "user"
		if m.Role == domain.RoleAgent {
			role = "assistant"
		}
		messages = append(messages, chatMessage{Role: role, Content: m.Text})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Query})

	body, err := json.Marshal(chatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.2,
	})
	if err != nil {
		return "", &GatewayError{Err: fmt.Errorf("encoding request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &GatewayError{Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	logger.ExternalServiceCall("llm", "chat_completion", "model", c.model)
	resp, err := c.client.Do(httpReq)
	if err != nil {
		logger.ExternalServiceResult("llm", "chat_completion", err)
		return "", &GatewayError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		err := fmt.Errorf("unexpected status %d: %s", resp.StatusCode, payload)
		logger.ExternalServiceResult("llm", "chat_completion", err)
		return "", &GatewayError{Err: err}
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", &GatewayError{Err: fmt.Errorf("decoding response: %w", err)}
	}
	if completion.Error != nil {
		return "", &GatewayError{Err: fmt.Errorf("provider error: %s", completion.Error.Message)}
	}
	if len(completion.Choices) == 0 {
		return "", &GatewayError{Err: fmt.Errorf("empty completion")}
	}

	logger.ExternalServiceResult("llm", "chat_completion", nil)
	return completion.Choices[0].Message.Content, nil
}
