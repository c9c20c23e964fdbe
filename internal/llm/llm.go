package llm

import (
	"context"
	"fmt"

	"evrental-backend/internal/domain"
)

// ToolDescriptor describes one callable operation exposed to the model.
// The set of tools is fixed at startup; descriptors only exist so the
// gateway can explain them to the model.
type ToolDescriptor struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters"` // name -> description, required unless marked optional
}

// Request is one generation call: role instructions, the conversation so
// far, the latest query, the caller's identity as a side-channel value, and
// the tools the model may invoke.
type Request struct {
	Instructions string
	History      []domain.ChatMessage
	Query        string
	UserID       int32
	Tools        []ToolDescriptor
}

// Gateway is the external text-generation boundary. Implementations return
// free-form text that may embed a tool invocation or a final answer.
type Gateway interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GatewayError wraps transport and timeout failures so callers can report
// them to the user without ending the session.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("llm gateway: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
