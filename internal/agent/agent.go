package agent

import (
	"context"
	"fmt"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/llm"
	"evrental-backend/internal/logger"
)

// Agent runs one bounded tool loop per chat turn: it invokes the gateway
// with the transcript and tool catalogue, executes any tool invocation the
// reply embeds, feeds the observation back, and repeats until the model
// produces a final answer or the step bound is hit.
type Agent struct {
	gateway    llm.Gateway
	dispatcher *Dispatcher
	maxSteps   int
}

func NewAgent(gateway llm.Gateway, dispatcher *Dispatcher, maxSteps int) *Agent {
	if maxSteps <= 0 {
		maxSteps = 6
	}
	return &Agent{
		gateway:    gateway,
		dispatcher: dispatcher,
		maxSteps:   maxSteps,
	}
}

// Run produces the agent's reply for one user message. Gateway failures are
// returned to the caller; tool failures never are, they flow back to the
// model as observations.
func (a *Agent) Run(ctx context.Context, userID int32, history []domain.ChatMessage, query string) (string, error) {
	tools := Tools()
	instructions := llm.BuildInstructions(tools)

	log := logger.WithService("agent").With("user_id", userID, "instructions_version", llm.InstructionsVersion)

	// Tool-call turns extend a scratch transcript so the model sees its own
	// invocations and their observations.
	scratch := make([]domain.ChatMessage, 0, a.maxSteps*2)
	reply := ""

	for step := 0; step < a.maxSteps; step++ {
		turnHistory := append(append([]domain.ChatMessage{}, history...), scratch...)

		var err error
		reply, err = a.gateway.Generate(ctx, llm.Request{
			Instructions: instructions,
			History:      turnHistory,
			Query:        query,
			UserID:       userID,
			Tools:        tools,
		})
		if err != nil {
			return "", err
		}

		name, args, ok := parseToolCall(reply)
		if !ok {
			return reply, nil
		}

		observation := a.dispatcher.Dispatch(ctx, userID, name, args)
		log.Debug("tool observation", "tool", name, "step", step)

		// A successful draft creation is the turn's answer: the payload
		// must reach the extractor verbatim.
		if name == ToolCreateDraftTransaction {
			if payload := ExtractDraftPayload(observation); payload != nil {
				return observation, nil
			}
		}

		scratch = append(scratch,
			domain.ChatMessage{Role: domain.RoleAgent, Text: reply},
			domain.ChatMessage{Role: domain.RoleUser, Text: fmt.Sprintf("Observation from %s:\n%s", name, observation)},
		)
	}

	log.Warn("tool loop exhausted", "max_steps", a.maxSteps)
	return reply, nil
}
