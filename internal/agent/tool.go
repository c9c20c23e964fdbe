package agent

import (
	"encoding/json"
	"strconv"
	"strings"

	"evrental-backend/internal/llm"
)

// Tool names form a closed set; Dispatch switches on them. There is no
// dynamic registration.
const (
	ToolOnboardUser            = "onboard_user"
	ToolSearchVehicles         = "search_vehicles"
	ToolCreateDraftTransaction = "create_draft_transaction"
	ToolCancelTransaction      = "cancel_transaction"
)

// Tools returns the descriptors handed to the gateway.
func Tools() []llm.ToolDescriptor {
	return []llm.ToolDescriptor{
		{
			Name:        ToolOnboardUser,
			Description: "Updates the user's rental profile. Requires Full Name, Nickname, and License ID.",
			Parameters: map[string]string{
				"full_name":  "the user's full legal name",
				"nickname":   "how the user wants to be addressed",
				"license_id": "the user's driving license id",
				"phone":      "contact phone number (optional)",
			},
		},
		{
			Name:        ToolSearchVehicles,
			Description: "Searches available EV cars by model name or general availability.",
			Parameters: map[string]string{
				"query": "substring of the model name (optional; empty lists everything available)",
			},
		},
		{
			Name:        ToolCreateDraftTransaction,
			Description: "Creates a DRAFT test-drive or purchase transaction. Returns JSON with \"meta\": \"draft_created\".",
			Parameters: map[string]string{
				"vehicle_query": "substring of the desired model name",
				"date":          "appointment date, YYYY-MM-DD",
				"type":          "TEST_DRIVE or PURCHASE (optional, defaults to TEST_DRIVE)",
			},
		},
		{
			Name:        ToolCancelTransaction,
			Description: "Cancels a transaction by its id.",
			Parameters: map[string]string{
				"transaction_id": "the numeric transaction id",
			},
		},
	}
}

type toolCall struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}

// parseToolCall finds the first brace-balanced JSON object in text that
// decodes to a tool invocation. Prose around the object is tolerated.
func parseToolCall(text string) (string, map[string]any, bool) {
	for start := 0; ; {
		open := strings.IndexByte(text[start:], '{')
		if open < 0 {
			return "", nil, false
		}
		open += start

		end, ok := balancedObjectEnd(text, open)
		if !ok {
			return "", nil, false
		}

		var call toolCall
		if err := json.Unmarshal([]byte(text[open:end]), &call); err == nil && call.Tool != "" {
			if call.Args == nil {
				call.Args = map[string]any{}
			}
			return call.Tool, call.Args, true
		}
		start = open + 1
	}
}

// balancedObjectEnd returns the index just past the object opening at
// position open, tracking nesting and quoted strings.
func balancedObjectEnd(text string, open int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := open; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

func getStringArg(args map[string]any, key string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func getIntArg(args map[string]any, key string) (int32, bool) {
	switch v := args[key].(type) {
	case float64:
		return int32(v), true
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 32); err == nil {
			return int32(n), true
		}
	}
	return 0, false
}
