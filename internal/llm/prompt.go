package llm

import (
	"fmt"
	"sort"
	"strings"
)

// InstructionsVersion identifies the instruction template in logs. Bump it
// whenever the template text changes.
const InstructionsVersion = "ev-consultant/v1"

const baseInstructions = `You are an expert EV rental consultant.

Rules:
1. Answer questions about cars using the 'search_vehicles' tool.
2. To onboard a user you need their Full Name, Nickname, and License ID.
   - IF any of these is missing: ask the user for the missing information.
   - IF all are present: call 'onboard_user'.
3. Book test drives or purchases using 'create_draft_transaction'.
4. Cancel bookings with 'cancel_transaction' when the user asks.

Calling a tool: reply with ONLY a JSON object of the form
{"tool": "<name>", "args": {"<param>": <value>}} and nothing else.
The tool result will be given to you as an observation; then continue.

IMPORTANT: if a tool result contains "meta": "draft_created", output that
JSON result verbatim as your final answer.

Otherwise answer the user in plain, friendly prose.`

// BuildInstructions renders the system instructions including the tool
// catalogue. The template is configuration data, versioned above.
func BuildInstructions(tools []ToolDescriptor) string {
	var b strings.Builder
	b.WriteString(baseInstructions)
	b.WriteString("\n\nAvailable tools:\n")
	for _, t := range tools {
		fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.Description)
		params := make([]string, 0, len(t.Parameters))
		for param := range t.Parameters {
			params = append(params, param)
		}
		sort.Strings(params)
		for _, param := range params {
			fmt.Fprintf(&b, "    %s: %s\n", param, t.Parameters[param])
		}
	}
	return b.String()
}
