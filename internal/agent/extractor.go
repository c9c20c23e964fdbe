package agent

import (
	"encoding/json"
	"regexp"
)

// DraftCreatedMeta is the discriminator marking a payload as a
// draft-creation event.
const DraftCreatedMeta = "draft_created"

// DraftPayload is the structured data embedded in gateway free text when a
// draft transaction was created.
type DraftPayload struct {
	Message       string `json:"message"`
	TransactionID int32  `json:"transaction_id"`
	Meta          string `json:"meta"`
}

var draftPattern = regexp.MustCompile(`(?is)(\{.*"meta"\s*:\s*"draft_created".*\})`)

// ExtractDraftPayload searches text for a brace-delimited payload carrying
// the draft-creation discriminator, tolerating prose before and after. A
// missing or malformed payload yields nil; absence is a normal outcome for
// conversational-only turns, not an error.
func ExtractDraftPayload(text string) *DraftPayload {
	match := draftPattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}

	var payload DraftPayload
	if err := json.Unmarshal([]byte(match[1]), &payload); err != nil {
		return nil
	}
	return &payload
}
