package prompt

// PromptIDs contains all known prompt identifiers
var PromptIDs = struct {
	ExtractionBusinessCase string
	ChatAssistant          string
}{
	ExtractionBusinessCase: "extraction.business_case",
	ChatAssistant:          "chat.assistant",
}
