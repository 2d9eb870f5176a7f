package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ChatTurn is one prior exchange in a conversation. Role is "user" or "model".
type ChatTurn struct {
	Role    string
	Content string
}

// GeminiChatProvider drives multi-turn conversations through the Gemini chat
// session API. The stateless GeminiProvider handles one-shot extraction; this
// one carries history so the assistant can refer back to earlier turns.
type GeminiChatProvider struct {
	Model string // e.g. "gemini-1.5-flash"
}

var _ Provider = (*GeminiChatProvider)(nil)

// Chat sends a message with conversation history and returns the reply.
func (p *GeminiChatProvider) Chat(ctx context.Context, history []ChatTurn, message string, systemPrompt string) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	modelName := p.Model
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.2)
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}

	cs := model.StartChat()
	for _, turn := range history {
		role := turn.Role
		if role != "user" && role != "model" {
			role = "user"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(turn.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("gemini chat failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("GEMINI_CHAT_EMPTY_RESPONSE")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

// GenerateResponse satisfies Provider by running a single-turn chat.
func (p *GeminiChatProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	return p.Chat(ctx, nil, prompt, systemPrompt)
}

func (p *GeminiChatProvider) AdaptInstructions(raw string) string {
	return raw
}
