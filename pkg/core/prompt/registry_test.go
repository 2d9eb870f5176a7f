package prompt

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegisterAndGet(t *testing.T) {
	Get().Clear()

	pt := &PromptTemplate{
		ID:           "extraction.business_case",
		Category:     "extraction",
		SystemPrompt: "You are a financial metric extraction engine.",
	}
	if err := Get().Register(pt); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got, err := Get().GetPrompt("extraction.business_case")
	if err != nil {
		t.Fatalf("GetPrompt failed: %v", err)
	}
	if got.Category != "extraction" {
		t.Errorf("Category = %q, want %q", got.Category, "extraction")
	}

	sys, err := Get().GetSystemPrompt("extraction.business_case")
	if err != nil {
		t.Fatalf("GetSystemPrompt failed: %v", err)
	}
	if sys != pt.SystemPrompt {
		t.Errorf("GetSystemPrompt = %q, want %q", sys, pt.SystemPrompt)
	}

	if _, err := Get().GetPrompt("extraction.missing"); err == nil {
		t.Error("expected error for unknown prompt ID")
	}
}

func TestRegisterRejectsEmptyID(t *testing.T) {
	if err := Get().Register(&PromptTemplate{}); err == nil {
		t.Error("expected error registering prompt without ID")
	}
}

func TestListByCategory(t *testing.T) {
	Get().Clear()
	Get().Register(&PromptTemplate{ID: "extraction.business_case", Category: "extraction"})
	Get().Register(&PromptTemplate{ID: "chat.assistant", Category: "chat"})

	if got := len(Get().ListByCategory("chat")); got != 1 {
		t.Errorf("ListByCategory(chat) = %d prompts, want 1", got)
	}
	if got := Get().Count(); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}
}

func TestLoadFromDirectory(t *testing.T) {
	Get().Clear()

	base := t.TempDir()
	dir := filepath.Join(base, "prompts", "chat")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	body := []byte(`{"system_prompt": "You are a business analysis assistant."}`)
	if err := os.WriteFile(filepath.Join(dir, "assistant.json"), body, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := LoadFromDirectory(base); err != nil {
		t.Fatalf("LoadFromDirectory failed: %v", err)
	}

	// ID and category derive from the path: prompts/chat/assistant.json
	pt, err := Get().GetPrompt("chat.assistant")
	if err != nil {
		t.Fatalf("loaded prompt not found: %v", err)
	}
	if pt.Category != "chat" {
		t.Errorf("Category = %q, want %q", pt.Category, "chat")
	}
}

func TestLoadFromDirectoryMissingPrompts(t *testing.T) {
	Get().Clear()
	if err := LoadFromDirectory(t.TempDir()); err == nil {
		t.Error("expected error when prompts directory is missing")
	}
}

func TestRenderUserPrompt(t *testing.T) {
	pt := &PromptTemplate{
		ID:             "extraction.business_case",
		UserPromptTmpl: "Document:\n{{.DocumentText}}",
	}
	out, err := RenderUserPrompt(pt, NewContext().Set("DocumentText", "Fleet of 500 trucks."))
	if err != nil {
		t.Fatalf("RenderUserPrompt failed: %v", err)
	}
	want := "Document:\nFleet of 500 trucks."
	if out != want {
		t.Errorf("rendered = %q, want %q", out, want)
	}
}
