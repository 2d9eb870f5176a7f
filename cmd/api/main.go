package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	apichat "bizcase_analyzer/pkg/api/chat"
	"bizcase_analyzer/pkg/api/config"
	"bizcase_analyzer/pkg/api/documents"
	"bizcase_analyzer/pkg/api/simulation"
	"bizcase_analyzer/pkg/core/agent"
	corechat "bizcase_analyzer/pkg/core/chat"
	"bizcase_analyzer/pkg/core/extract"
	"bizcase_analyzer/pkg/core/llm"
	"bizcase_analyzer/pkg/core/prompt"
	"bizcase_analyzer/pkg/core/store"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize Prompt Library
	// Determine resources path (relative to executable or working directory)
	resourcesPath := "resources"
	if _, err := os.Stat(resourcesPath); os.IsNotExist(err) {
		// Try from executable directory
		exePath, _ := os.Executable()
		resourcesPath = filepath.Join(filepath.Dir(exePath), "resources")
	}
	if err := prompt.LoadFromDirectory(resourcesPath); err != nil {
		fmt.Printf("[FATAL] Failed to load prompt library: %v\n", err)
		os.Exit(1)
	}

	// Initialize manager from config
	agentMgr := agent.NewManager(loadAgentConfig("config/models.yaml"))

	// Database
	ctx := context.Background()
	if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[FATAL] Database init failed: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	repo := store.NewDocumentRepo()

	// Document pipeline endpoints
	docHandler := documents.NewHandler(extract.NewService(agentMgr), repo)
	http.HandleFunc("/api/upload", docHandler.HandleUpload)
	http.HandleFunc("/api/documents", docHandler.HandleList)
	http.HandleFunc("/api/documents/", docHandler.HandleDocument)

	// Chat endpoint. Multi-turn sessions need the chat-capable provider.
	chatter, ok := agentMgr.GetProviderByName("gemini-chat").(corechat.Chatter)
	if !ok {
		chatter = &llm.GeminiChatProvider{}
	}
	chatHandler := apichat.NewHandler(corechat.NewAnalyzer(chatter), repo)
	http.HandleFunc("/api/chat", chatHandler.HandleChat)

	// Simulation endpoint
	simHandler := simulation.NewHandler(repo)
	http.HandleFunc("/api/simulate", simHandler.HandleSimulate)

	// Config endpoints
	configHandler := config.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ok"}`)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("API server starting on :%s...\n", port)
	fmt.Println("  - POST   /api/upload")
	fmt.Println("  - GET    /api/documents")
	fmt.Println("  - GET    /api/documents/{id}")
	fmt.Println("  - GET    /api/documents/{id}/report")
	fmt.Println("  - DELETE /api/documents/{id}")
	fmt.Println("  - POST   /api/chat")
	fmt.Println("  - POST   /api/simulate")
	fmt.Println("  - GET    /api/config")
	fmt.Println("  - POST   /api/config/switch")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}

// loadAgentConfig reads the agent/provider config, falling back to the
// default provider when the file is missing or malformed.
func loadAgentConfig(path string) agent.Config {
	var cfg agent.Config
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("[WARNING] Failed to read %s: %v\n", path, err)
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Printf("[WARNING] Failed to parse %s: %v\n", path, err)
		cfg = agent.Config{}
	}
	if cfg.ActiveProvider == "" {
		cfg.ActiveProvider = "gemini"
	}
	return cfg
}
