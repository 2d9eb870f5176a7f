package chat

import (
	"encoding/json"
	"net/http"

	corechat "bizcase_analyzer/pkg/core/chat"
	"bizcase_analyzer/pkg/core/llm"
	"bizcase_analyzer/pkg/core/store"
)

type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	DocumentID string `json:"document_id"`
	Message    string `json:"message"`
	History    []Turn `json:"history"`
}

type Response struct {
	Response      string                 `json:"response"`
	Modifications corechat.Modifications `json:"modifications,omitempty"`
}

// Handler holds dependencies for the chat endpoint.
type Handler struct {
	Analyzer *corechat.Analyzer
	Repo     *store.DocumentRepo
}

func NewHandler(analyzer *corechat.Analyzer, repo *store.DocumentRepo) *Handler {
	return &Handler{
		Analyzer: analyzer,
		Repo:     repo,
	}
}

// HandleChat answers a user message in the context of a stored analysis.
// Detected parameter modifications come back alongside the reply; the client
// decides whether to feed them into /api/simulate.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "Missing message", http.StatusBadRequest)
		return
	}

	doc, err := h.Repo.Get(r.Context(), req.DocumentID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var devCost float64
	if doc.Extraction != nil && doc.Extraction.DevelopmentCost != nil {
		devCost = *doc.Extraction.DevelopmentCost
	}

	history := make([]llm.ChatTurn, 0, len(req.History))
	for _, t := range req.History {
		history = append(history, llm.ChatTurn{Role: t.Role, Content: t.Content})
	}

	reply, mods, err := h.Analyzer.Respond(r.Context(), doc.Analysis, req.Message, history, devCost)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{
		Response:      reply,
		Modifications: mods,
	})
}
