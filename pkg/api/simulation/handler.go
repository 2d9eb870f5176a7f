package simulation

import (
	"encoding/json"
	"net/http"

	"bizcase_analyzer/pkg/core/simulate"
	"bizcase_analyzer/pkg/core/store"
)

type Request struct {
	DocumentID string             `json:"document_id"`
	Parameters map[string]float64 `json:"parameters"`
	Persist    bool               `json:"persist"`
}

// Handler holds dependencies for the simulation endpoint.
type Handler struct {
	Repo *store.DocumentRepo
}

func NewHandler(repo *store.DocumentRepo) *Handler {
	return &Handler{Repo: repo}
}

// HandleSimulate recalculates a stored document with overridden parameters.
// With persist=true the simulated result replaces the stored record.
func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
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
	if len(req.Parameters) == 0 {
		http.Error(w, "No parameters to simulate", http.StatusBadRequest)
		return
	}

	doc, err := h.Repo.Get(r.Context(), req.DocumentID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if doc.Extraction == nil {
		http.Error(w, "Document has no extraction record", http.StatusConflict)
		return
	}

	result, err := simulate.Run(doc.Extraction, doc.Analysis, req.Parameters)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if req.Persist {
		doc.Extraction = result.Extraction
		doc.Analysis = result.Analysis
		if err := h.Repo.Save(r.Context(), doc); err != nil {
			http.Error(w, "Failed to persist simulation: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
