package documents

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"bizcase_analyzer/pkg/core/analysis"
	"bizcase_analyzer/pkg/core/calc"
	"bizcase_analyzer/pkg/core/docparse"
	"bizcase_analyzer/pkg/core/extract"
	"bizcase_analyzer/pkg/core/report"
	"bizcase_analyzer/pkg/core/store"
)

// maxUploadBytes caps the accepted document size (10 MB).
const maxUploadBytes = 10 << 20

// Handler holds dependencies for the document endpoints.
type Handler struct {
	Extractor *extract.Service
	Repo      *store.DocumentRepo
}

func NewHandler(extractor *extract.Service, repo *store.DocumentRepo) *Handler {
	return &Handler{
		Extractor: extractor,
		Repo:      repo,
	}
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleUpload accepts a multipart document upload, runs extraction and the
// projection calculator, persists the result, and returns the full document.
// A calculator failure still stores the document with the unavailable
// analysis template so the upload is never silently lost.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read upload", http.StatusBadRequest)
		return
	}

	fmt.Printf("[UPLOAD] %s (%d bytes)\n", header.Filename, len(data))

	text, err := docparse.ToText(header.Filename, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
		return
	}
	if text == "" {
		http.Error(w, "Document contains no readable text", http.StatusBadRequest)
		return
	}

	result, _, err := h.Extractor.ExtractMetrics(r.Context(), text)
	if err != nil {
		fmt.Printf("[WARNING] Extraction failed for %s: %v\n", header.Filename, err)
		http.Error(w, "Extraction failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	ca, err := calc.Calculate(result)
	if err != nil {
		fmt.Printf("[WARNING] Calculation failed for %s: %v\n", header.Filename, err)
		ca = analysis.Unavailable(result.ProjectName, err.Error())
	}

	doc := &store.Document{
		Filename:   header.Filename,
		Extraction: result,
		Analysis:   ca,
	}
	if err := h.Repo.Save(r.Context(), doc); err != nil {
		http.Error(w, "Failed to save document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

// HandleList returns the most recent documents.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	docs, err := h.Repo.List(r.Context(), 50)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if docs == nil {
		docs = []store.DocumentSummary{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(docs)
}

// HandleDocument serves GET and DELETE for /api/documents/{id}, plus the
// rendered report at /api/documents/{id}/report.
func (h *Handler) HandleDocument(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/documents/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		http.Error(w, "Missing document id", http.StatusBadRequest)
		return
	}

	switch {
	case sub == "report":
		h.serveReport(w, r, id)
	case r.Method == "DELETE":
		if err := h.Repo.Delete(r.Context(), id); err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case r.Method == "GET":
		doc, err := h.Repo.Get(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(doc)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) serveReport(w http.ResponseWriter, r *http.Request, id string) {
	doc, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if doc.Analysis == nil {
		http.Error(w, "Document has no analysis", http.StatusConflict)
		return
	}

	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		fmt.Fprint(w, report.Markdown(doc.Analysis))
		return
	}

	html, err := report.HTML(doc.Analysis)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}
