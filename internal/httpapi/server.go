package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/legalguard/regtech/internal/compliance"
	"github.com/legalguard/regtech/internal/regstore"
)

type Server struct {
	analyzer *compliance.Analyzer
	regs     *regstore.Store
	tasks    *taskRegistry
}

func NewServer(analyzer *compliance.Analyzer, regs *regstore.Store) http.Handler {
	s := &Server{
		analyzer: analyzer,
		regs:     regs,
		tasks:    newTaskRegistry(),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/contracts/analyze", s.handleAnalyze)
	mux.HandleFunc("/v1/contracts/analyze/bulk", s.handleAnalyzeBulk)
	mux.HandleFunc("/v1/contracts/bulk/", s.handleBulkStatus)
	mux.HandleFunc("/v1/contracts/risk-score", s.handleRiskScore)
	mux.HandleFunc("/v1/regulations", s.handleRegulations)
	mux.HandleFunc("/v1/regulations/search", s.handleRegulationsSearch)
	mux.HandleFunc("/v1/regulations/reload", s.handleRegulationsReload)
	mux.HandleFunc("/v1/regulations/", s.handleRegulation)
	mux.HandleFunc("/v1/jurisdictions", s.handleJurisdictions)
	mux.HandleFunc("/v1/health", s.handleHealth)
	return withTracing(mux)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	var ae *Error
	if errors.As(err, &ae) {
		writeJSON(w, ae.Status, map[string]any{
			"ok": false,
			"error": map[string]any{
				"code":      ae.Code,
				"message":   ae.Message,
				"transient": ae.Transient,
			},
		})
		return
	}
	writeJSON(w, 500, map[string]any{
		"ok": false,
		"error": map[string]any{
			"code":      CodeInternal,
			"message":   err.Error(),
			"transient": true,
		},
	})
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return []byte("{}"), nil
	}
	blob, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(blob) == 0 {
		blob = []byte("{}")
	}
	return blob, nil
}

func methodOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	blob, err := readBody(r)
	if err != nil {
		writeError(w, NewValidationError("invalid body: "+err.Error()))
		return
	}
	var req compliance.AnalyzeRequest
	if err := json.Unmarshal(blob, &req); err != nil {
		writeError(w, NewValidationError("invalid json: "+err.Error()))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, NewValidationError("text is required"))
		return
	}

	report := s.analyzer.Analyze(r.Context(), req)
	if !report.Metadata.IsSubstantial {
		writeError(w, NewValidationError("contract text is too short or insubstantial to analyze"))
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true, "report": report})
}

func (s *Server) handleAnalyzeBulk(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	blob, err := readBody(r)
	if err != nil {
		writeError(w, NewValidationError("invalid body: "+err.Error()))
		return
	}
	var req compliance.BulkRequest
	if err := json.Unmarshal(blob, &req); err != nil {
		writeError(w, NewValidationError("invalid json: "+err.Error()))
		return
	}
	if len(req.Contracts) == 0 {
		writeError(w, NewValidationError("contracts list is empty"))
		return
	}
	if req.Priority == "" {
		req.Priority = compliance.PriorityNormal
	}

	task := s.tasks.create(string(req.Priority), len(req.Contracts))
	go func() {
		s.tasks.setRunning(task.ID)
		// Detached from the request context so the batch survives the
		// caller disconnecting.
		reports := s.analyzer.AnalyzeBulk(context.Background(), req)
		s.tasks.complete(task.ID, reports)
	}()

	writeJSON(w, 202, map[string]any{
		"ok":      true,
		"task_id": task.ID,
		"status":  TaskPending,
		"total":   task.Total,
	})
}

func (s *Server) handleBulkStatus(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/contracts/bulk/"), "/")
	if id == "" {
		writeError(w, NewNotFoundError("task id required"))
		return
	}
	task, ok := s.tasks.get(id)
	if !ok {
		writeError(w, NewNotFoundError("unknown task id"))
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true, "task": task})
}

func (s *Server) handleRiskScore(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	blob, err := readBody(r)
	if err != nil {
		writeError(w, NewValidationError("invalid body: "+err.Error()))
		return
	}
	var result compliance.AnalysisResult
	if err := json.Unmarshal(blob, &result); err != nil {
		writeError(w, NewValidationError("invalid json: "+err.Error()))
		return
	}
	if result.Jurisdiction == "" {
		result.Jurisdiction = compliance.DefaultJurisdiction
	}
	writeJSON(w, 200, map[string]any{"ok": true, "risk": compliance.ScoreRisk(result)})
}

func (s *Server) handleRegulations(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	snap := s.regs.Snapshot()
	if jur := strings.TrimSpace(r.URL.Query().Get("jurisdiction")); jur != "" {
		writeJSON(w, 200, map[string]any{"regulations": snap.LawsFor(jur)})
		return
	}
	writeJSON(w, 200, map[string]any{"regulations": snap.All()})
}

type regulationSearchRequest struct {
	Jurisdiction   string `json:"jurisdiction"`
	RegulationType string `json:"regulation_type"`
	SearchTerm     string `json:"search_term"`
}

func (s *Server) handleRegulationsSearch(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	blob, err := readBody(r)
	if err != nil {
		writeError(w, NewValidationError("invalid body: "+err.Error()))
		return
	}
	var req regulationSearchRequest
	if err := json.Unmarshal(blob, &req); err != nil {
		writeError(w, NewValidationError("invalid json: "+err.Error()))
		return
	}

	matches := s.regs.Snapshot().Search(req.Jurisdiction, req.RegulationType, req.SearchTerm)
	if matches == nil {
		matches = []regstore.Regulation{}
	}
	seen := map[string]bool{}
	jurisdictions := []string{}
	for _, reg := range matches {
		if !seen[reg.Jurisdiction] {
			seen[reg.Jurisdiction] = true
			jurisdictions = append(jurisdictions, reg.Jurisdiction)
		}
	}
	sort.Strings(jurisdictions)
	writeJSON(w, 200, map[string]any{
		"regulations":   matches,
		"total_count":   len(matches),
		"jurisdictions": jurisdictions,
	})
}

func (s *Server) handleRegulation(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	lawID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/regulations/"), "/")
	if lawID == "" {
		writeError(w, NewNotFoundError("law id required"))
		return
	}
	reg, ok := s.regs.Snapshot().Law(lawID)
	if !ok {
		writeError(w, NewNotFoundError("unknown law id"))
		return
	}
	writeJSON(w, 200, map[string]any{"regulation": reg})
}

func (s *Server) handleRegulationsReload(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	if err := s.regs.Reload(); err != nil {
		log.Printf("httpapi: regulation reload failed: %v", err)
		writeError(w, NewInternalError("reload failed"))
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true, "regulations": len(s.regs.Snapshot().All())})
}

func (s *Server) handleJurisdictions(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	snap := s.regs.Snapshot()
	out := map[string][]string{}
	for _, jur := range snap.Jurisdictions() {
		var ids []string
		for _, reg := range snap.LawsFor(jur) {
			ids = append(ids, reg.LawID)
		}
		out[jur] = ids
	}
	writeJSON(w, 200, map[string]any{"jurisdictions": out})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, 200, map[string]any{
		"status":      "ok",
		"regulations": len(s.regs.Snapshot().All()),
	})
}
