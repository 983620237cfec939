package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/evalyze/evalyze/internal/judge"
	"github.com/evalyze/evalyze/internal/session"
)

type handlers struct {
	gen    Generator
	runner Runner
	logger *slog.Logger
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *handlers) generateTest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Skill    string `json:"skill"`
		Level    string `json:"level"`
		TestType string `json:"testType"`
	}
	if !decode(w, r, &req) {
		return
	}

	testType, err := session.ParseTestType(req.TestType)
	if err != nil || strings.TrimSpace(req.Skill) == "" {
		respondError(w, "Missing parameters", http.StatusBadRequest)
		return
	}

	questions, err := h.gen.GenerateTest(r.Context(), session.TestSpec{
		Skill: strings.TrimSpace(req.Skill),
		Level: session.Level(strings.ToLower(req.Level)),
		Type:  testType,
	})
	if err != nil {
		h.fail(w, r, err, "Failed to generate test questions.")
		return
	}
	respondJSON(w, map[string]any{"questions": questions}, http.StatusOK)
}

func (h *handlers) generateProblems(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic string `json:"topic"`
	}
	if !decode(w, r, &req) {
		return
	}

	problems, err := h.gen.GenerateProblems(r.Context(), req.Topic)
	if err != nil {
		h.fail(w, r, err, "Failed to generate problems.")
		return
	}
	respondJSON(w, map[string]any{"problems": problems}, http.StatusOK)
}

func (h *handlers) generateStarterCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string `json:"description"`
		Language    string `json:"language"`
	}
	if !decode(w, r, &req) {
		return
	}

	code, err := h.gen.StarterCode(r.Context(), req.Description, req.Language)
	if err != nil {
		h.fail(w, r, err, "Failed to generate starter code.")
		return
	}
	respondJSON(w, map[string]string{"starterCode": code}, http.StatusOK)
}

func (h *handlers) testSuggestions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if !decode(w, r, &req) {
		return
	}

	suggestions, err := h.gen.Suggest(r.Context(), req.Query)
	if err != nil {
		h.fail(w, r, err, "Failed to generate suggestions.")
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	respondJSON(w, map[string]any{"suggestions": suggestions}, http.StatusOK)
}

func (h *handlers) generateQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Skill      string `json:"skill"`
		Difficulty string `json:"difficulty"`
		TestType   string `json:"testType"`
	}
	if !decode(w, r, &req) {
		return
	}

	challenge, err := h.gen.GenerateChallenge(r.Context(), req.Skill, req.Difficulty, req.TestType)
	if err != nil {
		h.fail(w, r, err, "Failed to generate question.")
		return
	}
	respondJSON(w, challenge, http.StatusOK)
}

func (h *handlers) submitCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code       string `json:"code"`
		LanguageID int    `json:"language_id"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.LanguageID <= 0 {
		respondError(w, "Missing parameters", http.StatusBadRequest)
		return
	}

	result, err := h.runner.Submit(r.Context(), judge.Submission{
		SourceCode: req.Code,
		LanguageID: req.LanguageID,
	})
	if err != nil {
		h.fail(w, r, err, "Failed to execute code.")
		return
	}
	respondJSON(w, result, http.StatusOK)
}

func (h *handlers) languages(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, judge.Languages, http.StatusOK)
}
