// Package v1alpha1 exposes the run session operations over HTTP/JSON.
// Responses are canonical run save snapshots; failures carry the typed
// error code so clients can tell recoverable rejections apart.
package v1alpha1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/deckfall/run-api/internal/auth"
	runentity "github.com/deckfall/run-api/internal/entities/run"
	"github.com/deckfall/run-api/internal/errors"
	runorch "github.com/deckfall/run-api/internal/orchestrators/run"
)

// Handler handles run-related HTTP requests.
type Handler struct {
	service runorch.Service
}

// Config holds the dependencies for the handler
type Config struct {
	RunService runorch.Service
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.RunService == nil {
		vb.RequiredField("RunService")
	}

	return vb.Build()
}

// NewHandler creates a new run handler with the provided dependencies
func NewHandler(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{service: cfg.RunService}, nil
}

// Register wires the handler's routes onto the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1alpha1/runs", h.StartRun)
	mux.HandleFunc("GET /v1alpha1/runs/current", h.GetCurrentRun)
	mux.HandleFunc("POST /v1alpha1/runs/{id}/move", h.MoveTo)
	mux.HandleFunc("POST /v1alpha1/runs/{id}/combat/start", h.StartCombat)
	mux.HandleFunc("POST /v1alpha1/runs/{id}/combat/end", h.EndCombat)
	mux.HandleFunc("POST /v1alpha1/runs/{id}/abandon", h.AbandonRun)
}

// StartRunRequest is the request body for POST /v1alpha1/runs.
type StartRunRequest struct {
	Seed       int64  `json:"seed,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	StartingHP int    `json:"startingHp,omitempty"`
	MaxHP      int    `json:"maxHp,omitempty"`
}

// MoveRequest is the request body for POST /v1alpha1/runs/{id}/move.
type MoveRequest struct {
	TargetNodeID string `json:"targetNodeId"`
	ClientTick   int64  `json:"clientTick"`
}

// StartCombatRequest is the request body for POST /v1alpha1/runs/{id}/combat/start.
type StartCombatRequest struct {
	ClientTick  int64  `json:"clientTick"`
	EncounterID string `json:"encounterId,omitempty"`
	RngSeed     int64  `json:"rngSeed,omitempty"`
}

// EndCombatRequest is the request body for POST /v1alpha1/runs/{id}/combat/end.
type EndCombatRequest struct {
	ClientTick    int64                   `json:"clientTick"`
	Result        runentity.CombatResult  `json:"result"`
	FinalPlayerHP int                     `json:"finalPlayerHp"`
	GoldDelta     int                     `json:"goldDelta,omitempty"`
}

// POST /v1alpha1/runs
func (h *Handler) StartRun(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, errors.Unauthenticated("no account in context"))
		return
	}

	var req StartRunRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, errors.InvalidArgument("malformed request body"))
		return
	}

	output, err := h.service.StartRun(r.Context(), &runorch.StartRunInput{
		AccountID:  accountID,
		Seed:       req.Seed,
		Difficulty: req.Difficulty,
		StartingHP: req.StartingHP,
		MaxHP:      req.MaxHP,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, output.Save)
}

// GET /v1alpha1/runs/current
func (h *Handler) GetCurrentRun(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, errors.Unauthenticated("no account in context"))
		return
	}

	output, err := h.service.GetCurrentRun(r.Context(), &runorch.GetCurrentRunInput{AccountID: accountID})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output.Save)
}

// POST /v1alpha1/runs/{id}/move
func (h *Handler) MoveTo(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, errors.Unauthenticated("no account in context"))
		return
	}

	var req MoveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, errors.InvalidArgument("malformed request body"))
		return
	}

	output, err := h.service.MoveTo(r.Context(), &runorch.MoveToInput{
		AccountID:    accountID,
		RunID:        r.PathValue("id"),
		TargetNodeID: req.TargetNodeID,
		ClientTick:   req.ClientTick,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output.Save)
}

// POST /v1alpha1/runs/{id}/combat/start
func (h *Handler) StartCombat(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, errors.Unauthenticated("no account in context"))
		return
	}

	var req StartCombatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, errors.InvalidArgument("malformed request body"))
		return
	}

	output, err := h.service.StartCombat(r.Context(), &runorch.StartCombatInput{
		AccountID:   accountID,
		RunID:       r.PathValue("id"),
		ClientTick:  req.ClientTick,
		EncounterID: req.EncounterID,
		RngSeed:     req.RngSeed,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output.Save)
}

// POST /v1alpha1/runs/{id}/combat/end
func (h *Handler) EndCombat(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, errors.Unauthenticated("no account in context"))
		return
	}

	var req EndCombatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, errors.InvalidArgument("malformed request body"))
		return
	}

	output, err := h.service.EndCombat(r.Context(), &runorch.EndCombatInput{
		AccountID:     accountID,
		RunID:         r.PathValue("id"),
		ClientTick:    req.ClientTick,
		Result:        req.Result,
		FinalPlayerHP: req.FinalPlayerHP,
		GoldDelta:     req.GoldDelta,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output.Save)
}

// POST /v1alpha1/runs/{id}/abandon
func (h *Handler) AbandonRun(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, errors.Unauthenticated("no account in context"))
		return
	}

	output, err := h.service.AbandonRun(r.Context(), &runorch.AbandonRunInput{
		AccountID: accountID,
		RunID:     r.PathValue("id"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output.Save)
}

// ErrorResponse is the body every failed request returns.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code.HTTPStatus() >= http.StatusInternalServerError {
		slog.Error("Request failed", "code", code.String(), "error", err)
	}
	writeJSON(w, code.HTTPStatus(), ErrorResponse{
		Code:  code.String(),
		Error: errors.GetMessage(err),
	})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}
