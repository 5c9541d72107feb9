package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prospera-ai/prospera-engine/pkg/apperrors"
	"github.com/prospera-ai/prospera-engine/pkg/models"
	"github.com/prospera-ai/prospera-engine/pkg/repositories"
	"github.com/prospera-ai/prospera-engine/pkg/services"
)

// MatchHandler handles matching-run and match-review endpoints.
type MatchHandler struct {
	matcher         services.OpportunityMatcher
	profiles        repositories.ProfileRepository
	opportunities   repositories.OpportunityRepository
	matches         repositories.MatchRepository
	defaultMinScore float64
	logger          *zap.Logger
}

// NewMatchHandler creates a new MatchHandler. defaultMinScore is the
// ranking threshold used when a run request does not override it.
func NewMatchHandler(
	matcher services.OpportunityMatcher,
	profiles repositories.ProfileRepository,
	opportunities repositories.OpportunityRepository,
	matches repositories.MatchRepository,
	defaultMinScore float64,
	logger *zap.Logger,
) *MatchHandler {
	return &MatchHandler{
		matcher:         matcher,
		profiles:        profiles,
		opportunities:   opportunities,
		matches:         matches,
		defaultMinScore: defaultMinScore,
		logger:          logger,
	}
}

// RegisterRoutes registers the match handler's routes on the given mux.
func (h *MatchHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/profiles/{pid}/matches", h.RunMatching)
	mux.HandleFunc("GET /api/profiles/{pid}/matches", h.ListByProfile)
	mux.HandleFunc("PUT /api/matches/{mid}/status", h.UpdateStatus)
}

type runMatchingRequest struct {
	// MinScore optionally overrides the configured ranking threshold for
	// this run only.
	MinScore *float64 `json:"min_score"`
}

// RunMatching handles POST /api/profiles/{pid}/matches requests.
// It scores the full opportunity catalog against the profile, replaces the
// company's stored matches with the new run, and returns the run report.
func (h *MatchHandler) RunMatching(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(r.PathValue("pid"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid profile id")
		return
	}

	minScore := h.defaultMinScore
	if r.Body != nil && r.ContentLength != 0 {
		var req runMatchingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}
		if req.MinScore != nil {
			if *req.MinScore < 0 || *req.MinScore > 1 {
				_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "min_score must be in [0, 1]")
				return
			}
			minScore = *req.MinScore
		}
	}

	profile, err := h.profiles.GetByID(r.Context(), companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, "not_found", "profile not found")
			return
		}
		h.logger.Error("Failed to load profile for matching", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "storage_error", "failed to load profile")
		return
	}

	opportunities, err := h.opportunities.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to load opportunity catalog", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "storage_error", "failed to load opportunities")
		return
	}

	report, err := h.matcher.FindMatches(r.Context(), profile, opportunities, minScore)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmptyProfile) {
			_ = ErrorResponse(w, http.StatusUnprocessableEntity, "empty_profile", "profile has no analyzable content")
			return
		}
		h.logger.Error("Matching run failed", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "matching_error", "matching run failed")
		return
	}

	// Each run replaces the company's previous results. The swap is
	// transactional so a failed insert never leaves the company with no
	// matches at all.
	if err := h.matches.ReplaceForCompany(r.Context(), companyID, report.AllMatches); err != nil {
		h.logger.Error("Failed to store matches", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "storage_error", "failed to store matches")
		return
	}

	if err := WriteJSON(w, http.StatusOK, report); err != nil {
		h.logger.Error("Failed to encode run report", zap.Error(err))
	}
}

// ListByProfile handles GET /api/profiles/{pid}/matches requests.
// Returns the company's stored matches, highest score first.
func (h *MatchHandler) ListByProfile(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(r.PathValue("pid"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid profile id")
		return
	}

	matches, err := h.matches.GetByCompany(r.Context(), companyID)
	if err != nil {
		h.logger.Error("Failed to list matches", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "storage_error", "failed to list matches")
		return
	}

	if err := WriteJSON(w, http.StatusOK, matches); err != nil {
		h.logger.Error("Failed to encode matches response", zap.Error(err))
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /api/matches/{mid}/status requests.
// Only pending matches can be accepted or dismissed.
func (h *MatchHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	matchID, err := uuid.Parse(r.PathValue("mid"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid match id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	status := models.MatchStatus(req.Status)
	if !models.IsValidMatchStatus(status) {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "unknown match status")
		return
	}

	if err := h.matches.UpdateStatus(r.Context(), matchID, status); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			_ = ErrorResponse(w, http.StatusNotFound, "not_found", "match not found")
		case errors.Is(err, apperrors.ErrInvalidStatusTransition):
			_ = ErrorResponse(w, http.StatusConflict, "invalid_transition", err.Error())
		case errors.Is(err, apperrors.ErrConflict):
			_ = ErrorResponse(w, http.StatusConflict, "conflict", "match status changed concurrently")
		default:
			h.logger.Error("Failed to update match status", zap.Error(err))
			_ = ErrorResponse(w, http.StatusInternalServerError, "storage_error", "failed to update match status")
		}
		return
	}

	match, err := h.matches.GetByID(r.Context(), matchID)
	if err != nil {
		h.logger.Error("Failed to reload match", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "storage_error", "failed to load match")
		return
	}

	if err := WriteJSON(w, http.StatusOK, match); err != nil {
		h.logger.Error("Failed to encode match response", zap.Error(err))
	}
}
