// Package handlers implements the HTTP API surface.
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
)

// ProfileHandler handles company profile CRUD endpoints.
type ProfileHandler struct {
	profiles repositories.ProfileRepository
	logger   *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles repositories.ProfileRepository, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// RegisterRoutes registers the profile handler's routes on the given mux.
func (h *ProfileHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/profiles", h.Upsert)
	mux.HandleFunc("GET /api/profiles", h.List)
	mux.HandleFunc("GET /api/profiles/{pid}", h.Get)
	mux.HandleFunc("DELETE /api/profiles/{pid}", h.Delete)
}

// Upsert handles POST /api/profiles requests.
// Creates a profile, or replaces it when company_id matches an existing one.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var profile models.CompanyProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if profile.IsEmpty() {
		_ = ErrorResponse(w, http.StatusBadRequest, "empty_profile",
			"profile must include at least a company name, industry, or description")
		return
	}

	if err := h.profiles.Upsert(r.Context(), &profile); err != nil {
		h.logger.Error("Failed to upsert profile", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "storage_error", "failed to save profile")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, &profile); err != nil {
		h.logger.Error("Failed to encode profile response", zap.Error(err))
	}
}

// List handles GET /api/profiles requests.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list profiles", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "storage_error", "failed to list profiles")
		return
	}

	if err := WriteJSON(w, http.StatusOK, profiles); err != nil {
		h.logger.Error("Failed to encode profiles response", zap.Error(err))
	}
}

// Get handles GET /api/profiles/{pid} requests.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(r.PathValue("pid"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid profile id")
		return
	}

	profile, err := h.profiles.GetByID(r.Context(), companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, "not_found", "profile not found")
			return
		}
		h.logger.Error("Failed to get profile", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "storage_error", "failed to load profile")
		return
	}

	if err := WriteJSON(w, http.StatusOK, profile); err != nil {
		h.logger.Error("Failed to encode profile response", zap.Error(err))
	}
}

// Delete handles DELETE /api/profiles/{pid} requests.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(r.PathValue("pid"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid profile id")
		return
	}

	if err := h.profiles.Delete(r.Context(), companyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, "not_found", "profile not found")
			return
		}
		h.logger.Error("Failed to delete profile", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "storage_error", "failed to delete profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
