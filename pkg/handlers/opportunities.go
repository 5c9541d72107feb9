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

// OpportunityHandler handles opportunity catalog endpoints.
type OpportunityHandler struct {
	opportunities repositories.OpportunityRepository
	logger        *zap.Logger
}

// NewOpportunityHandler creates a new OpportunityHandler.
func NewOpportunityHandler(opportunities repositories.OpportunityRepository, logger *zap.Logger) *OpportunityHandler {
	return &OpportunityHandler{opportunities: opportunities, logger: logger}
}

// RegisterRoutes registers the opportunity handler's routes on the given mux.
func (h *OpportunityHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/opportunities", h.Upsert)
	mux.HandleFunc("GET /api/opportunities", h.List)
	mux.HandleFunc("GET /api/opportunities/{oid}", h.Get)
	mux.HandleFunc("DELETE /api/opportunities/{oid}", h.Delete)
}

// Upsert handles POST /api/opportunities requests.
func (h *OpportunityHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var opp models.Opportunity
	if err := json.NewDecoder(r.Body).Decode(&opp); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if opp.Title == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "title is required")
		return
	}

	if err := h.opportunities.Upsert(r.Context(), &opp); err != nil {
		if errors.Is(err, apperrors.ErrInvalidOpportunityType) {
			_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.logger.Error("Failed to upsert opportunity", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "storage_error", "failed to save opportunity")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, &opp); err != nil {
		h.logger.Error("Failed to encode opportunity response", zap.Error(err))
	}
}

// List handles GET /api/opportunities requests.
// An optional ?type= query parameter filters by opportunity type.
func (h *OpportunityHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		opportunities []*models.Opportunity
		err           error
	)

	if rawType := r.URL.Query().Get("type"); rawType != "" {
		oppType, ok := models.ParseOpportunityType(rawType)
		if !ok {
			_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "unknown opportunity type")
			return
		}
		opportunities, err = h.opportunities.ListByType(r.Context(), oppType)
	} else {
		opportunities, err = h.opportunities.List(r.Context())
	}

	if err != nil {
		h.logger.Error("Failed to list opportunities", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "storage_error", "failed to list opportunities")
		return
	}

	if err := WriteJSON(w, http.StatusOK, opportunities); err != nil {
		h.logger.Error("Failed to encode opportunities response", zap.Error(err))
	}
}

// Get handles GET /api/opportunities/{oid} requests.
func (h *OpportunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("oid"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid opportunity id")
		return
	}

	opp, err := h.opportunities.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, "not_found", "opportunity not found")
			return
		}
		h.logger.Error("Failed to get opportunity", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "storage_error", "failed to load opportunity")
		return
	}

	if err := WriteJSON(w, http.StatusOK, opp); err != nil {
		h.logger.Error("Failed to encode opportunity response", zap.Error(err))
	}
}

// Delete handles DELETE /api/opportunities/{oid} requests.
func (h *OpportunityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("oid"))
	if err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "invalid opportunity id")
		return
	}

	if err := h.opportunities.Delete(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, "not_found", "opportunity not found")
			return
		}
		h.logger.Error("Failed to delete opportunity", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "storage_error", "failed to delete opportunity")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
