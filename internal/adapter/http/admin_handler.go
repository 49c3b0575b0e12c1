package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"resto-platform/internal/adapter/logger"
	"resto-platform/internal/domain"
	"resto-platform/internal/interfaces"
	"resto-platform/internal/pricing"
)

type AdminHandler struct {
	service interfaces.AdminService
	logger  logger.Logger
}

func NewAdminHandler(service interfaces.AdminService, lgr logger.Logger) *AdminHandler {
	return &AdminHandler{service: service, logger: lgr}
}

func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/commands", h.ListCommands)
	r.Get("/commands/{id}/breakdown", h.CommandBreakdown)
	r.Post("/commands/{id}/validate", h.ValidateCommand)
	r.Post("/commands/{id}/revoke", h.RevokeCommand)
	r.Delete("/commands/{id}", h.DeleteCommand)
	r.Get("/foods/{id}/accompaniments", h.ListAccompaniments)
	r.Put("/foods/{id}/accompaniments", h.SaveAccompaniments)
	return r
}

type CommandResponse struct {
	ID              string  `json:"id"`
	Code            int     `json:"code"`
	Type            string  `json:"type"`
	Priceless       bool    `json:"priceless"`
	ShippingAddress *string `json:"shipping_address,omitempty"`
	Total           int64   `json:"total"`
	TotalDisplay    string  `json:"total_display"`
	Validated       bool    `json:"validated"`
	Revoked         bool    `json:"revoked"`
	CreatedAt       string  `json:"created_at"`
}

func (h *AdminHandler) ListCommands(w http.ResponseWriter, r *http.Request) {
	var restaurantID *uuid.UUID
	if raw := r.URL.Query().Get("restaurant_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid restaurant_id")
			return
		}
		restaurantID = &id
	}

	commands, err := h.service.ListCommands(r.Context(), restaurantID)
	if err != nil {
		h.logger.Error("commands_list_failed", "Failed to list commands", "", nil, err)
		respondError(w, http.StatusInternalServerError, "failed to list commands")
		return
	}

	resp := make([]CommandResponse, 0, len(commands))
	for _, cmd := range commands {
		resp = append(resp, CommandResponse{
			ID:              cmd.ID.String(),
			Code:            cmd.Code,
			Type:            string(cmd.Type),
			Priceless:       cmd.Priceless,
			ShippingAddress: cmd.ShippingAddress,
			Total:           cmd.TotalPrice.Amount,
			TotalDisplay:    pricing.Format(cmd.TotalPrice),
			Validated:       cmd.Validated,
			Revoked:         cmd.Revoked,
			CreatedAt:       cmd.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) CommandBreakdown(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	bd, err := h.service.CommandBreakdown(r.Context(), id)
	if err != nil {
		h.respondCommandError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bd)
}

func (h *AdminHandler) ValidateCommand(w http.ResponseWriter, r *http.Request) {
	h.finalize(w, r, h.service.ValidateCommand)
}

func (h *AdminHandler) RevokeCommand(w http.ResponseWriter, r *http.Request) {
	h.finalize(w, r, h.service.RevokeCommand)
}

func (h *AdminHandler) finalize(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id uuid.UUID) error) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := action(r.Context(), id); err != nil {
		h.respondCommandError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *AdminHandler) DeleteCommand(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteCommand(r.Context(), id); err != nil {
		h.respondCommandError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *AdminHandler) ListAccompaniments(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	groups, err := h.service.AccompanimentGroups(r.Context(), id)
	if err != nil {
		h.logger.Error("accompaniments_list_failed", "Failed to list accompaniment groups", "", nil, err)
		respondError(w, http.StatusInternalServerError, "failed to list accompaniment groups")
		return
	}
	respondJSON(w, http.StatusOK, groups)
}

func (h *AdminHandler) SaveAccompaniments(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req SaveAccompanimentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	if err := h.service.SaveAccompanimentGroups(r.Context(), id, req.toDomain()); err != nil {
		if errors.Is(err, domain.ErrInvalidAccompaniment) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("accompaniments_save_failed", "Failed to save accompaniment groups", "", nil, err)
		respondError(w, http.StatusInternalServerError, "failed to save accompaniment groups")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *AdminHandler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *AdminHandler) respondCommandError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCommandNotFound):
		respondError(w, http.StatusNotFound, "command not found")
	case errors.Is(err, domain.ErrCommandFinalized):
		respondError(w, http.StatusConflict, "command is already validated or revoked")
	case errors.Is(err, pricing.ErrComputationFault):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error("command_action_failed", "Command action failed", "", nil, err)
		respondError(w, http.StatusInternalServerError, "command action failed")
	}
}
